package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"backend": map[string]any{
			"serviceKey": "",
			"anonKey":    "",
		},
		"stripe": map[string]any{
			"migrationPromoCode": "",
		},
		"harness": map[string]any{
			"appBaseUrl": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "BACKEND_SERVICEKEY", want: "backend.serviceKey"},
		{envKey: "BACKEND_ANONKEY", want: "backend.anonKey"},
		{envKey: "STRIPE_MIGRATIONPROMOCODE", want: "stripe.migrationPromoCode"},
		{envKey: "HARNESS_APPBASEURL", want: "harness.appBaseUrl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestConfigValidate_RejectsMissingServiceKey(t *testing.T) {
	cfg := &Config{}
	cfg.Backend = BackendConfig{URL: "https://club.test.backend"}
	cfg.Harness = HarnessConfig{AppBaseURL: "http://localhost:5173"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation to fail without a service key")
	}
}

func TestConfigValidate_RejectsMissingBackendURL(t *testing.T) {
	cfg := &Config{}
	cfg.Backend = BackendConfig{ServiceKey: "service-role-key"}
	cfg.Harness = HarnessConfig{AppBaseURL: "http://localhost:5173"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation to fail without a backend URL")
	}
}

func TestConfigValidate_AcceptsCompleteConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Backend = BackendConfig{URL: "https://club.test.backend", ServiceKey: "service-role-key"}
	cfg.Harness = HarnessConfig{AppBaseURL: "http://localhost:5173"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
}
