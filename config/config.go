package config

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath        = "."
	defaultEmailDomain = "test.com"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// Backend is the club application's backend: its base URL and the
	// service-role secret that bypasses row-level authorization. Both are
	// required; elevated-privilege operations must never run against an
	// unconfigured target.
	Backend BackendConfig `json:"backend" yaml:"backend" validate:"required"`

	// Postgres is the service-role database connection used for direct
	// table access and stored-procedure invocations.
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Stripe configures the payment provider. Optional; only needed when a
	// fixture requests a payment subscription.
	Stripe *StripeConfig `json:"stripe" yaml:"stripe"`

	// Harness holds fixture-generation knobs.
	Harness HarnessConfig `json:"harness" yaml:"harness"`

	// QRCode configuration for registration check-in codes.
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Storage configuration for fixture asset uploads.
	Storage *StorageConfig `json:"storage" yaml:"storage"`
}

// BackendConfig identifies the backend the harness provisions fixtures
// against.
type BackendConfig struct {
	URL        string `json:"url" yaml:"url" validate:"required,url"`
	ServiceKey string `json:"serviceKey" yaml:"serviceKey" validate:"required"`
	// AnonKey is the public API key sent alongside user-scoped requests.
	AnonKey string `json:"anonKey" yaml:"anonKey"`
}

// StripeConfig defines payment-provider configuration.
type StripeConfig struct {
	SecretKey          string `json:"secretKey" yaml:"secretKey" validate:"required"`
	MonthlyPriceLookup string `json:"monthlyPriceLookup" yaml:"monthlyPriceLookup"`
	AnnualPriceLookup  string `json:"annualPriceLookup" yaml:"annualPriceLookup"`
	// MigrationPromoCode is the promotion-code literal applied to migrated
	// memberships in test scenarios.
	MigrationPromoCode string `json:"migrationPromoCode" yaml:"migrationPromoCode"`
}

// HarnessConfig defines fixture-generation configuration.
type HarnessConfig struct {
	// AppBaseURL is the application host under test; injected session
	// cookies are scoped to it.
	AppBaseURL string `json:"appBaseUrl" yaml:"appBaseUrl" validate:"required,url"`
	// EmailDomain is the domain unique fixture addresses are minted under.
	EmailDomain string `json:"emailDomain" yaml:"emailDomain"`
	// SeedWorkers caps the fan-out when seeding many rows concurrently.
	SeedWorkers int `json:"seedWorkers" yaml:"seedWorkers"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// StorageConfig defines object-storage configuration for fixture assets.
type StorageConfig struct {
	// BucketURL is a gocloud.dev bucket URL, e.g. "file:///tmp/fixtures".
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
	// PublicURL is the base URL the application serves uploaded assets from.
	PublicURL string `json:"publicUrl" yaml:"publicUrl"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: BACKEND_SERVICEKEY -> backend.serviceKey (not backend.servicekey)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Harness.EmailDomain) == "" {
		cfg.Harness.EmailDomain = defaultEmailDomain
	}
	if cfg.Harness.SeedWorkers <= 0 {
		cfg.Harness.SeedWorkers = 8
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fails fast on missing required values. Elevated-privilege
// operations run before any test assertion, so an ambiguous target must be
// rejected before the first network call.
func (cfg *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid harness configuration")
	}
	if cfg.Stripe != nil {
		if err := validate.Struct(cfg.Stripe); err != nil {
			return errors.Wrap(err, "invalid stripe configuration")
		}
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
