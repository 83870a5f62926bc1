// Package lifecycle provides process- and fixture-lifetime helpers shared
// across the harness.
package lifecycle

import "time"

// DefaultTimeout bounds startup, shutdown, and teardown operations.
const DefaultTimeout = 30 * time.Second
