// Package lifecycle holds shared process-lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup/shutdown steps such as
// database pings and HTTP server drain.
const DefaultTimeout = 10 * time.Second
