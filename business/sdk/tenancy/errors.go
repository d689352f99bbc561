package tenancy

import "errors"

// Set of error variables for tenant handling.
var (
	ErrStateConflict   = errors.New("tenant already set for this scope")
	ErrNotInitialized  = errors.New("tenant not initialized")
	ErrContextNotReady = errors.New("tenant context not ready")
	ErrParseFailure    = errors.New("malformed tenant identifier")
	ErrCrossTenant     = errors.New("aggregate belongs to another tenant")
)

// IsIsolationError reports whether err signals a broken isolation guarantee
// rather than a user mistake. These must never be reported as not found.
func IsIsolationError(err error) bool {
	switch {
	case errors.Is(err, ErrStateConflict),
		errors.Is(err, ErrContextNotReady),
		errors.Is(err, ErrCrossTenant):
		return true
	}

	return false
}
