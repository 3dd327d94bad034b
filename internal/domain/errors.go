package domain

import "errors"

// Domain errors. Infra clients map provider responses onto these so
// use cases can decide between aborting the run and skipping the item
// with errors.Is alone.
var (
	ErrAuthentication   = errors.New("authentication failed")
	ErrNotFound         = errors.New("resource not found")
	ErrRateLimited      = errors.New("rate limited")
	ErrTransient        = errors.New("transient network error")
	ErrValidation       = errors.New("invalid input")
	ErrNoTargets        = errors.New("no target environments specified")
	ErrCodeHostUnknown  = errors.New("unknown code host (expected bitbucket or github)")
	ErrTrackerUnset     = errors.New("issue tracker not configured")
	ErrAddressNotFound  = errors.New("no elastic ip tagged for environment")
	ErrInstanceNotFound = errors.New("no running instance tagged for environment")
)

// Fatal reports whether an error must abort the whole run rather than
// be recorded as a per-item failure.
func Fatal(err error) bool {
	return errors.Is(err, ErrAuthentication) || errors.Is(err, ErrValidation)
}
