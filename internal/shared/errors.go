package shared

import (
	"errors"

	"github.com/reforest-platform/reforest-web/internal/platform"
)

var (
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// UserSafeMessage returns text fit to render for err. Platform errors
// already carry the server detail or a per-action fallback; anything else
// degrades to the supplied fallback so internals never reach the page.
func UserSafeMessage(err error, fallback string) string {
	var pe *platform.Error
	if errors.As(err, &pe) {
		return pe.Error()
	}
	return fallback
}
