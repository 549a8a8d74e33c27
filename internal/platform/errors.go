package platform

// Error is a normalized upstream failure. Detail carries the server's
// {detail} string when one was decodable; Error falls back to the
// per-action message otherwise, so the text is always fit to render.
type Error struct {
	StatusCode int
	Detail     string
	fallback   string
	cause      error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.fallback
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Fallback messages shown when the upstream response yields no detail
// string. Taken verbatim from the product copy.
const (
	FallbackLogin    = "Login failed"
	FallbackRegister = "Registration failed"
	FallbackList     = "Failed to fetch events. Please try again."
	FallbackCreate   = "Failed to create event. Please try again."
	FallbackUpdate   = "Failed to update event. Please try again."
	FallbackSignup   = "Failed to register. Please try again."
	FallbackSponsor  = "Failed to sponsor. Please try again."
)
