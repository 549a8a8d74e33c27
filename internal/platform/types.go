package platform

import "time"

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	UserType    string `json:"user_type"`
}

// Registration is the payload submitted to the register endpoint.
// OrganizationName is only meaningful for company and university club
// accounts; the server ignores it otherwise.
type Registration struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	UserType         string `json:"user_type"`
	OrganizationName string `json:"organization_name,omitempty"`
}

// UserAck is the server acknowledgement for a registration.
type UserAck struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	UserType         string `json:"user_type"`
	OrganizationName string `json:"organization_name"`
}

// EventSummary is one entry of the event list response. The date arrives as
// a string because the upstream stringifies it; use ParseEventDate.
type EventSummary struct {
	EventID           int64  `json:"event_id"`
	Title             string `json:"title"`
	Location          string `json:"location"`
	Date              string `json:"date"`
	CurrentVolunteers int    `json:"current_volunteers"`
	MaxVolunteers     int    `json:"max_volunteers"`
}

// Event is the create/update response shape.
type Event struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Location          string `json:"location"`
	Date              string `json:"date"`
	CurrentVolunteers int    `json:"current_volunteers"`
	MaxVolunteers     int    `json:"max_volunteers"`
	Description       string `json:"description"`
}

// EventFields carries the writable event attributes for create and update.
type EventFields struct {
	Title         string
	Location      string
	Date          time.Time
	MaxVolunteers int
	Description   string
}

// RegistrationAck is the server acknowledgement for an event registration.
type RegistrationAck struct {
	ID             int64 `json:"id"`
	EventID        int64 `json:"event_id"`
	UserID         int64 `json:"user_id"`
	VolunteerCount int   `json:"volunteer_count"`
}

// SponsorshipAck is the server acknowledgement for a sponsorship.
type SponsorshipAck struct {
	ID                int64   `json:"id"`
	EventID           int64   `json:"event_id"`
	CompanyID         int64   `json:"company_id"`
	SponsorshipAmount float64 `json:"sponsorship_amount"`
	Description       string  `json:"description"`
}

// eventDateLayouts are the wire formats the upstream is known to emit:
// RFC 3339 from create/update responses and Python str(datetime) from the
// list endpoint.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseEventDate converts an upstream date string into a time.Time.
func ParseEventDate(s string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WireDate serializes an event date to the canonical absolute-time string
// the upstream expects: the instant converted to UTC, RFC 3339.
func WireDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
