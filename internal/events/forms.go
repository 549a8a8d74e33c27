package events

import (
	"net/http"
	"strconv"
	"time"
)

// Form buffers hold raw user input. Numeric fields are coerced, never
// validated: an empty or malformed number goes upstream as zero and the
// server's rejection detail is what the user sees.

type registerForm struct {
	EventID        int64
	VolunteerCount int
}

type sponsorForm struct {
	EventID    int64
	EventTitle string
	Amount     float64
}

type eventForm struct {
	EventID       int64
	Title         string
	Location      string
	Date          string
	MaxVolunteers int
	Description   string
}

func parseRegisterForm(r *http.Request) registerForm {
	return registerForm{
		EventID:        parseID(r.PostFormValue("event_id")),
		VolunteerCount: coerceInt(r.PostFormValue("volunteer_count")),
	}
}

func parseSponsorForm(r *http.Request) sponsorForm {
	return sponsorForm{
		EventID:    parseID(r.PostFormValue("event_id")),
		EventTitle: r.PostFormValue("event_title"),
		Amount:     coerceFloat(r.PostFormValue("sponsorship_amount")),
	}
}

func parseEventForm(r *http.Request) eventForm {
	return eventForm{
		EventID:       parseID(r.PostFormValue("event_id")),
		Title:         r.PostFormValue("title"),
		Location:      r.PostFormValue("location"),
		Date:          r.PostFormValue("date"),
		MaxVolunteers: coerceInt(r.PostFormValue("max_volunteers")),
		Description:   r.PostFormValue("description"),
	}
}

// dateValue interprets the form's calendar date as midnight local time. A
// malformed value yields the zero time, which serializes and goes upstream
// like any other field.
func (f eventForm) dateValue() time.Time {
	t, err := time.ParseInLocation("2006-01-02", f.Date, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}

func coerceInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func coerceFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
