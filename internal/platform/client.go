package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client wraps the reforestation platform REST API. Each method issues a
// single request; there is no retry, caching, or deduplication, and every
// failure comes back as a *Error carrying renderable text.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client for the given base origin.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Login exchanges credentials for a bearer token and role tag. The login
// endpoint is the one form-encoded call in the API; the email travels in
// the username field.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &Error{fallback: FallbackLogin, cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var result LoginResult
	if err := c.send(req, &result, FallbackLogin); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new platform account.
func (c *Client) Register(ctx context.Context, reg Registration) (*UserAck, error) {
	var ack UserAck
	if err := c.doJSON(ctx, http.MethodPost, "/users/register", "", reg, &ack, FallbackRegister); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ListEvents fetches the full event list.
func (c *Client) ListEvents(ctx context.Context, token string) ([]EventSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events", nil)
	if err != nil {
		return nil, &Error{fallback: FallbackList, cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var events []EventSummary
	if err := c.send(req, &events, FallbackList); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent creates a new event. Ministry only; the server enforces it.
func (c *Client) CreateEvent(ctx context.Context, token string, fields EventFields) (*Event, error) {
	var event Event
	if err := c.doJSON(ctx, http.MethodPost, "/events", token, wireEvent(fields), &event, FallbackCreate); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent updates an existing event.
func (c *Client) UpdateEvent(ctx context.Context, token string, id int64, fields EventFields) (*Event, error) {
	var event Event
	path := fmt.Sprintf("/events/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, token, wireEvent(fields), &event, FallbackUpdate); err != nil {
		return nil, err
	}
	return &event, nil
}

// RegisterForEvent signs the caller up as volunteers for an event. The
// count goes out as given; range enforcement is the server's call.
func (c *Client) RegisterForEvent(ctx context.Context, token string, id int64, count int) (*RegistrationAck, error) {
	body := map[string]int{"volunteer_count": count}
	var ack RegistrationAck
	path := fmt.Sprintf("/events/%d/register", id)
	if err := c.doJSON(ctx, http.MethodPost, path, token, body, &ack, FallbackSignup); err != nil {
		return nil, err
	}
	return &ack, nil
}

// SponsorEvent records a sponsorship for an event. The event id travels as
// a query parameter, matching the upstream route.
func (c *Client) SponsorEvent(ctx context.Context, token string, id int64, amount float64, description string) (*SponsorshipAck, error) {
	body := map[string]any{
		"sponsorship_amount": amount,
		"description":        description,
	}
	var ack SponsorshipAck
	path := fmt.Sprintf("/sponsorships?event_id=%d", id)
	if err := c.doJSON(ctx, http.MethodPost, path, token, body, &ack, FallbackSponsor); err != nil {
		return nil, err
	}
	return &ack, nil
}

type wireEventFields struct {
	Title         string `json:"title"`
	Location      string `json:"location"`
	Date          string `json:"date"`
	MaxVolunteers int    `json:"max_volunteers"`
	Description   string `json:"description,omitempty"`
}

func wireEvent(fields EventFields) wireEventFields {
	return wireEventFields{
		Title:         fields.Title,
		Location:      fields.Location,
		Date:          WireDate(fields.Date),
		MaxVolunteers: fields.MaxVolunteers,
		Description:   fields.Description,
	}
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body any, out any, fallback string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{fallback: fallback, cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{fallback: fallback, cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.send(req, out, fallback)
}

func (c *Client) send(req *http.Request, out any, fallback string) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{fallback: fallback, cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, fallback: fallback, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			StatusCode: resp.StatusCode,
			Detail:     decodeDetail(data),
			fallback:   fallback,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{StatusCode: resp.StatusCode, fallback: fallback, cause: err}
	}
	return nil
}

// decodeDetail pulls the {detail} string out of an error body. Anything
// non-JSON or shaped differently yields "", which defers to the fallback.
func decodeDetail(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Detail
}
