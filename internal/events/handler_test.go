package events_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/reforest-platform/reforest-web/internal/app"
	"github.com/reforest-platform/reforest-web/internal/events"
	"github.com/reforest-platform/reforest-web/internal/platform"
	"github.com/reforest-platform/reforest-web/internal/shared"
	"github.com/reforest-platform/reforest-web/internal/view"
	_ "github.com/reforest-platform/reforest-web/testing"
)

type stubGateway struct {
	events       []platform.EventSummary
	listErr      error
	actionErr    error
	registered   *struct {
		id    int64
		count int
	}
	sponsored *struct {
		id          int64
		amount      float64
		description string
	}
	created *platform.EventFields
	updated *struct {
		id     int64
		fields platform.EventFields
	}
}

func (s *stubGateway) ListEvents(ctx context.Context, token string) ([]platform.EventSummary, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.events, nil
}

func (s *stubGateway) CreateEvent(ctx context.Context, token string, fields platform.EventFields) (*platform.Event, error) {
	if s.actionErr != nil {
		return nil, s.actionErr
	}
	s.created = &fields
	return &platform.Event{ID: 99, Title: fields.Title}, nil
}

func (s *stubGateway) UpdateEvent(ctx context.Context, token string, id int64, fields platform.EventFields) (*platform.Event, error) {
	if s.actionErr != nil {
		return nil, s.actionErr
	}
	s.updated = &struct {
		id     int64
		fields platform.EventFields
	}{id, fields}
	return &platform.Event{ID: id, Title: fields.Title}, nil
}

func (s *stubGateway) RegisterForEvent(ctx context.Context, token string, id int64, count int) (*platform.RegistrationAck, error) {
	if s.actionErr != nil {
		return nil, s.actionErr
	}
	s.registered = &struct {
		id    int64
		count int
	}{id, count}
	return &platform.RegistrationAck{ID: 1, EventID: id, VolunteerCount: count}, nil
}

func (s *stubGateway) SponsorEvent(ctx context.Context, token string, id int64, amount float64, description string) (*platform.SponsorshipAck, error) {
	if s.actionErr != nil {
		return nil, s.actionErr
	}
	s.sponsored = &struct {
		id          int64
		amount      float64
		description string
	}{id, amount, description}
	return &platform.SponsorshipAck{ID: 1, EventID: id}, nil
}

func sampleEvents() []platform.EventSummary {
	return []platform.EventSummary{
		{EventID: 1, Title: "Tree Planting", Location: "Jakarta", Date: "2025-03-10T00:00:00Z", CurrentVolunteers: 5, MaxVolunteers: 100},
		{EventID: 2, Title: "Mangrove Day", Location: "Bali", Date: "2025-04-01 09:00:00", CurrentVolunteers: 0, MaxVolunteers: 50},
	}
}

type workspace struct {
	router  http.Handler
	manager *shared.SessionManager
	gateway *stubGateway
}

// newWorkspace mounts the handler behind the same session-gated route shape
// the real router uses.
func newWorkspace(t *testing.T, gateway *stubGateway) *workspace {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := events.NewHandler(logger, gateway, templates, csrfManager, sessionManager)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess, _ := sessionManager.Load(req.Context(), req)
			ctx := shared.ContextWithSession(req.Context(), sess)
			req = req.WithContext(ctx)
			next.ServeHTTP(w, req)
			_ = sessionManager.Commit(ctx, w, req, sess)
		})
	})
	r.Route("/events", func(r chi.Router) {
		r.Use(app.RequireSession)
		handler.MountRoutes(r)
	})
	return &workspace{router: r, manager: sessionManager, gateway: gateway}
}

// signIn persists a session with the given role and returns its cookie.
func (ws *workspace) signIn(t *testing.T, role string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := ws.manager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	sess.SetCredentials("tok-123", role)
	res := httptest.NewRecorder()
	if err := ws.manager.Commit(context.Background(), res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}
	return &http.Cookie{Name: ws.manager.CookieName(), Value: sess.ID}
}

func (ws *workspace) get(t *testing.T, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res := httptest.NewRecorder()
	ws.router.ServeHTTP(res, req)
	return res
}

func (ws *workspace) post(t *testing.T, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res := httptest.NewRecorder()
	ws.router.ServeHTTP(res, req)
	return res
}

func TestAnonymousVisitorRedirectsToLogin(t *testing.T) {
	ws := newWorkspace(t, &stubGateway{events: sampleEvents()})

	res := ws.get(t, "/events", nil)
	require.Equal(t, http.StatusSeeOther, res.Code)
	require.Equal(t, "/login", res.Header().Get("Location"))
}

func TestWorkspaceListsEvents(t *testing.T) {
	ws := newWorkspace(t, &stubGateway{events: sampleEvents()})
	cookie := ws.signIn(t, "individual")

	res := ws.get(t, "/events", cookie)
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	require.Contains(t, body, "Tree Planting")
	require.Contains(t, body, "Mangrove Day")
	require.Contains(t, body, "5")
	require.Contains(t, body, "100")
}

func TestWorkspaceActionsFollowRole(t *testing.T) {
	cases := []struct {
		role     string
		register bool
		sponsor  bool
		manage   bool
	}{
		{"individual", true, false, false},
		{"university_club", true, false, false},
		{"company", false, true, false},
		{"ministry", false, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			ws := newWorkspace(t, &stubGateway{events: sampleEvents()})
			cookie := ws.signIn(t, tc.role)

			body := ws.get(t, "/events", cookie).Body.String()
			require.Equal(t, tc.register, strings.Contains(body, "mode=register"), "register action")
			require.Equal(t, tc.sponsor, strings.Contains(body, "mode=sponsor"), "sponsor action")
			require.Equal(t, tc.manage, strings.Contains(body, "mode=update"), "update action")
			require.Equal(t, tc.manage, strings.Contains(body, "Create New Event"), "create action")
		})
	}
}

func TestListFailureRendersMessageAndNoCards(t *testing.T) {
	gateway := &stubGateway{listErr: &platform.Error{StatusCode: http.StatusInternalServerError, Detail: "Failed to fetch events. Please try again."}}
	ws := newWorkspace(t, gateway)
	cookie := ws.signIn(t, "individual")

	res := ws.get(t, "/events", cookie)
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	require.Contains(t, body, "Failed to fetch events. Please try again.")
	require.Contains(t, body, "No events available at the moment.")
}

func TestRegisterModalShowsForEligibleRole(t *testing.T) {
	ws := newWorkspace(t, &stubGateway{events: sampleEvents()})
	cookie := ws.signIn(t, "individual")

	body := ws.get(t, "/events?mode=register&event=1", cookie).Body.String()
	require.Contains(t, body, "Register for Tree Planting")
	require.Contains(t, body, `name="volunteer_count"`)
}

func TestRegisterModalHiddenForIneligibleRole(t *testing.T) {
	ws := newWorkspace(t, &stubGateway{events: sampleEvents()})
	cookie := ws.signIn(t, "ministry")

	body := ws.get(t, "/events?mode=register&event=1", cookie).Body.String()
	require.NotContains(t, body, "Register for Tree Planting")
}

func TestStaleEventIDRendersNoModal(t *testing.T) {
	ws := newWorkspace(t, &stubGateway{events: sampleEvents()})
	cookie := ws.signIn(t, "individual")

	body := ws.get(t, "/events?mode=register&event=999", cookie).Body.String()
	require.NotContains(t, body, `name="volunteer_count"`)
}

func TestUpdateModalPrefillsFields(t *testing.T) {
	ws := newWorkspace(t, &stubGateway{events: sampleEvents()})
	cookie := ws.signIn(t, "ministry")

	body := ws.get(t, "/events?mode=update&event=1", cookie).Body.String()
	require.Contains(t, body, `value="Tree Planting"`)
	require.Contains(t, body, `value="Jakarta"`)
	require.Contains(t, body, `value="2025-03-10"`)
	require.Contains(t, body, `value="100"`)
}

func TestRegisterActionRedirectsWithSuccessFlash(t *testing.T) {
	ws := newWorkspace(t, &stubGateway{events: sampleEvents()})
	cookie := ws.signIn(t, "individual")

	form := url.Values{}
	form.Set("event_id", "1")
	form.Set("volunteer_count", "3")

	res := ws.post(t, "/events/register", form, cookie)
	require.Equal(t, http.StatusSeeOther, res.Code)
	require.Equal(t, "/events", res.Header().Get("Location"))
	require.NotNil(t, ws.gateway.registered)
	require.Equal(t, int64(1), ws.gateway.registered.id)
	require.Equal(t, 3, ws.gateway.registered.count)

	body := ws.get(t, "/events", cookie).Body.String()
	require.Contains(t, body, "Successfully registered for the event!")
}

func TestSponsorActionComposesDescription(t *testing.T) {
	ws := newWorkspace(t, &stubGateway{events: sampleEvents()})
	cookie := ws.signIn(t, "company")

	form := url.Values{}
	form.Set("event_id", "1")
	form.Set("event_title", "Tree Planting")
	form.Set("sponsorship_amount", "500")

	res := ws.post(t, "/events/sponsor", form, cookie)
	require.Equal(t, http.StatusSeeOther, res.Code)
	require.NotNil(t, ws.gateway.sponsored)
	require.Equal(t, int64(1), ws.gateway.sponsored.id)
	require.Equal(t, 500.0, ws.gateway.sponsored.amount)
	require.Equal(t, "Sponsorship for Tree Planting", ws.gateway.sponsored.description)

	body := ws.get(t, "/events", cookie).Body.String()
	require.Contains(t, body, "Sponsorship successfully created!")
}

func TestCreateActionForwardsFields(t *testing.T) {
	ws := newWorkspace(t, &stubGateway{events: sampleEvents()})
	cookie := ws.signIn(t, "ministry")

	form := url.Values{}
	form.Set("title", "River Cleanup")
	form.Set("location", "Bandung")
	form.Set("date", "2025-05-20")
	form.Set("max_volunteers", "40")
	form.Set("description", "Community cleanup")

	res := ws.post(t, "/events/create", form, cookie)
	require.Equal(t, http.StatusSeeOther, res.Code)
	require.NotNil(t, ws.gateway.created)
	require.Equal(t, "River Cleanup", ws.gateway.created.Title)
	require.Equal(t, "Bandung", ws.gateway.created.Location)
	require.Equal(t, 40, ws.gateway.created.MaxVolunteers)
	require.Equal(t, "Community cleanup", ws.gateway.created.Description)

	want := time.Date(2025, 5, 20, 0, 0, 0, 0, time.Local)
	require.True(t, ws.gateway.created.Date.Equal(want), "date should parse as local midnight")

	body := ws.get(t, "/events", cookie).Body.String()
	require.Contains(t, body, "Event successfully created!")
}

func TestUpdateActionForwardsFields(t *testing.T) {
	ws := newWorkspace(t, &stubGateway{events: sampleEvents()})
	cookie := ws.signIn(t, "ministry")

	form := url.Values{}
	form.Set("event_id", "2")
	form.Set("title", "Mangrove Week")
	form.Set("location", "Bali")
	form.Set("date", "2025-04-02")
	form.Set("max_volunteers", "60")

	res := ws.post(t, "/events/update", form, cookie)
	require.Equal(t, http.StatusSeeOther, res.Code)
	require.NotNil(t, ws.gateway.updated)
	require.Equal(t, int64(2), ws.gateway.updated.id)
	require.Equal(t, "Mangrove Week", ws.gateway.updated.fields.Title)
	require.Equal(t, 60, ws.gateway.updated.fields.MaxVolunteers)

	body := ws.get(t, "/events", cookie).Body.String()
	require.Contains(t, body, "Event successfully updated!")
}

func TestActionFailureFlashesServerDetail(t *testing.T) {
	gateway := &stubGateway{events: sampleEvents(), actionErr: &platform.Error{StatusCode: http.StatusForbidden, Detail: "Not authorized"}}
	ws := newWorkspace(t, gateway)
	cookie := ws.signIn(t, "individual")

	form := url.Values{}
	form.Set("event_id", "1")
	form.Set("volunteer_count", "3")

	res := ws.post(t, "/events/register", form, cookie)
	require.Equal(t, http.StatusSeeOther, res.Code)
	require.Equal(t, "/events", res.Header().Get("Location"))

	body := ws.get(t, "/events", cookie).Body.String()
	require.Contains(t, body, "Not authorized")
}
