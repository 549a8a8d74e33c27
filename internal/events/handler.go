package events

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reforest-platform/reforest-web/internal/auth"
	"github.com/reforest-platform/reforest-web/internal/platform"
	"github.com/reforest-platform/reforest-web/internal/shared"
	"github.com/reforest-platform/reforest-web/internal/view"
)

// Gateway is the slice of the platform client the workspace needs.
type Gateway interface {
	ListEvents(ctx context.Context, token string) ([]platform.EventSummary, error)
	CreateEvent(ctx context.Context, token string, fields platform.EventFields) (*platform.Event, error)
	UpdateEvent(ctx context.Context, token string, id int64, fields platform.EventFields) (*platform.Event, error)
	RegisterForEvent(ctx context.Context, token string, id int64, count int) (*platform.RegistrationAck, error)
	SponsorEvent(ctx context.Context, token string, id int64, amount float64, description string) (*platform.SponsorshipAck, error)
}

// Handler wires the event workspace: the list plus the four role-gated
// action workflows. Which actions render depends on the role tag read from
// the session on every request; the server independently rejects anything
// the role may not do.
type Handler struct {
	logger    *slog.Logger
	gateway   Gateway
	templates *view.Engine
	csrf      *shared.CSRFManager
	sessions  *shared.SessionManager
}

// NewHandler constructs the workspace handler.
func NewHandler(logger *slog.Logger, gateway Gateway, templates *view.Engine, csrf *shared.CSRFManager, sessions *shared.SessionManager) *Handler {
	return &Handler{logger: logger, gateway: gateway, templates: templates, csrf: csrf, sessions: sessions}
}

// MountRoutes registers workspace routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showWorkspace)
	r.Post("/register", h.handleRegister)
	r.Post("/sponsor", h.handleSponsor)
	r.Post("/update", h.handleUpdate)
	r.Post("/create", h.handleCreate)
}

// Card is one event as rendered in the list.
type Card struct {
	ID                int64
	Title             string
	Location          string
	Date              time.Time
	RawDate           string
	CurrentVolunteers int
	MaxVolunteers     int
}

// DateInput formats the date for a calendar input prefill.
func (c Card) DateInput() string {
	if c.Date.IsZero() {
		return ""
	}
	return c.Date.Format("2006-01-02")
}

type workspacePage struct {
	Role      auth.Role
	Events    []Card
	ListError string
	Mode      string
	Selected  *Card
	Form      eventForm
}

func (h *Handler) showWorkspace(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	role := auth.Role(sess.Role())

	page := workspacePage{Role: role}
	summaries, err := h.gateway.ListEvents(r.Context(), sess.Token())
	if err != nil {
		h.logger.Error("list events", slog.Any("error", err))
		page.ListError = shared.UserSafeMessage(err, platform.FallbackList)
	} else {
		page.Events = make([]Card, 0, len(summaries))
		for _, s := range summaries {
			page.Events = append(page.Events, newCard(s))
		}
	}

	// One action context at a time; an unknown mode or a stale event id
	// simply renders no modal.
	mode := r.URL.Query().Get("mode")
	switch mode {
	case "register":
		if role.CanRegister() {
			page.Selected = findCard(page.Events, parseID(r.URL.Query().Get("event")))
			if page.Selected != nil {
				page.Mode = mode
			}
		}
	case "sponsor":
		if role.CanSponsor() {
			page.Selected = findCard(page.Events, parseID(r.URL.Query().Get("event")))
			if page.Selected != nil {
				page.Mode = mode
			}
		}
	case "update":
		if role.CanManageEvents() {
			page.Selected = findCard(page.Events, parseID(r.URL.Query().Get("event")))
			if page.Selected != nil {
				page.Mode = mode
				page.Form = eventForm{
					EventID:       page.Selected.ID,
					Title:         page.Selected.Title,
					Location:      page.Selected.Location,
					Date:          page.Selected.DateInput(),
					MaxVolunteers: page.Selected.MaxVolunteers,
				}
			}
		}
	case "create":
		if role.CanManageEvents() {
			page.Mode = mode
		}
	}

	h.render(w, r, page)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	form := parseRegisterForm(r)

	_, err := h.gateway.RegisterForEvent(r.Context(), sess.Token(), form.EventID, form.VolunteerCount)
	h.settle(w, r, sess, err, "Successfully registered for the event!", platform.FallbackSignup)
}

func (h *Handler) handleSponsor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	form := parseSponsorForm(r)

	description := "Sponsorship for " + form.EventTitle
	_, err := h.gateway.SponsorEvent(r.Context(), sess.Token(), form.EventID, form.Amount, description)
	h.settle(w, r, sess, err, "Sponsorship successfully created!", platform.FallbackSponsor)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	form := parseEventForm(r)

	_, err := h.gateway.UpdateEvent(r.Context(), sess.Token(), form.EventID, platform.EventFields{
		Title:         form.Title,
		Location:      form.Location,
		Date:          form.dateValue(),
		MaxVolunteers: form.MaxVolunteers,
	})
	h.settle(w, r, sess, err, "Event successfully updated!", platform.FallbackUpdate)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	form := parseEventForm(r)

	_, err := h.gateway.CreateEvent(r.Context(), sess.Token(), platform.EventFields{
		Title:         form.Title,
		Location:      form.Location,
		Date:          form.dateValue(),
		MaxVolunteers: form.MaxVolunteers,
		Description:   form.Description,
	})
	h.settle(w, r, sess, err, "Event successfully created!", platform.FallbackCreate)
}

// settle finishes an action workflow: success or failure, the selection and
// form buffer are gone (the redirect drops them) and a one-line status
// message is queued, overwriting nothing until the next action settles.
func (h *Handler) settle(w http.ResponseWriter, r *http.Request, sess *shared.Session, err error, success, fallback string) {
	if err != nil {
		h.logger.Error("event action failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		if sess != nil {
			sess.AddFlash(shared.FlashMessage{Kind: "error", Message: shared.UserSafeMessage(err, fallback)})
		}
	} else if sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: "success", Message: success})
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page workspacePage) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Available Events",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Role:        string(page.Role),
		Data:        page,
	}
	if err := h.templates.Render(w, "pages/events/index.html", viewData); err != nil {
		h.logger.Error("render events", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func newCard(s platform.EventSummary) Card {
	card := Card{
		ID:                s.EventID,
		Title:             s.Title,
		Location:          s.Location,
		RawDate:           s.Date,
		CurrentVolunteers: s.CurrentVolunteers,
		MaxVolunteers:     s.MaxVolunteers,
	}
	if t, ok := platform.ParseEventDate(s.Date); ok {
		card.Date = t
	}
	return card
}

func findCard(cards []Card, id int64) *Card {
	if id == 0 {
		return nil
	}
	for i := range cards {
		if cards[i].ID == id {
			return &cards[i]
		}
	}
	return nil
}
