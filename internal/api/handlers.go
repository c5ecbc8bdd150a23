package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/starford/rollover/internal/models"
	"github.com/starford/rollover/internal/rollover"
)

// HistoryLister lists recorded rollovers.
type HistoryLister interface {
	ListRollovers(limit int) ([]models.Rollover, error)
}

// SettingsNotifier is told about template heading changes.
type SettingsNotifier interface {
	PublishSettings(heading string)
}

// Handler holds API route handlers.
type Handler struct {
	svc      *rollover.Service
	history  HistoryLister
	notifier SettingsNotifier
}

// NewHandler creates a new Handler. notifier may be nil.
func NewHandler(svc *rollover.Service, history HistoryLister, notifier SettingsNotifier) *Handler {
	return &Handler{svc: svc, history: history, notifier: notifier}
}

// GetSettings handles GET /api/settings.
//
//	@Summary		Current template heading and candidates
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	SettingsResponse
//	@Security		BearerAuth
//	@Router			/settings [get]
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.svc.HeadingCandidates(r.Context())
	if err != nil {
		writeServiceError(w, "heading candidates", err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsResponse{
		TemplateHeading: h.svc.TemplateHeading(),
		Candidates:      candidates,
	})
}

// UpdateSettings handles PUT /api/settings.
//
//	@Summary		Change the template heading
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			body	body		UpdateSettingsRequest	true	"New heading"
//	@Success		200		{object}	SettingsResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/settings [put]
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.SetTemplateHeading(r.Context(), req.TemplateHeading); err != nil {
		writeServiceError(w, "update settings", err)
		return
	}
	if h.notifier != nil {
		h.notifier.PublishSettings(req.TemplateHeading)
	}
	h.GetSettings(w, r)
}

// ListRollovers handles GET /api/rollovers.
//
//	@Summary		Recent rollovers, newest first
//	@Tags			rollovers
//	@Produce		json
//	@Param			limit	query		int	false	"Max results"
//	@Success		200		{object}	RolloverListResponse
//	@Security		BearerAuth
//	@Router			/rollovers [get]
func (h *Handler) ListRollovers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.history.ListRollovers(limit)
	if err != nil {
		writeServiceError(w, "list rollovers", err)
		return
	}
	writeJSON(w, http.StatusOK, RolloverListResponse{Rollovers: items})
}

// Preview handles GET /api/preview.
//
//	@Summary		Dry-run a rollover into a note
//	@Tags			rollovers
//	@Produce		json
//	@Param			note	query		string	true	"Note path"
//	@Success		200		{object}	PreviewResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/preview [get]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	note := r.URL.Query().Get("note")
	if note == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'note' is required")
		return
	}
	p, err := h.svc.Preview(r.Context(), note)
	if err != nil {
		writeServiceError(w, "preview "+note, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
