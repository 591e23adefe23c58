package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/service"
)

// Handler carries the services the HTTP surface exposes
type Handler struct {
	dispatcher service.Dispatcher
	tracker    service.ProgressTracker
	notifier   service.ProgressNotifier
	trigger    service.ContextualTrigger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	dispatcher service.Dispatcher,
	tracker service.ProgressTracker,
	notifier service.ProgressNotifier,
	trigger service.ContextualTrigger,
) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		tracker:    tracker,
		notifier:   notifier,
		trigger:    trigger,
	}
}

// Health responds to liveness probes
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sendRequest struct {
	UserID     string            `json:"userId"`
	TemplateID string            `json:"templateId"`
	Data       map[string]string `json:"data"`
	Force      bool              `json:"force"`
}

// Send dispatches a single notification through full gating
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.TemplateID == "" {
		writeError(w, http.StatusBadRequest, "userId and templateId are required")
		return
	}

	result := h.dispatcher.Send(r.Context(), entity.SendRequest{
		UserID:     req.UserID,
		TemplateID: req.TemplateID,
		Data:       req.Data,
		Force:      req.Force,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": result.Success,
		"reason":  result.Reason,
	})
}

type broadcastRequest struct {
	UserIDs    []string          `json:"userIds"`
	TemplateID string            `json:"templateId"`
	Data       map[string]string `json:"data"`
}

// Broadcast dispatches the same template to many users. Each user is
// gated independently; the response only carries aggregate counts.
func (h *Handler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.UserIDs) == 0 || req.TemplateID == "" {
		writeError(w, http.StatusBadRequest, "userIds and templateId are required")
		return
	}

	result := h.dispatcher.SendToMany(r.Context(), req.UserIDs, req.TemplateID, req.Data)

	writeJSON(w, http.StatusOK, map[string]int{
		"successCount": result.SuccessCount,
		"failureCount": result.FailureCount,
	})
}

type templateResponse struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// Recommendations returns the templates currently sendable to the user,
// ordered by priority
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := 0
	if val := r.URL.Query().Get("limit"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	templates, err := h.dispatcher.Recommended(r.Context(), userID, limit)
	if err != nil {
		log.Printf("Error computing recommendations for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to compute recommendations")
		return
	}

	out := make([]templateResponse, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, templateResponse{
			ID:       tpl.ID,
			Category: string(tpl.Category),
			Priority: string(tpl.Priority),
			Title:    tpl.Title,
			Message:  tpl.Message,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": out})
}

type contextualRequest struct {
	NearbyDogs   int      `json:"nearbyDogs"`
	Temperature  *float64 `json:"temperature"`
	Weather      string   `json:"weather"`
	NewProfiles  int      `json:"newProfiles"`
	DogLost      bool     `json:"dogLost"`
	DogFound     bool     `json:"dogFound"`
	PartnerOffer bool     `json:"partnerOffer"`
}

type triggeredEventResponse struct {
	EventID string `json:"eventId"`
	Type    string `json:"type"`
	Sent    bool   `json:"sent"`
	Reason  string `json:"reason,omitempty"`
}

// ContextualEvents evaluates ambient signals and dispatches any contextual
// notifications that match
func (h *Handler) ContextualEvents(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req contextualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	triggered := h.trigger.Evaluate(r.Context(), userID, entity.Context{
		NearbyDogs:   req.NearbyDogs,
		Temperature:  req.Temperature,
		Weather:      req.Weather,
		NewProfiles:  req.NewProfiles,
		DogLost:      req.DogLost,
		DogFound:     req.DogFound,
		PartnerOffer: req.PartnerOffer,
	})

	out := make([]triggeredEventResponse, 0, len(triggered))
	for _, t := range triggered {
		resp := triggeredEventResponse{
			EventID: t.EventID,
			Type:    string(t.Type),
			Sent:    t.Result.Success,
		}
		if !t.Result.Success {
			resp.Reason = t.Result.Reason
		}
		out = append(out, resp)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"triggered": out})
}

type progressRequest struct {
	Increment int `json:"increment"`
}

// Progress applies a challenge progress increment and dispatches any
// milestone or completion notifications it produces
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	challengeID := chi.URLParam(r, "challengeID")

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, events := h.tracker.Track(r.Context(), userID, challengeID, req.Increment)
	if progress == nil {
		// Stale challenge id or a storage failure; either way the
		// increment was not tracked.
		writeJSON(w, http.StatusOK, map[string]interface{}{"tracked": false})
		return
	}

	if len(events) > 0 {
		h.notifier.Notify(r.Context(), userID, events)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracked":    true,
		"current":    progress.Current,
		"target":     progress.Target,
		"percentage": progress.Percentage(),
		"completed":  progress.Completed,
	})
}

// ChallengeProgress reads the user's current progress row without
// applying an increment
func (h *Handler) ChallengeProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	challengeID := chi.URLParam(r, "challengeID")

	progress, err := h.tracker.Progress(r.Context(), userID, challengeID)
	if err != nil {
		log.Printf("Error reading progress for user %s challenge %s: %v", userID, challengeID, err)
		writeError(w, http.StatusInternalServerError, "failed to read progress")
		return
	}
	if progress == nil {
		writeError(w, http.StatusNotFound, "no progress for this challenge")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current":    progress.Current,
		"target":     progress.Target,
		"percentage": progress.Percentage(),
		"completed":  progress.Completed,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
