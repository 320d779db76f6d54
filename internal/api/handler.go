package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/eugenenazirov/settings-registry/internal/settings"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Registry is the store surface the HTTP layer depends on.
type Registry interface {
	Get(ctx context.Context, key string) (string, error)
	Update(key, value string)
	Load(ctx context.Context) (settings.LoadOutcome, error)
	Snapshot() map[string]string
	Loaded() bool
}

// Handler wires the settings registry into HTTP handlers.
type Handler struct {
	registry Registry

	clock func() time.Time

	mu        sync.RWMutex
	updatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler backed by the provided registry.
func NewHandler(registry Registry, opts ...HandlerOption) *Handler {
	h := &Handler{
		registry: registry,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.updatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Loaded:    h.registry.Loaded(),
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListSettings(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := settingsResponse{
		Settings:  h.registry.Snapshot(),
		Loaded:    h.registry.Loaded(),
		UpdatedAt: h.currentUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "setting key must not be empty")
		return
	}

	value, err := h.registry.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Unknown setting", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: value})
}

func (h *Handler) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "setting key must not be empty")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "value field is required")
		return
	}

	h.registry.Update(key, *req.Value)
	h.markUpdated()

	resp := settingResponse{
		Key:     key,
		Value:   *req.Value,
		Message: "Setting updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.registry.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Load failed", err.Error())
		return
	}

	resp := loadResponse{
		Outcome: outcome.String(),
		Loaded:  h.registry.Loaded(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.updatedAt
}

func (h *Handler) markUpdated() {
	h.mu.Lock()
	h.updatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type updateRequest struct {
	Value *string `json:"value"`
}

type settingResponse struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Message string `json:"message,omitempty"`
}

type settingsResponse struct {
	Settings  map[string]string `json:"settings"`
	Loaded    bool              `json:"loaded"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type loadResponse struct {
	Outcome string `json:"outcome"`
	Loaded  bool   `json:"loaded"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Loaded    bool      `json:"loaded"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
