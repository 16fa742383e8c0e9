// Package server exposes the assistant over a small JSON HTTP API. Tenant
// identity arrives in headers set by the POS gateway, which has already
// authenticated the caller.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pos-assistant/internal/assistant"
	poserrors "pos-assistant/internal/common/errors"
	"pos-assistant/internal/common/logger"
	"pos-assistant/internal/common/observability"
)

const (
	headerRestaurantID   = "X-Restaurant-ID"
	headerRestaurantName = "X-Restaurant-Name"
	headerUserID         = "X-User-ID"
)

// AssistantService is the part of the assistant the HTTP layer calls.
type AssistantService interface {
	ProcessMessage(ctx context.Context, t assistant.Tenant, message, conversationID string) (*assistant.ParseResult, error)
	ConfirmChanges(ctx context.Context, t assistant.Tenant, changes []assistant.ChangeRequest) (*assistant.ConfirmResult, error)
	Cancel(ctx context.Context, t assistant.Tenant) *assistant.ConfirmResult
}

type Server struct {
	svc    AssistantService
	logger logger.Logger
	obs    *observability.Observability
	mux    *http.ServeMux
}

func New(svc AssistantService, obs *observability.Observability, log logger.Logger) *Server {
	s := &Server{
		svc:    svc,
		logger: log.With(map[string]interface{}{"component": "server"}),
		obs:    obs,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/assistant/parse", s.handleParse)
	s.mux.HandleFunc("/api/assistant/confirm", s.handleConfirm)
	s.mux.HandleFunc("/api/assistant/cancel", s.handleCancel)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

type parseRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type confirmRequest struct {
	Changes []assistant.ChangeRequest `json:"changes"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	t, ok := s.requireTenant(w, r)
	if !ok {
		return
	}

	var req parseRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	result, err := s.svc.ProcessMessage(r.Context(), t, req.Message, req.ConversationID)
	s.obs.RecordDuration(r.Context(), "parse", time.Since(start))
	if err != nil {
		s.obs.RecordRequest(r.Context(), "parse", "error")
		s.writeError(w, err)
		return
	}
	s.obs.RecordRequest(r.Context(), "parse", "ok")
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	t, ok := s.requireTenant(w, r)
	if !ok {
		return
	}

	var req confirmRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.svc.ConfirmChanges(r.Context(), t, req.Changes)
	if err != nil {
		s.obs.RecordRequest(r.Context(), "confirm", "error")
		s.writeError(w, err)
		return
	}
	s.obs.RecordRequest(r.Context(), "confirm", "ok")
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	t, ok := s.requireTenant(w, r)
	if !ok {
		return
	}
	s.obs.RecordRequest(r.Context(), "cancel", "ok")
	s.writeJSON(w, http.StatusOK, s.svc.Cancel(r.Context(), t))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) requireTenant(w http.ResponseWriter, r *http.Request) (assistant.Tenant, bool) {
	if r.Method != http.MethodPost {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return assistant.Tenant{}, false
	}

	t := assistant.Tenant{
		RestaurantID:   r.Header.Get(headerRestaurantID),
		RestaurantName: r.Header.Get(headerRestaurantName),
		UserID:         r.Header.Get(headerUserID),
	}
	if t.RestaurantID == "" || t.UserID == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "X-Restaurant-ID and X-User-ID headers are required",
		})
		return assistant.Tenant{}, false
	}
	return t, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := poserrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case poserrors.ErrCodeEmptyMessage, poserrors.ErrCodeNoChanges:
		status = http.StatusBadRequest
	case poserrors.ErrCodeConversationNotFound, poserrors.ErrCodeItemNotFound:
		status = http.StatusNotFound
	}

	body := map[string]string{"error": err.Error()}
	if code != "" {
		body["code"] = string(code)
	}
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed", nil)
		body["error"] = "internal error"
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("response encode failed", nil)
	}
}
