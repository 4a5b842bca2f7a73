// Package server exposes the clarification engine over HTTP: one endpoint
// set per session, a citizen view and a staff view. The server holds no
// state beyond the in-memory session manager.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/fairroute/intake-cli/internal/clarify"
	"github.com/fairroute/intake-cli/internal/intake"
)

// Server routes session requests to workspaces.
type Server struct {
	manager *Manager
	router  chi.Router
}

// New builds the HTTP handler around a session manager.
func New(manager *Manager, allowedOrigins []string) *Server {
	s := &Server{manager: manager}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/question", s.handleQuestion)
			r.Post("/answer", s.handleAnswer)
			r.Post("/advance", s.handleAdvance)
			r.Post("/goto", s.handleGoTo)
			r.Post("/evaluate", s.handleEvaluate)
			r.Post("/confirm", s.handleConfirm)
			r.Get("/citizen", s.handleCitizenView)
			r.Get("/staff", s.handleStaffView)
		})
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("server: write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// errorStatus maps engine errors onto HTTP statuses. Upstream failures are
// a bad gateway; everything the caller can fix is a conflict.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, intake.ErrRequestInFlight),
		errors.Is(err, intake.ErrParseRequired),
		errors.Is(err, intake.ErrClarifyIncomplete),
		errors.Is(err, intake.ErrStaleResponse),
		errors.Is(err, intake.ErrNothingToConfirm),
		errors.Is(err, clarify.ErrCannotAdvance):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) workspace(w http.ResponseWriter, r *http.Request) (*intake.Workspace, bool) {
	id := chi.URLParam(r, "sessionID")
	ws, ok := s.manager.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return nil, false
	}
	return ws, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.manager.Len()})
}

type createRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	lang := resolveLanguage(r, req.Language)

	id, ws := s.manager.Create()
	if err := ws.Parse(r.Context(), req.Text, lang); err != nil {
		s.manager.Delete(id)
		zap.L().Warn("server: parse failed", zap.Error(err))
		writeError(w, errorStatus(err), "the intake service could not read your situation, please try again")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": id,
		"citizen":    ws.CitizenView(lang),
	})
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	view := ws.CitizenView(resolveLanguage(r, r.URL.Query().Get("lang")))
	if view.Question == nil {
		writeJSON(w, http.StatusOK, map[string]any{"phase": view.Phase})
		return
	}
	writeJSON(w, http.StatusOK, view.Question)
}

type answerRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lang := resolveLanguage(r, "")

	field := req.Field
	if field == "" {
		view := ws.CitizenView(lang)
		if view.Question == nil {
			writeError(w, http.StatusConflict, "no question is active")
			return
		}
		field = view.Question.Field
	}
	ws.RecordAnswer(field, req.Value)
	writeJSON(w, http.StatusOK, ws.CitizenView(lang))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.Advance(); err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ws.CitizenView(resolveLanguage(r, "")))
}

type gotoRequest struct {
	Index int `json:"index"`
}

func (s *Server) handleGoTo(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	var req gotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := ws.GoTo(req.Index); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ws.CitizenView(resolveLanguage(r, "")))
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.Evaluate(r.Context()); err != nil {
		zap.L().Warn("server: evaluate failed", zap.Error(err))
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ws.CitizenView(resolveLanguage(r, "")))
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.Confirm(); err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ws.CitizenView(resolveLanguage(r, "")))
}

func (s *Server) handleCitizenView(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws.CitizenView(resolveLanguage(r, r.URL.Query().Get("lang"))))
}

func (s *Server) handleStaffView(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws.StaffView(resolveLanguage(r, r.URL.Query().Get("lang"))))
}
