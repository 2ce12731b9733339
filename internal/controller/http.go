package controller

// #region imports
import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/mockstage/interview-engine/internal/archive"
	"github.com/mockstage/interview-engine/internal/eval"
	"github.com/mockstage/interview-engine/internal/machine"
	"github.com/mockstage/interview-engine/internal/session"
	"github.com/mockstage/interview-engine/internal/store"
)

// #endregion

// #region wire-types

type startRequest struct {
	Role       string                   `json:"role"`
	Difficulty string                   `json:"difficulty"`
	Profile    session.CandidateProfile `json:"profile"`
}

type respondRequest struct {
	Message string `json:"message"`
}

type turnResponse struct {
	SessionID     string       `json:"session_id"`
	Status        string       `json:"status"`
	Question      string       `json:"question,omitempty"`
	QuestionCount int          `json:"question_count"`
	MaxQuestions  int          `json:"max_questions"`
	Thinking      string       `json:"thinking,omitempty"`
	Degraded      bool         `json:"degraded,omitempty"`
	Report        *eval.Report `json:"report,omitempty"`
}

type sessionResponse struct {
	SessionID     string         `json:"session_id"`
	Role          string         `json:"role"`
	Difficulty    string         `json:"difficulty"`
	Status        string         `json:"status"`
	QuestionCount int            `json:"question_count"`
	MaxQuestions  int            `json:"max_questions"`
	History       []session.Turn `json:"conversation_history"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// #endregion

// #region server

// NewHandler builds the HTTP surface over a controller.
func NewHandler(ctrl *Controller) http.Handler {
	s := &server{ctrl: ctrl}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /interviews", s.startInterview)
	mux.HandleFunc("POST /interviews/{id}/respond", s.respond)
	mux.HandleFunc("GET /interviews", s.listInterviews)
	mux.HandleFunc("GET /interviews/{id}", s.getInterview)
	mux.HandleFunc("GET /interviews/{id}/report", s.getReport)
	mux.HandleFunc("GET /healthz", s.healthz)
	return mux
}

type server struct {
	ctrl *Controller
}

// #endregion

// #region handlers

func (s *server) startInterview(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.ctrl.StartInterview(r.Context(), req.Role, req.Difficulty, req.Profile)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, turnResponseFrom(res))
}

func (s *server) respond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.ctrl.Respond(r.Context(), r.PathValue("id"), req.Message)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turnResponseFrom(res))
}

func (s *server) getInterview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	st, err := s.ctrl.GetSession(id)
	if err == nil {
		writeJSON(w, http.StatusOK, sessionResponse{
			SessionID:     st.ID,
			Role:          st.Role,
			Difficulty:    st.Difficulty,
			Status:        string(st.Status),
			QuestionCount: st.QuestionCount,
			MaxQuestions:  st.MaxQuestions,
			History:       st.History,
		})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		writeFailure(w, err)
		return
	}
	// Not live any more; fall back to the archive.
	rec, err := s.ctrl.GetInterview(id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *server) getReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.ctrl.GetReport(r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *server) listInterviews(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	recs, err := s.ctrl.ListInterviews(limit)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// #endregion

// #region helpers

func turnResponseFrom(res Result) turnResponse {
	return turnResponse{
		SessionID:     res.State.ID,
		Status:        string(res.State.Status),
		Question:      res.Event.Question,
		QuestionCount: res.Event.QuestionCount,
		MaxQuestions:  res.State.MaxQuestions,
		Thinking:      res.Event.Thinking,
		Degraded:      res.Event.Degraded,
		Report:        res.Report,
	}
}

func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrInvalidDifficulty),
		errors.Is(err, machine.ErrIgnoredInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, archive.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSessionBusy):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("[HTTP] internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] encode response: %v", err)
	}
}

// #endregion
