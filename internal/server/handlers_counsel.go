package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/career-guide/internal/counsel"
	"github.com/jonathan/career-guide/internal/i18n"
	"github.com/jonathan/career-guide/internal/server/middleware"
	"github.com/jonathan/career-guide/internal/types"
)

// ChatResponse is the reply to a chat message.
type ChatResponse struct {
	Message types.ChatMessage `json:"message"`
	Error   string            `json:"error,omitempty"`
}

// TranscriptResponse lists chat messages.
type TranscriptResponse struct {
	Messages []types.ChatMessage `json:"messages"`
}

// handleRecommendations returns career recommendations for an assessment.
// Identical submissions from one user that arrive while a request is in
// flight share its result.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetSession(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.AssessmentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	key := strings.Join([]string{session.Email, req.EducationLevel, req.Stream, req.Skills, req.Interests}, "\x00")
	v, err, _ := s.recommendations.Do(key, func() (any, error) {
		return s.counselor.RecommendCareers(r.Context(), req)
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, v.(*types.RecommendationBundle))
}

// handleGetChat returns the caller's transcript in order, or the latest
// "limit" messages newest first.
func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetSession(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transcript := counsel.NewTranscript(s.store, session.Email)

	var messages []types.ChatMessage
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, convErr := strconv.Atoi(raw)
		if convErr != nil || limit <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		messages, err = transcript.Recent(r.Context(), limit)
	} else {
		messages, err = transcript.Load(r.Context())
	}
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TranscriptResponse{Messages: messages})
}

// handlePostChat sends a message to the counselor and records both sides.
// When the counselor fails the recorded error reply is returned with 502.
func (s *Server) handlePostChat(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetSession(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	lang := requestLanguage(r, req.Language)
	transcript := counsel.NewTranscript(s.store, session.Email)
	reply, err := transcript.Converse(r.Context(), s.counselor, req.Message, lang.Name)

	var svcErr *counsel.ServiceError
	switch {
	case errors.As(err, &svcErr):
		s.jsonResponse(w, http.StatusBadGateway, ChatResponse{Message: reply, Error: svcErr.UserMessage()})
	case err != nil:
		s.failure(w, r, err)
	default:
		s.jsonResponse(w, http.StatusOK, ChatResponse{Message: reply})
	}
}

// handleClearChat replaces the caller's transcript with a "chat cleared"
// message in the request language.
func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetSession(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	lang := requestLanguage(r, r.URL.Query().Get("lang"))
	messages, err := counsel.NewTranscript(s.store, session.Email).Clear(r.Context(), lang.Name)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TranscriptResponse{Messages: messages})
}

// requestLanguage picks the response language: an explicit code first, then
// the Accept-Language header, then English.
func requestLanguage(r *http.Request, explicit string) i18n.Language {
	if explicit != "" {
		if code, ok := i18n.ResolveCode(explicit); ok {
			return i18n.Info(code)
		}
	}
	if code, ok := i18n.MatchAcceptLanguage(r.Header.Get("Accept-Language")); ok {
		return i18n.Info(code)
	}
	return i18n.Info(i18n.DefaultLanguage)
}
