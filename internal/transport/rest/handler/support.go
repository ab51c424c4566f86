package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"playercare/internal/cache"
	"playercare/internal/model"
	"playercare/internal/repository"
	"playercare/internal/service"

	"github.com/google/uuid"
)

// SupportHandler exposes the decision-engine operations
type SupportHandler struct {
	support      *service.SupportService
	classifier   *service.ClassifierService
	compensation *service.CompensationService
	resolution   *service.ResolutionService
	players      repository.PlayerRepo
	sessions     cache.SessionCache
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(
	support *service.SupportService,
	classifier *service.ClassifierService,
	compensation *service.CompensationService,
	resolution *service.ResolutionService,
	players repository.PlayerRepo,
	sessions cache.SessionCache,
) *SupportHandler {
	return &SupportHandler{
		support:      support,
		classifier:   classifier,
		compensation: compensation,
		resolution:   resolution,
		players:      players,
		sessions:     sessions,
	}
}

// AnalyzeRequest is the request body for message analysis
type AnalyzeRequest struct {
	PlayerID  string `json:"playerId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

// Analyze handles POST /v1/support/analyze
func (h *SupportHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := h.loadProfile(r, req.PlayerID)
	analysis := h.support.AnalyzeMessage(r.Context(), req.Message, profile)

	if h.sessions != nil {
		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		h.saveAnalysis(r, sessionID, req, analysis)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"sessionId": sessionID,
			"analysis":  analysis,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"analysis": analysis})
}

// ClassifyRequest is the request body for problem classification
type ClassifyRequest struct {
	PlayerID    string `json:"playerId,omitempty"`
	Description string `json:"description"`
}

// Classify handles POST /v1/support/classify
func (h *SupportHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Description) < 10 {
		writeError(w, http.StatusBadRequest, "description must be at least 10 characters")
		return
	}

	profile := h.loadProfile(r, req.PlayerID)
	cls := h.classifier.ClassifyProblem(r.Context(), req.Description, profile)
	writeJSON(w, http.StatusOK, cls)
}

// Compensation handles POST /v1/support/compensation
func (h *SupportHandler) Compensation(w http.ResponseWriter, r *http.Request) {
	var params model.CompensationParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.compensation.Calculate(params)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ResolveRequest is the request body for automated resolution
type ResolveRequest struct {
	PlayerID string           `json:"playerId,omitempty"`
	Form     model.IntakeForm `json:"form"`
}

// Resolve handles POST /v1/support/resolve
func (h *SupportHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := h.loadProfile(r, req.PlayerID)
	result := h.resolution.ResolveIssue(r.Context(), &req.Form, profile)
	writeJSON(w, http.StatusOK, result)
}

// ReplyRequest is the request body for reply generation
type ReplyRequest struct {
	PlayerID  string `json:"playerId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

// Reply handles POST /v1/support/reply
func (h *SupportHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := h.loadProfile(r, req.PlayerID)
	parsed, err := h.support.GenerateReply(r.Context(), req.Message, profile)
	if err != nil {
		if errors.Is(err, service.ErrGenerationUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "reply generation is temporarily unavailable")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.sessions != nil && req.SessionID != "" {
		if err := h.sessions.AppendTurn(r.Context(), req.SessionID, model.ChatTurn{
			Role:    model.RoleAssistant,
			Content: parsed.Solution,
		}); err != nil {
			log.Printf("session update failed: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, parsed)
}

// ParseReplyRequest is the request body for standalone reply parsing
type ParseReplyRequest struct {
	Text string `json:"text"`
}

// ParseReply handles POST /v1/support/reply/parse
func (h *SupportHandler) ParseReply(w http.ResponseWriter, r *http.Request) {
	var req ParseReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	parser := service.NewReplyParser()
	writeJSON(w, http.StatusOK, parser.Parse(req.Text))
}

// loadProfile resolves the player profile, tolerating lookup failures; the
// engines accept a nil profile.
func (h *SupportHandler) loadProfile(r *http.Request, playerID string) *model.PlayerProfile {
	if playerID == "" || h.players == nil {
		return nil
	}
	profile, err := h.players.GetByID(r.Context(), playerID)
	if err != nil {
		log.Printf("profile lookup failed for %s: %v", playerID, err)
		return nil
	}
	return profile
}

func (h *SupportHandler) saveAnalysis(r *http.Request, sessionID string, req AnalyzeRequest, analysis *model.MessageAnalysis) {
	session, err := h.sessions.GetSession(r.Context(), sessionID)
	if err != nil {
		log.Printf("session load failed: %v", err)
		return
	}
	if session == nil {
		session = &model.SupportSession{
			ID:        sessionID,
			PlayerID:  req.PlayerID,
			CreatedAt: time.Now(),
		}
	}
	session.Turns = append(session.Turns, model.ChatTurn{Role: model.RoleHuman, Content: req.Message})
	session.LastAnalysis = analysis
	if err := h.sessions.SetSession(r.Context(), session); err != nil {
		log.Printf("session save failed: %v", err)
	}
}
