package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"money-mind/internal/domain"
	"money-mind/internal/service"
	"money-mind/internal/voice"
)

// SessionHandler mantiene dependencias para los endpoints de sesiones.
type SessionHandler struct {
	logger   *zap.Logger
	sessions *service.SessionService
	speaker  voice.Speaker
	limiter  service.SessionRateLimiter
}

// NewSessionHandler crea una instancia de SessionHandler con sus dependencias.
func NewSessionHandler(
	logger *zap.Logger,
	sessions *service.SessionService,
	speaker voice.Speaker,
	limiter service.SessionRateLimiter,
) *SessionHandler {
	return &SessionHandler{
		logger:   logger,
		sessions: sessions,
		speaker:  speaker,
		limiter:  limiter,
	}
}

// CreateSession maneja POST /sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many sessions, try again later"})
		return
	}

	session, first, err := h.sessions.StartSession(c.Request.Context(), service.DefaultScript())
	if err != nil {
		h.logger.Error("start session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}

	h.announce(first)

	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"guide_turn": first,
		"script_len": len(session.Script),
	})
}

// SubmitResponse maneja POST /sessions/:id/responses.
func (h *SessionHandler) SubmitResponse(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit response request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, outcome, err := h.sessions.SubmitResponse(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("submit response failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process response"})
		return
	}

	if outcome.NextTurn != nil {
		h.announce(*outcome.NextTurn)
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"accepted":   outcome.Accepted,
		"completed":  outcome.Completed,
		"step_index": session.State.StepIndex,
		"next_turn":  outcome.NextTurn,
		"result":     outcome.Result,
	})
}

// GetSession maneja GET /sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessions.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("get session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"step_index": session.State.StepIndex,
		"terminal":   session.State.StepIndex >= len(session.Script),
		"transcript": session.State.Transcript,
		"created_at": session.CreatedAt,
	})
}

// GetInsights maneja GET /sessions/:id/insights.
func (h *SessionHandler) GetInsights(c *gin.Context) {
	session, err := h.sessions.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("get insights failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insights":  session.State.Insights,
		"archetype": session.State.Insights.ArchetypeOrDefault(),
	})
}

// announce manda el turno de guía al proveedor de voz sin bloquear la
// respuesta HTTP; un fallo solo se loguea.
func (h *SessionHandler) announce(turn domain.GuideTurn) {
	if h.speaker == nil {
		return
	}
	go func(text string) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.speaker.Announce(ctx, text); err != nil {
			h.logger.Debug("voice announce failed", zap.Error(err))
		}
	}(turn.Text)
}
