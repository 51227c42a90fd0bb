package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"money-mind/internal/service"
)

// RecommendationHandler expone el contenido estático por arquetipo.
type RecommendationHandler struct {
	logger          *zap.Logger
	sessions        *service.SessionService
	recommendations *service.RecommendationService
}

func NewRecommendationHandler(
	logger *zap.Logger,
	sessions *service.SessionService,
	recommendations *service.RecommendationService,
) *RecommendationHandler {
	return &RecommendationHandler{
		logger:          logger,
		sessions:        sessions,
		recommendations: recommendations,
	}
}

// GetRecommendations maneja GET /sessions/:id/recommendations.
// Disponible en cualquier momento de la sesión: usa el arquetipo
// inferido hasta ahora o el default si todavía no hay ninguno.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	session, err := h.sessions.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("get recommendations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		return
	}

	monthlyIncome, ok := parseAmountQuery(c, "monthly_income")
	if !ok {
		return
	}
	investable, ok := parseAmountQuery(c, "investable")
	if !ok {
		return
	}

	rec := h.recommendations.RecommendationsFor(session.State.Insights, monthlyIncome, investable)
	c.JSON(http.StatusOK, rec)
}

// parseAmountQuery lee un monto opcional no negativo del query string.
// Escribe el 400 y devuelve ok=false si el valor es inválido.
func parseAmountQuery(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}
