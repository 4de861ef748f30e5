package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/service"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/session"
)

// SessionView is the wire representation of a detail session.
type SessionView struct {
	ID               string         `json:"id"`
	Food             models.Food    `json:"food"`
	Extras           []models.Extra `json:"extras"`
	FoodQuantity     int            `json:"food_quantity"`
	Total            float64        `json:"total"`
	FormattedTotal   string         `json:"formatted_total"`
	IsFavorite       bool           `json:"is_favorite"`
	FavoriteResolved bool           `json:"favorite_resolved"`
	OrderConfirmed   bool           `json:"order_confirmed"`
}

func (h *Handlers) sessionView(sess *session.Session) SessionView {
	total := h.sessionService.Total(sess)

	return SessionView{
		ID:               sess.ID(),
		Food:             sess.Food(),
		Extras:           sess.Extras(),
		FoodQuantity:     sess.FoodQuantity(),
		Total:            total,
		FormattedTotal:   service.FormatValue(total),
		IsFavorite:       sess.Favorite(),
		FavoriteResolved: sess.FavoriteResolved(),
		OrderConfirmed:   sess.Confirmed(),
	}
}

// OpenSession handles POST /api/v1/sessions
func (h *Handlers) OpenSession(c *gin.Context) {
	var req struct {
		FoodID int64 `json:"food_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess, err := h.sessionService.OpenSession(c.Request.Context(), req.FoodID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.sessionView(sess))
}

// GetSession handles GET /api/v1/sessions/:id
func (h *Handlers) GetSession(c *gin.Context) {
	sess := h.sessionService.GetSession(c.Param("id"))
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, h.sessionView(sess))
}

// IncrementExtra handles POST /api/v1/sessions/:id/extras/:extra_id/increment
func (h *Handlers) IncrementExtra(c *gin.Context) {
	h.adjustExtra(c, func(sess *session.Session, extraID int64) {
		sess.IncrementExtra(extraID)
	})
}

// DecrementExtra handles POST /api/v1/sessions/:id/extras/:extra_id/decrement
func (h *Handlers) DecrementExtra(c *gin.Context) {
	h.adjustExtra(c, func(sess *session.Session, extraID int64) {
		sess.DecrementExtra(extraID)
	})
}

func (h *Handlers) adjustExtra(c *gin.Context, apply func(*session.Session, int64)) {
	sess := h.sessionService.GetSession(c.Param("id"))
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	extraID, err := strconv.ParseInt(c.Param("extra_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid extra ID"})
		return
	}

	apply(sess, extraID)

	c.JSON(http.StatusOK, h.sessionView(sess))
}

// IncrementQuantity handles POST /api/v1/sessions/:id/quantity/increment
func (h *Handlers) IncrementQuantity(c *gin.Context) {
	sess := h.sessionService.GetSession(c.Param("id"))
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	sess.IncrementFoodQuantity()

	c.JSON(http.StatusOK, h.sessionView(sess))
}

// DecrementQuantity handles POST /api/v1/sessions/:id/quantity/decrement
func (h *Handlers) DecrementQuantity(c *gin.Context) {
	sess := h.sessionService.GetSession(c.Param("id"))
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	sess.DecrementFoodQuantity()

	c.JSON(http.StatusOK, h.sessionView(sess))
}

// ToggleFavorite handles POST /api/v1/sessions/:id/favorite
func (h *Handlers) ToggleFavorite(c *gin.Context) {
	sess := h.sessionService.GetSession(c.Param("id"))
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	favorite, err := h.sessionService.ToggleFavorite(c.Request.Context(), sess)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorite": favorite})
}

// SubmitOrder handles POST /api/v1/sessions/:id/order
func (h *Handlers) SubmitOrder(c *gin.Context) {
	sess := h.sessionService.GetSession(c.Param("id"))
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	payload, err := h.sessionService.SubmitOrder(c.Request.Context(), sess)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_confirmed": sess.Confirmed(),
		"order":           payload,
	})
}

// CloseSession handles DELETE /api/v1/sessions/:id
func (h *Handlers) CloseSession(c *gin.Context) {
	sess := h.sessionService.GetSession(c.Param("id"))
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	h.sessionService.CloseSession(sess)

	c.Status(http.StatusNoContent)
}

func (h *Handlers) handleError(c *gin.Context, err error) {
	switch err {
	case service.ErrFoodNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
	case service.ErrSessionClosed:
		c.JSON(http.StatusGone, gin.H{"error": "session closed"})
	default:
		// Store rejections propagate here unhandled; the host renders
		// its own failure message.
		h.logger.Error("Store operation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "store request failed"})
	}
}
