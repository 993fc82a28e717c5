package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medic/supportbot/internal/chat"
	"github.com/medic/supportbot/internal/faq"
	"github.com/medic/supportbot/internal/hours"
	"github.com/medic/supportbot/internal/models"
	"github.com/medic/supportbot/internal/profile"
)

type Handler struct {
	Chat      *chat.Service
	FAQ       *faq.KnowledgeBase
	Hours     hours.Config
	Store     profile.Store
	Validator *validator.Validate
	Logger    zerolog.Logger
	Now       func() time.Time
}

type ChatRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

type HoursResponse struct {
	Open      bool     `json:"open"`
	StartHour int      `json:"start_hour"`
	EndHour   int      `json:"end_hour"`
	Timezone  string   `json:"timezone"`
	Holidays  []string `json:"holidays"`
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "STORE_ERROR", "Profile store unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Send a chat message
// @Description Runs one conversational turn and returns the bot messages and the routed action
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "message"
// @Success 200 {object} chat.Reply
// @Failure 400 {object} map[string]any
// @Router /api/chat [post]
func (h *Handler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := h.Chat.Handle(c.Request.Context(), req.SessionID, req.Message)
	if errors.Is(err, chat.ErrEmptyMessage) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is empty", nil)
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Str("session_id", req.SessionID).Msg("chat turn failed")
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to process message", err.Error())
		return
	}
	c.JSON(http.StatusOK, reply)
}

// @Summary List FAQ topics
// @Tags faq
// @Produce json
// @Success 200 {array} FAQItem
// @Router /api/faq [get]
func (h *Handler) FAQList(c *gin.Context) {
	entries := h.FAQ.Entries()
	out := make([]FAQItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, FAQItem{ID: e.ID, Question: e.Question})
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Business hours status
// @Tags hours
// @Produce json
// @Success 200 {object} HoursResponse
// @Router /api/hours [get]
func (h *Handler) HoursStatus(c *gin.Context) {
	c.JSON(http.StatusOK, HoursResponse{
		Open:      h.Hours.IsOpen(h.now()),
		StartHour: h.Hours.StartHour,
		EndHour:   h.Hours.EndHour,
		Timezone:  h.Hours.Location.String(),
		Holidays:  h.Hours.Holidays(),
	})
}

// @Summary Get the cached session profile
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} models.Profile
// @Failure 404 {object} map[string]any
// @Router /api/sessions/{id}/profile [get]
func (h *Handler) ProfileGet(c *gin.Context) {
	p, err := h.Chat.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load profile", err.Error())
		return
	}
	if p.Empty() {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Profile not found", nil)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Forget the cached session profile
// @Tags sessions
// @Param id path string true "session id"
// @Success 204
// @Failure 404 {object} map[string]any
// @Router /api/sessions/{id}/profile [delete]
func (h *Handler) ProfileDelete(c *gin.Context) {
	err := h.Chat.Logout(c.Request.Context(), c.Param("id"))
	if errors.Is(err, profile.ErrNotFound) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Profile not found", nil)
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete profile", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Read a session transcript
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {array} models.Turn
// @Router /api/sessions/{id}/transcript [get]
func (h *Handler) Transcript(c *gin.Context) {
	turns, err := h.Chat.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load transcript", err.Error())
		return
	}
	if turns == nil {
		turns = []models.Turn{}
	}
	c.JSON(http.StatusOK, turns)
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
