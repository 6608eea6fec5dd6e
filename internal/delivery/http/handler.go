package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopassist/backend/internal/domain"
	"github.com/shopassist/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	assistant *usecase.AssistantService
	catalog   *usecase.CatalogService
	sessions  *SessionStore
}

// NewHandler creates a new HTTP handler
func NewHandler(assistant *usecase.AssistantService, catalog *usecase.CatalogService, sessions *SessionStore) *Handler {
	return &Handler{
		assistant: assistant,
		catalog:   catalog,
		sessions:  sessions,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	status := gin.H{
		"status":  "healthy",
		"service": "shopassist-backend",
		"version": "1.0.0",
	}
	if h.catalog != nil {
		status["catalogSize"] = h.catalog.Size()
	}
	if h.sessions != nil {
		status["sessions"] = h.sessions.Count()
	}
	c.JSON(http.StatusOK, status)
}

// ChatRequest is the body of one chat turn.
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse carries the assistant's reply for one turn.
type ChatResponse struct {
	SessionID    string           `json:"sessionId"`
	Text         string           `json:"text"`
	Products     []domain.Product `json:"products,omitempty"`
	IsComparison bool             `json:"isComparison"`
}

// Chat handles one conversation turn: append the user message, resolve it
// through the assistant core and return the reply.
func (h *Handler) Chat(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant not ready"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	sessionID, sess := h.sessions.GetOrCreate(req.SessionID, usecase.Greeting)

	// One turn at a time per session.
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.state.Messages = append(sess.state.Messages, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: req.Message,
	})

	reply, next := h.assistant.Respond(c.Request.Context(), req.Message, sess.state)
	next.Messages = append(next.Messages, domain.ChatMessage{
		Role:         domain.RoleAssistant,
		Content:      reply.Text,
		Products:     reply.Products,
		IsComparison: reply.IsComparison,
	})
	sess.state = next

	c.JSON(http.StatusOK, ChatResponse{
		SessionID:    sessionID,
		Text:         reply.Text,
		Products:     reply.Products,
		IsComparison: reply.IsComparison,
	})
}

// ChatMessages returns a session's display log.
func (h *Handler) ChatMessages(c *gin.Context) {
	messages, err := h.sessions.Messages(c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// RefreshCatalog replaces the catalog snapshot wholesale.
func (h *Handler) RefreshCatalog(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not ready"})
		return
	}

	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"products": h.catalog.Size(),
	})
}
