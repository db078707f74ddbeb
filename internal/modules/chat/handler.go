package chat

import (
	"net/http"
	"strconv"

	"petmarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/chat")
	{
		group.POST("/conversations", h.CreateConversation)
		group.GET("/conversations", h.ListConversations)
		group.GET("/conversations/:id/messages", h.ListMessages)
		group.POST("/conversations/:id/messages", h.SendMessage)
		group.POST("/conversations/:id/read", h.MarkRead)
	}
}

func (h *Handler) CreateConversation(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	conv, initial, err := h.service.GetOrCreateConversation(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := gin.H{"conversation": toConversationResponse(conv, userID)}
	if initial != nil {
		out["initial_message"] = toMessageResponse(initial)
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID := c.GetInt64("user_id")

	convs, err := h.service.ListConversations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list conversations")
		return
	}

	items := make([]ConversationResponse, 0, len(convs))
	for i := range convs {
		items = append(items, toConversationResponse(&convs[i], userID))
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": items})
}

func (h *Handler) ListMessages(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	msgs, err := h.service.ListMessages(c.Request.Context(), userID, c.Param("id"), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	items := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, toMessageResponse(&msgs[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"messages": items})
}

func (h *Handler) SendMessage(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": toMessageResponse(msg)})
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
	case ErrNotParticipant:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not part of this conversation")
	case ErrSelfChat:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot start a conversation with yourself")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
