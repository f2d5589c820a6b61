package api

import (
	"fmt"
	"net/http"

	"docuchat/internal/chat_service/service"
	"docuchat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler 负责对话问答相关的 HTTP 接口。
type Handler struct {
	service *service.Service
	log     *logger.Logger
}

// NewHandler 创建一个新的对话 Handler。
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, log: log}
}

// QueryRequest 是 POST /chat/query 的请求体。
// conversation_id 缺省时由服务端生成，并随响应返回给客户端续用。
type QueryRequest struct {
	Query          string `json:"query" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

// Query 处理一轮对话问答。
func (h *Handler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	result, err := h.service.Answer(c.Request.Context(), req.Query, conversationID)
	if err != nil {
		h.log.Error(fmt.Sprintf("Chat query failed for conversation %s: %v", conversationID, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process query"})
		return
	}

	c.JSON(http.StatusOK, result)
}
