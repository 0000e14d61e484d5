package seller

import (
	"time"

	"github.com/vendora-market/internal/http/handlers/shared"
	"github.com/vendora-market/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddMessageRequest 追加留言请求
type AddMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListReturnMessages 商家查看留言并把买家留言标记为已读
func (h *Handler) ListReturnMessages(c *gin.Context) {
	storeID, ok := h.requireStore(c)
	if !ok {
		return
	}
	id, ok := parseReturnID(c)
	if !ok {
		return
	}
	request, err := h.ReturnService.GetForStore(id, storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if _, err := h.MessageService.MarkMessagesAsRead(request.ID, true, time.Now()); err != nil {
		respondServiceError(c, err)
		return
	}
	messages, err := h.MessageService.ListMessages(request.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, messages)
}

// AddReturnMessage 商家追加留言，首条留言记为首次响应。
func (h *Handler) AddReturnMessage(c *gin.Context) {
	storeID, ok := h.requireStore(c)
	if !ok {
		return
	}
	id, ok := parseReturnID(c)
	if !ok {
		return
	}
	request, err := h.ReturnService.GetForStore(id, storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	userID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	message, err := h.MessageService.AddMessage(request.ID, userID, true, req.Content, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, message)
}
