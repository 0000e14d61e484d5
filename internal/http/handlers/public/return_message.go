package public

import (
	"strconv"
	"time"

	"github.com/vendora-market/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddMessageRequest 追加留言请求
type AddMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) buyerReturnID(c *gin.Context, userID uint) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	request, err := h.ReturnService.GetForBuyer(uint(id), userID)
	if err != nil {
		respondServiceError(c, err)
		return 0, false
	}
	return request.ID, true
}

// ListReturnMessages 买家查看留言并把商家留言标记为已读
func (h *Handler) ListReturnMessages(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	returnID, ok := h.buyerReturnID(c, userID)
	if !ok {
		return
	}

	if _, err := h.MessageService.MarkMessagesAsRead(returnID, false, time.Now()); err != nil {
		respondServiceError(c, err)
		return
	}
	messages, err := h.MessageService.ListMessages(returnID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, messages)
}

// AddReturnMessage 买家追加留言
func (h *Handler) AddReturnMessage(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	returnID, ok := h.buyerReturnID(c, userID)
	if !ok {
		return
	}
	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	message, err := h.MessageService.AddMessage(returnID, userID, false, req.Content, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, message)
}
