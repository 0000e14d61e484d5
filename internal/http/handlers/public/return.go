package public

import (
	"strconv"
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/http/handlers/shared"
	"github.com/vendora-market/internal/http/response"
	"github.com/vendora-market/internal/repository"
	"github.com/vendora-market/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckReturnEligibility 售后资格预检
func (h *Handler) CheckReturnEligibility(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	subOrderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || subOrderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.ReturnService.CheckEligibility(uint(subOrderID), userID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// CreateReturnRequestBody 发起售后请求体
type CreateReturnRequestBody struct {
	SubOrderID   uint                            `json:"sub_order_id" binding:"required"`
	Type         string                          `json:"type" binding:"required"`
	Reason       string                          `json:"reason" binding:"required"`
	Description  string                          `json:"description"`
	IsFullReturn bool                            `json:"is_full_return"`
	Items        []service.CreateReturnItemInput `json:"items"`
}

// CreateReturn 买家发起售后
func (h *Handler) CreateReturn(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateReturnRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	request, err := h.ReturnService.CreateReturnRequest(service.CreateReturnInput{
		SubOrderID:   req.SubOrderID,
		BuyerID:      userID,
		Type:         req.Type,
		Reason:       req.Reason,
		Description:  req.Description,
		IsFullReturn: req.IsFullReturn,
		Items:        req.Items,
	}, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}

// ListReturns 买家查询自己的售后工单
func (h *Handler) ListReturns(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)

	requests, total, err := h.ReturnService.List(repository.ReturnRequestListFilter{
		Page:     page,
		PageSize: pageSize,
		BuyerID:  userID,
		Type:     c.Query("type"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, requests, shared.BuildPagination(page, pageSize, total))
}

// GetReturn 买家查看售后工单详情，附带未读留言数。
func (h *Handler) GetReturn(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	request, err := h.ReturnService.GetForBuyer(uint(id), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	unread, err := h.MessageService.GetUnreadCount(request.ID, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"return_request": request,
		"unread_count":   unread,
	})
}

// EscalateReturn 买家申请平台介入
func (h *Handler) EscalateReturn(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	request, err := h.ReturnService.GetForBuyer(uint(id), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	escalated, err := h.ReturnService.Escalate(request.ID, nil, constants.EscalationReasonBuyerRequest, "", time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, escalated)
}
