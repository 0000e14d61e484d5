package seller

import (
	"strconv"
	"time"

	"github.com/vendora-market/internal/http/handlers/shared"
	"github.com/vendora-market/internal/http/response"
	"github.com/vendora-market/internal/repository"
	"github.com/vendora-market/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func parseReturnID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(id), true
}

// ListReturns 商家查询本店售后工单
func (h *Handler) ListReturns(c *gin.Context) {
	storeID, ok := h.requireStore(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)

	requests, total, err := h.ReturnService.List(repository.ReturnRequestListFilter{
		Page:     page,
		PageSize: pageSize,
		StoreID:  storeID,
		Type:     c.Query("type"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, requests, shared.BuildPagination(page, pageSize, total))
}

// GetReturn 商家查看售后工单详情，附带未读留言数。
func (h *Handler) GetReturn(c *gin.Context) {
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
	unread, err := h.MessageService.GetUnreadCount(request.ID, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"return_request": request,
		"unread_count":   unread,
	})
}

// DecisionRequest 受理或驳回请求体
type DecisionRequest struct {
	Notes string `json:"notes"`
}

// ApproveReturn 商家受理售后
func (h *Handler) ApproveReturn(c *gin.Context) {
	storeID, ok := h.requireStore(c)
	if !ok {
		return
	}
	id, ok := parseReturnID(c)
	if !ok {
		return
	}
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	request, err := h.ReturnService.SellerApprove(id, storeID, req.Notes, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}

// RejectReturn 商家驳回售后
func (h *Handler) RejectReturn(c *gin.Context) {
	storeID, ok := h.requireStore(c)
	if !ok {
		return
	}
	id, ok := parseReturnID(c)
	if !ok {
		return
	}
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	request, err := h.ReturnService.SellerReject(id, storeID, req.Notes, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}

// ResolveRequest 处理结论请求体
type ResolveRequest struct {
	ResolutionType string           `json:"resolution_type" binding:"required"`
	Amount         *decimal.Decimal `json:"amount"`
	Notes          string           `json:"notes" binding:"required"`
}

// ResolveReturn 商家记录处理结论
func (h *Handler) ResolveReturn(c *gin.Context) {
	storeID, ok := h.requireStore(c)
	if !ok {
		return
	}
	id, ok := parseReturnID(c)
	if !ok {
		return
	}
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	userID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	request, err := h.ReturnService.SellerResolve(id, storeID, userID, service.ResolveInput{
		ResolutionType: req.ResolutionType,
		Amount:         req.Amount,
		Notes:          req.Notes,
	}, time.Now())
	if err != nil && request == nil {
		respondServiceError(c, err)
		return
	}
	if err != nil {
		// 结论已落库但退款发起失败，返回工单并提示人工跟进。
		shared.RespondError(c, response.CodeInternal, "error.refund_dispatch_failed", err)
		return
	}
	response.Success(c, request)
}
