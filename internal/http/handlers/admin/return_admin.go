package admin

import (
	"strconv"
	"time"

	"github.com/vendora-market/internal/constants"
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

func queryBoolPtr(c *gin.Context, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func queryTimePtr(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

// ListReturns 平台查询售后工单列表
func (h *Handler) ListReturns(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	storeID, _ := strconv.ParseUint(c.Query("store_id"), 10, 64)
	buyerID, _ := strconv.ParseUint(c.Query("buyer_id"), 10, 64)

	requests, total, err := h.ReturnService.List(repository.ReturnRequestListFilter{
		Page:        page,
		PageSize:    pageSize,
		BuyerID:     uint(buyerID),
		StoreID:     uint(storeID),
		Type:        c.Query("type"),
		Status:      c.Query("status"),
		ReturnNo:    c.Query("return_no"),
		Escalated:   queryBoolPtr(c, "escalated"),
		Breached:    queryBoolPtr(c, "breached"),
		CreatedFrom: queryTimePtr(c, "created_from"),
		CreatedTo:   queryTimePtr(c, "created_to"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, requests, shared.BuildPagination(page, pageSize, total))
}

// GetReturn 平台查看售后工单详情，附带仲裁台账与留言。
func (h *Handler) GetReturn(c *gin.Context) {
	id, ok := parseReturnID(c)
	if !ok {
		return
	}

	request, err := h.ReturnService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	actions, err := h.ReturnService.ListAdminActions(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	messages, err := h.MessageService.ListMessages(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"return_request": request,
		"admin_actions":  actions,
		"messages":       messages,
	})
}

// EscalateRequest 平台升级工单请求体
type EscalateRequest struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// EscalateReturn 平台主动把工单升级为仲裁
func (h *Handler) EscalateReturn(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseReturnID(c)
	if !ok {
		return
	}
	var req EscalateRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	reason := req.Reason
	if reason == "" {
		reason = constants.EscalationReasonAdminManualFlag
	}

	request, err := h.ReturnService.Escalate(id, &adminID, reason, req.Notes, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}

// DecisionRequest 平台仲裁裁决请求体
type DecisionRequest struct {
	ActionType     string           `json:"action_type" binding:"required"`
	NewStatus      string           `json:"new_status"`
	ResolutionType string           `json:"resolution_type"`
	Amount         *decimal.Decimal `json:"amount"`
	Notes          string           `json:"notes"`
}

// RecordDecision 平台对仲裁中的工单做出裁决
func (h *Handler) RecordDecision(c *gin.Context) {
	adminID, ok := getAdminID(c)
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

	request, err := h.ReturnService.RecordAdminDecision(id, adminID, service.AdminDecisionInput{
		ActionType: req.ActionType,
		NewStatus:  req.NewStatus,
		Resolution: service.ResolveInput{
			ResolutionType: req.ResolutionType,
			Amount:         req.Amount,
			Notes:          req.Notes,
		},
	}, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}

// ConfirmReturnCompletion 确认退款到账并完结工单
func (h *Handler) ConfirmReturnCompletion(c *gin.Context) {
	id, ok := parseReturnID(c)
	if !ok {
		return
	}
	request, err := h.ReturnService.ConfirmCompletion(id, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}

// ListActions 查询工单仲裁台账
func (h *Handler) ListActions(c *gin.Context) {
	id, ok := parseReturnID(c)
	if !ok {
		return
	}
	actions, err := h.ReturnService.ListAdminActions(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, actions)
}
