package service

import (
	"errors"
	"strings"
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResolveInput 处理结论输入
type ResolveInput struct {
	ResolutionType string
	Amount         *decimal.Decimal
	Notes          string
}

// SellerApprove 商家受理售后。
// 仅 requested 状态可受理，并发改判以先提交的为准。
func (s *ReturnService) SellerApprove(id uint, storeID uint, notes string, now time.Time) (*models.ReturnRequest, error) {
	request, err := s.GetForStore(id, storeID)
	if err != nil {
		return nil, err
	}
	if len(notes) > constants.AdminActionNotesMaxLength {
		return nil, ErrNotesTooLong
	}

	updates := map[string]interface{}{
		"status":       constants.ReturnStatusApproved,
		"seller_notes": notes,
	}
	if request.SellerFirstResponseAt == nil {
		updates["seller_first_response_at"] = now
	}
	if err := s.transitionWhereStatus(id, constants.ReturnStatusRequested, updates); err != nil {
		return nil, err
	}
	return s.afterStatusChange(id, request.Status)
}

// SellerReject 商家驳回售后。
// 驳回必须附说明，驳回后买家可重新发起。
func (s *ReturnService) SellerReject(id uint, storeID uint, notes string, now time.Time) (*models.ReturnRequest, error) {
	request, err := s.GetForStore(id, storeID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(notes) == "" {
		return nil, ErrNotesRequired
	}
	if len(notes) > constants.AdminActionNotesMaxLength {
		return nil, ErrNotesTooLong
	}

	updates := map[string]interface{}{
		"status":       constants.ReturnStatusRejected,
		"seller_notes": notes,
	}
	if request.SellerFirstResponseAt == nil {
		updates["seller_first_response_at"] = now
	}
	if err := s.transitionWhereStatus(id, constants.ReturnStatusRequested, updates); err != nil {
		return nil, err
	}
	return s.afterStatusChange(id, request.Status)
}

// validateResolution 校验结论类型与金额的匹配关系
func validateResolution(request *models.ReturnRequest, input ResolveInput) (*models.Money, error) {
	switch input.ResolutionType {
	case constants.ResolutionTypeFullRefund:
		amount := request.RefundAmount
		return &amount, nil
	case constants.ResolutionTypePartialRefund:
		if input.Amount == nil {
			return nil, ErrResolutionAmountInvalid
		}
		if input.Amount.LessThanOrEqual(decimal.Zero) || input.Amount.GreaterThan(request.RefundAmount.Decimal) {
			return nil, ErrResolutionAmountInvalid
		}
		amount := models.NewMoneyFromDecimal(*input.Amount)
		return &amount, nil
	case constants.ResolutionTypeReplacement, constants.ResolutionTypeNoRefund:
		if input.Amount != nil {
			return nil, ErrResolutionAmountInvalid
		}
		return nil, nil
	default:
		return nil, ErrResolutionTypeInvalid
	}
}

func resolutionNeedsRefund(resolutionType string) bool {
	return resolutionType == constants.ResolutionTypeFullRefund || resolutionType == constants.ResolutionTypePartialRefund
}

// SellerResolve 商家对已受理的售后记录处理结论。
// 结论落库后再发起退款，退款失败不回滚结论，错误原样上抛由调用方呈现。
func (s *ReturnService) SellerResolve(id uint, storeID uint, resolvedBy uint, input ResolveInput, now time.Time) (*models.ReturnRequest, error) {
	request, err := s.GetForStore(id, storeID)
	if err != nil {
		return nil, err
	}
	return s.recordResolution(request, constants.ReturnStatusApproved, resolvedBy, input, now)
}

// recordResolution 落库处理结论并联动退款
func (s *ReturnService) recordResolution(request *models.ReturnRequest, fromStatus string, resolvedBy uint, input ResolveInput, now time.Time) (*models.ReturnRequest, error) {
	changeable, err := s.CanChangeResolution(request)
	if err != nil {
		return nil, err
	}
	if !changeable {
		return nil, ErrResolutionLocked
	}
	if strings.TrimSpace(input.Notes) == "" {
		return nil, ErrNotesRequired
	}
	if len(input.Notes) > constants.AdminActionNotesMaxLength {
		return nil, ErrNotesTooLong
	}
	amount, err := validateResolution(request, input)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":            constants.ReturnStatusResolved,
		"resolution_type":   input.ResolutionType,
		"resolution_amount": amount,
		"resolution_notes":  input.Notes,
		"resolved_at":       now,
		"resolved_by":       resolvedBy,
	}
	if request.SellerFirstResponseAt == nil && fromStatus == constants.ReturnStatusApproved {
		updates["seller_first_response_at"] = now
	}
	if err := s.transitionWhereStatus(request.ID, fromStatus, updates); err != nil {
		return nil, err
	}

	resolved, err := s.GetByID(request.ID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyReturnStatusChanged(resolved, fromStatus)
	}

	if !resolutionNeedsRefund(input.ResolutionType) {
		return resolved, nil
	}
	return s.dispatchResolutionRefund(resolved, resolvedBy)
}

// dispatchResolutionRefund 按结论金额发起退款，工单停留在 resolved 等待到账确认
func (s *ReturnService) dispatchResolutionRefund(request *models.ReturnRequest, initiatedBy uint) (*models.ReturnRequest, error) {
	if request.ResolutionAmount == nil || s.refunds == nil {
		return request, ErrRefundDispatchFailed
	}
	refund, err := s.refunds.DispatchRefund(request, *request.ResolutionAmount, initiatedBy, request.Reason)
	if err != nil || refund == nil {
		logger.Errorw("售后退款发起失败", "return_no", request.ReturnNo, "error", err)
		return request, ErrRefundDispatchFailed
	}
	return request, nil
}

// ConfirmCompletion 确认退款到账并完结工单。
// 涉退款的结论先把退款单确认为已完成，无退款结论的直接完结。
func (s *ReturnService) ConfirmCompletion(id uint, now time.Time) (*models.ReturnRequest, error) {
	request, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request.Status != constants.ReturnStatusResolved {
		return nil, ErrReturnStatusInvalid
	}
	if resolutionNeedsRefund(request.ResolutionType) && s.refunds != nil {
		refund, err := s.refunds.FindByReturn(id)
		if err != nil {
			return nil, err
		}
		if refund == nil {
			return nil, ErrRefundNotFound
		}
		if refund.Status != constants.RefundStatusCompleted {
			if _, err := s.refunds.ConfirmRefund(refund.ID, now); err != nil {
				return nil, err
			}
		}
	}
	updates := map[string]interface{}{
		"status":       constants.ReturnStatusCompleted,
		"completed_at": now,
	}
	if err := s.transitionWhereStatus(id, constants.ReturnStatusResolved, updates); err != nil {
		return nil, err
	}
	return s.afterStatusChange(id, constants.ReturnStatusResolved)
}

// escalatable 仲裁中与终态工单不可再升级
func escalatable(status string) bool {
	switch status {
	case constants.ReturnStatusRequested,
		constants.ReturnStatusApproved,
		constants.ReturnStatusResolved:
		return true
	}
	return false
}

// Escalate 将售后升级为平台仲裁。
// 仲裁中与终态工单不可升级，附言非空时同步追加一条台账。
func (s *ReturnService) Escalate(id uint, escalatedBy *uint, reason string, adminNotes string, now time.Time) (*models.ReturnRequest, error) {
	request, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !escalatable(request.Status) {
		return nil, ErrEscalateStatusInvalid
	}
	if len(adminNotes) > constants.AdminActionNotesMaxLength {
		return nil, ErrNotesTooLong
	}

	actionType := constants.AdminActionEscalated
	switch reason {
	case constants.EscalationReasonSLABreach:
		actionType = constants.AdminActionEscalatedSLABreach
	case constants.EscalationReasonAdminManualFlag:
		actionType = constants.AdminActionManualFlag
	}
	previousStatus := request.Status

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.returnRepo.WithTx(tx).UpdatesWhereStatus(id, previousStatus, map[string]interface{}{
			"status":            constants.ReturnStatusUnderAdminReview,
			"escalated_at":      now,
			"escalated_by":      escalatedBy,
			"escalation_reason": reason,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrReturnStatusInvalid
		}
		if strings.TrimSpace(adminNotes) == "" {
			return nil
		}
		adminID := uint(0)
		if escalatedBy != nil {
			adminID = *escalatedBy
		}
		return s.actionRepo.WithTx(tx).Create(&models.ReturnRequestAdminAction{
			ReturnRequestID: id,
			AdminID:         adminID,
			ActionType:      actionType,
			PreviousStatus:  previousStatus,
			NewStatus:       constants.ReturnStatusUnderAdminReview,
			Notes:           adminNotes,
		})
	})
	if err != nil {
		if errors.Is(err, ErrReturnStatusInvalid) {
			return nil, err
		}
		logger.Errorw("售后升级失败", "return_id", id, "error", err)
		return nil, ErrReturnUpdateFailed
	}
	return s.afterStatusChange(id, previousStatus)
}

// CanChangeResolution 结论是否仍可变更。
// 工单完结、被驳回，或关联退款已确认到账后结论即锁定。
func (s *ReturnService) CanChangeResolution(request *models.ReturnRequest) (bool, error) {
	if request == nil || request.IsTerminal() {
		return false, nil
	}
	if s.refunds == nil {
		return true, nil
	}
	refund, err := s.refunds.FindByReturn(request.ID)
	if err != nil {
		return false, err
	}
	if refund == nil {
		return true, nil
	}
	return refund.Status != constants.RefundStatusCompleted, nil
}

// transitionWhereStatus 仅当工单处于期望状态时应用更新
func (s *ReturnService) transitionWhereStatus(id uint, fromStatus string, updates map[string]interface{}) error {
	affected, err := s.returnRepo.UpdatesWhereStatus(id, fromStatus, updates)
	if err != nil {
		logger.Errorw("售后状态流转失败", "return_id", id, "from", fromStatus, "error", err)
		return ErrReturnUpdateFailed
	}
	if affected == 0 {
		return ErrReturnStatusInvalid
	}
	return nil
}

// afterStatusChange 重新加载工单并发送状态变更通知
func (s *ReturnService) afterStatusChange(id uint, previousStatus string) (*models.ReturnRequest, error) {
	request, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyReturnStatusChanged(request, previousStatus)
	}
	return request, nil
}
