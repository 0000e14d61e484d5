package service

import (
	"errors"
	"strings"
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/models"

	"gorm.io/gorm"
)

// AdminDecisionInput 平台仲裁裁决输入。
// NewStatus 仅在未给出结论时生效，直接把工单推进到指定状态。
type AdminDecisionInput struct {
	ActionType string
	NewStatus  string
	Resolution ResolveInput
}

func isKnownAdminAction(actionType string) bool {
	switch actionType {
	case constants.AdminActionOverrideSellerDecision,
		constants.AdminActionEnforceRefund,
		constants.AdminActionApprovedSellerDecision,
		constants.AdminActionCloseWithoutAction,
		constants.AdminActionAddedNotes,
		constants.AdminActionEscalated,
		constants.AdminActionEscalatedSLABreach,
		constants.AdminActionManualFlag:
		return true
	}
	return false
}

func isKnownReturnStatus(status string) bool {
	switch status {
	case constants.ReturnStatusRequested,
		constants.ReturnStatusApproved,
		constants.ReturnStatusRejected,
		constants.ReturnStatusUnderAdminReview,
		constants.ReturnStatusResolved,
		constants.ReturnStatusCompleted:
		return true
	}
	return false
}

// RecordAdminDecision 记录平台仲裁裁决并推进工单。
// 仅 under_admin_review 状态可裁决，每次裁决追加一条台账。
// 强制退款与改判商家结论先发起退款，退款失败则整个裁决不落库。
func (s *ReturnService) RecordAdminDecision(id uint, adminID uint, input AdminDecisionInput, now time.Time) (*models.ReturnRequest, error) {
	request, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.ActionType == constants.AdminActionAddedNotes {
		return s.AddAdminNotes(request, adminID, input.Resolution.Notes)
	}
	if !isKnownAdminAction(input.ActionType) {
		return nil, ErrAdminActionInvalid
	}
	if request.Status != constants.ReturnStatusUnderAdminReview {
		return nil, ErrReturnStatusInvalid
	}
	changeable, err := s.CanChangeResolution(request)
	if err != nil {
		return nil, err
	}
	if !changeable {
		return nil, ErrResolutionLocked
	}
	if strings.TrimSpace(input.Resolution.Notes) == "" {
		return nil, ErrNotesRequired
	}
	if len(input.Resolution.Notes) > constants.AdminActionNotesMaxLength {
		return nil, ErrNotesTooLong
	}

	resolution := input.Resolution
	switch input.ActionType {
	case constants.AdminActionCloseWithoutAction:
		resolution.ResolutionType = constants.ResolutionTypeNoRefund
		resolution.Amount = nil
	case constants.AdminActionApprovedSellerDecision:
		// 维持商家已有结论，不再重复发起退款
		if request.ResolutionType == "" {
			return nil, ErrResolutionTypeInvalid
		}
		return s.applyDecisionStatus(request, adminID, input.ActionType, constants.ReturnStatusResolved, resolution.Notes, now)
	case constants.AdminActionEnforceRefund, constants.AdminActionOverrideSellerDecision:
		if resolution.ResolutionType == "" {
			if input.NewStatus == "" {
				return nil, ErrResolutionTypeInvalid
			}
			return s.applyDecisionStatus(request, adminID, input.ActionType, input.NewStatus, resolution.Notes, now)
		}
	default:
		if input.NewStatus == "" {
			return s.appendAdminAction(request, adminID, input.ActionType, resolution.Notes)
		}
		return s.applyDecisionStatus(request, adminID, input.ActionType, input.NewStatus, resolution.Notes, now)
	}

	amount, err := validateResolution(request, resolution)
	if err != nil {
		return nil, err
	}

	// 强制性裁决先落退款，退款失败即放弃本次裁决。
	refundFirst := input.ActionType == constants.AdminActionEnforceRefund ||
		input.ActionType == constants.AdminActionOverrideSellerDecision
	if refundFirst && resolutionNeedsRefund(resolution.ResolutionType) {
		refund, err := s.refunds.DispatchRefund(request, *amount, adminID, request.Reason)
		if err != nil || refund == nil {
			logger.Errorw("仲裁退款发起失败", "return_no", request.ReturnNo, "error", err)
			return nil, ErrRefundDispatchFailed
		}
	}

	previousStatus := request.Status
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.returnRepo.WithTx(tx).UpdatesWhereStatus(id, previousStatus, map[string]interface{}{
			"status":            constants.ReturnStatusResolved,
			"resolution_type":   resolution.ResolutionType,
			"resolution_amount": amount,
			"resolution_notes":  resolution.Notes,
			"resolved_at":       now,
			"resolved_by":       adminID,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrReturnStatusInvalid
		}
		return s.actionRepo.WithTx(tx).Create(&models.ReturnRequestAdminAction{
			ReturnRequestID:  id,
			AdminID:          adminID,
			ActionType:       input.ActionType,
			PreviousStatus:   previousStatus,
			NewStatus:        constants.ReturnStatusResolved,
			ResolutionType:   resolution.ResolutionType,
			ResolutionAmount: amount,
			Notes:            resolution.Notes,
		})
	})
	if err != nil {
		if errors.Is(err, ErrReturnStatusInvalid) {
			return nil, err
		}
		logger.Errorw("仲裁裁决落库失败", "return_id", id, "error", err)
		return nil, ErrReturnUpdateFailed
	}
	return s.afterStatusChange(id, previousStatus)
}

// applyDecisionStatus 不落结论、仅推进状态的裁决分支。
// approved_seller_decision 复用此分支维持既有结论并补记裁定时间。
func (s *ReturnService) applyDecisionStatus(request *models.ReturnRequest, adminID uint, actionType, newStatus, notes string, now time.Time) (*models.ReturnRequest, error) {
	if !isKnownReturnStatus(newStatus) {
		return nil, ErrReturnStatusInvalid
	}
	updates := map[string]interface{}{
		"status": newStatus,
	}
	if actionType == constants.AdminActionApprovedSellerDecision && request.ResolvedAt == nil {
		updates["resolved_at"] = now
		updates["resolved_by"] = adminID
	}
	previousStatus := request.Status
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.returnRepo.WithTx(tx).UpdatesWhereStatus(request.ID, previousStatus, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrReturnStatusInvalid
		}
		return s.actionRepo.WithTx(tx).Create(&models.ReturnRequestAdminAction{
			ReturnRequestID:  request.ID,
			AdminID:          adminID,
			ActionType:       actionType,
			PreviousStatus:   previousStatus,
			NewStatus:        newStatus,
			ResolutionType:   request.ResolutionType,
			ResolutionAmount: request.ResolutionAmount,
			Notes:            notes,
		})
	})
	if err != nil {
		if errors.Is(err, ErrReturnStatusInvalid) {
			return nil, err
		}
		logger.Errorw("仲裁裁决落库失败", "return_id", request.ID, "error", err)
		return nil, ErrReturnUpdateFailed
	}
	return s.afterStatusChange(request.ID, previousStatus)
}

// AddAdminNotes 追加仲裁备注，不改变工单状态。
func (s *ReturnService) AddAdminNotes(request *models.ReturnRequest, adminID uint, notes string) (*models.ReturnRequest, error) {
	return s.appendAdminAction(request, adminID, constants.AdminActionAddedNotes, notes)
}

// appendAdminAction 仅追加台账的裁决分支
func (s *ReturnService) appendAdminAction(request *models.ReturnRequest, adminID uint, actionType, notes string) (*models.ReturnRequest, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrNotesRequired
	}
	if len(notes) > constants.AdminActionNotesMaxLength {
		return nil, ErrNotesTooLong
	}
	err := s.actionRepo.Create(&models.ReturnRequestAdminAction{
		ReturnRequestID: request.ID,
		AdminID:         adminID,
		ActionType:      actionType,
		PreviousStatus:  request.Status,
		NewStatus:       request.Status,
		Notes:           notes,
	})
	if err != nil {
		logger.Errorw("仲裁台账写入失败", "return_id", request.ID, "error", err)
		return nil, ErrReturnUpdateFailed
	}
	return request, nil
}

// ListAdminActions 按时间正序列出工单的仲裁台账
func (s *ReturnService) ListAdminActions(id uint) ([]models.ReturnRequestAdminAction, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	return s.actionRepo.ListByReturn(id)
}
