package service

import "errors"

// 服务层统一业务错误，处理器据此映射响应码与多语言提示。
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrSubOrderNotFound = errors.New("sub order not found")

	ErrReturnNotFound     = errors.New("return request not found")
	ErrReturnFetchFailed  = errors.New("return request fetch failed")
	ErrReturnCreateFailed = errors.New("return request create failed")
	ErrReturnUpdateFailed = errors.New("return request update failed")

	ErrNotEligible         = errors.New("sub order not eligible for return")
	ErrReturnAlreadyActive = errors.New("sub order already has an active return request")
	ErrReturnStatusInvalid = errors.New("return request status does not allow this operation")
	ErrReturnItemInvalid   = errors.New("return request item invalid")
	ErrReturnItemsRequired = errors.New("partial return requires at least one item")

	ErrStoreNotOwner = errors.New("store does not own this return request")
	ErrNotBuyer      = errors.New("user is not the buyer of this return request")

	ErrNotesRequired           = errors.New("notes are required")
	ErrNotesTooLong            = errors.New("notes exceed the allowed length")
	ErrResolutionLocked        = errors.New("resolution can no longer be changed")
	ErrResolutionTypeInvalid   = errors.New("resolution type invalid")
	ErrResolutionAmountInvalid = errors.New("resolution amount invalid")
	ErrEscalateStatusInvalid   = errors.New("return request status does not allow escalation")
	ErrAdminActionInvalid      = errors.New("admin action type invalid")

	ErrMessageContentInvalid = errors.New("message content invalid")
	ErrMessageTooLong        = errors.New("message exceeds the allowed length")
	ErrMessageSenderInvalid  = errors.New("sender is not a participant of this return request")
	ErrMessageCaseClosed     = errors.New("return request is closed for messaging")

	ErrRefundCreateFailed   = errors.New("refund create failed")
	ErrRefundDispatchFailed = errors.New("refund dispatch failed")
	ErrRefundAmountInvalid  = errors.New("refund amount invalid")
	ErrRefundNotFound       = errors.New("refund not found")
	ErrRefundStatusInvalid  = errors.New("refund status does not allow this operation")

	ErrSLAConfigNotFound = errors.New("sla config not found")
	ErrSLAConfigInvalid  = errors.New("sla config invalid")
)
