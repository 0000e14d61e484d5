package shared

import (
	"errors"

	"github.com/vendora-market/internal/http/response"
	"github.com/vendora-market/internal/i18n"
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// serviceErrorMapping 服务层错误到响应码与文案键的映射
var serviceErrorMapping = []struct {
	err  error
	code int
	key  string
}{
	{service.ErrSubOrderNotFound, response.CodeNotFound, "error.sub_order_not_found"},
	{service.ErrReturnNotFound, response.CodeNotFound, "error.return_not_found"},
	{service.ErrReturnFetchFailed, response.CodeInternal, "error.return_fetch_failed"},
	{service.ErrReturnCreateFailed, response.CodeInternal, "error.return_create_failed"},
	{service.ErrReturnUpdateFailed, response.CodeInternal, "error.return_update_failed"},
	{service.ErrNotEligible, response.CodeBadRequest, "error.return_not_eligible"},
	{service.ErrReturnAlreadyActive, response.CodeBadRequest, "error.return_active_exists"},
	{service.ErrReturnStatusInvalid, response.CodeBadRequest, "error.return_status_invalid"},
	{service.ErrReturnItemInvalid, response.CodeBadRequest, "error.return_item_invalid"},
	{service.ErrReturnItemsRequired, response.CodeBadRequest, "error.return_items_required"},
	{service.ErrStoreNotOwner, response.CodeForbidden, "error.store_not_owner"},
	{service.ErrNotBuyer, response.CodeForbidden, "error.forbidden"},
	{service.ErrNotesRequired, response.CodeBadRequest, "error.notes_required"},
	{service.ErrNotesTooLong, response.CodeBadRequest, "error.notes_too_long"},
	{service.ErrResolutionLocked, response.CodeBadRequest, "error.resolution_locked"},
	{service.ErrResolutionTypeInvalid, response.CodeBadRequest, "error.resolution_type_invalid"},
	{service.ErrResolutionAmountInvalid, response.CodeBadRequest, "error.resolution_amount_invalid"},
	{service.ErrEscalateStatusInvalid, response.CodeBadRequest, "error.escalate_status_invalid"},
	{service.ErrAdminActionInvalid, response.CodeBadRequest, "error.admin_action_invalid"},
	{service.ErrMessageContentInvalid, response.CodeBadRequest, "error.message_content_invalid"},
	{service.ErrMessageTooLong, response.CodeBadRequest, "error.message_too_long"},
	{service.ErrMessageSenderInvalid, response.CodeForbidden, "error.message_sender_invalid"},
	{service.ErrMessageCaseClosed, response.CodeBadRequest, "error.message_case_closed"},
	{service.ErrRefundCreateFailed, response.CodeInternal, "error.refund_create_failed"},
	{service.ErrRefundDispatchFailed, response.CodeInternal, "error.refund_dispatch_failed"},
	{service.ErrRefundAmountInvalid, response.CodeBadRequest, "error.resolution_amount_invalid"},
	{service.ErrRefundNotFound, response.CodeNotFound, "error.refund_not_found"},
	{service.ErrRefundStatusInvalid, response.CodeBadRequest, "error.refund_status_invalid"},
	{service.ErrSLAConfigNotFound, response.CodeNotFound, "error.sla_config_not_found"},
	{service.ErrSLAConfigInvalid, response.CodeBadRequest, "error.sla_config_invalid"},
	{service.ErrInvalidCredentials, response.CodeUnauthorized, "error.invalid_credentials"},
}

// RespondServiceError 将服务层错误映射为统一错误响应。
func RespondServiceError(c *gin.Context, err error) {
	for _, mapping := range serviceErrorMapping {
		if errors.Is(err, mapping.err) {
			RespondError(c, mapping.code, mapping.key, errIfInternal(mapping.code, err))
			return
		}
	}
	RespondError(c, response.CodeInternal, "error.internal", err)
}

// errIfInternal 业务类错误不重复记日志，只有内部错误带上原始 error。
func errIfInternal(code int, err error) error {
	if code >= response.CodeInternal {
		return err
	}
	return nil
}
