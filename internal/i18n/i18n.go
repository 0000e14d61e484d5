package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale 默认语言
	DefaultLocale = "zh-CN"
	localeQuery   = "locale"
	localeHeader  = "Accept-Language"
)

var supportedLocales = map[string]bool{
	"zh-CN": true,
	"en-US": true,
}

// ResolveLocale 解析请求语言（query 优先于 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := normalizeLocale(c.Query(localeQuery)); locale != "" {
		return locale
	}
	header := c.GetHeader(localeHeader)
	for _, part := range strings.Split(header, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := normalizeLocale(lang); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// T 按语言翻译消息 key，未命中时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[normalizeOrDefault(locale)]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后按 fmt 动词填充参数
func Sprintf(locale, key string, args ...interface{}) string {
	template := T(locale, key)
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

func normalizeOrDefault(locale string) string {
	if normalized := normalizeLocale(locale); normalized != "" {
		return normalized
	}
	return DefaultLocale
}

func normalizeLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return ""
	}
	if supportedLocales[trimmed] {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return "zh-CN"
	case strings.HasPrefix(lower, "en"):
		return "en-US"
	}
	return ""
}

var catalog = map[string]map[string]string{
	"zh-CN": {
		"error.bad_request":               "请求参数错误",
		"error.unauthorized":              "未授权，请先登录",
		"error.forbidden":                 "没有操作权限",
		"error.not_found":                 "资源不存在",
		"error.internal":                  "服务器内部错误",
		"error.rate_limited":              "操作过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":    "限流服务不可用",
		"error.auth_header_missing":       "缺少认证信息",
		"error.auth_header_invalid":       "认证信息格式错误",
		"error.token_invalid":             "登录凭证无效",
		"error.user_disabled":             "账号已被禁用",
		"error.jwt_secret_missing":        "服务端未配置签名密钥",
		"error.store_not_found":           "店铺不存在",
		"error.store_not_owner":           "无权操作该店铺的售后单",
		"error.sub_order_not_found":       "子订单不存在",
		"error.return_not_found":          "售后单不存在",
		"error.return_fetch_failed":       "售后单查询失败",
		"error.return_create_failed":      "售后单创建失败",
		"error.return_update_failed":      "售后单更新失败",
		"error.return_not_eligible":       "该子订单不满足售后申请条件",
		"error.return_active_exists":      "该子订单已存在进行中的售后单",
		"error.return_status_invalid":     "当前状态不允许该操作",
		"error.return_item_invalid":       "售后明细不合法",
		"error.return_items_required":     "部分退货必须提供退货明细",
		"error.notes_required":            "备注不能为空",
		"error.notes_too_long":            "备注超出长度限制",
		"error.resolution_locked":         "该售后单的处理结论已锁定",
		"error.resolution_amount_invalid": "结论金额不合法",
		"error.escalate_status_invalid":   "当前状态不允许升级仲裁",
		"error.message_content_invalid":   "消息内容不能为空",
		"error.message_too_long":          "消息超出长度限制",
		"error.message_sender_invalid":    "无权在该售后单下发送消息",
		"error.message_case_closed":       "售后单已关闭，无法继续留言",
		"error.resolution_type_invalid":   "结论类型不合法",
		"error.invalid_credentials":       "账号或密码错误",
		"error.refund_dispatch_failed":    "结论已记录，但退款发起失败，请人工跟进",
		"error.refund_create_failed":      "退款单创建失败",
		"error.refund_not_found":          "退款单不存在",
		"error.refund_status_invalid":     "当前退款状态不允许该操作",
		"error.sla_config_not_found":      "SLA 策略不存在",
		"error.sla_config_invalid":        "SLA 策略参数不合法",
		"error.admin_action_invalid":      "管理员操作参数不合法",
	},
	"en-US": {
		"error.bad_request":               "invalid request",
		"error.unauthorized":              "unauthorized",
		"error.forbidden":                 "forbidden",
		"error.not_found":                 "resource not found",
		"error.internal":                  "internal server error",
		"error.rate_limited":              "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":    "rate limiter unavailable",
		"error.auth_header_missing":       "missing authorization header",
		"error.auth_header_invalid":       "malformed authorization header",
		"error.token_invalid":             "invalid token",
		"error.user_disabled":             "account disabled",
		"error.jwt_secret_missing":        "jwt secret not configured",
		"error.store_not_found":           "store not found",
		"error.store_not_owner":           "store does not own this return case",
		"error.sub_order_not_found":       "sub-order not found",
		"error.return_not_found":          "return case not found",
		"error.return_fetch_failed":       "failed to fetch return case",
		"error.return_create_failed":      "failed to create return case",
		"error.return_update_failed":      "failed to update return case",
		"error.return_not_eligible":       "sub-order is not eligible for a return case",
		"error.return_active_exists":      "an active return case already exists for this sub-order",
		"error.return_status_invalid":     "operation not allowed in current status",
		"error.return_item_invalid":       "invalid return item",
		"error.return_items_required":     "partial return requires item list",
		"error.notes_required":            "notes are required",
		"error.notes_too_long":            "notes exceed the length limit",
		"error.resolution_locked":         "resolution can no longer be changed",
		"error.resolution_amount_invalid": "invalid resolution amount",
		"error.escalate_status_invalid":   "case cannot be escalated in current status",
		"error.message_content_invalid":   "message content is empty",
		"error.message_too_long":          "message exceeds the length limit",
		"error.message_sender_invalid":    "sender is not a party of this return case",
		"error.message_case_closed":       "return case is closed for messaging",
		"error.resolution_type_invalid":   "invalid resolution type",
		"error.invalid_credentials":       "invalid username or password",
		"error.refund_dispatch_failed":    "resolution recorded but refund dispatch failed, manual follow-up required",
		"error.refund_create_failed":      "failed to create refund",
		"error.refund_not_found":          "refund not found",
		"error.refund_status_invalid":     "operation not allowed in current refund status",
		"error.sla_config_not_found":      "sla config not found",
		"error.sla_config_invalid":        "invalid sla config",
		"error.admin_action_invalid":      "invalid admin action",
	},
}
