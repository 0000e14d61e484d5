package constants

// 子订单状态常量
const (
	SubOrderStatusPendingPayment = "pending_payment"
	SubOrderStatusPaid           = "paid"
	SubOrderStatusProcessing     = "processing"
	SubOrderStatusShipped        = "shipped"
	SubOrderStatusDelivered      = "delivered"
	SubOrderStatusCompleted      = "completed"
	SubOrderStatusCanceled       = "canceled"
)

// 用户账号状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 售后单类型常量
const (
	ReturnTypeReturn    = "return"
	ReturnTypeComplaint = "complaint"
)

// 售后单号前缀
const (
	ReturnNoPrefixReturn    = "RTN"
	ReturnNoPrefixComplaint = "CMP"
)

// 售后单状态常量
const (
	ReturnStatusRequested        = "requested"
	ReturnStatusApproved         = "approved"
	ReturnStatusRejected         = "rejected"
	ReturnStatusUnderAdminReview = "under_admin_review"
	ReturnStatusResolved         = "resolved"
	ReturnStatusCompleted        = "completed"
)

// 售后原因常量
const (
	ReturnReasonDefective        = "defective"
	ReturnReasonNotAsDescribed   = "not_as_described"
	ReturnReasonWrongItem        = "wrong_item"
	ReturnReasonDamagedInTransit = "damaged_in_transit"
	ReturnReasonMissingParts     = "missing_parts"
	ReturnReasonChangedMind      = "changed_mind"
	ReturnReasonOther            = "other"
)

// 处理结论类型常量
const (
	ResolutionTypeFullRefund    = "full_refund"
	ResolutionTypePartialRefund = "partial_refund"
	ResolutionTypeReplacement   = "replacement"
	ResolutionTypeNoRefund      = "no_refund"
)

// 升级原因常量
const (
	EscalationReasonSLABreach       = "sla_breach"
	EscalationReasonAdminManualFlag = "admin_manual_flag"
	EscalationReasonBuyerRequest    = "buyer_request"
	EscalationReasonSellerDispute   = "seller_dispute"
)

// 管理员操作类型常量
const (
	AdminActionEscalated              = "escalated"
	AdminActionEscalatedSLABreach     = "escalated_sla_breach"
	AdminActionManualFlag             = "manual_flag"
	AdminActionOverrideSellerDecision = "override_seller_decision"
	AdminActionEnforceRefund          = "enforce_refund"
	AdminActionCloseWithoutAction     = "close_without_action"
	AdminActionApprovedSellerDecision = "approved_seller_decision"
	AdminActionAddedNotes             = "added_notes"
)

// 退款状态常量
const (
	RefundStatusPending    = "pending"
	RefundStatusProcessing = "processing"
	RefundStatusCompleted  = "completed"
	RefundStatusFailed     = "failed"
)

// 售后规则默认值
const (
	DefaultReturnWindowDays       = 30
	DefaultFirstResponseSLAHours  = 24
	DefaultResolutionSLAHours     = 168
	DefaultBreachSweepIntervalMin = 10
	ReturnMessageMaxLength        = 2000
	AdminActionNotesMaxLength     = 2000
	ReturnDescriptionMaxLength    = 4000
)

// 队列任务类型常量
const (
	TaskReturnOpenedNotify = "return:opened_notify"
	TaskReturnStatusNotify = "return:status_notify"
)

// 队列名称常量
const (
	QueueDefault = "default"
)
