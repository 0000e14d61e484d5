package models

import (
	"time"

	"gorm.io/gorm"
)

// ReturnRequest 售后单表（退货/投诉）
// 同一子订单同一时刻最多存在一个非 rejected 的售后单。
type ReturnRequest struct {
	ID           uint   `gorm:"primarykey" json:"id"`                   // 主键
	ReturnNo     string `gorm:"uniqueIndex;not null" json:"return_no"`  // 售后单号（RTN/CMP-日期-随机后缀）
	SubOrderID   uint   `gorm:"index;not null" json:"sub_order_id"`     // 子订单ID
	StoreID      uint   `gorm:"index;not null" json:"store_id"`         // 店铺ID（冗余，便于商家侧查询）
	BuyerID      uint   `gorm:"index;not null" json:"buyer_id"`         // 买家用户ID
	Type         string `gorm:"index;not null" json:"type"`             // 类型：return / complaint
	Reason       string `gorm:"not null" json:"reason"`                 // 售后原因
	Description  string `gorm:"type:text" json:"description"`           // 问题描述
	IsFullReturn bool   `gorm:"not null" json:"is_full_return"`         // 是否整单退货
	Status       string `gorm:"index;not null" json:"status"`           // 售后单状态

	RefundAmount Money  `gorm:"type:decimal(20,2);not null;default:0" json:"refund_amount"` // 申请退款金额（创建时计算）
	Currency     string `gorm:"not null;default:'CNY'" json:"currency"`                     // 币种

	// SLA 时限与违约标记
	FirstResponseDueAt       *time.Time `gorm:"index" json:"first_response_due_at"`                              // 首次响应截止时间
	ResolutionDueAt          *time.Time `gorm:"index" json:"resolution_due_at"`                                  // 处理完结截止时间
	SellerFirstResponseAt    *time.Time `json:"seller_first_response_at"`                                        // 商家首次响应时间
	FirstResponseSLABreached bool       `gorm:"not null;default:false;index" json:"first_response_sla_breached"` // 首次响应超时标记
	ResolutionSLABreached    bool       `gorm:"not null;default:false;index" json:"resolution_sla_breached"`     // 处理超时标记

	// 处理结论
	ResolutionType   string     `gorm:"default:''" json:"resolution_type"`                               // 结论类型
	ResolutionAmount *Money     `gorm:"type:decimal(20,2)" json:"resolution_amount,omitempty"`           // 结论金额（部分退款）
	ResolutionNotes  string     `gorm:"type:text" json:"resolution_notes"`                               // 结论说明
	ResolvedAt       *time.Time `gorm:"index" json:"resolved_at"`                                        // 结论记录时间
	ResolvedBy       *uint      `json:"resolved_by,omitempty"`                                           // 结论记录人
	CompletedAt      *time.Time `gorm:"index" json:"completed_at"`                                       // 完结时间（退款确认后）

	// 升级仲裁
	EscalatedAt      *time.Time `gorm:"index" json:"escalated_at"`                 // 升级时间
	EscalatedBy      *uint      `json:"escalated_by,omitempty"`                    // 升级发起人
	EscalationReason string     `gorm:"default:''" json:"escalation_reason"`       // 升级原因

	SellerNotes string `gorm:"type:text" json:"seller_notes"` // 商家备注（审批/驳回说明）

	// 送达时间回退到子订单更新时间时置位，提示售后窗口可能不准确
	DeliveryDateEstimated bool `gorm:"not null;default:false" json:"delivery_date_estimated"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"` // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`          // 软删除时间

	Items        []ReturnRequestItem        `gorm:"foreignKey:ReturnRequestID" json:"items,omitempty"`         // 部分退货明细
	Messages     []ReturnRequestMessage     `gorm:"foreignKey:ReturnRequestID" json:"messages,omitempty"`      // 沟通消息
	AdminActions []ReturnRequestAdminAction `gorm:"foreignKey:ReturnRequestID" json:"admin_actions,omitempty"` // 管理员操作记录
}

// TableName 指定表名
func (ReturnRequest) TableName() string {
	return "return_requests"
}

// IsTerminal 是否处于终态
func (r *ReturnRequest) IsTerminal() bool {
	if r == nil {
		return false
	}
	return r.Status == "rejected" || r.Status == "completed"
}

// ReturnRequestItem 部分退货明细表
// 金额恒等于对应子订单项单价 × 申请数量。
type ReturnRequestItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                       // 主键
	ReturnRequestID uint           `gorm:"index;not null" json:"return_request_id"`                    // 售后单ID
	SubOrderItemID  uint           `gorm:"index;not null" json:"sub_order_item_id"`                    // 子订单项ID
	Quantity        int            `gorm:"not null" json:"quantity"`                                   // 申请数量
	RefundAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"refund_amount"` // 明细退款金额
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (ReturnRequestItem) TableName() string {
	return "return_request_items"
}
