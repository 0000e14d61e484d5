package models

import (
	"time"

	"gorm.io/gorm"
)

// Refund 退款单表（退款执行方的落账记录）
// 实际打款由外部支付侧完成，本表记录受理状态供售后侧联动判断。
type Refund struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                // 主键
	RefundNo        string         `gorm:"uniqueIndex;not null" json:"refund_no"`               // 退款单号
	SubOrderID      uint           `gorm:"index;not null" json:"sub_order_id"`                  // 子订单ID
	BuyerID         uint           `gorm:"index;not null" json:"buyer_id"`                      // 买家用户ID
	ReturnRequestID *uint          `gorm:"index" json:"return_request_id,omitempty"`            // 关联售后单ID
	Amount          Money          `gorm:"type:decimal(20,2);not null" json:"amount"`           // 退款金额
	Currency        string         `gorm:"not null;default:'CNY'" json:"currency"`              // 币种
	Reason          string         `gorm:"not null" json:"reason"`                              // 退款原因
	Status          string         `gorm:"index;not null;default:'pending'" json:"status"`      // 退款状态
	InitiatedBy     uint           `gorm:"not null" json:"initiated_by"`                        // 发起人用户ID
	Notes           string         `gorm:"type:text" json:"notes"`                              // 备注
	ProcessedAt     *time.Time     `gorm:"index" json:"processed_at"`                           // 处理完成时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (Refund) TableName() string {
	return "refunds"
}
