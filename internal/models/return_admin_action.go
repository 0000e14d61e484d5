package models

import (
	"time"
)

// ReturnRequestAdminAction 管理员操作台账表
// 每次管理员介入均追加一条记录，是升级与改判历史的权威来源，只追加不修改。
type ReturnRequestAdminAction struct {
	ID               uint      `gorm:"primarykey" json:"id"`                        // 主键
	ReturnRequestID  uint      `gorm:"index;not null" json:"return_request_id"`     // 售后单ID
	AdminID          uint      `gorm:"index;not null" json:"admin_id"`              // 管理员ID
	ActionType       string    `gorm:"index;not null" json:"action_type"`           // 操作类型
	PreviousStatus   string    `gorm:"not null" json:"previous_status"`             // 操作前状态
	NewStatus        string    `gorm:"not null" json:"new_status"`                  // 操作后状态
	ResolutionType   string    `gorm:"default:''" json:"resolution_type"`           // 结论类型（可选）
	ResolutionAmount *Money    `gorm:"type:decimal(20,2)" json:"resolution_amount"` // 结论金额（可选）
	Notes            string    `gorm:"type:text;not null" json:"notes"`             // 操作说明（必填，上限 2000 字符）
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                     // 创建时间
}

// TableName 指定表名
func (ReturnRequestAdminAction) TableName() string {
	return "return_request_admin_actions"
}
