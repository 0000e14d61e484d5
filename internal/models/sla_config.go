package models

import (
	"time"

	"gorm.io/gorm"
)

// SLAConfig 售后 SLA 策略表
// 按（分类，售后类型）维度配置时限，匹配优先级：
// (分类,类型) > (分类,∅) > (∅,类型) > (∅,∅) > 代码内默认值。
type SLAConfig struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                          // 主键
	CategoryID         *uint          `gorm:"index" json:"category_id,omitempty"`            // 分类ID（空表示全部分类）
	RequestType        string         `gorm:"index;default:''" json:"request_type"`          // 售后类型（空表示全部类型）
	FirstResponseHours int            `gorm:"not null" json:"first_response_hours"`          // 首次响应时限（小时）
	ResolutionHours    int            `gorm:"not null" json:"resolution_hours"`              // 处理完结时限（小时）
	IsActive           bool           `gorm:"not null;default:true;index" json:"is_active"`  // 是否启用
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (SLAConfig) TableName() string {
	return "sla_configs"
}

// Specificity 返回匹配优先级权重，值越大越精确
func (c *SLAConfig) Specificity() int {
	score := 0
	if c.CategoryID != nil {
		score += 2
	}
	if c.RequestType != "" {
		score++
	}
	return score
}
