package models

import (
	"time"

	"gorm.io/gorm"
)

// Store 商家店铺表
type Store struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // 主键
	Name         string         `gorm:"not null" json:"name"`                 // 店铺名称
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`     // 唯一标识
	OwnerUserID  uint           `gorm:"index;not null" json:"owner_user_id"`  // 店主用户ID
	ContactEmail string         `gorm:"default:''" json:"contact_email"`      // 联系邮箱
	Status       string         `gorm:"default:'active';index" json:"status"` // 店铺状态
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
