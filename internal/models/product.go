package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                  // 主键
	StoreID    uint           `gorm:"index;not null" json:"store_id"`                        // 所属店铺ID
	CategoryID *uint          `gorm:"index" json:"category_id,omitempty"`                    // 分类ID
	TitleJSON  JSON           `gorm:"type:json;not null" json:"title"`                       // 多语言标题
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`    // 售价
	Currency   string         `gorm:"not null;default:'CNY'" json:"currency"`                // 币种
	Status     string         `gorm:"default:'active';index" json:"status"`                  // 商品状态
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                               // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 关联分类
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
