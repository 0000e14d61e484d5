package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（买家一次下单，可拆分为多个店铺子订单）
type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo     string         `gorm:"uniqueIndex;not null" json:"order_no"`                        // 订单编号
	BuyerID     uint           `gorm:"index;not null" json:"buyer_id"`                              // 买家用户ID
	Currency    string         `gorm:"not null;default:'CNY'" json:"currency"`                      // 币种
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`   // 订单总额
	PaidAt      *time.Time     `gorm:"index" json:"paid_at"`                                        // 支付时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	SubOrders []SubOrder `gorm:"foreignKey:OrderID" json:"sub_orders,omitempty"` // 店铺子订单
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// SubOrder 子订单表（单个店铺在一笔订单中的部分）
type SubOrder struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                            // 父订单ID
	SubOrderNo  string         `gorm:"uniqueIndex;not null" json:"sub_order_no"`                  // 子订单编号
	StoreID     uint           `gorm:"index;not null" json:"store_id"`                            // 店铺ID
	BuyerID     uint           `gorm:"index;not null" json:"buyer_id"`                            // 买家用户ID（冗余，便于售后校验）
	Status      string         `gorm:"index;not null" json:"status"`                              // 子订单状态
	Currency    string         `gorm:"not null;default:'CNY'" json:"currency"`                    // 币种
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 子订单总额
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items         []SubOrderItem          `gorm:"foreignKey:SubOrderID" json:"items,omitempty"`          // 子订单项
	StatusHistory []SubOrderStatusHistory `gorm:"foreignKey:SubOrderID" json:"status_history,omitempty"` // 状态流转记录
}

// TableName 指定表名
func (SubOrder) TableName() string {
	return "sub_orders"
}

// SubOrderItem 子订单项表
type SubOrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	SubOrderID uint           `gorm:"index;not null" json:"sub_order_id"`                       // 子订单ID
	ProductID  uint           `gorm:"index;not null" json:"product_id"`                         // 商品ID
	CategoryID *uint          `gorm:"index" json:"category_id,omitempty"`                       // 分类ID快照（SLA 策略解析用）
	TitleJSON  JSON           `gorm:"type:json;not null" json:"title"`                          // 商品标题快照
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价
	Quantity   int            `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (SubOrderItem) TableName() string {
	return "sub_order_items"
}

// SubOrderStatusHistory 子订单状态流转记录表
// 送达时间以最近一条进入 delivered 的记录为准。
type SubOrderStatusHistory struct {
	ID         uint      `gorm:"primarykey" json:"id"`               // 主键
	SubOrderID uint      `gorm:"index;not null" json:"sub_order_id"` // 子订单ID
	FromStatus string    `gorm:"not null" json:"from_status"`        // 原状态
	ToStatus   string    `gorm:"index;not null" json:"to_status"`    // 新状态
	ChangedBy  uint      `gorm:"default:0" json:"changed_by"`        // 操作人（0 表示系统）
	CreatedAt  time.Time `gorm:"index" json:"created_at"`            // 创建时间
}

// TableName 指定表名
func (SubOrderStatusHistory) TableName() string {
	return "sub_order_status_histories"
}
