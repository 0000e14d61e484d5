package repository

import "time"

// ReturnRequestListFilter 查询售后工单列表的过滤条件
type ReturnRequestListFilter struct {
	Page        int
	PageSize    int
	BuyerID     uint
	StoreID     uint
	SubOrderID  uint
	Type        string
	Status      string
	ReturnNo    string
	Escalated   *bool
	Breached    *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReturnStatsFilter 售后 SLA 统计的过滤条件
type ReturnStatsFilter struct {
	StoreID     uint
	Type        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// SubOrderListFilter 查询子订单列表的过滤条件
type SubOrderListFilter struct {
	Page     int
	PageSize int
	BuyerID  uint
	StoreID  uint
	Status   string
}

// RefundListFilter 查询退款记录列表的过滤条件
type RefundListFilter struct {
	Page       int
	PageSize   int
	BuyerID    uint
	SubOrderID uint
	Status     string
}

// SLAConfigListFilter 查询 SLA 配置列表的过滤条件
type SLAConfigListFilter struct {
	Page        int
	PageSize    int
	RequestType string
	ActiveOnly  bool
}
