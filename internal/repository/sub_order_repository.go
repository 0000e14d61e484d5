package repository

import (
	"errors"

	"github.com/vendora-market/internal/models"

	"gorm.io/gorm"
)

// SubOrderRepository 子订单数据访问接口
type SubOrderRepository interface {
	Create(subOrder *models.SubOrder) error
	GetByID(id uint) (*models.SubOrder, error)
	GetBySubOrderNo(subOrderNo string) (*models.SubOrder, error)
	List(filter SubOrderListFilter) ([]models.SubOrder, int64, error)
	GetLatestStatusChange(subOrderID uint, toStatus string) (*models.SubOrderStatusHistory, error)
	UpdateStatus(id uint, fromStatus, toStatus string, changedBy uint) error
	WithTx(tx *gorm.DB) *GormSubOrderRepository
}

// GormSubOrderRepository GORM 实现
type GormSubOrderRepository struct {
	db *gorm.DB
}

// NewSubOrderRepository 创建子订单仓库
func NewSubOrderRepository(db *gorm.DB) *GormSubOrderRepository {
	return &GormSubOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSubOrderRepository) WithTx(tx *gorm.DB) *GormSubOrderRepository {
	if tx == nil {
		return r
	}
	return &GormSubOrderRepository{db: tx}
}

// Create 创建子订单及其条目
func (r *GormSubOrderRepository) Create(subOrder *models.SubOrder) error {
	return r.db.Create(subOrder).Error
}

// GetByID 根据 ID 获取子订单，预加载条目。
func (r *GormSubOrderRepository) GetByID(id uint) (*models.SubOrder, error) {
	var subOrder models.SubOrder
	if err := r.db.Preload("Items").First(&subOrder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subOrder, nil
}

// GetBySubOrderNo 根据子订单号获取子订单
func (r *GormSubOrderRepository) GetBySubOrderNo(subOrderNo string) (*models.SubOrder, error) {
	var subOrder models.SubOrder
	if err := r.db.Preload("Items").Where("sub_order_no = ?", subOrderNo).First(&subOrder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subOrder, nil
}

// List 按条件分页查询子订单
func (r *GormSubOrderRepository) List(filter SubOrderListFilter) ([]models.SubOrder, int64, error) {
	query := r.db.Model(&models.SubOrder{})
	if filter.BuyerID > 0 {
		query = query.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subOrders []models.SubOrder
	query = applyPagination(query.Preload("Items").Order("id DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&subOrders).Error; err != nil {
		return nil, 0, err
	}
	return subOrders, total, nil
}

// GetLatestStatusChange 查询子订单最近一次进入指定状态的流转记录
func (r *GormSubOrderRepository) GetLatestStatusChange(subOrderID uint, toStatus string) (*models.SubOrderStatusHistory, error) {
	var history models.SubOrderStatusHistory
	err := r.db.Where("sub_order_id = ? AND to_status = ?", subOrderID, toStatus).
		Order("created_at DESC").Order("id DESC").
		First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &history, nil
}

// UpdateStatus 更新子订单状态并追加流转记录
func (r *GormSubOrderRepository) UpdateStatus(id uint, fromStatus, toStatus string, changedBy uint) error {
	result := r.db.Model(&models.SubOrder{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	history := models.SubOrderStatusHistory{
		SubOrderID: id,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		ChangedBy:  changedBy,
	}
	return r.db.Create(&history).Error
}
