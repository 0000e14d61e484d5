package repository

import (
	"errors"

	"github.com/vendora-market/internal/models"

	"gorm.io/gorm"
)

// RefundRepository 退款记录数据访问接口
type RefundRepository interface {
	Create(refund *models.Refund) error
	GetByID(id uint) (*models.Refund, error)
	GetByReturnRequestID(returnRequestID uint) (*models.Refund, error)
	List(filter RefundListFilter) ([]models.Refund, int64, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormRefundRepository
}

// GormRefundRepository GORM 实现
type GormRefundRepository struct {
	db *gorm.DB
}

// NewRefundRepository 创建退款记录仓库
func NewRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRefundRepository) WithTx(tx *gorm.DB) *GormRefundRepository {
	if tx == nil {
		return r
	}
	return &GormRefundRepository{db: tx}
}

// Create 创建退款记录
func (r *GormRefundRepository) Create(refund *models.Refund) error {
	return r.db.Create(refund).Error
}

// GetByID 根据 ID 获取退款记录
func (r *GormRefundRepository) GetByID(id uint) (*models.Refund, error) {
	var refund models.Refund
	if err := r.db.First(&refund, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &refund, nil
}

// GetByReturnRequestID 获取售后工单关联的最新退款记录
func (r *GormRefundRepository) GetByReturnRequestID(returnRequestID uint) (*models.Refund, error) {
	var refund models.Refund
	err := r.db.Where("return_request_id = ?", returnRequestID).
		Order("id DESC").
		First(&refund).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &refund, nil
}

// List 按条件分页查询退款记录
func (r *GormRefundRepository) List(filter RefundListFilter) ([]models.Refund, int64, error) {
	query := r.db.Model(&models.Refund{})
	if filter.BuyerID > 0 {
		query = query.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.SubOrderID > 0 {
		query = query.Where("sub_order_id = ?", filter.SubOrderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var refunds []models.Refund
	query = applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&refunds).Error; err != nil {
		return nil, 0, err
	}
	return refunds, total, nil
}

// UpdateStatus 更新退款状态及附加字段
func (r *GormRefundRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Refund{}).Where("id = ?", id).Updates(updates).Error
}
