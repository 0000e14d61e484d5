package repository

import (
	"github.com/vendora-market/internal/models"

	"gorm.io/gorm"
)

// AdminActionRepository 平台仲裁操作台账数据访问接口
type AdminActionRepository interface {
	Create(action *models.ReturnRequestAdminAction) error
	ListByReturn(returnRequestID uint) ([]models.ReturnRequestAdminAction, error)
	WithTx(tx *gorm.DB) *GormAdminActionRepository
}

// GormAdminActionRepository GORM 实现
type GormAdminActionRepository struct {
	db *gorm.DB
}

// NewAdminActionRepository 创建仲裁台账仓库
func NewAdminActionRepository(db *gorm.DB) *GormAdminActionRepository {
	return &GormAdminActionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAdminActionRepository) WithTx(tx *gorm.DB) *GormAdminActionRepository {
	if tx == nil {
		return r
	}
	return &GormAdminActionRepository{db: tx}
}

// Create 追加一条台账记录。台账只增不改。
func (r *GormAdminActionRepository) Create(action *models.ReturnRequestAdminAction) error {
	return r.db.Create(action).Error
}

// ListByReturn 按时间正序列出工单下的全部台账记录
func (r *GormAdminActionRepository) ListByReturn(returnRequestID uint) ([]models.ReturnRequestAdminAction, error) {
	var actions []models.ReturnRequestAdminAction
	err := r.db.Where("return_request_id = ?", returnRequestID).
		Order("created_at ASC").Order("id ASC").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}
