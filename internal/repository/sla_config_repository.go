package repository

import (
	"errors"

	"github.com/vendora-market/internal/models"

	"gorm.io/gorm"
)

// SLAConfigRepository SLA 配置数据访问接口
type SLAConfigRepository interface {
	Create(config *models.SLAConfig) error
	GetByID(id uint) (*models.SLAConfig, error)
	List(filter SLAConfigListFilter) ([]models.SLAConfig, int64, error)
	ListActiveMatching(categoryID *uint, requestType string) ([]models.SLAConfig, error)
	Updates(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormSLAConfigRepository
}

// GormSLAConfigRepository GORM 实现
type GormSLAConfigRepository struct {
	db *gorm.DB
}

// NewSLAConfigRepository 创建 SLA 配置仓库
func NewSLAConfigRepository(db *gorm.DB) *GormSLAConfigRepository {
	return &GormSLAConfigRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSLAConfigRepository) WithTx(tx *gorm.DB) *GormSLAConfigRepository {
	if tx == nil {
		return r
	}
	return &GormSLAConfigRepository{db: tx}
}

// Create 创建 SLA 配置
func (r *GormSLAConfigRepository) Create(config *models.SLAConfig) error {
	return r.db.Create(config).Error
}

// GetByID 根据 ID 获取 SLA 配置
func (r *GormSLAConfigRepository) GetByID(id uint) (*models.SLAConfig, error) {
	var config models.SLAConfig
	if err := r.db.First(&config, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// List 按条件分页查询 SLA 配置
func (r *GormSLAConfigRepository) List(filter SLAConfigListFilter) ([]models.SLAConfig, int64, error) {
	query := r.db.Model(&models.SLAConfig{})
	if filter.RequestType != "" {
		query = query.Where("request_type = ?", filter.RequestType)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var configs []models.SLAConfig
	query = applyPagination(query.Order("id ASC"), filter.Page, filter.PageSize)
	if err := query.Find(&configs).Error; err != nil {
		return nil, 0, err
	}
	return configs, total, nil
}

// ListActiveMatching 列出可匹配指定品类与工单类型的全部生效配置。
// 配置中品类或类型为空表示通配，匹配优先级在服务层裁决。
func (r *GormSLAConfigRepository) ListActiveMatching(categoryID *uint, requestType string) ([]models.SLAConfig, error) {
	query := r.db.Model(&models.SLAConfig{}).Where("is_active = ?", true)
	if categoryID != nil {
		query = query.Where("category_id IS NULL OR category_id = ?", *categoryID)
	} else {
		query = query.Where("category_id IS NULL")
	}
	query = query.Where("request_type = '' OR request_type IS NULL OR request_type = ?", requestType)

	var configs []models.SLAConfig
	if err := query.Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// Updates 按字段映射更新 SLA 配置
func (r *GormSLAConfigRepository) Updates(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.SLAConfig{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除 SLA 配置
func (r *GormSLAConfigRepository) Delete(id uint) error {
	return r.db.Delete(&models.SLAConfig{}, id).Error
}
