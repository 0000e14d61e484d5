package repository

import (
	"errors"
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/models"

	"gorm.io/gorm"
)

// ReturnTimingSample SLA 统计所需的时间戳样本
type ReturnTimingSample struct {
	CreatedAt             time.Time
	SellerFirstResponseAt *time.Time
	ResolvedAt            *time.Time
	CompletedAt           *time.Time
	ResolutionDueAt       *time.Time
}

// StatusCount 按状态分组的计数行
type StatusCount struct {
	Status string
	Count  int64
}

// ReturnRequestRepository 售后工单数据访问接口
type ReturnRequestRepository interface {
	Create(request *models.ReturnRequest, items []models.ReturnRequestItem) error
	GetByID(id uint) (*models.ReturnRequest, error)
	GetByReturnNo(returnNo string) (*models.ReturnRequest, error)
	GetActiveBySubOrder(subOrderID uint) (*models.ReturnRequest, error)
	List(filter ReturnRequestListFilter) ([]models.ReturnRequest, int64, error)
	ListOpenWithDeadlines(now time.Time) ([]models.ReturnRequest, error)
	Updates(id uint, updates map[string]interface{}) error
	UpdatesWhereStatus(id uint, status string, updates map[string]interface{}) (int64, error)
	CountByStatus(filter ReturnStatsFilter) ([]StatusCount, error)
	CountBreaches(filter ReturnStatsFilter) (firstResponse int64, resolution int64, err error)
	ListTimingSamples(filter ReturnStatsFilter) ([]ReturnTimingSample, error)
	WithTx(tx *gorm.DB) *GormReturnRequestRepository
}

// GormReturnRequestRepository GORM 实现
type GormReturnRequestRepository struct {
	db *gorm.DB
}

// NewReturnRequestRepository 创建售后工单仓库
func NewReturnRequestRepository(db *gorm.DB) *GormReturnRequestRepository {
	return &GormReturnRequestRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReturnRequestRepository) WithTx(tx *gorm.DB) *GormReturnRequestRepository {
	if tx == nil {
		return r
	}
	return &GormReturnRequestRepository{db: tx}
}

// Create 创建售后工单及其条目
func (r *GormReturnRequestRepository) Create(request *models.ReturnRequest, items []models.ReturnRequestItem) error {
	if err := r.db.Create(request).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ReturnRequestID = request.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取售后工单，预加载条目。
func (r *GormReturnRequestRepository) GetByID(id uint) (*models.ReturnRequest, error) {
	var request models.ReturnRequest
	if err := r.db.Preload("Items").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetByReturnNo 根据工单号获取售后工单
func (r *GormReturnRequestRepository) GetByReturnNo(returnNo string) (*models.ReturnRequest, error) {
	var request models.ReturnRequest
	if err := r.db.Preload("Items").Where("return_no = ?", returnNo).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetActiveBySubOrder 获取子订单当前占位的售后工单。
// 仅被拒绝的工单才释放占位，允许买家重新发起。
func (r *GormReturnRequestRepository) GetActiveBySubOrder(subOrderID uint) (*models.ReturnRequest, error) {
	var request models.ReturnRequest
	err := r.db.Where("sub_order_id = ? AND status <> ?", subOrderID, constants.ReturnStatusRejected).
		Order("id DESC").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *GormReturnRequestRepository) applyListFilter(query *gorm.DB, filter ReturnRequestListFilter) *gorm.DB {
	if filter.BuyerID > 0 {
		query = query.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.SubOrderID > 0 {
		query = query.Where("sub_order_id = ?", filter.SubOrderID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ReturnNo != "" {
		query = query.Where("return_no = ?", filter.ReturnNo)
	}
	if filter.Escalated != nil {
		if *filter.Escalated {
			query = query.Where("escalated_at IS NOT NULL")
		} else {
			query = query.Where("escalated_at IS NULL")
		}
	}
	if filter.Breached != nil {
		if *filter.Breached {
			query = query.Where("first_response_sla_breached = ? OR resolution_sla_breached = ?", true, true)
		} else {
			query = query.Where("first_response_sla_breached = ? AND resolution_sla_breached = ?", false, false)
		}
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// List 按条件分页查询售后工单
func (r *GormReturnRequestRepository) List(filter ReturnRequestListFilter) ([]models.ReturnRequest, int64, error) {
	query := r.applyListFilter(r.db.Model(&models.ReturnRequest{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.ReturnRequest
	query = applyPagination(query.Preload("Items").Order("id DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListOpenWithDeadlines 列出仍处于开放状态且存在未标记超期风险的工单，供巡检任务使用。
func (r *GormReturnRequestRepository) ListOpenWithDeadlines(now time.Time) ([]models.ReturnRequest, error) {
	openStatuses := []string{
		constants.ReturnStatusRequested,
		constants.ReturnStatusApproved,
		constants.ReturnStatusUnderAdminReview,
	}
	var requests []models.ReturnRequest
	err := r.db.Where("status IN ?", openStatuses).
		Where(
			r.db.Where("first_response_sla_breached = ? AND seller_first_response_at IS NULL AND first_response_due_at < ?", false, now).
				Or("resolution_sla_breached = ? AND resolution_due_at < ?", false, now),
		).
		Order("id ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Updates 按字段映射更新售后工单
func (r *GormReturnRequestRepository) Updates(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.ReturnRequest{}).Where("id = ?", id).Updates(updates).Error
}

// UpdatesWhereStatus 仅当工单处于指定状态时更新，返回受影响行数。
// 用于并发场景下的先写者生效保护。
func (r *GormReturnRequestRepository) UpdatesWhereStatus(id uint, status string, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.ReturnRequest{}).
		Where("id = ? AND status = ?", id, status).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *GormReturnRequestRepository) applyStatsFilter(query *gorm.DB, filter ReturnStatsFilter) *gorm.DB {
	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// CountByStatus 按状态分组统计工单数量
func (r *GormReturnRequestRepository) CountByStatus(filter ReturnStatsFilter) ([]StatusCount, error) {
	var rows []StatusCount
	query := r.applyStatsFilter(r.db.Model(&models.ReturnRequest{}), filter)
	err := query.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountBreaches 统计首次响应与处理完结两项超期的工单数量
func (r *GormReturnRequestRepository) CountBreaches(filter ReturnStatsFilter) (int64, int64, error) {
	var firstResponse int64
	query := r.applyStatsFilter(r.db.Model(&models.ReturnRequest{}), filter)
	if err := query.Where("first_response_sla_breached = ?", true).Count(&firstResponse).Error; err != nil {
		return 0, 0, err
	}
	var resolution int64
	query = r.applyStatsFilter(r.db.Model(&models.ReturnRequest{}), filter)
	if err := query.Where("resolution_sla_breached = ?", true).Count(&resolution).Error; err != nil {
		return 0, 0, err
	}
	return firstResponse, resolution, nil
}

// ListTimingSamples 拉取统计所需的时间戳样本，均值计算放在应用层以规避方言差异。
func (r *GormReturnRequestRepository) ListTimingSamples(filter ReturnStatsFilter) ([]ReturnTimingSample, error) {
	var samples []ReturnTimingSample
	query := r.applyStatsFilter(r.db.Model(&models.ReturnRequest{}), filter)
	err := query.Select("created_at, seller_first_response_at, resolved_at, completed_at, resolution_due_at").Scan(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}
