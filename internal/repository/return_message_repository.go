package repository

import (
	"time"

	"github.com/vendora-market/internal/models"

	"gorm.io/gorm"
)

// ReturnMessageRepository 售后留言数据访问接口
type ReturnMessageRepository interface {
	Create(message *models.ReturnRequestMessage) error
	ListByReturn(returnRequestID uint) ([]models.ReturnRequestMessage, error)
	CountUnread(returnRequestID uint, forSeller bool) (int64, error)
	MarkRead(returnRequestID uint, forSeller bool, readAt time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormReturnMessageRepository
}

// GormReturnMessageRepository GORM 实现
type GormReturnMessageRepository struct {
	db *gorm.DB
}

// NewReturnMessageRepository 创建售后留言仓库
func NewReturnMessageRepository(db *gorm.DB) *GormReturnMessageRepository {
	return &GormReturnMessageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReturnMessageRepository) WithTx(tx *gorm.DB) *GormReturnMessageRepository {
	if tx == nil {
		return r
	}
	return &GormReturnMessageRepository{db: tx}
}

// Create 创建留言
func (r *GormReturnMessageRepository) Create(message *models.ReturnRequestMessage) error {
	return r.db.Create(message).Error
}

// ListByReturn 按发送时间正序列出工单下的全部留言
func (r *GormReturnMessageRepository) ListByReturn(returnRequestID uint) ([]models.ReturnRequestMessage, error) {
	var messages []models.ReturnRequestMessage
	err := r.db.Where("return_request_id = ?", returnRequestID).
		Order("sent_at ASC").Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CountUnread 统计指定一方的未读留言数。
// forSeller 为 true 时统计卖家视角的未读，即买家发出的未读留言。
func (r *GormReturnMessageRepository) CountUnread(returnRequestID uint, forSeller bool) (int64, error) {
	var count int64
	err := r.db.Model(&models.ReturnRequestMessage{}).
		Where("return_request_id = ? AND is_from_seller = ? AND is_read = ?", returnRequestID, !forSeller, false).
		Count(&count).Error
	return count, err
}

// MarkRead 将对方发出的未读留言全部标记为已读，返回受影响行数。
func (r *GormReturnMessageRepository) MarkRead(returnRequestID uint, forSeller bool, readAt time.Time) (int64, error) {
	result := r.db.Model(&models.ReturnRequestMessage{}).
		Where("return_request_id = ? AND is_from_seller = ? AND is_read = ?", returnRequestID, !forSeller, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		})
	return result.RowsAffected, result.Error
}
