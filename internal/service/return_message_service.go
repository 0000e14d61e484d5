package service

import (
	"strings"
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/models"
	"github.com/vendora-market/internal/repository"

	"gorm.io/gorm"
)

// ReturnMessageService 售后留言业务服务
type ReturnMessageService struct {
	messageRepo repository.ReturnMessageRepository
	returnRepo  repository.ReturnRequestRepository
}

// NewReturnMessageService 创建售后留言服务
func NewReturnMessageService(
	messageRepo repository.ReturnMessageRepository,
	returnRepo repository.ReturnRequestRepository,
) *ReturnMessageService {
	return &ReturnMessageService{
		messageRepo: messageRepo,
		returnRepo:  returnRepo,
	}
}

// AddMessage 在售后工单下追加留言。
// 终态工单不再接受留言，商家首条留言视为首次响应。
func (s *ReturnMessageService) AddMessage(returnRequestID uint, senderID uint, isFromSeller bool, content string, now time.Time) (*models.ReturnRequestMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrMessageContentInvalid
	}
	if len(content) > constants.ReturnMessageMaxLength {
		return nil, ErrMessageTooLong
	}

	request, err := s.returnRepo.GetByID(returnRequestID)
	if err != nil {
		return nil, ErrReturnFetchFailed
	}
	if request == nil {
		return nil, ErrReturnNotFound
	}
	if request.IsTerminal() {
		return nil, ErrMessageCaseClosed
	}

	message := &models.ReturnRequestMessage{
		ReturnRequestID: returnRequestID,
		SenderID:        senderID,
		Content:         content,
		IsFromSeller:    isFromSeller,
		SentAt:          now,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.messageRepo.WithTx(tx).Create(message); err != nil {
			return err
		}
		// 每条留言都刷新工单活跃时间
		updates := map[string]interface{}{
			"updated_at": now,
		}
		if isFromSeller && request.SellerFirstResponseAt == nil {
			updates["seller_first_response_at"] = now
		}
		return s.returnRepo.WithTx(tx).Updates(returnRequestID, updates)
	})
	if err != nil {
		logger.Errorw("售后留言写入失败", "return_id", returnRequestID, "error", err)
		return nil, ErrReturnUpdateFailed
	}
	return message, nil
}

// ListMessages 按发送时间正序列出工单留言
func (s *ReturnMessageService) ListMessages(returnRequestID uint) ([]models.ReturnRequestMessage, error) {
	return s.messageRepo.ListByReturn(returnRequestID)
}

// MarkMessagesAsRead 将对方发来的留言全部置为已读，返回本次置位数量。
func (s *ReturnMessageService) MarkMessagesAsRead(returnRequestID uint, forSeller bool, now time.Time) (int64, error) {
	return s.messageRepo.MarkRead(returnRequestID, forSeller, now)
}

// GetUnreadCount 统计指定一方的未读留言数
func (s *ReturnMessageService) GetUnreadCount(returnRequestID uint, forSeller bool) (int64, error) {
	return s.messageRepo.CountUnread(returnRequestID, forSeller)
}
