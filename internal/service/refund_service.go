package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/models"
	"github.com/vendora-market/internal/repository"

	"github.com/shopspring/decimal"
)

// RefundService 退款落账服务。
// 实际打款由外部支付侧完成，这里负责生成退款单并维护受理状态。
type RefundService struct {
	refundRepo repository.RefundRepository
}

// NewRefundService 创建退款服务
func NewRefundService(refundRepo repository.RefundRepository) *RefundService {
	return &RefundService{refundRepo: refundRepo}
}

func generateRefundNo(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("RF-%s-%08x", now.Format("20060102"), now.UnixNano()&0xffffffff)
	}
	return fmt.Sprintf("RF-%s-%s", now.Format("20060102"), hex.EncodeToString(buf))
}

// DispatchRefund 依据售后结论发起退款。
// 金额必须为正且不超过工单的申请退款金额。
func (s *RefundService) DispatchRefund(request *models.ReturnRequest, amount models.Money, initiatedBy uint, reason string) (*models.Refund, error) {
	if request == nil {
		return nil, ErrReturnNotFound
	}
	if amount.Decimal.LessThanOrEqual(decimal.Zero) || amount.Decimal.GreaterThan(request.RefundAmount.Decimal) {
		return nil, ErrRefundAmountInvalid
	}

	now := time.Now()
	returnRequestID := request.ID
	refund := &models.Refund{
		RefundNo:        generateRefundNo(now),
		SubOrderID:      request.SubOrderID,
		BuyerID:         request.BuyerID,
		ReturnRequestID: &returnRequestID,
		Amount:          amount,
		Currency:        request.Currency,
		Reason:          reason,
		Status:          constants.RefundStatusPending,
		InitiatedBy:     initiatedBy,
	}
	if err := s.refundRepo.Create(refund); err != nil {
		logger.Errorw("退款单创建失败", "return_no", request.ReturnNo, "error", err)
		return nil, ErrRefundCreateFailed
	}

	// 支付侧受理后进入处理中，到账确认由确认环节单独落账
	if err := s.refundRepo.UpdateStatus(refund.ID, constants.RefundStatusProcessing, nil); err != nil {
		logger.Errorw("退款状态更新失败", "refund_no", refund.RefundNo, "error", err)
		return nil, ErrRefundDispatchFailed
	}
	return s.refundRepo.GetByID(refund.ID)
}

// ConfirmRefund 确认退款已到账。
// 仅受理中的退款单可确认，确认后记录处理完成时间。
func (s *RefundService) ConfirmRefund(refundID uint, now time.Time) (*models.Refund, error) {
	refund, err := s.refundRepo.GetByID(refundID)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, ErrRefundNotFound
	}
	if refund.Status == constants.RefundStatusCompleted {
		return refund, nil
	}
	if refund.Status != constants.RefundStatusPending && refund.Status != constants.RefundStatusProcessing {
		return nil, ErrRefundStatusInvalid
	}
	if err := s.refundRepo.UpdateStatus(refundID, constants.RefundStatusCompleted, map[string]interface{}{
		"processed_at": now,
	}); err != nil {
		logger.Errorw("退款确认失败", "refund_no", refund.RefundNo, "error", err)
		return nil, ErrRefundDispatchFailed
	}
	return s.refundRepo.GetByID(refundID)
}

// FindByReturn 获取售后工单关联的最新退款单
func (s *RefundService) FindByReturn(returnRequestID uint) (*models.Refund, error) {
	return s.refundRepo.GetByReturnRequestID(returnRequestID)
}

// List 分页查询退款单
func (s *RefundService) List(filter repository.RefundListFilter) ([]models.Refund, int64, error) {
	return s.refundRepo.List(filter)
}
