package service

import (
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/models"
	"github.com/vendora-market/internal/repository"
)

// 售后资格校验的不通过原因编码
const (
	EligibilityReasonSubOrderNotFound = "sub_order_not_found"
	EligibilityReasonNotBuyer         = "not_buyer"
	EligibilityReasonNotDelivered     = "not_delivered"
	EligibilityReasonWindowExpired    = "window_expired"
	EligibilityReasonActiveCaseExists = "active_case_exists"
)

// EligibilityResult 售后资格校验结果
type EligibilityResult struct {
	Eligible              bool       `json:"eligible"`
	Reason                string     `json:"reason,omitempty"`
	DeliveryDate          *time.Time `json:"delivery_date,omitempty"`
	DeliveryDateEstimated bool       `json:"delivery_date_estimated,omitempty"`
	WindowEndsAt          *time.Time `json:"window_ends_at,omitempty"`
	ActiveReturnNo        string     `json:"active_return_no,omitempty"`
}

// EligibilityService 售后资格校验服务
type EligibilityService struct {
	subOrderRepo repository.SubOrderRepository
	returnRepo   repository.ReturnRequestRepository
	windowDays   int
}

// NewEligibilityService 创建售后资格校验服务
func NewEligibilityService(
	subOrderRepo repository.SubOrderRepository,
	returnRepo repository.ReturnRequestRepository,
	windowDays int,
) *EligibilityService {
	if windowDays <= 0 {
		windowDays = constants.DefaultReturnWindowDays
	}
	return &EligibilityService{
		subOrderRepo: subOrderRepo,
		returnRepo:   returnRepo,
		windowDays:   windowDays,
	}
}

// CheckEligibility 校验买家能否对子订单发起售后。
// 校验按固定顺序短路执行，返回首个不通过的原因编码。
func (s *EligibilityService) CheckEligibility(subOrderID uint, buyerID uint, now time.Time) (*EligibilityResult, error) {
	subOrder, err := s.subOrderRepo.GetByID(subOrderID)
	if err != nil {
		return nil, err
	}
	if subOrder == nil {
		return &EligibilityResult{Reason: EligibilityReasonSubOrderNotFound}, nil
	}
	if subOrder.BuyerID != buyerID {
		return &EligibilityResult{Reason: EligibilityReasonNotBuyer}, nil
	}
	if !isDeliveredStatus(subOrder.Status) {
		return &EligibilityResult{Reason: EligibilityReasonNotDelivered}, nil
	}

	deliveryDate, estimated, err := s.resolveDeliveryDate(subOrder)
	if err != nil {
		return nil, err
	}
	windowEndsAt := deliveryDate.Add(time.Duration(s.windowDays) * 24 * time.Hour)
	result := &EligibilityResult{
		DeliveryDate:          &deliveryDate,
		DeliveryDateEstimated: estimated,
		WindowEndsAt:          &windowEndsAt,
	}
	// 窗口截止时刻含端点
	if now.After(windowEndsAt) {
		result.Reason = EligibilityReasonWindowExpired
		return result, nil
	}

	active, err := s.returnRepo.GetActiveBySubOrder(subOrderID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		result.Reason = EligibilityReasonActiveCaseExists
		result.ActiveReturnNo = active.ReturnNo
		return result, nil
	}

	result.Eligible = true
	return result, nil
}

// resolveDeliveryDate 解析子订单的送达时间。
// 优先取状态流转记录，缺失时退回子订单更新时间并标记为估算值。
func (s *EligibilityService) resolveDeliveryDate(subOrder *models.SubOrder) (time.Time, bool, error) {
	history, err := s.subOrderRepo.GetLatestStatusChange(subOrder.ID, constants.SubOrderStatusDelivered)
	if err != nil {
		return time.Time{}, false, err
	}
	if history != nil {
		return history.CreatedAt, false, nil
	}
	return subOrder.UpdatedAt, true, nil
}

func isDeliveredStatus(status string) bool {
	return status == constants.SubOrderStatusDelivered || status == constants.SubOrderStatusCompleted
}
