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
	"gorm.io/gorm"
)

// RefundCollaborator 退款协作方。
// 售后单结论落库后由服务调用协作方发起退款，失败不回滚结论。
type RefundCollaborator interface {
	DispatchRefund(request *models.ReturnRequest, amount models.Money, initiatedBy uint, reason string) (*models.Refund, error)
	ConfirmRefund(refundID uint, now time.Time) (*models.Refund, error)
	FindByReturn(returnRequestID uint) (*models.Refund, error)
}

// ReturnNotifier 售后事件通知方，投递失败只记日志不阻塞主流程。
type ReturnNotifier interface {
	NotifyReturnOpened(request *models.ReturnRequest)
	NotifyReturnStatusChanged(request *models.ReturnRequest, previousStatus string)
}

// ReturnService 售后工单业务服务
type ReturnService struct {
	returnRepo   repository.ReturnRequestRepository
	subOrderRepo repository.SubOrderRepository
	actionRepo   repository.AdminActionRepository
	eligibility  *EligibilityService
	slaService   *SLAService
	refunds      RefundCollaborator
	notifier     ReturnNotifier
}

// NewReturnService 创建售后工单服务
func NewReturnService(
	returnRepo repository.ReturnRequestRepository,
	subOrderRepo repository.SubOrderRepository,
	actionRepo repository.AdminActionRepository,
	eligibility *EligibilityService,
	slaService *SLAService,
	refunds RefundCollaborator,
	notifier ReturnNotifier,
) *ReturnService {
	return &ReturnService{
		returnRepo:   returnRepo,
		subOrderRepo: subOrderRepo,
		actionRepo:   actionRepo,
		eligibility:  eligibility,
		slaService:   slaService,
		refunds:      refunds,
		notifier:     notifier,
	}
}

// CreateReturnItemInput 部分退货明细输入
type CreateReturnItemInput struct {
	SubOrderItemID uint `json:"sub_order_item_id" binding:"required"`
	Quantity       int  `json:"quantity" binding:"required"`
}

// CreateReturnInput 发起售后输入
type CreateReturnInput struct {
	SubOrderID   uint
	BuyerID      uint
	Type         string
	Reason       string
	Description  string
	IsFullReturn bool
	Items        []CreateReturnItemInput
}

func isValidReturnType(t string) bool {
	return t == constants.ReturnTypeReturn || t == constants.ReturnTypeComplaint
}

func isValidReturnReason(reason string) bool {
	switch reason {
	case constants.ReturnReasonDefective,
		constants.ReturnReasonNotAsDescribed,
		constants.ReturnReasonWrongItem,
		constants.ReturnReasonDamagedInTransit,
		constants.ReturnReasonMissingParts,
		constants.ReturnReasonChangedMind,
		constants.ReturnReasonOther:
		return true
	}
	return false
}

// generateReturnNo 生成售后单号，前缀区分退货与投诉。
func generateReturnNo(requestType string, now time.Time) string {
	prefix := constants.ReturnNoPrefixReturn
	if requestType == constants.ReturnTypeComplaint {
		prefix = constants.ReturnNoPrefixComplaint
	}
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// 随机源不可用时退化为时间戳尾部
		return fmt.Sprintf("%s-%s-%08x", prefix, now.Format("20060102"), now.UnixNano()&0xffffffff)
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), hex.EncodeToString(buf))
}

// buildReturnItems 校验部分退货明细并计算退款金额。
// 每条明细金额恒等于子订单项单价乘以申请数量。
func buildReturnItems(subOrder *models.SubOrder, inputs []CreateReturnItemInput) ([]models.ReturnRequestItem, models.Money, error) {
	if len(inputs) == 0 {
		return nil, models.Money{}, ErrReturnItemsRequired
	}
	itemIndex := make(map[uint]*models.SubOrderItem, len(subOrder.Items))
	for i := range subOrder.Items {
		itemIndex[subOrder.Items[i].ID] = &subOrder.Items[i]
	}
	seen := make(map[uint]bool, len(inputs))
	items := make([]models.ReturnRequestItem, 0, len(inputs))
	total := decimal.Zero
	for _, input := range inputs {
		subItem, ok := itemIndex[input.SubOrderItemID]
		if !ok {
			return nil, models.Money{}, ErrReturnItemInvalid
		}
		if seen[input.SubOrderItemID] {
			return nil, models.Money{}, ErrReturnItemInvalid
		}
		seen[input.SubOrderItemID] = true
		if input.Quantity < 1 || input.Quantity > subItem.Quantity {
			return nil, models.Money{}, ErrReturnItemInvalid
		}
		amount := subItem.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(input.Quantity)))
		items = append(items, models.ReturnRequestItem{
			SubOrderItemID: input.SubOrderItemID,
			Quantity:       input.Quantity,
			RefundAmount:   models.NewMoneyFromDecimal(amount),
		})
		total = total.Add(amount)
	}
	return items, models.NewMoneyFromDecimal(total), nil
}

// itemCategoryIDs 收集售后涉及商品的品类快照
func itemCategoryIDs(subOrder *models.SubOrder, items []models.ReturnRequestItem, isFullReturn bool) []*uint {
	if isFullReturn {
		ids := make([]*uint, 0, len(subOrder.Items))
		for i := range subOrder.Items {
			ids = append(ids, subOrder.Items[i].CategoryID)
		}
		return ids
	}
	involved := make(map[uint]bool, len(items))
	for _, item := range items {
		involved[item.SubOrderItemID] = true
	}
	ids := make([]*uint, 0, len(items))
	for i := range subOrder.Items {
		if involved[subOrder.Items[i].ID] {
			ids = append(ids, subOrder.Items[i].CategoryID)
		}
	}
	return ids
}

// CreateReturnRequest 买家发起售后。
// 资格校验通过后在事务内复核占位，保证同一子订单同时只有一个活跃工单。
func (s *ReturnService) CreateReturnRequest(input CreateReturnInput, now time.Time) (*models.ReturnRequest, error) {
	if !isValidReturnType(input.Type) || !isValidReturnReason(input.Reason) {
		return nil, ErrReturnCreateFailed
	}
	if len(input.Description) > constants.ReturnDescriptionMaxLength {
		return nil, ErrReturnCreateFailed
	}

	eligibility, err := s.eligibility.CheckEligibility(input.SubOrderID, input.BuyerID, now)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		switch eligibility.Reason {
		case EligibilityReasonSubOrderNotFound:
			return nil, ErrSubOrderNotFound
		case EligibilityReasonActiveCaseExists:
			return nil, ErrReturnAlreadyActive
		default:
			return nil, ErrNotEligible
		}
	}

	subOrder, err := s.subOrderRepo.GetByID(input.SubOrderID)
	if err != nil {
		return nil, err
	}
	if subOrder == nil {
		return nil, ErrSubOrderNotFound
	}

	var items []models.ReturnRequestItem
	refundAmount := subOrder.TotalAmount
	if !input.IsFullReturn {
		items, refundAmount, err = buildReturnItems(subOrder, input.Items)
		if err != nil {
			return nil, err
		}
	}

	terms, err := s.slaService.ResolveTerms(itemCategoryIDs(subOrder, items, input.IsFullReturn), input.Type)
	if err != nil {
		return nil, err
	}
	deadlines := s.slaService.CalculateDeadlines(terms, now)

	request := &models.ReturnRequest{
		ReturnNo:              generateReturnNo(input.Type, now),
		SubOrderID:            subOrder.ID,
		StoreID:               subOrder.StoreID,
		BuyerID:               input.BuyerID,
		Type:                  input.Type,
		Reason:                input.Reason,
		Description:           input.Description,
		IsFullReturn:          input.IsFullReturn,
		Status:                constants.ReturnStatusRequested,
		RefundAmount:          refundAmount,
		Currency:              subOrder.Currency,
		FirstResponseDueAt:    &deadlines.FirstResponseDueAt,
		ResolutionDueAt:       &deadlines.ResolutionDueAt,
		DeliveryDateEstimated: eligibility.DeliveryDateEstimated,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := s.returnRepo.WithTx(tx)
		// 事务内复核占位，拦截并发重复发起
		active, err := txRepo.GetActiveBySubOrder(subOrder.ID)
		if err != nil {
			return err
		}
		if active != nil {
			return ErrReturnAlreadyActive
		}
		return txRepo.Create(request, items)
	})
	if err != nil {
		if err == ErrReturnAlreadyActive {
			return nil, err
		}
		logger.Errorw("创建售后工单失败", "sub_order_id", subOrder.ID, "error", err)
		return nil, ErrReturnCreateFailed
	}

	if s.notifier != nil {
		s.notifier.NotifyReturnOpened(request)
	}
	return s.GetByID(request.ID)
}

// GetByID 获取售后工单
func (s *ReturnService) GetByID(id uint) (*models.ReturnRequest, error) {
	request, err := s.returnRepo.GetByID(id)
	if err != nil {
		return nil, ErrReturnFetchFailed
	}
	if request == nil {
		return nil, ErrReturnNotFound
	}
	return request, nil
}

// GetForBuyer 获取买家名下的售后工单
func (s *ReturnService) GetForBuyer(id uint, buyerID uint) (*models.ReturnRequest, error) {
	request, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request.BuyerID != buyerID {
		return nil, ErrReturnNotFound
	}
	return request, nil
}

// GetForStore 获取店铺名下的售后工单
func (s *ReturnService) GetForStore(id uint, storeID uint) (*models.ReturnRequest, error) {
	request, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request.StoreID != storeID {
		return nil, ErrStoreNotOwner
	}
	return request, nil
}

// List 分页查询售后工单
func (s *ReturnService) List(filter repository.ReturnRequestListFilter) ([]models.ReturnRequest, int64, error) {
	return s.returnRepo.List(filter)
}

// CheckEligibility 售后资格预检，供买家端下单前查询。
func (s *ReturnService) CheckEligibility(subOrderID uint, buyerID uint, now time.Time) (*EligibilityResult, error) {
	return s.eligibility.CheckEligibility(subOrderID, buyerID, now)
}
