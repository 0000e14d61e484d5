package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/models"
	"github.com/vendora-market/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var testDBSeq int64

// setupServiceDB 建内存库并顶替全局连接，供事务型服务代码使用。
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Store{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.SubOrder{},
		&models.SubOrderItem{},
		&models.SubOrderStatusHistory{},
		&models.ReturnRequest{},
		&models.ReturnRequestItem{},
		&models.ReturnRequestMessage{},
		&models.ReturnRequestAdminAction{},
		&models.SLAConfig{},
		&models.Refund{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	return db
}

type testEnv struct {
	db *gorm.DB

	subOrderRepo  *repository.GormSubOrderRepository
	returnRepo    *repository.GormReturnRequestRepository
	messageRepo   *repository.GormReturnMessageRepository
	actionRepo    *repository.GormAdminActionRepository
	slaConfigRepo *repository.GormSLAConfigRepository
	refundRepo    *repository.GormRefundRepository

	eligibility    *EligibilityService
	slaService     *SLAService
	refundService  *RefundService
	returnService  *ReturnService
	messageService *ReturnMessageService
	monitor        *SLAMonitorService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupServiceDB(t)
	env := &testEnv{
		db:            db,
		subOrderRepo:  repository.NewSubOrderRepository(db),
		returnRepo:    repository.NewReturnRequestRepository(db),
		messageRepo:   repository.NewReturnMessageRepository(db),
		actionRepo:    repository.NewAdminActionRepository(db),
		slaConfigRepo: repository.NewSLAConfigRepository(db),
		refundRepo:    repository.NewRefundRepository(db),
	}
	env.eligibility = NewEligibilityService(env.subOrderRepo, env.returnRepo, 30)
	env.slaService = NewSLAService(env.slaConfigRepo, 24, 168)
	env.refundService = NewRefundService(env.refundRepo)
	env.returnService = NewReturnService(
		env.returnRepo,
		env.subOrderRepo,
		env.actionRepo,
		env.eligibility,
		env.slaService,
		env.refundService,
		nil,
	)
	env.messageService = NewReturnMessageService(env.messageRepo, env.returnRepo)
	env.monitor = NewSLAMonitorService(env.returnRepo, env.returnService, false)
	return env
}

// failingRefunds 模拟退款侧不可用的协作方
type failingRefunds struct{}

func (failingRefunds) DispatchRefund(*models.ReturnRequest, models.Money, uint, string) (*models.Refund, error) {
	return nil, fmt.Errorf("refund gateway unavailable")
}

func (failingRefunds) ConfirmRefund(uint, time.Time) (*models.Refund, error) {
	return nil, fmt.Errorf("refund gateway unavailable")
}

func (failingRefunds) FindByReturn(uint) (*models.Refund, error) {
	return nil, nil
}

// createDeliveredSubOrder 造一张两行商品、已送达的子订单。
// 商品一单价 100 数量 2，商品二单价 50 数量 1，整单金额 250。
func createDeliveredSubOrder(t *testing.T, env *testEnv, buyerID, storeID uint, deliveredAt time.Time) *models.SubOrder {
	t.Helper()
	catA := uint(1)
	catB := uint(2)
	subOrder := &models.SubOrder{
		OrderID:     1,
		SubOrderNo:  fmt.Sprintf("SUB-%d", time.Now().UnixNano()),
		StoreID:     storeID,
		BuyerID:     buyerID,
		Status:      constants.SubOrderStatusDelivered,
		Currency:    "CNY",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(250)),
		Items: []models.SubOrderItem{
			{
				ProductID:  1,
				CategoryID: &catA,
				TitleJSON:  models.JSON{"zh-CN": "商品一"},
				UnitPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
				Quantity:   2,
				TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(200)),
			},
			{
				ProductID:  2,
				CategoryID: &catB,
				TitleJSON:  models.JSON{"zh-CN": "商品二"},
				UnitPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
				Quantity:   1,
				TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			},
		},
	}
	if err := env.db.Create(subOrder).Error; err != nil {
		t.Fatalf("create sub-order failed: %v", err)
	}
	history := &models.SubOrderStatusHistory{
		SubOrderID: subOrder.ID,
		FromStatus: constants.SubOrderStatusShipped,
		ToStatus:   constants.SubOrderStatusDelivered,
		CreatedAt:  deliveredAt,
	}
	if err := env.db.Create(history).Error; err != nil {
		t.Fatalf("create status history failed: %v", err)
	}
	return subOrder
}

// createFullReturn 以整单退货发起一个售后工单
func createFullReturn(t *testing.T, env *testEnv, subOrder *models.SubOrder, buyerID uint, now time.Time) *models.ReturnRequest {
	t.Helper()
	request, err := env.returnService.CreateReturnRequest(CreateReturnInput{
		SubOrderID:   subOrder.ID,
		BuyerID:      buyerID,
		Type:         constants.ReturnTypeReturn,
		Reason:       constants.ReturnReasonDefective,
		Description:  "商品无法开机",
		IsFullReturn: true,
	}, now)
	if err != nil {
		t.Fatalf("create return failed: %v", err)
	}
	return request
}
