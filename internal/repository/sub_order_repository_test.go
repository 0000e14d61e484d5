package repository

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var subOrderTestDBSeq int64

func setupSubOrderDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:sub_order_test_%d?mode=memory&cache=shared", atomic.AddInt64(&subOrderTestDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.SubOrder{},
		&models.SubOrderItem{},
		&models.SubOrderStatusHistory{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func seedSubOrder(t *testing.T, repo *GormSubOrderRepository, status string) *models.SubOrder {
	t.Helper()
	subOrder := &models.SubOrder{
		OrderID:     1,
		SubOrderNo:  fmt.Sprintf("SUB-TEST-%d", atomic.AddInt64(&subOrderTestDBSeq, 1)),
		StoreID:     10,
		BuyerID:     1,
		Status:      status,
		Currency:    "CNY",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(200)),
	}
	if err := repo.Create(subOrder); err != nil {
		t.Fatalf("seed sub-order failed: %v", err)
	}
	return subOrder
}

func TestSubOrderUpdateStatusRecordsOperator(t *testing.T) {
	repo := NewSubOrderRepository(setupSubOrderDB(t))
	subOrder := seedSubOrder(t, repo, constants.SubOrderStatusDelivered)

	var operator uint = 42
	if err := repo.UpdateStatus(subOrder.ID, constants.SubOrderStatusDelivered, constants.SubOrderStatusCompleted, operator); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	reloaded, err := repo.GetByID(subOrder.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.SubOrderStatusCompleted {
		t.Fatalf("status want completed got %s", reloaded.Status)
	}

	history, err := repo.GetLatestStatusChange(subOrder.ID, constants.SubOrderStatusCompleted)
	if err != nil {
		t.Fatalf("query history failed: %v", err)
	}
	if history == nil {
		t.Fatalf("status change must be journaled")
	}
	if history.FromStatus != constants.SubOrderStatusDelivered || history.ChangedBy != operator {
		t.Fatalf("history want delivered by %d, got %+v", operator, history)
	}
}

func TestSubOrderUpdateStatusStaleFrom(t *testing.T) {
	repo := NewSubOrderRepository(setupSubOrderDB(t))
	subOrder := seedSubOrder(t, repo, constants.SubOrderStatusDelivered)

	// 原状态不匹配时不落任何记录
	err := repo.UpdateStatus(subOrder.ID, constants.SubOrderStatusPaid, constants.SubOrderStatusCompleted, 0)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err want ErrRecordNotFound got %v", err)
	}
	history, err := repo.GetLatestStatusChange(subOrder.ID, constants.SubOrderStatusCompleted)
	if err != nil {
		t.Fatalf("query history failed: %v", err)
	}
	if history != nil {
		t.Fatalf("stale transition must not journal, got %+v", history)
	}
}
