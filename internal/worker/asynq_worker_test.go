package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/models"
	"github.com/vendora-market/internal/provider"
	"github.com/vendora-market/internal/queue"
	"github.com/vendora-market/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var workerTestDBSeq int64

func newTestConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", atomic.AddInt64(&workerTestDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.ReturnRequest{},
		&models.ReturnRequestItem{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	consumer := NewConsumer(&provider.Container{
		UserRepo:   repository.NewUserRepository(db),
		StoreRepo:  repository.NewStoreRepository(db),
		ReturnRepo: repository.NewReturnRequestRepository(db),
	})
	return consumer, db
}

func seedWorkerReturn(t *testing.T, db *gorm.DB) *models.ReturnRequest {
	t.Helper()
	store := &models.Store{
		Name:         "测试店铺",
		Slug:         fmt.Sprintf("store-%d", workerTestDBSeq),
		OwnerUserID:  2,
		ContactEmail: "seller@example.com",
	}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	buyer := &models.User{
		Email:        fmt.Sprintf("buyer%d@example.com", workerTestDBSeq),
		PasswordHash: "x",
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(buyer).Error; err != nil {
		t.Fatalf("create buyer failed: %v", err)
	}
	request := &models.ReturnRequest{
		ReturnNo:     fmt.Sprintf("RTN-WORKER-%d", workerTestDBSeq),
		SubOrderID:   1,
		StoreID:      store.ID,
		BuyerID:      buyer.ID,
		Type:         constants.ReturnTypeReturn,
		Reason:       constants.ReturnReasonDefective,
		IsFullReturn: true,
		Status:       constants.ReturnStatusRequested,
		RefundAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Currency:     "CNY",
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("create return request failed: %v", err)
	}
	return request
}

func TestHandleReturnOpenedNotify(t *testing.T) {
	consumer, db := newTestConsumer(t)
	request := seedWorkerReturn(t, db)

	task, err := queue.NewReturnOpenedNotifyTask(queue.ReturnOpenedNotifyPayload{
		ReturnRequestID: request.ID,
		ReturnNo:        request.ReturnNo,
		StoreID:         request.StoreID,
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleReturnOpenedNotify(context.Background(), task); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
}

func TestHandleReturnOpenedNotifySkipsUnknownRequest(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	task, err := queue.NewReturnOpenedNotifyTask(queue.ReturnOpenedNotifyPayload{ReturnRequestID: 9999})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	// 工单不存在时不算失败，任务不应重试
	if err := consumer.handleReturnOpenedNotify(context.Background(), task); err != nil {
		t.Fatalf("missing request must not fail the task, got %v", err)
	}
}

func TestHandleReturnStatusNotifyBadPayload(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	task := asynq.NewTask(queue.TaskReturnStatusNotify, []byte("{not json"))
	if err := consumer.handleReturnStatusNotify(context.Background(), task); err == nil {
		t.Fatalf("malformed payload should fail the task")
	}
}

func TestHandleReturnStatusNotify(t *testing.T) {
	consumer, db := newTestConsumer(t)
	request := seedWorkerReturn(t, db)

	task, err := queue.NewReturnStatusNotifyTask(queue.ReturnStatusNotifyPayload{
		ReturnRequestID: request.ID,
		ReturnNo:        request.ReturnNo,
		PreviousStatus:  constants.ReturnStatusRequested,
		NewStatus:       constants.ReturnStatusApproved,
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleReturnStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
}

func TestRegisterNilSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(nil)

	mux := asynq.NewServeMux()
	NewConsumer(&provider.Container{}).Register(mux)
}
