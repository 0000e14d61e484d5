package service

import (
	"testing"
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/models"

	"github.com/shopspring/decimal"
)

func TestCheckEligibilitySubOrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.eligibility.CheckEligibility(999, 1, time.Now())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Eligible {
		t.Fatalf("expected not eligible")
	}
	if result.Reason != EligibilityReasonSubOrderNotFound {
		t.Fatalf("reason want %s got %s", EligibilityReasonSubOrderNotFound, result.Reason)
	}
}

func TestCheckEligibilityNotBuyer(t *testing.T) {
	env := newTestEnv(t)
	subOrder := createDeliveredSubOrder(t, env, 1, 10, time.Now().Add(-24*time.Hour))

	result, err := env.eligibility.CheckEligibility(subOrder.ID, 2, time.Now())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Reason != EligibilityReasonNotBuyer {
		t.Fatalf("reason want %s got %s", EligibilityReasonNotBuyer, result.Reason)
	}
}

func TestCheckEligibilityNotDelivered(t *testing.T) {
	env := newTestEnv(t)
	subOrder := &models.SubOrder{
		OrderID:     1,
		SubOrderNo:  "SUB-SHIPPED-1",
		StoreID:     10,
		BuyerID:     1,
		Status:      constants.SubOrderStatusShipped,
		Currency:    "CNY",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	}
	if err := env.db.Create(subOrder).Error; err != nil {
		t.Fatalf("create sub-order failed: %v", err)
	}

	result, err := env.eligibility.CheckEligibility(subOrder.ID, 1, time.Now())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Reason != EligibilityReasonNotDelivered {
		t.Fatalf("reason want %s got %s", EligibilityReasonNotDelivered, result.Reason)
	}
}

func TestCheckEligibilityCompletedStatusCountsAsDelivered(t *testing.T) {
	env := newTestEnv(t)
	subOrder := createDeliveredSubOrder(t, env, 1, 10, time.Now().Add(-24*time.Hour))
	if err := env.db.Model(&models.SubOrder{}).Where("id = ?", subOrder.ID).
		Update("status", constants.SubOrderStatusCompleted).Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	result, err := env.eligibility.CheckEligibility(subOrder.ID, 1, time.Now())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !result.Eligible {
		t.Fatalf("expected eligible, reason %s", result.Reason)
	}
}

func TestCheckEligibilityWindowBoundary(t *testing.T) {
	env := newTestEnv(t)
	deliveredAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	subOrder := createDeliveredSubOrder(t, env, 1, 10, deliveredAt)
	windowEnd := deliveredAt.Add(30 * 24 * time.Hour)

	// 截止时刻本身仍可发起
	result, err := env.eligibility.CheckEligibility(subOrder.ID, 1, windowEnd)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !result.Eligible {
		t.Fatalf("expected eligible at window end, reason %s", result.Reason)
	}
	if result.WindowEndsAt == nil || !result.WindowEndsAt.Equal(windowEnd) {
		t.Fatalf("window_ends_at want %v got %v", windowEnd, result.WindowEndsAt)
	}
	if result.DeliveryDateEstimated {
		t.Fatalf("delivery date should come from status history")
	}

	// 过了截止时刻即拒绝
	result, err = env.eligibility.CheckEligibility(subOrder.ID, 1, windowEnd.Add(time.Second))
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Reason != EligibilityReasonWindowExpired {
		t.Fatalf("reason want %s got %s", EligibilityReasonWindowExpired, result.Reason)
	}
}

func TestCheckEligibilityEstimatedDeliveryDate(t *testing.T) {
	env := newTestEnv(t)
	subOrder := &models.SubOrder{
		OrderID:     1,
		SubOrderNo:  "SUB-NOHIST-1",
		StoreID:     10,
		BuyerID:     1,
		Status:      constants.SubOrderStatusDelivered,
		Currency:    "CNY",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	}
	if err := env.db.Create(subOrder).Error; err != nil {
		t.Fatalf("create sub-order failed: %v", err)
	}

	result, err := env.eligibility.CheckEligibility(subOrder.ID, 1, time.Now())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !result.Eligible {
		t.Fatalf("expected eligible, reason %s", result.Reason)
	}
	if !result.DeliveryDateEstimated {
		t.Fatalf("expected estimated delivery date fallback")
	}
}

func TestCheckEligibilityActiveCaseExists(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	result, err := env.eligibility.CheckEligibility(subOrder.ID, 1, now)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Reason != EligibilityReasonActiveCaseExists {
		t.Fatalf("reason want %s got %s", EligibilityReasonActiveCaseExists, result.Reason)
	}
	if result.ActiveReturnNo != request.ReturnNo {
		t.Fatalf("active return no want %s got %s", request.ReturnNo, result.ActiveReturnNo)
	}
}

func TestCheckEligibilityFreedAfterRejection(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	if _, err := env.returnService.SellerReject(request.ID, 10, "缺少凭证", now); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	result, err := env.eligibility.CheckEligibility(subOrder.ID, 1, now)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !result.Eligible {
		t.Fatalf("expected eligible after rejection, reason %s", result.Reason)
	}
}
