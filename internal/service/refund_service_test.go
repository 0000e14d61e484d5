package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/models"
	"github.com/vendora-market/internal/repository"

	"github.com/shopspring/decimal"
)

func TestDispatchRefundAmountValidation(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	cases := []struct {
		name   string
		amount decimal.Decimal
	}{
		{name: "zero", amount: decimal.Zero},
		{name: "negative", amount: decimal.NewFromInt(-10)},
		{name: "over requested", amount: decimal.NewFromInt(251)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.refundService.DispatchRefund(request, models.NewMoneyFromDecimal(tc.amount), 100, request.Reason)
			if !errors.Is(err, ErrRefundAmountInvalid) {
				t.Fatalf("err want ErrRefundAmountInvalid got %v", err)
			}
		})
	}

	if _, err := env.refundService.DispatchRefund(nil, models.NewMoneyFromDecimal(decimal.NewFromInt(10)), 100, "x"); !errors.Is(err, ErrReturnNotFound) {
		t.Fatalf("err want ErrReturnNotFound got %v", err)
	}
}

func TestDispatchRefundCreatesProcessingRefund(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	refund, err := env.refundService.DispatchRefund(request, models.NewMoneyFromDecimal(decimal.NewFromInt(125)), 100, request.Reason)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if !strings.HasPrefix(refund.RefundNo, "RF-") {
		t.Fatalf("refund no want RF prefix got %s", refund.RefundNo)
	}
	if refund.Status != constants.RefundStatusProcessing {
		t.Fatalf("status want processing got %s", refund.Status)
	}
	if refund.ProcessedAt != nil {
		t.Fatalf("processed_at must stay empty until confirmation")
	}
	if refund.ReturnRequestID == nil || *refund.ReturnRequestID != request.ID {
		t.Fatalf("refund must link back to the return request")
	}
	if refund.SubOrderID != request.SubOrderID || refund.BuyerID != request.BuyerID {
		t.Fatalf("refund must inherit sub-order and buyer")
	}
}

func TestConfirmRefund(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	refund, err := env.refundService.DispatchRefund(request, models.NewMoneyFromDecimal(decimal.NewFromInt(125)), 100, request.Reason)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	confirmed, err := env.refundService.ConfirmRefund(refund.ID, now)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != constants.RefundStatusCompleted {
		t.Fatalf("status want completed got %s", confirmed.Status)
	}
	if confirmed.ProcessedAt == nil {
		t.Fatalf("processed_at should be stamped on confirmation")
	}

	// 重复确认幂等
	again, err := env.refundService.ConfirmRefund(refund.ID, now)
	if err != nil {
		t.Fatalf("repeat confirm failed: %v", err)
	}
	if again.Status != constants.RefundStatusCompleted {
		t.Fatalf("repeat confirm status want completed got %s", again.Status)
	}

	if _, err := env.refundService.ConfirmRefund(9999, now); !errors.Is(err, ErrRefundNotFound) {
		t.Fatalf("err want ErrRefundNotFound got %v", err)
	}
}

func TestFindByReturnPicksLatest(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	if _, err := env.refundService.DispatchRefund(request, models.NewMoneyFromDecimal(decimal.NewFromInt(50)), 100, "first"); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	second, err := env.refundService.DispatchRefund(request, models.NewMoneyFromDecimal(decimal.NewFromInt(75)), 100, "second")
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	latest, err := env.refundService.FindByReturn(request.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Fatalf("want latest refund %d got %+v", second.ID, latest)
	}
}

func TestRefundListFilters(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	first := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	second := createDeliveredSubOrder(t, env, 2, 10, now.Add(-24*time.Hour))
	requestA := createFullReturn(t, env, first, 1, now)
	requestB := createFullReturn(t, env, second, 2, now)

	if _, err := env.refundService.DispatchRefund(requestA, models.NewMoneyFromDecimal(decimal.NewFromInt(100)), 100, "a"); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if _, err := env.refundService.DispatchRefund(requestB, models.NewMoneyFromDecimal(decimal.NewFromInt(200)), 100, "b"); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	refunds, total, err := env.refundService.List(repository.RefundListFilter{BuyerID: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(refunds) != 1 {
		t.Fatalf("buyer filter want 1 got total=%d len=%d", total, len(refunds))
	}
	if refunds[0].BuyerID != 2 {
		t.Fatalf("buyer want 2 got %d", refunds[0].BuyerID)
	}

	_, total, err = env.refundService.List(repository.RefundListFilter{Status: constants.RefundStatusProcessing})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("status filter want 2 got %d", total)
	}
}
