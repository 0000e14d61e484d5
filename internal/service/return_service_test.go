package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vendora-market/internal/constants"

	"github.com/shopspring/decimal"
)

func TestCreateReturnRequestFullReturn(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))

	request := createFullReturn(t, env, subOrder, 1, now)
	if request.Status != constants.ReturnStatusRequested {
		t.Fatalf("status want requested got %s", request.Status)
	}
	if !strings.HasPrefix(request.ReturnNo, "RTN-") {
		t.Fatalf("return no want RTN prefix got %s", request.ReturnNo)
	}
	if !request.RefundAmount.Decimal.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("refund amount want 250 got %s", request.RefundAmount.Decimal)
	}
	if request.FirstResponseDueAt == nil || request.ResolutionDueAt == nil {
		t.Fatalf("sla deadlines should be stamped")
	}
	if !request.FirstResponseDueAt.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("first response due want %v got %v", now.Add(24*time.Hour), request.FirstResponseDueAt)
	}
	if len(request.Items) != 0 {
		t.Fatalf("full return should carry no item rows, got %d", len(request.Items))
	}
}

func TestCreateReturnRequestPartialReturn(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))

	request, err := env.returnService.CreateReturnRequest(CreateReturnInput{
		SubOrderID:   subOrder.ID,
		BuyerID:      1,
		Type:         constants.ReturnTypeReturn,
		Reason:       constants.ReturnReasonWrongItem,
		IsFullReturn: false,
		Items: []CreateReturnItemInput{
			{SubOrderItemID: subOrder.Items[0].ID, Quantity: 1},
		},
	}, now)
	if err != nil {
		t.Fatalf("create partial return failed: %v", err)
	}
	// 单价 100 × 1 件
	if !request.RefundAmount.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("refund amount want 100 got %s", request.RefundAmount.Decimal)
	}
	if len(request.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(request.Items))
	}
	if !request.Items[0].RefundAmount.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("item refund amount want 100 got %s", request.Items[0].RefundAmount.Decimal)
	}
}

func TestCreateReturnRequestPartialValidation(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))

	cases := []struct {
		name  string
		items []CreateReturnItemInput
		want  error
	}{
		{name: "empty items", items: nil, want: ErrReturnItemsRequired},
		{name: "unknown item", items: []CreateReturnItemInput{{SubOrderItemID: 9999, Quantity: 1}}, want: ErrReturnItemInvalid},
		{name: "zero quantity", items: []CreateReturnItemInput{{SubOrderItemID: subOrder.Items[0].ID, Quantity: 0}}, want: ErrReturnItemInvalid},
		{name: "over quantity", items: []CreateReturnItemInput{{SubOrderItemID: subOrder.Items[0].ID, Quantity: 3}}, want: ErrReturnItemInvalid},
		{name: "duplicate item", items: []CreateReturnItemInput{
			{SubOrderItemID: subOrder.Items[0].ID, Quantity: 1},
			{SubOrderItemID: subOrder.Items[0].ID, Quantity: 1},
		}, want: ErrReturnItemInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.returnService.CreateReturnRequest(CreateReturnInput{
				SubOrderID:   subOrder.ID,
				BuyerID:      1,
				Type:         constants.ReturnTypeReturn,
				Reason:       constants.ReturnReasonDefective,
				IsFullReturn: false,
				Items:        tc.items,
			}, now)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err want %v got %v", tc.want, err)
			}
		})
	}
}

func TestCreateReturnRequestComplaintPrefix(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))

	request, err := env.returnService.CreateReturnRequest(CreateReturnInput{
		SubOrderID:   subOrder.ID,
		BuyerID:      1,
		Type:         constants.ReturnTypeComplaint,
		Reason:       constants.ReturnReasonNotAsDescribed,
		IsFullReturn: true,
	}, now)
	if err != nil {
		t.Fatalf("create complaint failed: %v", err)
	}
	if !strings.HasPrefix(request.ReturnNo, "CMP-") {
		t.Fatalf("return no want CMP prefix got %s", request.ReturnNo)
	}
}

func TestCreateReturnRequestBlockedWhileActive(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	createFullReturn(t, env, subOrder, 1, now)

	_, err := env.returnService.CreateReturnRequest(CreateReturnInput{
		SubOrderID:   subOrder.ID,
		BuyerID:      1,
		Type:         constants.ReturnTypeReturn,
		Reason:       constants.ReturnReasonDefective,
		IsFullReturn: true,
	}, now)
	if !errors.Is(err, ErrReturnAlreadyActive) {
		t.Fatalf("err want ErrReturnAlreadyActive got %v", err)
	}
}

func TestCreateReturnRequestBlockedAfterCompletion(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	if _, err := env.returnService.SellerApprove(request.ID, 10, "", now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := env.returnService.SellerResolve(request.ID, 10, 100, ResolveInput{
		ResolutionType: constants.ResolutionTypeFullRefund,
		Notes:          "全额退款",
	}, now); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	completed, err := env.returnService.ConfirmCompletion(request.ID, now)
	if err != nil {
		t.Fatalf("confirm completion failed: %v", err)
	}
	if completed.Status != constants.ReturnStatusCompleted {
		t.Fatalf("status want completed got %s", completed.Status)
	}

	// 完结的工单仍然占位，只有被驳回才释放
	_, err = env.returnService.CreateReturnRequest(CreateReturnInput{
		SubOrderID:   subOrder.ID,
		BuyerID:      1,
		Type:         constants.ReturnTypeReturn,
		Reason:       constants.ReturnReasonOther,
		IsFullReturn: true,
	}, now)
	if !errors.Is(err, ErrReturnAlreadyActive) {
		t.Fatalf("err want ErrReturnAlreadyActive got %v", err)
	}
}

func TestSellerApproveStampsFirstResponse(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	approved, err := env.returnService.SellerApprove(request.ID, 10, "已安排处理", now)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != constants.ReturnStatusApproved {
		t.Fatalf("status want approved got %s", approved.Status)
	}
	if approved.SellerFirstResponseAt == nil {
		t.Fatalf("first response should be stamped on approve")
	}
	if approved.SellerNotes != "已安排处理" {
		t.Fatalf("seller notes want recorded got %q", approved.SellerNotes)
	}

	// 已受理的工单不能再次受理
	if _, err := env.returnService.SellerApprove(request.ID, 10, "", now); !errors.Is(err, ErrReturnStatusInvalid) {
		t.Fatalf("err want ErrReturnStatusInvalid got %v", err)
	}
}

func TestSellerRejectRequiresNotes(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	if _, err := env.returnService.SellerReject(request.ID, 10, "  ", now); !errors.Is(err, ErrNotesRequired) {
		t.Fatalf("err want ErrNotesRequired got %v", err)
	}

	rejected, err := env.returnService.SellerReject(request.ID, 10, "照片无法佐证", now)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != constants.ReturnStatusRejected {
		t.Fatalf("status want rejected got %s", rejected.Status)
	}
	if !rejected.IsTerminal() {
		t.Fatalf("rejected should be terminal")
	}
}

func TestSellerActionsRequireOwnership(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	if _, err := env.returnService.SellerApprove(request.ID, 99, "", now); !errors.Is(err, ErrStoreNotOwner) {
		t.Fatalf("err want ErrStoreNotOwner got %v", err)
	}
}

func TestSellerResolveFullRefundStaysResolved(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)
	if _, err := env.returnService.SellerApprove(request.ID, 10, "", now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	resolved, err := env.returnService.SellerResolve(request.ID, 10, 100, ResolveInput{
		ResolutionType: constants.ResolutionTypeFullRefund,
		Notes:          "同意全额退款",
	}, now)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	// 退款发起后工单停在 resolved，等待到账确认
	if resolved.Status != constants.ReturnStatusResolved {
		t.Fatalf("status want resolved got %s", resolved.Status)
	}
	if resolved.ResolutionAmount == nil || !resolved.ResolutionAmount.Decimal.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("resolution amount want 250 got %v", resolved.ResolutionAmount)
	}

	refund, err := env.refundService.FindByReturn(request.ID)
	if err != nil {
		t.Fatalf("find refund failed: %v", err)
	}
	if refund == nil {
		t.Fatalf("refund should be created")
	}
	if refund.Status != constants.RefundStatusProcessing {
		t.Fatalf("refund status want processing got %s", refund.Status)
	}
	if refund.ProcessedAt != nil {
		t.Fatalf("refund processed_at must stay empty before confirmation")
	}
}

func TestConfirmCompletionAfterRefund(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)
	if _, err := env.returnService.SellerApprove(request.ID, 10, "", now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// 未裁定的工单不可直接完结
	if _, err := env.returnService.ConfirmCompletion(request.ID, now); !errors.Is(err, ErrReturnStatusInvalid) {
		t.Fatalf("err want ErrReturnStatusInvalid got %v", err)
	}

	if _, err := env.returnService.SellerResolve(request.ID, 10, 100, ResolveInput{
		ResolutionType: constants.ResolutionTypeFullRefund,
		Notes:          "同意全额退款",
	}, now); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	completed, err := env.returnService.ConfirmCompletion(request.ID, now)
	if err != nil {
		t.Fatalf("confirm completion failed: %v", err)
	}
	if completed.Status != constants.ReturnStatusCompleted {
		t.Fatalf("status want completed got %s", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("completed_at should be stamped")
	}
	refund, err := env.refundService.FindByReturn(request.ID)
	if err != nil {
		t.Fatalf("find refund failed: %v", err)
	}
	if refund == nil || refund.Status != constants.RefundStatusCompleted {
		t.Fatalf("refund should be confirmed completed, got %+v", refund)
	}
	if refund.ProcessedAt == nil {
		t.Fatalf("refund processed_at should be stamped on confirmation")
	}
}

func TestSellerResolveNoRefundResolvesWithoutRefund(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)
	if _, err := env.returnService.SellerApprove(request.ID, 10, "", now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	resolved, err := env.returnService.SellerResolve(request.ID, 10, 100, ResolveInput{
		ResolutionType: constants.ResolutionTypeReplacement,
		Notes:          "补发新品",
	}, now)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Status != constants.ReturnStatusResolved {
		t.Fatalf("status want resolved got %s", resolved.Status)
	}
	refund, err := env.refundService.FindByReturn(request.ID)
	if err != nil {
		t.Fatalf("find refund failed: %v", err)
	}
	if refund != nil {
		t.Fatalf("replacement should not create refund")
	}

	// 无退款结论直接完结
	completed, err := env.returnService.ConfirmCompletion(request.ID, now)
	if err != nil {
		t.Fatalf("confirm completion failed: %v", err)
	}
	if completed.Status != constants.ReturnStatusCompleted {
		t.Fatalf("status want completed got %s", completed.Status)
	}
}

func TestSellerResolveValidation(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)
	if _, err := env.returnService.SellerApprove(request.ID, 10, "", now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	over := decimal.NewFromInt(300)
	zero := decimal.Zero
	half := decimal.NewFromInt(125)
	cases := []struct {
		name  string
		input ResolveInput
		want  error
	}{
		{name: "missing notes", input: ResolveInput{ResolutionType: constants.ResolutionTypeFullRefund}, want: ErrNotesRequired},
		{name: "unknown type", input: ResolveInput{ResolutionType: "store_credit", Notes: "x"}, want: ErrResolutionTypeInvalid},
		{name: "partial without amount", input: ResolveInput{ResolutionType: constants.ResolutionTypePartialRefund, Notes: "x"}, want: ErrResolutionAmountInvalid},
		{name: "partial zero amount", input: ResolveInput{ResolutionType: constants.ResolutionTypePartialRefund, Amount: &zero, Notes: "x"}, want: ErrResolutionAmountInvalid},
		{name: "partial over amount", input: ResolveInput{ResolutionType: constants.ResolutionTypePartialRefund, Amount: &over, Notes: "x"}, want: ErrResolutionAmountInvalid},
		{name: "no refund with amount", input: ResolveInput{ResolutionType: constants.ResolutionTypeNoRefund, Amount: &half, Notes: "x"}, want: ErrResolutionAmountInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.returnService.SellerResolve(request.ID, 10, 100, tc.input, now)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err want %v got %v", tc.want, err)
			}
		})
	}

	// 合法的部分退款
	resolved, err := env.returnService.SellerResolve(request.ID, 10, 100, ResolveInput{
		ResolutionType: constants.ResolutionTypePartialRefund,
		Amount:         &half,
		Notes:          "部分退款",
	}, now)
	if err != nil {
		t.Fatalf("partial resolve failed: %v", err)
	}
	if resolved.ResolutionAmount == nil || !resolved.ResolutionAmount.Decimal.Equal(half) {
		t.Fatalf("resolution amount want 125 got %v", resolved.ResolutionAmount)
	}
}

func TestSellerResolveRefundDispatchFailure(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)
	if _, err := env.returnService.SellerApprove(request.ID, 10, "", now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	broken := NewReturnService(
		env.returnRepo, env.subOrderRepo, env.actionRepo,
		env.eligibility, env.slaService, failingRefunds{}, nil,
	)
	resolved, err := broken.SellerResolve(request.ID, 10, 100, ResolveInput{
		ResolutionType: constants.ResolutionTypeFullRefund,
		Notes:          "同意退款",
	}, now)
	if !errors.Is(err, ErrRefundDispatchFailed) {
		t.Fatalf("err want ErrRefundDispatchFailed got %v", err)
	}
	if resolved == nil {
		t.Fatalf("resolution should survive refund failure")
	}
	if resolved.Status != constants.ReturnStatusResolved {
		t.Fatalf("status want resolved got %s", resolved.Status)
	}
}

func TestEscalatePreconditions(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	buyerID := uint(1)
	subOrder := createDeliveredSubOrder(t, env, buyerID, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, buyerID, now)

	escalated, err := env.returnService.Escalate(request.ID, nil, constants.EscalationReasonBuyerRequest, "商家长时间无响应", now)
	if err != nil {
		t.Fatalf("escalate failed: %v", err)
	}
	if escalated.Status != constants.ReturnStatusUnderAdminReview {
		t.Fatalf("status want under_admin_review got %s", escalated.Status)
	}
	if escalated.EscalationReason != constants.EscalationReasonBuyerRequest {
		t.Fatalf("escalation reason want buyer_request got %s", escalated.EscalationReason)
	}

	// 仲裁中不可重复升级
	if _, err := env.returnService.Escalate(request.ID, nil, constants.EscalationReasonBuyerRequest, "", now); !errors.Is(err, ErrEscalateStatusInvalid) {
		t.Fatalf("err want ErrEscalateStatusInvalid got %v", err)
	}

	actions, err := env.returnService.ListAdminActions(request.ID)
	if err != nil {
		t.Fatalf("list actions failed: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("actions want 1 got %d", len(actions))
	}
	if actions[0].ActionType != constants.AdminActionEscalated {
		t.Fatalf("action type want escalated got %s", actions[0].ActionType)
	}
	if actions[0].Notes != "商家长时间无响应" {
		t.Fatalf("action notes want escalation notes got %q", actions[0].Notes)
	}
}

func TestEscalateWithoutNotesSkipsLedger(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	if _, err := env.returnService.Escalate(request.ID, nil, constants.EscalationReasonBuyerRequest, "  ", now); err != nil {
		t.Fatalf("escalate failed: %v", err)
	}
	actions, err := env.returnService.ListAdminActions(request.ID)
	if err != nil {
		t.Fatalf("list actions failed: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("no notes means no ledger row, got %d", len(actions))
	}
}

func TestEscalateFromResolved(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)
	if _, err := env.returnService.SellerApprove(request.ID, 10, "", now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := env.returnService.SellerResolve(request.ID, 10, 100, ResolveInput{
		ResolutionType: constants.ResolutionTypeReplacement,
		Notes:          "补发新品",
	}, now); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// 商家已有结论的工单仍可升级，供平台复核改判
	escalated, err := env.returnService.Escalate(request.ID, nil, constants.EscalationReasonBuyerRequest, "", now)
	if err != nil {
		t.Fatalf("escalate from resolved failed: %v", err)
	}
	if escalated.Status != constants.ReturnStatusUnderAdminReview {
		t.Fatalf("status want under_admin_review got %s", escalated.Status)
	}
	if escalated.ResolutionType != constants.ResolutionTypeReplacement {
		t.Fatalf("existing resolution should be preserved, got %q", escalated.ResolutionType)
	}
}

func TestCanChangeResolution(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	approved, err := env.returnService.SellerApprove(request.ID, 10, "", now)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	ok, err := env.returnService.CanChangeResolution(approved)
	if err != nil || !ok {
		t.Fatalf("approved case should allow resolution change, ok=%v err=%v", ok, err)
	}

	resolved, err := env.returnService.SellerResolve(request.ID, 10, 100, ResolveInput{
		ResolutionType: constants.ResolutionTypeFullRefund,
		Notes:          "退款",
	}, now)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	// 退款尚未确认到账，结论仍可变更
	ok, err = env.returnService.CanChangeResolution(resolved)
	if err != nil || !ok {
		t.Fatalf("resolved case with processing refund should allow change, ok=%v err=%v", ok, err)
	}

	completed, err := env.returnService.ConfirmCompletion(request.ID, now)
	if err != nil {
		t.Fatalf("confirm completion failed: %v", err)
	}
	ok, err = env.returnService.CanChangeResolution(completed)
	if err != nil {
		t.Fatalf("can change check failed: %v", err)
	}
	if ok {
		t.Fatalf("completed case must lock resolution")
	}
}

func TestResolveLockedAfterRefundConfirmed(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)
	if _, err := env.returnService.SellerApprove(request.ID, 10, "", now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	half := decimal.NewFromInt(125)
	if _, err := env.returnService.SellerResolve(request.ID, 10, 100, ResolveInput{
		ResolutionType: constants.ResolutionTypePartialRefund,
		Amount:         &half,
		Notes:          "部分退款",
	}, now); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	refund, err := env.refundService.FindByReturn(request.ID)
	if err != nil || refund == nil {
		t.Fatalf("refund should exist, err=%v", err)
	}
	if _, err := env.refundService.ConfirmRefund(refund.ID, now); err != nil {
		t.Fatalf("confirm refund failed: %v", err)
	}

	// 退款已确认到账后结论锁定
	_, err = env.returnService.SellerResolve(request.ID, 10, 100, ResolveInput{
		ResolutionType: constants.ResolutionTypeFullRefund,
		Notes:          "改判全额",
	}, now)
	if !errors.Is(err, ErrResolutionLocked) {
		t.Fatalf("err want ErrResolutionLocked got %v", err)
	}
}

func TestGetForBuyerHidesOtherBuyers(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	subOrder := createDeliveredSubOrder(t, env, 1, 10, now.Add(-24*time.Hour))
	request := createFullReturn(t, env, subOrder, 1, now)

	if _, err := env.returnService.GetForBuyer(request.ID, 2); !errors.Is(err, ErrReturnNotFound) {
		t.Fatalf("err want ErrReturnNotFound got %v", err)
	}
}
