package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/provider"
	"github.com/vendora-market/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskReturnOpenedNotify, c.handleReturnOpenedNotify)
	mux.HandleFunc(queue.TaskReturnStatusNotify, c.handleReturnStatusNotify)
}

// handleReturnOpenedNotify 向店铺联系邮箱投递开单通知。
// 邮件网关未接入前先落结构化日志，保留完整收件上下文。
func (c *Consumer) handleReturnOpenedNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.ReturnOpenedNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_return_opened_unmarshal_failed", "error", err)
		return err
	}
	if payload.ReturnRequestID == 0 {
		logger.Debugw("worker_return_opened_skip_invalid_payload", "return_request_id", payload.ReturnRequestID)
		return nil
	}
	request, err := c.ReturnRepo.GetByID(payload.ReturnRequestID)
	if err != nil {
		logger.Warnw("worker_return_opened_fetch_failed", "return_request_id", payload.ReturnRequestID, "error", err)
		return err
	}
	if request == nil {
		logger.Debugw("worker_return_opened_skip_not_found", "return_request_id", payload.ReturnRequestID)
		return nil
	}
	store, err := c.StoreRepo.GetByID(request.StoreID)
	if err != nil {
		logger.Warnw("worker_return_opened_fetch_store_failed", "store_id", request.StoreID, "error", err)
		return err
	}
	receiverEmail := ""
	if store != nil {
		receiverEmail = strings.TrimSpace(store.ContactEmail)
	}
	if receiverEmail == "" {
		logger.Debugw("worker_return_opened_skip_empty_receiver", "return_no", request.ReturnNo, "store_id", request.StoreID)
		return nil
	}
	logger.Infow("worker_return_opened_notify",
		"return_no", request.ReturnNo,
		"type", request.Type,
		"store_id", request.StoreID,
		"receiver_email", receiverEmail,
		"first_response_due_at", request.FirstResponseDueAt,
	)
	return nil
}

// handleReturnStatusNotify 向买家投递状态变更通知
func (c *Consumer) handleReturnStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.ReturnStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_return_status_unmarshal_failed", "error", err)
		return err
	}
	if payload.ReturnRequestID == 0 {
		return nil
	}
	request, err := c.ReturnRepo.GetByID(payload.ReturnRequestID)
	if err != nil {
		logger.Warnw("worker_return_status_fetch_failed", "return_request_id", payload.ReturnRequestID, "error", err)
		return err
	}
	if request == nil {
		return nil
	}
	buyer, err := c.UserRepo.GetByID(request.BuyerID)
	if err != nil {
		logger.Warnw("worker_return_status_fetch_buyer_failed", "buyer_id", request.BuyerID, "error", err)
		return err
	}
	receiverEmail := ""
	if buyer != nil {
		receiverEmail = strings.TrimSpace(buyer.Email)
	}
	if receiverEmail == "" {
		logger.Debugw("worker_return_status_skip_empty_receiver", "return_no", request.ReturnNo)
		return nil
	}
	logger.Infow("worker_return_status_notify",
		"return_no", request.ReturnNo,
		"previous_status", payload.PreviousStatus,
		"new_status", payload.NewStatus,
		"receiver_email", receiverEmail,
	)
	return nil
}
