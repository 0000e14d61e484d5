package queue

import (
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/models"
)

// Notifier 基于队列客户端的售后事件通知实现。
// 投递失败只记日志，不阻塞售后主流程。
type Notifier struct {
	client *Client
}

// NewNotifier 创建通知器
func NewNotifier(client *Client) *Notifier {
	return &Notifier{client: client}
}

// NotifyReturnOpened 投递售后开单通知
func (n *Notifier) NotifyReturnOpened(request *models.ReturnRequest) {
	if n == nil || request == nil {
		return
	}
	err := n.client.EnqueueReturnOpenedNotify(ReturnOpenedNotifyPayload{
		ReturnRequestID: request.ID,
		ReturnNo:        request.ReturnNo,
		StoreID:         request.StoreID,
	})
	if err != nil {
		logger.Warnw("售后开单通知投递失败", "return_no", request.ReturnNo, "error", err)
	}
}

// NotifyReturnStatusChanged 投递售后状态变更通知
func (n *Notifier) NotifyReturnStatusChanged(request *models.ReturnRequest, previousStatus string) {
	if n == nil || request == nil {
		return
	}
	err := n.client.EnqueueReturnStatusNotify(ReturnStatusNotifyPayload{
		ReturnRequestID: request.ID,
		ReturnNo:        request.ReturnNo,
		PreviousStatus:  previousStatus,
		NewStatus:       request.Status,
	})
	if err != nil {
		logger.Warnw("售后状态通知投递失败", "return_no", request.ReturnNo, "error", err)
	}
}
