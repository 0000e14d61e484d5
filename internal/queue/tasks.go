package queue

import (
	"encoding/json"

	"github.com/vendora-market/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskReturnOpenedNotify 售后开单商家通知任务
	TaskReturnOpenedNotify = constants.TaskReturnOpenedNotify
	// TaskReturnStatusNotify 售后状态变更通知任务
	TaskReturnStatusNotify = constants.TaskReturnStatusNotify
)

// ReturnOpenedNotifyPayload 售后开单通知载荷
type ReturnOpenedNotifyPayload struct {
	ReturnRequestID uint   `json:"return_request_id"`
	ReturnNo        string `json:"return_no"`
	StoreID         uint   `json:"store_id"`
}

// NewReturnOpenedNotifyTask 构建售后开单通知任务
func NewReturnOpenedNotifyTask(payload ReturnOpenedNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReturnOpenedNotify, data), nil
}

// ReturnStatusNotifyPayload 售后状态变更通知载荷
type ReturnStatusNotifyPayload struct {
	ReturnRequestID uint   `json:"return_request_id"`
	ReturnNo        string `json:"return_no"`
	PreviousStatus  string `json:"previous_status"`
	NewStatus       string `json:"new_status"`
}

// NewReturnStatusNotifyTask 构建售后状态变更通知任务
func NewReturnStatusNotifyTask(payload ReturnStatusNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReturnStatusNotify, data), nil
}
