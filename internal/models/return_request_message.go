package models

import (
	"time"
)

// ReturnRequestMessage 售后沟通消息表（只追加，不删除）
type ReturnRequestMessage struct {
	ID              uint       `gorm:"primarykey" json:"id"`                          // 主键
	ReturnRequestID uint       `gorm:"index;not null" json:"return_request_id"`       // 售后单ID
	SenderID        uint       `gorm:"index;not null" json:"sender_id"`               // 发送人用户ID
	Content         string     `gorm:"type:text;not null" json:"content"`             // 消息内容（上限 2000 字符）
	IsFromSeller    bool       `gorm:"not null;index" json:"is_from_seller"`          // 是否商家侧发送
	SentAt          time.Time  `gorm:"index;not null" json:"sent_at"`                 // 发送时间
	IsRead          bool       `gorm:"not null;default:false;index" json:"is_read"`   // 对方是否已读
	ReadAt          *time.Time `json:"read_at"`                                       // 已读时间
}

// TableName 指定表名
func (ReturnRequestMessage) TableName() string {
	return "return_request_messages"
}
