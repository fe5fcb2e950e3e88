package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"

	MessageSentimentNeutral = "neutral"
)

// Message is immutable once created; rows are only deleted through the chat
// cascade. Every bot message is the reply to the user message saved just
// before it in the same chat, paired by the send-message flow rather than by
// a referential column.
type Message struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ChatID    uuid.UUID `json:"chat_id" gorm:"type:uuid;not null;index"`
	Chat      Chat      `json:"-" gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE"`
	Sender    string    `json:"sender" gorm:"type:varchar(10);not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Sentiment string    `json:"sentiment" gorm:"type:varchar(20);not null;default:neutral"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
