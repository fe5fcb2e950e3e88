package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTicketCreated     = "ticket_created"
	NotificationTicketReplied     = "ticket_replied"
	NotificationTicketResolved    = "ticket_resolved"
	NotificationFeatureUpdate     = "feature_update"
	NotificationFeedbackSubmitted = "feedback_submitted"
)

type Notification struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     int        `json:"user_id" gorm:"not null;index"`
	User       User       `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Type       string     `json:"type" gorm:"type:varchar(50);not null"`
	Title      string     `json:"title" gorm:"type:varchar(255);not null"`
	Message    string     `json:"message" gorm:"type:text;not null"`
	TicketID   *uuid.UUID `json:"ticket_id,omitempty" gorm:"type:uuid"`
	FeedbackID *uuid.UUID `json:"feedback_id,omitempty" gorm:"type:uuid"`
	IsRead     bool       `json:"is_read" gorm:"not null;default:false"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime;index:,sort:desc"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
