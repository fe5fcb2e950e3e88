package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TicketStatusPending  = "pending"
	TicketStatusActive   = "active"
	TicketStatusResolved = "resolved"

	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
)

type Ticket struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      int        `json:"user_id" gorm:"not null;index"`
	User        User       `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Subject     string     `json:"subject" gorm:"type:varchar(255);not null"`
	Category    string     `json:"category" gorm:"type:varchar(50);not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;default:pending"`
	Priority    string     `json:"priority" gorm:"type:varchar(20);not null;default:medium"`
	AdminReply  string     `json:"admin_reply" gorm:"type:text;default:''"`
	RepliedAt   *time.Time `json:"replied_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime;index:,sort:desc"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
