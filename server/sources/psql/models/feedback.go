package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FeedbackCategoryTopicQuality    = "Topic Response Quality"
	FeedbackCategoryResponseQuality = "Response Quality"
	FeedbackCategoryOther           = "Other"
)

// Feedback denormalizes the submitting user's email and the chat title so
// admin views survive chat deletion.
type Feedback struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         int       `json:"user_id" gorm:"not null;index"`
	User           User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	UserEmail      string    `json:"user_email" gorm:"type:varchar(255);not null"`
	ChatID         uuid.UUID `json:"chat_id" gorm:"type:uuid;not null"`
	ChatName       string    `json:"chat_name" gorm:"type:varchar(255);not null"`
	Category       string    `json:"category" gorm:"type:varchar(50);default:'Response Quality'"`
	FeedbackText   string    `json:"feedback_text" gorm:"type:text;not null"`
	Stars          int       `json:"stars" gorm:"not null"`
	SentimentLabel string    `json:"sentiment_label" gorm:"type:varchar(20);not null"`
	SentimentScore float64   `json:"sentiment_score" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime;index:,sort:desc"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
