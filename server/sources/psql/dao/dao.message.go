package dao

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
)

type MessageDAO struct {
	DB *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{DB: db}
}

func (dao *MessageDAO) SaveMessage(ctx context.Context, chatID uuid.UUID, sender, text, sentiment string) (*models.Message, error) {
	if sentiment == "" {
		sentiment = models.MessageSentimentNeutral
	}
	msg := models.Message{
		ChatID:    chatID,
		Sender:    sender,
		Message:   text,
		Sentiment: sentiment,
	}
	if err := dao.DB.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (dao *MessageDAO) GetMessagesByChat(ctx context.Context, chatID uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message
	err := dao.DB.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (dao *MessageDAO) CountByChat(ctx context.Context, chatID uuid.UUID) (int64, error) {
	var count int64
	err := dao.DB.WithContext(ctx).Model(&models.Message{}).
		Where("chat_id = ?", chatID).Count(&count).Error
	return count, err
}
