package dao

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
)

type NotificationDAO struct {
	DB *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{DB: db}
}

func (dao *NotificationDAO) CreateNotification(ctx context.Context, n *models.Notification) error {
	return dao.DB.WithContext(ctx).Create(n).Error
}

func (dao *NotificationDAO) CreateNotifications(ctx context.Context, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return dao.DB.WithContext(ctx).Create(&ns).Error
}

func (dao *NotificationDAO) GetNotificationByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	err := dao.DB.WithContext(ctx).Where("id = ?", id).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetNotificationsByUser returns the 50 most recent notifications.
func (dao *NotificationDAO) GetNotificationsByUser(ctx context.Context, userID int) ([]models.Notification, error) {
	var ns []models.Notification
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&ns).Error
	if err != nil {
		return nil, err
	}
	return ns, nil
}

func (dao *NotificationDAO) UnreadCount(ctx context.Context, userID int) (int64, error) {
	var count int64
	err := dao.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (dao *NotificationDAO) MarkRead(ctx context.Context, id uuid.UUID) error {
	return dao.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (dao *NotificationDAO) MarkAllRead(ctx context.Context, userID int) error {
	return dao.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
