package controllers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/teamcbatch1/conceptclarity/server/sources/psql/dao"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
)

type NotificationController struct {
	notificationDAO *dao.NotificationDAO
}

func NewNotificationController(notificationDAO *dao.NotificationDAO) *NotificationController {
	return &NotificationController{notificationDAO: notificationDAO}
}

type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

func (c *NotificationController) GetNotifications(ctx context.Context, userID int) (*NotificationList, error) {
	notifications, err := c.notificationDAO.GetNotificationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := c.notificationDAO.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationList{Notifications: notifications, UnreadCount: unread}, nil
}

func (c *NotificationController) GetUnreadCount(ctx context.Context, userID int) (int64, error) {
	return c.notificationDAO.UnreadCount(ctx, userID)
}

func (c *NotificationController) MarkAsRead(ctx context.Context, userID int, id uuid.UUID) error {
	n, err := c.notificationDAO.GetNotificationByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return fmt.Errorf("%w: Notification not found", ErrNotFound)
	}
	if n.UserID != userID {
		return fmt.Errorf("%w: Unauthorized", ErrForbidden)
	}
	return c.notificationDAO.MarkRead(ctx, id)
}

func (c *NotificationController) MarkAllAsRead(ctx context.Context, userID int) error {
	return c.notificationDAO.MarkAllRead(ctx, userID)
}
