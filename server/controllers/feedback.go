package controllers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teamcbatch1/conceptclarity/server/sources/psql/dao"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
	"github.com/teamcbatch1/conceptclarity/server/utils/types"
)

type FeedbackController struct {
	feedbackDAO     *dao.FeedbackDAO
	chatDAO         *dao.ChatDAO
	userDAO         *dao.UserDAO
	notificationDAO *dao.NotificationDAO
	analyzer        ChatSentiment
}

func NewFeedbackController(feedbackDAO *dao.FeedbackDAO, chatDAO *dao.ChatDAO, userDAO *dao.UserDAO, notificationDAO *dao.NotificationDAO, analyzer ChatSentiment) *FeedbackController {
	return &FeedbackController{
		feedbackDAO:     feedbackDAO,
		chatDAO:         chatDAO,
		userDAO:         userDAO,
		notificationDAO: notificationDAO,
		analyzer:        analyzer,
	}
}

func (c *FeedbackController) CreateFeedback(ctx context.Context, userID int, req types.CreateFeedbackRequest) (*models.Feedback, error) {
	if req.ChatID == "" || req.FeedbackText == "" || req.Stars == 0 {
		return nil, fmt.Errorf("%w: chatId, feedbackText, and stars are required", ErrBadRequest)
	}
	if req.Stars < 1 || req.Stars > 5 {
		return nil, fmt.Errorf("%w: Stars must be between 1 and 5", ErrBadRequest)
	}
	chatID, err := uuid.Parse(req.ChatID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid chatId", ErrBadRequest)
	}

	chat, err := c.chatDAO.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil || chat.UserID != userID {
		return nil, fmt.Errorf("%w: Chat not found or unauthorized", ErrForbidden)
	}

	user, err := c.userDAO.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}

	category := req.Category
	if category == "" {
		category = models.FeedbackCategoryResponseQuality
	}

	// Feedback sentiment is always computed, unlike chat messages.
	result := c.analyzer.Analyze(ctx, req.FeedbackText)

	feedback := models.Feedback{
		UserID:         userID,
		UserEmail:      user.Email,
		ChatID:         chatID,
		ChatName:       chat.Title,
		Category:       category,
		FeedbackText:   req.FeedbackText,
		Stars:          req.Stars,
		SentimentLabel: result.Label,
		SentimentScore: result.Score,
	}
	if err := c.feedbackDAO.CreateFeedback(ctx, &feedback); err != nil {
		return nil, err
	}

	// Admin fan-out is best effort; it never fails the feedback itself.
	if err := c.notifyAdmins(ctx, user.Email, &feedback, chat.Title); err != nil {
		logging.ErrorLogger.Error("feedback admin notification failed", zap.Error(err))
	}

	return &feedback, nil
}

func (c *FeedbackController) notifyAdmins(ctx context.Context, userEmail string, feedback *models.Feedback, chatTitle string) error {
	admins, err := c.userDAO.GetAdmins(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		return nil
	}
	notifications := make([]models.Notification, 0, len(admins))
	for _, admin := range admins {
		fbID := feedback.ID
		notifications = append(notifications, models.Notification{
			UserID:     admin.ID,
			Type:       models.NotificationFeedbackSubmitted,
			Title:      "New Feedback Received",
			Message:    fmt.Sprintf("%s submitted feedback with %d stars for %q", userEmail, feedback.Stars, chatTitle),
			FeedbackID: &fbID,
		})
	}
	return c.notificationDAO.CreateNotifications(ctx, notifications)
}

func (c *FeedbackController) GetUserFeedbacks(ctx context.Context, userID int) ([]models.Feedback, error) {
	return c.feedbackDAO.GetFeedbacksByUser(ctx, userID)
}

func (c *FeedbackController) GetFeedbackByID(ctx context.Context, userID int, role string, id uuid.UUID) (*models.Feedback, error) {
	feedback, err := c.feedbackDAO.GetFeedbackByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, fmt.Errorf("%w: Feedback not found", ErrNotFound)
	}
	if feedback.UserID != userID && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: Unauthorized", ErrForbidden)
	}
	return feedback, nil
}

func (c *FeedbackController) GetAllFeedbacks(ctx context.Context) ([]models.Feedback, error) {
	return c.feedbackDAO.GetAllFeedbacks(ctx)
}

func (c *FeedbackController) GetStats(ctx context.Context) (*dao.FeedbackStats, error) {
	return c.feedbackDAO.GetStats(ctx)
}

func (c *FeedbackController) DeleteFeedback(ctx context.Context, userID int, role string, id uuid.UUID) error {
	feedback, err := c.feedbackDAO.GetFeedbackByID(ctx, id)
	if err != nil {
		return err
	}
	if feedback == nil {
		return fmt.Errorf("%w: Feedback not found", ErrNotFound)
	}
	if feedback.UserID != userID && role != models.RoleAdmin {
		return fmt.Errorf("%w: Unauthorized", ErrForbidden)
	}
	return c.feedbackDAO.DeleteFeedback(ctx, id)
}
