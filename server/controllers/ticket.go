package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teamcbatch1/conceptclarity/server/sources/psql/dao"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
	"github.com/teamcbatch1/conceptclarity/server/utils/types"
)

type TicketController struct {
	ticketDAO       *dao.TicketDAO
	userDAO         *dao.UserDAO
	notificationDAO *dao.NotificationDAO
}

func NewTicketController(ticketDAO *dao.TicketDAO, userDAO *dao.UserDAO, notificationDAO *dao.NotificationDAO) *TicketController {
	return &TicketController{
		ticketDAO:       ticketDAO,
		userDAO:         userDAO,
		notificationDAO: notificationDAO,
	}
}

func (c *TicketController) CreateTicket(ctx context.Context, userID int, req types.CreateTicketRequest) (*models.Ticket, error) {
	if req.Subject == "" || req.Category == "" || req.Description == "" {
		return nil, fmt.Errorf("%w: subject, category and description required", ErrBadRequest)
	}

	ticket := models.Ticket{
		UserID:      userID,
		Subject:     req.Subject,
		Category:    req.Category,
		Description: req.Description,
		Status:      models.TicketStatusPending,
		Priority:    models.TicketPriorityMedium,
	}
	if err := c.ticketDAO.CreateTicket(ctx, &ticket); err != nil {
		return nil, err
	}

	if err := c.notifyAdmins(ctx, &ticket); err != nil {
		logging.ErrorLogger.Error("ticket admin notification failed", zap.Error(err))
	}

	return &ticket, nil
}

func (c *TicketController) notifyAdmins(ctx context.Context, ticket *models.Ticket) error {
	admins, err := c.userDAO.GetAdmins(ctx)
	if err != nil {
		return err
	}
	notifications := make([]models.Notification, 0, len(admins))
	for _, admin := range admins {
		ticketID := ticket.ID
		notifications = append(notifications, models.Notification{
			UserID:   admin.ID,
			Type:     models.NotificationTicketCreated,
			Title:    "New Support Ticket",
			Message:  "New ticket: " + ticket.Subject,
			TicketID: &ticketID,
		})
	}
	return c.notificationDAO.CreateNotifications(ctx, notifications)
}

func (c *TicketController) GetUserTickets(ctx context.Context, userID int) ([]models.Ticket, error) {
	return c.ticketDAO.GetTicketsByUser(ctx, userID)
}

func (c *TicketController) GetAllTickets(ctx context.Context) ([]models.Ticket, error) {
	return c.ticketDAO.GetAllTickets(ctx)
}

func (c *TicketController) GetTicketByID(ctx context.Context, userID int, role string, id uuid.UUID) (*models.Ticket, error) {
	ticket, err := c.ticketDAO.GetTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: Ticket not found", ErrNotFound)
	}
	if role != models.RoleAdmin && ticket.UserID != userID {
		return nil, fmt.Errorf("%w: Unauthorized", ErrForbidden)
	}
	return ticket, nil
}

// UpdateTicket applies an admin status change and/or reply, then notifies
// the ticket's owner.
func (c *TicketController) UpdateTicket(ctx context.Context, id uuid.UUID, req types.UpdateTicketRequest) (*models.Ticket, error) {
	ticket, err := c.ticketDAO.GetTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: Ticket not found", ErrNotFound)
	}

	if req.Status != "" {
		ticket.Status = req.Status
	}
	if req.AdminReply != "" {
		ticket.AdminReply = req.AdminReply
		now := time.Now()
		ticket.RepliedAt = &now
	}
	if err := c.ticketDAO.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	notificationType := models.NotificationTicketReplied
	title := "Admin Reply"
	message := "Admin replied to your ticket: " + ticket.Subject
	if req.Status == models.TicketStatusResolved {
		notificationType = models.NotificationTicketResolved
		title = "Ticket Resolved"
		message = fmt.Sprintf("Your ticket %q has been resolved", ticket.Subject)
	}
	ticketID := ticket.ID
	err = c.notificationDAO.CreateNotification(ctx, &models.Notification{
		UserID:   ticket.UserID,
		Type:     notificationType,
		Title:    title,
		Message:  message,
		TicketID: &ticketID,
	})
	if err != nil {
		logging.ErrorLogger.Error("ticket user notification failed", zap.Error(err))
	}

	return ticket, nil
}

func (c *TicketController) GetStats(ctx context.Context) (*dao.TicketStats, error) {
	return c.ticketDAO.GetStats(ctx)
}
