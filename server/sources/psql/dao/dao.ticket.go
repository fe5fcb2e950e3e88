package dao

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
)

type TicketDAO struct {
	DB *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{DB: db}
}

type TicketStats struct {
	Pending  int64 `json:"pending"`
	Active   int64 `json:"active"`
	Resolved int64 `json:"resolved"`
	Total    int64 `json:"total"`
}

func (dao *TicketDAO) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	return dao.DB.WithContext(ctx).Create(ticket).Error
}

func (dao *TicketDAO) GetTicketByID(ctx context.Context, id uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := dao.DB.WithContext(ctx).Where("id = ?", id).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (dao *TicketDAO) GetTicketsByUser(ctx context.Context, userID int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (dao *TicketDAO) GetAllTickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := dao.DB.WithContext(ctx).Order("created_at DESC").Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (dao *TicketDAO) UpdateTicket(ctx context.Context, ticket *models.Ticket) error {
	return dao.DB.WithContext(ctx).Save(ticket).Error
}

func (dao *TicketDAO) GetStats(ctx context.Context) (*TicketStats, error) {
	var stats TicketStats
	for status, dst := range map[string]*int64{
		models.TicketStatusPending:  &stats.Pending,
		models.TicketStatusActive:   &stats.Active,
		models.TicketStatusResolved: &stats.Resolved,
	} {
		err := dao.DB.WithContext(ctx).Model(&models.Ticket{}).
			Where("status = ?", status).Count(dst).Error
		if err != nil {
			return nil, err
		}
	}
	err := dao.DB.WithContext(ctx).Model(&models.Ticket{}).Count(&stats.Total).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
