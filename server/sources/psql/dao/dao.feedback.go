package dao

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
)

type FeedbackDAO struct {
	DB *gorm.DB
}

func NewFeedbackDAO(db *gorm.DB) *FeedbackDAO {
	return &FeedbackDAO{DB: db}
}

type FeedbackStats struct {
	TotalFeedbacks    int64   `json:"totalFeedbacks"`
	PositiveFeedbacks int64   `json:"positiveFeedbacks"`
	NeutralFeedbacks  int64   `json:"neutralFeedbacks"`
	NegativeFeedbacks int64   `json:"negativeFeedbacks"`
	AvgStars          float64 `json:"avgStars"`
}

func (dao *FeedbackDAO) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	return dao.DB.WithContext(ctx).Create(fb).Error
}

func (dao *FeedbackDAO) GetFeedbackByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var fb models.Feedback
	err := dao.DB.WithContext(ctx).Where("id = ?", id).First(&fb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (dao *FeedbackDAO) GetFeedbacksByUser(ctx context.Context, userID int) ([]models.Feedback, error) {
	var fbs []models.Feedback
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&fbs).Error
	if err != nil {
		return nil, err
	}
	return fbs, nil
}

func (dao *FeedbackDAO) GetAllFeedbacks(ctx context.Context) ([]models.Feedback, error) {
	var fbs []models.Feedback
	err := dao.DB.WithContext(ctx).Order("created_at DESC").Find(&fbs).Error
	if err != nil {
		return nil, err
	}
	return fbs, nil
}

func (dao *FeedbackDAO) GetStats(ctx context.Context) (*FeedbackStats, error) {
	var stats FeedbackStats
	db := dao.DB.WithContext(ctx).Model(&models.Feedback{})

	if err := db.Count(&stats.TotalFeedbacks).Error; err != nil {
		return nil, err
	}
	for label, dst := range map[string]*int64{
		"Positive": &stats.PositiveFeedbacks,
		"Neutral":  &stats.NeutralFeedbacks,
		"Negative": &stats.NegativeFeedbacks,
	} {
		err := dao.DB.WithContext(ctx).Model(&models.Feedback{}).
			Where("sentiment_label = ?", label).Count(dst).Error
		if err != nil {
			return nil, err
		}
	}

	if stats.TotalFeedbacks > 0 {
		var avg *float64
		err := dao.DB.WithContext(ctx).Model(&models.Feedback{}).
			Select("AVG(stars)").Scan(&avg).Error
		if err != nil {
			return nil, err
		}
		if avg != nil {
			stats.AvgStars = *avg
		}
	}
	return &stats, nil
}

func (dao *FeedbackDAO) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	return dao.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Feedback{}).Error
}
