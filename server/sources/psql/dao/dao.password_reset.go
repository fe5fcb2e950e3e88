package dao

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
)

const resetTokenTTL = 5 * time.Minute

type PasswordResetDAO struct {
	DB *gorm.DB
}

func NewPasswordResetDAO(db *gorm.DB) *PasswordResetDAO {
	return &PasswordResetDAO{DB: db}
}

// CreateResetToken issues a fresh token for the user, replacing any earlier
// ones. The returned string is the raw token for the email link; only its
// sha256 hash is stored.
func (dao *PasswordResetDAO) CreateResetToken(ctx context.Context, userID int) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)
	hash := sha256.Sum256([]byte(token))

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.PasswordReset{}).Error; err != nil {
			return err
		}
		record := models.PasswordReset{
			UserID:    userID,
			TokenHash: hex.EncodeToString(hash[:]),
			ExpiresAt: time.Now().Add(resetTokenTTL),
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// VerifyResetToken returns the matching unexpired record, or nil if the token
// is unknown or expired.
func (dao *PasswordResetDAO) VerifyResetToken(ctx context.Context, token string) (*models.PasswordReset, error) {
	hash := sha256.Sum256([]byte(token))
	var record models.PasswordReset
	err := dao.DB.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", hex.EncodeToString(hash[:]), time.Now()).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (dao *PasswordResetDAO) DeleteRecord(ctx context.Context, record *models.PasswordReset) error {
	return dao.DB.WithContext(ctx).Delete(record).Error
}
