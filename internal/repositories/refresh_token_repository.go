package repositories

import (
	"errors"
	"time"

	"agrihub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

type RefreshTokenRepository interface {
	Create(token *models.RefreshToken) error
	FindByToken(tokenString string) (*models.RefreshToken, error)
	DeleteByToken(tokenString string) error
	DeleteByUserID(userID string) error
	DeleteExpired() (int64, error)
	CountByUserID(userID string) (int64, error)
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *refreshTokenRepository) FindByToken(tokenString string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.db.Where("token = ?", tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) DeleteByToken(tokenString string) error {
	return r.db.Where("token = ?", tokenString).Delete(&models.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

// DeleteExpired removes stale tokens; run periodically by the token
// janitor worker.
func (r *refreshTokenRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

func (r *refreshTokenRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.RefreshToken{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
