package repositories

import (
	"errors"

	"agrihub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for booking")
)

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByID(id string) (*models.Review, error)
	FindByBooking(bookingID string) (*models.Review, error)
	FindApprovedByProvider(providerID string, page, pageSize int) ([]models.Review, int64, error)
	UpdateStatus(id string, status models.ReviewStatus) error
	AverageRating(providerID string) (float64, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Create(review *models.Review) error {
	var existing models.Review
	if err := r.db.Where("booking_id = ?", review.BookingID).First(&existing).Error; err == nil {
		return ErrReviewAlreadyExists
	}
	return r.db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByBooking(bookingID string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "booking_id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindApprovedByProvider(providerID string, page, pageSize int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).
		Where("provider_id = ? AND status = ?", providerID, models.ReviewStatusApproved)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var reviews []models.Review
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *ReviewRepositoryImpl) UpdateStatus(id string, status models.ReviewStatus) error {
	result := r.db.Model(&models.Review{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) AverageRating(providerID string) (float64, error) {
	var avg *float64
	err := r.db.Model(&models.Review{}).
		Where("provider_id = ? AND status = ?", providerID, models.ReviewStatusApproved).
		Select("AVG(rating)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
