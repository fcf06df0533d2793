package repositories

import (
	"errors"
	"time"

	"agrihub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
)

type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByID(id string) (*models.Booking, error)
	UpdateStatus(id string, status models.BookingStatus) error
	MarkPaid(id string, paidAt time.Time) error
	FindByOwner(ownerID string, status models.BookingStatus, page, pageSize int) ([]models.Booking, int64, error)
	FindByProvider(providerID string, status models.BookingStatus, page, pageSize int) ([]models.Booking, int64, error)
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

func (r *BookingRepositoryImpl) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByID(id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Preload("Listing").First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) UpdateStatus(id string, status models.BookingStatus) error {
	result := r.db.Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepositoryImpl) MarkPaid(id string, paidAt time.Time) error {
	result := r.db.Model(&models.Booking{}).Where("id = ?", id).Update("paid_at", paidAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepositoryImpl) FindByOwner(ownerID string, status models.BookingStatus, page, pageSize int) ([]models.Booking, int64, error) {
	return r.findByParticipant("owner_id", ownerID, status, page, pageSize)
}

func (r *BookingRepositoryImpl) FindByProvider(providerID string, status models.BookingStatus, page, pageSize int) ([]models.Booking, int64, error) {
	return r.findByParticipant("provider_id", providerID, status, page, pageSize)
}

func (r *BookingRepositoryImpl) findByParticipant(column, userID string, status models.BookingStatus, page, pageSize int) ([]models.Booking, int64, error) {
	query := r.db.Model(&models.Booking{}).Where(column+" = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

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

	var bookings []models.Booking
	err := query.Preload("Listing").Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}
