package repositories

import (
	"errors"

	"agrihub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository interface {
	Create(listing *models.Listing) error
	FindByID(id string) (*models.Listing, error)
	Update(listing *models.Listing) error
	UpdateStatus(id string, status models.ListingStatus) error
	IncrementViews(id string) error
	FindWithFilter(criteria ListingFilter) ([]models.Listing, int64, error)
	FindByProvider(providerID string) ([]models.Listing, error)
}

type ListingFilter struct {
	Category models.ListingCategory
	City     string
	PriceMin *float64
	PriceMax *float64
	Status   models.ListingStatus
	Page     int
	PageSize int
}

type ListingRepositoryImpl struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &ListingRepositoryImpl{db: db}
}

func (r *ListingRepositoryImpl) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

func (r *ListingRepositoryImpl) FindByID(id string) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.Preload("Provider").First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepositoryImpl) Update(listing *models.Listing) error {
	result := r.db.Model(listing).Updates(map[string]interface{}{
		"title":       listing.Title,
		"description": listing.Description,
		"category":    listing.Category,
		"city":        listing.City,
		"price_min":   listing.PriceMin,
		"price_max":   listing.PriceMax,
		"attributes":  listing.Attributes,
		"status":      listing.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) UpdateStatus(id string, status models.ListingStatus) error {
	result := r.db.Model(&models.Listing{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

// IncrementViews bumps the counter atomically in SQL; it is not worth
// a read-modify-write round trip.
func (r *ListingRepositoryImpl) IncrementViews(id string) error {
	return r.db.Model(&models.Listing{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *ListingRepositoryImpl) FindWithFilter(criteria ListingFilter) ([]models.Listing, int64, error) {
	query := r.db.Model(&models.Listing{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}
	if criteria.PriceMin != nil {
		query = query.Where("price_max >= ?", *criteria.PriceMin)
	}
	if criteria.PriceMax != nil {
		query = query.Where("price_min <= ?", *criteria.PriceMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 || criteria.PageSize > 100 {
		criteria.PageSize = 20
	}

	var listings []models.Listing
	err := query.Order("created_at DESC").
		Limit(criteria.PageSize).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

func (r *ListingRepositoryImpl) FindByProvider(providerID string) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Where("provider_id = ?", providerID).
		Order("created_at DESC").Find(&listings).Error
	return listings, err
}
