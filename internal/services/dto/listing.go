package dto

import (
	"agrihub_backend/internal/models"

	"gorm.io/datatypes"
)

type CreateListingRequest struct {
	Title       string                 `json:"title" binding:"required,min=3,max=200"`
	Description string                 `json:"description"`
	Category    models.ListingCategory `json:"category" binding:"required" validate:"is-listing-category"`
	City        string                 `json:"city" binding:"required"`
	PriceMin    float64                `json:"price_min" binding:"min=0"`
	PriceMax    float64                `json:"price_max" binding:"min=0"`
	Attributes  datatypes.JSON         `json:"attributes,omitempty"`
	Publish     bool                   `json:"publish"`
}

type UpdateListingRequest struct {
	Title       string                 `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string                `json:"description"`
	Category    models.ListingCategory `json:"category" validate:"omitempty,is-listing-category"`
	City        string                 `json:"city"`
	PriceMin    *float64               `json:"price_min"`
	PriceMax    *float64               `json:"price_max"`
	Attributes  datatypes.JSON         `json:"attributes,omitempty"`
	Status      models.ListingStatus   `json:"status" binding:"omitempty,oneof=draft active paused archived"`
}

type ListingFilterRequest struct {
	Category models.ListingCategory `form:"category" validate:"omitempty,is-listing-category"`
	City     string                 `form:"city"`
	PriceMin *float64               `form:"price_min"`
	PriceMax *float64               `form:"price_max"`
	Page     int                    `form:"page" validate:"omitempty,min=1"`
	PageSize int                    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type ListingListResponse struct {
	Listings []models.Listing `json:"listings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
