package dto

import (
	"agrihub_backend/internal/models"
)

type CreateReviewRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Body      string `json:"body" binding:"max=2000"`
}

type ModerateReviewRequest struct {
	Status models.ReviewStatus `json:"status" binding:"required,oneof=approved rejected"`
}

type ReviewListResponse struct {
	Reviews       []models.Review `json:"reviews"`
	Total         int64           `json:"total"`
	AverageRating float64         `json:"average_rating"`
	Page          int             `json:"page"`
	PageSize      int             `json:"page_size"`
}
