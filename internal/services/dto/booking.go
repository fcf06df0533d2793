package dto

import (
	"time"

	"agrihub_backend/internal/models"
)

type CreateBookingRequest struct {
	ListingID    string    `json:"listing_id" binding:"required"`
	ScheduledFor time.Time `json:"scheduled_for" binding:"required"`
	Notes        string    `json:"notes"`
}

type BookingFilterRequest struct {
	Status   models.BookingStatus `form:"status" validate:"omitempty,is-booking-status"`
	Page     int                  `form:"page" validate:"omitempty,min=1"`
	PageSize int                  `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type BookingListResponse struct {
	Bookings []models.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
