package dto

import (
	"agrihub_backend/internal/models"
)

type InitiatePaymentRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

type InitiatePaymentResponse struct {
	PaymentURL string `json:"payment_url"`
	InvID      string `json:"inv_id"`
}

// PaymentCallbackRequest mirrors the gateway's result callback form
// fields.
type PaymentCallbackRequest struct {
	OutSum         string `form:"OutSum" binding:"required"`
	InvID          string `form:"InvId" binding:"required"`
	SignatureValue string `form:"SignatureValue" binding:"required"`
}

type PaymentListResponse struct {
	Payments []models.PaymentTransaction `json:"payments"`
	Total    int64                       `json:"total"`
	Page     int                         `json:"page"`
	PageSize int                         `json:"page_size"`
}
