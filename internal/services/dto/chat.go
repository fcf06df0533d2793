package dto

import (
	"agrihub_backend/internal/models"
)

type OpenConversationRequest struct {
	UserID    string  `json:"user_id" binding:"required"`
	BookingID *string `json:"booking_id"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	Body           string `json:"body" binding:"required,max=4000"`
}

type ConversationDTO struct {
	ID          string  `json:"id"`
	BookingID   *string `json:"booking_id,omitempty"`
	PartnerID   string  `json:"partner_id"`
	UnreadCount int64   `json:"unread_count"`
}

type MessageListResponse struct {
	Messages []models.Message `json:"messages"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
