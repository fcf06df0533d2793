package services

import (
	"agrihub_backend/internal/email"
)

// ServiceContainer bundles the application services for wiring.
type ServiceContainer struct {
	AuthService    AuthService
	UserService    UserService
	ListingService ListingService
	BookingService BookingService
	ChatService    ChatService
	PaymentService PaymentService
	ReviewService  ReviewService
	EmailService   email.Provider
}
