package handlers

// AppHandlers collects every handler of the application for route
// registration.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	ListingHandler *ListingHandler
	BookingHandler *BookingHandler
	ChatHandler    *ChatHandler
	PaymentHandler *PaymentHandler
	ReviewHandler  *ReviewHandler
	HealthHandler  *HealthHandler
}
