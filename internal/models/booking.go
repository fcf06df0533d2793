package models

import "time"

// Booking is a request by an owner for a provider's listed service.
// ProviderID is denormalized from the listing at creation time so the
// booking survives later listing edits.
type Booking struct {
	BaseModel
	ListingID    string        `gorm:"not null;index"`
	OwnerID      string        `gorm:"not null;index"`
	ProviderID   string        `gorm:"not null;index"`
	ScheduledFor time.Time     `gorm:"not null"`
	Notes        string
	Amount       float64
	Status       BookingStatus `gorm:"type:varchar(20);default:'pending';index"`
	// PaidAt mirrors the paid transaction for quick billing checks;
	// the PaymentTransaction row stays the authoritative record.
	PaidAt *time.Time

	Listing  *Listing `gorm:"foreignKey:ListingID"`
	Owner    *User    `gorm:"foreignKey:OwnerID"`
	Provider *User    `gorm:"foreignKey:ProviderID"`
}

// CanTransition reports whether a booking may move to the target
// status. Terminal states (declined, cancelled, completed) never
// transition again.
func (b *Booking) CanTransition(target BookingStatus) bool {
	switch b.Status {
	case BookingStatusPending:
		return target == BookingStatusConfirmed ||
			target == BookingStatusDeclined ||
			target == BookingStatusCancelled
	case BookingStatusConfirmed:
		return target == BookingStatusCancelled ||
			target == BookingStatusCompleted
	}
	return false
}
