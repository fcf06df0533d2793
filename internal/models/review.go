package models

// Review is left by the booking's requester after completion, one per
// booking, and is only publicly visible once approved.
type Review struct {
	BaseModel
	BookingID  string       `gorm:"not null;uniqueIndex"`
	AuthorID   string       `gorm:"not null;index"`
	ProviderID string       `gorm:"not null;index"`
	Rating     int          `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Body       string
	Status     ReviewStatus `gorm:"type:varchar(20);default:'pending'"`

	Author   *User    `gorm:"foreignKey:AuthorID"`
	Provider *User    `gorm:"foreignKey:ProviderID"`
	Booking  *Booking `gorm:"foreignKey:BookingID"`
}
