package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentTransaction mirrors one payment attempt at the gateway.
// InvID is the invoice number handed to the gateway and returned in
// its result callback; it is unique so callbacks are idempotent.
type PaymentTransaction struct {
	BaseModel
	BookingID string         `gorm:"not null;index"`
	PayerID   string         `gorm:"not null;index"`
	Amount    float64        `gorm:"not null"`
	Currency  string         `gorm:"type:varchar(10)"`
	InvID     string         `gorm:"uniqueIndex;not null"`
	Status    PaymentStatus  `gorm:"type:varchar(20);default:'pending'"`
	PaidAt    *time.Time
	Payload   datatypes.JSON `gorm:"type:jsonb"`

	Booking *Booking `gorm:"foreignKey:BookingID"`
}
