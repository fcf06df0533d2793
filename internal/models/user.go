package models

import "time"

// User is an account record. Users are soft-deleted only, so bookings
// and reviews that reference them stay intact. Email is stored in
// lower case and is unique among non-deleted users.
type User struct {
	BaseModelWithDeleted
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Name              string     `json:"name"`
	Role              UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status            UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	EmailVerified     bool       `gorm:"default:false" json:"email_verified"`
	PhoneVerified     bool       `gorm:"default:false" json:"phone_verified"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExp     *time.Time `json:"-"`

	// Relations
	Listings      []Listing      `gorm:"foreignKey:ProviderID" json:"-"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

// RefreshToken is the persisted half of a session. Access tokens are
// stateless and stay valid until natural expiry; deleting the refresh
// token on logout is what ends the session's ability to renew.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
