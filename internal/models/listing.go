package models

import (
	"gorm.io/datatypes"
)

// Listing is a provider-owned service offer: farm work, equipment
// hire, pet care and so on. Category-specific details (acreage,
// species, machinery specs) live in the Attributes jsonb column.
type Listing struct {
	BaseModel
	ProviderID  string          `gorm:"not null;index" json:"provider_id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Category    ListingCategory `gorm:"type:varchar(30);not null;index" json:"category"`
	City        string          `gorm:"index" json:"city"`
	PriceMin    float64         `json:"price_min"`
	PriceMax    float64         `json:"price_max"`
	Attributes  datatypes.JSON  `gorm:"type:jsonb" json:"attributes,omitempty"`
	Status      ListingStatus   `gorm:"type:varchar(20);default:'draft'" json:"status"`
	Views       int             `json:"views"`

	Provider *User `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}
