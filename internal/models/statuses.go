package models

type UserRole string
type UserStatus string
type ListingCategory string
type ListingStatus string
type BookingStatus string
type PaymentStatus string
type ReviewStatus string

const (
	// Roles form a closed set; "guest" is the unauthenticated default
	// and is never persisted on a registered account.
	UserRoleGuest    UserRole = "guest"
	UserRoleOwner    UserRole = "owner"
	UserRoleProvider UserRole = "provider"
	UserRoleAdmin    UserRole = "admin"

	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	ListingCategoryLivestockCare ListingCategory = "livestock_care"
	ListingCategoryCropServices  ListingCategory = "crop_services"
	ListingCategoryEquipment     ListingCategory = "equipment"
	ListingCategoryPetSitting    ListingCategory = "pet_sitting"
	ListingCategoryGrooming      ListingCategory = "grooming"
	ListingCategoryVeterinary    ListingCategory = "veterinary"
	ListingCategoryBoarding      ListingCategory = "boarding"

	ListingStatusDraft    ListingStatus = "draft"
	ListingStatusActive   ListingStatus = "active"
	ListingStatusPaused   ListingStatus = "paused"
	ListingStatusArchived ListingStatus = "archived"

	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"

	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// RegistrableRoles are the roles a user may self-register with.
// Admins are only created by other admins or the bootstrap seed.
var RegistrableRoles = []UserRole{UserRoleOwner, UserRoleProvider}

// ValidUserRole reports whether the role belongs to the closed set.
func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRoleGuest, UserRoleOwner, UserRoleProvider, UserRoleAdmin:
		return true
	}
	return false
}

// ValidListingCategory reports whether the category is known.
func ValidListingCategory(c ListingCategory) bool {
	switch c {
	case ListingCategoryLivestockCare, ListingCategoryCropServices,
		ListingCategoryEquipment, ListingCategoryPetSitting,
		ListingCategoryGrooming, ListingCategoryVeterinary,
		ListingCategoryBoarding:
		return true
	}
	return false
}

// ValidBookingStatus reports whether the status is known.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusDeclined,
		BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}
