package validator

import (
	"log"

	"agrihub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the domain enum checks into the validator
// instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-listing-category", validateListingCategory)
	mustRegister("is-booking-status", validateBookingStatus)
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.ValidUserRole(models.UserRole(fl.Field().String()))
}

func validateListingCategory(fl validator.FieldLevel) bool {
	return models.ValidListingCategory(models.ListingCategory(fl.Field().String()))
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	return models.ValidBookingStatus(models.BookingStatus(fl.Field().String()))
}
