package validator

import (
	"errors"
	"testing"

	"agrihub_backend/internal/models"
	"agrihub_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,is-user-role"`
}

func TestValidator_Valid(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&sampleRequest{
		Email:    "farmer@example.com",
		Password: "long-enough",
		Role:     "provider",
	})
	assert.NoError(t, err)
}

func TestValidator_FieldNamesComeFromJSONTags(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&sampleRequest{
		Email:    "not-an-email",
		Password: "short",
		Role:     "owner",
	})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Errors, "email")
	assert.Contains(t, valErr.Errors, "password")
	assert.NotContains(t, valErr.Errors, "Email")
}

func TestValidator_BookingStatusFilter(t *testing.T) {
	t.Parallel()
	v := New()

	assert.NoError(t, v.Validate(&dto.BookingFilterRequest{}))
	assert.NoError(t, v.Validate(&dto.BookingFilterRequest{Status: models.BookingStatusPending}))

	err := v.Validate(&dto.BookingFilterRequest{Status: "shipped"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "Must be a valid booking status", valErr.Errors["Status"])
}

func TestValidator_CustomRoleRule(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&sampleRequest{
		Email:    "farmer@example.com",
		Password: "long-enough",
		Role:     "superuser",
	})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "Must be a valid user role", valErr.Errors["role"])
}
