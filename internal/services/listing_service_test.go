package services

import (
	"errors"
	"testing"

	"agrihub_backend/internal/models"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListingService(t *testing.T) (ListingService, *fakeListingRepo) {
	t.Helper()
	listingRepo := newFakeListingRepo()
	svc := NewListingService(listingRepo, newFakeUserRepo())
	return svc, listingRepo
}

func TestListingCreate_PublishFlag(t *testing.T) {
	t.Parallel()

	svc, _ := newTestListingService(t)

	draft, err := svc.Create("provider-1", &dto.CreateListingRequest{
		Title:    "Hoof trimming",
		Category: models.ListingCategoryLivestockCare,
		City:     "Almaty",
		PriceMin: 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusDraft, draft.Status)

	published, err := svc.Create("provider-1", &dto.CreateListingRequest{
		Title:    "Dog boarding",
		Category: models.ListingCategoryBoarding,
		City:     "Almaty",
		PriceMin: 2000,
		Publish:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusActive, published.Status)
}

func TestListingCreate_PriceSanity(t *testing.T) {
	t.Parallel()

	svc, _ := newTestListingService(t)

	_, err := svc.Create("provider-1", &dto.CreateListingRequest{
		Title:    "Bad prices",
		Category: models.ListingCategoryEquipment,
		City:     "Almaty",
		PriceMin: 5000,
		PriceMax: 100,
	})
	require.Error(t, err)
}

func TestListingUpdate_OwnerOrAdminOnly(t *testing.T) {
	t.Parallel()

	svc, listingRepo := newTestListingService(t)
	listingRepo.add(activeListing("l1", "provider-1"))

	title := "Sheep shearing, renamed"

	_, err := svc.Update("someone-else", models.UserRoleProvider, "l1", &dto.UpdateListingRequest{Title: title})
	assert.Equal(t, apperrors.ErrInsufficientPermissions, err)

	updated, err := svc.Update("provider-1", models.UserRoleProvider, "l1", &dto.UpdateListingRequest{Title: title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	updated, err = svc.Update("admin-1", models.UserRoleAdmin, "l1", &dto.UpdateListingRequest{City: "Astana"})
	require.NoError(t, err)
	assert.Equal(t, "Astana", updated.City)
}

// The view counter is informational; a failing bump must not turn a
// readable listing into an error response.
func TestListingGet_ViewCounterIsBestEffort(t *testing.T) {
	t.Parallel()

	svc, listingRepo := newTestListingService(t)
	listingRepo.add(activeListing("l1", "provider-1"))
	listingRepo.incrementErr = errors.New("deadlock detected")

	listing, err := svc.Get("l1", true)
	require.NoError(t, err)
	assert.Equal(t, "l1", listing.ID)
}

func TestListingArchive(t *testing.T) {
	t.Parallel()

	svc, listingRepo := newTestListingService(t)
	listingRepo.add(activeListing("l1", "provider-1"))

	require.NoError(t, svc.Archive("provider-1", models.UserRoleProvider, "l1"))

	listing, err := listingRepo.FindByID("l1")
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusArchived, listing.Status)
}
