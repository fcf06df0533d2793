package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	nextID   int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID == "" {
		r.nextID++
		booking.ID = fmt.Sprintf("bk-%d", r.nextID)
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, repositories.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return repositories.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

func (r *fakeBookingRepo) MarkPaid(id string, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return repositories.ErrBookingNotFound
	}
	booking.PaidAt = &paidAt
	return nil
}

func (r *fakeBookingRepo) FindByOwner(ownerID string, status models.BookingStatus, page, pageSize int) ([]models.Booking, int64, error) {
	return r.findBy(func(b *models.Booking) bool {
		return b.OwnerID == ownerID && (status == "" || b.Status == status)
	})
}

func (r *fakeBookingRepo) FindByProvider(providerID string, status models.BookingStatus, page, pageSize int) ([]models.Booking, int64, error) {
	return r.findBy(func(b *models.Booking) bool {
		return b.ProviderID == providerID && (status == "" || b.Status == status)
	})
}

func (r *fakeBookingRepo) findBy(match func(*models.Booking) bool) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, booking := range r.bookings {
		if match(booking) {
			out = append(out, *booking)
		}
	}
	return out, int64(len(out)), nil
}

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]*models.Listing

	// incrementErr, when set, makes IncrementViews fail.
	incrementErr error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*models.Listing)}
}

func (r *fakeListingRepo) add(listing *models.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *listing
	r.listings[listing.ID] = &copied
}

func (r *fakeListingRepo) Create(listing *models.Listing) error {
	r.add(listing)
	return nil
}

func (r *fakeListingRepo) FindByID(id string) (*models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return nil, repositories.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

func (r *fakeListingRepo) Update(listing *models.Listing) error {
	r.add(listing)
	return nil
}

func (r *fakeListingRepo) UpdateStatus(id string, status models.ListingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return repositories.ErrListingNotFound
	}
	listing.Status = status
	return nil
}

func (r *fakeListingRepo) IncrementViews(id string) error { return r.incrementErr }

func (r *fakeListingRepo) FindWithFilter(criteria repositories.ListingFilter) ([]models.Listing, int64, error) {
	return nil, 0, nil
}

func (r *fakeListingRepo) FindByProvider(providerID string) ([]models.Listing, error) {
	return nil, nil
}

func newTestBookingService(t *testing.T) (BookingService, *fakeBookingRepo, *fakeListingRepo) {
	t.Helper()
	bookingRepo := newFakeBookingRepo()
	listingRepo := newFakeListingRepo()
	svc := NewBookingService(bookingRepo, listingRepo, newFakeUserRepo(), nil)
	return svc, bookingRepo, listingRepo
}

func activeListing(id, providerID string) *models.Listing {
	return &models.Listing{
		BaseModel:  models.BaseModel{ID: id},
		ProviderID: providerID,
		Title:      "Sheep shearing",
		Category:   models.ListingCategoryLivestockCare,
		PriceMin:   5000,
		Status:     models.ListingStatusActive,
	}
}

func TestBookingRequest(t *testing.T) {
	t.Parallel()

	svc, _, listingRepo := newTestBookingService(t)
	listingRepo.add(activeListing("l1", "provider-1"))

	booking, err := svc.Request("owner-1", &dto.CreateBookingRequest{
		ListingID:    "l1",
		ScheduledFor: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, "provider-1", booking.ProviderID)
	assert.Equal(t, float64(5000), booking.Amount)
}

func TestBookingRequest_Rejections(t *testing.T) {
	t.Parallel()

	svc, _, listingRepo := newTestBookingService(t)
	listingRepo.add(activeListing("l1", "provider-1"))

	draft := activeListing("l2", "provider-1")
	draft.Status = models.ListingStatusDraft
	listingRepo.add(draft)

	future := time.Now().Add(24 * time.Hour)

	// Inactive listing.
	_, err := svc.Request("owner-1", &dto.CreateBookingRequest{ListingID: "l2", ScheduledFor: future})
	require.Error(t, err)

	// Self booking.
	_, err = svc.Request("provider-1", &dto.CreateBookingRequest{ListingID: "l1", ScheduledFor: future})
	require.Error(t, err)

	// Past schedule.
	_, err = svc.Request("owner-1", &dto.CreateBookingRequest{ListingID: "l1", ScheduledFor: time.Now().Add(-time.Hour)})
	require.Error(t, err)

	// Unknown listing.
	_, err = svc.Request("owner-1", &dto.CreateBookingRequest{ListingID: "nope", ScheduledFor: future})
	require.Error(t, err)
}

func TestBookingLifecycle(t *testing.T) {
	t.Parallel()

	svc, _, listingRepo := newTestBookingService(t)
	listingRepo.add(activeListing("l1", "provider-1"))

	booking, err := svc.Request("owner-1", &dto.CreateBookingRequest{
		ListingID:    "l1",
		ScheduledFor: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	confirmed, err := svc.Confirm("provider-1", booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)

	completed, err := svc.Complete("provider-1", booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, completed.Status)

	// Completed is terminal.
	_, err = svc.Cancel("owner-1", booking.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestBookingTransition_Authorization(t *testing.T) {
	t.Parallel()

	svc, _, listingRepo := newTestBookingService(t)
	listingRepo.add(activeListing("l1", "provider-1"))

	booking, err := svc.Request("owner-1", &dto.CreateBookingRequest{
		ListingID:    "l1",
		ScheduledFor: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	// Only the listing's provider confirms.
	_, err = svc.Confirm("other-provider", booking.ID)
	assert.Equal(t, apperrors.ErrInsufficientPermissions, err)

	// Only the requesting owner cancels.
	_, err = svc.Cancel("provider-1", booking.ID)
	assert.Equal(t, apperrors.ErrInsufficientPermissions, err)

	// A declined booking cannot be confirmed afterwards.
	_, err = svc.Decline("provider-1", booking.ID)
	require.NoError(t, err)
	_, err = svc.Confirm("provider-1", booking.ID)
	require.Error(t, err)
}

func TestBookingGet_ParticipantsOnly(t *testing.T) {
	t.Parallel()

	svc, _, listingRepo := newTestBookingService(t)
	listingRepo.add(activeListing("l1", "provider-1"))

	booking, err := svc.Request("owner-1", &dto.CreateBookingRequest{
		ListingID:    "l1",
		ScheduledFor: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Get("owner-1", models.UserRoleOwner, booking.ID)
	assert.NoError(t, err)

	_, err = svc.Get("provider-1", models.UserRoleProvider, booking.ID)
	assert.NoError(t, err)

	_, err = svc.Get("stranger", models.UserRoleOwner, booking.ID)
	assert.Equal(t, apperrors.ErrInsufficientPermissions, err)

	_, err = svc.Get("stranger", models.UserRoleAdmin, booking.ID)
	assert.NoError(t, err)
}

func TestBookingCanTransitionMatrix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from    models.BookingStatus
		to      models.BookingStatus
		allowed bool
	}{
		{models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{models.BookingStatusPending, models.BookingStatusDeclined, true},
		{models.BookingStatusPending, models.BookingStatusCancelled, true},
		{models.BookingStatusPending, models.BookingStatusCompleted, false},
		{models.BookingStatusConfirmed, models.BookingStatusCompleted, true},
		{models.BookingStatusConfirmed, models.BookingStatusCancelled, true},
		{models.BookingStatusConfirmed, models.BookingStatusDeclined, false},
		{models.BookingStatusDeclined, models.BookingStatusConfirmed, false},
		{models.BookingStatusCancelled, models.BookingStatusConfirmed, false},
		{models.BookingStatusCompleted, models.BookingStatusCancelled, false},
	}

	for _, tc := range cases {
		booking := &models.Booking{Status: tc.from}
		assert.Equal(t, tc.allowed, booking.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingListMine_StatusFilter(t *testing.T) {
	t.Parallel()

	svc, bookingRepo, _ := newTestBookingService(t)
	require.NoError(t, bookingRepo.Create(&models.Booking{
		OwnerID: "owner-1", ProviderID: "provider-1", Status: models.BookingStatusPending,
	}))
	require.NoError(t, bookingRepo.Create(&models.Booking{
		OwnerID: "owner-1", ProviderID: "provider-1", Status: models.BookingStatusCompleted,
	}))

	all, err := svc.ListAsOwner("owner-1", &dto.BookingFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, 20, all.PageSize)

	completed, err := svc.ListAsProvider("provider-1", &dto.BookingFilterRequest{
		Status: models.BookingStatusCompleted,
	})
	require.NoError(t, err)
	require.Len(t, completed.Bookings, 1)
	assert.Equal(t, models.BookingStatusCompleted, completed.Bookings[0].Status)
}
