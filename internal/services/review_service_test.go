package services

import (
	"fmt"
	"sync"
	"testing"

	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.Review // by booking ID
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (r *fakeReviewRepo) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reviews[review.BookingID]; exists {
		return repositories.ErrReviewAlreadyExists
	}
	r.nextID++
	if review.ID == "" {
		review.ID = fmt.Sprintf("rv-%d", r.nextID)
	}
	copied := *review
	r.reviews[review.BookingID] = &copied
	return nil
}

func (r *fakeReviewRepo) FindByID(id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.ID == id {
			copied := *review
			return &copied, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (r *fakeReviewRepo) FindByBooking(bookingID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[bookingID]
	if !ok {
		return nil, repositories.ErrReviewNotFound
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) FindApprovedByProvider(providerID string, page, pageSize int) ([]models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, review := range r.reviews {
		if review.ProviderID == providerID && review.Status == models.ReviewStatusApproved {
			out = append(out, *review)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) UpdateStatus(id string, status models.ReviewStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.ID == id {
			review.Status = status
			return nil
		}
	}
	return repositories.ErrReviewNotFound
}

func (r *fakeReviewRepo) AverageRating(providerID string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, count float64
	for _, review := range r.reviews {
		if review.ProviderID == providerID && review.Status == models.ReviewStatusApproved {
			sum += float64(review.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}

func newTestReviewService(t *testing.T) (ReviewService, *fakeReviewRepo, *fakeBookingRepo) {
	t.Helper()
	reviewRepo := newFakeReviewRepo()
	bookingRepo := newFakeBookingRepo()
	svc := NewReviewService(reviewRepo, bookingRepo)
	return svc, reviewRepo, bookingRepo
}

func seedCompletedBooking(t *testing.T, repo *fakeBookingRepo, id, ownerID, providerID string) {
	t.Helper()
	require.NoError(t, repo.Create(&models.Booking{
		BaseModel:  models.BaseModel{ID: id},
		OwnerID:    ownerID,
		ProviderID: providerID,
		Status:     models.BookingStatusCompleted,
	}))
}

func TestReviewCreate(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newTestReviewService(t)
	seedCompletedBooking(t, bookingRepo, "bk-1", "owner-1", "provider-1")

	review, err := svc.Create("owner-1", &dto.CreateReviewRequest{
		BookingID: "bk-1",
		Rating:    5,
		Body:      "Great work with the flock.",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ReviewStatusPending, review.Status)
	assert.Equal(t, "provider-1", review.ProviderID)

	// One review per booking.
	_, err = svc.Create("owner-1", &dto.CreateReviewRequest{BookingID: "bk-1", Rating: 1})
	require.Error(t, err)
}

func TestReviewCreate_Rejections(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newTestReviewService(t)
	seedCompletedBooking(t, bookingRepo, "bk-1", "owner-1", "provider-1")

	require.NoError(t, bookingRepo.Create(&models.Booking{
		BaseModel:  models.BaseModel{ID: "bk-open"},
		OwnerID:    "owner-1",
		ProviderID: "provider-1",
		Status:     models.BookingStatusConfirmed,
	}))

	// Only the booking's requester reviews.
	_, err := svc.Create("stranger", &dto.CreateReviewRequest{BookingID: "bk-1", Rating: 4})
	assert.Equal(t, apperrors.ErrInsufficientPermissions, err)

	// Only completed bookings are reviewable.
	_, err = svc.Create("owner-1", &dto.CreateReviewRequest{BookingID: "bk-open", Rating: 4})
	require.Error(t, err)
}

// Only approved reviews are listed publicly and counted in the
// average.
func TestReviewModerationAndListing(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newTestReviewService(t)
	seedCompletedBooking(t, bookingRepo, "bk-1", "owner-1", "provider-1")
	seedCompletedBooking(t, bookingRepo, "bk-2", "owner-2", "provider-1")

	first, err := svc.Create("owner-1", &dto.CreateReviewRequest{BookingID: "bk-1", Rating: 5})
	require.NoError(t, err)
	second, err := svc.Create("owner-2", &dto.CreateReviewRequest{BookingID: "bk-2", Rating: 3})
	require.NoError(t, err)

	listed, err := svc.ListForProvider("provider-1", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, listed.Reviews)

	require.NoError(t, svc.Moderate(first.ID, models.ReviewStatusApproved))
	require.NoError(t, svc.Moderate(second.ID, models.ReviewStatusRejected))

	listed, err = svc.ListForProvider("provider-1", 1, 20)
	require.NoError(t, err)
	require.Len(t, listed.Reviews, 1)
	assert.Equal(t, 5, listed.Reviews[0].Rating)
	assert.Equal(t, float64(5), listed.AverageRating)
}
