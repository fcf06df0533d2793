package services

import (
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"
)

type ReviewService interface {
	Create(authorID string, req *dto.CreateReviewRequest) (*models.Review, error)
	ListForProvider(providerID string, page, pageSize int) (*dto.ReviewListResponse, error)
	Moderate(reviewID string, status models.ReviewStatus) error
}

type ReviewServiceImpl struct {
	reviewRepo  repositories.ReviewRepository
	bookingRepo repositories.BookingRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, bookingRepo repositories.BookingRepository) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
	}
}

// Create accepts one review per completed booking, authored by the
// booking's requester. Reviews enter moderation as pending.
func (s *ReviewServiceImpl) Create(authorID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	booking, err := s.bookingRepo.FindByID(req.BookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	if booking.OwnerID != authorID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.ErrInvalidStatus("reviews", "Only completed bookings can be reviewed")
	}

	review := &models.Review{
		BookingID:  booking.ID,
		AuthorID:   authorID,
		ProviderID: booking.ProviderID,
		Rating:     req.Rating,
		Body:       req.Body,
		Status:     models.ReviewStatusPending,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if apperrors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	return review, nil
}

func (s *ReviewServiceImpl) ListForProvider(providerID string, page, pageSize int) (*dto.ReviewListResponse, error) {
	reviews, total, err := s.reviewRepo.FindApprovedByProvider(providerID, page, pageSize)
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	avg, err := s.reviewRepo.AverageRating(providerID)
	if err != nil {
		avg = 0
	}

	return &dto.ReviewListResponse{
		Reviews:       reviews,
		Total:         total,
		AverageRating: avg,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *ReviewServiceImpl) Moderate(reviewID string, status models.ReviewStatus) error {
	if err := s.reviewRepo.UpdateStatus(reviewID, status); err != nil {
		if apperrors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.UnavailableError(err)
	}
	return nil
}
