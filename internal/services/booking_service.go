package services

import (
	"time"

	"agrihub_backend/internal/email"
	"agrihub_backend/internal/logger"
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"
)

type BookingService interface {
	Request(ownerID string, req *dto.CreateBookingRequest) (*models.Booking, error)
	Get(actorID string, actorRole models.UserRole, id string) (*models.Booking, error)
	Confirm(providerID, id string) (*models.Booking, error)
	Decline(providerID, id string) (*models.Booking, error)
	Cancel(actorID, id string) (*models.Booking, error)
	Complete(providerID, id string) (*models.Booking, error)
	ListAsOwner(ownerID string, filter *dto.BookingFilterRequest) (*dto.BookingListResponse, error)
	ListAsProvider(providerID string, filter *dto.BookingFilterRequest) (*dto.BookingListResponse, error)
}

type BookingServiceImpl struct {
	bookingRepo   repositories.BookingRepository
	listingRepo   repositories.ListingRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) BookingService {
	return &BookingServiceImpl{
		bookingRepo:   bookingRepo,
		listingRepo:   listingRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

// Request creates a pending booking against an active listing.
// Providers cannot book their own listings.
func (s *BookingServiceImpl) Request(ownerID string, req *dto.CreateBookingRequest) (*models.Booking, error) {
	listing, err := s.listingRepo.FindByID(req.ListingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	if listing.Status != models.ListingStatusActive {
		return nil, apperrors.ErrInvalidStatus("bookings", "Listing is not open for bookings")
	}

	if listing.ProviderID == ownerID {
		return nil, apperrors.ErrInvalidOperation("bookings", "Cannot book your own listing")
	}

	if req.ScheduledFor.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("scheduled_for must be in the future")
	}

	booking := &models.Booking{
		ListingID:    listing.ID,
		OwnerID:      ownerID,
		ProviderID:   listing.ProviderID,
		ScheduledFor: req.ScheduledFor,
		Notes:        req.Notes,
		Amount:       listing.PriceMin,
		Status:       models.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	s.notifyParticipant(listing.ProviderID, listing.Title, string(models.BookingStatusPending))

	return booking, nil
}

// Get returns a booking to its participants or an admin only.
func (s *BookingServiceImpl) Get(actorID string, actorRole models.UserRole, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	if booking.OwnerID != actorID && booking.ProviderID != actorID && actorRole != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	return booking, nil
}

func (s *BookingServiceImpl) Confirm(providerID, id string) (*models.Booking, error) {
	return s.transition(id, models.BookingStatusConfirmed, func(b *models.Booking) error {
		if b.ProviderID != providerID {
			return apperrors.ErrInsufficientPermissions
		}
		return nil
	})
}

func (s *BookingServiceImpl) Decline(providerID, id string) (*models.Booking, error) {
	return s.transition(id, models.BookingStatusDeclined, func(b *models.Booking) error {
		if b.ProviderID != providerID {
			return apperrors.ErrInsufficientPermissions
		}
		return nil
	})
}

// Cancel is available to the requesting owner for pending and
// confirmed bookings.
func (s *BookingServiceImpl) Cancel(actorID, id string) (*models.Booking, error) {
	return s.transition(id, models.BookingStatusCancelled, func(b *models.Booking) error {
		if b.OwnerID != actorID {
			return apperrors.ErrInsufficientPermissions
		}
		return nil
	})
}

func (s *BookingServiceImpl) Complete(providerID, id string) (*models.Booking, error) {
	return s.transition(id, models.BookingStatusCompleted, func(b *models.Booking) error {
		if b.ProviderID != providerID {
			return apperrors.ErrInsufficientPermissions
		}
		return nil
	})
}

func (s *BookingServiceImpl) ListAsOwner(ownerID string, filter *dto.BookingFilterRequest) (*dto.BookingListResponse, error) {
	page, pageSize := normalizePagination(filter.Page, filter.PageSize)
	bookings, total, err := s.bookingRepo.FindByOwner(ownerID, filter.Status, page, pageSize)
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}
	return &dto.BookingListResponse{Bookings: bookings, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *BookingServiceImpl) ListAsProvider(providerID string, filter *dto.BookingFilterRequest) (*dto.BookingListResponse, error) {
	page, pageSize := normalizePagination(filter.Page, filter.PageSize)
	bookings, total, err := s.bookingRepo.FindByProvider(providerID, filter.Status, page, pageSize)
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}
	return &dto.BookingListResponse{Bookings: bookings, Total: total, Page: page, PageSize: pageSize}, nil
}

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// transition applies authorize, then the status machine, then
// persists. Illegal transitions surface as conflicts.
func (s *BookingServiceImpl) transition(id string, target models.BookingStatus, authorize func(*models.Booking) error) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	if err := authorize(booking); err != nil {
		return nil, err
	}

	if !booking.CanTransition(target) {
		return nil, apperrors.ErrConflict(nil, "bookings",
			"Booking cannot move from "+string(booking.Status)+" to "+string(target))
	}

	if err := s.bookingRepo.UpdateStatus(id, target); err != nil {
		return nil, apperrors.UnavailableError(err)
	}
	booking.Status = target

	counterparty := booking.OwnerID
	if target == models.BookingStatusCancelled {
		counterparty = booking.ProviderID
	}
	title := ""
	if booking.Listing != nil {
		title = booking.Listing.Title
	}
	s.notifyParticipant(counterparty, title, string(target))

	return booking, nil
}

// notifyParticipant mails the counterparty about a status change,
// asynchronously and best effort.
func (s *BookingServiceImpl) notifyParticipant(userID, listingTitle, status string) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		user, err := s.userRepo.FindByID(userID)
		if err != nil {
			return
		}
		if err := s.emailProvider.SendBookingNotice(user.Email, listingTitle, status); err != nil {
			logger.WithError(err).Warn("failed to send booking notice", "user_id", userID)
		}
	}()
}
