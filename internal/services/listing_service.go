package services

import (
	"agrihub_backend/internal/logger"
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"
)

type ListingService interface {
	Create(providerID string, req *dto.CreateListingRequest) (*models.Listing, error)
	Get(id string, countView bool) (*models.Listing, error)
	Update(actorID string, actorRole models.UserRole, id string, req *dto.UpdateListingRequest) (*models.Listing, error)
	Archive(actorID string, actorRole models.UserRole, id string) error
	List(filter *dto.ListingFilterRequest) (*dto.ListingListResponse, error)
	ListByProvider(providerID string) ([]models.Listing, error)
}

type ListingServiceImpl struct {
	listingRepo repositories.ListingRepository
	userRepo    repositories.UserRepository
}

func NewListingService(listingRepo repositories.ListingRepository, userRepo repositories.UserRepository) ListingService {
	return &ListingServiceImpl{
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

func (s *ListingServiceImpl) Create(providerID string, req *dto.CreateListingRequest) (*models.Listing, error) {
	if req.PriceMax > 0 && req.PriceMax < req.PriceMin {
		return nil, apperrors.NewBadRequestError("price_max must not be below price_min")
	}

	status := models.ListingStatusDraft
	if req.Publish {
		status = models.ListingStatusActive
	}

	listing := &models.Listing{
		ProviderID:  providerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		City:        req.City,
		PriceMin:    req.PriceMin,
		PriceMax:    req.PriceMax,
		Attributes:  req.Attributes,
		Status:      status,
	}

	if err := s.listingRepo.Create(listing); err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	return listing, nil
}

// Get fetches one listing; public reads bump the view counter.
func (s *ListingServiceImpl) Get(id string, countView bool) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	// Best effort: the counter is informational only.
	if countView {
		if err := s.listingRepo.IncrementViews(id); err != nil {
			logger.WithError(err).Warn("failed to increment listing views", "listing_id", id)
		}
	}

	return listing, nil
}

func (s *ListingServiceImpl) Update(actorID string, actorRole models.UserRole, id string, req *dto.UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.ownedListing(actorID, actorRole, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		listing.Title = req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Category != "" {
		listing.Category = req.Category
	}
	if req.City != "" {
		listing.City = req.City
	}
	if req.PriceMin != nil {
		listing.PriceMin = *req.PriceMin
	}
	if req.PriceMax != nil {
		listing.PriceMax = *req.PriceMax
	}
	if req.Attributes != nil {
		listing.Attributes = req.Attributes
	}
	if req.Status != "" {
		listing.Status = req.Status
	}

	if listing.PriceMax > 0 && listing.PriceMax < listing.PriceMin {
		return nil, apperrors.NewBadRequestError("price_max must not be below price_min")
	}

	if err := s.listingRepo.Update(listing); err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	return listing, nil
}

func (s *ListingServiceImpl) Archive(actorID string, actorRole models.UserRole, id string) error {
	if _, err := s.ownedListing(actorID, actorRole, id); err != nil {
		return err
	}

	if err := s.listingRepo.UpdateStatus(id, models.ListingStatusArchived); err != nil {
		return apperrors.UnavailableError(err)
	}
	return nil
}

// List returns active listings only; drafts and archived listings are
// visible to their owner through ListByProvider.
func (s *ListingServiceImpl) List(filter *dto.ListingFilterRequest) (*dto.ListingListResponse, error) {
	listings, total, err := s.listingRepo.FindWithFilter(repositories.ListingFilter{
		Category: filter.Category,
		City:     filter.City,
		PriceMin: filter.PriceMin,
		PriceMax: filter.PriceMax,
		Status:   models.ListingStatusActive,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	return &dto.ListingListResponse{
		Listings: listings,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *ListingServiceImpl) ListByProvider(providerID string) ([]models.Listing, error) {
	listings, err := s.listingRepo.FindByProvider(providerID)
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}
	return listings, nil
}

// ownedListing loads a listing and checks the actor may mutate it:
// the owning provider or an admin.
func (s *ListingServiceImpl) ownedListing(actorID string, actorRole models.UserRole, id string) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	if listing.ProviderID != actorID && actorRole != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	return listing, nil
}
