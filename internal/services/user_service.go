package services

import (
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"
)

type UserService interface {
	GetByID(userID string) (*dto.UserDTO, error)
	GetPublicProfile(userID string) (*dto.PublicUserDTO, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	AdminList(filter *dto.AdminUserFilter) (*dto.UserListResponse, error)
	AdminSetStatus(adminID, userID string, status models.UserStatus) error
}

type UserServiceImpl struct {
	userRepo   repositories.UserRepository
	reviewRepo repositories.ReviewRepository
}

func NewUserService(userRepo repositories.UserRepository, reviewRepo repositories.ReviewRepository) UserService {
	return &UserServiceImpl{
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *UserServiceImpl) GetByID(userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	userDTO := dto.NewUserDTO(user)
	return &userDTO, nil
}

// GetPublicProfile is the projection other marketplace users see:
// name, role, and for providers their approved-review rating. Email
// and verification state stay private.
func (s *UserServiceImpl) GetPublicProfile(userID string) (*dto.PublicUserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	profile := &dto.PublicUserDTO{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	}

	if user.Role == models.UserRoleProvider {
		if rating, err := s.reviewRepo.AverageRating(user.ID); err == nil {
			profile.Rating = rating
		}
	}

	return profile, nil
}

func (s *UserServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	userDTO := dto.NewUserDTO(user)
	return &userDTO, nil
}

func (s *UserServiceImpl) AdminList(filter *dto.AdminUserFilter) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.FindWithFilter(repositories.UserFilter{
		Role:     filter.Role,
		Status:   filter.Status,
		Verified: filter.Verified,
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	dtos := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, dto.NewUserDTO(&users[i]))
	}

	return &dto.UserListResponse{
		Users:    dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// AdminSetStatus suspends, bans or reactivates an account. Admins
// cannot target themselves.
func (s *UserServiceImpl) AdminSetStatus(adminID, userID string, status models.UserStatus) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	if err := s.userRepo.UpdateStatus(userID, status); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.UnavailableError(err)
	}

	return nil
}
