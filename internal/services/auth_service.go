package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"agrihub_backend/internal/auth"
	"agrihub_backend/internal/email"
	"agrihub_backend/internal/logger"
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"
)

const refreshTokenLifetime = 7 * 24 * time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) error
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(refreshToken string) (*dto.AuthResponse, error)
	Logout(refreshToken string) error
	VerifyEmail(token string) error
	RequestPasswordReset(emailAddr string) error
	ResetPassword(token, newPassword string) error
	ChangePassword(userID, currentPassword, newPassword string) error
	AdminCreateUser(req *dto.AdminCreateUserRequest) (*dto.UserDTO, error)
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	tokenManager     *auth.TokenManager
	emailProvider    email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	tokenManager *auth.TokenManager,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokenManager:     tokenManager,
		emailProvider:    emailProvider,
	}
}

// Register creates a pending account and mails a verification token.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}

	if req.Role != models.UserRoleOwner && req.Role != models.UserRoleProvider {
		return apperrors.ErrInvalidUserRole
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	verificationToken := generateRandomToken()

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		Name:              req.Name,
		Role:              req.Role,
		Status:            models.UserStatusPending,
		EmailVerified:     false,
		VerificationToken: verificationToken,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.UnavailableError(err)
	}

	s.sendVerificationEmail(user.Email, verificationToken)

	return nil
}

// Login is the credential issuer. Unknown email and wrong password
// both come back as the same InvalidCredentials so the endpoint never
// reveals whether an email is registered. Store failures surface as
// Unavailable and are never folded into InvalidCredentials.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.UnavailableError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.checkUserStatus(user); err != nil {
		return nil, err
	}

	accessToken, err := s.tokenManager.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := s.createRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	// Best effort: a failure to record the login time must not fail
	// the login itself.
	go func(userID string) {
		if err := s.userRepo.UpdateLastLogin(userID, time.Now()); err != nil {
			logger.WithError(err).Warn("failed to record last login", "user_id", userID)
		}
	}(user.ID)

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserDTO(user),
	}, nil
}

// RefreshToken rotates the refresh token and issues a new access
// token.
func (s *AuthServiceImpl) RefreshToken(refreshToken string) (*dto.AuthResponse, error) {
	token, err := s.refreshTokenRepo.FindByToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(token.ExpiresAt) {
		_ = s.refreshTokenRepo.DeleteByToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.checkUserStatus(user); err != nil {
		return nil, err
	}

	accessToken, err := s.tokenManager.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	newRefreshToken, err := s.rotateRefreshToken(token.UserID, refreshToken)
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         dto.NewUserDTO(user),
	}, nil
}

// Logout deletes the refresh token so the session cannot renew. The
// access token is stateless and stays valid until its natural expiry;
// there is no server-side access-token blacklist.
func (s *AuthServiceImpl) Logout(refreshToken string) error {
	return s.refreshTokenRepo.DeleteByToken(refreshToken)
}

// VerifyEmail activates the account matching the verification token.
func (s *AuthServiceImpl) VerifyEmail(token string) error {
	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	return s.userRepo.VerifyEmail(user.ID)
}

// RequestPasswordReset issues a reset token. It returns nil for an
// unknown email so the endpoint cannot be used to probe accounts.
func (s *AuthServiceImpl) RequestPasswordReset(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		return nil
	}

	resetToken := generateRandomToken()
	resetTokenExp := time.Now().Add(1 * time.Hour)

	user.ResetToken = resetToken
	user.ResetTokenExp = &resetTokenExp

	if err := s.userRepo.Update(user); err != nil {
		return apperrors.UnavailableError(err)
	}

	s.sendPasswordResetEmail(user.Email, resetToken)

	return nil
}

// ResetPassword sets a new password by reset token and revokes all
// refresh tokens of the account.
func (s *AuthServiceImpl) ResetPassword(token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword
	user.ResetToken = ""
	user.ResetTokenExp = nil

	if err := s.userRepo.Update(user); err != nil {
		return apperrors.UnavailableError(err)
	}

	if err := s.refreshTokenRepo.DeleteByUserID(user.ID); err != nil {
		logger.WithError(err).Warn("failed to revoke refresh tokens after password reset", "user_id", user.ID)
	}

	return nil
}

// ChangePassword requires the current password.
func (s *AuthServiceImpl) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidCredentials
		}
		return apperrors.UnavailableError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword

	return s.userRepo.Update(user)
}

// AdminCreateUser creates an active, pre-verified account with any
// role. Admin-only.
func (s *AuthServiceImpl) AdminCreateUser(req *dto.AdminCreateUserRequest) (*dto.UserDTO, error) {
	if !models.ValidUserRole(req.Role) || req.Role == models.UserRoleGuest {
		return nil, apperrors.ErrInvalidUserRole
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:         req.Email,
		PasswordHash:  hashedPassword,
		Name:          req.Name,
		Role:          req.Role,
		Status:        models.UserStatusActive,
		EmailVerified: true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.UnavailableError(err)
	}

	userDTO := dto.NewUserDTO(user)
	return &userDTO, nil
}

// --- Helpers ---

func (s *AuthServiceImpl) createRefreshToken(userID string) (string, error) {
	refreshToken := generateRandomToken()

	refreshTokenModel := &models.RefreshToken{
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenLifetime),
	}

	if err := s.refreshTokenRepo.Create(refreshTokenModel); err != nil {
		return "", err
	}

	return refreshToken, nil
}

func (s *AuthServiceImpl) rotateRefreshToken(userID, oldToken string) (string, error) {
	if err := s.refreshTokenRepo.DeleteByToken(oldToken); err != nil {
		return "", err
	}

	return s.createRefreshToken(userID)
}

func (s *AuthServiceImpl) checkUserStatus(user *models.User) error {
	switch user.Status {
	case models.UserStatusSuspended:
		return apperrors.ErrUserSuspended
	case models.UserStatusBanned:
		return apperrors.ErrUserBanned
	case models.UserStatusPending:
		if !user.EmailVerified {
			return apperrors.ErrUserNotVerified
		}
	}
	return nil
}

func (s *AuthServiceImpl) sendVerificationEmail(emailAddr, token string) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		if err := s.emailProvider.SendVerification(emailAddr, token); err != nil {
			logger.WithError(err).Warn("failed to send verification email")
		}
	}()
}

func (s *AuthServiceImpl) sendPasswordResetEmail(emailAddr, token string) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		if err := s.emailProvider.SendPasswordReset(emailAddr, token); err != nil {
			logger.WithError(err).Warn("failed to send password reset email")
		}
	}()
}

// generateRandomToken returns 32 bytes of hex-encoded randomness for
// refresh, verification and reset tokens.
func generateRandomToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
