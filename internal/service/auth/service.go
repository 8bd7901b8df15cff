package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/workforcehq/hrms-backend-go/internal/domain/auth"
	"github.com/workforcehq/hrms-backend-go/internal/domain/user"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/jwt"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/oauth"
)

// AuthServiceImpl handles password and Google OAuth login, refresh token
// rotation and logout. Refresh tokens are stored hashed so a database leak
// never yields usable tokens.
type AuthServiceImpl struct {
	userRepo   user.UserRepository
	refreshes  auth.RefreshTokenRepository
	jwtService jwt.Service
	google     oauth.GoogleService
}

func NewAuthService(
	userRepo user.UserRepository,
	refreshes auth.RefreshTokenRepository,
	jwtService jwt.Service,
	google oauth.GoogleService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		refreshes:  refreshes,
		jwtService: jwtService,
		google:     google,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same error either way so login probing learns nothing.
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if u.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountDeactivated
	}

	return s.issueTokens(ctx, u)
}

// LoginWithGoogle implements auth.AuthService. The account must already
// exist and be linked by email or provider ID; login never provisions users.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.LoginResponse, error) {
	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	googleUser, err := s.google.FetchUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByOAuth(ctx, "google", googleUser.GoogleID)
	if err != nil {
		u, err = s.userRepo.GetByEmail(ctx, googleUser.Email)
		if err != nil {
			return auth.LoginResponse{}, user.ErrUserNotFound
		}
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountDeactivated
	}

	return s.issueTokens(ctx, u)
}

// Refresh implements auth.AuthService. The presented token is rotated: the
// old row is revoked and a fresh pair is issued.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	hash := hashToken(refreshToken)

	stored, err := s.refreshes.GetByHash(ctx, hash)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if stored.RevokedAt != nil {
		return auth.LoginResponse{}, auth.ErrRefreshTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return auth.LoginResponse{}, auth.ErrTokenExpired
	}

	u, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountDeactivated
	}

	if err := s.refreshes.Revoke(ctx, hash); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokens(ctx, u)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := s.refreshes.Revoke(ctx, hashToken(refreshToken))
	if err != nil && !errors.Is(err, auth.ErrInvalidToken) {
		return err
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.LoginResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshes.Store(ctx, auth.RefreshToken{
		UserID:    u.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Unix(refreshExp, 0),
	}); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.LoginResponse{
		TokenPair: auth.TokenPair{
			AccessToken:      accessToken,
			AccessExpiresAt:  accessExp,
			RefreshToken:     refreshToken,
			RefreshExpiresAt: refreshExp,
		},
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Role:       string(u.Role),
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
