// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/policy"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenReuse         = errors.New("token reuse detected")
)

// UserInfo is the credential view of a user: just enough to authenticate
// and mint tokens, nothing more.
type UserInfo struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Role         policy.NullRole
	PasswordHash string
	Archived     bool
}

type UserProvider interface {
	FindCredentials(ctx context.Context, email string) (*UserInfo, error)
	FindCredentialsByID(ctx context.Context, id string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	TouchLastActive(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	jwt    *JWTManager
	users  UserProvider
	hasher *core.Hasher
	redis  *redis.Client
}

func NewService(
	repo Repository,
	jwtManager *JWTManager,
	users UserProvider,
	hasher *core.Hasher,
	redisClient *redis.Client,
) *Service {
	return &Service{
		repo:   repo,
		jwt:    jwtManager,
		users:  users,
		hasher: hasher,
		redis:  redisClient,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	user, err := s.users.FindCredentials(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = s.hasher.VerifyTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := s.hasher.VerifyTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || user.Archived {
		return nil, ErrInvalidCredentials
	}

	//nolint:errcheck // best-effort activity tracking
	_ = s.users.TouchLastActive(ctx, user.ID)

	return s.createLoginResponse(ctx, user, "", nil)
}

func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (*LoginResponse, error) {
	tokenHash := core.HashToken(refreshToken)

	storedToken, err := s.repo.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	if storedToken.IsUsed {
		//nolint:errcheck // security revocation continues regardless
		_ = s.repo.RevokeByFamilyID(ctx, storedToken.FamilyID)
		return nil, ErrTokenReuse
	}

	if !storedToken.IsValid() {
		if storedToken.IsRevoked() {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
		}
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenExpired)
	}

	user, err := s.users.FindCredentialsByID(ctx, storedToken.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.Archived {
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
	}

	return s.createLoginResponse(
		ctx,
		user,
		storedToken.FamilyID,
		&storedToken.ID,
	)
}

func (s *Service) Logout(
	ctx context.Context,
	refreshToken, userID string,
) error {
	tokenHash := core.HashToken(refreshToken)

	storedToken, err := s.repo.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find token: %w", err)
	}

	if storedToken.UserID != userID {
		return fmt.Errorf("logout: %w", core.ErrForbidden)
	}

	if err := s.repo.RevokeByID(ctx, storedToken.ID); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	if err := s.repo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke all tokens: %w", err)
	}

	return nil
}

// RequestPasswordReset issues a short-lived reset token for the account,
// or an empty token when no such account exists. Callers respond
// identically either way so the endpoint cannot be used for enumeration.
func (s *Service) RequestPasswordReset(
	ctx context.Context,
	email string,
) (string, error) {
	user, err := s.users.FindCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if user.Archived {
		return "", nil
	}

	token, err := s.jwt.CreateResetToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("create reset token: %w", err)
	}

	return token, nil
}

// ResetPassword consumes a reset token. An expired token is treated the
// same as an unknown one; each token works exactly once, enforced by a
// redis marker that lives as long as the token could.
func (s *Service) ResetPassword(
	ctx context.Context,
	token, newPassword string,
) error {
	claims, err := s.jwt.ParseResetToken(token)
	if err != nil {
		if errors.Is(err, core.ErrTokenExpired) ||
			errors.Is(err, core.ErrTokenInvalid) {
			return fmt.Errorf("reset password: %w", core.ErrTokenInvalid)
		}
		return fmt.Errorf("parse reset token: %w", err)
	}

	used, err := s.markResetTokenUsed(ctx, claims.TokenID)
	if err != nil {
		return fmt.Errorf("check reset token: %w", err)
	}
	if used {
		return fmt.Errorf("reset password: %w", core.ErrTokenInvalid)
	}

	user, err := s.users.FindCredentialsByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("reset password: %w", core.ErrTokenInvalid)
		}
		return fmt.Errorf("get user: %w", err)
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	//nolint:errcheck // best-effort: a stale session is revoked on next refresh
	_ = s.repo.RevokeAllForUser(ctx, user.ID)

	return nil
}

func (s *Service) markResetTokenUsed(
	ctx context.Context,
	tokenID string,
) (bool, error) {
	if tokenID == "" {
		return true, nil
	}

	key := "reset_used:" + tokenID
	set, err := s.redis.SetNX(ctx, key, "1", s.jwt.ResetTokenTTL()).Result()
	if err != nil {
		return false, err
	}

	return !set, nil
}

func (s *Service) createLoginResponse(
	ctx context.Context,
	user *UserInfo,
	familyID string,
	oldTokenID *string,
) (*LoginResponse, error) {
	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshData, err := s.jwt.CreateRefreshToken(user.ID, familyID)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	newTokenID := uuid.New().String()

	refreshTokenEntity := &RefreshToken{
		ID:        newTokenID,
		UserID:    user.ID,
		TokenHash: refreshData.Hash,
		FamilyID:  refreshData.FamilyID,
		ExpiresAt: refreshData.ExpiresAt,
	}

	if err := s.repo.Create(ctx, refreshTokenEntity); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	if oldTokenID != nil {
		//nolint:errcheck // best-effort token chain tracking
		_ = s.repo.MarkAsUsed(ctx, *oldTokenID, newTokenID)
	}

	return &LoginResponse{
		User: SessionUser{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      user.Role,
		},
		Tokens: TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshData.Token,
			TokenType:    "Bearer",
			ExpiresIn:    int(s.jwt.AccessTokenTTL() / time.Second),
		},
	}, nil
}
