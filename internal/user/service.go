// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/dwellingly-api/internal/archive"
	"github.com/carterperez-dev/dwellingly-api/internal/auth"
	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/policy"
)

type Service struct {
	repo   Repository
	hasher *core.Hasher
}

func NewService(repo Repository, hasher *core.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Create hashes the plaintext password immediately; the plaintext is not
// stored on the entity or anywhere else.
func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var role policy.NullRole
	if req.Role != nil {
		parsed, parseErr := policy.ParseRole(*req.Role)
		if parseErr != nil {
			return nil, fmt.Errorf("create user: %w", core.ErrInvalidInput)
		}
		role = policy.SomeRole(parsed)
	}

	u := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		PasswordHash: passwordHash,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// CheckPassword never returns or logs the plaintext; the comparison is
// constant-time inside the hasher.
func (s *Service) CheckPassword(u *User, plaintext string) (bool, error) {
	return s.hasher.Verify(plaintext, u.PasswordHash)
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Email != nil {
		u.Email = strings.ToLower(*req.Email)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) AssignRole(
	ctx context.Context,
	id string,
	roleValue int16,
) (*User, error) {
	role, err := policy.ParseRole(roleValue)
	if err != nil {
		return nil, fmt.Errorf("assign role: %w", core.ErrInvalidInput)
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Role = policy.SomeRole(role)
	if err := s.repo.SetRole(ctx, id, u.Role); err != nil {
		return nil, err
	}

	return u, nil
}

// ToggleArchive flips the archival state and returns the confirmation
// message for the direction the flip went.
func (s *Service) ToggleArchive(
	ctx context.Context,
	id string,
) (*User, string, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	next, message := archive.Toggle("User", archive.State(u.Archived))
	u.Archived = bool(next)

	if err := s.repo.SetArchived(ctx, id, u.Archived); err != nil {
		return nil, "", err
	}

	return u, message, nil
}

func (s *Service) FindByRole(
	ctx context.Context,
	role policy.Role,
) ([]User, error) {
	return s.repo.FindByRole(ctx, role)
}

func (s *Service) FindRecentByRole(
	ctx context.Context,
	role policy.Role,
	limit int,
) ([]User, error) {
	return s.repo.FindRecentByRole(ctx, role, limit)
}

func (s *Service) SearchByRoleAndName(
	ctx context.Context,
	role policy.Role,
	text string,
) ([]User, error) {
	return s.repo.SearchByRoleAndName(ctx, role, text)
}

func (s *Service) FindUnassigned(ctx context.Context) ([]User, error) {
	return s.repo.FindUnassigned(ctx)
}

// --- auth.UserProvider ---

func (s *Service) FindCredentials(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (s *Service) FindCredentialsByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) TouchLastActive(ctx context.Context, id string) error {
	return s.repo.UpdateLastActive(ctx, id)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		Archived:     u.Archived,
	}
}

var _ auth.UserProvider = (*Service)(nil)
