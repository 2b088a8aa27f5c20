// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/policy"
)

type mockTokenRepo struct {
	createFn           func(ctx context.Context, token *RefreshToken) error
	findByHashFn       func(ctx context.Context, hash string) (*RefreshToken, error)
	markAsUsedFn       func(ctx context.Context, id, replacedByID string) error
	revokeByIDFn       func(ctx context.Context, id string) error
	revokeByFamilyFn   func(ctx context.Context, familyID string) error
	revokeAllForUserFn func(ctx context.Context, userID string) error
}

func (m *mockTokenRepo) Create(ctx context.Context, token *RefreshToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}

func (m *mockTokenRepo) FindByHash(
	ctx context.Context,
	hash string,
) (*RefreshToken, error) {
	if m.findByHashFn != nil {
		return m.findByHashFn(ctx, hash)
	}
	return nil, core.ErrNotFound
}

func (m *mockTokenRepo) MarkAsUsed(
	ctx context.Context,
	id, replacedByID string,
) error {
	if m.markAsUsedFn != nil {
		return m.markAsUsedFn(ctx, id, replacedByID)
	}
	return nil
}

func (m *mockTokenRepo) RevokeByID(ctx context.Context, id string) error {
	if m.revokeByIDFn != nil {
		return m.revokeByIDFn(ctx, id)
	}
	return nil
}

func (m *mockTokenRepo) RevokeByFamilyID(
	ctx context.Context,
	familyID string,
) error {
	if m.revokeByFamilyFn != nil {
		return m.revokeByFamilyFn(ctx, familyID)
	}
	return nil
}

func (m *mockTokenRepo) RevokeAllForUser(
	ctx context.Context,
	userID string,
) error {
	if m.revokeAllForUserFn != nil {
		return m.revokeAllForUserFn(ctx, userID)
	}
	return nil
}

func (m *mockTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

type mockUserProvider struct {
	findFn           func(ctx context.Context, email string) (*UserInfo, error)
	findByIDFn       func(ctx context.Context, id string) (*UserInfo, error)
	updatePasswordFn func(ctx context.Context, id, hash string) error
	touched          []string
}

func (m *mockUserProvider) FindCredentials(
	ctx context.Context,
	email string,
) (*UserInfo, error) {
	if m.findFn != nil {
		return m.findFn(ctx, email)
	}
	return nil, core.ErrNotFound
}

func (m *mockUserProvider) FindCredentialsByID(
	ctx context.Context,
	id string,
) (*UserInfo, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, core.ErrNotFound
}

func (m *mockUserProvider) UpdatePassword(
	ctx context.Context,
	id, hash string,
) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, hash)
	}
	return nil
}

func (m *mockUserProvider) TouchLastActive(
	_ context.Context,
	id string,
) error {
	m.touched = append(m.touched, id)
	return nil
}

func testService(
	t *testing.T,
	repo Repository,
	users UserProvider,
) *Service {
	t.Helper()

	hasher, err := core.NewHasher(
		core.HashParams{Time: 1, Memory: 8 * 1024, Threads: 1},
	)
	require.NoError(t, err)

	jwtManager := testJWTManager(t, testJWTConfig())

	return NewService(repo, jwtManager, users, hasher, nil)
}

func credentialedUser(t *testing.T, svc *Service, password string) *UserInfo {
	t.Helper()

	hash, err := svc.hasher.Hash(password)
	require.NoError(t, err)

	return &UserInfo{
		ID:           "user-1",
		Email:        "pm@dwellingly.org",
		FirstName:    "Gray",
		LastName:     "Poplar",
		Role:         policy.SomeRole(policy.RolePropertyManager),
		PasswordHash: hash,
	}
}

func TestLogin_Success(t *testing.T) {
	var stored *RefreshToken
	repo := &mockTokenRepo{
		createFn: func(_ context.Context, token *RefreshToken) error {
			stored = token
			return nil
		},
	}
	users := &mockUserProvider{}
	svc := testService(t, repo, users)

	user := credentialedUser(t, svc, "s3cret-password")
	users.findFn = func(_ context.Context, email string) (*UserInfo, error) {
		require.Equal(t, user.Email, email)
		return user, nil
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, user.Email, resp.User.Email)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", resp.Tokens.TokenType)

	require.NotNil(t, stored, "refresh token must be persisted")
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, core.HashToken(resp.Tokens.RefreshToken), stored.TokenHash)
	assert.Equal(t, []string{user.ID}, users.touched)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := testService(t, &mockTokenRepo{}, &mockUserProvider{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@dwellingly.org",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &mockUserProvider{}
	svc := testService(t, &mockTokenRepo{}, users)

	user := credentialedUser(t, svc, "right-password")
	users.findFn = func(_ context.Context, _ string) (*UserInfo, error) {
		return user, nil
	}

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_ArchivedUser(t *testing.T) {
	users := &mockUserProvider{}
	svc := testService(t, &mockTokenRepo{}, users)

	user := credentialedUser(t, svc, "s3cret-password")
	user.Archived = true
	users.findFn = func(_ context.Context, _ string) (*UserInfo, error) {
		return user, nil
	}

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "s3cret-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	token := "opaque-refresh-token"
	old := &RefreshToken{
		ID:        "token-1",
		UserID:    "user-1",
		TokenHash: core.HashToken(token),
		FamilyID:  "family-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	var markedOld, replacedBy string
	var stored *RefreshToken
	repo := &mockTokenRepo{
		findByHashFn: func(_ context.Context, hash string) (*RefreshToken, error) {
			require.Equal(t, old.TokenHash, hash)
			return old, nil
		},
		createFn: func(_ context.Context, t *RefreshToken) error {
			stored = t
			return nil
		},
		markAsUsedFn: func(_ context.Context, id, replacedByID string) error {
			markedOld, replacedBy = id, replacedByID
			return nil
		},
	}
	users := &mockUserProvider{
		findByIDFn: func(_ context.Context, id string) (*UserInfo, error) {
			return &UserInfo{ID: id, Email: "pm@dwellingly.org"}, nil
		},
	}
	svc := testService(t, repo, users)

	resp, err := svc.Refresh(context.Background(), token)
	require.NoError(t, err)

	assert.NotEqual(t, token, resp.Tokens.RefreshToken)
	require.NotNil(t, stored)
	assert.Equal(t, "family-1", stored.FamilyID, "rotation stays in the family")
	assert.Equal(t, "token-1", markedOld)
	assert.Equal(t, stored.ID, replacedBy)
}

// Presenting an already-spent token is treated as theft: the entire
// family is revoked before the caller is rejected.
func TestRefresh_ReuseRevokesFamily(t *testing.T) {
	token := "stolen-refresh-token"
	spent := &RefreshToken{
		ID:        "token-1",
		UserID:    "user-1",
		TokenHash: core.HashToken(token),
		FamilyID:  "family-1",
		ExpiresAt: time.Now().Add(time.Hour),
		IsUsed:    true,
	}

	var revokedFamily string
	repo := &mockTokenRepo{
		findByHashFn: func(_ context.Context, _ string) (*RefreshToken, error) {
			return spent, nil
		},
		revokeByFamilyFn: func(_ context.Context, familyID string) error {
			revokedFamily = familyID
			return nil
		},
	}
	svc := testService(t, repo, &mockUserProvider{})

	_, err := svc.Refresh(context.Background(), token)

	assert.ErrorIs(t, err, ErrTokenReuse)
	assert.Equal(t, "family-1", revokedFamily)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	token := "old-refresh-token"
	repo := &mockTokenRepo{
		findByHashFn: func(_ context.Context, _ string) (*RefreshToken, error) {
			return &RefreshToken{
				ID:        "token-1",
				UserID:    "user-1",
				TokenHash: core.HashToken(token),
				FamilyID:  "family-1",
				ExpiresAt: time.Now().Add(-time.Hour),
			}, nil
		},
	}
	svc := testService(t, repo, &mockUserProvider{})

	_, err := svc.Refresh(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc := testService(t, &mockTokenRepo{}, &mockUserProvider{})

	_, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestLogout_OtherUsersToken(t *testing.T) {
	token := "their-refresh-token"
	repo := &mockTokenRepo{
		findByHashFn: func(_ context.Context, _ string) (*RefreshToken, error) {
			return &RefreshToken{
				ID:        "token-1",
				UserID:    "user-2",
				TokenHash: core.HashToken(token),
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	svc := testService(t, repo, &mockUserProvider{})

	err := svc.Logout(context.Background(), token, "user-1")
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestLogoutAll_RevokesEveryToken(t *testing.T) {
	var revokedUser string
	repo := &mockTokenRepo{
		revokeAllForUserFn: func(_ context.Context, userID string) error {
			revokedUser = userID
			return nil
		},
	}
	svc := testService(t, repo, &mockUserProvider{})

	require.NoError(t, svc.LogoutAll(context.Background(), "user-1"))
	assert.Equal(t, "user-1", revokedUser)
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	svc := testService(t, &mockTokenRepo{}, &mockUserProvider{})

	err := svc.Logout(context.Background(), "gone", "user-1")
	assert.NoError(t, err)
}

// Unknown and archived accounts yield an empty token with no error so
// the endpoint response is identical for every email.
func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	svc := testService(t, &mockTokenRepo{}, &mockUserProvider{})

	token, err := svc.RequestPasswordReset(
		context.Background(),
		"nobody@dwellingly.org",
	)

	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRequestPasswordReset_IssuesParseableToken(t *testing.T) {
	users := &mockUserProvider{
		findFn: func(_ context.Context, _ string) (*UserInfo, error) {
			return &UserInfo{ID: "user-1", Email: "pm@dwellingly.org"}, nil
		},
	}
	svc := testService(t, &mockTokenRepo{}, users)

	token, err := svc.RequestPasswordReset(
		context.Background(),
		"pm@dwellingly.org",
	)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.jwt.ParseResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	svc := testService(t, &mockTokenRepo{}, &mockUserProvider{})

	err := svc.ResetPassword(context.Background(), "garbage", "new-password")
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}
