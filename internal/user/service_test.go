// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/policy"
)

type mockUserRepo struct {
	createFn      func(ctx context.Context, user *User) error
	getByIDFn     func(ctx context.Context, id string) (*User, error)
	getByEmailFn  func(ctx context.Context, email string) (*User, error)
	updateFn      func(ctx context.Context, user *User) error
	setRoleFn     func(ctx context.Context, id string, role policy.NullRole) error
	setArchivedFn func(ctx context.Context, id string, archived bool) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, core.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, core.ErrNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) UpdatePassword(
	_ context.Context,
	_, _ string,
) error {
	return nil
}

func (m *mockUserRepo) UpdateLastActive(_ context.Context, _ string) error {
	return nil
}

func (m *mockUserRepo) SetRole(
	ctx context.Context,
	id string,
	role policy.NullRole,
) error {
	if m.setRoleFn != nil {
		return m.setRoleFn(ctx, id, role)
	}
	return nil
}

func (m *mockUserRepo) SetArchived(
	ctx context.Context,
	id string,
	archived bool,
) error {
	if m.setArchivedFn != nil {
		return m.setArchivedFn(ctx, id, archived)
	}
	return nil
}

func (m *mockUserRepo) FindByRole(
	_ context.Context,
	_ policy.Role,
) ([]User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindRecentByRole(
	_ context.Context,
	_ policy.Role,
	_ int,
) ([]User, error) {
	return nil, nil
}

func (m *mockUserRepo) SearchByRoleAndName(
	_ context.Context,
	_ policy.Role,
	_ string,
) ([]User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindUnassigned(_ context.Context) ([]User, error) {
	return nil, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]User, error) {
	return nil, nil
}

func testUserService(t *testing.T, repo Repository) *Service {
	t.Helper()

	hasher, err := core.NewHasher(
		core.HashParams{Time: 1, Memory: 8 * 1024, Threads: 1},
	)
	require.NoError(t, err)

	return NewService(repo, hasher)
}

func TestCreate_HashesPassword(t *testing.T) {
	var stored *User
	repo := &mockUserRepo{
		createFn: func(_ context.Context, u *User) error {
			stored = u
			return nil
		},
	}
	svc := testUserService(t, repo)

	u, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "New.User@Dwellingly.ORG",
		Password:  "plaintext-password",
		FirstName: "New",
		LastName:  "User",
		Phone:     "555-0100",
	})
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, "new.user@dwellingly.org", stored.Email)
	assert.NotEqual(t, "plaintext-password", stored.PasswordHash)
	assert.False(t, stored.Role.Valid, "role starts unassigned")

	ok, err := svc.CheckPassword(u, "plaintext-password")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckPassword(u, "something-else")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreate_WithRole(t *testing.T) {
	svc := testUserService(t, &mockUserRepo{})

	roleValue := int16(policy.RoleStaff)
	u, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "staff@dwellingly.org",
		Password:  "plaintext-password",
		FirstName: "Staff",
		LastName:  "Member",
		Phone:     "555-0101",
		Role:      &roleValue,
	})
	require.NoError(t, err)

	require.True(t, u.Role.Valid)
	assert.Equal(t, policy.RoleStaff, u.Role.Role)
}

func TestCreate_RejectsUnknownRole(t *testing.T) {
	svc := testUserService(t, &mockUserRepo{})

	badRole := int16(7)
	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "x@dwellingly.org",
		Password:  "plaintext-password",
		FirstName: "X",
		LastName:  "Y",
		Phone:     "555-0102",
		Role:      &badRole,
	})

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestAssignRole(t *testing.T) {
	existing := &User{ID: "user-1", Email: "u@dwellingly.org"}
	var assigned policy.NullRole
	repo := &mockUserRepo{
		getByIDFn: func(_ context.Context, _ string) (*User, error) {
			return existing, nil
		},
		setRoleFn: func(_ context.Context, _ string, role policy.NullRole) error {
			assigned = role
			return nil
		},
	}
	svc := testUserService(t, repo)

	u, err := svc.AssignRole(context.Background(), "user-1", 4)
	require.NoError(t, err)

	require.True(t, u.Role.Valid)
	assert.Equal(t, policy.RoleAdmin, u.Role.Role)
	assert.Equal(t, policy.SomeRole(policy.RoleAdmin), assigned)
}

func TestAssignRole_InvalidValue(t *testing.T) {
	svc := testUserService(t, &mockUserRepo{})

	_, err := svc.AssignRole(context.Background(), "user-1", 1)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestToggleArchive_Messages(t *testing.T) {
	existing := &User{ID: "user-1", Archived: false}
	repo := &mockUserRepo{
		getByIDFn: func(_ context.Context, _ string) (*User, error) {
			return existing, nil
		},
		setArchivedFn: func(_ context.Context, _ string, archived bool) error {
			existing.Archived = archived
			return nil
		},
	}
	svc := testUserService(t, repo)

	u, msg, err := svc.ToggleArchive(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, u.Archived)
	assert.Equal(t, "User archived", msg)

	u, msg, err = svc.ToggleArchive(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, u.Archived)
	assert.Equal(t, "User unarchived", msg)
}

func TestToggleArchive_UnknownUser(t *testing.T) {
	svc := testUserService(t, &mockUserRepo{})

	_, _, err := svc.ToggleArchive(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	existing := &User{
		ID:        "user-1",
		Email:     "old@dwellingly.org",
		FirstName: "Old",
		LastName:  "Name",
		Phone:     "555-0100",
	}
	repo := &mockUserRepo{
		getByIDFn: func(_ context.Context, _ string) (*User, error) {
			return existing, nil
		},
	}
	svc := testUserService(t, repo)

	newFirst := "Fresh"
	u, err := svc.Update(context.Background(), "user-1", UpdateUserRequest{
		FirstName: &newFirst,
	})
	require.NoError(t, err)

	assert.Equal(t, "Fresh", u.FirstName)
	assert.Equal(t, "Name", u.LastName)
	assert.Equal(t, "old@dwellingly.org", u.Email)
}

// The role field renders as its numeric value, or null for users no
// admin has assigned yet.
func TestUserResponse_RoleJSON(t *testing.T) {
	assigned := ToUserResponse(&User{
		ID:   "user-1",
		Role: policy.SomeRole(policy.RolePropertyManager),
	})
	data, err := json.Marshal(assigned)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":2`)

	unassigned := ToUserResponse(&User{ID: "user-2"})
	data, err = json.Marshal(unassigned)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":null`)
}
