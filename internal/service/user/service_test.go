package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/hrms-backend-go/internal/domain/user"
)

type mockUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]user.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id string, role user.Role) error {
	u, ok := m.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	m.users[id] = u
	return nil
}

func (m *mockUserRepo) Deactivate(_ context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = false
	m.users[id] = u
	return nil
}

func TestUpdateRole(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["u-1"] = user.User{ID: "u-1", Email: "a@example.com", Role: user.RoleEmployee, IsActive: true}
	svc := NewUserService(repo)

	require.NoError(t, svc.UpdateRole(context.Background(), user.UpdateRoleRequest{
		UserID: "u-1",
		Role:   "hr_admin",
	}))
	assert.Equal(t, user.RoleHRAdmin, repo.users["u-1"].Role)

	err := svc.UpdateRole(context.Background(), user.UpdateRoleRequest{UserID: "u-1", Role: "superuser"})
	assert.Error(t, err)
	assert.Equal(t, user.RoleHRAdmin, repo.users["u-1"].Role)
}

func TestDeactivate_RefusesSelf(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["u-1"] = user.User{ID: "u-1", IsActive: true}
	svc := NewUserService(repo)

	err := svc.Deactivate(context.Background(), "u-1", "u-1")

	assert.ErrorIs(t, err, user.ErrCannotDeactivateSelf)
	assert.True(t, repo.users["u-1"].IsActive)
}

func TestDeactivate_OtherUser(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["u-1"] = user.User{ID: "u-1", IsActive: true}
	svc := NewUserService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), "u-1", "admin-1"))
	assert.False(t, repo.users["u-1"].IsActive)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), "missing", "admin-1"), user.ErrUserNotFound)
}
