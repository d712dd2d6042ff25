package rbac

import (
	"context"
	"errors"
	"testing"

	"go-shiftswap/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	userRoles []UserRoleRow
	rolePerms []RolePermissionRow
	perms     []PermissionRow
	err       error
}

func (f *fakeRepo) GetUserRoles(ctx context.Context, companyID string) ([]UserRoleRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.userRoles, nil
}

func (f *fakeRepo) GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error) {
	return f.rolePerms, nil
}

func (f *fakeRepo) ListPermissions(ctx context.Context) ([]PermissionRow, error) {
	return f.perms, f.err
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)
	return NewService(repo, enforcer, zap.NewNop())
}

func TestRBACService_Enforce(t *testing.T) {
	repo := &fakeRepo{
		userRoles: []UserRoleRow{{UserID: "user-1", RoleID: "role-supervisor"}},
		rolePerms: []RolePermissionRow{
			{RoleID: "role-supervisor", Resource: "dayswap", Action: "approve"},
			{RoleID: "role-supervisor", Resource: "dayswap", Action: "read"},
		},
	}

	t.Run("success", func(t *testing.T) {
		svc := newTestService(t, repo)

		allowed, err := svc.Enforce(EnforceRequest{
			UserID: "user-1", CompanyID: "company-1", Resource: "dayswap", Action: "approve",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("negative missing permission", func(t *testing.T) {
		svc := newTestService(t, repo)

		allowed, err := svc.Enforce(EnforceRequest{
			UserID: "user-1", CompanyID: "company-1", Resource: "dayswap", Action: "create",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		svc := newTestService(t, repo)

		allowed, err := svc.Enforce(EnforceRequest{
			UserID: "user-2", CompanyID: "company-1", Resource: "dayswap", Action: "read",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("negative repository error", func(t *testing.T) {
		svc := newTestService(t, &fakeRepo{err: errors.New("db down")})

		allowed, err := svc.Enforce(EnforceRequest{
			UserID: "user-1", CompanyID: "company-1", Resource: "dayswap", Action: "read",
		})
		assert.Error(t, err)
		assert.False(t, allowed)
	})
}

func TestRBACService_ListPermissions(t *testing.T) {
	svc := newTestService(t, &fakeRepo{perms: []PermissionRow{
		{ID: "p-1", Resource: "dayswap", Action: "read", Label: "View day swap requests", Category: "Day Swap"},
	}})

	perms, err := svc.ListPermissions(context.Background())
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "dayswap", perms[0].Resource)
	assert.Equal(t, "Day Swap", perms[0].Category)
}
