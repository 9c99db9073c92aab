package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/enlistment/internal/config"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

type fakeRoles map[int64]*string

func (f fakeRoles) GetRoleCode(_ context.Context, userID int64) (*string, error) {
	code, ok := f[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return code, nil
}

type failingRoles struct{}

func (failingRoles) GetRoleCode(context.Context, int64) (*string, error) {
	return nil, errors.New("connection reset")
}

func strPtr(s string) *string { return &s }

func newTestAuthorizer(enforced bool) *AuthorizationService {
	roles := fakeRoles{
		1: strPtr("ADMIN"),
		2: strPtr("TEACHER"),
		3: strPtr("student"),
		4: nil,
		5: strPtr("REGISTRAR"),
	}
	return NewAuthorizationService(roles, config.DefaultRoleCapabilities(), enforced)
}

func TestHasCapability(t *testing.T) {
	authz := newTestAuthorizer(true)
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     int64
		capability string
		want       bool
	}{
		{"admin wildcard", 1, CapCoursesWrite, true},
		{"teacher archives sections", 2, CapSectionsArchive, true},
		{"teacher cannot write courses", 2, CapCoursesWrite, false},
		{"role code is case-insensitive", 3, CapEnrollmentsWrite, true},
		{"student cannot write sections", 3, CapSectionsWrite, false},
		{"no role reads", 4, CapUsersRead, true},
		{"no role cannot write", 4, CapRolesWrite, false},
		{"unknown role code", 5, CapEnrollmentsWrite, false},
		{"unknown user", 99, CapEnrollmentsWrite, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authz.HasCapability(ctx, tt.userID, tt.capability)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorizeDisabledEnforcement(t *testing.T) {
	authz := newTestAuthorizer(false)
	assert.NoError(t, authz.Authorize(context.Background(), 4, CapCoursesWrite))
}

func TestAuthorizeDenied(t *testing.T) {
	authz := newTestAuthorizer(true)
	err := authz.Authorize(context.Background(), 3, CapRolesWrite)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAuthorizeLookupFailure(t *testing.T) {
	authz := NewAuthorizationService(failingRoles{}, config.DefaultRoleCapabilities(), true)
	err := authz.Authorize(context.Background(), 1, CapRolesWrite)
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrPermissionDenied))
}

func TestAuthorizeUserChange(t *testing.T) {
	authz := newTestAuthorizer(true)
	ctx := context.Background()

	assert.NoError(t, authz.AuthorizeUserChange(ctx, 4, 4))
	assert.NoError(t, authz.AuthorizeUserChange(ctx, 1, 4))
	assert.ErrorIs(t, authz.AuthorizeUserChange(ctx, 3, 4), apperrors.ErrPermissionDenied)
}

func TestAuthorizeEnrollmentChange(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		enforced   bool
		actorID    int64
		studentIDs []int64
		allowed    bool
	}{
		{"student writes own enrollment", true, 3, []int64{3}, true},
		{"student moves own enrollment", true, 3, []int64{3, 3}, true},
		{"student writes another student's enrollment", true, 3, []int64{6}, false},
		{"student reassigns own enrollment to another student", true, 3, []int64{3, 6}, false},
		{"teacher manages any enrollment", true, 2, []int64{6}, true},
		{"admin manages any enrollment", true, 1, []int64{6, 7}, true},
		{"enforcement off", false, 3, []int64{6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestAuthorizer(tt.enforced).AuthorizeEnrollmentChange(ctx, tt.actorID, tt.studentIDs...)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		})
	}
}
