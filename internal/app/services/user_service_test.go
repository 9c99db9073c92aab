package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/app/repositories/memory"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/auth"
	"github.com/yigit/enlistment/internal/pkg/tokenstore"
)

var (
	_ UserStore       = (*memory.Users)(nil)
	_ RoleStore       = (*memory.Roles)(nil)
	_ CourseStore     = (*memory.Courses)(nil)
	_ SubjectStore    = (*memory.Subjects)(nil)
	_ SectionStore    = (*memory.Sections)(nil)
	_ EnrollmentStore = (*memory.Enrollments)(nil)
)

func strPtr(s string) *string { return &s }

func newUserService(t *testing.T) (*UserService, *memory.DB, *auth.JWTService, *tokenstore.MemoryStore) {
	t.Helper()
	db := memory.New()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	store := tokenstore.NewMemoryStore()
	return NewUserService(db.Users(), jwtService, store, zerolog.Nop()), db, jwtService, store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, db, jwtService, _ := newUserService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, &dto.CreateUserRequest{Username: " alice ", Password: "secret1", Email: strPtr("  ")})
	require.NoError(t, err)

	user, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Nil(t, user.Email)
	assert.Empty(t, user.Password)

	hash, err := db.Users().GetPasswordHash(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := jwtService.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.CreateUserRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, "Invalid username or password", apperrors.PublicMessage(err, ""))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.CreateUserRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, &dto.CreateUserRequest{Username: "alice", Password: "secret2"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestChangePassword(t *testing.T) {
	svc, _, _, _ := newUserService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, &dto.CreateUserRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, id, &dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "secret2"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err, "failed change must leave the password untouched")

	require.NoError(t, svc.ChangePassword(ctx, id, &dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}))

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret2"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, 999, &dto.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "secret3"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUpdateIsFullReplace(t *testing.T) {
	svc, _, _, _ := newUserService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, &dto.CreateUserRequest{
		Username:  "alice",
		Password:  "secret1",
		Email:     strPtr("alice@school.edu"),
		FirstName: strPtr("Alice"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, id, &dto.UpdateUserRequest{Username: "alice2", LastName: strPtr("Reyes")}))

	user, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice2", user.Username)
	assert.Nil(t, user.Email)
	assert.Nil(t, user.FirstName)
	assert.Equal(t, "Reyes", *user.LastName)

	// The password survives an update that omits it
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice2", Password: "secret1"})
	assert.NoError(t, err)

	require.NoError(t, svc.Update(ctx, id, &dto.UpdateUserRequest{Username: "alice2", Password: strPtr("secret9")}))
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice2", Password: "secret9"})
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Update(ctx, 999, &dto.UpdateUserRequest{Username: "ghost"}), apperrors.ErrResourceNotFound)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, jwtService, store := newUserService(t)
	ctx := context.Background()

	token, _, err := jwtService.Issue(1)
	require.NoError(t, err)
	claims, err := jwtService.Verify(token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims.ID, claims.ExpiresAt.Time))

	revoked, err := store.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
