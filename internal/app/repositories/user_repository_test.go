package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func intPtr(i int) *int { return &i }

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var userColumns = []string{"user_id", "role_id", "role_name", "role_code", "username", "email", "first_name", "last_name"}

func TestUserRepositoryListIncludesUsersWithoutRole(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users u LEFT JOIN role r ON r.role_id = u.role_id ORDER BY u.user_id")).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(int64(1), int64Ptr(1), strPtr("Administrator"), strPtr("ADMIN"), "admin", strPtr("admin@school.edu"), (*string)(nil), (*string)(nil)).
			AddRow(int64(2), (*int64)(nil), (*string)(nil), (*string)(nil), "alice", (*string)(nil), (*string)(nil), (*string)(nil)))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ADMIN", *users[0].RoleCode)
	assert.Equal(t, "alice", users[1].Username)
	assert.Nil(t, users[1].RoleID)
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.user_id = $1")).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUserRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	user := &models.User{Username: "alice", Password: "$2a$10$hash"}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (role_id,username,password,email,first_name,last_name) VALUES ($1,$2,$3,$4,$5,$6) RETURNING user_id")).
		WithArgs(user.RoleID, "alice", "$2a$10$hash", user.Email, user.FirstName, user.LastName).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(5)))

	id, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestUserRepositoryCreateDuplicateUsername(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(pgxmock.AnyArg(), "alice", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: usernameUniqueConstraint})

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserRepositoryUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	user := &models.User{ID: 3, Username: "bob"}
	mock.ExpectExec(`^UPDATE users SET email = \$1, first_name = \$2, last_name = \$3, role_id = \$4, username = \$5 WHERE user_id = \$6$`).
		WithArgs(user.Email, user.FirstName, user.LastName, user.RoleID, "bob", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Update(context.Background(), user))
}

func TestUserRepositoryUpdateMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &models.User{ID: 9, Username: "ghost", Password: "$2a$10$new"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUserRepositoryGetRoleCode(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT r.role_code FROM users u LEFT JOIN role r")).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"role_code"}).AddRow((*string)(nil)))

	code, err := repo.GetRoleCode(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, code)
}

func TestUserRepositoryDeleteDriverFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	driverErr := errors.New("conn closed")
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE user_id = $1")).
		WithArgs(int64(1)).
		WillReturnError(driverErr)

	err := repo.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, driverErr)
	assert.False(t, errors.Is(err, apperrors.ErrResourceNotFound))
}
