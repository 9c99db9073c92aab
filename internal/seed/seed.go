// Package seed inserts the default roles and the bootstrap administrator.
package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/auth"
)

// RoleStore is the role persistence seeding needs
type RoleStore interface {
	GetByCode(ctx context.Context, code string) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) (int64, error)
}

// UserStore is the user persistence seeding needs
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (int64, error)
}

// DefaultRoles are created on every start if missing
var DefaultRoles = []models.Role{
	{Name: "Administrator", Code: string(models.RoleAdmin)},
	{Name: "Teacher", Code: string(models.RoleTeacher)},
	{Name: "Student", Code: string(models.RoleStudent)},
}

// Admin describes the optional bootstrap administrator
type Admin struct {
	Username string
	Password string
}

// CreateDefaultData ensures the default roles exist and, when admin.Username is
// set, an ADMIN account with that username. Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, roles RoleStore, users UserStore, admin Admin, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default roles...")
	var finalErr error

	roleIDs := make(map[string]int64, len(DefaultRoles))
	for _, role := range DefaultRoles {
		id, err := ensureRole(ctx, roles, role)
		if err != nil {
			lgr.Error().Err(err).Str("role", role.Code).Msg("Error creating default role")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		roleIDs[role.Code] = id
	}

	if admin.Username == "" {
		return finalErr
	}

	adminRole, ok := roleIDs[string(models.RoleAdmin)]
	if !ok {
		return finalErr
	}

	_, err := users.GetByUsername(ctx, admin.Username)
	switch {
	case err == nil:
		lgr.Debug().Str("username", admin.Username).Msg("Admin user already exists")
		return finalErr
	case !apperrors.Is(err, apperrors.ErrResourceNotFound):
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}

	if admin.Password == "" {
		return errors.Join(finalErr, errors.New("seed admin password is required when an admin username is set"))
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return errors.Join(finalErr, err)
	}

	if _, err := users.Create(ctx, &models.User{RoleID: &adminRole, Username: admin.Username, Password: hash}); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(finalErr, err)
	}
	lgr.Info().Str("username", admin.Username).Msg("Default admin user created")
	return finalErr
}

func ensureRole(ctx context.Context, roles RoleStore, role models.Role) (int64, error) {
	existing, err := roles.GetByCode(ctx, role.Code)
	if err == nil {
		return existing.ID, nil
	}
	if !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return 0, err
	}
	return roles.Create(ctx, &role)
}
