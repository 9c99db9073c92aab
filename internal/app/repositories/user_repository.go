package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/dberrors"
)

const (
	userEntity              = "User"
	usernameUniqueConstraint = "users_username_key"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// userSelect reads users with their role; users without a role are included
func userSelect() sq.SelectBuilder {
	return psql.Select(
		"u.user_id",
		"u.role_id",
		"r.role_name",
		"r.role_code",
		"u.username",
		"u.email",
		"u.first_name",
		"u.last_name",
	).From("users u").LeftJoin("role r ON r.role_id = u.role_id")
}

func scanUser(row interface{ Scan(dest ...interface{}) error }, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.RoleID,
		&user.RoleName,
		&user.RoleCode,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
	)
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query, args, err := toSQL(userSelect().OrderBy("u.user_id"), "user.list")
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "user.list", userEntity)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, translate(err, "user.list", userEntity)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "user.list", userEntity)
	}

	return users, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := toSQL(userSelect().Where(sq.Eq{"u.user_id": id}), "user.get")
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := scanUser(r.db.QueryRow(ctx, query, args...), &user); err != nil {
		return nil, translate(err, "user.get", userEntity)
	}
	return &user, nil
}

// GetByUsername retrieves a user with its password hash, for login
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query, args, err := toSQL(psql.Select("user_id", "username", "password").
		From("users").
		Where(sq.Eq{"username": username}), "user.get_by_username")
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := r.db.QueryRow(ctx, query, args...).Scan(&user.ID, &user.Username, &user.Password); err != nil {
		return nil, translate(err, "user.get_by_username", userEntity)
	}
	return &user, nil
}

// GetPasswordHash returns the stored hash of a user
func (r *UserRepository) GetPasswordHash(ctx context.Context, id int64) (string, error) {
	query, args, err := toSQL(psql.Select("password").From("users").Where(sq.Eq{"user_id": id}), "user.get_password")
	if err != nil {
		return "", err
	}

	var hash string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&hash); err != nil {
		return "", translate(err, "user.get_password", userEntity)
	}
	return hash, nil
}

// GetRoleCode returns the role code of a user, or nil when the user has no role
func (r *UserRepository) GetRoleCode(ctx context.Context, id int64) (*string, error) {
	query, args, err := toSQL(psql.Select("r.role_code").
		From("users u").
		LeftJoin("role r ON r.role_id = u.role_id").
		Where(sq.Eq{"u.user_id": id}), "user.get_role_code")
	if err != nil {
		return nil, err
	}

	var code *string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&code); err != nil {
		return nil, translate(err, "user.get_role_code", userEntity)
	}
	return code, nil
}

// Create inserts a user whose Password is already hashed and returns its ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query, args, err := toSQL(psql.Insert("users").
		Columns("role_id", "username", "password", "email", "first_name", "last_name").
		Values(user.RoleID, user.Username, user.Password, user.Email, user.FirstName, user.LastName).
		Suffix("RETURNING user_id"), "user.create")
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, usernameUniqueConstraint) {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
		return 0, translate(err, "user.create", userEntity)
	}
	return id, nil
}

// Update replaces the profile columns of a user. The password column is
// only written when user.Password holds a new hash.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	values := map[string]interface{}{
		"role_id":    user.RoleID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}
	if user.Password != "" {
		values["password"] = user.Password
	}

	query, args, err := toSQL(psql.Update("users").
		SetMap(values).
		Where(sq.Eq{"user_id": user.ID}), "user.update")
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usernameUniqueConstraint) {
			return apperrors.ErrUsernameAlreadyExists
		}
		return translate(err, "user.update", userEntity)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return execAffecting(ctx, r.db, psql.Update("users").
		Set("password", hash).
		Where(sq.Eq{"user_id": id}), "user.update_password", userEntity)
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, psql.Delete("users").Where(sq.Eq{"user_id": id}), "user.delete", userEntity)
}
