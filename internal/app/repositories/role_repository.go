package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/yigit/enlistment/internal/app/models"
)

const roleEntity = "Role"

var roleColumns = []string{"role_id", "role_name", "role_code"}

// RoleRepository handles database operations for roles
type RoleRepository struct {
	db DBTX
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db DBTX) *RoleRepository {
	return &RoleRepository{db: db}
}

// List retrieves all roles
func (r *RoleRepository) List(ctx context.Context) ([]models.Role, error) {
	query, args, err := toSQL(psql.Select(roleColumns...).From("role").OrderBy("role_id"), "role.list")
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "role.list", roleEntity)
	}
	defer rows.Close()

	roles := make([]models.Role, 0)
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Code); err != nil {
			return nil, translate(err, "role.list", roleEntity)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "role.list", roleEntity)
	}

	return roles, nil
}

// GetByID retrieves a role by ID
func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	return r.getOne(ctx, sq.Eq{"role_id": id}, "role.get")
}

// GetByCode retrieves a role by its code
func (r *RoleRepository) GetByCode(ctx context.Context, code string) (*models.Role, error) {
	return r.getOne(ctx, sq.Eq{"role_code": code}, "role.get_by_code")
}

func (r *RoleRepository) getOne(ctx context.Context, where sq.Eq, operation string) (*models.Role, error) {
	query, args, err := toSQL(psql.Select(roleColumns...).From("role").Where(where), operation)
	if err != nil {
		return nil, err
	}

	var role models.Role
	if err := r.db.QueryRow(ctx, query, args...).Scan(&role.ID, &role.Name, &role.Code); err != nil {
		return nil, translate(err, operation, roleEntity)
	}
	return &role, nil
}

// Create inserts a role and returns its ID
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) (int64, error) {
	query, args, err := toSQL(psql.Insert("role").
		Columns("role_name", "role_code").
		Values(role.Name, role.Code).
		Suffix("RETURNING role_id"), "role.create")
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, translate(err, "role.create", roleEntity)
	}
	return id, nil
}

// Update replaces every column of a role
func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	return execAffecting(ctx, r.db, psql.Update("role").
		Set("role_name", role.Name).
		Set("role_code", role.Code).
		Where(sq.Eq{"role_id": role.ID}), "role.update", roleEntity)
}

// Delete removes a role
func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, psql.Delete("role").Where(sq.Eq{"role_id": id}), "role.delete", roleEntity)
}
