package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/logger"
)

// DBTX is the subset of *pgxpool.Pool the repositories use
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// psql builds PostgreSQL statements with $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// toSQL renders a squirrel builder, logging build failures
func toSQL(b sq.Sqlizer, operation string) (string, []interface{}, error) {
	query, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("operation", operation).Msg("Error building SQL query")
		return "", nil, err
	}
	return query, args, nil
}

// execAffecting runs a statement that must touch at least one row
func execAffecting(ctx context.Context, db DBTX, b sq.Sqlizer, operation, entity string) error {
	query, args, err := toSQL(b, operation)
	if err != nil {
		return err
	}

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return translate(err, operation, entity)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(entity + " not found")
	}
	return nil
}
