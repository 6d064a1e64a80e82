package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"kidcheck/internal/infra"
	"kidcheck/internal/pkg/pgconv"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classifyErr maps low-level postgres errors onto repository error
// kinds so callers never inspect driver errors directly.
func classifyErr(msg string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(msg, err, infra.KindNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}

	return infra.WrapRepoErr(msg, err, infra.KindDBFailure)
}
