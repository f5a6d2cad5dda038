package errors

import (
	"context"
	"database/sql/driver"
	stderrors "errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE values and classes that map onto the taxonomy.
const (
	pgInsufficientPrivilege = "42501"
	pgUniqueViolation       = "23505"
	pgForeignKeyViolation   = "23503"
	pgClassConnection       = "08"
	pgClassOperatorAction   = "57P"
)

// Classify maps an error returned by the storage layer to an *AppError.
// AppErrors pass through unchanged; nil stays nil. notFound is returned for
// missing rows so callers can keep entity-specific messages.
func Classify(err error, notFound *AppError) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	if notFound == nil {
		notFound = ErrNotFound
	}

	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(ErrConflict, err)
	case stderrors.Is(err, gorm.ErrForeignKeyViolated):
		return Wrap(ErrReferenced, err)
	case stderrors.Is(err, context.DeadlineExceeded),
		stderrors.Is(err, context.Canceled),
		stderrors.Is(err, driver.ErrBadConn):
		return Wrap(ErrTransient, err)
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgInsufficientPrivilege:
			return Wrap(ErrForbidden, err)
		case pgErr.Code == pgUniqueViolation:
			return Wrap(ErrConflict, err)
		case pgErr.Code == pgForeignKeyViolation:
			return Wrap(ErrReferenced, err)
		case strings.HasPrefix(pgErr.Code, pgClassConnection),
			strings.HasPrefix(pgErr.Code, pgClassOperatorAction):
			return Wrap(ErrTransient, err)
		}
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return Wrap(ErrTransient, err)
	}

	return Wrap(ErrInternalServer, err)
}

// KindOf returns the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
