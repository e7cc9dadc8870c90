package sqldb

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/bookie/internal/apperror"
)

// translate maps driver errors onto the apperror taxonomy:
//
//	constraint violations → apperror.ErrConflict
//	connection failures   → apperror.ErrUnavailable
//
// Anything else is returned unchanged; callers wrap it with context.
func translate(err error, resource string) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return apperror.ConstraintViolation(resource, "duplicate value")
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return apperror.ConstraintViolation(resource, "referenced row does not exist")
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return apperror.ConstraintViolation(resource, "value rejected by constraint")
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN:
			return apperror.Unavailable(err)
		}
		if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return apperror.ConstraintViolation(resource, "value rejected by constraint")
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return apperror.ConstraintViolation(resource, "duplicate value")
		case "23503": // foreign_key_violation
			return apperror.ConstraintViolation(resource, "referenced row does not exist")
		case "23502", "23514": // not_null_violation, check_violation
			return apperror.ConstraintViolation(resource, "value rejected by constraint")
		}
		if pqErr.Code.Class() == "08" { // connection_exception
			return apperror.Unavailable(err)
		}
		return err
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return apperror.Unavailable(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperror.Unavailable(err)
	}

	return err
}
