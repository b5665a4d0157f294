// Package dberr turns driver-specific database errors into a single tagged
// error value that carries the vendor code and the constraint metadata.
package dberr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Kind is the constraint class of a persistence failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindForeignKey
	KindUnique
	KindNotFound
	KindValueTooLong
	KindRelatedMissing
	KindConstraint
)

func (k Kind) String() string {
	switch k {
	case KindForeignKey:
		return "foreign_key"
	case KindUnique:
		return "unique"
	case KindNotFound:
		return "not_found"
	case KindValueTooLong:
		return "value_too_long"
	case KindRelatedMissing:
		return "related_missing"
	case KindConstraint:
		return "constraint"
	default:
		return "unknown"
	}
}

// Error is a classified persistence error.
type Error struct {
	Kind       Kind
	Code       string   // vendor code: SQLSTATE for postgres, extended result code for sqlite
	Constraint string   // constraint or index name, if the driver reported one
	Fields     []string // offending columns, if known
	Message    string   // raw driver message
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds the error returned when a target row does not exist.
func NotFound() *Error {
	return &Error{Kind: KindNotFound, Message: gorm.ErrRecordNotFound.Error(), Err: gorm.ErrRecordNotFound}
}

// ForeignKey builds a foreign-key violation detected by the application
// rather than by the database, e.g. linking an image id that does not exist.
func ForeignKey(constraint string, missing []string) *Error {
	return &Error{
		Kind:       KindForeignKey,
		Constraint: constraint,
		Message:    fmt.Sprintf("foreign key %s: missing %s", constraint, strings.Join(missing, ", ")),
	}
}

// Is reports whether err is a classified error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Classify wraps err into *Error. Nil stays nil, already classified errors
// are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Message: err.Error(), Err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPostgres(pgErr, err)
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return fromSQLite(liteErr, err)
	}
	return &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
}

var pgKeyRe = regexp.MustCompile(`Key \(([^)]+)\)=`)

func fromPostgres(pgErr *pgconn.PgError, err error) *Error {
	e := &Error{
		Code:       pgErr.Code,
		Constraint: pgErr.ConstraintName,
		Message:    pgErr.Message,
		Err:        err,
	}
	switch pgErr.Code {
	case "23503": // foreign_key_violation
		e.Kind = KindForeignKey
	case "23505": // unique_violation
		e.Kind = KindUnique
		if m := pgKeyRe.FindStringSubmatch(pgErr.Detail); m != nil {
			e.Fields = splitColumns(m[1])
		}
	case "22001": // string_data_right_truncation
		e.Kind = KindValueTooLong
	case "P0002": // no_data_found
		e.Kind = KindRelatedMissing
	case "23000", "23502", "23514", "23P01":
		e.Kind = KindConstraint
	default:
		e.Kind = KindUnknown
	}
	if len(e.Fields) == 0 && pgErr.ColumnName != "" {
		e.Fields = []string{pgErr.ColumnName}
	}
	return e
}

var sqliteUniqueRe = regexp.MustCompile(`UNIQUE constraint failed: ([^()]+)`)

func fromSQLite(liteErr *sqlite.Error, err error) *Error {
	code := liteErr.Code()
	msg := liteErr.Error()
	e := &Error{Code: fmt.Sprint(code), Message: msg, Err: err}
	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
		code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "FOREIGN KEY constraint failed"):
		e.Kind = KindForeignKey
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
		code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "UNIQUE constraint failed"):
		e.Kind = KindUnique
		if m := sqliteUniqueRe.FindStringSubmatch(msg); m != nil {
			e.Fields = splitColumns(m[1])
		}
	case code&0xff == sqlite3.SQLITE_TOOBIG:
		e.Kind = KindValueTooLong
	case code&0xff == sqlite3.SQLITE_CONSTRAINT:
		e.Kind = KindConstraint
	default:
		e.Kind = KindUnknown
	}
	return e
}

// splitColumns turns "superheroes.nickname, superheroes.real_name" or
// "nickname, real_name" into bare column names.
func splitColumns(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if i := strings.LastIndex(p, "."); i >= 0 {
			p = p[i+1:]
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
