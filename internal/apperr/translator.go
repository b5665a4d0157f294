package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"herovault/internal/dberr"
)

const (
	persistenceErrorName = "DatabaseError"
	unexpectedMessage    = "An unexpected error occurred"
	internalMessage      = "Internal server error"
)

// Translator converts an error into a Problem. ok=false means the error is
// not of the kind the translator handles and the next one should be tried.
type Translator interface {
	Translate(err error) (p *Problem, ok bool)
}

// PersistenceTranslator handles classified database errors.
type PersistenceTranslator struct {
	// FieldNames maps constraint/index names to human field names.
	FieldNames map[string]string
	// HideInternal replaces raw driver messages of unrecognized errors.
	HideInternal bool
}

func NewPersistenceTranslator(fieldNames map[string]string, hideInternal bool) *PersistenceTranslator {
	return &PersistenceTranslator{FieldNames: fieldNames, HideInternal: hideInternal}
}

func (t *PersistenceTranslator) Translate(err error) (*Problem, bool) {
	var e *dberr.Error
	if !errors.As(err, &e) {
		return nil, false
	}
	status, msg := t.mapError(e)
	return &Problem{Message: []string{msg}, ErrorName: persistenceErrorName, StatusCode: status}, true
}

func (t *PersistenceTranslator) mapError(e *dberr.Error) (int, string) {
	switch e.Kind {
	case dberr.KindForeignKey:
		return http.StatusBadRequest,
			fmt.Sprintf("Foreign key constraint failed: %s does not reference an existing record", t.constraintField(e))
	case dberr.KindUnique:
		return http.StatusConflict, fmt.Sprintf("Unique constraint failed on: %s", t.targetFields(e))
	case dberr.KindNotFound:
		return http.StatusNotFound, "Record not found"
	case dberr.KindValueTooLong:
		return http.StatusBadRequest, "The provided value for the column is too long for the column's type."
	case dberr.KindRelatedMissing:
		return http.StatusNotFound, "The record searched for in the where condition does not exist."
	case dberr.KindConstraint:
		return http.StatusBadRequest, "A constraint failed on the database."
	default:
		if t.HideInternal {
			return http.StatusInternalServerError, internalMessage
		}
		return http.StatusInternalServerError, e.Error()
	}
}

func (t *PersistenceTranslator) constraintField(e *dberr.Error) string {
	if e.Constraint != "" {
		if name, ok := t.FieldNames[e.Constraint]; ok {
			return name
		}
		return e.Constraint
	}
	if len(e.Fields) > 0 {
		return e.Fields[0]
	}
	return "unknown field"
}

func (t *PersistenceTranslator) targetFields(e *dberr.Error) string {
	if len(e.Fields) > 0 {
		return strings.Join(e.Fields, ", ")
	}
	if name, ok := t.FieldNames[e.Constraint]; ok && e.Constraint != "" {
		return name
	}
	return "unknown fields"
}

// GenericTranslator is the fallback for every non-persistence error.
type GenericTranslator struct{}

func (GenericTranslator) Translate(err error) (*Problem, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		msgs := he.Messages
		if len(msgs) == 0 {
			msgs = []string{unexpectedMessage}
		}
		name := he.Name
		if name == "" {
			name = http.StatusText(he.Status)
		}
		return &Problem{Message: msgs, ErrorName: name, StatusCode: he.Status}, true
	}
	return &Problem{
		Message:    []string{unexpectedMessage},
		ErrorName:  http.StatusText(http.StatusInternalServerError),
		StatusCode: http.StatusInternalServerError,
	}, true
}

// Chain tries translators in order, the most specific first.
type Chain struct {
	translators []Translator
}

func NewChain(translators ...Translator) *Chain {
	return &Chain{translators: translators}
}

// Translate returns the Problem for err. An error that already is a Problem
// is returned as-is.
func (c *Chain) Translate(err error) *Problem {
	var p *Problem
	if errors.As(err, &p) {
		return p
	}
	for _, t := range c.translators {
		if p, ok := t.Translate(err); ok {
			return p
		}
	}
	p, _ = GenericTranslator{}.Translate(err)
	return p
}
