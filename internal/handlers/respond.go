package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"herovault/internal/apperr"
)

const (
	uuidExpected = "Validation failed (uuid is expected)"
	invalidJSON  = "Invalid JSON body"
)

type responder struct {
	logger *zap.SugaredLogger
	errs   *apperr.Chain
}

func (rw *responder) json(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// error translates err and writes the error envelope.
func (rw *responder) error(w http.ResponseWriter, r *http.Request, err error) {
	p := rw.errs.Translate(err)
	fields := []any{
		"method", r.Method,
		"uri", r.RequestURI,
		"status", p.StatusCode,
		"request_id", chimw.GetReqID(r.Context()),
		"error", err,
	}
	var he *apperr.HTTPError
	if errors.As(err, &he) && he.Err != nil {
		fields = append(fields, "cause", he.Err)
	}
	if p.StatusCode >= http.StatusInternalServerError {
		rw.logger.Errorw("request failed", fields...)
	} else {
		rw.logger.Warnw("request rejected", fields...)
	}
	rw.json(w, p.StatusCode, p)
}

// pathID returns the {id} URL parameter if it is a valid UUID.
func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", apperr.BadRequest(uuidExpected)
	}
	return id, nil
}

// decodeJSON reads the request body into v. The decoder message is kept
// for the log only.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		he := apperr.BadRequest(invalidJSON)
		he.Err = err
		return he
	}
	return nil
}

// recoverer turns a panic into a 500 with the error envelope.
func (rw *responder) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			rw.logger.Errorw("panic recovered", "panic", rvr, "stack", string(debug.Stack()))
			rw.error(w, r, fmt.Errorf("panic: %v", rvr))
		}()
		next.ServeHTTP(w, r)
	})
}
