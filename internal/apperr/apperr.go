// Package apperr maps failures to the JSON error envelope
// {message: string[], error: string, statusCode: number}.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Problem is the error envelope written to clients. It implements error so a
// translated failure can travel back through the same call chain unchanged.
type Problem struct {
	Message    []string `json:"message"`
	ErrorName  string   `json:"error"`
	StatusCode int      `json:"statusCode"`
}

func (p *Problem) Error() string {
	return fmt.Sprintf("%d %s: %v", p.StatusCode, p.ErrorName, p.Message)
}

// HTTPError is an application-level failure with a fixed status.
type HTTPError struct {
	Status   int
	Messages []string
	Name     string // defaults to the status text
	Err      error  // cause, logged but never sent to the client
}

func (e *HTTPError) Error() string {
	if len(e.Messages) == 0 {
		return http.StatusText(e.Status)
	}
	return e.Messages[0]
}

func (e *HTTPError) Unwrap() error { return e.Err }

func newHTTPError(status int, msgs ...string) *HTTPError {
	return &HTTPError{Status: status, Messages: msgs}
}

func BadRequest(msgs ...string) *HTTPError { return newHTTPError(http.StatusBadRequest, msgs...) }

func NotFound(msgs ...string) *HTTPError { return newHTTPError(http.StatusNotFound, msgs...) }

func PayloadTooLarge(msgs ...string) *HTTPError {
	return newHTTPError(http.StatusRequestEntityTooLarge, msgs...)
}

// FromValidation converts ozzo-validation errors into a 400 with one
// "field: reason" message per field, sorted by field name.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return BadRequest(err.Error())
	}
	keys := make([]string, 0, len(verrs))
	for k := range verrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, flatten(k, verrs[k])...)
	}
	return BadRequest(msgs...)
}

// flatten expands nested errors produced by validation.Each into
// "images.0: ..." style messages.
func flatten(prefix string, err error) []string {
	var nested validation.Errors
	if errors.As(err, &nested) {
		keys := make([]string, 0, len(nested))
		for k := range nested {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, flatten(prefix+"."+k, nested[k])...)
		}
		return out
	}
	return []string{prefix + ": " + err.Error()}
}
