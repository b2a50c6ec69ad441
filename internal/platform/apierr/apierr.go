package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies where in the pipeline a request failed.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindUpstream        Kind = "upstream"
	KindParse           Kind = "parse"
	KindInvalidResponse Kind = "invalid_response"
	KindStorage         Kind = "storage"
)

type Error struct {
	Kind   Kind
	Status int
	Code   string
	Err    error

	// Payload carries the raw provider error body for upstream failures so
	// handlers can echo it back to the caller.
	Payload any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, status int, code string, err error) *Error {
	return &Error{Kind: kind, Status: status, Code: code, Err: err}
}

func Validation(code string, err error) *Error {
	return New(KindValidation, http.StatusBadRequest, code, err)
}

func NotFound(code string, err error) *Error {
	return New(KindNotFound, http.StatusNotFound, code, err)
}

func Upstream(code string, err error, payload any) *Error {
	e := New(KindUpstream, http.StatusInternalServerError, code, err)
	e.Payload = payload
	return e
}

func Parse(code string, err error) *Error {
	return New(KindParse, http.StatusInternalServerError, code, err)
}

func InvalidResponse(code string, err error) *Error {
	return New(KindInvalidResponse, http.StatusInternalServerError, code, err)
}

func Storage(code string, err error) *Error {
	return New(KindStorage, http.StatusInternalServerError, code, err)
}

// From unwraps err into an *Error, or nil if err does not carry one.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	e := From(err)
	return e != nil && e.Kind == kind
}
