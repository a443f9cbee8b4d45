package apperror

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/lib/pq"
)

// Kind is the closed set of failure classes an operation can end in.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

const (
	MsgBadRequest    = "bad request"
	MsgNotFound      = "not found"
	MsgConflict      = "already exists"
	MsgInternalError = "Internal Server Error"
)

// Postgres SQLSTATE codes the classifier understands.
const (
	foreignKeyViolationCode  = "23503"
	uniqueViolationCode      = "23505"
	notNullViolationCode     = "23502"
	invalidTextRepresentCode = "22P02"
	numericOutOfRangeCode    = "22003"
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is an application error carrying everything needed to build a response.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Status() int {
	return e.Kind.Status()
}

func BadRequest(details map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: MsgBadRequest, Details: details}
}

// BadRequestField is a shortcut for a validation error on a single field.
func BadRequestField(field, message string) *Error {
	return BadRequest(map[string]string{field: message})
}

func NotFound() *Error {
	return &Error{Kind: KindNotFound, Message: MsgNotFound}
}

func Conflict() *Error {
	return &Error{Kind: KindConflict, Message: MsgConflict}
}

func (e *Error) withCause(cause error) *Error {
	e.cause = cause
	return e
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternalError, cause: cause}
}

// Classify reduces any error returned by an operation to an *Error.
// Explicit application errors win, then Postgres constraint and type errors,
// then missing rows. Anything else is internal.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case foreignKeyViolationCode:
			return NotFound().withCause(err)
		case invalidTextRepresentCode, notNullViolationCode, numericOutOfRangeCode:
			return BadRequest(nil).withCause(err)
		case uniqueViolationCode:
			return Conflict().withCause(err)
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return NotFound().withCause(err)
	}

	return Internal(err)
}
