package apperr

import (
	"errors"
	"fmt"
)

// ErrCode classifies errors returned by the services so controllers can map
// them to HTTP statuses without string matching.
type ErrCode string

const (
	ErrValidation        ErrCode = "VALIDATION"
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrConflict          ErrCode = "CONFLICT"
	ErrUnsupportedStatus ErrCode = "UNSUPPORTED_STATUS"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return string(e.code) + ": " + e.msg }
func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Message() string {
	return e.msg
}

func New(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Newf(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

func Validation(msg string) error { return New(ErrValidation, msg) }
func NotFound(msg string) error   { return New(ErrNotFound, msg) }
func Forbidden(msg string) error  { return New(ErrForbidden, msg) }
func Conflict(msg string) error   { return New(ErrConflict, msg) }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Message returns the human readable part of a coded error, or "" for
// anything else.
func Message(err error) string {
	var me interface{ Message() string }
	if errors.As(err, &me) {
		return me.Message()
	}
	return ""
}
