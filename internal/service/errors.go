package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies the failures the service reports to callers.
type Kind int

const (
	KindInvalidTable Kind = iota + 1
	KindInvalidParameter
	KindQueryFailed
	KindResourceUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidTable:
		return "invalid_table"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindQueryFailed:
		return "query_failed"
	case KindResourceUnavailable:
		return "resource_unavailable"
	default:
		return "unknown"
	}
}

// Error is a classified failure with an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Status maps the kind to the HTTP status the handlers answer with.
func (e *Error) Status() int {
	switch e.Kind {
	case KindInvalidTable, KindInvalidParameter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errNotConnected = errors.New("database connection not established")

func InvalidTable() *Error {
	return &Error{Kind: KindInvalidTable, Message: "Tabla no válida"}
}

func InvalidParameter(message string) *Error {
	return &Error{Kind: KindInvalidParameter, Message: message}
}

// QueryFailed keeps the storage message as the visible error text unless a
// prefix is given.
func QueryFailed(prefix string, err error) *Error {
	return &Error{Kind: KindQueryFailed, Message: prefix, Err: err}
}

func Unavailable(message string, err error) *Error {
	return &Error{Kind: KindResourceUnavailable, Message: message, Err: err}
}

// KindOf returns the kind of err, or 0 when err is not a service error.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return 0
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Status()
	}
	return http.StatusInternalServerError
}
