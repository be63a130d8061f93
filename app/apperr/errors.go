// Package apperr holds the error taxonomy shared by repositories, services and
// the HTTP/gRPC edges. Every failure that reaches a handler is one of four kinds.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrUnknownTable           = Validation("Unknown table")
	ErrReadOnlyQuery          = Validation("Only read-only queries (SELECT/SHOW/EXPLAIN) are allowed")
	ErrEmptyQuery             = Validation("No query provided")
	ErrNoRowsToExport         = Validation("No rows to export")
	ErrInvalidCredentials     = Validation("invalid credentials")
	ErrAuthenticationRequired = Authentication("Authentication required")
	ErrAdminRequired          = Authorization("Access denied. admin privileges required")
	ErrCompanyRequired        = Authorization("Access denied. company privileges required")
)

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// Persistence wraps a driver or connection failure. The underlying message is
// kept so handlers can surface it.
func Persistence(err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	return &Error{Kind: KindPersistence, Message: err.Error(), Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
