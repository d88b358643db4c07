// Package cerr provides common error types, carrying the HTTP status
// code which a domain error should be reported with at the RESTful
// boundary. Use case packages wrap their failure conditions with the
// relevant constructor and the serialization layer unwraps them again
// in order to select a response status code.
package cerr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest marks err as a validation failure, such as a missing
// required field, an inverted booking interval, or an illegal booking
// status transition.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// Authentication marks err as a failure to resolve the caller
// identity, such as a missing or invalid bearer token.
func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

// Authorization marks err as an authorization failure, that is, a
// known caller attempting an operation beyond their role.
func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

// NotFound marks err as a reference to an absent entity.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict marks err as a clash with the stored state, such as an
// overlapping booking or a duplicate unique field.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}
