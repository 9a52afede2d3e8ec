package core

import (
	"errors"
	"net/http"
)

// Error taxonomy shared by the membership and voice managers. Handlers
// map each class to its HTTP status via StatusOf.
var (
	// ErrNotFound: the conversation or identity does not exist, or the
	// actor has no visibility into it.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest: a precondition failed, e.g. no friendship relation.
	ErrBadRequest = errors.New("bad request")
	// ErrForbidden: the actor lacks the role the action requires.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict: the action would violate a uniqueness or state
	// invariant, e.g. duplicate add, owner removal.
	ErrConflict = errors.New("conflict")
)

func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
