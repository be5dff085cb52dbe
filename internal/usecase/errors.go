package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func errBadRequest(msg string) error { return NewHTTPError(http.StatusBadRequest, msg) }
func errNotFound(msg string) error   { return NewHTTPError(http.StatusNotFound, msg) }
func errConflict(msg string) error   { return NewHTTPError(http.StatusConflict, msg) }

var (
	errUnauthorized = NewHTTPError(http.StatusUnauthorized, "unauthorized")
	errDB           = NewHTTPError(http.StatusInternalServerError, "db error")
	errInternal     = NewHTTPError(http.StatusInternalServerError, "internal error")
)

// tx内で返したHTTPErrorはそのまま、それ以外はdb error
func passOrDB(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return errDB
}
