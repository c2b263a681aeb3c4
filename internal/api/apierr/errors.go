package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/services/auth"
	"github.com/mcoot/mahjong-scoreboard/internal/services/scoreboard"
)

// APIError is the JSON body of every error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidPlayer      = "INVALID_PLAYER"
	CodeInvalidSetting     = "INVALID_SETTING"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodePasswordTooLong    = "PASSWORD_TOO_LONG"
	CodeAlreadyInitialized = "ALREADY_INITIALIZED"
	CodeNotInitialized     = "NOT_INITIALIZED"
	CodeWrongPassword      = "WRONG_PASSWORD"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.apiError)
}

// Status returns the HTTP status err will be reported with
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Anything unrecognised is
// reported as a generic internal error so store details never reach clients.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}
	var tooShort *auth.PasswordTooShortError
	if errors.As(err, &tooShort) {
		return &httpError{http.StatusBadRequest, APIError{CodePasswordTooShort, tooShort.Error()}}
	}

	switch {
	// Input errors
	case errors.Is(err, scoreboard.ErrNameRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "player name is required"}}
	case errors.Is(err, model.ErrInvalidPlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, "invalid player data"}}
	case errors.Is(err, model.ErrInvalidSetting):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSetting, "invalid settings data"}}
	case errors.Is(err, auth.ErrPasswordTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordTooShort, "password too short"}}
	case errors.Is(err, auth.ErrPasswordTooLong):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordTooLong, "password must be at most 72 bytes"}}
	case errors.Is(err, auth.ErrAlreadyInitialized):
		return &httpError{http.StatusBadRequest, APIError{CodeAlreadyInitialized, "system already initialized"}}

	// Auth errors
	case errors.Is(err, auth.ErrNotInitialized):
		return &httpError{http.StatusUnauthorized, APIError{CodeNotInitialized, "system not initialized"}}
	case errors.Is(err, auth.ErrWrongPassword):
		return &httpError{http.StatusUnauthorized, APIError{CodeWrongPassword, "wrong password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "invalid or expired token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "authentication required"}}
}

// NewNotFoundError creates a not found error
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "resource not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "internal server error"}}
}
