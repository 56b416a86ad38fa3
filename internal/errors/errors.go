package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrTicketNotFound is returned when a ticket is not found.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrForbidden is returned when an authenticated actor lacks ownership or role.
	ErrForbidden = errors.New("access denied")
	// ErrUsernameTaken is returned when registering an already used username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned on a failed login. It carries no detail
	// about which of username or password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidRole is returned when a role value is outside the closed set.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidStatus is returned when a status value is outside the closed set.
	ErrInvalidStatus = errors.New("invalid ticket status")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Handlers translate
// NotFound and Forbidden into flash+redirect before this mapping applies;
// it exists for the JSON fallback paths.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrTicketNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TICKET_NOT_FOUND")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrUsernameTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrInvalidRole:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
