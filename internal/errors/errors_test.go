package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"ticket not found", ErrTicketNotFound, http.StatusNotFound, "TICKET_NOT_FOUND"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"username taken", ErrUsernameTaken, http.StatusConflict, "USERNAME_TAKEN"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"invalid role", ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
		{"invalid status", ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
		{"unexpected error", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)

			resp := httpErr.ToErrorResponse()
			assert.Equal(t, httpErr.Message, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Code)
		})
	}
}

func TestMapErrorToHTTP_InternalDetailHidden(t *testing.T) {
	// internal failures never leak their text to the client
	httpErr := MapErrorToHTTP(errors.New("dial tcp: connection refused"))
	assert.Equal(t, "internal server error", httpErr.Message)
}
