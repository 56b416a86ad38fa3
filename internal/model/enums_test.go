package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "ticketdesk/internal/errors"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"user", "admin"} {
		role, err := ParseRole(valid)
		assert.NoError(t, err)
		assert.True(t, role.Valid())
	}

	for _, invalid := range []string{"", "Admin", "superuser", "USER"} {
		_, err := ParseRole(invalid)
		assert.Equal(t, apperrors.ErrInvalidRole, err, "role %q", invalid)
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"open", "in_progress", "closed"} {
		status, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.True(t, status.Valid())
	}

	for _, invalid := range []string{"", "Open", "in progress", "done"} {
		_, err := ParseStatus(invalid)
		assert.Equal(t, apperrors.ErrInvalidStatus, err, "status %q", invalid)
	}
}
