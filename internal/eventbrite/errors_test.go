package eventbrite

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   error
	}{
		{
			name:       "unauthorised",
			statusCode: http.StatusUnauthorized,
			expected:   ErrUnauthorised,
		},
		{
			name:       "forbidden",
			statusCode: http.StatusForbidden,
			expected:   ErrForbidden,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			expected:   ErrNotFound,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			expected:   ErrRateLimited,
		},
		{
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			expected:   ErrBadRequest,
		},
		{
			name:       "internal server error",
			statusCode: http.StatusInternalServerError,
			expected:   ErrServerError,
		},
		{
			name:       "bad gateway",
			statusCode: http.StatusBadGateway,
			expected:   ErrServerError,
		},
		{
			name:       "success maps to nil",
			statusCode: http.StatusOK,
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WrapError(tt.statusCode))
		})
	}
}

func TestIsUnauthorised(t *testing.T) {
	assert.True(t, IsUnauthorised(http.StatusUnauthorized))
	assert.False(t, IsUnauthorised(http.StatusForbidden))
	assert.False(t, IsUnauthorised(http.StatusOK))
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(http.StatusTooManyRequests))
	assert.False(t, IsRateLimited(http.StatusOK))
}
