package svcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr *ServiceError
		wantOk  bool
	}{
		{
			name:    "nil input",
			err:     nil,
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "regular error",
			err:     errors.New("x"),
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "direct ServiceError",
			err:     NewInvalidArgumentError("FET_1000", "invalid parameters", nil),
			wantErr: NewInvalidArgumentError("FET_1000", "invalid parameters", nil),
			wantOk:  true,
		},
		{
			name:    "wrapped ServiceError",
			err:     fmt.Errorf("wrap: %w", NewInternalError("AGG_9000", nil)),
			wantErr: NewInternalError("AGG_9000", nil),
			wantOk:  true,
		},
		{
			name:    "wrapped unauthenticated ServiceError",
			err:     fmt.Errorf("fetch page 3: %w", NewUnauthenticatedError("FET_1001", "token refresh failed", nil)),
			wantErr: NewUnauthenticatedError("FET_1001", "token refresh failed", nil),
			wantOk:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, gotOk := AsServiceError(tt.err)

			assert.Equal(t, tt.wantOk, gotOk, "AsServiceError() ok value mismatch")

			if tt.wantErr == nil {
				assert.Nil(t, gotErr, "AsServiceError() should return nil error")
			} else {
				require.NotNil(t, gotErr, "AsServiceError() should return non-nil error")
				assert.Equal(t, tt.wantErr.Category, gotErr.Category, "Category mismatch")
				assert.Equal(t, tt.wantErr.Code, gotErr.Code, "Code mismatch")
				assert.Equal(t, tt.wantErr.Message, gotErr.Message, "Message mismatch")
			}
		})
	}
}

func TestServiceError_IsRetryable(t *testing.T) {
	assert.True(t, NewRateLimitedError("FET_1002", "rate limited", nil).IsRetryable())
	assert.True(t, NewUnavailableError("FET_9000", "remote unavailable", nil).IsRetryable())
	assert.False(t, NewInvalidArgumentError("FET_1000", "bad campus", nil).IsRetryable())
	assert.False(t, NewUnauthenticatedError("FET_1001", "auth failed", nil).IsRetryable())
	assert.False(t, NewInternalErrorUndefined(errors.New("boom")).IsRetryable())
}
