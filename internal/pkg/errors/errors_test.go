package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "startLocation"})

	assert.Nil(t, ErrInvalidRequest.Details)
	assert.Equal(t, "startLocation", detailed.Details["field"])
	assert.Equal(t, http.StatusBadRequest, detailed.StatusCode)
}

func TestAppError_WrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("gemini: %w", stderrors.New("HTTP 503"))
	err := ErrOracleUnavailable.Wrap(cause)

	assert.ErrorIs(t, err, ErrOracleUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrOracleRateLimited)
	assert.Contains(t, err.Error(), "HTTP 503")
}
