package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("chat: %w", Provider(errors.New("status 500")))

	assert.Equal(t, KindProvider, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestIs_MatchesKindAndMessage(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Disabled(nil))

	assert.True(t, errors.Is(err, Disabled(nil)))
	assert.False(t, errors.Is(err, Unconfigured(nil)))
	assert.True(t, errors.Is(err, &Error{Kind: KindConfiguration}))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("redis down")
	err := RateLimit(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, MsgRateLimited, err.Message)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation(nil).HTTPStatus())
	assert.Equal(t, http.StatusTooManyRequests, RateLimit(nil).HTTPStatus())
	assert.Equal(t, http.StatusServiceUnavailable, Disabled(nil).HTTPStatus())
	assert.Equal(t, http.StatusServiceUnavailable, Unconfigured(nil).HTTPStatus())
	assert.Equal(t, http.StatusBadGateway, Provider(nil).HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, New(KindUnknown, "x", nil).HTTPStatus())
}
