package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyMatchesSentinels(t *testing.T) {
	wrapped := fmt.Errorf("create appointment: %w", MissingField("date"))

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "create appointment: date is required", wrapped.Error())

	var ve *ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "date", ve.Field)
}

func TestRemoteServiceErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Remote("groq", 0, cause)

	assert.True(t, errors.Is(err, ErrRemoteService))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "groq request failed: connection refused", err.Error())
	assert.Equal(t, `groq returned status 401: bad key`, Remote("groq", 401, errors.New("bad key")).Error())
}

func TestIsDomain(t *testing.T) {
	assert.True(t, IsDomain(NotFound("order", "ORD-1")))
	assert.True(t, IsDomain(Duplicate("user", "email", "a@b.c")))
	assert.False(t, IsDomain(errors.New("dial tcp: i/o timeout")))
	assert.False(t, IsDomain(Remote("deepgram", 500, errors.New("boom"))))
}
