package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	err := NotFound("MATCH_NOT_FOUND", "match 7 not found")
	assert.Equal(t, "[MATCH_NOT_FOUND] match 7 not found", err.Error())

	inner := errors.New("connection reset")
	perr := Persistence("SCORE_WRITE", inner)
	assert.Equal(t, "[SCORE_WRITE] database operation failed: connection reset", perr.Error())
	assert.ErrorIs(t, perr, inner)
}

func TestIsFollowsWrapping(t *testing.T) {
	base := InvalidState("MATCH_NOT_COMPLETED", "match is upcoming")
	wrapped := fmt.Errorf("calculate points: %w", base)

	assert.True(t, Is(wrapped, TypeInvalidState))
	assert.False(t, Is(wrapped, TypeNotFound))
	assert.False(t, Is(errors.New("plain"), TypeInvalidState))
	assert.False(t, Is(nil, TypeInvalidState))
}

func TestTypeString(t *testing.T) {
	tests := map[Type]string{
		TypeNotFound:     "not_found",
		TypeInvalidState: "invalid_state",
		TypeValidation:   "validation",
		TypeConflict:     "conflict",
		TypePersistence:  "persistence",
		Type(99):         "unknown",
	}
	for typ, want := range tests {
		assert.Equal(t, want, typ.String())
	}
}
