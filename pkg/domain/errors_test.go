package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlowError_IsMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("call site: %w", NewFlowError(KindInvalidOutput, "explainRecommendationFlow", errors.New("field \"explanation\": required")))

	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.NotErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, KindInvalidOutput, KindOf(err))
	assert.Contains(t, err.Error(), `flow "explainRecommendationFlow": invalid output`)
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("boom")))
}

func TestNewOutcome(t *testing.T) {
	ok := NewOutcome("f", &Result{Flow: "f", InvocationID: "id", Output: map[string]any{"a": 1}}, nil, nil)
	assert.True(t, ok.OK)
	assert.Nil(t, ok.Error)
	assert.Equal(t, "id", ok.InvocationID)

	failed := NewOutcome("f", nil, NewFlowError(KindUnknownFlow, "f", nil), nil)
	assert.False(t, failed.OK)
	assert.Nil(t, failed.Output)
	assert.Equal(t, KindUnknownFlow, failed.Error.Kind)

	opaque := NewOutcome("f", nil, errors.New("boom"), nil)
	assert.Equal(t, KindGenerationFailed, opaque.Error.Kind)
}
