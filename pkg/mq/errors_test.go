package mq

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldRequeue(t *testing.T) {
	base := errors.New("gateway unavailable")

	testCases := []struct {
		name    string
		err     error
		requeue bool
	}{
		{"plain error", base, false},
		{"temporary", Temporary(base), true},
		{"wrapped temporary", fmt.Errorf("charge: %w", Temporary(base)), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.requeue, shouldRequeue(tc.err))
		})
	}

	assert.ErrorIs(t, Temporary(base), base)
	assert.Equal(t, base.Error(), Temporary(base).Error())
}

func TestCorrelationID(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc")
	assert.Equal(t, "abc", CorrelationID(ctx))

	assert.Empty(t, CorrelationID(WithCorrelationID(context.Background(), "")))
}
