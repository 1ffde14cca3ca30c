package mq

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldRequeue(t *testing.T) {
	cause := errors.New("database unavailable")

	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "plain error", err: cause, expected: false},
		{name: "temporary error", err: Temporary(cause), expected: true},
		{name: "wrapped temporary error", err: fmt.Errorf("dispatch: %w", Temporary(cause)), expected: true},
		{name: "context cancelled", err: context.Canceled, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, shouldRequeue(tc.err))
			assert.Equal(t, tc.expected, IsTemporary(tc.err))
		})
	}
}

func TestTemporary_UnwrapsCause(t *testing.T) {
	cause := errors.New("shutdown")
	err := Temporary(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "shutdown", err.Error())
}
