package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandler(t *testing.T) {
	handler := NewInterruptHandler(nil, "")
	assert.NotNil(t, handler.writer)
	assert.Equal(t, "Operation", handler.operation)
	assert.False(t, handler.WasInterrupted())
}

func TestHandleInterrupts_ParentCancel(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output, "Import")

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent)

	select {
	case <-ctx.Done():
		t.Fatal("Context should not be canceled initially")
	default:
	}

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("derived context was not canceled")
	}

	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestInterruptMessage(t *testing.T) {
	tests := []struct {
		name        string
		hint        string
		expected    []string
		notExpected []string
	}{
		{
			name:     "with hint",
			hint:     "The previous dataset was kept.",
			expected: []string{"Import interrupted!", "The previous dataset was kept."},
		},
		{
			name:        "without hint",
			expected:    []string{"Import interrupted!"},
			notExpected: []string{"previous dataset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			handler := NewInterruptHandler(&output, "Import").WithHint(tt.hint)

			handler.trigger()
			handler.trigger()

			out := output.String()
			assert.True(t, handler.WasInterrupted())
			assert.Equal(t, 1, strings.Count(out, "Import interrupted!"))
			for _, e := range tt.expected {
				assert.Contains(t, out, e)
			}
			for _, ne := range tt.notExpected {
				assert.NotContains(t, out, ne)
			}
		})
	}
}
