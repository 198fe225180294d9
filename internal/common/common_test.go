package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("rank must be positive, got %d", -3)

	assert.True(t, IsValidation(err))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "invalid input: rank must be positive, got -3", err.Error())
	assert.False(t, IsValidation(errors.New("boom")))
}

func TestUserError(t *testing.T) {
	inner := errors.New("file missing")
	err := NewUserError("Could not load cutoffs", inner)

	assert.Equal(t, "Could not load cutoffs: file missing", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := NewUserError("No data", nil)
	assert.Equal(t, "No data", bare.Error())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer

	h, err := NewHandler(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)
	slog.New(h).Info("loaded", "rows", 3)
	assert.Contains(t, buf.String(), `"rows":3`)

	_, err = NewHandler(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	prev := slog.Default()
	slog.SetDefault(slog.New(h))
	t.Cleanup(func() { slog.SetDefault(prev) })

	LogError(errors.New("disk full"), "request failed", Fields{"route": "simulate"})

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"msg":"request failed"`)
	assert.Contains(t, out, `"error":"disk full"`)
	assert.Contains(t, out, `"route":"simulate"`)
}
