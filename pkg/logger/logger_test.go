package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "empty defaults to info", input: "", want: zapcore.InfoLevel},
		{name: "debug", input: "debug", want: zapcore.DebugLevel},
		{name: "upper case", input: "WARN", want: zapcore.WarnLevel},
		{name: "padded", input: " error ", want: zapcore.ErrorLevel},
		{name: "unknown", input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	l, err := New(Options{Level: "debug", JSON: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(Options{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = New(Options{Level: "nope"})
	assert.Error(t, err)
}

func TestSharedLogger(t *testing.T) {
	original := L()
	defer Set(original)

	custom := zap.NewExample()
	Set(custom)
	assert.Same(t, custom, L())

	Set(nil)
	assert.NotNil(t, L())
}

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", CorrelationID(ctx))

	assert.Equal(t, ctx, ContextWithCorrelationID(ctx, ""))

	ctx = ContextWithCorrelationID(ctx, "abc-123")
	assert.Equal(t, "abc-123", CorrelationID(ctx))
	assert.Equal(t, "abc-123", CorrelationField(ctx).String)
}
