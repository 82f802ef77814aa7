package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durwheel/durwheel/internal/testutil"
)

func TestStartStop(t *testing.T) {
	path := testutil.CreateTempFile(t, testutil.ValidConfigYAML())

	w := New(path, 10*time.Millisecond)
	assert.False(t, w.IsRunning())

	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())

	t.Run("second start is a no-op", func(t *testing.T) {
		assert.NoError(t, w.Start())
		assert.True(t, w.IsRunning())
	})

	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())

	t.Run("second stop is a no-op", func(t *testing.T) {
		assert.NoError(t, w.Stop())
	})
}

func TestIsConfigFile(t *testing.T) {
	w := New("/some/dir/config.yaml", time.Millisecond)

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"exact path", "/some/dir/config.yaml", true},
		{"same name after atomic replace", "/some/dir/.tmp/config.yaml", true},
		{"unrelated file", "/some/dir/history.db", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.isConfigFile(tt.path))
		})
	}
}
