package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durwheel/durwheel/internal/timespan"
)

func TestNew(t *testing.T) {
	cfg := New()

	t.Run("sets default mode", func(t *testing.T) {
		assert.Equal(t, "hourMinuteSecond", cfg.Mode)
	})

	t.Run("sets unit intervals to one", func(t *testing.T) {
		assert.Equal(t, 1, cfg.HourInterval)
		assert.Equal(t, 1, cfg.MinuteInterval)
		assert.Equal(t, 1, cfg.SecondInterval)
	})

	t.Run("sets default rounding", func(t *testing.T) {
		assert.Equal(t, "down", cfg.Rounding)
	})

	t.Run("leaves bounds unset", func(t *testing.T) {
		assert.Nil(t, cfg.MinimumSeconds)
		assert.Nil(t, cfg.MaximumSeconds)
	})

	t.Run("sets default theme", func(t *testing.T) {
		assert.Equal(t, DefaultTheme, cfg.Theme)
	})

	t.Run("sets default API port", func(t *testing.T) {
		assert.Equal(t, DefaultAPIPort, cfg.APIPort)
	})

	t.Run("API disabled by default", func(t *testing.T) {
		assert.False(t, cfg.APIEnabled)
	})

	t.Run("watch enabled by default", func(t *testing.T) {
		assert.True(t, cfg.WatchEnabled)
		assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce)
	})
}

func TestNormalize_Intervals(t *testing.T) {
	tests := []struct {
		name     string
		set      func(*Config)
		check    func(*testing.T, *Config)
	}{
		{
			name: "legal intervals survive",
			set: func(c *Config) {
				c.HourInterval = 6
				c.MinuteInterval = 15
				c.SecondInterval = 30
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 6, c.HourInterval)
				assert.Equal(t, 15, c.MinuteInterval)
				assert.Equal(t, 30, c.SecondInterval)
			},
		},
		{
			name: "non-divisor hour interval resets",
			set:  func(c *Config) { c.HourInterval = 5 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 1, c.HourInterval)
			},
		},
		{
			name: "non-divisor minute interval resets",
			set:  func(c *Config) { c.MinuteInterval = 7 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 1, c.MinuteInterval)
			},
		},
		{
			name: "interval above half the unit resets",
			set:  func(c *Config) { c.SecondInterval = 60 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 1, c.SecondInterval)
			},
		},
		{
			name: "zero and negative intervals reset",
			set: func(c *Config) {
				c.HourInterval = 0
				c.MinuteInterval = -3
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 1, c.HourInterval)
				assert.Equal(t, 1, c.MinuteInterval)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.set(cfg)
			cfg.Normalize()
			tt.check(t, cfg)
		})
	}
}

func TestNormalize_ModeAndRounding(t *testing.T) {
	cfg := New()
	cfg.Mode = "fortnight"
	cfg.Rounding = "sideways"
	cfg.Normalize()

	assert.Equal(t, "hourMinuteSecond", cfg.Mode)
	assert.Equal(t, "down", cfg.Rounding)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "hourMinuteSecond", cfg.Mode)
}

func TestLoad_ParsesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
mode: minuteSecond
minute_interval: 7
second_interval: 15
rounding: up
minimum_seconds: 30
theme: nord
api_enabled: true
api_port: 9000
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "minuteSecond", cfg.Mode)
	assert.Equal(t, 1, cfg.MinuteInterval, "7 does not divide 60")
	assert.Equal(t, 15, cfg.SecondInterval)
	assert.Equal(t, "up", cfg.Rounding)
	require.NotNil(t, cfg.MinimumSeconds)
	assert.Equal(t, 30, *cfg.MinimumSeconds)
	assert.Equal(t, "nord", cfg.Theme)
	assert.True(t, cfg.APIEnabled)
	assert.Equal(t, 9000, cfg.APIPort)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Mode = "hourMinute"
	cfg.MinuteInterval = 5
	require.NoError(t, cfg.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hourMinute", loaded.Mode)
	assert.Equal(t, 5, loaded.MinuteInterval)
}

func TestOptions(t *testing.T) {
	cfg := New()
	cfg.Mode = "hourMinute"
	cfg.Rounding = "up"
	cfg.MinuteInterval = 15
	max := 7200
	cfg.MaximumSeconds = &max

	opts := cfg.Options()
	assert.Equal(t, timespan.ModeHourMinute, opts.Mode)
	assert.Equal(t, timespan.RoundUp, opts.Rounding)
	assert.Equal(t, 15, opts.MinuteInterval)
	require.NotNil(t, opts.Maximum)
	assert.Equal(t, 7200, *opts.Maximum)
	assert.Nil(t, opts.Minimum)
}

func TestEnsureDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "a", "b")
	cfg := &Config{DataDir: dataDir}

	require.NoError(t, cfg.EnsureDataDir())

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
