package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.False(t, cfg.Strict)
	assert.False(t, cfg.DevMode)
	assert.True(t, cfg.CELEnabled)
	assert.Equal(t, "render.work", cfg.StreamKey)
	assert.Equal(t, "render.done", cfg.ResultStream)
	assert.Equal(t, "render.done.errors", cfg.ErrorStream())
	assert.Equal(t, time.Second, cfg.BlockTime)
	assert.Equal(t, 8082, cfg.HealthPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.ValidateWorker())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"HBS_STRICT":   "true",
		"HBS_DEV_MODE": "1",
		"CEL_ENABLED":  "false",
		"REDIS_DB":     "4",
		"BLOCK_TIME":   "250ms",
		"LOG_LEVEL":    "debug",
	})
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.True(t, cfg.DevMode)
	assert.False(t, cfg.CELEnabled)
	assert.Equal(t, 4, cfg.RedisDB)
	assert.Equal(t, 250*time.Millisecond, cfg.BlockTime)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFrom_Invalid(t *testing.T) {
	_, err := LoadFrom(map[string]string{"LOG_LEVEL": "chatty"})
	assert.ErrorContains(t, err, "LOG_LEVEL")

	_, err = LoadFrom(map[string]string{"REDIS_DB": "x"})
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidateWorker(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "worker id", mutate: func(c *Config) { c.WorkerID = "" }, want: "WORKER_ID"},
		{name: "redis", mutate: func(c *Config) { c.RedisAddr = "" }, want: "REDIS_ADDR"},
		{name: "block time", mutate: func(c *Config) { c.BlockTime = 0 }, want: "BLOCK_TIME"},
		{name: "retries", mutate: func(c *Config) { c.MaxRetries = -1 }, want: "MAX_RETRIES"},
		{name: "port", mutate: func(c *Config) { c.HealthPort = 70000 }, want: "HEALTH_PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(map[string]string{})
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.ValidateWorker(), tt.want)
		})
	}
}

func TestString_RedactsPassword(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"REDIS_PASS": "hunter2"})
	require.NoError(t, err)
	assert.NotContains(t, cfg.String(), "hunter2")
	assert.Contains(t, cfg.String(), "StreamKey=render.work")
}
