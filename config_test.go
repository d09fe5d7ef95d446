package punchchat

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PUNCHCHAT_REMOTE", "127.0.0.1:5001")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5001", cfg.Remote)
	assert.Equal(t, uint(0), cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.PollInterval)
	assert.Equal(t, DefaultAnnouncement, cfg.Announce)
	assert.False(t, cfg.Color)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PUNCHCHAT_REMOTE", "10.0.0.2:6000")
	t.Setenv("PUNCHCHAT_PORT", "5000")
	t.Setenv("PUNCHCHAT_POLL_INTERVAL", "50ms")
	t.Setenv("PUNCHCHAT_ANNOUNCE", "")
	t.Setenv("PUNCHCHAT_COLOR", "true")
	t.Setenv("PUNCHCHAT_LOG_LEVEL", "DEBUG")
	t.Setenv("PUNCHCHAT_LOG_FILE", "/tmp/punchchat.log")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.2:6000", cfg.Remote)
	assert.Equal(t, uint(5000), cfg.Port)
	assert.Equal(t, 50*time.Millisecond, cfg.PollInterval)
	assert.Empty(t, cfg.Announce, "an explicitly empty announcement disables it")
	assert.True(t, cfg.Color)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/punchchat.log", cfg.LogFile)
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	t.Setenv("PUNCHCHAT_PORT", "not-a-port")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.Remote = "127.0.0.1:5001"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults with remote", mutate: func(*Config) {}},
		{name: "missing remote", mutate: func(c *Config) { c.Remote = "" }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "highest port", mutate: func(c *Config) { c.Port = 65535 }},
		{name: "negative poll interval", mutate: func(c *Config) { c.PollInterval = -time.Second }, wantErr: true},
		{name: "polling enabled", mutate: func(c *Config) { c.PollInterval = DefaultPollInterval }},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "announcement disabled", mutate: func(c *Config) { c.Announce = "" }},
		{name: "announcement too long", mutate: func(c *Config) { c.Announce = strings.Repeat("a", 256) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	cfg.LogFile = t.TempDir() + "/chat.log"

	logger, closer, err := NewLogger(cfg)
	require.NoError(t, err)
	defer closer.Close()

	assert.NotEmpty(t, logger.Data["session"])
	assert.True(t, logger.Logger.IsLevelEnabled(logrus.DebugLevel))
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "loud"

	_, _, err := NewLogger(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
