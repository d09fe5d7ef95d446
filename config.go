package punchchat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dsluijk/PunchChat/limits"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "PUNCHCHAT"

// DefaultAnnouncement is sent to the peer once the socket is bound.
const DefaultAnnouncement = "Client connected!\n"

// ErrInvalidConfig indicates the configuration failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// Config holds everything needed to start a chat session.
type Config struct {
	// Remote is the peer's "host:port".
	Remote string `split_words:"true" validate:"required"`
	// Port is the local UDP port; 0 asks for an ephemeral one.
	Port uint `split_words:"true" default:"0" validate:"lte=65535"`
	// PollInterval switches the loop to fixed-cadence polling when positive.
	PollInterval time.Duration `split_words:"true" default:"0s" validate:"gte=0"`
	// Announce is sent to the peer at startup; empty disables it.
	Announce string `split_words:"true" default:"Client connected!\n"`
	Color    bool   `split_words:"true" default:"false"`
	LogLevel string `split_words:"true" default:"warn" validate:"oneof=panic fatal error warn warning info debug trace"`
	LogFile  string `split_words:"true"`
}

// DefaultConfig returns a configuration with every default applied and
// no remote set.
func DefaultConfig() Config {
	return Config{
		Announce: DefaultAnnouncement,
		LogLevel: "warn",
	}
}

// LoadConfig reads the configuration from PUNCHCHAT_* environment
// variables. A .env file in the working directory is loaded first when
// present; variables already set in the environment win.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	return cfg, nil
}

// Validate checks the configuration. It does not resolve the remote
// address; that happens when the session starts.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Announce != "" {
		if err := limits.ValidateMessage([]byte(c.Announce)); err != nil {
			return fmt.Errorf("%w: announcement: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}
