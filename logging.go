package punchchat

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewLogger builds the session logger. Logs go to stderr unless a log
// file is configured, keeping stdout for chat text. The returned closer
// releases the log file, if any.
func NewLogger(cfg Config) (*logrus.Entry, io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(logFile)
		closer = logFile
	} else {
		logger.SetOutput(os.Stderr)
	}

	return logger.WithField("session", uuid.NewString()), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
