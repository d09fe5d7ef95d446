// Package input reads operator-typed lines on a dedicated goroutine and
// hands accepted lines to the chat loop through a non-blocking queue.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dsluijk/PunchChat/limits"
	"github.com/dsluijk/PunchChat/queue"
	"github.com/sirupsen/logrus"
)

// ErrInputClosed reports that the line reader stopped. It wraps the read
// failure (io.EOF for end-of-input).
var ErrInputClosed = errors.New("input closed")

// RejectFunc is called from the reader goroutine for every line that is
// dropped instead of being queued.
type RejectFunc func(line []byte, err error)

// Source reads lines from an io.Reader. Lines keep their terminator.
type Source struct {
	reader   *bufio.Reader
	lines    *queue.Queue[[]byte]
	onReject RejectFunc
	logger   *logrus.Entry

	startOnce sync.Once
	done      chan struct{}
}

// NewSource creates a line source over r. onReject may be nil.
func NewSource(r io.Reader, onReject RejectFunc, logger *logrus.Entry) *Source {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Source{
		reader:   bufio.NewReader(r),
		lines:    queue.New[[]byte](),
		onReject: onReject,
		logger:   logger.WithField("component", "InputSource"),
		done:     make(chan struct{}),
	}
}

// Start launches the reader goroutine. Calling it more than once has no
// further effect.
func (s *Source) Start() {
	s.startOnce.Do(func() {
		go s.readLoop()
	})
}

// TryNext returns the oldest queued line without waiting.
//
// It returns (line, true, nil) for a line, (nil, false, nil) when nothing
// is queued, and (nil, false, err) once the reader has stopped and every
// line it read has been consumed; err then wraps ErrInputClosed.
func (s *Source) TryNext() ([]byte, bool, error) {
	return s.lines.TryPop()
}

// Ready signals that TryNext has something to report.
func (s *Source) Ready() <-chan struct{} {
	return s.lines.Ready()
}

// Done is closed when the reader goroutine has exited.
func (s *Source) Done() <-chan struct{} {
	return s.done
}

func (s *Source) readLoop() {
	defer close(s.done)

	for {
		line, err := s.reader.ReadBytes('\n')
		if len(line) > 0 {
			s.accept(line)
		}
		if err != nil {
			s.stop(err)
			return
		}
	}
}

// accept validates one line and queues it or reports the rejection.
func (s *Source) accept(line []byte) {
	if err := limits.ValidateMessage(line); err != nil {
		s.reject(line, err, "Dropped oversized input line")
		return
	}
	if _, err := limits.ValidateText(line); err != nil {
		s.reject(line, err, "Dropped input line that is not valid UTF-8")
		return
	}

	s.lines.Push(line)
}

func (s *Source) reject(line []byte, err error, msg string) {
	s.logger.WithFields(logrus.Fields{
		"line_size": len(line),
		"limit":     limits.MaxMessage,
		"error":     err.Error(),
	}).Warn(msg)
	if s.onReject != nil {
		s.onReject(line, err)
	}
}

func (s *Source) stop(err error) {
	if errors.Is(err, io.EOF) {
		s.logger.Info("End of input reached")
	} else {
		s.logger.WithError(err).Error("Reading input failed")
	}
	s.lines.Close(fmt.Errorf("%w: %w", ErrInputClosed, err))
}
