package punchchat

import (
	"context"
	"fmt"
	"time"

	"github.com/dsluijk/PunchChat/limits"
	"github.com/dsluijk/PunchChat/transport"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is the cadence used when the loop runs in polling
// mode.
const DefaultPollInterval = 50 * time.Millisecond

// LineSource yields operator lines without blocking.
type LineSource interface {
	// TryNext returns the next line, or ok=false when none is queued.
	// A non-nil error means no further lines will ever arrive.
	TryNext() (line []byte, ok bool, err error)
	// Ready signals that TryNext has something to report.
	Ready() <-chan struct{}
}

// DatagramTransport exchanges datagrams with the single peer without
// blocking.
type DatagramTransport interface {
	Send(message []byte) error
	TryReceive() (transport.Datagram, bool, error)
	Ready() <-chan struct{}
}

// LoopOptions tunes the event loop.
type LoopOptions struct {
	// PollInterval, when positive, replaces the readiness wait with a
	// fixed sleep between iterations.
	PollInterval time.Duration
	// Announcement is sent once, by Announce or at the start of Run.
	// Empty disables it.
	Announcement string
}

// Loop interleaves keyboard-to-network and network-to-display traffic.
type Loop struct {
	input   LineSource
	channel DatagramTransport
	display *Display
	opts    LoopOptions
	logger  *logrus.Entry

	announced bool
	sent      uint64
	received  uint64
}

// NewLoop creates an event loop over the given source and transport.
func NewLoop(input LineSource, channel DatagramTransport, display *Display, opts LoopOptions, logger *logrus.Entry) *Loop {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Loop{
		input:   input,
		channel: channel,
		display: display,
		opts:    opts,
		logger:  logger.WithField("component", "EventLoop"),
	}
}

// Announce sends the startup announcement, if one is configured. The
// peer may not be listening yet; delivery is not confirmed. Only the
// first call sends anything.
func (l *Loop) Announce() error {
	if l.opts.Announcement == "" || l.announced {
		return nil
	}
	l.announced = true
	if err := l.channel.Send([]byte(l.opts.Announcement)); err != nil {
		return fmt.Errorf("announce: %w", err)
	}
	l.logger.Debug("Sent startup announcement")
	return nil
}

// Step runs one iteration: at most one outbound line, then at most one
// inbound datagram. It never blocks. Any returned error is fatal.
func (l *Loop) Step() error {
	if err := l.pollInput(); err != nil {
		return err
	}
	return l.pollNetwork()
}

// Run announces the session, unless Announce was already called, and
// then iterates until a fatal error occurs or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Announce(); err != nil {
		return err
	}

	var tick <-chan time.Time
	if l.opts.PollInterval > 0 {
		ticker := time.NewTicker(l.opts.PollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	l.logger.WithFields(logrus.Fields{
		"poll_interval": l.opts.PollInterval.String(),
		"polling":       tick != nil,
	}).Info("Event loop started")

	defer func() {
		l.logger.WithFields(logrus.Fields{
			"sent":     l.sent,
			"received": l.received,
		}).Info("Event loop stopped")
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Step(); err != nil {
			return err
		}
		if err := l.wait(ctx, tick); err != nil {
			return err
		}
	}
}

// wait blocks until there may be work to do. In polling mode that is the
// next tick; otherwise it is whichever source signals first.
func (l *Loop) wait(ctx context.Context, tick <-chan time.Time) error {
	if tick != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			return nil
		}
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.input.Ready():
	case <-l.channel.Ready():
	}
	return nil
}

func (l *Loop) pollInput() error {
	line, ok, err := l.input.TryNext()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := l.channel.Send(line); err != nil {
		return err
	}
	l.sent++
	l.display.Outbound(string(line))
	return nil
}

func (l *Loop) pollNetwork() error {
	datagram, ok, err := l.channel.TryReceive()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if len(datagram.Payload) == 0 {
		l.logger.WithField("remote_addr", addrString(datagram)).Debug("Ignored empty datagram")
		return nil
	}

	text, err := limits.ValidateText(datagram.Payload)
	if err != nil {
		return fmt.Errorf("datagram from %s: %w", addrString(datagram), err)
	}
	l.received++
	l.display.Inbound(text)
	return nil
}

func addrString(d transport.Datagram) string {
	if d.From == nil {
		return "unknown"
	}
	return d.From.String()
}
