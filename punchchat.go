// Package punchchat implements a minimal peer-to-peer text chat over UDP.
//
// Two endpoints each bind a local port and send datagrams straight to the
// other's known address; there is no server, handshake or encryption.
// Lines typed by the operator go out as single datagrams of at most 255
// bytes and lines received from the peer are printed as they arrive.
//
// Example:
//
//	cfg := punchchat.DefaultConfig()
//	cfg.Remote = "203.0.113.7:5001"
//	cfg.Port = 5000
//
//	session, err := punchchat.New(cfg, os.Stdin, os.Stdout, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	if err := session.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package punchchat

import (
	"context"
	"io"
	"net"

	"github.com/dsluijk/PunchChat/input"
	"github.com/dsluijk/PunchChat/transport"
	"github.com/sirupsen/logrus"
)

// Session wires the input source, the datagram channel and the event loop
// for one peer.
type Session struct {
	peer    *net.UDPAddr
	channel *transport.Channel
	source  *input.Source
	display *Display
	loop    *Loop
	logger  *logrus.Entry
}

// New resolves the peer, binds the local port and prepares the loop.
// Nothing is sent until Run is called.
func New(cfg Config, in io.Reader, out io.Writer, logger *logrus.Entry) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	peer, err := transport.ResolvePeer(cfg.Remote)
	if err != nil {
		return nil, err
	}

	channel, err := transport.Bind(uint16(cfg.Port), peer, logger)
	if err != nil {
		return nil, err
	}

	display := NewDisplay(out, cfg.Color)
	source := input.NewSource(in, display.RejectLine, logger)

	loop := NewLoop(source, channel, display, LoopOptions{
		PollInterval: cfg.PollInterval,
		Announcement: cfg.Announce,
	}, logger)

	return &Session{
		peer:    peer,
		channel: channel,
		source:  source,
		display: display,
		loop:    loop,
		logger:  logger.WithField("component", "Session"),
	}, nil
}

// Peer returns the resolved remote address.
func (s *Session) Peer() *net.UDPAddr {
	return s.peer
}

// LocalPort returns the bound local port.
func (s *Session) LocalPort() int {
	return s.channel.LocalPort()
}

// Run announces itself to the peer, prints the banner, starts reading
// input and runs the event loop until a fatal error, end of input or
// cancellation of ctx.
func (s *Session) Run(ctx context.Context) error {
	if err := s.loop.Announce(); err != nil {
		return err
	}
	s.display.Banner(s.LocalPort())
	s.source.Start()

	s.logger.WithFields(logrus.Fields{
		"local_port": s.LocalPort(),
		"peer_addr":  s.peer.String(),
	}).Info("Chat session started")

	return s.loop.Run(ctx)
}

// Close releases the socket. The input goroutine is left blocked on its
// reader; it ends with the process or when the reader is closed.
func (s *Session) Close() error {
	return s.channel.Close()
}
