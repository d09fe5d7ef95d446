package transport

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/dsluijk/PunchChat/limits"
	"github.com/dsluijk/PunchChat/queue"
	"github.com/sirupsen/logrus"
)

// Datagram is one payload received from the network.
type Datagram struct {
	Payload []byte
	From    net.Addr
}

// Channel owns a bound UDP endpoint and exchanges datagrams with exactly
// one peer. Send and TryReceive never suspend the caller: inbound
// datagrams are collected by a reader goroutine and handed over through
// an unbounded queue.
type Channel struct {
	conn    net.PacketConn
	peer    *net.UDPAddr
	inbound *queue.Queue[Datagram]
	logger  *logrus.Entry

	closed bool
	mu     sync.RWMutex
	wg     sync.WaitGroup
}

// Bind listens on localPort on all interfaces (0 selects an ephemeral
// port) and returns a channel that talks to peer.
func Bind(localPort uint16, peer *net.UDPAddr, logger *logrus.Entry) (*Channel, error) {
	if peer == nil {
		return nil, newChannelError("bind", "", ErrInvalidPeer)
	}

	listenAddr := net.JoinHostPort("", strconv.Itoa(int(localPort)))
	conn, err := net.ListenPacket("udp", listenAddr)
	if err != nil {
		return nil, newChannelError("bind", listenAddr, err)
	}

	return NewChannel(conn, peer, logger), nil
}

// NewChannel wraps an already bound packet connection. The channel takes
// ownership of conn and closes it on Close.
func NewChannel(conn net.PacketConn, peer *net.UDPAddr, logger *logrus.Entry) *Channel {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	c := &Channel{
		conn:    conn,
		peer:    peer,
		inbound: queue.New[Datagram](),
		logger:  logger.WithField("component", "Channel"),
	}

	c.wg.Add(1)
	go c.readLoop()

	c.logger.WithFields(logrus.Fields{
		"local_addr": conn.LocalAddr().String(),
		"peer_addr":  peer.String(),
	}).Info("Bound datagram channel")

	return c
}

// Send transmits message to the peer as a single datagram. There is at
// most one write attempt per call.
func (c *Channel) Send(message []byte) error {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return newChannelError("send", c.peer.String(), ErrChannelClosed)
	}

	if err := limits.ValidateMessage(message); err != nil {
		return newChannelError("send", c.peer.String(), err)
	}

	n, err := c.conn.WriteTo(message, c.peer)
	if err != nil {
		return newChannelError("send", c.peer.String(), err)
	}
	if n != len(message) {
		return newChannelError("send", c.peer.String(),
			fmt.Errorf("%w: %d of %d bytes", ErrPartialWrite, n, len(message)))
	}

	c.logger.WithFields(logrus.Fields{
		"bytes_sent": n,
		"peer_addr":  c.peer.String(),
	}).Debug("Sent datagram")

	return nil
}

// TryReceive returns the next pending datagram without waiting.
//
// It reports (datagram, true, nil) when one was pending and
// (Datagram{}, false, nil) when none is. Any other outcome is a fatal
// transport error; once reported it is reported on every later call.
func (c *Channel) TryReceive() (Datagram, bool, error) {
	return c.inbound.TryPop()
}

// Ready signals that TryReceive has something to report.
func (c *Channel) Ready() <-chan struct{} {
	return c.inbound.Ready()
}

// Peer returns the remote address every datagram is sent to.
func (c *Channel) Peer() *net.UDPAddr {
	return c.peer
}

// LocalAddr returns the bound local address.
func (c *Channel) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// LocalPort returns the bound local port, resolving an ephemeral bind.
func (c *Channel) LocalPort() int {
	if addr, ok := c.conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.Port
	}
	_, port, err := net.SplitHostPort(c.conn.LocalAddr().String())
	if err != nil {
		return 0
	}
	p, _ := strconv.Atoi(port)
	return p
}

// Close releases the socket and stops the reader goroutine.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.conn.Close()
	c.wg.Wait()
	c.inbound.Close(ErrChannelClosed)

	if err != nil {
		return newChannelError("close", c.conn.LocalAddr().String(), err)
	}

	c.logger.WithField("local_addr", c.conn.LocalAddr().String()).Info("Closed datagram channel")
	return nil
}

// readLoop moves datagrams from the socket into the inbound queue until
// the socket fails or is closed.
func (c *Channel) readLoop() {
	defer c.wg.Done()

	buffer := make([]byte, limits.ReceiveBufferSize)
	for {
		n, addr, err := c.conn.ReadFrom(buffer)
		if err != nil {
			if c.handleReadError(err, addr) {
				continue
			}
			return
		}

		if n > limits.MaxMessage {
			c.fail(newChannelError("receive", addrString(addr),
				fmt.Errorf("%w: datagram exceeds %d bytes", limits.ErrMessageTooLarge, limits.MaxMessage)))
			return
		}

		payload := make([]byte, n)
		copy(payload, buffer[:n])
		c.inbound.Push(Datagram{Payload: payload, From: addr})

		c.logger.WithFields(logrus.Fields{
			"data_size":   n,
			"remote_addr": addrString(addr),
		}).Debug("Received datagram")
	}
}

// handleReadError classifies a read failure. Returns true if reading
// should continue.
func (c *Channel) handleReadError(err error, addr net.Addr) bool {
	// A deadline is not a failure; nothing was pending.
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return true
	}

	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed || errors.Is(err, net.ErrClosed) {
		c.inbound.Close(ErrChannelClosed)
		return false
	}

	// Some platforms report an over-long datagram as an error instead of
	// returning a full buffer.
	if isMessageTooLong(err) {
		c.fail(newChannelError("receive", addrString(addr),
			fmt.Errorf("%w: datagram exceeds %d bytes", limits.ErrMessageTooLarge, limits.MaxMessage)))
		return false
	}

	c.fail(newChannelError("receive", addrString(addr), err))
	return false
}

func (c *Channel) fail(err error) {
	c.logger.WithError(err).Error("Datagram channel failed")
	c.inbound.Close(err)
}

func addrString(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	return addr.String()
}
