package transport

import (
	"errors"
	"fmt"
)

// Common errors for the datagram channel
var (
	// ErrChannelClosed indicates the channel has been closed
	ErrChannelClosed = errors.New("channel closed")

	// ErrInvalidPeer indicates the remote address could not be used as a peer
	ErrInvalidPeer = errors.New("invalid peer address")

	// ErrPartialWrite indicates only part of the datagram was written
	ErrPartialWrite = errors.New("partial write")
)

// ChannelError represents an error with additional context
type ChannelError struct {
	Op   string // operation that caused the error
	Addr string // address if relevant
	Err  error  // underlying error
}

func (e *ChannelError) Error() string {
	if e.Addr != "" {
		return fmt.Sprintf("udp %s %s: %v", e.Op, e.Addr, e.Err)
	}
	return fmt.Sprintf("udp %s: %v", e.Op, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}

// newChannelError creates a new ChannelError
func newChannelError(op, addr string, err error) *ChannelError {
	return &ChannelError{
		Op:   op,
		Addr: addr,
		Err:  err,
	}
}
