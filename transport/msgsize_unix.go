//go:build unix

package transport

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isMessageTooLong reports whether a read failed because the datagram
// did not fit the buffer.
func isMessageTooLong(err error) bool {
	return errors.Is(err, unix.EMSGSIZE)
}
