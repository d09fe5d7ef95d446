//go:build windows

package transport

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isMessageTooLong reports whether a read failed because the datagram
// did not fit the buffer. Windows returns WSAEMSGSIZE where other
// systems hand back a full buffer.
func isMessageTooLong(err error) bool {
	return errors.Is(err, windows.WSAEMSGSIZE)
}
