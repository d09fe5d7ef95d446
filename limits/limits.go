// Package limits provides centralized message size limits for PunchChat.
// This ensures consistent validation between the input reader and the
// datagram receiver.
package limits

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	// MaxMessage is the largest payload, in bytes, a single chat datagram
	// may carry. Locally typed lines count their line terminator.
	MaxMessage = 255

	// ReceiveBufferSize is one byte larger than MaxMessage so that an
	// oversized datagram can be told apart from a maximum-size one.
	ReceiveBufferSize = MaxMessage + 1
)

var (
	// ErrMessageEmpty indicates an empty message was provided
	ErrMessageEmpty = errors.New("empty message")

	// ErrMessageTooLarge indicates message exceeds maximum size
	ErrMessageTooLarge = errors.New("message too large")

	// ErrInvalidUTF8 indicates a message is not valid UTF-8 text
	ErrInvalidUTF8 = errors.New("invalid UTF-8 sequence")
)

// ValidateMessageSize validates a message against the specified maximum size.
// Returns an error with context including the actual and maximum sizes.
func ValidateMessageSize(message []byte, maxSize int) error {
	if len(message) == 0 {
		return ErrMessageEmpty
	}
	if len(message) > maxSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrMessageTooLarge, len(message), maxSize)
	}
	return nil
}

// ValidateMessage validates a chat message against MaxMessage.
func ValidateMessage(message []byte) error {
	return ValidateMessageSize(message, MaxMessage)
}

// ValidateText checks that a message is well-formed UTF-8 and returns
// it as a string. The error reports the offset of the first bad byte.
func ValidateText(message []byte) (string, error) {
	if utf8.Valid(message) {
		return string(message), nil
	}
	offset := 0
	for offset < len(message) {
		r, size := utf8.DecodeRune(message[offset:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		offset += size
	}
	return "", fmt.Errorf("%w: invalid byte at offset %d", ErrInvalidUTF8, offset)
}
