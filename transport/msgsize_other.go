//go:build !unix && !windows

package transport

func isMessageTooLong(error) bool {
	return false
}
