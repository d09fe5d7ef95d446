// Package limits provides the message size constant and validation
// functions shared by every PunchChat component.
//
// # Message Size
//
// A chat message is at most MaxMessage (255) bytes. Lines typed by the
// operator include their terminator in that count, and the same bound is
// applied to datagrams read from the peer.
//
// Inbound datagrams are read into a buffer of ReceiveBufferSize bytes.
// A read that fills the whole buffer therefore proves the peer sent more
// than MaxMessage bytes, and the datagram is rejected instead of being
// accepted in truncated form.
//
// # Validation Functions
//
//	if err := limits.ValidateMessage(line); err != nil {
//	    // ErrMessageEmpty or ErrMessageTooLarge
//	}
//
//	text, err := limits.ValidateText(payload)
//	if err != nil {
//	    // ErrInvalidUTF8
//	}
//
// All errors wrap the exported sentinels and can be matched with errors.Is.
package limits
