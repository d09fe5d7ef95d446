// Package transport provides the UDP datagram channel used to talk to the
// single chat peer.
//
// A Channel is bound once, with either an operator-chosen or an ephemeral
// local port, and every datagram it sends goes to the peer fixed at
// construction. No connection is established; the first datagram sent is
// the only sign of life the peer gets.
//
//	peer, err := transport.ResolvePeer("192.0.2.20:5001")
//	if err != nil {
//	    return err
//	}
//	ch, err := transport.Bind(5000, peer, logger)
//	if err != nil {
//	    return err
//	}
//	defer ch.Close()
//
// Send performs exactly one write per call. TryReceive never waits: a
// reader goroutine moves datagrams from the socket into an unbounded
// queue, and Ready signals when TryReceive has something to report.
//
// Datagrams larger than limits.MaxMessage are rejected rather than
// truncated, and every transport failure other than a read deadline is
// reported once and then on every later TryReceive call.
package transport
