package transport

import (
	"fmt"
	"net"
)

// ResolvePeer parses a "host:port" string into the UDP address of the
// remote party. Host names are resolved once; the result is never
// re-resolved for the lifetime of the process.
func ResolvePeer(remote string) (*net.UDPAddr, error) {
	host, port, err := net.SplitHostPort(remote)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPeer, remote, err)
	}
	if host == "" {
		return nil, fmt.Errorf("%w %q: missing host", ErrInvalidPeer, remote)
	}

	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPeer, remote, err)
	}
	if addr.Port == 0 {
		return nil, fmt.Errorf("%w %q: port must be non-zero", ErrInvalidPeer, remote)
	}
	return addr, nil
}
