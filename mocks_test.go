package punchchat

import (
	"bytes"
	"net"
	"sync"

	"github.com/dsluijk/PunchChat/queue"
	"github.com/dsluijk/PunchChat/transport"
)

// fakeSource is a LineSource fed directly by tests.
type fakeSource struct {
	lines *queue.Queue[[]byte]
}

func newFakeSource(lines ...string) *fakeSource {
	s := &fakeSource{lines: queue.New[[]byte]()}
	for _, l := range lines {
		s.push(l)
	}
	return s
}

func (s *fakeSource) push(line string) { s.lines.Push([]byte(line)) }
func (s *fakeSource) close(err error)  { s.lines.Close(err) }

func (s *fakeSource) TryNext() ([]byte, bool, error) { return s.lines.TryPop() }
func (s *fakeSource) Ready() <-chan struct{}         { return s.lines.Ready() }

// fakeTransport records outbound datagrams and serves queued inbound ones.
type fakeTransport struct {
	mu       sync.Mutex
	sent     [][]byte
	sendErr  error
	receives int
	inbound  *queue.Queue[transport.Datagram]
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{inbound: queue.New[transport.Datagram]()}
}

var fakePeer = &net.UDPAddr{IP: net.IPv4(192, 0, 2, 1), Port: 5001}

func (f *fakeTransport) deliver(payload []byte) {
	f.inbound.Push(transport.Datagram{Payload: payload, From: fakePeer})
}

func (f *fakeTransport) fail(err error) { f.inbound.Close(err) }

func (f *fakeTransport) Send(message []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, append([]byte(nil), message...))
	return nil
}

func (f *fakeTransport) TryReceive() (transport.Datagram, bool, error) {
	f.mu.Lock()
	f.receives++
	f.mu.Unlock()
	return f.inbound.TryPop()
}

func (f *fakeTransport) Ready() <-chan struct{} { return f.inbound.Ready() }

func (f *fakeTransport) sentStrings() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	for i, s := range f.sent {
		out[i] = string(s)
	}
	return out
}

func (f *fakeTransport) receiveCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.receives
}

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
