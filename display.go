package punchchat

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dsluijk/PunchChat/limits"
	"github.com/gookit/color"
)

// Display prefixes marking each kind of line shown to the operator.
const (
	OutboundPrefix = ">> "
	InboundPrefix  = "<< "
	WarningPrefix  = "!! "
)

// Display writes chat text for the operator. It is safe for concurrent
// use: the input goroutine reports rejected lines while the loop echoes
// traffic.
type Display struct {
	mu  sync.Mutex
	out io.Writer

	outbound color.Style
	inbound  color.Style
	warning  color.Style
	useColor bool
}

// NewDisplay creates a display writing to out. Prefixes are coloured when
// useColor is set.
func NewDisplay(out io.Writer, useColor bool) *Display {
	return &Display{
		out:      out,
		outbound: color.New(color.FgCyan),
		inbound:  color.New(color.FgGreen, color.OpBold),
		warning:  color.New(color.FgYellow),
		useColor: useColor,
	}
}

// Banner prints the welcome text and the bound port.
func (d *Display) Banner(port int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintln(d.out, "Welcome to PunchChat!")
	fmt.Fprintf(d.out, "We are listening on port %d.\n", port)
}

// Outbound echoes a line that was sent to the peer.
func (d *Display) Outbound(text string) {
	d.line(d.outbound, OutboundPrefix, text)
}

// Inbound shows a line received from the peer.
func (d *Display) Inbound(text string) {
	d.line(d.inbound, InboundPrefix, text)
}

// Warn shows a recoverable problem.
func (d *Display) Warn(text string) {
	d.line(d.warning, WarningPrefix, text)
}

// RejectLine reports a typed line that was not sent.
func (d *Display) RejectLine(line []byte, err error) {
	switch {
	case errors.Is(err, limits.ErrMessageTooLarge):
		d.Warn(fmt.Sprintf("Message to send is too long (%d bytes): %v", len(line), err))
	case errors.Is(err, limits.ErrInvalidUTF8):
		d.Warn(fmt.Sprintf("Message to send is not valid UTF-8 text: %v", err))
	default:
		d.Warn(fmt.Sprintf("Message was not sent: %v", err))
	}
}

func (d *Display) line(style color.Style, prefix, text string) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if d.useColor {
		prefix = style.Render(prefix)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	io.WriteString(d.out, prefix+text)
}
