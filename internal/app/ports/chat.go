package ports

import (
	"context"
	"errors"
	"time"

	"packetirc/internal/app/domain/ircmsg"
)

var (
	ErrNotConnected = errors.New("not connected")
	ErrMalformed    = errors.New("malformed line")

	// ErrPollTimeout means nothing arrived inside the poll window. The
	// session loop treats it as "go check the input queue".
	ErrPollTimeout = errors.New("poll timeout")
)

// ChatPort is the connection manager seen from the session: a single
// registered link to the chat server.
type ChatPort interface {
	// Connect dials, retrying per configuration, and registers the client
	// (PASS/NICK/USER). It reports each failed attempt and returns a
	// *ConnectError-style failure once retries are exhausted.
	Connect(ctx context.Context) error

	// Send serializes and writes one message. It fails when the link is
	// not connected or the encoded line would exceed the wire limit.
	Send(msg ircmsg.Message) error

	// Receive blocks up to timeout for one inbound message. It returns
	// ErrPollTimeout when nothing arrived, io.EOF when the peer closed the
	// stream, and a wrapped ErrMalformed for unparseable lines.
	Receive(timeout time.Duration) (ircmsg.Message, error)

	// StartKeepalive arms the idle-link probe. Called once registration is
	// acknowledged; before that MaybeKeepalive does nothing.
	StartKeepalive()

	// MaybeKeepalive sends a PING if the probe is armed and nothing has
	// been written for the configured keepalive interval. Harmless to call
	// every poll tick.
	MaybeKeepalive()

	// Disconnect sends a graceful QUIT and closes the transport. Calling
	// it twice is a no-op on the second call.
	Disconnect(reason string)

	Connected() bool
}
