package irc

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"packetirc/internal/app/ports"
)

// transport frames the link as whole text lines. Two implementations: a
// plain TCP stream (the normal packet-radio path) and IRC-over-WebSocket
// for servers that only expose a websocket listener.
type transport interface {
	// ReadLine returns one line without its terminator. On an expired
	// deadline it returns ports.ErrPollTimeout and keeps any partial data for
	// the next call.
	ReadLine(deadline time.Time) (string, error)
	// WriteLine writes one line plus terminator and reports bytes written.
	WriteLine(line string) (int, error)
	Close() error
	RemoteAddr() string
}

type tcpTransport struct {
	conn    net.Conn
	reader  *bufio.Reader
	partial strings.Builder
}

func dialTCP(addr string, timeout time.Duration) (transport, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	return &tcpTransport{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (t *tcpTransport) ReadLine(deadline time.Time) (string, error) {
	if err := t.conn.SetReadDeadline(deadline); err != nil {
		return "", err
	}

	s, err := t.reader.ReadString('\n')
	t.partial.WriteString(s)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return "", ports.ErrPollTimeout
		}
		return "", err
	}

	line := t.partial.String()
	t.partial.Reset()
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *tcpTransport) WriteLine(line string) (int, error) {
	return t.conn.Write([]byte(line + "\r\n"))
}

func (t *tcpTransport) Close() error {
	return t.conn.Close()
}

func (t *tcpTransport) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}

// wsTransport pumps frames through an internal reader goroutine: gorilla
// connections do not survive an expired read deadline, so polling has to
// happen against a channel instead.
type wsTransport struct {
	ws      *websocket.Conn
	lines   chan wsRead
	lastErr error
}

type wsRead struct {
	line string
	err  error
}

func dialWS(url string, timeout time.Duration) (transport, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	ws, resp, err := dialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	t := &wsTransport{ws: ws, lines: make(chan wsRead, 64)}
	go t.readLoop()
	return t, nil
}

func (t *wsTransport) readLoop() {
	for {
		_, data, err := t.ws.ReadMessage()
		if err != nil {
			t.lines <- wsRead{err: err}
			return
		}
		// a single frame may carry several lines
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimRight(line, "\r"); line != "" {
				t.lines <- wsRead{line: line}
			}
		}
	}
}

func (t *wsTransport) ReadLine(deadline time.Time) (string, error) {
	if t.lastErr != nil {
		return "", t.lastErr
	}

	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	select {
	case r := <-t.lines:
		if r.err != nil {
			t.lastErr = r.err
			return "", r.err
		}
		return r.line, nil
	case <-timer.C:
		return "", ports.ErrPollTimeout
	}
}

func (t *wsTransport) WriteLine(line string) (int, error) {
	if err := t.ws.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
		return 0, err
	}
	return len(line) + 2, nil
}

func (t *wsTransport) Close() error {
	return t.ws.Close()
}

func (t *wsTransport) RemoteAddr() string {
	return t.ws.RemoteAddr().String()
}
