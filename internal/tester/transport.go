package tester

import (
	"fmt"
	"net"
	"time"
	"unicode/utf8"
)

// transport owns the single TCP connection a replay session uses. All
// operations are blocking; each one is bounded by the session timeout,
// the same way a per-operation socket timeout behaves.
type transport struct {
	conn    net.Conn
	timeout time.Duration
	closed  bool
}

func dial(addr string, timeout time.Duration) (*transport, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, &ConnectError{Addr: addr, Err: err}
	}
	return &transport{conn: conn, timeout: timeout}, nil
}

// sendAll writes the whole buffer or fails; there is no partial-write
// success visible to callers.
func (t *transport) sendAll(p []byte) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return fmt.Errorf("failed to arm write deadline: %w", err)
	}
	if _, err := t.conn.Write(p); err != nil {
		return fmt.Errorf("failed to send payload: %w", err)
	}
	return nil
}

// receive performs a single read of at most max bytes and returns the
// result as text. A reply that is not valid UTF-8 is an error to
// surface, never something to pass along silently.
func (t *transport) receive(max int) (string, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return "", fmt.Errorf("failed to arm read deadline: %w", err)
	}
	buf := make([]byte, max)
	n, err := t.conn.Read(buf)
	if err != nil {
		return "", fmt.Errorf("failed to read server response: %w", err)
	}
	if !utf8.Valid(buf[:n]) {
		return "", fmt.Errorf("server response is not valid UTF-8: %q", buf[:n])
	}
	return string(buf[:n]), nil
}

// close is safe to call more than once.
func (t *transport) close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.conn.Close()
}
