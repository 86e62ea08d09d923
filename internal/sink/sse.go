// internal/sink/sse.go
package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/tamzrod/joystick2crsf/internal/rc"
)

const (
	sseEmitInterval  = 100 * time.Millisecond // 10 Hz regardless of carrier rate
	sseAcceptPoll    = time.Millisecond
	sseHandshakeWait = 2 * time.Second
	sseWriteWait     = 5 * time.Millisecond
	sseRequestMax    = 1024
)

const sseHeaders = "HTTP/1.1 200 OK\r\n" +
	"Content-Type: text/event-stream\r\n" +
	"Cache-Control: no-cache\r\n" +
	"Connection: keep-alive\r\n" +
	"Access-Control-Allow-Origin: *\r\n" +
	"X-Accel-Buffering: no\r\n" +
	"\r\n"

const sseHello = ": joystick2crfs\n\n"

const sseReject = "HTTP/1.1 404 Not Found\r\n" +
	"Content-Length: 0\r\n" +
	"Connection: close\r\n\r\n"

// SSE streams a low-rate JSON view of the channel vector to at most one
// HTTP client. Accept polling and emission both run inline on the tick loop.
type SSE struct {
	ln       *net.TCPListener
	client   net.Conn
	path     string
	nextEmit time.Time
}

// OpenSSE binds the listener. An empty host or "*" binds the wildcard
// address.
func OpenSSE(bindSpec, path string) (*SSE, error) {
	host, port, err := net.SplitHostPort(bindSpec)
	if err != nil {
		return nil, fmt.Errorf("sse: invalid bind %q (use host:port or [ipv6]:port): %w", bindSpec, err)
	}
	if host == "*" {
		host = ""
	}
	ln, err := net.Listen("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, fmt.Errorf("sse: listen: %w", err)
	}
	return &SSE{ln: ln.(*net.TCPListener), path: path}, nil
}

// Poll accepts one pending connection, if any, and runs the HTTP handshake.
// A successful handshake replaces the previous client and rearms the emit
// deadline to now. The short accept deadline keeps the call non-blocking
// from the tick loop's point of view.
func (s *SSE) Poll(now time.Time) bool {
	s.ln.SetDeadline(now.Add(sseAcceptPoll))
	conn, err := s.ln.Accept()
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return false
		}
		log.Printf("sse: accept: %v", err)
		return false
	}

	if err := s.handshake(conn, now); err != nil {
		conn.SetWriteDeadline(now.Add(sseHandshakeWait))
		conn.Write([]byte(sseReject))
		conn.Close()
		return false
	}

	if s.client != nil {
		s.client.Close()
	}
	s.client = conn
	s.nextEmit = now
	log.Printf("sse: client connected")
	return true
}

// handshake reads the request head, validates the GET path, and writes the
// event-stream response header plus the hello comment. The read is bounded
// by a 2 s deadline; one tick's jitter is accepted by contract.
func (s *SSE) handshake(conn net.Conn, now time.Time) error {
	conn.SetReadDeadline(now.Add(sseHandshakeWait))
	defer conn.SetReadDeadline(time.Time{})

	buf := make([]byte, sseRequestMax)
	used := 0
	for used < len(buf) {
		n, err := conn.Read(buf[used:])
		if n > 0 {
			used += n
			if bytes.Contains(buf[:used], []byte("\r\n\r\n")) ||
				bytes.Contains(buf[:used], []byte("\n\n")) {
				break
			}
			continue
		}
		if err != nil {
			break
		}
	}

	req := string(buf[:used])
	if i := strings.IndexAny(req, "\r\n"); i >= 0 {
		req = req[:i]
	}
	if !strings.HasPrefix(req, "GET ") {
		return fmt.Errorf("sse: not a GET request")
	}
	uri := req[4:]
	space := strings.IndexByte(uri, ' ')
	if space < 0 {
		return fmt.Errorf("sse: malformed request line")
	}
	uri = uri[:space]

	if s.path != "" {
		if !strings.HasPrefix(uri, s.path) {
			log.Printf("sse: request for unexpected path %q", uri)
			return fmt.Errorf("sse: path mismatch")
		}
		if rest := uri[len(s.path):]; rest != "" && rest[0] != '?' && rest[0] != '#' {
			log.Printf("sse: request for unexpected path %q", uri)
			return fmt.Errorf("sse: path mismatch")
		}
	}

	conn.SetWriteDeadline(now.Add(sseHandshakeWait))
	defer conn.SetWriteDeadline(time.Time{})
	if _, err := conn.Write([]byte(sseHeaders)); err != nil {
		return fmt.Errorf("sse: write headers: %w", err)
	}
	if _, err := conn.Write([]byte(sseHello)); err != nil {
		return fmt.Errorf("sse: write hello: %w", err)
	}
	return nil
}

type sseEvent struct {
	Channels rc.ChannelVector `json:"channels"`
	Raw      rc.RawVector     `json:"raw"`
}

// Emit sends one data event when a client is attached and the 10 Hz deadline
// has passed. A write failure closes the client and keeps the listener.
func (s *SSE) Emit(ch rc.ChannelVector, raw rc.RawVector, now time.Time) bool {
	if s.client == nil || now.Before(s.nextEmit) {
		return false
	}

	body, err := json.Marshal(sseEvent{Channels: ch, Raw: raw})
	if err != nil {
		return false
	}
	msg := make([]byte, 0, len(body)+8)
	msg = append(msg, "data: "...)
	msg = append(msg, body...)
	msg = append(msg, "\n\n"...)

	s.client.SetWriteDeadline(time.Now().Add(sseWriteWait))
	if _, err := s.client.Write(msg); err != nil {
		log.Printf("sse: client disconnected")
		s.client.Close()
		s.client = nil
		return false
	}
	s.nextEmit = now.Add(sseEmitInterval)
	return true
}

// Close shuts the client and the listener; safe to call twice.
func (s *SSE) Close() error {
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
	if s.ln != nil {
		s.ln.Close()
		s.ln = nil
	}
	return nil
}
