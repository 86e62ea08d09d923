// internal/sink/udp.go
package sink

import (
	"fmt"
	"net"
)

// UDP sends frames to a fixed datagram peer. The socket stays unconnected so
// ICMP errors from an absent receiver never surface as send failures.
type UDP struct {
	conn  *net.UDPConn
	raddr *net.UDPAddr
}

// OpenUDP resolves the host:port (or [ipv6]:port) target and opens a
// datagram socket of the matching family. Callers treat failure as a
// warning, not a fatal error.
func OpenUDP(target string) (*UDP, error) {
	raddr, err := net.ResolveUDPAddr("udp", target)
	if err != nil {
		return nil, fmt.Errorf("udp: resolve %q (use host:port or [ipv6]:port): %w", target, err)
	}
	network := "udp6"
	if raddr.IP.To4() != nil {
		network = "udp4"
	}
	conn, err := net.ListenUDP(network, nil)
	if err != nil {
		return nil, fmt.Errorf("udp: socket: %w", err)
	}
	return &UDP{conn: conn, raddr: raddr}, nil
}

// RemoteAddr reports the resolved peer address.
func (u *UDP) RemoteAddr() string { return u.raddr.String() }

// Send transmits one frame. Transient conditions drop the packet silently;
// anything else is fatal.
func (u *UDP) Send(frame []byte) (bool, error) {
	if _, err := u.conn.WriteToUDP(frame, u.raddr); err != nil {
		if isTransient(err) {
			return false, nil
		}
		return false, fmt.Errorf("udp: send: %w", err)
	}
	return true, nil
}

// Close releases the socket.
func (u *UDP) Close() error {
	if u.conn == nil {
		return nil
	}
	err := u.conn.Close()
	u.conn = nil
	return err
}
