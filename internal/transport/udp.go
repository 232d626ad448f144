// Package transport sends single UDP datagrams.
package transport

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"
)

const DefaultTimeout = 2 * time.Second

// UDP opens a fresh socket per Send and closes it before returning.
type UDP struct {
	timeout time.Duration
	dialer  net.Dialer
}

func NewUDP(timeout time.Duration) *UDP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &UDP{timeout: timeout}
}

func (u *UDP) Send(ctx context.Context, payload []byte, dst netip.AddrPort) (err error) {
	if !dst.IsValid() {
		return fmt.Errorf("invalid destination %v", dst)
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	conn, err := u.dialer.DialContext(ctx, "udp", dst.String())
	if err != nil {
		return fmt.Errorf("dial %s: %w", dst, err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close socket: %w", closeErr)
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		if err = conn.SetWriteDeadline(deadline); err != nil {
			return fmt.Errorf("set deadline: %w", err)
		}
	}

	n, err := conn.Write(payload)
	if err != nil {
		return fmt.Errorf("write to %s: %w", dst, err)
	}
	if n != len(payload) {
		return fmt.Errorf("short write to %s: %d of %d bytes", dst, n, len(payload))
	}
	return nil
}
