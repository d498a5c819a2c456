package pipeline

import (
	"context"
	"net"
	"net/url"
	"time"
)

// HostReachability checks reachability by dialing the feed host, mirroring
// the "is the network up" guard the query entry points run first.
type HostReachability struct {
	addr    string
	timeout time.Duration
}

// NewHostReachability derives the dial target from the feed base URL.
func NewHostReachability(feedBaseURL string, timeout time.Duration) *HostReachability {
	addr := "weather.yahooapis.com:80"
	if u, err := url.Parse(feedBaseURL); err == nil && u.Host != "" {
		host := u.Host
		if u.Port() == "" {
			host = net.JoinHostPort(u.Hostname(), "80")
		}
		addr = host
	}
	return &HostReachability{addr: addr, timeout: timeout}
}

func (h *HostReachability) Reachable(ctx context.Context) bool {
	d := net.Dialer{Timeout: h.timeout}
	conn, err := d.DialContext(ctx, "tcp", h.addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// ReachableFunc adapts a function to the Reachability interface.
type ReachableFunc func(ctx context.Context) bool

func (f ReachableFunc) Reachable(ctx context.Context) bool {
	return f(ctx)
}
