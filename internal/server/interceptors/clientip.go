package interceptors

import (
	"context"
	"net"
	"strings"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

const unknownIP = "unknown"

// forwardedHeaders are consulted in order; a list value yields its first (client-most) entry.
var forwardedHeaders = []string{"x-forwarded-for", "x-real-ip"}

// ClientIP reports the caller's address for audit rows and request logs: a proxy header when present,
// else the transport peer, else "unknown".
func ClientIP(ctx context.Context) string {
	if ip := forwardedIP(ctx); ip != "" {
		return ip
	}
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return unknownIP
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func forwardedIP(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, h := range forwardedHeaders {
		for _, v := range md.Get(h) {
			first, _, _ := strings.Cut(v, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	return ""
}
