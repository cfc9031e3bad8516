package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/heartmarshall/arabizi-backend/pkg/ctxutil"
)

// ClientIP returns middleware that stores the caller address in the context.
// With trustProxy the first X-Forwarded-For entry wins over RemoteAddr.
func ClientIP(trustProxy bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := remoteHost(r.RemoteAddr)
			if trustProxy {
				if fwd := forwardedFor(r.Header.Get("X-Forwarded-For")); fwd != "" {
					ip = fwd
				}
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithClientIP(r.Context(), ip)))
		})
	}
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func forwardedFor(header string) string {
	first, _, _ := strings.Cut(header, ",")
	first = strings.TrimSpace(first)
	if net.ParseIP(first) == nil {
		return ""
	}
	return first
}

// clientKey identifies the caller for per-client bookkeeping.
func clientKey(r *http.Request) string {
	if ip, ok := ctxutil.ClientIPFromCtx(r.Context()); ok {
		return ip
	}
	return remoteHost(r.RemoteAddr)
}
