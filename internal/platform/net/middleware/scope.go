package middleware

import (
	"net"
	"net/http"

	"streamdex/internal/platform/logger"
	pnet "streamdex/internal/platform/net"
)

// RequestScope copies the request id and client address onto the context
// so logger.C and pnet getters see them; place after RequestID and RealIP
func RequestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := pnet.RequestID(ctx)
		client := clientAddr(r)

		ctx = pnet.WithRequest(ctx, reqID, client)
		ctx = logger.WithRequest(ctx, reqID, client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientAddr strips the port from RemoteAddr when there is one
func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
