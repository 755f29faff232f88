package core

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the client identity from the request: the host part of
// the transport peer address, or, when a proxy header is configured, the
// first comma-separated token of that header. The header is trusted
// verbatim; see config.Server.ClientIpProxyHeader for the trust boundary.
func (a *App) ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, use it as is
		ip = r.RemoteAddr
	}

	if header := a.Config().Server.ClientIpProxyHeader; header != "" {
		if forwarded := r.Header.Get(header); forwarded != "" {
			// Use the first IP in the list if the header contains multiple
			parts := strings.Split(forwarded, ",")
			ip = strings.TrimSpace(parts[0])
		}
	}

	return ip
}
