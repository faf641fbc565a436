package lib

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/labstack/echo/v4"
)

// ClientAddress derives the caller's network address: the first hop of a
// forwarded-for header when present, else the transport peer address.
// IPv4-mapped-IPv6 notation is reduced to plain IPv4 so the same client
// resolves to the same identity regardless of listener socket family.
func ClientAddress(r *http.Request) string {
	address := ""
	if xff := r.Header.Get(echo.HeaderXForwardedFor); xff != "" {
		address = strings.TrimSpace(strings.Split(xff, ",")[0])
	} else {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		address = host
	}
	if parsed, err := netip.ParseAddr(address); err == nil && parsed.Is4In6() {
		address = parsed.Unmap().String()
	}
	return address
}
