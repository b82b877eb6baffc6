package http

import (
	"net"
	"net/http"
	"strconv"
)

// ExtractClientIP extracts the client IP address from the request, stripping
// the port from RemoteAddr when present.
func ExtractClientIP(r *http.Request) string {
	if r.RemoteAddr != "" {
		if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return ip
		}
		return r.RemoteAddr
	}
	return "unknown"
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ParsePagination reads page/limit query parameters with sane bounds.
func ParsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = defaultPageLimit

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return page, limit
}
