package middleware

import (
	"context"
	"strings"

	"github.com/Suhaibinator/ERouter/pkg/common"
)

// IPSourceType defines the source for client IP addresses
type IPSourceType string

const (
	// IPSourceXForwardedFor uses the leftmost entry of the X-Forwarded-For header
	IPSourceXForwardedFor IPSourceType = "x_forwarded_for"

	// IPSourceXRealIP uses the X-Real-IP header
	IPSourceXRealIP IPSourceType = "x_real_ip"

	// IPSourceCustomHeader uses a custom header specified in the configuration,
	// e.g. CF-Connecting-IP or Fastly-Client-IP on edge platforms
	IPSourceCustomHeader IPSourceType = "custom_header"
)

// IPConfig defines configuration for IP extraction
type IPConfig struct {
	// Source specifies where to extract the client IP from
	Source IPSourceType

	// CustomHeader is the name of the custom header to use when Source is IPSourceCustomHeader
	CustomHeader string
}

// DefaultIPConfig returns the default IP configuration
func DefaultIPConfig() *IPConfig {
	return &IPConfig{
		Source: IPSourceXForwardedFor,
	}
}

// clientIPKey is the key used to store the client IP in the request context
type clientIPKey struct{}

// ClientIP returns the client IP stored by ClientIPMiddleware, or "" if none was stored
func ClientIP(req *common.Request) string {
	if ip, ok := req.Context().Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// ClientIPMiddleware creates a handler that extracts the client IP from the
// request headers and stores it in the request context
func ClientIPMiddleware(config *IPConfig) common.Handler {
	if config == nil {
		config = DefaultIPConfig()
	}

	return func(req *common.Request, res *common.Response, next common.Next) error {
		if ip := extractClientIP(req, config); ip != "" {
			req.SetContext(context.WithValue(req.Context(), clientIPKey{}, ip))
		}
		return next()
	}
}

// extractClientIP extracts the client IP from the request based on the configuration
func extractClientIP(req *common.Request, config *IPConfig) string {
	var ip string

	switch config.Source {
	case IPSourceXRealIP:
		ip = req.Headers.Get("X-Real-IP")
	case IPSourceCustomHeader:
		ip = req.Headers.Get(config.CustomHeader)
	default:
		ip = extractIPFromXForwardedFor(req)
	}

	// Clean up the IP address (remove port if present)
	return cleanIP(strings.TrimSpace(ip))
}

// extractIPFromXForwardedFor extracts the client IP from the X-Forwarded-For header
// The X-Forwarded-For header contains a comma-separated list of IPs, with the leftmost being the original client
func extractIPFromXForwardedFor(req *common.Request) string {
	xff := req.Headers.Get("X-Forwarded-For")
	if xff == "" {
		return ""
	}

	// The leftmost IP is the original client
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// cleanIP removes the port from an IP address if present
func cleanIP(ip string) string {
	// IPv6 addresses with ports are formatted as [IPv6]:port
	if strings.HasPrefix(ip, "[") {
		end := strings.LastIndex(ip, "]")
		if end > 0 && end+1 < len(ip) && ip[end+1] == ':' {
			return ip[:end+1]
		}
		return ip
	}

	// Check if this is an IPv6 address without brackets (contains multiple colons)
	if strings.Count(ip, ":") > 1 {
		// This is likely an IPv6 address without port, return as is
		return ip
	}

	// IPv4 addresses with ports are formatted as IPv4:port
	if end := strings.LastIndex(ip, ":"); end > 0 {
		return ip[:end]
	}

	return ip
}
