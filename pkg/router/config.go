package router

import (
	"github.com/Suhaibinator/ERouter/pkg/common"
	"github.com/Suhaibinator/ERouter/pkg/metrics"
	"go.uber.org/zap"
)

// MethodAny is the wildcard method. Routes registered with it match every
// request method, including verbs without a dedicated registration method.
const MethodAny = "ANY"

// RouterConfig defines the global configuration for the router.
type RouterConfig struct {
	Logger        *zap.Logger        // Logger for all router operations
	EnableTraceID bool               // Generate a trace ID per dispatch and include it in logs
	Metrics       *metrics.Collector // Prometheus collector (optional)
	Handlers      []common.Handler   // Global handlers run before every route's own handlers
}

// Default CORS settings applied to fields left at their zero value.
const (
	DefaultAllowOrigin          = "*"
	DefaultAllowMethods         = "*"
	DefaultAllowHeaders         = "*"
	DefaultMaxAge               = 86400
	DefaultOptionsSuccessStatus = 204
)

// CORSConfig defines the router-wide CORS policy.
// Every field is optional; zero values are replaced by the Default* constants
// when the config is passed to Router.CORS.
type CORSConfig struct {
	AllowOrigin          string // Access-Control-Allow-Origin
	AllowMethods         string // Access-Control-Allow-Methods
	AllowHeaders         string // Access-Control-Allow-Headers
	MaxAge               int    // Access-Control-Max-Age in seconds, preflight only
	OptionsSuccessStatus int    // Status returned for preflight requests
}

// DefaultCORSConfig returns a CORS config with every field defaulted.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{}.withDefaults()
}

func (c CORSConfig) withDefaults() CORSConfig {
	if c.AllowOrigin == "" {
		c.AllowOrigin = DefaultAllowOrigin
	}
	if c.AllowMethods == "" {
		c.AllowMethods = DefaultAllowMethods
	}
	if c.AllowHeaders == "" {
		c.AllowHeaders = DefaultAllowHeaders
	}
	if c.MaxAge <= 0 {
		c.MaxAge = DefaultMaxAge
	}
	if c.OptionsSuccessStatus == 0 {
		c.OptionsSuccessStatus = DefaultOptionsSuccessStatus
	}
	return c
}
