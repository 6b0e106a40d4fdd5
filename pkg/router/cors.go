package router

import (
	"strconv"

	"github.com/Suhaibinator/ERouter/pkg/common"
	"go.uber.org/zap"
)

// CORS response header names.
const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderMaxAge       = "Access-Control-Max-Age"
)

// corsPolicy holds a defaulted CORSConfig with its header values pre-computed.
type corsPolicy struct {
	config CORSConfig
	maxAge string
}

func newCORSPolicy(config CORSConfig) *corsPolicy {
	config = config.withDefaults()
	return &corsPolicy{
		config: config,
		maxAge: strconv.Itoa(config.MaxAge),
	}
}

// CORS enables CORS handling for every route, registered before or after
// this call. OPTIONS requests are answered as preflights without routing,
// and the Access-Control-Allow-* headers are added to all other responses
// produced by a matched route.
// Calling CORS again replaces the previous policy.
func (r *Router) CORS(config CORSConfig) *Router {
	if r.cors != nil {
		r.logger.Warn("CORS already enabled, replacing configuration")
	}
	r.cors = newCORSPolicy(config)
	r.logger.Debug("CORS enabled",
		zap.String("allow_origin", r.cors.config.AllowOrigin),
		zap.String("allow_methods", r.cors.config.AllowMethods),
		zap.String("allow_headers", r.cors.config.AllowHeaders),
		zap.Int("max_age", r.cors.config.MaxAge),
	)
	return r
}

// CORSPolicy returns the effective CORS configuration and whether CORS is enabled.
func (r *Router) CORSPolicy() (CORSConfig, bool) {
	if r.cors == nil {
		return CORSConfig{}, false
	}
	return r.cors.config, true
}

// preflight builds the response to a CORS preflight request.
func (p *corsPolicy) preflight() *common.Response {
	res := common.NewResponse()
	res.Status = p.config.OptionsSuccessStatus
	res.Headers.Set(HeaderAllowOrigin, p.config.AllowOrigin)
	res.Headers.Set(HeaderAllowMethods, p.config.AllowMethods)
	res.Headers.Set(HeaderAllowHeaders, p.config.AllowHeaders)
	res.Headers.Set(HeaderMaxAge, p.maxAge)
	return res
}

// merge adds the Access-Control-Allow-* headers to res, keeping any value a
// handler already set.
func (p *corsPolicy) merge(res *common.Response) {
	setDefault(res.Headers, HeaderAllowOrigin, p.config.AllowOrigin)
	setDefault(res.Headers, HeaderAllowMethods, p.config.AllowMethods)
	setDefault(res.Headers, HeaderAllowHeaders, p.config.AllowHeaders)
}

func setDefault(h common.Headers, key, value string) {
	if !h.Has(key) {
		h.Set(key, value)
	}
}
