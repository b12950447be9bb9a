package restapi

import (
	"net/http"
	"time"

	"github.com/transitstats/mta-ridership/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// WithMiddleware wraps h in the standard chain: request ID and logging outermost, then
// security headers, rate limiting and compression.
func (api *RestAPI) WithMiddleware(h http.Handler) http.Handler {
	h = CompressionMiddleware(h)
	h = api.rateLimiter.Handler(h)
	h = api.WithSecurityHeaders(h)
	h = NewRequestLoggingMiddleware(api.Logger)(h)
	return h
}

// Close stops background work started by the API.
func (api *RestAPI) Close() {
	api.rateLimiter.Stop()
}
