package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// NewRateLimitMiddleware spaces out invocations with a token bucket.
// Callers block until a token is available; a context that ends while waiting
// (or a wait that could never succeed before its deadline) fails the
// invocation with ErrorTypeRateLimit.
func NewRateLimitMiddleware(requestsPerSecond float64, burst int) (Middleware, error) {
	if requestsPerSecond <= 0 {
		return nil, fmt.Errorf("rate limit: requests per second must be positive, got %v", requestsPerSecond)
	}
	if burst < 1 {
		return nil, fmt.Errorf("rate limit: burst must be at least 1, got %d", burst)
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, &InvocationError{
					Type:    ErrorTypeRateLimit,
					Backend: req.Backend,
					Cause:   err,
				}
			}
			return next.Handle(ctx, req)
		})
	}, nil
}
