package client

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for retry operations.
var (
	apiRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carbon_api_retries_total",
		Help: "Total number of retry attempts by endpoint",
	}, []string{"endpoint"})

	apiRetryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carbon_api_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by endpoint",
	}, []string{"endpoint"})
)

// permanent marks an error as not retryable.
func permanent(err error) error {
	return backoff.Permanent(err)
}

// retryWithBackoff runs operation under the configured retry policy.
// With MaxRetries=0 the operation executes exactly once; otherwise
// transient failures are re-issued with exponential backoff, honouring
// context cancellation. Errors wrapped by permanent() stop immediately.
func (c *Client) retryWithBackoff(ctx context.Context, endpoint string, operation func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialBackoff
	bo.MaxInterval = c.config.MaxBackoff
	bo.MaxElapsedTime = 0 // attempts bounded by MaxRetries, not wall time

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	notify := func(err error, wait time.Duration) {
		apiRetriesTotal.WithLabelValues(endpoint).Inc()
		c.logger.Debug().
			Err(err).
			Str("endpoint", endpoint).
			Dur("backoff", wait).
			Msg("Retrying request after backoff")
	}

	err := backoff.RetryNotify(operation, policy, notify)
	if err != nil && c.config.MaxRetries > 0 {
		apiRetryExhaustedTotal.WithLabelValues(endpoint).Inc()
		c.logger.Warn().
			Err(err).
			Str("endpoint", endpoint).
			Uint64("max_retries", c.config.MaxRetries).
			Msg("Retry attempts exhausted")
	}
	return err
}
