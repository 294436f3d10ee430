// Package resilience retries operations that fail with transient unified
// errors.
//
// Retry keys its default policy off the error taxonomy: connection-level I/O
// failures and address resolution failures are retried, everything else is
// returned on the first attempt.
//
//	cfg := resilience.DefaultRetryConfig()
//	body, err := resilience.Retry(ctx, cfg, func() ([]byte, *errors.Error) {
//	    return client.Get(ctx, url)
//	})
package resilience
