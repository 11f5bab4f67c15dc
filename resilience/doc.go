// Package resilience retries operations that fail with retryable errors.
//
// Retry and RetryFunc wrap any fallible call with exponential backoff and
// jitter. By default only errors marked retryable are retried, which covers
// source failures and bounded-wait timeouts but never context cancellation:
//
//	entries, err := resilience.ToSlice(ctx, resilience.DefaultRetryConfig(),
//	    source.ListDir(fs, "/data"))
//
// ToSlice re-runs a restartable stream from its source after a retryable
// failure.
package resilience
