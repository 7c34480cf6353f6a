// Package retry provides exponential backoff retry logic for transient
// API failures.
//
// The [Do] function retries an operation with configurable max attempts,
// initial delay, and maximum delay. By default only errors the hcapi
// package classifies as retryable (rate limits, server errors, transport
// failures) are retried; everything else fails immediately. The client
// itself never retries, so callers opt in per call site:
//
//	err := retry.Do(ctx, func() error {
//		_, _, err := client.Server.Action.PowerOn(ctx, id)
//		return err
//	})
package retry
