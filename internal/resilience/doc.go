// Package resilience groups the fault-tolerance helpers used around the product
// store and the remote feed API.
//
//   - circuitbreaker: gobreaker wrappers for the HTTP page fetcher and the database
//   - retry: exponential backoff with jitter for startup connectivity and seeding
//
// The feed engine itself never retries: a failed fetch moves the controller to
// Failed and the caller decides. These helpers sit below the Fetcher boundary.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedAPIConfig())
//	page, err := circuitbreaker.Do(cb, func() (Page, error) {
//	    return client.FetchPage(ctx, id, cursor)
//	})
//
//	err := retry.WithBackoff(ctx, retry.StartupConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
