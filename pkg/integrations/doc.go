// Package integrations provides the shared HTTP layer for registry API clients.
//
// # Overview
//
// Registry clients live in subpackages and embed [Client]:
//
//   - [kvk]: Dutch Chamber of Commerce (Kamer van Koophandel) API
//
// # Client Pattern
//
//	client, err := kvk.New(apiKey)
//	if err != nil {
//	    return err
//	}
//	companies, err := client.Search(ctx, "Test BV", nil)
//
// [Client] handles:
//   - Response caching keyed by the exact request URL ([cache.MemoryCache])
//   - Request pacing with a fixed minimum interval ([httputil.Throttle])
//   - Default headers and HTTP status mapping
//
// There is no retry: a failed request is returned to the caller wrapped in
// [ErrNetwork] or [ErrNotFound].
//
// # Adding a New Registry
//
//  1. Create a subpackage: pkg/integrations/<registry>/
//  2. Decode responses into typed structs or generic records
//  3. Embed [*Client] and route every read through [Client.Fetch]
//
// [kvk]: github.com/cloudmazing/kvkapi/pkg/integrations/kvk
// [cache.MemoryCache]: github.com/cloudmazing/kvkapi/pkg/cache.MemoryCache
// [httputil.Throttle]: github.com/cloudmazing/kvkapi/pkg/httputil.Throttle
package integrations
