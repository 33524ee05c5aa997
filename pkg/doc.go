// Package pkg provides the libraries behind the kvk registry client.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [integrations/kvk] - KVK registry client (search, base profiles)
//  2. [integrations] - Shared HTTP layer: caching, pacing, headers, TLS
//  3. [cache] - Response cache backends
//  4. [httputil] - Request pacing
//  5. [errors] - Structured errors and input validation
//  6. [observability] - Hooks for metrics and tracing
//  7. [buildinfo] - Version information
//
// # Architecture
//
// A registry query flows through the layers like this:
//
//	kvk.Client.Search / GetBaseProfile
//	         ↓
//	integrations.Client.Fetch (cache lookup, throttle, GET)
//	         ↓
//	kvk record decoding, link merging, Company construction
//
// # Quick Start
//
//	client, err := kvk.New(os.Getenv("KVK_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	companies, err := client.Search(ctx, "Test BV", nil)
//
// [integrations/kvk]: github.com/cloudmazing/kvkapi/pkg/integrations/kvk
// [integrations]: github.com/cloudmazing/kvkapi/pkg/integrations
// [cache]: github.com/cloudmazing/kvkapi/pkg/cache
// [httputil]: github.com/cloudmazing/kvkapi/pkg/httputil
// [errors]: github.com/cloudmazing/kvkapi/pkg/errors
// [observability]: github.com/cloudmazing/kvkapi/pkg/observability
// [buildinfo]: github.com/cloudmazing/kvkapi/pkg/buildinfo
package pkg
