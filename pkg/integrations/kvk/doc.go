// Package kvk provides a client for the Dutch Chamber of Commerce (Kamer van
// Koophandel) registry API.
//
// # Overview
//
// The client covers two endpoints of https://api.kvk.nl/api/:
//
//   - v2/zoeken: company search by name, KVK number, RSIN or
//     vestigingsnummer
//   - v1/basisprofielen/{kvkNummer}/hoofdvestiging: the base profile of a
//     company's main establishment
//
// # Usage
//
//	client, err := kvk.New(apiKey, kvk.WithRootCertificate("/etc/kvk/root.pem"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	companies, err := client.SetPage(2).Search(ctx, "Test BV", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range companies {
//	    fmt.Println(c.KvkNumber, c.TradeName)
//	}
//
// # Search Detail Links
//
// A search result only identifies a company. For every result the client
// follows each relation link in the order the server listed them and merges
// the returned objects; a field present in several responses takes the
// value of the last one. The merged record must carry a kvkNummer.
//
// One failing link aborts the whole search and leaves [Client.Results]
// empty.
//
// # Caching and Pacing
//
// Responses are cached in memory for the lifetime of the Client, keyed by
// the exact URL including the query string. Network requests are spaced at
// least 200ms apart; cache hits are not delayed.
//
// # Errors
//
// [Client.Search] and [Client.GetBaseProfile] return an [*errors.Error]
// with code [errors.ErrCodeRegistryQuery]. The cause can be inspected with
// errors.Is against [ErrInvalidJSON], [ErrMissingKvkNumber],
// [integrations.ErrNotFound] or [integrations.ErrNetwork].
//
// [*errors.Error]: github.com/cloudmazing/kvkapi/pkg/errors.Error
// [errors.ErrCodeRegistryQuery]: github.com/cloudmazing/kvkapi/pkg/errors.ErrCodeRegistryQuery
// [integrations.ErrNotFound]: github.com/cloudmazing/kvkapi/pkg/integrations.ErrNotFound
// [integrations.ErrNetwork]: github.com/cloudmazing/kvkapi/pkg/integrations.ErrNetwork
package kvk
