// Package httputil provides HTTP utilities for registry clients.
//
// # Throttle
//
// [Throttle] enforces a minimum interval between outbound requests. The
// registry clients call [Throttle.Wait] before every network request (cache
// hits skip it), so consecutive requests from one client start at least
// [DefaultInterval] apart:
//
//	th := httputil.NewThrottle(httputil.DefaultInterval)
//	if err := th.Wait(ctx); err != nil {
//	    return err
//	}
//	resp, err := http.DefaultClient.Do(req)
//
// Waiting blocks the calling goroutine. There is no retry or backoff; a
// failed request is reported to the caller as is.
package httputil
