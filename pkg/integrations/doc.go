// Package integrations provides HTTP plumbing for package registry APIs.
//
// # Overview
//
// This package contains the shared request path used by registry clients.
// Each registry has its own subpackage:
//
//   - [aur]: Arch User Repository RPC interface
//
// # Client Pattern
//
// Registry clients embed [Client] and add typed operations:
//
//	client, err := aur.NewClient()
//	resp, err := client.Search(ctx, "yay")
//
// [Client] handles:
//   - A single HTTP GET per call (no retries, no caching)
//   - Default and per-request headers
//   - JSON decoding into the caller's value
//   - Classification of failures via [errors.Code]
//   - Request events through [observability.HTTPHooks]
//
// # Error Classification
//
//   - INVALID_URL: the request could not be built from the URL
//   - NETWORK_ERROR: the exchange failed or returned a non-2xx status
//     (the status is available as [errors.StatusError] in the chain)
//   - DECODE_ERROR: the body was not the expected JSON
//
// Context cancellation is preserved in the chain, so
// errors.Is(err, context.Canceled) still reports it.
//
// [aur]: github.com/matzehuels/aurclient/pkg/integrations/aur
// [errors.Code]: github.com/matzehuels/aurclient/pkg/errors.Code
// [errors.StatusError]: github.com/matzehuels/aurclient/pkg/errors.StatusError
// [observability.HTTPHooks]: github.com/matzehuels/aurclient/pkg/observability.HTTPHooks
package integrations
