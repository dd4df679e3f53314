// Package pkg holds the public libraries of aurclient.
//
// # Overview
//
//  1. [integrations/aur] - Client for the AUR RPC interface (search, info, clone URLs)
//  2. [integrations] - Shared JSON-over-HTTP plumbing used by the client
//  3. [depgraph] - Dependency graphs of package records, as DOT or SVG
//  4. [errors] - Coded errors and input validation
//  5. [observability] - Hooks for tracing outbound HTTP requests
//  6. [buildinfo] - Version information and the default User-Agent
//
// # Quick Start
//
//	client, err := aur.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := client.Search(ctx, "yay")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := resp.Err(); err != nil {
//	    log.Fatal(err) // reported by the AUR itself
//	}
//	for _, p := range resp.Results {
//	    fmt.Println(p.Name, p.Version, client.CloneURL(p.Name))
//	}
//
// [integrations/aur]: https://pkg.go.dev/github.com/matzehuels/aurclient/pkg/integrations/aur
// [integrations]: https://pkg.go.dev/github.com/matzehuels/aurclient/pkg/integrations
// [depgraph]: https://pkg.go.dev/github.com/matzehuels/aurclient/pkg/depgraph
// [errors]: https://pkg.go.dev/github.com/matzehuels/aurclient/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/aurclient/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/aurclient/pkg/buildinfo
package pkg
