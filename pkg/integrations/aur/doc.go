// Package aur provides an HTTP client for the Arch User Repository RPC API.
//
// # Overview
//
// This package queries the AUR (https://aur.archlinux.org) RPC interface,
// version 5, and derives git clone URLs for package bases.
//
// # Usage
//
//	client, err := aur.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Search(ctx, "yay")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if resp.Error != nil {
//	    log.Fatal(*resp.Error) // reported by the API, not by the client
//	}
//
//	for _, p := range resp.Results {
//	    fmt.Println(p.Name, p.Version)
//	}
//
//	fmt.Println(client.CloneURL("yay")) // https://aur.archlinux.org/yay.git
//
// # Queries
//
//   - [Client.Search]: type=search&arg=<term>
//   - [Client.SearchBy]: the same, restricted with by=<field>
//   - [Client.Info]: type=info with one arg[]=<name> per name, in order
//
// Every query carries v=5 and returns the same [SearchResponse] envelope.
//
// # Errors
//
// Failures are coded errors from the errors package: INVALID_URL,
// NETWORK_ERROR and DECODE_ERROR. A logical error reported by the API in
// [SearchResponse.Error] is returned as data.
//
// # Optional Fields
//
// Upstream omits many [Package] keys. Optional strings and the out-of-date
// flag are pointers, optional lists are nil when absent.
package aur
