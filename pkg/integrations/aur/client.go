package aur

import (
	"context"
	"net/http"
	"net/url"

	"github.com/matzehuels/aurclient/pkg/buildinfo"
	errs "github.com/matzehuels/aurclient/pkg/errors"
	"github.com/matzehuels/aurclient/pkg/integrations"
)

const (
	// DefaultBaseURL is the public AUR web host. The RPC endpoint is "rpc"
	// below it and package git repositories live directly under it.
	DefaultBaseURL = "https://aur.archlinux.org/"

	// RPCVersion is the RPC protocol version sent with every request.
	RPCVersion = "5"
)

// SearchField selects which package attribute a search matches against.
type SearchField string

// Search fields understood by RPC v5. The zero value lets upstream choose
// (name and description).
const (
	ByDefault      SearchField = ""
	ByName         SearchField = "name"
	ByNameDesc     SearchField = "name-desc"
	ByMaintainer   SearchField = "maintainer"
	ByDepends      SearchField = "depends"
	ByMakeDepends  SearchField = "makedepends"
	ByOptDepends   SearchField = "optdepends"
	ByCheckDepends SearchField = "checkdepends"
)

// SearchFields lists the accepted non-default search fields.
var SearchFields = []SearchField{
	ByName, ByNameDesc, ByMaintainer, ByDepends, ByMakeDepends, ByOptDepends, ByCheckDepends,
}

// Valid reports whether f is ByDefault or one of [SearchFields].
func (f SearchField) Valid() bool {
	if f == ByDefault {
		return true
	}
	for _, s := range SearchFields {
		if f == s {
			return true
		}
	}
	return false
}

// Client provides access to the AUR RPC interface.
//
// Its configuration is fixed at construction. All methods are safe for
// concurrent use by multiple goroutines; every call is one independent
// request with no caching or retries.
type Client struct {
	*integrations.Client
	base *url.URL
	rpc  *url.URL
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

// WithBaseURL points the client at another AUR instance. The URL must be an
// absolute http or https URL.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient sets the HTTP client used for requests. Timeouts and
// transport behavior are owned by hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.http = hc }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// NewClient creates an AUR client.
//
// The base URL is parsed and checked once here; an invalid base yields an
// INVALID_URL error. Every URL derived later is built from the parsed value,
// so no operation can fail on it afterwards.
func NewClient(opts ...Option) (*Client, error) {
	o := options{
		baseURL:   DefaultBaseURL,
		userAgent: buildinfo.UserAgent(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := parseBase(o.baseURL)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"User-Agent": o.userAgent}
	return &Client{
		Client: integrations.NewClient(o.http, headers),
		base:   base,
		rpc:    base.JoinPath("rpc"),
	}, nil
}

// MustNewClient is like NewClient but panics on error. It is meant for
// package-level clients built from constant options.
func MustNewClient(opts ...Option) *Client {
	c, err := NewClient(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func parseBase(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidURL, err, "parse base URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errs.New(errs.ErrCodeInvalidURL, "base URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, errs.New(errs.ErrCodeInvalidURL, "base URL %q has no host", raw)
	}
	u.RawQuery, u.Fragment = "", ""
	if u.Path == "" || u.Path[len(u.Path)-1] != '/' {
		u = u.JoinPath("/")
	}
	return u, nil
}

// BaseURL returns the base URL the client was configured with.
func (c *Client) BaseURL() string { return c.base.String() }

// Search runs a search query for term. Upstream decides which fields are
// matched; term is sent as-is.
//
// Returns:
//   - the decoded envelope on success, including when its Error field is set
//   - INVALID_URL if the request could not be built
//   - NETWORK_ERROR for transport failures and non-2xx statuses
//   - DECODE_ERROR for bodies that are not a valid envelope
func (c *Client) Search(ctx context.Context, term string) (*SearchResponse, error) {
	return c.SearchBy(ctx, ByDefault, term)
}

// SearchBy runs a search query for term restricted to field.
// An unknown field fails with INVALID_INPUT before any request is made.
func (c *Client) SearchBy(ctx context.Context, field SearchField, term string) (*SearchResponse, error) {
	if !field.Valid() {
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown search field %q", string(field))
	}

	q := newQuery("search")
	if field != ByDefault {
		q.Set("by", string(field))
	}
	q.Set("arg", term)
	return c.do(ctx, q)
}

// Info fetches full records for names. One arg[] parameter is sent per name,
// in order. An empty names still issues the request; what upstream answers
// to that is up to upstream.
func (c *Client) Info(ctx context.Context, names []string) (*SearchResponse, error) {
	q := newQuery("info")
	for _, n := range names {
		q.Add("arg[]", n)
	}
	return c.do(ctx, q)
}

// CloneURL returns the git clone URL for the package base called name:
// the base URL joined with name + ".git". The name is joined as a path
// segment, not sanitized.
func (c *Client) CloneURL(name string) string {
	return c.base.JoinPath(name + ".git").String()
}

// SnapshotURL returns the absolute URL of pkg's snapshot archive, or ""
// if the record carries no archive path.
func (c *Client) SnapshotURL(pkg Package) string {
	if pkg.URLPath == "" {
		return ""
	}
	ref, err := url.Parse(pkg.URLPath)
	if err != nil {
		ref = &url.URL{Path: pkg.URLPath}
	}
	return c.base.ResolveReference(ref).String()
}

// RPCURL returns the endpoint all queries are sent to.
func (c *Client) RPCURL() string { return c.rpc.String() }

func newQuery(typ string) url.Values {
	return url.Values{
		"v":    {RPCVersion},
		"type": {typ},
	}
}

func (c *Client) do(ctx context.Context, q url.Values) (*SearchResponse, error) {
	u := *c.rpc
	u.RawQuery = q.Encode()

	var resp SearchResponse
	if err := c.Get(ctx, u.String(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
