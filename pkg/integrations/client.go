package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/aurclient/pkg/errors"
	"github.com/matzehuels/aurclient/pkg/observability"
)

// Client provides shared HTTP functionality for registry API clients.
// It performs single GET round trips, applies default headers and classifies
// failures into INVALID_URL, NETWORK_ERROR and DECODE_ERROR.
//
// There is no caching and no retry: every call is exactly one request.
// A Client holds no mutable state and is safe for concurrent use.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client that sends requests through hc with the given
// default headers. A nil hc selects [NewHTTPClient]. Pass nil for headers if
// no default headers are needed. The headers map must not be modified afterwards.
func NewClient(hc *http.Client, headers map[string]string) *Client {
	if hc == nil {
		hc = NewHTTPClient()
	}
	return &Client{
		http:    hc,
		headers: headers,
	}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// The body is decoded whatever the status: a non-2xx response whose body
// decodes into v is returned as data. Only when it does not is the status
// reported, as NETWORK_ERROR carrying [errs.StatusError].
// On any error v must be considered unset.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	req, err := c.newRequest(ctx, url, headers)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	start := time.Now()

	hooks.OnRequest(ctx, id, req.Method, host, path)

	resp, err := c.http.Do(req)
	if err != nil {
		err = errs.Wrap(errs.ErrCodeNetwork, err, "GET %s%s", host, path)
		hooks.OnError(ctx, id, req.Method, host, path, err)
		return err
	}
	defer resp.Body.Close()

	hooks.OnResponse(ctx, id, req.Method, host, path, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = errs.Wrap(errs.ErrCodeNetwork, err, "GET %s%s", host, path)
		hooks.OnError(ctx, id, req.Method, host, path, err)
		return err
	}

	decErr := decode(body, v)
	if !successful(resp.StatusCode) && decErr != nil {
		err = errs.Wrap(errs.ErrCodeNetwork, &errs.StatusError{StatusCode: resp.StatusCode, Status: resp.Status},
			"GET %s%s", host, path)
		hooks.OnError(ctx, id, req.Method, host, path, err)
		return err
	}
	if decErr != nil {
		err = errs.Wrap(errs.ErrCodeDecode, decErr, "decode %s%s", host, path)
		hooks.OnError(ctx, id, req.Method, host, path, err)
		return err
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, url string, headers map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidURL, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// decode unmarshals a complete body. Trailing data after the first JSON
// value is an error, as is an empty body.
func decode(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return io.ErrUnexpectedEOF
	}
	return json.Unmarshal(body, v)
}

func successful(status int) bool { return status >= 200 && status < 300 }
