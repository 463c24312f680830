package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/net/http/httpguts"
)

const (
	// DefaultBaseURL is the public GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"

	// MediaType is the versioned JSON media type sent
	// as Accept on every request.
	MediaType = "application/vnd.github.v3+json"

	// UserAgent identifies this library to GitHub.
	UserAgent = "ghub"
)

// Value is a decoded JSON document: nil, bool,
// json.Number, string, []interface{} or
// map[string]interface{}.
type Value = interface{}

// Client sends requests to the GitHub REST API with a
// fixed set of default headers. It is safe for
// concurrent use; nothing is mutated after New.
type Client struct {
	http    *http.Client
	baseURL string
	headers http.Header
}

type options struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client built by New.
type Option func(*options)

// WithBaseURL points the client at another API root,
// e.g. an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithEnterpriseHost targets a GitHub Enterprise
// installation (e.g. "git.corp.example.com").
func WithEnterpriseHost(host string) Option {
	return func(o *options) {
		if host == "" {
			return
		}

		o.baseURL = "https://" + host + "/api/v3"
	}
}

// WithHTTPClient sets the underlying http.Client whose
// transport, timeout and redirect policy are reused.
// The client is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// New builds a Client authenticating with the personal
// access token. It fails with ErrConstruction if the
// token cannot be sent as a header value or the base
// URL is unusable.
func New(token string, opts ...Option) (*Client, error) {
	const errCtx = "creating github transport"

	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	authorization := "token " + token
	if !httpguts.ValidHeaderFieldValue(authorization) {
		return nil, fmt.Errorf(
			"%w: %s: token contains characters "+
				"invalid in a header value",
			ErrConstruction, errCtx,
		)
	}

	base, err := url.Parse(o.baseURL)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: %s: base url: %w",
			ErrConstruction, errCtx, err,
		)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf(
			"%w: %s: base url %q must be absolute",
			ErrConstruction, errCtx, o.baseURL,
		)
	}

	headers := http.Header{}
	headers.Set("Accept", MediaType)
	headers.Set("Authorization", authorization)
	headers.Set("User-Agent", UserAgent)

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{}
	}

	slog.Debug(
		"created github transport",
		"base_url", base.String(),
	)

	return &Client{
		http:    hc,
		baseURL: strings.TrimSuffix(base.String(), "/"),
		headers: headers,
	}, nil
}

// DefaultHeaders returns a copy of the headers sent on
// every request.
func (c *Client) DefaultHeaders() http.Header {
	return c.headers.Clone()
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a request to path (relative to the API
// root). A non-nil body is encoded as JSON. The caller
// owns the returned response body.
func (c *Client) Do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
) (*http.Response, error) {
	const errCtx = "sending github request"

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: marshal request: %w", errCtx, err,
			)
		}

		slog.Debug(
			"github request body",
			"method", method,
			"path", path,
			"body", string(payload),
		)

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(
		ctx, method, c.baseURL+path, reader,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: build request: %w", errCtx, err,
		)
	}

	// Per request, so net/http drops Authorization on
	// cross-host redirects.
	for key, vals := range c.headers {
		req.Header[key] = append([]string(nil), vals...)
	}

	if body != nil {
		req.Header.Set(
			"Content-Type",
			"application/json; charset=utf-8",
		)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: %s: %s %s: %w",
			ErrTransport, errCtx, method, path, err,
		)
	}

	slog.Debug(
		"github response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)

	return resp, nil
}

// DoJSON sends a request and normalizes the response
// with DecodeResponse.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	path string,
	body interface{},
) (Value, error) {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	return DecodeResponse(resp)
}

// DoNoContent sends a request whose success is signaled
// by the status code alone, as with 204 No Content.
func (c *Client) DoNoContent(
	ctx context.Context,
	method string,
	path string,
) error {
	resp, err := c.Do(ctx, method, path, nil)
	if err != nil {
		return err
	}

	return CheckStatus(resp)
}
