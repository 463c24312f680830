package ghub

import (
	"fmt"

	"github.com/byte4ever/ghub/branch"
	"github.com/byte4ever/ghub/pullrequest"
	"github.com/byte4ever/ghub/reference"
	"github.com/byte4ever/ghub/transport"
)

// Client groups the resource clients sharing a single
// transport.
type Client struct {
	transport *transport.Client

	PullRequest *pullrequest.Client
	Branch      *branch.Client
	Reference   *reference.Client
}

// New builds a Client authenticating with a personal
// access token. Errors wrap transport.ErrConstruction.
func New(token string, opts ...transport.Option) (*Client, error) {
	const errCtx = "creating github client"

	tr, err := transport.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	ref := reference.New(tr)

	return &Client{
		transport:   tr,
		PullRequest: pullrequest.New(tr),
		Branch:      branch.New(tr, ref),
		Reference:   ref,
	}, nil
}

// Transport returns the shared transport.
func (c *Client) Transport() *transport.Client {
	return c.transport
}
