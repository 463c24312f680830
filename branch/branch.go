package branch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	gh "github.com/google/go-github/v68/github"

	"github.com/byte4ever/ghub/reference"
	"github.com/byte4ever/ghub/transport"
)

const listPath = "/repos/{repo}/branches"

const listQuery = "?protected={protected}" +
	"&per_page={per_page}&page={page}"

// Client lists and deletes branches.
type Client struct {
	transport *transport.Client
	reference *reference.Client
}

// New returns a Client. Both arguments are shared with
// the other resource clients of the same ghub.Client.
func New(
	tr *transport.Client,
	ref *reference.Client,
) *Client {
	return &Client{
		transport: tr,
		reference: ref,
	}
}

// ListInput selects one page of branches.
type ListInput struct {
	RepoPath string
	// Protected filters on branch protection; nil
	// is sent as false.
	Protected *bool
	PerPage   uint32
	Page      uint32
}

// DeleteInput names the branch to delete.
type DeleteInput struct {
	RepoPath   string
	BranchName string
}

// List returns the decoded JSON array of branches.
func (c *Client) List(
	ctx context.Context,
	in ListInput,
) (transport.Value, error) {
	const errCtx = "listing github branches"

	protected := false
	if in.Protected != nil {
		protected = *in.Protected
	}

	path := transport.Path(listPath, map[string]string{
		"repo": in.RepoPath,
	}) + transport.Query(listQuery, map[string]string{
		"protected": strconv.FormatBool(protected),
		"per_page":  strconv.FormatUint(uint64(in.PerPage), 10),
		"page":      strconv.FormatUint(uint64(in.Page), 10),
	})

	slog.Debug(
		"listing branches",
		"repo", in.RepoPath,
		"protected", protected,
		"per_page", in.PerPage,
		"page", in.Page,
	)

	val, err := c.transport.DoJSON(
		ctx, http.MethodGet, path, nil,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, in.RepoPath, err,
		)
	}

	return val, nil
}

// Delete removes the branch by deleting its
// heads/<name> reference.
func (c *Client) Delete(
	ctx context.Context,
	in DeleteInput,
) error {
	slog.Debug(
		"deleting branch",
		"repo", in.RepoPath,
		"branch", in.BranchName,
	)

	return c.reference.Delete(ctx, reference.DeleteInput{
		RepoPath:      in.RepoPath,
		ReferencePath: "heads/" + in.BranchName,
	})
}

// AsBranches projects a List result onto go-github's
// Branch type.
func AsBranches(val transport.Value) ([]*gh.Branch, error) {
	const errCtx = "projecting github branches"

	raw, err := json.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var branches []*gh.Branch
	if err := json.Unmarshal(raw, &branches); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return branches, nil
}
