package reference

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/byte4ever/ghub/transport"
)

const refPath = "/repos/{repo}/git/refs/{ref}"

// Client deletes git references.
type Client struct {
	transport *transport.Client
}

// New returns a Client sending requests through tr.
func New(tr *transport.Client) *Client {
	return &Client{transport: tr}
}

// DeleteInput names the reference to delete.
type DeleteInput struct {
	// RepoPath is "owner/repo".
	RepoPath string

	// ReferencePath is "heads/<branch>" or
	// "tags/<tag>".
	ReferencePath string
}

// Delete removes a reference. GitHub answers 204 No
// Content on success, so only the status is checked;
// any other status yields a *transport.StatusError.
func (c *Client) Delete(
	ctx context.Context,
	in DeleteInput,
) error {
	const errCtx = "deleting github reference"

	slog.Debug(
		"deleting reference",
		"repo", in.RepoPath,
		"ref", in.ReferencePath,
	)

	path := transport.Path(refPath, map[string]string{
		"repo": in.RepoPath,
		"ref":  in.ReferencePath,
	})

	if err := c.transport.DoNoContent(
		ctx, http.MethodDelete, path,
	); err != nil {
		return fmt.Errorf(
			"%s: %s: %w", errCtx, in.ReferencePath, err,
		)
	}

	slog.Info(
		"deleted reference",
		"repo", in.RepoPath,
		"ref", in.ReferencePath,
	)

	return nil
}

// DeleteTag removes tags/<tag>.
func (c *Client) DeleteTag(
	ctx context.Context,
	repoPath string,
	tag string,
) error {
	return c.Delete(ctx, DeleteInput{
		RepoPath:      repoPath,
		ReferencePath: "tags/" + tag,
	})
}
