package pullrequest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	gh "github.com/google/go-github/v68/github"

	"github.com/byte4ever/ghub/transport"
)

const (
	pullsPath  = "/repos/{repo}/pulls"
	pullPath   = "/repos/{repo}/pulls/{number}"
	mergePath  = "/repos/{repo}/pulls/{number}/merge"
	headFilter = "?head={head}"
)

// ErrMissingNumber is returned when a pull request
// found by head carries no integer "number".
var ErrMissingNumber = errors.New("pull request has no number")

// Client creates, merges and looks up pull requests.
type Client struct {
	transport *transport.Client
}

// New returns a Client sending requests through tr.
func New(tr *transport.Client) *Client {
	return &Client{transport: tr}
}

// CreateInput describes a pull request from
// BranchName into IntoBranch.
type CreateInput struct {
	Title      string
	RepoPath   string
	BranchName string
	IntoBranch string
}

// MergeInput selects the pull request to merge and
// the strategy.
type MergeInput struct {
	RepoPath    string
	PullNumber  int
	MergeMethod MergeMethod
}

// GetByHeadInput identifies an open pull request by
// its head branch, "<BranchOwner>:<BranchName>".
type GetByHeadInput struct {
	RepoPath    string
	BranchOwner string
	BranchName  string
}

type createBody struct {
	Title string `json:"title"`
	Head  string `json:"head"`
	Base  string `json:"base"`
}

type mergeBody struct {
	MergeMethod string `json:"merge_method"`
}

// Create opens a pull request and returns its full
// representation.
func (c *Client) Create(
	ctx context.Context,
	in CreateInput,
) (transport.Value, error) {
	const errCtx = "creating github pull request"

	body := createBody{
		Title: in.Title,
		Head:  in.BranchName,
		Base:  in.IntoBranch,
	}

	slog.Debug(
		"creating pull request",
		"repo", in.RepoPath,
		"head", in.BranchName,
		"base", in.IntoBranch,
	)

	path := transport.Path(pullsPath, map[string]string{
		"repo": in.RepoPath,
	})

	val, err := c.transport.DoJSON(
		ctx, http.MethodPost, path, body,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, in.RepoPath, err,
		)
	}

	slog.Info(
		"created pull request",
		"url", transport.Lookup(val, "html_url"),
	)

	return val, nil
}

// Merge merges a pull request with the given strategy
// and returns GitHub's merge result.
func (c *Client) Merge(
	ctx context.Context,
	in MergeInput,
) (transport.Value, error) {
	const errCtx = "merging github pull request"

	method, err := in.MergeMethod.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"merging pull request",
		"repo", in.RepoPath,
		"number", in.PullNumber,
		"method", string(method),
	)

	path := transport.Path(mergePath, map[string]string{
		"repo":   in.RepoPath,
		"number": strconv.Itoa(in.PullNumber),
	})

	val, err := c.transport.DoJSON(
		ctx,
		http.MethodPut,
		path,
		mergeBody{MergeMethod: string(method)},
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %s#%d: %w",
			errCtx, in.RepoPath, in.PullNumber, err,
		)
	}

	return val, nil
}

// GetByHead returns the open pull request whose head
// is BranchOwner:BranchName. The boolean is false when
// there is none. The list endpoint omits computed
// fields such as mergeable, so a match is re-fetched
// from the single pull request endpoint.
func (c *Client) GetByHead(
	ctx context.Context,
	in GetByHeadInput,
) (transport.Value, bool, error) {
	const errCtx = "getting github pull request by head"

	head := in.BranchOwner + ":" + in.BranchName

	path := transport.Path(pullsPath, map[string]string{
		"repo": in.RepoPath,
	}) + transport.Query(headFilter, map[string]string{
		"head": head,
	})

	list, err := c.transport.DoJSON(
		ctx, http.MethodGet, path, nil,
	)
	if err != nil {
		return nil, false, fmt.Errorf(
			"%s: list %s: %w", errCtx, head, err,
		)
	}

	match, ok := firstObject(list)
	if !ok {
		slog.Debug(
			"no open pull request",
			"repo", in.RepoPath,
			"head", head,
		)

		return nil, false, nil
	}

	number, err := pullNumber(match)
	if err != nil {
		return nil, false, fmt.Errorf(
			"%s: %s: %w", errCtx, head, err,
		)
	}

	detail, err := c.transport.DoJSON(
		ctx,
		http.MethodGet,
		transport.Path(pullPath, map[string]string{
			"repo":   in.RepoPath,
			"number": number,
		}),
		nil,
	)
	if err != nil {
		return nil, false, fmt.Errorf(
			"%s: get #%s: %w", errCtx, number, err,
		)
	}

	return detail, true, nil
}

// AsPullRequest projects a pull request value onto
// go-github's PullRequest type.
func AsPullRequest(val transport.Value) (*gh.PullRequest, error) {
	const errCtx = "projecting github pull request"

	raw, err := json.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var pr gh.PullRequest
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &pr, nil
}

// AsMergeResult projects a Merge result onto
// go-github's PullRequestMergeResult type.
func AsMergeResult(
	val transport.Value,
) (*gh.PullRequestMergeResult, error) {
	const errCtx = "projecting github merge result"

	raw, err := json.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var res gh.PullRequestMergeResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &res, nil
}

// firstObject returns element 0 of list when it is a
// JSON object. An empty array, a null element and a
// non-array body all mean no match.
func firstObject(
	list transport.Value,
) (map[string]interface{}, bool) {
	obj, ok := transport.Lookup(list, 0).(map[string]interface{})

	return obj, ok
}

func pullNumber(pr map[string]interface{}) (string, error) {
	num, ok := pr["number"].(json.Number)
	if !ok {
		return "", ErrMissingNumber
	}

	n, err := num.Int64()
	if err != nil {
		return "", fmt.Errorf(
			"%w: %q", ErrMissingNumber, num.String(),
		)
	}

	return strconv.FormatInt(n, 10), nil
}
