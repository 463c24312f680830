package pullrequest_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/ghub/pullrequest"
	"github.com/byte4ever/ghub/transport"
)

type call struct {
	method string
	path   string
	query  string
	body   string
}

type fakeGitHub struct {
	mu     sync.Mutex
	calls  []call
	routes map[string]func(w http.ResponseWriter)
}

func (fg *fakeGitHub) ServeHTTP(
	w http.ResponseWriter,
	r *http.Request,
) {
	body, _ := io.ReadAll(r.Body)

	fg.mu.Lock()
	fg.calls = append(fg.calls, call{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.RawQuery,
		body:   string(body),
	})
	route, ok := fg.routes[r.Method+" "+r.URL.Path]
	fg.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))

		return
	}

	route(w)
}

func (fg *fakeGitHub) recorded() []call {
	fg.mu.Lock()
	defer fg.mu.Unlock()

	return append([]call(nil), fg.calls...)
}

func respond(
	status int,
	body string,
) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newClient(
	t *testing.T,
	routes map[string]func(w http.ResponseWriter),
) (*pullrequest.Client, *fakeGitHub) {
	t.Helper()

	fg := &fakeGitHub{routes: routes}

	ts := httptest.NewServer(fg)
	t.Cleanup(ts.Close)

	tr, err := transport.New(
		"tok", transport.WithBaseURL(ts.URL),
	)
	require.NoError(t, err)

	return pullrequest.New(tr), fg
}

func TestClient_Create(t *testing.T) {
	t.Parallel()

	cl, fg := newClient(
		t,
		map[string]func(w http.ResponseWriter){
			"POST /repos/o/r/pulls": respond(
				http.StatusCreated,
				`{"number":7,"title":"T"}`,
			),
		},
	)

	val, err := cl.Create(
		context.Background(),
		pullrequest.CreateInput{
			Title:      "T",
			RepoPath:   "o/r",
			BranchName: "feat",
			IntoBranch: "main",
		},
	)
	require.NoError(t, err)

	calls := fg.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].method)
	assert.Equal(
		t,
		`{"title":"T","head":"feat","base":"main"}`,
		calls[0].body,
	)

	pr, err := pullrequest.AsPullRequest(val)
	require.NoError(t, err)
	assert.Equal(t, 7, pr.GetNumber())
	assert.Equal(t, "T", pr.GetTitle())
}

func TestClient_Create_api_error(t *testing.T) {
	t.Parallel()

	cl, _ := newClient(
		t,
		map[string]func(w http.ResponseWriter){
			"POST /repos/o/r/pulls": respond(
				http.StatusUnprocessableEntity,
				`{"message":"Validation Failed",`+
					`"errors":[{"message":"A pull request `+
					`already exists for o:feat."}]}`,
			),
		},
	)

	val, err := cl.Create(
		context.Background(),
		pullrequest.CreateInput{
			Title:      "T",
			RepoPath:   "o/r",
			BranchName: "feat",
			IntoBranch: "main",
		},
	)

	assert.Nil(t, val)

	var apiErr *transport.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(
		t,
		"A pull request already exists for o:feat.",
		apiErr.Message,
	)
}

func TestClient_Merge(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		method pullrequest.MergeMethod
		want   string
	}{
		{pullrequest.Merge, `{"merge_method":"merge"}`},
		{pullrequest.Rebase, `{"merge_method":"rebase"}`},
		{pullrequest.Squash, `{"merge_method":"squash"}`},
	} {
		cl, fg := newClient(
			t,
			map[string]func(w http.ResponseWriter){
				"PUT /repos/o/r/pulls/12/merge": respond(
					http.StatusOK,
					`{"sha":"abc","merged":true,`+
						`"message":"Pull Request successfully merged"}`,
				),
			},
		)

		val, err := cl.Merge(
			context.Background(),
			pullrequest.MergeInput{
				RepoPath:    "o/r",
				PullNumber:  12,
				MergeMethod: tc.method,
			},
		)
		require.NoError(t, err)

		calls := fg.recorded()
		require.Len(t, calls, 1)
		assert.Equal(t, http.MethodPut, calls[0].method)
		assert.Equal(t, tc.want, calls[0].body)

		res, err := pullrequest.AsMergeResult(val)
		require.NoError(t, err)
		assert.True(t, res.GetMerged())
		assert.Equal(t, "abc", res.GetSHA())
	}
}

func TestClient_Merge_unknown_method(t *testing.T) {
	t.Parallel()

	cl, fg := newClient(t, nil)

	val, err := cl.Merge(
		context.Background(),
		pullrequest.MergeInput{
			RepoPath:    "o/r",
			PullNumber:  1,
			MergeMethod: pullrequest.MergeMethod(42),
		},
	)

	assert.Nil(t, val)
	assert.ErrorIs(t, err, pullrequest.ErrUnknownMergeMethod)
	assert.Empty(t, fg.recorded())
}

func TestClient_Merge_malformed_error(t *testing.T) {
	t.Parallel()

	cl, _ := newClient(
		t,
		map[string]func(w http.ResponseWriter){
			"PUT /repos/o/r/pulls/3/merge": respond(
				http.StatusMethodNotAllowed,
				`{"message":"Pull Request is not mergeable"}`,
			),
		},
	)

	_, err := cl.Merge(
		context.Background(),
		pullrequest.MergeInput{
			RepoPath:    "o/r",
			PullNumber:  3,
			MergeMethod: pullrequest.Squash,
		},
	)

	var malformed *transport.MalformedErrorBodyError

	require.ErrorAs(t, err, &malformed)
	assert.Contains(
		t, malformed.Body, "Pull Request is not mergeable",
	)
}

func TestClient_GetByHead_no_match(t *testing.T) {
	t.Parallel()

	for _, list := range []string{
		`[]`,
		`[null]`,
		`["not an object"]`,
		`{}`,
	} {
		cl, fg := newClient(
			t,
			map[string]func(w http.ResponseWriter){
				"GET /repos/o/r/pulls": respond(
					http.StatusOK, list,
				),
			},
		)

		val, found, err := cl.GetByHead(
			context.Background(),
			pullrequest.GetByHeadInput{
				RepoPath:    "o/r",
				BranchOwner: "o",
				BranchName:  "feat",
			},
		)

		require.NoError(t, err, list)
		assert.False(t, found, list)
		assert.Nil(t, val, list)
		assert.Len(t, fg.recorded(), 1, list)
	}
}

func TestClient_GetByHead_match(t *testing.T) {
	t.Parallel()

	cl, fg := newClient(
		t,
		map[string]func(w http.ResponseWriter){
			"GET /repos/o/r/pulls": respond(
				http.StatusOK,
				`[{"number":42,"title":"T"}]`,
			),
			"GET /repos/o/r/pulls/42": respond(
				http.StatusOK,
				`{"number":42,"title":"T","mergeable":true}`,
			),
		},
	)

	val, found, err := cl.GetByHead(
		context.Background(),
		pullrequest.GetByHeadInput{
			RepoPath:    "o/r",
			BranchOwner: "o",
			BranchName:  "feat",
		},
	)
	require.NoError(t, err)
	require.True(t, found)

	calls := fg.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, "/repos/o/r/pulls", calls[0].path)
	assert.Equal(t, "head=o%3Afeat", calls[0].query)
	assert.Equal(t, "/repos/o/r/pulls/42", calls[1].path)

	assert.Equal(t, true, transport.Lookup(val, "mergeable"))

	pr, err := pullrequest.AsPullRequest(val)
	require.NoError(t, err)
	assert.Equal(t, 42, pr.GetNumber())
	assert.True(t, pr.GetMergeable())
}

func TestClient_GetByHead_missing_number(t *testing.T) {
	t.Parallel()

	for _, list := range []string{
		`[{"title":"T"}]`,
		`[{"number":"42"}]`,
		`[{"number":4.2}]`,
	} {
		cl, fg := newClient(
			t,
			map[string]func(w http.ResponseWriter){
				"GET /repos/o/r/pulls": respond(
					http.StatusOK, list,
				),
			},
		)

		_, found, err := cl.GetByHead(
			context.Background(),
			pullrequest.GetByHeadInput{
				RepoPath:    "o/r",
				BranchOwner: "o",
				BranchName:  "feat",
			},
		)

		assert.False(t, found, list)
		assert.ErrorIs(
			t, err, pullrequest.ErrMissingNumber, list,
		)
		assert.Len(t, fg.recorded(), 1, list)
	}
}

func TestClient_GetByHead_detail_error(t *testing.T) {
	t.Parallel()

	cl, _ := newClient(
		t,
		map[string]func(w http.ResponseWriter){
			"GET /repos/o/r/pulls": respond(
				http.StatusOK, `[{"number":5}]`,
			),
			"GET /repos/o/r/pulls/5": respond(
				http.StatusForbidden,
				`{"errors":[{"message":"rate limited"}]}`,
			),
		},
	)

	val, found, err := cl.GetByHead(
		context.Background(),
		pullrequest.GetByHeadInput{
			RepoPath:    "o/r",
			BranchOwner: "o",
			BranchName:  "feat",
		},
	)

	assert.Nil(t, val)
	assert.False(t, found)
	assert.ErrorContains(t, err, "rate limited")
}
