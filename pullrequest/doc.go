// Package pullrequest creates, merges and looks up GitHub pull requests.
//
// Results are returned as generic transport.Value trees; AsPullRequest and
// AsMergeResult project them onto go-github types when callers want typed
// access. GetByHead is a two-step lookup: the list endpoint finds the open
// pull request for a head branch and the single pull request endpoint
// supplies computed fields such as mergeable.
package pullrequest
