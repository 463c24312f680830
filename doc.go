// Package ghub is a client for the GitHub v3 REST API covering pull requests,
// branches and git references.
//
// New builds one transport.Client and wires the PullRequest, Branch and
// Reference resource clients around it, so every operation issued through a
// Client shares the same headers and connection pool.
package ghub
