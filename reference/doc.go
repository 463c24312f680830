// Package reference deletes git references (branch heads and tags) through
// the GitHub git data API.
package reference
