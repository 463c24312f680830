// Package branch lists and deletes repository branches. Deleting a branch is
// deleting its heads/<name> reference through a shared reference.Client.
package branch
