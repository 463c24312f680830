// Package config resolves the credentials and host used by the ghub CLI from
// a .env file, an optional YAML file and GITHUB_* environment variables, in
// that order of increasing precedence.
package config
