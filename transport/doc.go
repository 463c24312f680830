// Package transport issues authenticated requests against the GitHub v3 REST
// API and normalizes its responses. A Client holds one http.Client carrying
// the fixed Accept, Authorization and User-Agent headers; resource clients
// share a single Client instead of owning their own connection pools.
//
// Responses of JSON endpoints go through DoJSON, which returns the decoded
// body as a generic Value on 2xx and an *APIError or *MalformedErrorBodyError
// otherwise. Status-only endpoints go through DoNoContent.
package transport
