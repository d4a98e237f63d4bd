// Package auth owns the token format and the per-request identity gate.
//
// Token layout: an HS256 JWT whose claims are
//
//	{"uid": <user id as a JSON integer>, "iat": <unix seconds>, "exp": <unix seconds>}
//
// There is no "sub" claim. A token is accepted only when its signature
// verifies under the process signing key and exp is strictly after the
// verification time.
//
// The same Resolver backs the gin middleware and the gRPC interceptors; both
// consult Public, the one allow-list of paths that skip authentication.
package auth
