package common

const (
	// AuthorizationHeaderName carries the access token on HTTP requests and,
	// lower-cased, in gRPC metadata.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// RequestIDHeaderName echoes the per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)
