package auth

import "sort"

// Routes that are reachable without a token.
const (
	PathRegister   = "/users/register"
	PathLogin      = "/users/login"
	PathCategories = "/todos/categories"

	GRPCHealthCheck = "/grpc.health.v1.Health/Check"
	GRPCHealthWatch = "/grpc.health.v1.Health/Watch"
)

// PublicPaths is an exact-match allow-list. HTTP paths and gRPC full method
// names live in separate namespaces, so one list serves both transports.
type PublicPaths struct {
	set map[string]struct{}
}

// NewPublicPaths builds an allow-list from exact paths or method names.
func NewPublicPaths(paths ...string) PublicPaths {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return PublicPaths{set: set}
}

// Public is the allow-list the router and every resolver consult.
var Public = NewPublicPaths(
	PathRegister,
	PathLogin,
	PathCategories,
	GRPCHealthCheck,
	GRPCHealthWatch,
)

// IsPublic reports whether path is on the list.
func (p PublicPaths) IsPublic(path string) bool {
	_, ok := p.set[path]
	return ok
}

// List returns the paths in sorted order.
func (p PublicPaths) List() []string {
	out := make([]string, 0, len(p.set))
	for path := range p.set {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}
