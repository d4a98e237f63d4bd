package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// TokenVerifier is the part of Codec the resolver needs.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// IdentityLookup resolves a verified user id to the current identity. It
// returns an error wrapping common.ErrIdentityNotFound when the user is gone.
type IdentityLookup interface {
	Resolve(ctx context.Context, userID int64) (models.Identity, error)
}

// Outcome is the terminal state of one resolution.
type Outcome int

const (
	// PassedThrough means the path is public; no identity is attached.
	PassedThrough Outcome = iota
	// Authenticated means Identity is set and must be attached to the request.
	Authenticated
	// Rejected means the request must not reach a protected handler.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case PassedThrough:
		return "passed_through"
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Decision is what a transport adapter acts on.
type Decision struct {
	Outcome  Outcome
	Identity models.Identity
	// Err is set for Rejected. It wraps common.ErrorUnauthorized for every
	// client-caused rejection and common.ErrorInternal when the lookup failed
	// for another reason.
	Err error
}

// Reason is the diagnostic label of a rejection, empty otherwise.
func (d Decision) Reason() string {
	if d.Outcome != Rejected {
		return ""
	}
	return Reason(d.Err)
}

// Resolver turns an Authorization header into a Decision. It holds no
// per-request state.
type Resolver struct {
	verifier TokenVerifier
	lookup   IdentityLookup
	public   PublicPaths
}

// NewResolver wires the token verifier, identity lookup and allow-list.
func NewResolver(verifier TokenVerifier, lookup IdentityLookup, public PublicPaths) *Resolver {
	return &Resolver{verifier: verifier, lookup: lookup, public: public}
}

// Resolve runs the gate for one request. The allow-list is consulted before
// any token work, so public paths are served even with a stale or garbage
// header.
func (r *Resolver) Resolve(ctx context.Context, path, authorization string) Decision {
	if r.public.IsPublic(path) {
		return Decision{Outcome: PassedThrough}
	}

	token, ok := BearerToken(authorization)
	if !ok {
		return reject(fmt.Errorf("%w: missing bearer token", common.ErrorUnauthorized))
	}

	userID, err := r.verifier.Verify(token)
	if err != nil {
		return reject(fmt.Errorf("%w: %w", common.ErrorUnauthorized, err))
	}

	id, err := r.lookup.Resolve(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrIdentityNotFound) {
			return reject(fmt.Errorf("%w: %w", common.ErrorUnauthorized, err))
		}
		return reject(fmt.Errorf("%w: resolve identity %d: %v", common.ErrorInternal, userID, err))
	}

	return Decision{Outcome: Authenticated, Identity: id}
}

func reject(err error) Decision {
	return Decision{Outcome: Rejected, Err: err}
}

// BearerToken extracts the token from an Authorization header value of the
// form "Bearer <token>". The scheme is case-sensitive.
func BearerToken(header string) (string, bool) {
	prefix := common.BearerScheme + " "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
