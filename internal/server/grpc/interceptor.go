package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// authorization reads the first "authorization" metadata value.
func authorization(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(strings.ToLower(common.AuthorizationHeaderName))
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// authenticate runs the resolver for one call and returns the context the
// handler should see.
func (s *GRPCServer) authenticate(ctx context.Context, method string) (context.Context, error) {
	d := s.resolver.Resolve(ctx, method, authorization(ctx))

	switch d.Outcome {
	case auth.PassedThrough:
		return ctx, nil
	case auth.Authenticated:
		return logging.ContextWith(auth.WithIdentity(ctx, d.Identity), "user_id", d.Identity.UserID), nil
	}

	reason := d.Reason()
	s.metrics.ObserveRejection(reason)
	s.logger.Warn(ctx, "call rejected", "method", method, "reason", reason)

	if errors.Is(d.Err, common.ErrorInternal) {
		return nil, status.Error(codes.Internal, common.ErrorInternal.Error())
	}
	return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
}

func (s *GRPCServer) unaryIdentityInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx, err := s.authenticate(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

func (s *GRPCServer) streamIdentityInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authenticate(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &identityStream{ServerStream: ss, ctx: ctx})
}

// identityStream overrides Context so stream handlers see the identity.
type identityStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *identityStream) Context() context.Context { return s.ctx }
