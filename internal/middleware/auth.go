package middleware

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"servigest/internal/auth"
	"servigest/internal/store"
	"servigest/internal/wire"
)

type ctxKey string

const (
	UserIDKey ctxKey = "uid"
	RoleKey   ctxKey = "role"
)

// skip auth for these
var open = map[string]bool{
	wire.FullMethod("Register"): true,
	wire.FullMethod("Login"):    true,
}

// Auth accepts a token only while its user is the one logged in, so logging
// out or switching users invalidates earlier tokens.
func Auth(secret string, sessions store.SessionSource, log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		// token from Authorization: Bearer <jwt>
		raw := ""
		vals := md.Get("authorization")
		if len(vals) > 0 {
			raw = strings.TrimPrefix(vals[0], "Bearer ")
		}

		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}

		cur, ok := sessions.Current()
		if !ok || cur.ID != claims.UserID {
			log.Debug().Str("method", info.FullMethod).Str("user_id", claims.UserID).Msg("token for inactive session")
			return nil, status.Error(codes.Unauthenticated, "session ended")
		}

		ctx = context.WithValue(ctx, UserIDKey, cur.ID)
		ctx = context.WithValue(ctx, RoleKey, cur.Role)
		return next(ctx, req)
	}
}
