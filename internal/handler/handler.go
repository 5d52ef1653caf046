package handler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"servigest/internal/middleware"
	"servigest/internal/model"
	"servigest/internal/store"
	"servigest/internal/wire"
)

var _ wire.Server = (*Handler)(nil)

type Handler struct {
	identity *store.Identity
	booking  *store.Booking
	secret   string
	ttl      time.Duration
	log      zerolog.Logger
}

func New(id *store.Identity, bk *store.Booking, secret string, ttl time.Duration, log zerolog.Logger) *Handler {
	return &Handler{
		identity: id,
		booking:  bk,
		secret:   secret,
		ttl:      ttl,
		log:      log.With().Str("component", "grpc").Logger(),
	}
}

func uid(ctx context.Context) string {
	v, _ := ctx.Value(middleware.UserIDKey).(string)
	return v
}

func role(ctx context.Context) model.Role {
	v, _ := ctx.Value(middleware.RoleKey).(model.Role)
	return v
}

// toStatus maps store errors onto gRPC codes. Unknown errors are logged and
// hidden behind a generic message.
func (h *Handler) toStatus(err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, model.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, model.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	}
	h.log.Error().Err(err).Msg("unexpected store error")
	return status.Error(codes.Internal, "internal error")
}
