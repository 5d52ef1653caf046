package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"servigest/internal/auth"
	"servigest/internal/model"
	"servigest/internal/wire"
)

func (h *Handler) Register(ctx context.Context, req *wire.Credentials) (*wire.AuthReply, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "all fields required")
	}

	u, err := h.identity.Register(ctx, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return h.reply(u)
}

func (h *Handler) Login(ctx context.Context, req *wire.Credentials) (*wire.AuthReply, error) {
	if req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password required")
	}

	u, err := h.identity.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return h.reply(u)
}

func (h *Handler) reply(u model.User) (*wire.AuthReply, error) {
	tok, err := auth.MakeToken(u, h.secret, h.ttl)
	if err != nil {
		h.log.Error().Err(err).Msg("sign token")
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &wire.AuthReply{Token: tok, User: wire.User(u)}, nil
}

// Logout ends the session; every token issued for it stops working.
func (h *Handler) Logout(ctx context.Context, _ *wire.Empty) (*wire.Empty, error) {
	if err := h.identity.Logout(ctx); err != nil {
		h.log.Warn().Err(err).Msg("session record not removed")
	}
	return &wire.Empty{}, nil
}

func (h *Handler) CurrentUser(ctx context.Context, _ *wire.Empty) (*wire.User, error) {
	u, ok := h.identity.Current()
	if !ok || u.ID != uid(ctx) {
		return nil, status.Error(codes.Unauthenticated, "no session")
	}
	out := wire.User(u)
	return &out, nil
}
