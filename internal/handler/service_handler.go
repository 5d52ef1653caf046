package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"servigest/internal/model"
	"servigest/internal/wire"
)

func (h *Handler) GetService(ctx context.Context, req *wire.IDRequest) (*wire.Service, error) {
	s, err := h.booking.ServiceByID(req.ID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	out := wire.Service(s)
	return &out, nil
}

func (h *Handler) ListServicesByProvider(ctx context.Context, req *wire.IDRequest) (*wire.ServiceList, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "provider id required")
	}
	return toServiceList(h.booking.ServicesByProvider(req.ID)), nil
}

func (h *Handler) ListProviders(ctx context.Context, req *wire.ProviderQuery) (*wire.ProviderList, error) {
	ps := h.booking.ProvidersWithOfferings()
	if req.All {
		ps = h.booking.AllProviders()
	}
	out := &wire.ProviderList{Providers: make([]wire.Provider, 0, len(ps))}
	for _, p := range ps {
		out.Providers = append(out.Providers, wire.Provider(p))
	}
	return out, nil
}

func (h *Handler) AddService(ctx context.Context, req *wire.Service) (*wire.Service, error) {
	if role(ctx) != model.RoleProvider {
		return nil, status.Error(codes.PermissionDenied, "only providers offer services")
	}
	s, err := h.booking.AddService(model.ServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return nil, h.toStatus(err)
	}
	out := wire.Service(s)
	return &out, nil
}

func (h *Handler) UpdateService(ctx context.Context, req *wire.Service) (*wire.Service, error) {
	if err := h.ownService(ctx, req.ID); err != nil {
		return nil, err
	}
	s, err := h.booking.UpdateService(model.Service(*req))
	if err != nil {
		return nil, h.toStatus(err)
	}
	out := wire.Service(s)
	return &out, nil
}

// DeleteService succeeds for ids that no longer exist.
func (h *Handler) DeleteService(ctx context.Context, req *wire.IDRequest) (*wire.Empty, error) {
	err := h.ownService(ctx, req.ID)
	if err != nil && status.Code(err) != codes.NotFound {
		return nil, err
	}
	h.booking.DeleteService(req.ID)
	return &wire.Empty{}, nil
}

// ownService checks that the caller is the provider offering the service.
func (h *Handler) ownService(ctx context.Context, id string) error {
	s, err := h.booking.ServiceByID(id)
	if errors.Is(err, model.ErrNotFound) {
		return status.Error(codes.NotFound, "service not found")
	}
	if err != nil {
		return h.toStatus(err)
	}
	if s.ProviderID != uid(ctx) {
		return status.Error(codes.PermissionDenied, "not your service")
	}
	return nil
}

func toServiceList(ss []model.Service) *wire.ServiceList {
	out := &wire.ServiceList{Services: make([]wire.Service, 0, len(ss))}
	for _, s := range ss {
		out.Services = append(out.Services, wire.Service(s))
	}
	return out
}
