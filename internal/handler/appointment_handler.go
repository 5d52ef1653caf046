package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"servigest/internal/model"
	"servigest/internal/wire"
)

// AddAppointment books for the calling client. An empty client id means the caller.
func (h *Handler) AddAppointment(ctx context.Context, req *wire.Appointment) (*wire.Appointment, error) {
	userID := uid(ctx)

	if role(ctx) != model.RoleClient {
		return nil, status.Error(codes.PermissionDenied, "only clients book appointments")
	}
	clientID := req.ClientID
	if clientID == "" {
		clientID = userID
	}
	if clientID != userID {
		return nil, status.Error(codes.PermissionDenied, "cannot book for another client")
	}
	if req.ScheduledAt.IsZero() {
		return nil, status.Error(codes.InvalidArgument, "scheduled time required")
	}

	a, err := h.booking.AddAppointment(model.AppointmentInput{
		ClientID:    clientID,
		ProviderID:  req.ProviderID,
		ServiceID:   req.ServiceID,
		ScheduledAt: req.ScheduledAt,
		Note:        req.Note,
	})
	if err != nil {
		return nil, h.toStatus(err)
	}
	out := wire.Appointment(a)
	return &out, nil
}

func (h *Handler) ListAppointmentsByClient(ctx context.Context, req *wire.IDRequest) (*wire.AppointmentList, error) {
	if req.ID != uid(ctx) {
		return nil, status.Error(codes.PermissionDenied, "not your appointments")
	}
	return toAppointmentList(h.booking.AppointmentsByClient(req.ID)), nil
}

func (h *Handler) ListAppointmentsByProvider(ctx context.Context, req *wire.IDRequest) (*wire.AppointmentList, error) {
	if req.ID != uid(ctx) {
		return nil, status.Error(codes.PermissionDenied, "not your appointments")
	}
	return toAppointmentList(h.booking.AppointmentsByProvider(req.ID)), nil
}

// UpdateAppointmentStatus is open to both parties of the appointment.
func (h *Handler) UpdateAppointmentStatus(ctx context.Context, req *wire.StatusRequest) (*wire.Appointment, error) {
	userID := uid(ctx)

	a, err := h.booking.AppointmentByID(req.ID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	// same error as missing so ids of others' appointments don't leak
	if a.ClientID != userID && a.ProviderID != userID {
		return nil, status.Error(codes.NotFound, "appointment not found")
	}

	a, err = h.booking.UpdateAppointmentStatus(req.ID, req.Status)
	if err != nil {
		return nil, h.toStatus(err)
	}
	out := wire.Appointment(a)
	return &out, nil
}

func toAppointmentList(as []model.Appointment) *wire.AppointmentList {
	out := &wire.AppointmentList{Appointments: make([]wire.Appointment, 0, len(as))}
	for _, a := range as {
		out.Appointments = append(out.Appointments, wire.Appointment(a))
	}
	return out
}
