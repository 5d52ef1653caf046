package store

import (
	"fmt"
	"time"

	"servigest/internal/model"
)

// AddAppointment books a service. The client, provider and service must exist
// and line up, and the slot must not overlap another scheduled appointment of
// the same provider.
func (b *Booking) AddAppointment(in model.AppointmentInput) (model.Appointment, error) {
	if in.ScheduledAt.IsZero() {
		return model.Appointment{}, fmt.Errorf("scheduled time required: %w", model.ErrValidation)
	}
	if err := b.checkParty(in.ClientID, model.RoleClient); err != nil {
		return model.Appointment{}, err
	}
	if err := b.checkParty(in.ProviderID, model.RoleProvider); err != nil {
		return model.Appointment{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	si := b.serviceIndex(in.ServiceID)
	if si < 0 {
		return model.Appointment{}, fmt.Errorf("unknown service %s: %w", in.ServiceID, model.ErrValidation)
	}
	svc := b.services[si]
	if svc.ProviderID != in.ProviderID {
		return model.Appointment{}, fmt.Errorf("service %s is not offered by provider %s: %w", svc.ID, in.ProviderID, model.ErrValidation)
	}

	// app-level overlap check
	if !b.available(in.ProviderID, in.ScheduledAt, svc.Duration()) {
		return model.Appointment{}, fmt.Errorf("time conflicts with existing appointment: %w", model.ErrConflict)
	}

	a := model.Appointment{
		ID:          b.nextApptID(),
		ClientID:    in.ClientID,
		ProviderID:  in.ProviderID,
		ServiceID:   in.ServiceID,
		ScheduledAt: in.ScheduledAt,
		Status:      model.StatusScheduled,
		Note:        in.Note,
	}
	b.appointments = append(b.appointments, a)

	b.log.Debug().Str("appointment_id", a.ID).Str("client_id", a.ClientID).Str("provider_id", a.ProviderID).Msg("appointment booked")
	return a, nil
}

func (b *Booking) checkParty(id string, role model.Role) error {
	u, err := b.dir.UserByID(id)
	if err != nil {
		return fmt.Errorf("unknown %s %q: %w", role, id, model.ErrValidation)
	}
	if u.Role != role {
		return fmt.Errorf("user %s is not a %s: %w", id, role, model.ErrValidation)
	}
	return nil
}

// UpdateAppointmentStatus sets the status of one appointment. Any status may
// follow any other.
func (b *Booking) UpdateAppointmentStatus(id string, status model.Status) (model.Appointment, error) {
	if !status.Valid() {
		return model.Appointment{}, fmt.Errorf("status %q: %w", status, model.ErrValidation)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.appointments {
		if b.appointments[i].ID == id {
			b.appointments[i].Status = status
			b.log.Debug().Str("appointment_id", id).Str("status", string(status)).Msg("appointment status changed")
			return b.appointments[i], nil
		}
	}
	return model.Appointment{}, fmt.Errorf("appointment %s: %w", id, model.ErrNotFound)
}

func (b *Booking) AppointmentByID(id string) (model.Appointment, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, a := range b.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Appointment{}, fmt.Errorf("appointment %s: %w", id, model.ErrNotFound)
}

func (b *Booking) AppointmentsByClient(clientID string) []model.Appointment {
	return b.filterAppointments(func(a model.Appointment) bool { return a.ClientID == clientID })
}

func (b *Booking) AppointmentsByProvider(providerID string) []model.Appointment {
	return b.filterAppointments(func(a model.Appointment) bool { return a.ProviderID == providerID })
}

func (b *Booking) filterAppointments(keep func(model.Appointment) bool) []model.Appointment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := []model.Appointment{}
	for _, a := range b.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

// IsAvailable reports whether the provider has no scheduled appointment
// overlapping [start, start+d).
func (b *Booking) IsAvailable(providerID string, start time.Time, d time.Duration) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.available(providerID, start, d)
}

// caller holds b.mu; end is exclusive so back-to-back slots are fine
func (b *Booking) available(providerID string, start time.Time, d time.Duration) bool {
	end := start.Add(d)
	for _, a := range b.appointments {
		if a.ProviderID != providerID || a.Status != model.StatusScheduled {
			continue
		}
		aEnd := a.ScheduledAt.Add(b.durationOf(a.ServiceID))
		if a.ScheduledAt.Before(end) && aEnd.After(start) {
			return false
		}
	}
	return true
}

// durationOf falls back to an instant for appointments whose service was deleted.
func (b *Booking) durationOf(serviceID string) time.Duration {
	if i := b.serviceIndex(serviceID); i >= 0 {
		return b.services[i].Duration()
	}
	return 0
}
