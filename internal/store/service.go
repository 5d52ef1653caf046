package store

import (
	"fmt"
	"strings"

	"servigest/internal/model"
)

func validateService(in model.ServiceInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("service name required: %w", model.ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", model.ErrValidation)
	}
	if in.DurationMinutes <= 0 {
		return fmt.Errorf("duration must be positive: %w", model.ErrValidation)
	}
	return nil
}

func (b *Booking) ServiceByID(id string) (model.Service, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i := b.serviceIndex(id); i >= 0 {
		return b.services[i], nil
	}
	return model.Service{}, fmt.Errorf("service %s: %w", id, model.ErrNotFound)
}

// ServicesByProvider returns the provider's services in insertion order.
func (b *Booking) ServicesByProvider(providerID string) []model.Service {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := []model.Service{}
	for _, s := range b.services {
		if s.ProviderID == providerID {
			out = append(out, s)
		}
	}
	return out
}

// AllProviders lists every provider in the user catalog with its number of
// services, in catalog order.
func (b *Booking) AllProviders() []model.Provider {
	users := b.dir.UsersByRole(model.RoleProvider)

	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Provider, 0, len(users))
	for _, u := range users {
		n := 0
		for _, s := range b.services {
			if s.ProviderID == u.ID {
				n++
			}
		}
		out = append(out, model.Provider{ID: u.ID, DisplayName: u.Name, ServiceCount: n})
	}
	return out
}

// ProvidersWithOfferings is AllProviders minus providers without services.
func (b *Booking) ProvidersWithOfferings() []model.Provider {
	all := b.AllProviders()
	out := all[:0]
	for _, p := range all {
		if p.ServiceCount > 0 {
			out = append(out, p)
		}
	}
	return out
}

// AddService creates a service owned by the logged-in provider.
func (b *Booking) AddService(in model.ServiceInput) (model.Service, error) {
	u, ok := b.session.Current()
	if !ok {
		return model.Service{}, fmt.Errorf("add service: %w", model.ErrUnauthenticated)
	}
	if u.Role != model.RoleProvider {
		return model.Service{}, fmt.Errorf("only providers offer services: %w", model.ErrForbidden)
	}
	if err := validateService(in); err != nil {
		return model.Service{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	s := model.Service{
		ID:              b.nextServiceID(),
		ProviderID:      u.ID,
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
	}
	b.services = append(b.services, s)

	b.log.Debug().Str("service_id", s.ID).Str("provider_id", s.ProviderID).Msg("service added")
	return s, nil
}

// UpdateService replaces the editable fields of the service with the same id.
// The owner never changes.
func (b *Booking) UpdateService(svc model.Service) (model.Service, error) {
	if err := validateService(model.ServiceInput{
		Name: svc.Name, Description: svc.Description, Price: svc.Price, DurationMinutes: svc.DurationMinutes,
	}); err != nil {
		return model.Service{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.serviceIndex(svc.ID)
	if i < 0 {
		return model.Service{}, fmt.Errorf("service %s: %w", svc.ID, model.ErrNotFound)
	}
	cur := &b.services[i]
	cur.Name = strings.TrimSpace(svc.Name)
	cur.Description = svc.Description
	cur.Price = svc.Price
	cur.DurationMinutes = svc.DurationMinutes

	b.log.Debug().Str("service_id", cur.ID).Msg("service updated")
	return *cur, nil
}

// DeleteService removes the service. Unknown ids are ignored.
func (b *Booking) DeleteService(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.serviceIndex(id)
	if i < 0 {
		return
	}
	b.services = append(b.services[:i:i], b.services[i+1:]...)
	b.log.Debug().Str("service_id", id).Msg("service deleted")
}

// caller holds b.mu
func (b *Booking) serviceIndex(id string) int {
	for i := range b.services {
		if b.services[i].ID == id {
			return i
		}
	}
	return -1
}
