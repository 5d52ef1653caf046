package store

import (
	"time"

	"servigest/internal/model"
)

// Fixed sample data loaded at startup.

func SeedUsers() []model.User {
	return []model.User{
		{ID: "1", Name: "Maria Silva", Email: "maria@exemplo.com", PhotoRef: "https://i.pravatar.cc/150?img=1", Role: model.RoleProvider},
		{ID: "2", Name: "João Santos", Email: "joao@exemplo.com", PhotoRef: "https://i.pravatar.cc/150?img=2", Role: model.RoleClient},
		{ID: "3", Name: "Ana Oliveira", Email: "ana@exemplo.com", PhotoRef: "https://i.pravatar.cc/150?img=3", Role: model.RoleProvider},
	}
}

func SeedServices() []model.Service {
	return []model.Service{
		{ID: "1", ProviderID: "1", Name: "Haircut", Description: "Full women's haircut", Price: 80, DurationMinutes: 60},
		{ID: "2", ProviderID: "1", Name: "Manicure", Description: "Complete hand nail treatment", Price: 40, DurationMinutes: 45},
		{ID: "3", ProviderID: "3", Name: "Relaxing Massage", Description: "Full-body relaxation massage", Price: 120, DurationMinutes: 60},
	}
}

func SeedAppointments() []model.Appointment {
	return []model.Appointment{
		{ID: "1", ClientID: "2", ProviderID: "1", ServiceID: "1", ScheduledAt: time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC), Status: model.StatusScheduled, Note: "First visit"},
		{ID: "2", ClientID: "2", ProviderID: "3", ServiceID: "3", ScheduledAt: time.Date(2025, 5, 15, 14, 30, 0, 0, time.UTC), Status: model.StatusScheduled},
		{ID: "3", ClientID: "2", ProviderID: "1", ServiceID: "2", ScheduledAt: time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC), Status: model.StatusCompleted},
	}
}
