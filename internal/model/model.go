package model

import "time"

type Role string

const (
	RoleClient   Role = "Client"
	RoleProvider Role = "Provider"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleProvider
}

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCanceled  Status = "Canceled"
)

// Statuses lists every appointment status in display order.
var Statuses = []Status{StatusScheduled, StatusCompleted, StatusCanceled}

func (s Status) Valid() bool {
	return s == StatusScheduled || s == StatusCompleted || s == StatusCanceled
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoRef string `json:"photoRef,omitempty"`
	Role     Role   `json:"role"`
}

type Service struct {
	ID              string  `json:"id"`
	ProviderID      string  `json:"providerId"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// ServiceInput is what a provider submits; id and owner are assigned by the store.
type ServiceInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

type Appointment struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	ProviderID  string    `json:"providerId"`
	ServiceID   string    `json:"serviceId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      Status    `json:"status"`
	Note        string    `json:"note,omitempty"`
}

type AppointmentInput struct {
	ClientID    string    `json:"clientId"`
	ProviderID  string    `json:"providerId"`
	ServiceID   string    `json:"serviceId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Note        string    `json:"note,omitempty"`
}

// Provider is a bookable provider as presented to clients.
type Provider struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	ServiceCount int    `json:"serviceCount"`
}
