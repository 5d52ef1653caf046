// Package view builds the role-specific page models.
package view

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"servigest/internal/model"
	"servigest/internal/store"
)

// Dashboard names the dashboard variant shown to a role.
type Dashboard string

const (
	ClientDashboard   Dashboard = "client"
	ProviderDashboard Dashboard = "provider"
)

// Select picks the dashboard for role. Unknown roles get the client view.
func Select(role model.Role) Dashboard {
	if role == model.RoleProvider {
		return ProviderDashboard
	}
	return ClientDashboard
}

// Catalog is the part of the Booking store the views read.
type Catalog interface {
	ServiceByID(id string) (model.Service, error)
	ServicesByProvider(providerID string) []model.Service
	ProvidersWithOfferings() []model.Provider
	AppointmentsByClient(clientID string) []model.Appointment
	AppointmentsByProvider(providerID string) []model.Appointment
	IsAvailable(providerID string, start time.Time, d time.Duration) bool
}

type Builder struct {
	catalog Catalog
	dir     store.Directory
	now     func() time.Time
}

func NewBuilder(catalog Catalog, dir store.Directory, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{catalog: catalog, dir: dir, now: now}
}

// AppointmentRow is an appointment joined with its service and counterpart.
type AppointmentRow struct {
	model.Appointment
	ServiceName  string  `json:"serviceName"`
	Price        float64 `json:"price"`
	ProviderName string  `json:"providerName,omitempty"`
	ClientName   string  `json:"clientName,omitempty"`
}

func (b *Builder) row(a model.Appointment) AppointmentRow {
	r := AppointmentRow{Appointment: a, ServiceName: "Unknown service"}
	if s, err := b.catalog.ServiceByID(a.ServiceID); err == nil {
		r.ServiceName = s.Name
		r.Price = s.Price
	}
	r.ProviderName = b.userName(a.ProviderID)
	r.ClientName = b.userName(a.ClientID)
	return r
}

func (b *Builder) userName(id string) string {
	if u, err := b.dir.UserByID(id); err == nil {
		return u.Name
	}
	return fmt.Sprintf("User %s", id)
}

type ClientDashboardView struct {
	Kind         Dashboard        `json:"kind"`
	User         model.User       `json:"user"`
	Filter       model.Status     `json:"filter,omitempty"`
	Appointments []AppointmentRow `json:"appointments"`
}

// ClientDashboard lists the client's appointments, optionally limited to one status.
func (b *Builder) ClientDashboard(u model.User, filter model.Status) ClientDashboardView {
	v := ClientDashboardView{Kind: ClientDashboard, User: u, Filter: filter, Appointments: []AppointmentRow{}}
	for _, a := range b.catalog.AppointmentsByClient(u.ID) {
		if filter != "" && a.Status != filter {
			continue
		}
		v.Appointments = append(v.Appointments, b.row(a))
	}
	return v
}

type ServiceCount struct {
	ServiceID string `json:"serviceId"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

type ProviderDashboardView struct {
	Kind         Dashboard            `json:"kind"`
	User         model.User           `json:"user"`
	Total        int                  `json:"totalAppointments"`
	Revenue      float64              `json:"revenue"`
	Upcoming     []AppointmentRow     `json:"upcoming"`
	ByService    []ServiceCount       `json:"byService"`
	StatusCounts map[model.Status]int `json:"statusCounts"`
}

const upcomingLimit = 5

func (b *Builder) ProviderDashboard(u model.User) ProviderDashboardView {
	appts := b.catalog.AppointmentsByProvider(u.ID)
	v := ProviderDashboardView{
		Kind:         ProviderDashboard,
		User:         u,
		Total:        len(appts),
		Upcoming:     []AppointmentRow{},
		ByService:    []ServiceCount{},
		StatusCounts: make(map[model.Status]int, len(model.Statuses)),
	}
	for _, st := range model.Statuses {
		v.StatusCounts[st] = 0
	}

	now := b.now()
	counts := map[string]int{}
	var upcoming []model.Appointment
	for _, a := range appts {
		v.StatusCounts[a.Status]++
		counts[a.ServiceID]++
		if a.Status == model.StatusCompleted {
			if s, err := b.catalog.ServiceByID(a.ServiceID); err == nil {
				v.Revenue += s.Price
			}
		}
		if a.Status == model.StatusScheduled && a.ScheduledAt.After(now) {
			upcoming = append(upcoming, a)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].ScheduledAt.Before(upcoming[j].ScheduledAt) })
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	for _, a := range upcoming {
		v.Upcoming = append(v.Upcoming, b.row(a))
	}

	for _, s := range b.catalog.ServicesByProvider(u.ID) {
		v.ByService = append(v.ByService, ServiceCount{ServiceID: s.ID, Name: s.Name, Count: counts[s.ID]})
	}
	sort.SliceStable(v.ByService, func(i, j int) bool {
		if v.ByService[i].Count != v.ByService[j].Count {
			return v.ByService[i].Count > v.ByService[j].Count
		}
		return idLess(v.ByService[i].ServiceID, v.ByService[j].ServiceID)
	})
	return v
}

// idLess orders numeric ids by value, anything else lexically after them.
func idLess(a, b string) bool {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return x < y
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

type ProviderServicesView struct {
	Provider model.User      `json:"provider"`
	Services []model.Service `json:"services"`
}

func (b *Builder) ProviderServices(u model.User) ProviderServicesView {
	return ProviderServicesView{Provider: u, Services: b.catalog.ServicesByProvider(u.ID)}
}

type ClientStats struct {
	Client    model.User `json:"client"`
	Total     int        `json:"total"`
	Completed int        `json:"completed"`
	Scheduled int        `json:"scheduled"`
	Canceled  int        `json:"canceled"`
}

type ProviderClientsView struct {
	Provider model.User    `json:"provider"`
	Clients  []ClientStats `json:"clients"`
}

// ProviderClients summarizes, per client in catalog order, the appointments
// booked with the provider. Clients without any are left out.
func (b *Builder) ProviderClients(u model.User) ProviderClientsView {
	appts := b.catalog.AppointmentsByProvider(u.ID)
	v := ProviderClientsView{Provider: u, Clients: []ClientStats{}}
	for _, c := range b.dir.UsersByRole(model.RoleClient) {
		st := ClientStats{Client: c}
		for _, a := range appts {
			if a.ClientID != c.ID {
				continue
			}
			st.Total++
			switch a.Status {
			case model.StatusCompleted:
				st.Completed++
			case model.StatusScheduled:
				st.Scheduled++
			case model.StatusCanceled:
				st.Canceled++
			}
		}
		if st.Total > 0 {
			v.Clients = append(v.Clients, st)
		}
	}
	return v
}
