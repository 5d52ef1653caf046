package view

import (
	"time"

	"servigest/internal/model"
)

// Bookable hours on a given day, in the day's location.
const (
	firstSlotHour = 8
	lastSlotHour  = 18
	slotStep      = 30 * time.Minute
)

type Slot struct {
	Start     time.Time `json:"start"`
	Label     string    `json:"label"`
	Available bool      `json:"available"`
}

type BookingView struct {
	Providers  []model.Provider `json:"providers"`
	ProviderID string           `json:"providerId,omitempty"`
	Services   []model.Service  `json:"services"`
	ServiceID  string           `json:"serviceId,omitempty"`
	Date       string           `json:"date,omitempty"`
	Slots      []Slot           `json:"slots"`
}

// BookingQuery carries the client's current selections. Every field is optional.
type BookingQuery struct {
	ProviderID string
	ServiceID  string
	Date       time.Time
}

// Booking builds the booking page. Slots are computed only once a provider
// and a date are chosen; a selected service sets the slot length, otherwise
// each slot is checked for the step length.
func (b *Builder) Booking(q BookingQuery) BookingView {
	v := BookingView{
		Providers: b.catalog.ProvidersWithOfferings(),
		Services:  []model.Service{},
		Slots:     []Slot{},
	}
	if q.ProviderID == "" {
		return v
	}
	v.ProviderID = q.ProviderID
	v.Services = b.catalog.ServicesByProvider(q.ProviderID)

	d := slotStep
	for _, s := range v.Services {
		if s.ID == q.ServiceID {
			v.ServiceID = s.ID
			d = s.Duration()
		}
	}

	if q.Date.IsZero() {
		return v
	}
	v.Date = q.Date.Format(time.DateOnly)
	for _, t := range Slots(q.Date) {
		v.Slots = append(v.Slots, Slot{
			Start:     t,
			Label:     t.Format("15:04"),
			Available: b.catalog.IsAvailable(q.ProviderID, t, d),
		})
	}
	return v
}

// Slots returns the start times from 08:00 up to, not including, 18:00 every
// 30 minutes on day's date.
func Slots(day time.Time) []time.Time {
	y, m, d := day.Date()
	start := time.Date(y, m, d, firstSlotHour, 0, 0, 0, day.Location())
	end := time.Date(y, m, d, lastSlotHour, 0, 0, 0, day.Location())
	var out []time.Time
	for t := start; t.Before(end); t = t.Add(slotStep) {
		out = append(out, t)
	}
	return out
}
