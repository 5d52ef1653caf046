package store

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"servigest/internal/model"
)

// Booking owns services and appointments. Entities only refer to users by id;
// the directory is consulted on writes to reject dangling references.
type Booking struct {
	mu           sync.RWMutex
	services     []model.Service
	appointments []model.Appointment

	// ids are never reused, even after a delete
	lastServiceID int
	lastApptID    int

	dir     Directory
	session SessionSource
	log     zerolog.Logger
}

func NewBooking(dir Directory, session SessionSource, log zerolog.Logger, services []model.Service, appts []model.Appointment) *Booking {
	b := &Booking{
		services:     append([]model.Service(nil), services...),
		appointments: append([]model.Appointment(nil), appts...),
		dir:          dir,
		session:      session,
		log:          log.With().Str("component", "booking").Logger(),
	}
	b.lastServiceID = maxID(len(services), func(i int) string { return services[i].ID })
	b.lastApptID = maxID(len(appts), func(i int) string { return appts[i].ID })
	return b
}

func maxID(n int, id func(int) string) int {
	m := 0
	for i := 0; i < n; i++ {
		if v, err := strconv.Atoi(id(i)); err == nil && v > m {
			m = v
		}
	}
	return m
}

func (b *Booking) nextServiceID() string {
	b.lastServiceID++
	return strconv.Itoa(b.lastServiceID)
}

func (b *Booking) nextApptID() string {
	b.lastApptID++
	return strconv.Itoa(b.lastApptID)
}
