package view

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servigest/internal/kv"
	"servigest/internal/model"
	"servigest/internal/store"
)

func fixture(t *testing.T, now time.Time) (*Builder, *store.Booking, *store.Identity) {
	t.Helper()
	id := store.NewIdentity(kv.NewMemory(), zerolog.Nop(), store.SeedUsers())
	require.NoError(t, id.Init(context.Background()))
	b := store.NewBooking(id, id, zerolog.Nop(), store.SeedServices(), store.SeedAppointments())
	return NewBuilder(b, id, func() time.Time { return now }), b, id
}

func TestSelect(t *testing.T) {
	assert.Equal(t, ProviderDashboard, Select(model.RoleProvider))
	assert.Equal(t, ClientDashboard, Select(model.RoleClient))
}

func TestNavLinks(t *testing.T) {
	assert.Len(t, NavLinks(model.RoleProvider), 3)
	assert.Len(t, NavLinks(model.RoleClient), 2)
	assert.Nil(t, NavLinks(""))

	for _, l := range NavLinks(model.RoleClient) {
		p, ok := PageFor(l.Path)
		require.True(t, ok, l.Path)
		assert.NotEqual(t, model.RoleProvider, p.Role)
	}
}

func TestClientDashboard(t *testing.T) {
	vb, _, id := fixture(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	joao, err := id.UserByID("2")
	require.NoError(t, err)

	v := vb.ClientDashboard(joao, "")
	require.Len(t, v.Appointments, 3)
	first := v.Appointments[0]
	assert.Equal(t, "Haircut", first.ServiceName)
	assert.Equal(t, 80.0, first.Price)
	assert.Equal(t, "Maria Silva", first.ProviderName)

	done := vb.ClientDashboard(joao, model.StatusCompleted)
	require.Len(t, done.Appointments, 1)
	assert.Equal(t, "3", done.Appointments[0].ID)
}

func TestProviderDashboard(t *testing.T) {
	vb, b, id := fixture(t, time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC))
	maria, err := id.UserByID("1")
	require.NoError(t, err)

	// seven more haircuts for João, one per day after the seed
	for i := 0; i < 7; i++ {
		_, err := b.AddAppointment(model.AppointmentInput{
			ClientID: "2", ProviderID: "1", ServiceID: "1",
			ScheduledAt: time.Date(2025, 5, 20+i, 10, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	v := vb.ProviderDashboard(maria)
	assert.Equal(t, 9, v.Total)
	assert.Equal(t, 40.0, v.Revenue)
	assert.Equal(t, 8, v.StatusCounts[model.StatusScheduled])
	assert.Equal(t, 1, v.StatusCounts[model.StatusCompleted])
	assert.Equal(t, 0, v.StatusCounts[model.StatusCanceled])

	require.Len(t, v.Upcoming, 5)
	assert.Equal(t, "1", v.Upcoming[0].ID)
	for i := 1; i < len(v.Upcoming); i++ {
		assert.True(t, v.Upcoming[i-1].ScheduledAt.Before(v.Upcoming[i].ScheduledAt))
	}

	require.Len(t, v.ByService, 2)
	assert.Equal(t, ServiceCount{ServiceID: "1", Name: "Haircut", Count: 8}, v.ByService[0])
	assert.Equal(t, ServiceCount{ServiceID: "2", Name: "Manicure", Count: 1}, v.ByService[1])
}

func TestProviderDashboardSkipsPast(t *testing.T) {
	vb, _, id := fixture(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	maria, err := id.UserByID("1")
	require.NoError(t, err)

	v := vb.ProviderDashboard(maria)
	assert.Empty(t, v.Upcoming)
	assert.NotNil(t, v.Upcoming)
}

func TestProviderClients(t *testing.T) {
	vb, _, id := fixture(t, time.Now())
	maria, err := id.UserByID("1")
	require.NoError(t, err)
	_, err = id.Register(context.Background(), "Lia", "lia@x.com", "pw", model.RoleClient)
	require.NoError(t, err)

	v := vb.ProviderClients(maria)
	require.Len(t, v.Clients, 1)
	st := v.Clients[0]
	assert.Equal(t, "2", st.Client.ID)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Completed)
	assert.Equal(t, 1, st.Scheduled)
	assert.Equal(t, 0, st.Canceled)
}

func TestProviderServices(t *testing.T) {
	vb, _, id := fixture(t, time.Now())
	ana, err := id.UserByID("3")
	require.NoError(t, err)

	v := vb.ProviderServices(ana)
	require.Len(t, v.Services, 1)
	assert.Equal(t, "Relaxing Massage", v.Services[0].Name)
}

func TestSlots(t *testing.T) {
	day := time.Date(2025, 5, 12, 15, 4, 0, 0, time.UTC)
	s := Slots(day)
	require.Len(t, s, 20)
	assert.Equal(t, time.Date(2025, 5, 12, 8, 0, 0, 0, time.UTC), s[0])
	assert.Equal(t, time.Date(2025, 5, 12, 17, 30, 0, 0, time.UTC), s[len(s)-1])
}

func TestBookingPage(t *testing.T) {
	vb, _, _ := fixture(t, time.Now())

	v := vb.Booking(BookingQuery{})
	assert.Len(t, v.Providers, 2)
	assert.Empty(t, v.Services)
	assert.Empty(t, v.Slots)

	// seed appointment 1 holds 10:00-11:00 for provider 1
	v = vb.Booking(BookingQuery{ProviderID: "1", ServiceID: "1", Date: time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)})
	assert.Len(t, v.Services, 2)
	assert.Equal(t, "2025-05-12", v.Date)
	require.Len(t, v.Slots, 20)

	avail := map[string]bool{}
	for _, s := range v.Slots {
		avail[s.Label] = s.Available
	}
	assert.True(t, avail["08:30"])
	assert.False(t, avail["09:30"], "60 minute haircut would run into 10:00")
	assert.False(t, avail["10:00"])
	assert.False(t, avail["10:30"])
	assert.True(t, avail["11:00"])
}

func TestProviderDashboardListsUnbookedServices(t *testing.T) {
	vb, b, id := fixture(t, time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC))
	maria, err := id.Login(context.Background(), "maria@exemplo.com", "pw")
	require.NoError(t, err)
	pedicure, err := b.AddService(model.ServiceInput{Name: "Pedicure", Price: 50, DurationMinutes: 40})
	require.NoError(t, err)

	v := vb.ProviderDashboard(maria)
	require.Len(t, v.ByService, 3)
	assert.Equal(t, ServiceCount{ServiceID: pedicure.ID, Name: "Pedicure", Count: 0}, v.ByService[2])

	// a deleted service drops out instead of showing up unnamed
	b.DeleteService("2")
	v = vb.ProviderDashboard(maria)
	require.Len(t, v.ByService, 2)
	for _, sc := range v.ByService {
		assert.NotEqual(t, "2", sc.ServiceID)
	}
}

func TestIDLess(t *testing.T) {
	assert.True(t, idLess("2", "10"))
	assert.False(t, idLess("10", "2"))
	assert.True(t, idLess("9", "abc"))
	assert.True(t, idLess("a", "b"))
}
