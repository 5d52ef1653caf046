package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servigest/internal/model"
	"servigest/internal/store"
	"servigest/internal/view"
)

var (
	client   = &model.User{ID: "2", Role: model.RoleClient}
	provider = &model.User{ID: "1", Role: model.RoleProvider}
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		session  store.Session
		path     string
		role     model.Role
		outcome  Outcome
		location string
		notice   string
	}{
		{"loading waits", store.Session{Loading: true}, view.PathDashboard, "", Wait, "", ""},
		{"loading waits even with user", store.Session{Loading: true, User: client}, view.PathBooking, model.RoleProvider, Wait, "", ""},
		{"anonymous to login", store.Session{}, view.PathDashboard, "", RedirectLogin, view.PathLogin, "You need to be logged in to access this page."},
		{"anonymous to login on role page", store.Session{}, view.PathBooking, model.RoleClient, RedirectLogin, view.PathLogin, "You need to be logged in to access this page."},
		{"any role allowed", store.Session{User: client}, view.PathDashboard, "", Allow, "", ""},
		{"client on provider page", store.Session{User: client}, view.PathProviderServices, model.RoleProvider, RedirectDashboard, view.PathDashboard, "Only service providers can access this page."},
		{"provider on client page", store.Session{User: provider}, view.PathBooking, model.RoleClient, RedirectDashboard, view.PathDashboard, "Only clients can access this page."},
		{"provider on provider page", store.Session{User: provider}, view.PathProviderClients, model.RoleProvider, Allow, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Check(tt.session, tt.path, tt.role)
			assert.Equal(t, tt.outcome, d.Outcome, d.Outcome.String())
			assert.Equal(t, tt.location, d.Location)
			if tt.notice == "" {
				assert.Nil(t, d.Notice)
				return
			}
			require.NotNil(t, d.Notice)
			assert.Equal(t, "Restricted access", d.Notice.Title)
			assert.Equal(t, tt.notice, d.Notice.Description)
		})
	}
}

func TestCheckRemembersRequestedPath(t *testing.T) {
	d := Check(store.Session{}, view.PathProviderClients, model.RoleProvider)
	assert.Equal(t, view.PathProviderClients, d.From)
}

func TestCheckPage(t *testing.T) {
	assert.Equal(t, Allow, CheckPage(store.Session{}, view.PathHome).Outcome)
	assert.Equal(t, Allow, CheckPage(store.Session{}, "/nope").Outcome)
	assert.Equal(t, RedirectLogin, CheckPage(store.Session{}, view.PathDashboard).Outcome)
	assert.Equal(t, RedirectDashboard, CheckPage(store.Session{User: provider}, view.PathBooking).Outcome)
	assert.Equal(t, Allow, CheckPage(store.Session{User: client}, view.PathBooking).Outcome)
}
