package view

import "servigest/internal/model"

// Logical paths of the navigation surface.
const (
	PathHome             = "/"
	PathLogin            = "/login"
	PathRegister         = "/register"
	PathDashboard        = "/dashboard"
	PathProviderServices = "/provider/services"
	PathBooking          = "/booking"
	PathProviderClients  = "/provider/clients"
)

// Page describes who may open a path. Role is empty when any logged-in user may.
type Page struct {
	Name   string     `json:"name"`
	Path   string     `json:"path"`
	Public bool       `json:"public"`
	Role   model.Role `json:"role,omitempty"`
}

var Pages = []Page{
	{Name: "home", Path: PathHome, Public: true},
	{Name: "login", Path: PathLogin, Public: true},
	{Name: "register", Path: PathRegister, Public: true},
	{Name: "dashboard", Path: PathDashboard},
	{Name: "provider-services", Path: PathProviderServices, Role: model.RoleProvider},
	{Name: "booking", Path: PathBooking, Role: model.RoleClient},
	{Name: "provider-clients", Path: PathProviderClients, Role: model.RoleProvider},
}

// PageFor returns the page registered for path.
func PageFor(path string) (Page, bool) {
	for _, p := range Pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

type NavLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavLinks is the menu shown to a logged-in user of the given role.
func NavLinks(role model.Role) []NavLink {
	switch role {
	case model.RoleProvider:
		return []NavLink{
			{Label: "Dashboard", Path: PathDashboard},
			{Label: "My Services", Path: PathProviderServices},
			{Label: "My Clients", Path: PathProviderClients},
		}
	case model.RoleClient:
		return []NavLink{
			{Label: "Dashboard", Path: PathDashboard},
			{Label: "Book", Path: PathBooking},
		}
	}
	return nil
}
