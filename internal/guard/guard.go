// Package guard decides whether a role-restricted page may be shown.
package guard

import (
	"servigest/internal/model"
	"servigest/internal/notify"
	"servigest/internal/store"
	"servigest/internal/view"
)

type Outcome int

const (
	Allow Outcome = iota
	// Wait means the session is still loading; show a neutral state, do not redirect.
	Wait
	RedirectLogin
	RedirectDashboard
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	}
	return "unknown"
}

type Decision struct {
	Outcome  Outcome
	Location string
	// From is the requested path.
	From   string
	Notice *notify.Notification
}

var (
	noticeLoginRequired = notify.Notification{
		Title:       "Restricted access",
		Description: "You need to be logged in to access this page.",
		Severity:    notify.Error,
	}
	noticeProvidersOnly = notify.Notification{
		Title:       "Restricted access",
		Description: "Only service providers can access this page.",
		Severity:    notify.Error,
	}
	noticeClientsOnly = notify.Notification{
		Title:       "Restricted access",
		Description: "Only clients can access this page.",
		Severity:    notify.Error,
	}
)

// Check gates path for the given session. An empty role admits any
// logged-in user.
func Check(s store.Session, path string, role model.Role) Decision {
	if s.Loading {
		return Decision{Outcome: Wait}
	}
	if s.User == nil {
		n := noticeLoginRequired
		return Decision{Outcome: RedirectLogin, Location: view.PathLogin, From: path, Notice: &n}
	}
	if role != "" && s.User.Role != role {
		n := noticeClientsOnly
		if role == model.RoleProvider {
			n = noticeProvidersOnly
		}
		return Decision{Outcome: RedirectDashboard, Location: view.PathDashboard, From: path, Notice: &n}
	}
	return Decision{Outcome: Allow}
}

// CheckPage looks up the page's requirements. Unknown and public paths are allowed.
func CheckPage(s store.Session, path string) Decision {
	p, ok := view.PageFor(path)
	if !ok || p.Public {
		return Decision{Outcome: Allow}
	}
	return Check(s, path, p.Role)
}
