package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"servigest/internal/guard"
	"servigest/internal/model"
	"servigest/internal/notify"
)

type ctxKey struct{}

func currentUser(ctx context.Context) model.User {
	u, _ := ctx.Value(ctxKey{}).(model.User)
	return u
}

// gate applies the access guard. An empty role admits any logged-in user.
func (s *Server) gate(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := s.identity.Session()
			d := guard.Check(sess, r.URL.RequestURI(), role)
			switch d.Outcome {
			case guard.Wait:
				writeJSON(w, http.StatusAccepted, map[string]string{"state": "loading"})
				return
			case guard.RedirectLogin:
				s.notifier.Notify(r.Context(), *d.Notice)
				http.Redirect(w, r, d.Location+"?from="+url.QueryEscape(d.From), http.StatusSeeOther)
				return
			case guard.RedirectDashboard:
				s.notifier.Notify(r.Context(), *d.Notice)
				http.Redirect(w, r, d.Location, http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKey{}, *sess.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error        string              `json:"error"`
	Notification notify.Notification `json:"notification"`
}

// fail reports a form error both as a notification and in the response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, title, description string) {
	n := notify.Notification{Title: title, Description: description, Severity: notify.Error}
	s.notifier.Notify(r.Context(), n)
	writeJSON(w, code, errorBody{Error: description, Notification: n})
}

func (s *Server) succeed(r *http.Request, title, description string) {
	s.notifier.Notify(r.Context(), notify.Notification{Title: title, Description: description, Severity: notify.Success})
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
