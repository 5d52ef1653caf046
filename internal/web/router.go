// Package web serves the navigation surface: one JSON page model per logical
// path, gated by role.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"servigest/internal/model"
	"servigest/internal/notify"
	"servigest/internal/store"
	"servigest/internal/view"
)

type Server struct {
	identity *store.Identity
	booking  *store.Booking
	views    *view.Builder
	queue    *notify.Queue
	notifier notify.Notifier
	loc      *time.Location
	log      zerolog.Logger
}

// New wires the pages. Notifications go to queue, where GET /notifications
// picks them up, and to the log.
func New(id *store.Identity, bk *store.Booking, views *view.Builder, queue *notify.Queue, log zerolog.Logger) *Server {
	log = log.With().Str("component", "web").Logger()
	return &Server{
		identity: id,
		booking:  bk,
		views:    views,
		queue:    queue,
		notifier: notify.Fanout{queue, notify.NewLog(log)},
		loc:      time.Local,
		log:      log,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(accessLog(s.log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/notifications", s.notifications)

	// Public pages
	r.Get(view.PathHome, s.home)
	r.Get(view.PathLogin, s.loginPage)
	r.Post(view.PathLogin, s.login)
	r.Get(view.PathRegister, s.registerPage)
	r.Post(view.PathRegister, s.register)
	r.Post("/logout", s.logout)

	// Any logged-in user
	r.Group(func(r chi.Router) {
		r.Use(s.gate(""))
		r.Get(view.PathDashboard, s.dashboard)
		r.Post("/appointments/{id}/status", s.updateStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.gate(model.RoleProvider))
		r.Route(view.PathProviderServices, func(r chi.Router) {
			r.Get("/", s.providerServices)
			r.Post("/", s.addService)
			r.Put("/{id}", s.updateService)
			r.Delete("/{id}", s.deleteService)
		})
		r.Get(view.PathProviderClients, s.providerClients)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.gate(model.RoleClient))
		r.Get(view.PathBooking, s.bookingPage)
		r.Post(view.PathBooking, s.book)
	})

	return r
}

func accessLog(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug().
				Str("request_id", chiMiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("took", time.Since(start)).
				Msg("http")
		})
	}
}
