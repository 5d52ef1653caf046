package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"servigest/internal/model"
	"servigest/internal/view"
)

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	switch view.Select(u.Role) {
	case view.ProviderDashboard:
		writeJSON(w, http.StatusOK, s.views.ProviderDashboard(u))
	default:
		filter := model.Status(r.URL.Query().Get("status"))
		if filter != "" && !filter.Valid() {
			filter = ""
		}
		writeJSON(w, http.StatusOK, s.views.ClientDashboard(u, filter))
	}
}

type statusForm struct {
	Status model.Status `json:"status"`
}

// updateStatus lets either party of an appointment change its status.
func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	id := chi.URLParam(r, "id")

	a, err := s.booking.AppointmentByID(id)
	if err != nil || (a.ClientID != u.ID && a.ProviderID != u.ID) {
		s.fail(w, r, http.StatusNotFound, "Update failed", "Appointment not found.")
		return
	}

	var f statusForm
	if err := decode(r, &f); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Update failed", "Invalid status.")
		return
	}
	a, err = s.booking.UpdateAppointmentStatus(id, f.Status)
	if err != nil {
		s.fail(w, r, httpStatus(err), "Update failed", err.Error())
		return
	}

	s.succeed(r, "Appointment updated", "The appointment is now "+string(a.Status)+".")
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) providerServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.views.ProviderServices(currentUser(r.Context())))
}

func (s *Server) addService(w http.ResponseWriter, r *http.Request) {
	var in model.ServiceInput
	if err := decode(r, &in); err != nil || in.Name == "" || in.DurationMinutes == 0 {
		s.fail(w, r, http.StatusBadRequest, "Required fields", "Please fill in all required fields.")
		return
	}

	svc, err := s.booking.AddService(in)
	if err != nil {
		s.fail(w, r, httpStatus(err), "Could not add service", err.Error())
		return
	}

	s.succeed(r, "Service added", "The service was added.")
	writeJSON(w, http.StatusCreated, svc)
}

func (s *Server) updateService(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.ownedService(w, r, "Could not update service")
	if !ok {
		return
	}

	var in model.ServiceInput
	if err := decode(r, &in); err != nil || in.Name == "" || in.DurationMinutes == 0 {
		s.fail(w, r, http.StatusBadRequest, "Required fields", "Please fill in all required fields.")
		return
	}

	svc, err := s.booking.UpdateService(model.Service{
		ID:              cur.ID,
		ProviderID:      cur.ProviderID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
	})
	if err != nil {
		s.fail(w, r, httpStatus(err), "Could not update service", err.Error())
		return
	}

	s.succeed(r, "Service updated", "The service was updated.")
	writeJSON(w, http.StatusOK, svc)
}

func (s *Server) deleteService(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.ownedService(w, r, "Could not remove service"); !ok {
		return
	}
	s.booking.DeleteService(chi.URLParam(r, "id"))
	s.succeed(r, "Service removed", "The service was removed.")
	w.WriteHeader(http.StatusNoContent)
}

// ownedService loads the service named in the path and checks it belongs to
// the current provider. It writes the error response itself.
func (s *Server) ownedService(w http.ResponseWriter, r *http.Request, title string) (model.Service, bool) {
	svc, err := s.booking.ServiceByID(chi.URLParam(r, "id"))
	if err != nil || svc.ProviderID != currentUser(r.Context()).ID {
		s.fail(w, r, http.StatusNotFound, title, "Service not found.")
		return model.Service{}, false
	}
	return svc, true
}

func (s *Server) providerClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.views.ProviderClients(currentUser(r.Context())))
}

func (s *Server) bookingPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bq := view.BookingQuery{ProviderID: q.Get("providerId"), ServiceID: q.Get("serviceId")}
	if d := q.Get("date"); d != "" {
		day, err := time.ParseInLocation(time.DateOnly, d, s.loc)
		if err != nil {
			s.fail(w, r, http.StatusBadRequest, "Invalid date", "Dates use the YYYY-MM-DD format.")
			return
		}
		bq.Date = day
	}
	writeJSON(w, http.StatusOK, s.views.Booking(bq))
}

type bookingForm struct {
	ProviderID string `json:"providerId"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Note       string `json:"note"`
}

func (s *Server) book(w http.ResponseWriter, r *http.Request) {
	var f bookingForm
	if err := decode(r, &f); err != nil || f.ProviderID == "" || f.ServiceID == "" || f.Date == "" || f.Time == "" {
		s.fail(w, r, http.StatusBadRequest, "Incomplete fields", "Please fill in all required fields.")
		return
	}
	at, err := time.ParseInLocation(time.DateOnly+" 15:04", f.Date+" "+f.Time, s.loc)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "Incomplete fields", "Please pick a valid date and time.")
		return
	}

	a, err := s.booking.AddAppointment(model.AppointmentInput{
		ClientID:    currentUser(r.Context()).ID,
		ProviderID:  f.ProviderID,
		ServiceID:   f.ServiceID,
		ScheduledAt: at,
		Note:        f.Note,
	})
	if err != nil {
		s.fail(w, r, httpStatus(err), "Booking failed", err.Error())
		return
	}

	s.succeed(r, "Booking complete!", "Your appointment has been scheduled.")
	writeJSON(w, http.StatusCreated, a)
}
