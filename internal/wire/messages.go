package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"servigest/internal/model"
)

// Message is implemented by every request and response of the service.
type Message interface {
	MarshalWire() []byte
	UnmarshalWire(b []byte) error
}

type Empty struct{}

func (*Empty) MarshalWire() []byte          { return nil }
func (*Empty) UnmarshalWire(b []byte) error { return walk(b, func(field) error { return nil }) }

// Credentials is the Login and Register request. Name and Role are only read
// by Register.
type Credentials struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
}

func (m *Credentials) MarshalWire() []byte {
	var out []byte
	out = appendString(out, 1, m.Email)
	out = appendString(out, 2, m.Password)
	out = appendString(out, 3, m.Name)
	out = appendString(out, 4, string(m.Role))
	return out
}

func (m *Credentials) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if !f.is(protowire.BytesType) {
			return nil
		}
		switch f.num {
		case 1:
			m.Email = f.str()
		case 2:
			m.Password = f.str()
		case 3:
			m.Name = f.str()
		case 4:
			m.Role = model.Role(f.str())
		}
		return nil
	})
}

type User model.User

func (m *User) MarshalWire() []byte {
	var out []byte
	out = appendString(out, 1, m.ID)
	out = appendString(out, 2, m.Name)
	out = appendString(out, 3, m.Email)
	out = appendString(out, 4, m.PhotoRef)
	out = appendString(out, 5, string(m.Role))
	return out
}

func (m *User) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if !f.is(protowire.BytesType) {
			return nil
		}
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.Name = f.str()
		case 3:
			m.Email = f.str()
		case 4:
			m.PhotoRef = f.str()
		case 5:
			m.Role = model.Role(f.str())
		}
		return nil
	})
}

type AuthReply struct {
	Token string
	User  User
}

func (m *AuthReply) MarshalWire() []byte {
	var out []byte
	out = appendString(out, 1, m.Token)
	out = appendMessage(out, 2, m.User.MarshalWire())
	return out
}

func (m *AuthReply) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if !f.is(protowire.BytesType) {
			return nil
		}
		switch f.num {
		case 1:
			m.Token = f.str()
		case 2:
			return m.User.UnmarshalWire(f.bytes)
		}
		return nil
	})
}

type IDRequest struct {
	ID string
}

func (m *IDRequest) MarshalWire() []byte { return appendString(nil, 1, m.ID) }

func (m *IDRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 && f.is(protowire.BytesType) {
			m.ID = f.str()
		}
		return nil
	})
}

type Service model.Service

func (m *Service) MarshalWire() []byte {
	var out []byte
	out = appendString(out, 1, m.ID)
	out = appendString(out, 2, m.ProviderID)
	out = appendString(out, 3, m.Name)
	out = appendString(out, 4, m.Description)
	out = appendDouble(out, 5, m.Price)
	out = appendVarint(out, 6, uint64(m.DurationMinutes))
	return out
}

func (m *Service) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch {
		case f.num == 1 && f.is(protowire.BytesType):
			m.ID = f.str()
		case f.num == 2 && f.is(protowire.BytesType):
			m.ProviderID = f.str()
		case f.num == 3 && f.is(protowire.BytesType):
			m.Name = f.str()
		case f.num == 4 && f.is(protowire.BytesType):
			m.Description = f.str()
		case f.num == 5 && f.is(protowire.Fixed64Type):
			m.Price = f.float()
		case f.num == 6 && f.is(protowire.VarintType):
			m.DurationMinutes = int(int64(f.varint))
		}
		return nil
	})
}

type ServiceList struct {
	Services []Service
}

func (m *ServiceList) MarshalWire() []byte {
	var out []byte
	for i := range m.Services {
		out = appendMessage(out, 1, m.Services[i].MarshalWire())
	}
	return out
}

func (m *ServiceList) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 || !f.is(protowire.BytesType) {
			return nil
		}
		var s Service
		if err := s.UnmarshalWire(f.bytes); err != nil {
			return err
		}
		m.Services = append(m.Services, s)
		return nil
	})
}

// ProviderQuery selects every provider when All is set, otherwise only those
// offering at least one service.
type ProviderQuery struct {
	All bool
}

func (m *ProviderQuery) MarshalWire() []byte { return appendBool(nil, 1, m.All) }

func (m *ProviderQuery) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 && f.is(protowire.VarintType) {
			m.All = protowire.DecodeBool(f.varint)
		}
		return nil
	})
}

type Provider model.Provider

func (m *Provider) MarshalWire() []byte {
	var out []byte
	out = appendString(out, 1, m.ID)
	out = appendString(out, 2, m.DisplayName)
	out = appendVarint(out, 3, uint64(m.ServiceCount))
	return out
}

func (m *Provider) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch {
		case f.num == 1 && f.is(protowire.BytesType):
			m.ID = f.str()
		case f.num == 2 && f.is(protowire.BytesType):
			m.DisplayName = f.str()
		case f.num == 3 && f.is(protowire.VarintType):
			m.ServiceCount = int(int64(f.varint))
		}
		return nil
	})
}

type ProviderList struct {
	Providers []Provider
}

func (m *ProviderList) MarshalWire() []byte {
	var out []byte
	for i := range m.Providers {
		out = appendMessage(out, 1, m.Providers[i].MarshalWire())
	}
	return out
}

func (m *ProviderList) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 || !f.is(protowire.BytesType) {
			return nil
		}
		var p Provider
		if err := p.UnmarshalWire(f.bytes); err != nil {
			return err
		}
		m.Providers = append(m.Providers, p)
		return nil
	})
}

type Appointment model.Appointment

func (m *Appointment) MarshalWire() []byte {
	var out []byte
	out = appendString(out, 1, m.ID)
	out = appendString(out, 2, m.ClientID)
	out = appendString(out, 3, m.ProviderID)
	out = appendString(out, 4, m.ServiceID)
	out = appendTimestamp(out, 5, m.ScheduledAt)
	out = appendString(out, 6, string(m.Status))
	out = appendString(out, 7, m.Note)
	return out
}

func (m *Appointment) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if !f.is(protowire.BytesType) {
			return nil
		}
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.ClientID = f.str()
		case 3:
			m.ProviderID = f.str()
		case 4:
			m.ServiceID = f.str()
		case 5:
			t, err := parseTimestamp(f.bytes)
			if err != nil {
				return err
			}
			m.ScheduledAt = t
		case 6:
			m.Status = model.Status(f.str())
		case 7:
			m.Note = f.str()
		}
		return nil
	})
}

type AppointmentList struct {
	Appointments []Appointment
}

func (m *AppointmentList) MarshalWire() []byte {
	var out []byte
	for i := range m.Appointments {
		out = appendMessage(out, 1, m.Appointments[i].MarshalWire())
	}
	return out
}

func (m *AppointmentList) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 || !f.is(protowire.BytesType) {
			return nil
		}
		var a Appointment
		if err := a.UnmarshalWire(f.bytes); err != nil {
			return err
		}
		m.Appointments = append(m.Appointments, a)
		return nil
	})
}

type StatusRequest struct {
	ID     string
	Status model.Status
}

func (m *StatusRequest) MarshalWire() []byte {
	var out []byte
	out = appendString(out, 1, m.ID)
	out = appendString(out, 2, string(m.Status))
	return out
}

func (m *StatusRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if !f.is(protowire.BytesType) {
			return nil
		}
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.Status = model.Status(f.str())
		}
		return nil
	})
}
