package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"servigest/internal/model"
)

func TestAppointmentEncoding(t *testing.T) {
	in := Appointment{
		ID: "7", ClientID: "2", ProviderID: "1", ServiceID: "1",
		ScheduledAt: time.Date(2025, 5, 12, 10, 0, 0, 500, time.UTC),
		Status:      model.StatusScheduled,
		Note:        "bring towel",
	}
	var out Appointment
	require.NoError(t, out.UnmarshalWire(in.MarshalWire()))
	assert.Equal(t, in, out)
}

func TestServiceKeepsPrice(t *testing.T) {
	in := Service{ID: "1", ProviderID: "1", Name: "Haircut", Price: 80.5, DurationMinutes: 60}
	var out Service
	require.NoError(t, out.UnmarshalWire(in.MarshalWire()))
	assert.Equal(t, in, out)
}

func TestRepeatedAndNested(t *testing.T) {
	list := ProviderList{Providers: []Provider{
		{ID: "1", DisplayName: "Maria Silva", ServiceCount: 2},
		{ID: "3", DisplayName: "Ana Oliveira"},
	}}
	var got ProviderList
	require.NoError(t, got.UnmarshalWire(list.MarshalWire()))
	assert.Equal(t, list, got)

	reply := AuthReply{Token: "tok", User: User{ID: "2", Name: "João", Role: model.RoleClient}}
	var r AuthReply
	require.NoError(t, r.UnmarshalWire(reply.MarshalWire()))
	assert.Equal(t, reply, r)
}

func TestUnknownFieldsSkipped(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 99, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = appendString(b, 1, "5")

	var req IDRequest
	require.NoError(t, req.UnmarshalWire(b))
	assert.Equal(t, "5", req.ID)
}

func TestTruncatedInput(t *testing.T) {
	b := (&IDRequest{ID: "12345"}).MarshalWire()
	var req IDRequest
	assert.Error(t, req.UnmarshalWire(b[:len(b)-2]))
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	_, err := Codec{}.Marshal("nope")
	assert.Error(t, err)
	assert.Error(t, Codec{}.Unmarshal(nil, 3))
	assert.Equal(t, "proto", Codec{}.Name())
}
