package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDrain(t *testing.T) {
	q := NewQueue(4)
	assert.Empty(t, q.Drain())

	q.Notify(context.Background(), Notification{Title: "a"})
	q.Notify(context.Background(), Notification{Title: "b"})

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, "b", got[1].Title)
	assert.Empty(t, q.Drain())
}

func TestQueueDropsOldest(t *testing.T) {
	q := NewQueue(2)
	for _, title := range []string{"a", "b", "c"} {
		q.Notify(context.Background(), Notification{Title: title})
	}

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Title)
	assert.Equal(t, "c", got[1].Title)
}

func TestFanoutAndLog(t *testing.T) {
	var buf bytes.Buffer
	q := NewQueue(0)
	f := Fanout{q, NewLog(zerolog.New(&buf))}

	f.Notify(context.Background(), Notification{Title: "Restricted access", Description: "log in first", Severity: Error})

	assert.Len(t, q.Drain(), 1)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "Restricted access")
}
