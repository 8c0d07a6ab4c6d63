package intel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/intel-watch/internal/core/domain"
)

var t0 = time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

func TestLocations_Apply(t *testing.T) {
	l := NewLocations()

	require.True(t, l.Apply("Pilot", "JITA", t0))

	assert.False(t, l.Apply("Pilot", "AMARR", t0.Add(-time.Minute)), "older fact must not overwrite")
	assert.False(t, l.Apply("Pilot", "AMARR", t0), "equal timestamp is not newer")

	f, ok := l.LocationOf("Pilot")
	require.True(t, ok)
	assert.Equal(t, "JITA", f.System)

	require.True(t, l.Apply("Pilot", "AMARR", t0.Add(time.Minute)))

	f, _ = l.LocationOf("Pilot")
	assert.Equal(t, domain.LocationFact{System: "AMARR", LastUpdate: t0.Add(time.Minute)}, f)

	_, ok = l.LocationOf("Other")
	assert.False(t, ok)
}

func TestLocations_All(t *testing.T) {
	l := NewLocations()
	l.Apply("b", "JITA", t0)
	l.Apply("a", "JITA", t0)
	l.Apply("c", "AMARR", t0)

	all := l.All()
	assert.Len(t, all, 3)

	delete(all, "a")
	_, ok := l.LocationOf("a")
	assert.True(t, ok, "All must return a copy")
}

func TestBoard_SetStatus(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, domain.StatusUnknown, b.StatusOf("JITA"))

	require.True(t, b.SetStatus("JITA", domain.StatusAlarm, t0))
	assert.False(t, b.SetStatus("JITA", domain.StatusRequest, t0.Add(time.Minute)))
	assert.False(t, b.SetStatus("JITA", domain.StatusNotChange, t0.Add(time.Minute)))
	assert.False(t, b.SetStatus("JITA", domain.StatusLocation, t0.Add(time.Minute)))
	assert.Equal(t, domain.StatusAlarm, b.StatusOf("JITA"))

	require.True(t, b.SetStatus("JITA", domain.StatusClear, t0.Add(2*time.Minute)))

	age, ok := b.AlarmAge("JITA", t0.Add(5*time.Minute))
	require.True(t, ok)
	assert.Equal(t, 3*time.Minute, age)
	assert.Equal(t, BandNone, b.AlarmBand("JITA", t0.Add(5*time.Minute)))
	assert.Equal(t, []string{"JITA"}, b.Systems())
}

func TestBoard_AlarmBand(t *testing.T) {
	b := NewBoard()
	b.SetStatus("JITA", domain.StatusAlarm, t0)

	tests := []struct {
		after time.Duration
		want  AlarmBand
	}{
		{0, BandFresh},
		{3*time.Minute + 59*time.Second, BandFresh},
		{4 * time.Minute, BandRecent},
		{12 * time.Minute, BandFading},
		{20 * time.Minute, BandOld},
		{2 * time.Hour, BandStale},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, b.AlarmBand("JITA", t0.Add(tt.after)))
		})
	}
}

func TestPruneExpired(t *testing.T) {
	jita := domain.NewSystem("JITA")
	jita.AddMessage(&domain.Message{Timestamp: t0})
	jita.AddMessage(&domain.Message{Timestamp: t0.Add(15 * time.Minute)})

	removed := PruneExpired([]*domain.System{jita}, t0.Add(25*time.Minute), DefaultMessageTTL)

	assert.Equal(t, 1, removed)
	require.Len(t, jita.Messages(), 1)
	assert.Equal(t, t0.Add(15*time.Minute), jita.Messages()[0].Timestamp)
}
