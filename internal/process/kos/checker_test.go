package kos

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/intel-watch/internal/core/errors"
)

type fakeRoster struct {
	pilots    []PilotEntry
	units     map[string]bool
	err       error
	unitCalls int
}

func (f *fakeRoster) LookupPilots(context.Context, []string) ([]PilotEntry, error) {
	return f.pilots, f.err
}

func (f *fakeRoster) UnitKOS(_ context.Context, unit string) (bool, error) {
	f.unitCalls++
	return f.units[unit], nil
}

type fakeIdentity struct {
	ids       map[string]int64
	histories map[int64][]int64
	names     map[int64]string
}

func (f *fakeIdentity) NamesToIDs(_ context.Context, names []string) (map[string]int64, error) {
	out := map[string]int64{}

	for _, n := range names {
		if id, ok := f.ids[n]; ok {
			out[n] = id
		}
	}

	return out, nil
}

func (f *fakeIdentity) CorporationHistory(_ context.Context, id int64) ([]int64, error) {
	h, ok := f.histories[id]
	if !ok {
		return nil, fmt.Errorf("history %d: %w", id, errors.ErrIdentityUnavailable)
	}

	return h, nil
}

func (f *fakeIdentity) IDsToNames(_ context.Context, ids []int64) (map[int64]string, error) {
	out := map[int64]string{}
	for _, id := range ids {
		out[id] = f.names[id]
	}

	return out, nil
}

func TestCheck(t *testing.T) {
	roster := &fakeRoster{
		pilots: []PilotEntry{
			{Name: "Pirate", Corp: "Evil Corp"},
			{Name: "Ally", Corp: "Bad Corp", CorpKOS: true},
			{Name: "Friend", Corp: "Nice Corp"},
			{Name: "Rookie", Corp: "State War Academy"},
			{Name: "Hopper", Corp: "Amarr Navy"},
			{Name: "Stranger", Corp: "Someone Else Entirely"},
		},
		units: map[string]bool{"Evil Corp": true},
	}
	roster.pilots[0].AllianceKOS = true

	identity := &fakeIdentity{
		ids: map[string]int64{"Rookie": 1, "Hopper": 2, "Ghost": 3},
		histories: map[int64][]int64{
			1: {100, 200},
			2: {100, 101},
			3: {300},
		},
		names: map[int64]string{
			100: "State War Academy",
			101: "Center for Advanced Studies",
			200: "Evil Corp",
			300: "Nice Corp",
		},
	}

	c := NewChecker(roster, identity, nil)

	got, err := c.Check(context.Background(), []string{"Pirate", "Ally", "Friend", "Rookie", "Hopper", "Ghost", " ", "Pirate"})
	require.NoError(t, err)

	assert.Equal(t, Result{
		"Pirate": VerdictKOS,
		"Ally":   VerdictKOS,
		"Friend": VerdictNotKOS,
		"Rookie": VerdictRedByLast,
		"Hopper": VerdictUnknown,
		"Ghost":  VerdictUnknown,
	}, got)
}

func TestCheck_RosterFailure(t *testing.T) {
	c := NewChecker(&fakeRoster{err: errors.ErrUnexpectedStatus}, nil, nil)

	got, err := c.Check(context.Background(), []string{"Pirate"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, errors.ErrRosterUnavailable))
}

func TestCheck_NoNames(t *testing.T) {
	c := NewChecker(&fakeRoster{}, nil, nil)

	_, err := c.Check(context.Background(), []string{" ", ""})
	assert.True(t, errors.Is(err, errors.ErrNoNames))
}

func TestCheck_UnitLookupsAreShared(t *testing.T) {
	roster := &fakeRoster{units: map[string]bool{"Evil Corp": true}}
	identity := &fakeIdentity{
		ids:       map[string]int64{"A": 1, "B": 2},
		histories: map[int64][]int64{1: {200}, 2: {200}},
		names:     map[int64]string{200: "Evil Corp"},
	}

	got, err := NewChecker(roster, identity, nil).Check(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, Result{"A": VerdictRedByLast, "B": VerdictRedByLast}, got)
	assert.Equal(t, 1, roster.unitCalls)
}
