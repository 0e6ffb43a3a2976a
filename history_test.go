package particlefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRingHistoryCapacity(t *testing.T) {
	t.Parallel()

	r := NewRingHistory(3)
	assert.Equal(t, 0, r.Len())

	for step := 0; step < 7; step++ {
		r.Record(Snapshot{Step: step})
	}
	require.Equal(t, 3, r.Len())

	snaps := r.Snapshots()
	require.Len(t, snaps, 3)
	// Oldest first, holding only the most recent three.
	assert.Equal(t, 4, snaps[0].Step)
	assert.Equal(t, 5, snaps[1].Step)
	assert.Equal(t, 6, snaps[2].Step)
}

func TestRingHistoryRejectsNonPositiveCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewRingHistory(0) })
	assert.Panics(t, func() { NewRingHistory(-1) })
}

func TestFilterRecordsHistory(t *testing.T) {
	t.Parallel()

	cfg := testConfig(50)
	history := NewRingHistory(10)
	pf, err := New(cfg, WithRandSource(rand.NewSource(29)), WithHistory(history))
	require.NoError(t, err)

	// The initial seeding is snapshot 0.
	require.Equal(t, 1, history.Len())
	assert.Equal(t, 0, history.Snapshots()[0].Step)

	for i := 0; i < 3; i++ {
		pf.FilterStep(2.0, 5.0)
	}
	snaps := history.Snapshots()
	require.Len(t, snaps, 4)
	for i, snap := range snaps {
		assert.Equal(t, i, snap.Step)
		assert.Len(t, snap.Particles, 50)
		assert.Len(t, snap.Weights, 50)
	}

	// Snapshots are copies: mutating one must not touch the live ensemble.
	snaps[3].Particles[0] = -99
	assert.NotEqual(t, -99.0, pf.Particles()[0])
}

func TestFilterWithoutRecorderKeepsNoHistory(t *testing.T) {
	t.Parallel()

	pf, err := New(testConfig(10), WithRandSource(rand.NewSource(31)))
	require.NoError(t, err)
	// Nothing to assert beyond not panicking: history is opt-in.
	pf.FilterStep(1.0, 2.0)
}
