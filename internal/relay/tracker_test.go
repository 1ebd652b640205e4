package relay

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoprelay/internal/journal"
	"shoprelay/internal/models"
)

func TestTrackerSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.log")

	store, err := journal.NewFileStore(path)
	require.NoError(t, err)

	tr := NewTracker(store)
	tr.Put(models.OrderTrack{Number: "1042", Channel: "C1", MessageTS: "1.0", Payment: "pending"})
	tr.Put(models.OrderTrack{Number: "1042", Channel: "C1", MessageTS: "1.0", Payment: "paid"})
	tr.Put(models.OrderTrack{Number: "1043", Channel: "C2", MessageTS: "2.0"})

	// fresh tracker, same journal
	store2, err := journal.NewFileStore(path)
	require.NoError(t, err)
	tr2 := NewTracker(store2)
	require.NoError(t, store2.Replay(tr2.Restore))

	assert.Equal(t, 2, tr2.Len())
	rec, ok := tr2.Get("1042")
	require.True(t, ok)
	assert.Equal(t, "paid", rec.Payment)
	assert.Equal(t, "C1", rec.Channel)
}

func TestTrackerSnapshotSorted(t *testing.T) {
	tr := NewTracker(nil)
	tr.Put(models.OrderTrack{Number: "2"})
	tr.Put(models.OrderTrack{Number: "1"})

	snap := tr.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "1", snap[0].Number)
	assert.Equal(t, "2", snap[1].Number)
}
