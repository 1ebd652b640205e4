package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoprelay/internal/models"
)

func TestAppendReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "orders.log")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Append(models.OrderTrack{Number: "1", Payment: "pending"}))
	require.NoError(t, s.Append(models.OrderTrack{Number: "2", Payment: "paid"}))

	var got []models.OrderTrack
	require.NoError(t, s.Replay(func(rec models.OrderTrack) bool {
		got = append(got, rec)
		return true
	}))
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Number)
	assert.Equal(t, "paid", got[1].Payment)
}

func TestReplaySkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.log")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("not json\n{\"number\":\"9\"}\n"), 0o644))

	var got []models.OrderTrack
	require.NoError(t, s.Replay(func(rec models.OrderTrack) bool {
		got = append(got, rec)
		return true
	}))
	require.Len(t, got, 1)
	assert.Equal(t, "9", got[0].Number)
}

func TestReplayStopsWhenYieldReturnsFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.log")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Append(models.OrderTrack{Number: "1"}))
	require.NoError(t, s.Append(models.OrderTrack{Number: "2"}))

	n := 0
	require.NoError(t, s.Replay(func(models.OrderTrack) bool {
		n++
		return false
	}))
	assert.Equal(t, 1, n)
}
