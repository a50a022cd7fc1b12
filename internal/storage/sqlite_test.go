package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nested", "feriados.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLastSyncEmpty(t *testing.T) {
	s := newTestStorage(t)

	sync, err := s.LastSync(2025, "/cal/feriados/")
	require.NoError(t, err)
	assert.Nil(t, sync)
}

func TestRecordSync(t *testing.T) {
	s := newTestStorage(t)
	first := time.Date(2025, 1, 2, 6, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordSync(2025, "/cal/feriados/", 12, first))

	sync, err := s.LastSync(2025, "/cal/feriados/")
	require.NoError(t, err)
	require.NotNil(t, sync)
	assert.Equal(t, 2025, sync.Year)
	assert.Equal(t, 12, sync.Events)
	assert.True(t, first.Equal(sync.SyncedAt), "synced_at %v", sync.SyncedAt)

	// Other calendars are tracked separately
	other, err := s.LastSync(2025, "/cal/other/")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestRecordSyncUpserts(t *testing.T) {
	s := newTestStorage(t)
	cal := "/cal/feriados/"

	require.NoError(t, s.RecordSync(2019, cal, 11, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)))
	later := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordSync(2019, cal, 11, later))

	syncs, err := s.ListSyncs()
	require.NoError(t, err)
	require.Len(t, syncs, 1)
	assert.True(t, later.Equal(syncs[0].SyncedAt))
}

func TestListSyncsOrder(t *testing.T) {
	s := newTestStorage(t)
	now := time.Now()

	for _, year := range []int{2024, 2026, 2025} {
		require.NoError(t, s.RecordSync(year, "/cal/", 12, now))
	}

	syncs, err := s.ListSyncs()
	require.NoError(t, err)
	require.Len(t, syncs, 3)
	assert.Equal(t, []int{2026, 2025, 2024}, []int{syncs[0].Year, syncs[1].Year, syncs[2].Year})
}

func TestReopenKeepsLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feriados.db")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.RecordSync(2030, "/cal/", 12, time.Now()))
	require.NoError(t, s.Close())

	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()

	sync, err := s.LastSync(2030, "/cal/")
	require.NoError(t, err)
	assert.NotNil(t, sync)
}
