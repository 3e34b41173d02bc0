package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dualmark/report"

	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(backend string, started time.Time) *report.Report {
	r := report.New(backend, 2, 0x3415, 100)
	r.StartedAt = started
	r.Add(1000, [2]uint32{0xbeef, 0xbeef})
	r.Add(2000, [2]uint32{0xbeef, 0xbeef})
	r.Summarize(time.Second)
	return r
}

func TestSaveAndRecent(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	id1, err := s.Save(ctx, sampleReport("polling", base))
	require.NoError(t, err)
	id2, err := s.Save(ctx, sampleReport("rendezvous", base.Add(time.Minute)))
	require.NoError(t, err)
	require.Greater(t, id2, id1)

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "rendezvous", got[0].Backend)
	require.Equal(t, "polling", got[1].Backend)
	require.Equal(t, 2, got[1].Runs)
	require.Equal(t, uint32(3000), got[1].TotalTicks)
	require.True(t, got[1].Validated)
	require.True(t, got[1].StartedAt.Equal(base))

	got, err = s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestRunsRoundTrip(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	r := sampleReport("busywait", time.Now().UTC())

	id, err := s.Save(ctx, r)
	require.NoError(t, err)

	runs, err := s.Runs(ctx, id)
	require.NoError(t, err)
	require.Equal(t, r.Runs, runs)
}

func TestLoad(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	r := sampleReport("rendezvous", time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))

	id, err := s.Save(ctx, r)
	require.NoError(t, err)

	got, err := s.Load(ctx, id)
	require.NoError(t, err)
	require.Equal(t, r.Backend, got.Backend)
	require.Equal(t, r.Runs, got.Runs)
	require.Equal(t, r.MeanIterPerSec, got.MeanIterPerSec)
	require.True(t, r.StartedAt.Equal(got.StartedAt))

	_, err = s.Load(ctx, id+100)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.Save(ctx, sampleReport("polling", time.Now().UTC()))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSaveCancelled(t *testing.T) {
	s := openTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, sampleReport("polling", time.Now().UTC()))
	require.Error(t, err)

	got, err := s.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Empty(t, got)
}
