package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"dualmark/control"
	"dualmark/report"
	"dualmark/store"

	"github.com/stretchr/testify/require"
)

func runArgs(t *testing.T, args ...string) (int, string) {
	t.Helper()
	t.Chdir(t.TempDir())
	control.Reset()
	t.Cleanup(control.Reset)

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String()
}

func TestRunPrintsReport(t *testing.T) {
	code, out := runArgs(t, "-backend", "rendezvous", "-iterations", "100", "-runs", "2",
		"-min-duration", "0s", "-db", "", "-log-level", "error")
	require.Equal(t, 0, code)
	require.Contains(t, out, "Backend          : rendezvous")
	require.Contains(t, out, "Correct operation validated.")
}

func TestRunJSONAndArchive(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")

	code, out := runArgs(t, "-backend", "polling", "-iterations", "50", "-json",
		"-min-duration", "0s", "-db", db, "-log-level", "error")
	require.Equal(t, 0, code)

	rep, err := report.Decode(bytes.TrimSpace([]byte(out)))
	require.NoError(t, err)
	require.Equal(t, "polling", rep.Backend)
	require.Equal(t, 25, rep.IterationsPerLane)

	s, err := store.Open(context.Background(), db)
	require.NoError(t, err)
	defer s.Close()
	recent, err := s.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "polling", recent[0].Backend)
}

func TestRunTooShortFails(t *testing.T) {
	code, out := runArgs(t, "-backend", "busywait", "-iterations", "20",
		"-min-duration", "1h", "-db", "", "-log-level", "error")
	require.Equal(t, 5, code)
	require.Contains(t, out, "ERROR! Must execute for at least")
}

func TestHistoryAndShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	for _, backend := range []string{"polling", "rendezvous"} {
		code, _ := runArgs(t, "-backend", backend, "-iterations", "40", "-runs", "2",
			"-min-duration", "0s", "-db", db, "-log-level", "error")
		require.Equal(t, 0, code)
	}

	code, out := runArgs(t, "-history", "5", "-db", db, "-log-level", "error")
	require.Equal(t, 0, code)
	require.Contains(t, out, "#2 ")
	require.Contains(t, out, "rendezvous")
	require.Contains(t, out, "#1 ")
	require.Contains(t, out, "    [1] ticks=")
	require.Contains(t, out, " ok\n")

	code, out = runArgs(t, "-show", "1", "-db", db, "-log-level", "error")
	require.Equal(t, 0, code)
	require.Contains(t, out, "Backend          : polling")
	require.Contains(t, out, "Runs             : 2")

	code, _ = runArgs(t, "-show", "99", "-db", db, "-log-level", "error")
	require.Equal(t, 1, code)
}

func TestRunRejectsOddIterations(t *testing.T) {
	code, _ := runArgs(t, "-iterations", "7", "-db", "", "-log-level", "error")
	require.Equal(t, 3, code)
}

func TestRunRejectsBadFlags(t *testing.T) {
	code, _ := runArgs(t, "-backend", "threads", "-log-level", "error")
	require.Equal(t, 2, code)
}
