package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterWatcher_ReimportsOnWrite(t *testing.T) {
	env := setupEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "a", "name": "Ada", "level": 1}]`), 0o644))

	imports := NewImportService(env.uow)
	chart := NewChartService(env.employees, env.views)

	snaps := make(chan *Snapshot, 4)
	chart.Subscribe(func(s *Snapshot) { snaps <- s })

	var mu sync.Mutex
	var errs []error
	w, err := NewRosterWatcher(path, imports, chart,
		WithDebounce(50*time.Millisecond),
		WithWatchErrorHandler(func(err error) {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "a", "name": "Ada", "level": 1},
		{"id": "b", "managerId": "a", "name": "Ben", "level": 2, "salary": 10}
	]`), 0o644))

	select {
	case s := <-snaps:
		assert.Equal(t, 2, s.Headcount)
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot after roster write")
	}

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, errs)
}

func TestRosterWatcher_ReportsImportErrors(t *testing.T) {
	env := setupEnv(t)
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	errCh := make(chan error, 4)
	w, err := NewRosterWatcher(path, NewImportService(env.uow), NewChartService(env.employees, env.views),
		WithDebounce(10*time.Millisecond),
		WithWatchErrorHandler(func(err error) { errCh <- err }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"employees": []}`), 0o644))

	select {
	case err := <-errCh:
		assert.ErrorContains(t, err, "re-importing roster")
	case <-time.After(5 * time.Second):
		t.Fatal("expected an import error")
	}
}
