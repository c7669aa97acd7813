package main

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/CTAG07/Pseudoword/pkg/seedstore"
	"github.com/stretchr/testify/require"
)

// setupTestApp builds an App with a config file and database in a temp dir.
func setupTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	out := &bytes.Buffer{}
	app, err := newApp(&Globals{
		Config: filepath.Join(dir, "config.json"),
		DB:     filepath.Join(dir, "seeds.db"),
	}, out)
	require.NoError(t, err)
	app.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return app, out
}

// setupTestStore opens the app's seed store for the duration of the test.
func setupTestStore(t *testing.T, app *App) *seedstore.Store {
	t.Helper()
	store, closeStore, err := app.openStore()
	require.NoError(t, err)
	t.Cleanup(closeStore)
	return store
}
