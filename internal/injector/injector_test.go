package injector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/statesched/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	cfg.Logging.Level = "error"
	return cfg
}

func TestInitializeApp(t *testing.T) {
	app, err := InitializeApp(testConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, app.Log)
	assert.NotNil(t, app.Bus)
	require.NotNil(t, app.World)
	assert.True(t, app.World.Registry().Frozen())
	assert.Same(t, app.Bus, app.World.Bus())
}

func TestInitializeAppRejectsBadTaxonomy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nclasses:\n  bird:\n    flies:\n"), 0o600))

	cfg := testConfig(t)
	cfg.Taxonomy.Path = path
	_, err := InitializeApp(cfg)
	assert.ErrorContains(t, err, "flies")

	cfg.Taxonomy.Path = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = InitializeApp(cfg)
	assert.Error(t, err)
}
