package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datakit-dev/datakit/pkg/catalog"
	"github.com/datakit-dev/datakit/pkg/errors"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "data", cfg.DataRoot)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Encoding)
	assert.NoError(t, cfg.Validate())
}

func TestLayerRoot(t *testing.T) {
	cfg := New()
	cfg.DataRoot = "/srv/datakit"

	assert.Equal(t, filepath.Join("/srv/datakit", "raw"), cfg.LayerRoot(catalog.LayerRaw))
	assert.Equal(t, filepath.Join("/srv/datakit", "processed"), cfg.LayerRoot(catalog.LayerProcessed))

	cfg.LayerRoots[catalog.LayerRaw] = "/mnt/landing"
	assert.Equal(t, "/mnt/landing", cfg.LayerRoot(catalog.LayerRaw))
	// other layers keep the default resolution
	assert.Equal(t, filepath.Join("/srv/datakit", "interim"), cfg.LayerRoot(catalog.LayerInterim))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataRoot, "/tmp/override")
	t.Setenv(EnvLogLevel, "debug")

	cfg := New()
	cfg.ApplyEnv()

	assert.Equal(t, "/tmp/override", cfg.DataRoot)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestApplyEnv_EmptyIgnored(t *testing.T) {
	t.Setenv(EnvDataRoot, "")

	cfg := New()
	cfg.ApplyEnv()
	assert.Equal(t, "data", cfg.DataRoot)
}

func TestValidate(t *testing.T) {
	cfg := New()
	cfg.DataRoot = ""
	assert.True(t, errors.IsType(cfg.Validate(), errors.ErrorTypeConfig))

	cfg = New()
	cfg.LayerRoots["staging"] = "/tmp/staging"
	assert.True(t, errors.IsType(cfg.Validate(), errors.ErrorTypeConfig))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_root: /srv/datasets
layer_roots:
  raw: /mnt/landing
logging:
  level: warn
connections:
  s3:
    bucket: datakit-prod
    region: eu-west-1
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/srv/datasets", cfg.DataRoot)
	assert.Equal(t, "/mnt/landing", cfg.LayerRoot(catalog.LayerRaw))
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "datakit-prod", cfg.Connection("s3").Bucket)
	assert.Equal(t, "eu-west-1", cfg.Connection("s3").Region)

	// kinds with no entry get the zero value
	assert.Empty(t, cfg.Connection("gcs").Bucket)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_root: [unclosed"), 0o644))

	_, err := LoadFile(path)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
