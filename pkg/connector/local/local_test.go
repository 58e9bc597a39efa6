package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/datakit-dev/datakit/pkg/catalog"
	"github.com/datakit-dev/datakit/pkg/config"
	"github.com/datakit-dev/datakit/pkg/errors"
	"github.com/datakit-dev/datakit/pkg/logger"
	"github.com/datakit-dev/datakit/pkg/table"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.DataRoot = filepath.Join(t.TempDir(), "data")
	return cfg
}

func testAsset() catalog.DataAsset {
	return catalog.DataAsset{
		Name:      "testing_source",
		Kind:      Kind,
		Layer:     catalog.LayerRaw,
		Path:      "testing_io/test_reading",
		Extension: "csv",
	}
}

func TestConnector_Resolve(t *testing.T) {
	cfg := testConfig(t)
	conn, err := New(testAsset(), cfg)
	require.NoError(t, err)

	loc := conn.Resolve()
	assert.Equal(t, "file", loc.Scheme)
	assert.Equal(t,
		filepath.Join(cfg.DataRoot, "raw", "testing_io", "test_reading.csv"),
		loc.Path)

	// same asset always resolves to the same location
	assert.Equal(t, loc, conn.Resolve())
}

func TestConnector_Resolve_LayerRootOverride(t *testing.T) {
	cfg := testConfig(t)
	cfg.LayerRoots[catalog.LayerRaw] = filepath.Join(t.TempDir(), "elsewhere")

	conn, err := New(testAsset(), cfg)
	require.NoError(t, err)
	assert.Equal(t,
		filepath.Join(cfg.LayerRoots[catalog.LayerRaw], "testing_io", "test_reading.csv"),
		conn.Resolve().Path)
}

func TestConnector_RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	conn, err := New(testAsset(), cfg)
	require.NoError(t, err)

	original, err := table.New([]string{"x_1", "x_2", "y"}, [][]string{
		{"4", "8", "12"},
		{"16", "20", "24"},
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, conn.WriteRaw(ctx, original, table.DefaultWriteOptions()))

	back, err := conn.ReadRaw(ctx, table.ParseCSV)
	require.NoError(t, err)
	assert.True(t, original.Equal(back))
}

func TestConnector_RoundTrip_Gzip(t *testing.T) {
	cfg := testConfig(t)
	asset := testAsset()
	asset.Extension = "csv.gz"

	conn, err := New(asset, cfg)
	require.NoError(t, err)

	original, err := table.New([]string{"x_1", "y"}, [][]string{{"1", "2"}})
	require.NoError(t, err)

	opts := table.DefaultWriteOptions()
	opts.Compression = table.CompressionGzip

	ctx := context.Background()
	require.NoError(t, conn.WriteRaw(ctx, original, opts))

	back, err := conn.ReadRaw(ctx, table.ParseCSVGzip)
	require.NoError(t, err)
	assert.True(t, original.Equal(back))
}

func TestConnector_WriteCreatesHeaderWithoutIndex(t *testing.T) {
	cfg := testConfig(t)
	conn, err := New(testAsset(), cfg)
	require.NoError(t, err)

	tbl, err := table.New([]string{"x_1", "x_2", "y"}, [][]string{
		{"8", "16", "24"},
		{"32", "40", "48"},
	})
	require.NoError(t, err)

	require.NoError(t, conn.WriteRaw(context.Background(), tbl, table.DefaultWriteOptions()))

	data, err := os.ReadFile(conn.Resolve().Path)
	require.NoError(t, err)
	assert.Equal(t, "x_1,x_2,y\n8,16,24\n32,40,48\n", string(data))
}

func TestConnector_ReadMissingFile(t *testing.T) {
	cfg := testConfig(t)
	conn, err := New(testAsset(), cfg)
	require.NoError(t, err)

	_, err = conn.ReadRaw(context.Background(), table.ParseCSV)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	// the failed read must not create anything
	_, statErr := os.Stat(conn.Resolve().Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConnector_ParseErrorPropagatesUnchanged(t *testing.T) {
	cfg := testConfig(t)
	conn, err := New(testAsset(), cfg)
	require.NoError(t, err)

	tbl, err := table.New([]string{"a"}, [][]string{{"1"}})
	require.NoError(t, err)
	require.NoError(t, conn.WriteRaw(context.Background(), tbl, table.DefaultWriteOptions()))

	sentinel := errors.New(errors.ErrorTypeData, "bad format")
	_, err = conn.ReadRaw(context.Background(), func(io.Reader) (*table.Table, error) {
		return nil, sentinel
	})
	assert.Equal(t, sentinel, err)
}

func TestLogLevelConfigurableAfterRegistration(t *testing.T) {
	// Importing this package registers the connector, which logs through the
	// default global logger. Init afterwards must still take effect.
	require.NoError(t, logger.Init(logger.Config{
		Level:    "debug",
		Encoding: "json",
	}))
	assert.True(t, logger.Get().Core().Enabled(zapcore.DebugLevel))
}

func TestConnector_CanceledContext(t *testing.T) {
	cfg := testConfig(t)
	conn, err := New(testAsset(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = conn.ReadRaw(ctx, table.ParseCSV)
	assert.ErrorIs(t, err, context.Canceled)
}
