package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datakit-dev/datakit/pkg/catalog"
	"github.com/datakit-dev/datakit/pkg/config"
	"github.com/datakit-dev/datakit/pkg/connector/core"
	"github.com/datakit-dev/datakit/pkg/errors"
	"github.com/datakit-dev/datakit/pkg/table"
)

type stubConnector struct {
	asset catalog.DataAsset
}

func (s *stubConnector) Kind() string { return s.asset.Kind }

func (s *stubConnector) Asset() catalog.DataAsset { return s.asset }

func (s *stubConnector) Resolve() core.Location {
	return core.Location{Scheme: "stub", Path: s.asset.FileName()}
}

func (s *stubConnector) Close(context.Context) error { return nil }

func (s *stubConnector) ReadRaw(context.Context, table.ParseFunc) (*table.Table, error) {
	return table.Empty(), nil
}

func (s *stubConnector) WriteRaw(context.Context, *table.Table, table.WriteOptions) error {
	return nil
}

func stubFactory(asset catalog.DataAsset, _ *config.Config) (core.Connector, error) {
	return &stubConnector{asset: asset}, nil
}

func testAsset(kind string) catalog.DataAsset {
	return catalog.DataAsset{Name: "a", Kind: kind, Layer: catalog.LayerRaw, Path: "p", Extension: "csv"}
}

func TestRegistry_Connect(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("stub", stubFactory))

	conn, err := r.Connect(testAsset("stub"), config.New())
	require.NoError(t, err)
	assert.Equal(t, "stub", conn.Kind())
	assert.Equal(t, "a", conn.Asset().Name)
}

func TestRegistry_UnsupportedKind(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("stub", stubFactory))

	_, err := r.Connect(testAsset("ftp"), config.New())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnsupportedKind))
}

func TestRegistry_DuplicateKind(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("stub", stubFactory))

	err := r.Register("stub", stubFactory)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestRegistry_FactoryFailure(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("broken", func(catalog.DataAsset, *config.Config) (core.Connector, error) {
		return nil, errors.New(errors.ErrorTypeConfig, "bucket is required")
	}))

	_, err := r.Connect(testAsset("broken"), config.New())
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestRegistry_Kinds(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("zeta", stubFactory))
	require.NoError(t, r.Register("alpha", stubFactory))

	assert.Equal(t, []string{"alpha", "zeta"}, r.Kinds())
	assert.True(t, r.Has("alpha"))
	assert.False(t, r.Has("beta"))

	r.Clear()
	assert.Empty(t, r.Kinds())
}

func TestConnectorCatalog(t *testing.T) {
	c := NewConnectorCatalog()
	require.NoError(t, c.Register(&ConnectorInfo{Kind: "stub", Description: "stub connector"}))

	info, err := c.Get("stub")
	require.NoError(t, err)
	assert.Equal(t, "stub connector", info.Description)

	err = c.Register(&ConnectorInfo{Kind: "stub"})
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	_, err = c.Get("missing")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	assert.Len(t, c.List(), 1)
}
