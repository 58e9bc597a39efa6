package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datakit-dev/datakit/pkg/errors"
)

func TestCatalog_AddAndGet(t *testing.T) {
	c, err := New(
		DataAsset{Name: "a", Kind: "local", Layer: LayerRaw, Path: "x/a", Extension: "csv"},
		DataAsset{Name: "b", Kind: "s3", Layer: LayerProcessed, Path: "x/b", Extension: "csv"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	asset, err := c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "s3", asset.Kind)

	asset, err = c.At(0)
	require.NoError(t, err)
	assert.Equal(t, "a", asset.Name)

	_, err = c.Get("missing")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	_, err = c.At(5)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestCatalog_DuplicateName(t *testing.T) {
	c, err := New(DataAsset{Name: "a", Kind: "local", Layer: LayerRaw, Path: "p"})
	require.NoError(t, err)

	err = c.Add(DataAsset{Name: "a", Kind: "local", Layer: LayerRaw, Path: "q"})
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestDataAsset_Validate(t *testing.T) {
	tests := []struct {
		name  string
		asset DataAsset
		ok    bool
	}{
		{"valid", DataAsset{Name: "a", Kind: "local", Layer: LayerRaw, Path: "p", Extension: "csv"}, true},
		{"missing name", DataAsset{Kind: "local", Layer: LayerRaw, Path: "p"}, false},
		{"missing kind", DataAsset{Name: "a", Layer: LayerRaw, Path: "p"}, false},
		{"unknown layer", DataAsset{Name: "a", Kind: "local", Layer: "staging", Path: "p"}, false},
		{"missing path", DataAsset{Name: "a", Kind: "local", Layer: LayerRaw}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.asset.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDataAsset_FileName(t *testing.T) {
	asset := DataAsset{Name: "a", Kind: "local", Layer: LayerRaw, Path: "dir/file", Extension: "csv"}
	assert.Equal(t, "dir/file.csv", asset.FileName())

	asset.Extension = ""
	assert.Equal(t, "dir/file", asset.FileName())
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
assets:
  - name: testing_source
    kind: local
    layer: raw
    path: testing_io/test_reading
    extension: csv
    description: features and labels
  - name: preds
    kind: gcs
    layer: processed
    path: YYYY/MM/preds
    extension: csv
`)
	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	asset, err := c.Get("preds")
	require.NoError(t, err)
	assert.Equal(t, LayerProcessed, asset.Layer)
	assert.Equal(t, "YYYY/MM/preds.csv", asset.FileName())
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("assets: ["))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestExample(t *testing.T) {
	c := Example()
	require.Equal(t, 2, c.Len())

	source, err := c.Get("testing_source")
	require.NoError(t, err)
	assert.Equal(t, "local", source.Kind)
	assert.Equal(t, LayerRaw, source.Layer)
}
