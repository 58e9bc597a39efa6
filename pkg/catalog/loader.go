package catalog

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/datakit-dev/datakit/pkg/errors"
)

// catalogFile is the on-disk YAML shape of a catalog definition.
type catalogFile struct {
	Assets []DataAsset `yaml:"assets"`
}

// LoadFile reads a catalog definition from a YAML file.
//
// Expected format:
//
//	assets:
//	  - name: testing_source
//	    kind: local
//	    layer: raw
//	    path: testing_io/test_reading
//	    extension: csv
//	    description: features and labels
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read catalog file")
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse catalog file")
	}
	return New(file.Assets...)
}
