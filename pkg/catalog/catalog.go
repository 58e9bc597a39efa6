// Package catalog defines data assets: descriptors that identify a logical
// dataset instance by name, storage kind, processing layer and path, without
// reference to how the data is accessed. A Catalog is the ordered set of
// assets a project works with, defined once at startup and read-only after.
package catalog

import (
	"github.com/datakit-dev/datakit/pkg/errors"
)

// Layer denotes a data asset's position in the processing lineage.
type Layer string

const (
	// LayerRaw holds data as ingested, untouched
	LayerRaw Layer = "raw"
	// LayerInterim holds intermediate artifacts between processing steps
	LayerInterim Layer = "interim"
	// LayerProcessed holds final outputs
	LayerProcessed Layer = "processed"
)

// Layers lists the valid layer values in lineage order.
var Layers = []Layer{LayerRaw, LayerInterim, LayerProcessed}

// Valid reports whether l is one of the known layers.
func (l Layer) Valid() bool {
	for _, known := range Layers {
		if l == known {
			return true
		}
	}
	return false
}

// DataAsset is an immutable descriptor identifying one logical dataset
// instance. All fields are set at construction and never mutated. The kind
// field selects which connector implementation serves the asset; the layer,
// path and extension together determine the resolved storage location.
type DataAsset struct {
	// Name identifies the asset, unique within a catalog
	Name string `yaml:"name" json:"name"`
	// Kind selects the connector implementation (e.g. "local", "s3", "gcs")
	Kind string `yaml:"kind" json:"kind"`
	// Layer is the processing lineage tag, organizational only
	Layer Layer `yaml:"layer" json:"layer"`
	// Path is the logical location relative to the layer root, without extension
	Path string `yaml:"path" json:"path"`
	// Extension is the file suffix without the leading dot (e.g. "csv")
	Extension string `yaml:"extension" json:"extension"`
	// Description is free text for humans
	Description string `yaml:"description" json:"description"`
}

// Validate checks the descriptor for completeness.
func (a DataAsset) Validate() error {
	if a.Name == "" {
		return errors.New(errors.ErrorTypeConfig, "asset name is required")
	}
	if a.Kind == "" {
		return errors.Newf(errors.ErrorTypeConfig, "asset %s: kind is required", a.Name)
	}
	if !a.Layer.Valid() {
		return errors.Newf(errors.ErrorTypeConfig, "asset %s: unknown layer %q", a.Name, a.Layer)
	}
	if a.Path == "" {
		return errors.Newf(errors.ErrorTypeConfig, "asset %s: path is required", a.Name)
	}
	return nil
}

// FileName returns the path joined with the extension, the final path
// component below the layer root.
func (a DataAsset) FileName() string {
	if a.Extension == "" {
		return a.Path
	}
	return a.Path + "." + a.Extension
}

// Catalog is an ordered sequence of data assets indexed by position or name.
type Catalog struct {
	assets []DataAsset
	byName map[string]int
}

// New builds a catalog from the given assets. Duplicate names and invalid
// descriptors are rejected.
func New(assets ...DataAsset) (*Catalog, error) {
	c := &Catalog{
		assets: make([]DataAsset, 0, len(assets)),
		byName: make(map[string]int, len(assets)),
	}
	for _, asset := range assets {
		if err := c.Add(asset); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends an asset to the catalog.
func (c *Catalog) Add(asset DataAsset) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	if _, exists := c.byName[asset.Name]; exists {
		return errors.Newf(errors.ErrorTypeConfig, "asset %s already in catalog", asset.Name)
	}
	c.byName[asset.Name] = len(c.assets)
	c.assets = append(c.assets, asset)
	return nil
}

// Get returns the asset with the given name.
func (c *Catalog) Get(name string) (DataAsset, error) {
	idx, ok := c.byName[name]
	if !ok {
		return DataAsset{}, errors.Newf(errors.ErrorTypeNotFound, "asset %s not in catalog", name)
	}
	return c.assets[idx], nil
}

// At returns the asset at the given position.
func (c *Catalog) At(i int) (DataAsset, error) {
	if i < 0 || i >= len(c.assets) {
		return DataAsset{}, errors.Newf(errors.ErrorTypeNotFound, "asset index %d out of range", i)
	}
	return c.assets[i], nil
}

// Len returns the number of assets in the catalog.
func (c *Catalog) Len() int {
	return len(c.assets)
}

// Assets returns a copy of the asset sequence in definition order.
func (c *Catalog) Assets() []DataAsset {
	out := make([]DataAsset, len(c.assets))
	copy(out, c.assets)
	return out
}
