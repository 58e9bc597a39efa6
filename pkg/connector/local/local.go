// Package local implements the local-filesystem connector. An asset's layer
// maps to a root directory from the configuration, and the resolved file
// path is <layer root>/<path>.<extension>.
package local

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/datakit-dev/datakit/pkg/catalog"
	"github.com/datakit-dev/datakit/pkg/config"
	"github.com/datakit-dev/datakit/pkg/connector/core"
	"github.com/datakit-dev/datakit/pkg/errors"
	"github.com/datakit-dev/datakit/pkg/logger"
	"github.com/datakit-dev/datakit/pkg/table"
)

// Kind is the catalog kind tag this connector serves.
const Kind = "local"

// Connector resolves a data asset to a local file and performs raw file I/O.
// It is stateless between calls.
type Connector struct {
	asset  catalog.DataAsset
	cfg    *config.Config
	logger *zap.Logger
}

// New creates a local connector bound to the given asset. No I/O happens
// here; construction is configuration binding only.
func New(asset catalog.DataAsset, cfg *config.Config) (core.Connector, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "config is required")
	}
	return &Connector{
		asset: asset,
		cfg:   cfg,
		logger: logger.Get().With(
			zap.String("connector", Kind),
			zap.String("asset", asset.Name)),
	}, nil
}

// Kind returns the connector kind tag.
func (c *Connector) Kind() string {
	return Kind
}

// Asset returns the data asset this connector serves.
func (c *Connector) Asset() catalog.DataAsset {
	return c.asset
}

// Resolve maps the asset to its filesystem path under the layer root.
func (c *Connector) Resolve() core.Location {
	return core.Location{
		Scheme: "file",
		Path:   filepath.Join(c.cfg.LayerRoot(c.asset.Layer), filepath.FromSlash(c.asset.FileName())),
	}
}

// ReadRaw opens the resolved file and hands it to the parse function.
// A parse failure propagates unchanged; the connector has no visibility
// into format specifics.
func (c *Connector) ReadRaw(ctx context.Context, parse table.ParseFunc) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc := c.Resolve()
	c.logger.Debug("reading asset", zap.String("location", loc.String()))

	f, err := os.Open(loc.Path)
	if err != nil {
		return nil, wrapFileError(err, "failed to open "+loc.Path)
	}
	defer f.Close()

	return parse(f)
}

// WriteRaw serializes the table to the resolved file, creating parent
// directories as needed and overwriting existing content.
func (c *Connector) WriteRaw(ctx context.Context, t *table.Table, opts table.WriteOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	loc := c.Resolve()
	c.logger.Debug("writing asset",
		zap.String("location", loc.String()),
		zap.Int("rows", t.Len()))

	if err := os.MkdirAll(filepath.Dir(loc.Path), 0o755); err != nil {
		return wrapFileError(err, "failed to create directory for "+loc.Path)
	}

	f, err := os.Create(loc.Path)
	if err != nil {
		return wrapFileError(err, "failed to create "+loc.Path)
	}

	if err := table.WriteCSV(f, t, opts); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to close "+loc.Path)
	}
	return nil
}

// Close is a no-op; the local connector holds no resources between calls.
func (c *Connector) Close(_ context.Context) error {
	return nil
}

func wrapFileError(err error, message string) error {
	switch {
	case os.IsNotExist(err):
		return errors.Wrap(err, errors.ErrorTypeNotFound, message)
	case os.IsPermission(err):
		return errors.Wrap(err, errors.ErrorTypePermission, message)
	default:
		return errors.Wrap(err, errors.ErrorTypeIO, message)
	}
}
