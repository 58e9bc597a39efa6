// Package dataset exposes uniform read/write over a connector. A Dataset is
// a thin adapter: it wraps exactly one connector, holds no data between
// calls, and performs no transformation, validation or recovery of its own.
// It exists to decouple calling code from connector specifics and to let the
// in-memory table representation be substituted without touching callers.
package dataset

import (
	"context"

	"go.uber.org/zap"

	"github.com/datakit-dev/datakit/pkg/connector/core"
	"github.com/datakit-dev/datakit/pkg/logger"
	"github.com/datakit-dev/datakit/pkg/table"
)

// Dataset wraps exactly one connector. The Dataset is the sole holder of the
// reference; a connector is not shared across Datasets. Not safe for
// concurrent use; callers must serialize access.
type Dataset struct {
	conn   core.Connector
	logger *zap.Logger
}

// New wraps a connector in a Dataset, taking ownership of it.
func New(conn core.Connector) *Dataset {
	return &Dataset{
		conn: conn,
		logger: logger.Get().With(
			zap.String("component", "dataset"),
			zap.String("asset", conn.Asset().Name)),
	}
}

// Connector returns the wrapped connector.
func (d *Dataset) Connector() core.Connector {
	return d.conn
}

// Read materializes the asset's content through the parse function and
// returns the table. Every call re-performs I/O; nothing is cached.
// Whatever the connector or the parse function fails with propagates
// unchanged.
func (d *Dataset) Read(ctx context.Context, parse table.ParseFunc) (*table.Table, error) {
	t, err := d.conn.ReadRaw(ctx, parse)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("read table", zap.Int("rows", t.Len()), zap.Int("columns", t.Width()))
	return t, nil
}

// Write persists the table through the connector with the given
// serialization options.
func (d *Dataset) Write(ctx context.Context, t *table.Table, opts table.WriteOptions) error {
	d.logger.Debug("writing table", zap.Int("rows", t.Len()), zap.Int("columns", t.Width()))
	return d.conn.WriteRaw(ctx, t, opts)
}

// Close releases the wrapped connector.
func (d *Dataset) Close(ctx context.Context) error {
	return d.conn.Close(ctx)
}
