// Package gcs implements the Google Cloud Storage connector. An asset
// resolves to the object <prefix>/<data root>/<layer>/<path>.<extension> in
// the configured bucket.
//
// Connection settings come from the "gcs" entry of the connections map:
// bucket (required), project_id, prefix, and optionally credentials_file
// pointing at a service-account key. Without it the SDK falls back to
// GOOGLE_APPLICATION_CREDENTIALS and application default credentials.
package gcs

import (
	"context"
	stderrors "errors"
	"path"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/datakit-dev/datakit/pkg/catalog"
	"github.com/datakit-dev/datakit/pkg/config"
	"github.com/datakit-dev/datakit/pkg/connector/core"
	"github.com/datakit-dev/datakit/pkg/errors"
	"github.com/datakit-dev/datakit/pkg/logger"
	"github.com/datakit-dev/datakit/pkg/table"
)

// Kind is the catalog kind tag this connector serves.
const Kind = "gcs"

// Connector resolves a data asset to a GCS object and performs raw object
// I/O. The client is created lazily on first use.
type Connector struct {
	asset    catalog.DataAsset
	dataRoot string
	conn     config.ConnectionConfig
	logger   *zap.Logger

	client *storage.Client
	bucket *storage.BucketHandle
}

// New creates a GCS connector bound to the given asset.
func New(asset catalog.DataAsset, cfg *config.Config) (core.Connector, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "config is required")
	}

	conn := cfg.Connection(Kind)
	if conn.Bucket == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "gcs bucket is required")
	}

	return &Connector{
		asset:    asset,
		dataRoot: cfg.DataRoot,
		conn:     conn,
		logger: logger.Get().With(
			zap.String("connector", Kind),
			zap.String("asset", asset.Name),
			zap.String("bucket", conn.Bucket)),
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

// Resolve maps the asset to its object name in the configured bucket.
func (c *Connector) Resolve() core.Location {
	return core.Location{
		Scheme: "gs",
		Bucket: c.conn.Bucket,
		Path:   path.Join(c.conn.Prefix, c.dataRoot, string(c.asset.Layer), c.asset.FileName()),
	}
}

// ReadRaw opens the resolved object and hands its content to the parse
// function. A missing object surfaces as not_found.
func (c *Connector) ReadRaw(ctx context.Context, parse table.ParseFunc) (*table.Table, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	loc := c.Resolve()
	c.logger.Debug("reading asset", zap.String("location", loc.String()))

	r, err := c.bucket.Object(loc.Path).NewReader(ctx)
	if err != nil {
		if stderrors.Is(err, storage.ErrObjectNotExist) {
			return nil, errors.Wrap(err, errors.ErrorTypeNotFound, "object "+loc.String()+" does not exist")
		}
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to open "+loc.String())
	}
	defer r.Close()

	return parse(r)
}

// WriteRaw serializes the table to the resolved object, overwriting
// existing content. A failed upload may leave no object behind; GCS
// finalizes the object only on a successful writer close.
func (c *Connector) WriteRaw(ctx context.Context, t *table.Table, opts table.WriteOptions) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}

	loc := c.Resolve()
	c.logger.Debug("writing asset",
		zap.String("location", loc.String()),
		zap.Int("rows", t.Len()))

	w := c.bucket.Object(loc.Path).NewWriter(ctx)
	w.ContentType = contentType(opts)

	if err := table.WriteCSV(w, t, opts); err != nil {
		_ = w.Close()
		return err
	}

	if err := w.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to finalize "+loc.String())
	}
	return nil
}

// Close releases the storage client.
func (c *Connector) Close(_ context.Context) error {
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	c.bucket = nil
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to close gcs client")
	}
	return nil
}

func (c *Connector) ensureClient(ctx context.Context) error {
	if c.client != nil {
		return nil
	}

	var opts []option.ClientOption
	if c.conn.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.conn.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to create gcs client")
	}

	c.client = client
	c.bucket = client.Bucket(c.conn.Bucket)
	return nil
}

func contentType(opts table.WriteOptions) string {
	if opts.Compression == table.CompressionGzip {
		return "application/gzip"
	}
	return "text/csv"
}
