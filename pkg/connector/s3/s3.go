// Package s3 implements the Amazon S3 connector. An asset resolves to the
// object key <prefix>/<data root>/<layer>/<path>.<extension> in the
// configured bucket.
//
// Connection settings come from the "s3" entry of the connections map:
// bucket (required), prefix, region, endpoint (for S3-compatible stores),
// and optionally static credentials under the credentials map keys
// access_key_id / secret_access_key. Without static credentials the SDK's
// default chain applies (environment, shared config, instance role).
package s3

import (
	"bytes"
	"context"
	stderrors "errors"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/datakit-dev/datakit/pkg/catalog"
	"github.com/datakit-dev/datakit/pkg/config"
	"github.com/datakit-dev/datakit/pkg/connector/core"
	"github.com/datakit-dev/datakit/pkg/errors"
	"github.com/datakit-dev/datakit/pkg/logger"
	"github.com/datakit-dev/datakit/pkg/table"
)

// Kind is the catalog kind tag this connector serves.
const Kind = "s3"

const defaultRegion = "us-east-1"

// Connector resolves a data asset to an S3 object and performs raw object
// I/O. The client is created lazily on first use; construction binds
// configuration only.
type Connector struct {
	asset    catalog.DataAsset
	dataRoot string
	conn     config.ConnectionConfig
	logger   *zap.Logger

	client   *awss3.Client
	uploader *manager.Uploader
}

// New creates an S3 connector bound to the given asset.
func New(asset catalog.DataAsset, cfg *config.Config) (core.Connector, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "config is required")
	}

	conn := cfg.Connection(Kind)
	if conn.Bucket == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "s3 bucket is required")
	}
	if conn.Region == "" {
		conn.Region = defaultRegion
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

// Resolve maps the asset to its object key in the configured bucket.
func (c *Connector) Resolve() core.Location {
	return core.Location{
		Scheme: "s3",
		Bucket: c.conn.Bucket,
		Path:   path.Join(c.conn.Prefix, c.dataRoot, string(c.asset.Layer), c.asset.FileName()),
	}
}

// ReadRaw fetches the resolved object and hands its body to the parse
// function. A missing object surfaces as not_found.
func (c *Connector) ReadRaw(ctx context.Context, parse table.ParseFunc) (*table.Table, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	loc := c.Resolve()
	c.logger.Debug("reading asset", zap.String("location", loc.String()))

	out, err := c.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Path),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if stderrors.As(err, &noKey) {
			return nil, errors.Wrap(err, errors.ErrorTypeNotFound, "object "+loc.String()+" does not exist")
		}
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to get "+loc.String())
	}
	defer out.Body.Close()

	return parse(out.Body)
}

// WriteRaw serializes the table and uploads it to the resolved object,
// overwriting existing content.
func (c *Connector) WriteRaw(ctx context.Context, t *table.Table, opts table.WriteOptions) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}

	loc := c.Resolve()
	c.logger.Debug("writing asset",
		zap.String("location", loc.String()),
		zap.Int("rows", t.Len()))

	var buf bytes.Buffer
	if err := table.WriteCSV(&buf, t, opts); err != nil {
		return err
	}

	_, err := c.uploader.Upload(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Path),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType(opts)),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to upload "+loc.String())
	}
	return nil
}

// Close releases the client reference.
func (c *Connector) Close(_ context.Context) error {
	c.client = nil
	c.uploader = nil
	return nil
}

func (c *Connector) ensureClient(ctx context.Context) error {
	if c.client != nil {
		return nil
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.conn.Region),
	}
	if key := c.conn.Credentials["access_key_id"]; key != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, c.conn.Credentials["secret_access_key"], "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to load aws configuration")
	}

	c.client = awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if c.conn.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.conn.Endpoint)
			o.UsePathStyle = true
		}
	})
	c.uploader = manager.NewUploader(c.client)
	return nil
}

func contentType(opts table.WriteOptions) string {
	if opts.Compression == table.CompressionGzip {
		return "application/gzip"
	}
	return "text/csv"
}
