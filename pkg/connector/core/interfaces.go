// Package core defines the capability interface all connectors implement:
// resolve a data asset to a concrete addressable location, read raw content
// through a caller-supplied parse function, and write a table back with
// serialization options. Storage-kind specifics live in the per-kind
// connector packages; callers work against this interface only.
package core

import (
	"context"

	"github.com/datakit-dev/datakit/pkg/catalog"
	"github.com/datakit-dev/datakit/pkg/table"
)

// Location is a concrete addressable storage location a data asset resolves
// to. For local storage the Path is a filesystem path and Bucket is empty;
// for object storage the Path is an object key within Bucket.
type Location struct {
	// Scheme identifies the addressing scheme ("file", "s3", "gs")
	Scheme string
	// Bucket is the object-storage bucket, empty for local files
	Bucket string
	// Path is the filesystem path or object key
	Path string
}

// String renders the location as a URI-style string.
func (l Location) String() string {
	if l.Bucket == "" {
		return l.Scheme + "://" + l.Path
	}
	return l.Scheme + "://" + l.Bucket + "/" + l.Path
}

// Connector is the capability interface every storage kind implements.
// A connector is bound to exactly one data asset at construction, keeps a
// back-reference to it, and is stateless between calls. Connectors perform
// no retries and no local recovery; every failure propagates to the caller.
type Connector interface {
	// Kind returns the connector kind tag
	Kind() string

	// Asset returns the data asset this connector was created for
	Asset() catalog.DataAsset

	// Resolve maps the asset's layer, path and extension to a concrete
	// location. Resolution is deterministic and performs no I/O.
	Resolve() Location

	// ReadRaw opens the resolved location and invokes the caller-supplied
	// parse function on its content, returning the result unmodified.
	// The connector does not interpret table structure.
	ReadRaw(ctx context.Context, parse table.ParseFunc) (*table.Table, error)

	// WriteRaw serializes the table to the resolved location with the
	// given options, overwriting any existing content. No backup, no
	// versioning; a failed write may leave a truncated or absent object.
	WriteRaw(ctx context.Context, t *table.Table, opts table.WriteOptions) error

	// Close releases any held resources (remote clients)
	Close(ctx context.Context) error
}
