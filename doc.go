// Package datakit provides a thin data-access abstraction over tabular data:
// named data assets (source and sink metadata) are resolved through a
// connector registry into storage-specific connectors, wrapped in a generic
// dataset that exposes uniform read/write, and exercised by a small example
// pipeline.
//
// # Architecture
//
// Three cooperating elements, leaves first:
//
// 1. DataAsset (pkg/catalog): an immutable descriptor (name, kind, layer,
// path, extension, description) identifying one logical dataset instance
// without reference to how it is stored.
//
// 2. Connector (pkg/connector): a storage-kind-specific component produced by
// the registry from DataAsset.Kind. It resolves the asset to a concrete
// location and performs raw read/write. Shipped kinds: local, s3, gcs.
//
// 3. Dataset (pkg/dataset): a thin wrapper around one connector that
// materializes storage content into an in-memory table on read and persists
// a table back on write.
//
// # Quick Start
//
//	import (
//	    "context"
//
//	    "github.com/datakit-dev/datakit/pkg/catalog"
//	    "github.com/datakit-dev/datakit/pkg/config"
//	    "github.com/datakit-dev/datakit/pkg/connector/registry"
//	    "github.com/datakit-dev/datakit/pkg/dataset"
//	    "github.com/datakit-dev/datakit/pkg/table"
//
//	    _ "github.com/datakit-dev/datakit/pkg/connector/local"
//	)
//
//	cfg := config.New()
//	asset, _ := catalog.Example().Get("testing_source")
//	conn, _ := registry.Connect(asset, cfg)
//	ds := dataset.New(conn)
//	t, _ := ds.Read(context.Background(), table.ParseCSV)
//
// Execution is single-threaded, synchronous and blocking throughout. No
// caching, no retries, no schema enforcement: every failure propagates
// unchanged to the caller.
package datakit
