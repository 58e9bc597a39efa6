package gcs

import (
	"github.com/datakit-dev/datakit/pkg/connector/registry"
)

func init() {
	_ = registry.Register(Kind, New)

	_ = registry.RegisterConnectorInfo(&registry.ConnectorInfo{
		Kind:        Kind,
		Description: "Google Cloud Storage connector resolving assets to objects in a configured bucket",
		Version:     "1.0.0",
		Capabilities: []string{
			"read",
			"write",
		},
	})
}
