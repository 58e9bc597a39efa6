package s3

import (
	"github.com/datakit-dev/datakit/pkg/connector/registry"
)

func init() {
	_ = registry.Register(Kind, New)

	_ = registry.RegisterConnectorInfo(&registry.ConnectorInfo{
		Kind:        Kind,
		Description: "Amazon S3 connector resolving assets to objects under a configured bucket and prefix",
		Version:     "1.0.0",
		Capabilities: []string{
			"read",
			"write",
		},
	})
}
