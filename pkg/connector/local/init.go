package local

import (
	"github.com/datakit-dev/datakit/pkg/connector/registry"
)

func init() {
	_ = registry.Register(Kind, New)

	_ = registry.RegisterConnectorInfo(&registry.ConnectorInfo{
		Kind:        Kind,
		Description: "Local filesystem connector resolving assets under the configured layer roots",
		Version:     "1.0.0",
		Capabilities: []string{
			"read",
			"write",
		},
	})
}
