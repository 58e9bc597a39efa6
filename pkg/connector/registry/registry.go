// Package registry manages connector registration and instantiation. Each
// connector package registers a factory for its kind at init time; callers
// then resolve a data asset's kind to a bound connector through Connect.
// An unregistered kind is a checked failure: it indicates a catalog and
// connector mismatch that must never proceed to I/O.
package registry

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/datakit-dev/datakit/pkg/catalog"
	"github.com/datakit-dev/datakit/pkg/config"
	"github.com/datakit-dev/datakit/pkg/connector/core"
	"github.com/datakit-dev/datakit/pkg/errors"
	"github.com/datakit-dev/datakit/pkg/logger"
)

// Factory creates a connector bound to the given data asset. Factories bind
// configuration only; no I/O happens until the connector is used.
type Factory func(asset catalog.DataAsset, cfg *config.Config) (core.Connector, error)

// Registry maps connector kinds to factories.
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new connector registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register registers a connector factory for a kind
func (r *Registry) Register(kind string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return errors.Newf(errors.ErrorTypeConfig, "connector kind %s already registered", kind)
	}

	r.factories[kind] = factory
	// Fetched per call: registration runs at package init, before the
	// global logger is configured, and must not freeze a logger reference.
	logger.Get().Info("connector registered",
		zap.String("component", "connector_registry"),
		zap.String("kind", kind))
	return nil
}

// Connect creates a connector for the asset's kind, bound to that asset.
// Unknown kinds fail with an unsupported_kind error.
func (r *Registry) Connect(asset catalog.DataAsset, cfg *config.Config) (core.Connector, error) {
	r.mu.RLock()
	factory, exists := r.factories[asset.Kind]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrorTypeUnsupportedKind,
			"no connector registered for kind %q (asset %s)", asset.Kind, asset.Name)
	}

	conn, err := factory(asset, cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig,
			"failed to create "+asset.Kind+" connector for asset "+asset.Name)
	}

	return conn, nil
}

// Kinds returns the registered connector kinds, sorted
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Has checks if a kind is registered
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.factories[kind]
	return exists
}

// Clear removes all registered connectors (mainly for testing)
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = make(map[string]Factory)
}

// Global registry functions

// Register registers a connector factory in the global registry
func Register(kind string, factory Factory) error {
	return globalRegistry.Register(kind, factory)
}

// Connect creates a connector from the global registry
func Connect(asset catalog.DataAsset, cfg *config.Config) (core.Connector, error) {
	return globalRegistry.Connect(asset, cfg)
}

// Kinds returns registered kinds from the global registry
func Kinds() []string {
	return globalRegistry.Kinds()
}

// Has checks if a kind is registered in the global registry
func Has(kind string) bool {
	return globalRegistry.Has(kind)
}

// GetRegistry returns the global registry instance.
func GetRegistry() *Registry {
	return globalRegistry
}

// ConnectorInfo provides information about a connector kind
type ConnectorInfo struct {
	Kind         string   `json:"kind"`
	Description  string   `json:"description"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

// ConnectorCatalog manages connector metadata
type ConnectorCatalog struct {
	connectors map[string]*ConnectorInfo
	mu         sync.RWMutex
}

// NewConnectorCatalog creates a new connector catalog
func NewConnectorCatalog() *ConnectorCatalog {
	return &ConnectorCatalog{
		connectors: make(map[string]*ConnectorInfo),
	}
}

// Register adds a connector to the catalog
func (c *ConnectorCatalog) Register(info *ConnectorInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.connectors[info.Kind]; exists {
		return errors.Newf(errors.ErrorTypeConfig, "connector %s already in catalog", info.Kind)
	}

	c.connectors[info.Kind] = info
	return nil
}

// Get retrieves connector information
func (c *ConnectorCatalog) Get(kind string) (*ConnectorInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, exists := c.connectors[kind]
	if !exists {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "connector %s not found in catalog", kind)
	}

	return info, nil
}

// List returns all connectors in the catalog, sorted by kind
func (c *ConnectorCatalog) List() []*ConnectorInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	infos := make([]*ConnectorInfo, 0, len(c.connectors))
	for _, info := range c.connectors {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Kind < infos[j].Kind })
	return infos
}

// Global catalog instance
var globalCatalog = NewConnectorCatalog()

// RegisterConnectorInfo registers connector information in the global catalog
func RegisterConnectorInfo(info *ConnectorInfo) error {
	return globalCatalog.Register(info)
}

// GetConnectorInfo retrieves connector information from the global catalog
func GetConnectorInfo(kind string) (*ConnectorInfo, error) {
	return globalCatalog.Get(kind)
}

// ListConnectorInfo lists all connectors in the global catalog
func ListConnectorInfo() []*ConnectorInfo {
	return globalCatalog.List()
}
