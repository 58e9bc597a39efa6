package catalog

// Example returns the built-in testing catalog: a local source/sink pair
// used by the example pipeline and the I/O tests.
func Example() *Catalog {
	c, _ := New(
		DataAsset{
			Name:        "testing_source",
			Kind:        "local",
			Layer:       LayerRaw,
			Path:        "testing_io/test_reading",
			Extension:   "csv",
			Description: "features and labels from UCI datasets",
		},
		DataAsset{
			Name:        "testing_sink",
			Kind:        "local",
			Layer:       LayerRaw,
			Path:        "testing_io/test_writing",
			Extension:   "csv",
			Description: "features and labels from UCI datasets",
		},
	)
	return c
}
