package freightdata

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/dataset.yaml
var embeddedDataset []byte

// Load parses a dataset from raw YAML and indexes it.
func Load(raw []byte) (*Provider, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return NewProvider(ds)
}

// LoadFile reads a dataset override from disk.
func LoadFile(path string) (*Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	return Load(raw)
}

// Default returns the provider backed by the embedded reference dataset.
func Default() (*Provider, error) {
	return Load(embeddedDataset)
}
