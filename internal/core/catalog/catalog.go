// Package catalog holds the static list of plants offered by the storefront.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
)

//go:embed plants.yaml
var defaultCatalog []byte

type Catalog struct {
	plants []domain.Plant
	byName map[string]int
}

type file struct {
	Plants []domain.Plant `yaml:"plants"`
}

// Load parses and validates a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Plants) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	c := &Catalog{
		plants: f.Plants,
		byName: make(map[string]int, len(f.Plants)),
	}
	for i, p := range f.Plants {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog entry %d: %w", i, err)
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate plant %q", p.Name)
		}
		c.byName[p.Name] = i
	}
	return c, nil
}

// LoadFile reads the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// Plants returns a copy of every plant, in catalog order.
func (c *Catalog) Plants() []domain.Plant {
	out := make([]domain.Plant, len(c.plants))
	copy(out, c.plants)
	return out
}

func (c *Catalog) Find(name string) (domain.Plant, error) {
	i, ok := c.byName[name]
	if !ok {
		return domain.Plant{}, fmt.Errorf("%w: %q", domain.ErrUnknownPlant, name)
	}
	return c.plants[i], nil
}
