package domain

import "fmt"

type PlantType string

const (
	Tree       PlantType = "tree"
	Houseplant PlantType = "houseplant"
	Succulent  PlantType = "succulent"
	OtherPlant PlantType = "other"
)

type PlantSize string

const (
	Small  PlantSize = "small"
	Medium PlantSize = "medium"
	Large  PlantSize = "large"
)

// Plant is one catalog record. Plants are read-only once the catalog is loaded.
type Plant struct {
	Name         string    `json:"name" yaml:"name"`
	Type         PlantType `json:"type" yaml:"type"`
	Size         PlantSize `json:"size" yaml:"size"`
	OxygenOutput float64   `json:"oxygen_output" yaml:"oxygen_output"`
	Image        string    `json:"image" yaml:"image"`
}

func (t PlantType) Valid() bool {
	switch t {
	case Tree, Houseplant, Succulent, OtherPlant:
		return true
	}
	return false
}

func (s PlantSize) Valid() bool {
	switch s {
	case Small, Medium, Large:
		return true
	}
	return false
}

// Validate checks a catalog record before it is accepted.
func (p Plant) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("plant name is required")
	}
	if !p.Type.Valid() {
		return fmt.Errorf("plant %q: unknown type %q", p.Name, p.Type)
	}
	if !p.Size.Valid() {
		return fmt.Errorf("plant %q: unknown size %q", p.Name, p.Size)
	}
	if p.OxygenOutput < 0 {
		return fmt.Errorf("plant %q: oxygen output cannot be negative", p.Name)
	}
	return nil
}
