package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alvinquach/fgo-planner-go/internal/validation"
)

// Sentinel errors for the game data loader
var (
	ErrDuplicateServantID = errors.New("duplicate servant id")
	ErrDuplicateItemID    = errors.New("duplicate item id")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// ServantConfig is the JSON configuration holding servant cost tables.
type ServantConfig struct {
	Version     string     `json:"version"`
	Description string     `json:"description,omitempty"`
	Servants    []*Servant `json:"servants"`
}

// ItemConfig is the JSON configuration holding item definitions.
type ItemConfig struct {
	Version     string  `json:"version"`
	Description string  `json:"description,omitempty"`
	Items       []*Item `json:"items"`
}

// Loader handles loading and validating game data configuration files.
type Loader interface {
	LoadServants(path string) (*ServantConfig, error)
	LoadItems(path string) (*ItemConfig, error)
	BuildCatalog(servants *ServantConfig, items *ItemConfig) (*Catalog, error)
}

type loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &loader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// LoadServants reads and parses a servant catalog JSON file.
func (l *loader) LoadServants(path string) (*ServantConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, ServantsSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config ServantConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFileFailed, err)
	}

	if err := validateServantConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadItems reads and parses an item catalog JSON file.
func (l *loader) LoadItems(path string) (*ItemConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, ItemsSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config ItemConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFileFailed, err)
	}

	if err := validateItemConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// BuildCatalog indexes validated configs into a Catalog.
func (l *loader) BuildCatalog(servants *ServantConfig, items *ItemConfig) (*Catalog, error) {
	if servants == nil || items == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	return NewCatalog(servants.Servants, items.Items), nil
}

func validateServantConfig(config *ServantConfig) error {
	seen := make(map[int]bool, len(config.Servants))
	for _, s := range config.Servants {
		if s == nil {
			return fmt.Errorf("%w: nil servant entry", ErrInvalidConfig)
		}
		if s.ID <= 0 {
			return fmt.Errorf("%w: servant %q has invalid id %d", ErrInvalidConfig, s.Name, s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %d (%s)", ErrDuplicateServantID, s.ID, s.Name)
		}
		seen[s.ID] = true

		for level, cost := range s.AscensionMaterials {
			if level <= 0 {
				return fmt.Errorf("%w: servant %d has ascension level %d", ErrInvalidConfig, s.ID, level)
			}
			if err := validateCost(cost); err != nil {
				return fmt.Errorf("servant %d ascension %d: %w", s.ID, level, err)
			}
		}
		for level, cost := range s.SkillMaterials {
			if level <= 0 {
				return fmt.Errorf("%w: servant %d has skill level %d", ErrInvalidConfig, s.ID, level)
			}
			if err := validateCost(cost); err != nil {
				return fmt.Errorf("servant %d skill %d: %w", s.ID, level, err)
			}
		}
		for level, cost := range s.AppendSkillMaterials {
			if level <= 0 {
				return fmt.Errorf("%w: servant %d has append skill level %d", ErrInvalidConfig, s.ID, level)
			}
			if err := validateCost(cost); err != nil {
				return fmt.Errorf("servant %d append skill %d: %w", s.ID, level, err)
			}
		}
		for id, costume := range s.Costumes {
			if err := validateCost(costume.Cost); err != nil {
				return fmt.Errorf("servant %d costume %d: %w", s.ID, id, err)
			}
		}
	}
	return nil
}

func validateItemConfig(config *ItemConfig) error {
	seen := make(map[int]bool, len(config.Items))
	for _, it := range config.Items {
		if it == nil {
			return fmt.Errorf("%w: nil item entry", ErrInvalidConfig)
		}
		if it.ID <= 0 {
			return fmt.Errorf("%w: item %q has invalid id %d", ErrInvalidConfig, it.Name, it.ID)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: %d (%s)", ErrDuplicateItemID, it.ID, it.Name)
		}
		seen[it.ID] = true
	}
	return nil
}

func validateCost(cost EnhancementCost) error {
	if cost.QP < 0 {
		return fmt.Errorf("%w: negative qp cost", ErrInvalidConfig)
	}
	for _, m := range cost.Materials {
		if m.ItemID <= 0 {
			return fmt.Errorf("%w: material with invalid item id %d", ErrInvalidConfig, m.ItemID)
		}
		if m.Quantity <= 0 {
			return fmt.Errorf("%w: material %d with non-positive quantity %d", ErrInvalidConfig, m.ItemID, m.Quantity)
		}
	}
	return nil
}
