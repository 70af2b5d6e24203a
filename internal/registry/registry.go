package registry

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"requestScope/internal/model"
)

// Lookup returns the instrument of the first entry with slotID. An absent slot
// yields the zero Instrument, which callers treat as unknown.
func Lookup(slotID uint8, entries model.Registry) model.Instrument {
	for _, entry := range entries {
		if entry.SlotID == slotID {
			return entry.Instrument
		}
	}
	return model.Instrument{}
}

// Source supplies a registry snapshot.
type Source interface {
	LoadRegistry(ctx context.Context) (model.Registry, error)
}

// FileSource reads a snapshot from a YAML or JSON file.
type FileSource struct {
	Path string
}

func (s FileSource) LoadRegistry(_ context.Context) (model.Registry, error) {
	return LoadFile(s.Path)
}

var validate = validator.New()

// LoadFile reads and validates a registry snapshot.
func LoadFile(path string) (model.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON registry snapshot. The document is either a list of
// entries or an object with an "instruments" list.
func Parse(data []byte) (model.Registry, error) {
	var entries model.Registry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		var wrapped struct {
			Instruments model.Registry `yaml:"instruments"`
		}
		if errWrapped := yaml.Unmarshal(data, &wrapped); errWrapped != nil {
			return nil, fmt.Errorf("parse registry: %w", err)
		}
		entries = wrapped.Instruments
	}

	if err := Validate(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Validate checks every instrument of the registry.
func Validate(entries model.Registry) error {
	for i, entry := range entries {
		if err := validate.Struct(entry.Instrument); err != nil {
			return fmt.Errorf("registry entry %d (slot %d): %w", i, entry.SlotID, err)
		}
	}
	return nil
}
