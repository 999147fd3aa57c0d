// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"herbicide/pkg/tilegrid"
)

// ErrUnknownModel is returned when a model id has no definition.
var ErrUnknownModel = errors.New("defs: unknown model")

// Library holds model definitions keyed by id. It builds grid models
// and satisfies tilegrid.ModelFactory.
type Library struct {
	models map[string]*ModelDefinition
}

// NewLibrary creates a library from definitions. Duplicate ids are rejected.
func NewLibrary(defs []ModelDefinition) (*Library, error) {
	lib := &Library{models: make(map[string]*ModelDefinition, len(defs))}
	for i := range defs {
		def := defs[i]
		if def.ID == "" {
			return nil, fmt.Errorf("model definition #%d has no id", i)
		}
		if _, dup := lib.models[def.ID]; dup {
			return nil, fmt.Errorf("duplicate model definition %q", def.ID)
		}
		if def.Hosts && def.Footprint() != tilegrid.Unit {
			return nil, fmt.Errorf("model %q: only 1x1 models can host others", def.ID)
		}
		lib.models[def.ID] = &def
	}
	return lib, nil
}

// LoadModelDefinitions reads the model definitions file.
func LoadModelDefinitions(path string) (*Library, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model definitions file: %w", err)
	}

	var modelDefs []ModelDefinition
	if err := json.Unmarshal(file, &modelDefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model definitions: %w", err)
	}

	lib, err := NewLibrary(modelDefs)
	if err != nil {
		return nil, err
	}
	slog.Info("model definitions loaded", "count", lib.Len(), "file", path)
	return lib, nil
}

// Len returns the number of definitions.
func (l *Library) Len() int { return len(l.models) }

// Get returns the definition for id.
func (l *Library) Get(id string) (*ModelDefinition, bool) {
	def, ok := l.models[id]
	return def, ok
}

// IDs returns every definition id, sorted.
func (l *Library) IDs() []string {
	ids := make([]string, 0, len(l.models))
	for id := range l.models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewModel builds a fresh model instance for id.
func (l *Library) NewModel(id string) (tilegrid.Model, error) {
	def, ok := l.models[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}
	if def.Hosts {
		return &Host{Model: Model{Def: def}}, nil
	}
	return &Model{Def: def}, nil
}
