package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownSchema is returned when an export schema key is not registered.
var ErrUnknownSchema = errors.New("unknown schema")

var (
	registry   = make(map[string]ExportSchema)
	registryMu sync.RWMutex
)

// Register adds an export schema to the registry.
// Panics if a schema with the same key is already registered.
func Register(schema ExportSchema) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[schema.Info.Key]; exists {
		panic(fmt.Sprintf("schema already registered: %s", schema.Info.Key))
	}

	// Populate Columns from FieldSpecs if not set
	if len(schema.Info.Columns) == 0 && len(schema.FieldSpecs) > 0 {
		schema.Info.Columns = make([]string, len(schema.FieldSpecs))
		for i, spec := range schema.FieldSpecs {
			schema.Info.Columns[i] = spec.Name
		}
	}

	registry[schema.Info.Key] = schema
}

// Get returns an export schema by key.
// Returns false if not found.
func Get(key string) (ExportSchema, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	schema, ok := registry[key]
	return schema, ok
}

// All returns all registered export schemas sorted by key.
func All() []ExportSchema {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ExportSchema, 0, len(registry))
	for _, schema := range registry {
		result = append(result, schema)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// SchemaCount returns the number of registered schemas.
func SchemaCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
