package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a catalog from a YAML file. An empty path or a missing file
// yields the built-in default catalog.
//
//	daily:
//	  - {id: dishes, name: Do dishes, time: 15 min, priority: high}
//	weekly:
//	  Monday:
//	    - {id: vacuum, name: Vacuum main areas, time: 20 min}
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// UnmarshalYAML decodes a weekday mapping in document order.
func (w *Weekly) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: weekly must be a mapping of weekday to tasks", value.Line)
	}
	out := make(Weekly, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var tasks []Task
		if err := val.Decode(&tasks); err != nil {
			return fmt.Errorf("weekday %q: %w", key.Value, err)
		}
		out = append(out, DayTasks{Day: key.Value, Tasks: tasks})
	}
	*w = out
	return nil
}
