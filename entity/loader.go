package entity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entities is a polymorphic entity list. In YAML each item carries a "type"
// discriminator naming the entity kind.
type Entities []Entity

// UnmarshalYAML decodes a sequence of tagged entity nodes into concrete types.
func (es *Entities) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("entities: expected a sequence, got %v at line %d", node.Kind, node.Line)
	}
	for _, item := range node.Content {
		var probe struct {
			Type string `yaml:"type"`
		}
		if err := item.Decode(&probe); err != nil {
			return err
		}
		e, err := newEntity(probe.Type)
		if err != nil {
			return fmt.Errorf("entities: line %d: %w", item.Line, err)
		}
		if err := item.Decode(e); err != nil {
			return fmt.Errorf("entities: decoding %s at line %d: %w", probe.Type, item.Line, err)
		}
		*es = append(*es, e)
	}
	return nil
}

func newEntity(kind string) (Entity, error) {
	switch kind {
	case "line":
		return &Line{}, nil
	case "circle":
		return &Circle{}, nil
	case "arc":
		return &Arc{}, nil
	case "lwpolyline", "polyline":
		return &Polyline{}, nil
	case "point":
		return &PointMarker{}, nil
	case "text":
		return &Text{}, nil
	case "insert":
		return &Insert{}, nil
	case "dimension":
		return &LinearDimension{}, nil
	case "":
		return nil, fmt.Errorf("entity is missing a type discriminator")
	default:
		return nil, fmt.Errorf("unknown entity type %q", kind)
	}
}

// Parse decodes a resolved document from YAML (or JSON, which is a YAML subset).
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	for name, style := range doc.Styles {
		if err := style.Validate(); err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
	}
	return &doc, nil
}

// Load reads and parses a document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(data)
}
