package linkml

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// namedDef is implemented by definitions that take their name from a YAML mapping key.
type namedDef interface {
	setName(name string)
}

func (c *ClassDefinition) setName(name string) { c.Name = name }
func (s *SlotDefinition) setName(name string)  { s.Name = name }
func (e *EnumDefinition) setName(name string)  { e.Name = name }
func (t *TypeDefinition) setName(name string)  { t.Name = name }

// isNull reports whether node is absent or an explicit YAML null.
func isNull(node *yaml.Node) bool {
	return node == nil || node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

// decodeNamed decodes a mapping of name -> definition into a slice that keeps
// the mapping's key order. A list of definitions with explicit names is
// accepted as well.
func decodeNamed[T any, P interface {
	*T
	namedDef
}](node *yaml.Node, what string) ([]*T, error) {
	if isNull(node) {
		return nil, nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		out := make([]*T, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			def := P(new(T))

			if value := node.Content[i+1]; !isNull(value) {
				if err := value.Decode(def); err != nil {
					return nil, fmt.Errorf("%s %q: %w", what, key, err)
				}
			}

			def.setName(key)
			out = append(out, (*T)(def))
		}

		return out, nil

	case yaml.SequenceNode:
		out := make([]*T, 0, len(node.Content))

		for i, item := range node.Content {
			def := P(new(T))
			if item.Kind == yaml.ScalarNode {
				def.setName(item.Value)
			} else if err := item.Decode(def); err != nil {
				return nil, fmt.Errorf("%s #%d: %w", what, i, err)
			}

			out = append(out, (*T)(def))
		}

		return out, nil

	default:
		return nil, fmt.Errorf("%s: expected mapping or list, got %v", what, node.Kind)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for Schema, keeping definition order.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	type plain Schema
	if err := node.Decode((*plain)(s)); err != nil {
		return err
	}

	var sections struct {
		Classes yaml.Node `yaml:"classes"`
		Slots   yaml.Node `yaml:"slots"`
		Enums   yaml.Node `yaml:"enums"`
		Types   yaml.Node `yaml:"types"`
	}

	if err := node.Decode(&sections); err != nil {
		return err
	}

	var err error

	if s.Classes, err = decodeNamed[ClassDefinition](&sections.Classes, "class"); err != nil {
		return err
	}

	if s.Slots, err = decodeNamed[SlotDefinition](&sections.Slots, "slot"); err != nil {
		return err
	}

	if s.Enums, err = decodeNamed[EnumDefinition](&sections.Enums, "enum"); err != nil {
		return err
	}

	if s.Types, err = decodeNamed[TypeDefinition](&sections.Types, "type"); err != nil {
		return err
	}

	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for ClassDefinition.
// Attributes and slot usages keep their declaration order.
func (c *ClassDefinition) UnmarshalYAML(node *yaml.Node) error {
	type plain ClassDefinition
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}

	var nested struct {
		Attributes yaml.Node `yaml:"attributes"`
		SlotUsage  yaml.Node `yaml:"slot_usage"`
	}

	if err := node.Decode(&nested); err != nil {
		return err
	}

	var err error

	if c.Attributes, err = decodeNamed[SlotDefinition](&nested.Attributes, "attribute"); err != nil {
		return err
	}

	if c.SlotUsage, err = decodeNamed[SlotDefinition](&nested.SlotUsage, "slot_usage"); err != nil {
		return err
	}

	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for EnumDefinition.
// Accepts permissible values as a mapping (value -> details or null)
// or as a list of plain values.
func (e *EnumDefinition) UnmarshalYAML(node *yaml.Node) error {
	type plain EnumDefinition
	if err := node.Decode((*plain)(e)); err != nil {
		return err
	}

	var nested struct {
		PermissibleValues yaml.Node `yaml:"permissible_values"`
	}

	if err := node.Decode(&nested); err != nil {
		return err
	}

	values, err := decodePermissibleValues(&nested.PermissibleValues)
	if err != nil {
		return err
	}

	e.PermissibleValues = values

	return nil
}

func decodePermissibleValues(node *yaml.Node) ([]PermissibleValue, error) {
	if isNull(node) {
		return nil, nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		out := make([]PermissibleValue, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			pv := PermissibleValue{}

			if value := node.Content[i+1]; !isNull(value) {
				if err := value.Decode(&pv); err != nil {
					return nil, fmt.Errorf("permissible value %q: %w", node.Content[i].Value, err)
				}
			}

			if pv.Text == "" {
				pv.Text = node.Content[i].Value
			}

			out = append(out, pv)
		}

		return out, nil

	case yaml.SequenceNode:
		out := make([]PermissibleValue, 0, len(node.Content))

		for _, item := range node.Content {
			pv := PermissibleValue{}
			if item.Kind == yaml.ScalarNode {
				pv.Text = item.Value
			} else if err := item.Decode(&pv); err != nil {
				return nil, fmt.Errorf("permissible value: %w", err)
			}

			out = append(out, pv)
		}

		return out, nil

	default:
		return nil, fmt.Errorf("permissible_values: expected mapping or list, got %v", node.Kind)
	}
}
