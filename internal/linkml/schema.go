package linkml

import "linkml2valve/internal/common"

// Schema is the root of a LinkML schema document.
type Schema struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Title        string   `yaml:"title,omitempty"`
	Description  string   `yaml:"description,omitempty"`
	Version      string   `yaml:"version,omitempty"`
	DefaultRange string   `yaml:"default_range,omitempty"`
	Imports      []string `yaml:"imports,omitempty"`

	// Classes, Slots, Enums and Types are kept in declaration order.
	Classes []*ClassDefinition `yaml:"-"`
	Slots   []*SlotDefinition  `yaml:"-"`
	Enums   []*EnumDefinition  `yaml:"-"`
	Types   []*TypeDefinition  `yaml:"-"`

	// UnresolvedImports lists imports that were neither built in nor found on disk.
	UnresolvedImports []string `yaml:"-"`
}

// ClassDefinition is a LinkML class.
type ClassDefinition struct {
	Name        string   `yaml:"name,omitempty"`
	Description string   `yaml:"description,omitempty"`
	IsA         string   `yaml:"is_a,omitempty"`
	Mixins      []string `yaml:"mixins,omitempty"`
	Mixin       bool     `yaml:"mixin,omitempty"`
	Abstract    bool     `yaml:"abstract,omitempty"`
	TreeRoot    bool     `yaml:"tree_root,omitempty"`
	// Slots are the names of shared slots this class uses, in declaration order.
	Slots []string `yaml:"slots,omitempty"`

	// Attributes are slots declared inline on this class.
	Attributes []*SlotDefinition `yaml:"-"`
	// SlotUsage holds per-class overrides of shared or inherited slots.
	SlotUsage []*SlotDefinition `yaml:"-"`
}

// Attribute returns the attribute with the given name declared on this class.
func (c *ClassDefinition) Attribute(name string) (*SlotDefinition, bool) {
	return findSlot(c.Attributes, name)
}

// Usage returns this class's slot usage override for the given slot name.
func (c *ClassDefinition) Usage(name string) (*SlotDefinition, bool) {
	return findSlot(c.SlotUsage, name)
}

// OwnSlotNames returns the names of the class's own slots followed by its attributes.
func (c *ClassDefinition) OwnSlotNames() []string {
	names := make([]string, 0, len(c.Slots)+len(c.Attributes))
	names = append(names, c.Slots...)

	for _, a := range c.Attributes {
		names = append(names, a.Name)
	}

	return common.Unique(names)
}

// Owns reports whether name is one of the class's own slots or attributes.
func (c *ClassDefinition) Owns(name string) bool {
	for _, n := range c.Slots {
		if n == name {
			return true
		}
	}

	_, ok := c.Attribute(name)

	return ok
}

// SlotDefinition is a LinkML slot, attribute or slot usage.
//
// Boolean flags are pointers so that a slot usage can tell "unset" apart from
// "false" when it is overlaid on a slot definition.
type SlotDefinition struct {
	Name         string   `yaml:"name,omitempty"`
	Description  string   `yaml:"description,omitempty"`
	Range        string   `yaml:"range,omitempty"`
	Pattern      string   `yaml:"pattern,omitempty"`
	Multivalued  *bool    `yaml:"multivalued,omitempty"`
	Required     *bool    `yaml:"required,omitempty"`
	Identifier   *bool    `yaml:"identifier,omitempty"`
	Key          *bool    `yaml:"key,omitempty"`
	MinimumValue *float64 `yaml:"minimum_value,omitempty"`
	MaximumValue *float64 `yaml:"maximum_value,omitempty"`
}

// IsMultivalued reports whether the slot permits more than one value.
func (s *SlotDefinition) IsMultivalued() bool { return isTrue(s.Multivalued) }

// IsRequired reports whether the slot must have a value.
func (s *SlotDefinition) IsRequired() bool { return isTrue(s.Required) }

// IsIdentifier reports whether the slot is a class identifier.
func (s *SlotDefinition) IsIdentifier() bool { return isTrue(s.Identifier) }

// IsKey reports whether the slot is a class key.
func (s *SlotDefinition) IsKey() bool { return isTrue(s.Key) }

// Overlay returns a copy of s with every field set in usage taken from usage.
// The name of s is kept.
func (s *SlotDefinition) Overlay(usage *SlotDefinition) *SlotDefinition {
	out := *s
	if usage == nil {
		return &out
	}

	if usage.Description != "" {
		out.Description = usage.Description
	}

	if usage.Range != "" {
		out.Range = usage.Range
	}

	if usage.Pattern != "" {
		out.Pattern = usage.Pattern
	}

	if usage.Multivalued != nil {
		out.Multivalued = usage.Multivalued
	}

	if usage.Required != nil {
		out.Required = usage.Required
	}

	if usage.Identifier != nil {
		out.Identifier = usage.Identifier
	}

	if usage.Key != nil {
		out.Key = usage.Key
	}

	if usage.MinimumValue != nil {
		out.MinimumValue = usage.MinimumValue
	}

	if usage.MaximumValue != nil {
		out.MaximumValue = usage.MaximumValue
	}

	return &out
}

// EnumDefinition is a LinkML enumeration.
type EnumDefinition struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	// PermissibleValues are kept in declaration order.
	PermissibleValues []PermissibleValue `yaml:"-"`
}

// Values returns the text of every permissible value in declaration order.
func (e *EnumDefinition) Values() []string {
	out := make([]string, len(e.PermissibleValues))
	for i, pv := range e.PermissibleValues {
		out[i] = pv.Text
	}

	return out
}

// PermissibleValue is one member of an enumeration.
type PermissibleValue struct {
	Text        string `yaml:"text,omitempty"`
	Description string `yaml:"description,omitempty"`
	// Meaning is a CURIE or IRI identifying the value.
	Meaning string `yaml:"meaning,omitempty"`
}

// TypeDefinition is a LinkML scalar type.
type TypeDefinition struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	Typeof      string `yaml:"typeof,omitempty"`
	Base        string `yaml:"base,omitempty"`
	URI         string `yaml:"uri,omitempty"`
	Pattern     string `yaml:"pattern,omitempty"`
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func findSlot(slots []*SlotDefinition, name string) (*SlotDefinition, bool) {
	for _, s := range slots {
		if s.Name == name {
			return s, true
		}
	}

	return nil, false
}
