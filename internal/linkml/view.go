package linkml

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSlot is returned when a class references a slot the schema does not define.
	ErrUnknownSlot = errors.New("unknown slot")
	// ErrUnknownClass is returned when a class inherits from a class the schema does not define.
	ErrUnknownClass = errors.New("unknown class")
)

// SchemaView is a read-only, indexed view over a Schema.
// Name indexes are built once by NewSchemaView.
type SchemaView struct {
	schema   *Schema
	classes  map[string]*ClassDefinition
	slots    map[string]*SlotDefinition
	enums    map[string]*EnumDefinition
	types    map[string]*TypeDefinition
	allSlots []*SlotDefinition
}

// InducedSlot is a slot as it applies to one class: the slot definition with
// every applicable slot usage overlaid.
type InducedSlot struct {
	// Slot is the induced definition.
	Slot *SlotDefinition
	// Owner is the class that declares the slot (the class itself for own slots).
	Owner string
	// Inherited is true if the slot comes from an ancestor or mixin.
	Inherited bool
	// Usage is the class's own slot usage for this slot, if any.
	Usage *SlotDefinition
}

// NewSchemaView indexes s. The first definition of a name wins.
func NewSchemaView(s *Schema) *SchemaView {
	v := &SchemaView{
		schema:  s,
		classes: make(map[string]*ClassDefinition, len(s.Classes)),
		slots:   make(map[string]*SlotDefinition, len(s.Slots)),
		enums:   make(map[string]*EnumDefinition, len(s.Enums)),
		types:   make(map[string]*TypeDefinition, len(s.Types)),
	}

	for _, c := range s.Classes {
		if _, ok := v.classes[c.Name]; !ok {
			v.classes[c.Name] = c
		}
	}

	addSlot := func(sd *SlotDefinition) {
		if _, ok := v.slots[sd.Name]; ok {
			return
		}

		v.slots[sd.Name] = sd
		v.allSlots = append(v.allSlots, sd)
	}

	for _, sd := range s.Slots {
		addSlot(sd)
	}

	for _, c := range s.Classes {
		for _, a := range c.Attributes {
			addSlot(a)
		}
	}

	for _, e := range s.Enums {
		if _, ok := v.enums[e.Name]; !ok {
			v.enums[e.Name] = e
		}
	}

	for _, t := range s.Types {
		if _, ok := v.types[t.Name]; !ok {
			v.types[t.Name] = t
		}
	}

	return v
}

// Schema returns the underlying schema.
func (v *SchemaView) Schema() *Schema { return v.schema }

// DefaultRange returns the schema-wide default range, or "" if none is declared.
func (v *SchemaView) DefaultRange() string { return v.schema.DefaultRange }

// AllClasses returns every class in declaration order.
func (v *SchemaView) AllClasses() []*ClassDefinition { return v.schema.Classes }

// AllSlots returns every shared slot followed by every class attribute,
// in declaration order and without duplicate names.
func (v *SchemaView) AllSlots() []*SlotDefinition { return v.allSlots }

// AllEnums returns every enumeration in declaration order.
func (v *SchemaView) AllEnums() []*EnumDefinition { return v.schema.Enums }

// AllTypes returns every scalar type in declaration order.
func (v *SchemaView) AllTypes() []*TypeDefinition { return v.schema.Types }

// Class looks up a class by name.
func (v *SchemaView) Class(name string) (*ClassDefinition, bool) {
	c, ok := v.classes[name]
	return c, ok
}

// Slot looks up a shared slot or attribute by name.
func (v *SchemaView) Slot(name string) (*SlotDefinition, bool) {
	s, ok := v.slots[name]
	return s, ok
}

// Enum looks up an enumeration by name.
func (v *SchemaView) Enum(name string) (*EnumDefinition, bool) {
	e, ok := v.enums[name]
	return e, ok
}

// Type looks up a scalar type by name.
func (v *SchemaView) Type(name string) (*TypeDefinition, bool) {
	t, ok := v.types[name]
	return t, ok
}

// SlotNames returns the names of AllSlots.
func (v *SchemaView) SlotNames() []string {
	out := make([]string, len(v.allSlots))
	for i, s := range v.allSlots {
		out[i] = s.Name
	}

	return out
}

// RangeKind classifies a range name. Classes take precedence over enums,
// and enums over types.
func (v *SchemaView) RangeKind(name string) RangeKind {
	if _, ok := v.classes[name]; ok {
		return RangeClass
	}

	if _, ok := v.enums[name]; ok {
		return RangeEnum
	}

	if _, ok := v.types[name]; ok {
		return RangeType
	}

	return RangeUnresolved
}

// Ancestors returns the transitive parents of a class (is_a before mixins),
// breadth first and nearest first, without the class itself.
func (v *SchemaView) Ancestors(className string) ([]*ClassDefinition, error) {
	c, ok := v.classes[className]
	if !ok {
		return nil, fmt.Errorf("class %q: %w", className, ErrUnknownClass)
	}

	var out []*ClassDefinition

	seen := map[string]bool{className: true}
	queue := parentsOf(c)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if seen[name] {
			continue
		}

		seen[name] = true

		parent, ok := v.classes[name]
		if !ok {
			return nil, fmt.Errorf("class %q inherits from %q: %w", className, name, ErrUnknownClass)
		}

		out = append(out, parent)
		queue = append(queue, parentsOf(parent)...)
	}

	return out, nil
}

func parentsOf(c *ClassDefinition) []string {
	var out []string
	if c.IsA != "" {
		out = append(out, c.IsA)
	}

	return append(out, c.Mixins...)
}

// InducedSlots returns the slots of a class: inherited slots first (in
// ancestor order), then the class's own slots, then its attributes.
// Slot usages of ancestors (farthest first) and then of the class itself
// are overlaid on each definition.
func (v *SchemaView) InducedSlots(className string) ([]InducedSlot, error) {
	c, ok := v.classes[className]
	if !ok {
		return nil, fmt.Errorf("class %q: %w", className, ErrUnknownClass)
	}

	ancestors, err := v.Ancestors(className)
	if err != nil {
		return nil, err
	}

	var out []InducedSlot

	seen := map[string]bool{}

	for _, a := range ancestors {
		for _, name := range a.OwnSlotNames() {
			if seen[name] || c.Owns(name) {
				continue
			}

			seen[name] = true

			base, err := v.slotFor(a, name)
			if err != nil {
				return nil, err
			}

			out = append(out, v.induce(c, ancestors, base, a.Name, true))
		}
	}

	for _, name := range c.OwnSlotNames() {
		if seen[name] {
			continue
		}

		seen[name] = true

		base, err := v.slotFor(c, name)
		if err != nil {
			return nil, err
		}

		out = append(out, v.induce(c, ancestors, base, c.Name, false))
	}

	return out, nil
}

// slotFor resolves a slot name used by cls: its own attribute first, then the slot universe.
func (v *SchemaView) slotFor(cls *ClassDefinition, name string) (*SlotDefinition, error) {
	if a, ok := cls.Attribute(name); ok {
		return a, nil
	}

	if s, ok := v.slots[name]; ok {
		return s, nil
	}

	return nil, fmt.Errorf("class %q uses slot %q: %w", cls.Name, name, ErrUnknownSlot)
}

func (v *SchemaView) induce(c *ClassDefinition, ancestors []*ClassDefinition, base *SlotDefinition, owner string, inherited bool) InducedSlot {
	slot := base.Overlay(nil)

	for i := len(ancestors) - 1; i >= 0; i-- {
		if u, ok := ancestors[i].Usage(base.Name); ok {
			slot = slot.Overlay(u)
		}
	}

	usage, _ := c.Usage(base.Name)
	slot = slot.Overlay(usage)

	return InducedSlot{Slot: slot, Owner: owner, Inherited: inherited, Usage: usage}
}

// IdentifierSlot returns the induced identifier slot of a class, or else its
// first key slot. Inherited slots are considered.
func (v *SchemaView) IdentifierSlot(className string) (*SlotDefinition, bool) {
	induced, err := v.InducedSlots(className)
	if err != nil {
		return nil, false
	}

	for _, is := range induced {
		if is.Slot.IsIdentifier() {
			return is.Slot, true
		}
	}

	for _, is := range induced {
		if is.Slot.IsKey() {
			return is.Slot, true
		}
	}

	return nil, false
}

// DeclaringClass returns the first class, in declaration order, whose own
// slots or attributes include slotName.
func (v *SchemaView) DeclaringClass(slotName string) (*ClassDefinition, bool) {
	for _, c := range v.schema.Classes {
		if c.Owns(slotName) {
			return c, true
		}
	}

	return nil, false
}

// ClasslessSlots returns the names of slots that no class uses directly.
func (v *SchemaView) ClasslessSlots() []string {
	var out []string

	for _, s := range v.allSlots {
		if _, ok := v.DeclaringClass(s.Name); !ok {
			out = append(out, s.Name)
		}
	}

	return out
}
