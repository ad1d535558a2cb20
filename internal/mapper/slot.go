package mapper

import (
	"fmt"

	"go.uber.org/zap"

	"linkml2valve/internal/diagnostic"
	"linkml2valve/internal/linkml"
	"linkml2valve/internal/valve"
)

// mapSlot maps one induced slot of cls to a column. Multivalued slots yield
// no column; they are handled by the multivalued phase.
//
// Decision order:
//  1. identifier or key: default datatype, primary, always required
//  2. range is a class: from(<Range>.<identifier>) typed by the identifier's range
//  3. range is an enum: from(<Enum>.<permissible value column>)
//  4. otherwise: the range name, or the default datatype without a range
func (m *Mapper) mapSlot(slot *linkml.SlotDefinition, cls *linkml.ClassDefinition) (valve.ColumnRow, bool) {
	if slot.IsMultivalued() {
		m.log.Info("Skipping multivalued slot for now",
			zap.String("class", cls.Name),
			zap.String("slot", slot.Name))

		return valve.ColumnRow{}, false
	}

	datatype := m.cfg.DefaultDatatype

	var structure valve.Structure

	switch {
	case slot.IsIdentifier() || slot.IsKey():
		structure = valve.Primary
	case slot.Range == "":
	case m.view.RangeKind(slot.Range) == linkml.RangeClass:
		datatype, structure = m.referenceClass(slot, cls)
	case m.view.RangeKind(slot.Range) == linkml.RangeEnum:
		datatype = m.enumValueDatatype(slot.Range)
		structure = valve.From(slot.Range, m.cfg.EnumPrimaryKey)
	default:
		datatype = slot.Range
	}

	required := slot.IsRequired() || structure.IsPrimary()

	return valve.NewColumnRow(cls.Name, slot.Name, slot.Description, datatype, structure, required), true
}

// referenceClass returns the datatype and foreign-key structure of a slot
// whose range is a class.
func (m *Mapper) referenceClass(slot *linkml.SlotDefinition, cls *linkml.ClassDefinition) (string, valve.Structure) {
	target := slot.Range

	if id, ok := m.view.IdentifierSlot(target); ok {
		datatype := id.Range
		if datatype == "" {
			datatype = m.cfg.DefaultRange
		}

		return datatype, valve.From(target, id.Name)
	}

	m.log.Info("Range class has no identifier, referencing the default primary key",
		zap.String("class", cls.Name),
		zap.String("slot", slot.Name),
		zap.String("range", target),
		zap.String("primary_key", m.cfg.PrimaryKey))

	m.diags.AddInfo(diagnostic.CodeRangeWithoutIdentifier,
		fmt.Sprintf("range %q has no identifier, using %s.%s", target, target, m.cfg.PrimaryKey),
		cls.Name, slot.Name)

	return m.cfg.DefaultDatatype, valve.From(target, m.cfg.PrimaryKey)
}
