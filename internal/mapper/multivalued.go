package mapper

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"linkml2valve/internal/diagnostic"
	"linkml2valve/internal/linkml"
	"linkml2valve/internal/valve"
)

// multivaluedResult is the output of the multivalued phase: the reverse
// foreign-key columns to append after the class columns.
type multivaluedResult struct {
	columns []valve.ColumnRow
}

type columnKey struct {
	table, column string
}

// multivaluedPhase replaces every multivalued slot whose range is a class by
// a column on the range table referencing the declaring class's primary key.
// It runs after the class phase so that every class has a primary key.
func (m *Mapper) multivaluedPhase(ctx context.Context, classes classResult) (multivaluedResult, error) {
	var res multivaluedResult

	existing := make(map[columnKey]bool, len(classes.columns))
	for _, c := range classes.columns {
		existing[columnKey{c.Table, c.Column}] = true
	}

	for _, slot := range m.view.AllSlots() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		col, ok, err := m.mapMultivalued(slot, classes.primaryKeys)
		if err != nil {
			return res, err
		}

		if !ok {
			continue
		}

		key := columnKey{col.Table, col.Column}
		if existing[key] {
			m.log.Warn("Reverse column already exists, skipping",
				zap.String("table", col.Table),
				zap.String("column", col.Column),
				zap.String("slot", slot.Name))

			m.diags.AddWarning(diagnostic.CodeDuplicateReverseColumn,
				fmt.Sprintf("column %s.%s already exists, skipping reverse column", col.Table, col.Column),
				col.Table, slot.Name)

			continue
		}

		existing[key] = true
		res.columns = append(res.columns, col)
	}

	return res, nil
}

// mapMultivalued builds the reverse column for one slot, if it needs one.
func (m *Mapper) mapMultivalued(slot *linkml.SlotDefinition, primaryKeys map[string]valve.ColumnRow) (valve.ColumnRow, bool, error) {
	declaring, ok := m.view.DeclaringClass(slot.Name)
	if !ok {
		return valve.ColumnRow{}, false, nil
	}

	slot = m.declaredSlot(declaring, slot)
	if !slot.IsMultivalued() || slot.Range == "" {
		return valve.ColumnRow{}, false, nil
	}

	if m.view.RangeKind(slot.Range) != linkml.RangeClass {
		m.log.Info("Multivalued slot range is not a class, no column mapped",
			zap.String("class", declaring.Name),
			zap.String("slot", slot.Name),
			zap.String("range", slot.Range))

		m.diags.AddInfo(diagnostic.CodeMultivaluedScalar,
			fmt.Sprintf("multivalued slot with range %q is not mapped", slot.Range),
			declaring.Name, slot.Name)

		return valve.ColumnRow{}, false, nil
	}

	pk, ok := primaryKeys[declaring.Name]
	if !ok {
		return valve.ColumnRow{}, false, fmt.Errorf(
			"cannot map multivalued slot %q with range %q in class %q: %w",
			slot.Name, slot.Range, declaring.Name, ErrMissingPrimaryKey)
	}

	name := strings.ToLower(declaring.Name)

	m.log.Info("Mapping multivalued slot to reverse column",
		zap.String("class", declaring.Name),
		zap.String("slot", slot.Name),
		zap.String("table", slot.Range),
		zap.String("column", name))

	description := fmt.Sprintf("generated column from multivalued slot %s.%s", declaring.Name, slot.Name)

	return valve.NewColumnRow(slot.Range, name, description, pk.Datatype,
		valve.From(declaring.Name, pk.Column), slot.IsRequired()), true, nil
}

// declaredSlot returns slot as induced on its declaring class, so that the
// class's slot usage applies.
func (m *Mapper) declaredSlot(declaring *linkml.ClassDefinition, slot *linkml.SlotDefinition) *linkml.SlotDefinition {
	induced, err := m.view.InducedSlots(declaring.Name)
	if err != nil {
		return slot
	}

	for _, is := range induced {
		if is.Slot.Name == slot.Name {
			return is.Slot
		}
	}

	return slot
}
