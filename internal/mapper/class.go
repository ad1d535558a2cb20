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

// classTable is the mapped form of one class.
type classTable struct {
	table     valve.TableRow
	columns   []valve.ColumnRow
	datatypes []valve.DatatypeRow
	primary   valve.ColumnRow
}

// classResult is the output of the class phase.
type classResult struct {
	tables    []valve.TableRow
	columns   []valve.ColumnRow
	datatypes []valve.DatatypeRow
	// primaryKeys maps each class table to its primary-key column.
	primaryKeys map[string]valve.ColumnRow
}

func (m *Mapper) classPhase(ctx context.Context) (classResult, error) {
	classes := m.view.AllClasses()
	res := classResult{
		tables:      make([]valve.TableRow, 0, len(classes)),
		primaryKeys: make(map[string]valve.ColumnRow, len(classes)),
	}

	for _, c := range classes {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ct, err := m.mapClass(c)
		if err != nil {
			return res, err
		}

		res.tables = append(res.tables, ct.table)
		res.columns = append(res.columns, ct.columns...)
		res.datatypes = append(res.datatypes, ct.datatypes...)
		res.primaryKeys[c.Name] = ct.primary
	}

	return res, nil
}

// mapClass maps a class to its table row, its columns in induced-slot order
// and the datatypes derived from its slot usages. The slot chosen by
// IdentifierSlot is the primary key; other identifier or key slots become
// unique. A primary key is synthesized as the first column if no slot
// provides one.
func (m *Mapper) mapClass(c *linkml.ClassDefinition) (classTable, error) {
	ct := classTable{table: valve.NewTableRow(c.Name, c.Description, m.cfg.DataDir())}

	induced, err := m.view.InducedSlots(c.Name)
	if err != nil {
		return ct, fmt.Errorf("mapping class %q: %w", c.Name, err)
	}

	hasPrimary := false
	identName := ""
	if ident, ok := m.view.IdentifierSlot(c.Name); ok {
		identName = ident.Name
	}

	for _, is := range induced {
		col, ok := m.mapSlot(is.Slot, c)
		if !ok {
			continue
		}

		if is.Usage != nil {
			if dt, ok := m.usageDatatype(c, is.Slot, col.Datatype); ok {
				col.Datatype = dt.Datatype
				ct.datatypes = append(ct.datatypes, dt)
			}
		}

		if col.Structure.IsPrimary() {
			if is.Slot.Name == identName {
				hasPrimary = true
				ct.primary = col
			} else {
				m.log.Warn("Class has more than one identifier or key slot, using it as unique column",
					zap.String("class", c.Name),
					zap.String("slot", col.Column),
					zap.String("primary_key", identName))

				col.Structure = valve.Unique
			}
		}

		ct.columns = append(ct.columns, col)
	}

	if hasPrimary {
		return ct, nil
	}

	// A plain column already named like the generated key becomes the key.
	for i, col := range ct.columns {
		if col.Column != m.cfg.PrimaryKey {
			continue
		}

		if col.Structure != "" {
			return ct, fmt.Errorf("class %q slot %q is %s: %w", c.Name, col.Column, col.Structure, ErrPrimaryKeyConflict)
		}

		m.log.Info("Class has no identifier slot, using existing column as primary key",
			zap.String("class", c.Name),
			zap.String("column", col.Column))

		col.Structure = valve.Primary
		col.Nulltype = ""
		ct.columns[i] = col
		ct.primary = col

		return ct, nil
	}

	m.log.Info("Class has no identifier slot, creating primary key",
		zap.String("class", c.Name),
		zap.String("primary_key", m.cfg.PrimaryKey))

	ct.primary = valve.NewColumnRow(c.Name, m.cfg.PrimaryKey, "generated column", m.cfg.DefaultRange, valve.Primary, true)
	ct.columns = append([]valve.ColumnRow{ct.primary}, ct.columns...)

	return ct, nil
}

// usageDatatype builds the class-specific datatype "<class>_<slot>" for a
// slot usage whose range is scalar. Its parent is the datatype the column was
// mapped to and its condition is the induced pattern, if any.
func (m *Mapper) usageDatatype(c *linkml.ClassDefinition, slot *linkml.SlotDefinition, parent string) (valve.DatatypeRow, bool) {
	if slot.Range != "" {
		switch m.view.RangeKind(slot.Range) {
		case linkml.RangeClass, linkml.RangeEnum:
			return valve.DatatypeRow{}, false
		case linkml.RangeType, linkml.RangeUnresolved:
		}
	}

	name := strings.ToLower(c.Name) + "_" + slot.Name

	return valve.NewDatatypeRow(name, parent, "", valve.Match(slot.Pattern)), true
}

// typeDatatypes maps every schema type to a datatype row. A type whose
// typeof names another schema type is parented on it.
func (m *Mapper) typeDatatypes() []valve.DatatypeRow {
	types := m.view.AllTypes()
	out := make([]valve.DatatypeRow, 0, len(types))

	for _, t := range types {
		parent := m.cfg.DefaultDatatype
		if _, ok := m.view.Type(t.Typeof); ok && t.Typeof != t.Name {
			parent = t.Typeof
		}

		out = append(out, valve.NewDatatypeRow(t.Name, parent, strings.TrimSpace(t.Description), valve.Match(t.Pattern)))
	}

	return out
}

// warnUnresolvedRanges records slots whose range is neither a class, an enum nor a type.
func (m *Mapper) warnUnresolvedRanges() {
	for _, s := range m.view.AllSlots() {
		if s.Range == "" || m.view.RangeKind(s.Range) != linkml.RangeUnresolved {
			continue
		}

		m.log.Warn("Slot range is not a class, enum or type, using it as datatype name",
			zap.String("slot", s.Name),
			zap.String("range", s.Range))

		m.diags.AddWarning(diagnostic.CodeUnresolvedRange,
			fmt.Sprintf("range %q is not defined", s.Range), "", s.Name)
	}
}
