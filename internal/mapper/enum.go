package mapper

import (
	"context"
	"strings"

	"linkml2valve/internal/linkml"
	"linkml2valve/internal/valve"
)

// enumResult is the output of the enum phase.
type enumResult struct {
	tables    []valve.TableRow
	columns   []valve.ColumnRow
	datatypes []valve.DatatypeRow
	data      []valve.DataTable
}

// enumPhase maps every enumeration to a table under the output directory.
func (m *Mapper) enumPhase(ctx context.Context) (enumResult, error) {
	var res enumResult

	for _, e := range m.view.AllEnums() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		table, columns, datatype, data := m.mapEnum(e)

		res.tables = append(res.tables, table)
		res.columns = append(res.columns, columns...)
		res.data = append(res.data, data)

		if datatype != nil {
			res.datatypes = append(res.datatypes, *datatype)
		}
	}

	return res, nil
}

// mapEnum maps one enumeration to its table row, its permissible-value
// (primary) and meaning columns, an optional in(...) datatype and its data rows.
func (m *Mapper) mapEnum(e *linkml.EnumDefinition) (valve.TableRow, []valve.ColumnRow, *valve.DatatypeRow, valve.DataTable) {
	table := valve.NewTableRow(e.Name, e.Description, m.cfg.OutputDir)

	var datatype *valve.DatatypeRow

	if m.cfg.EnumDatatypes {
		dt := valve.NewDatatypeRow(m.enumValueDatatype(e.Name), m.cfg.DefaultDatatype,
			strings.TrimSpace(e.Description), valve.In(e.Values()...))
		datatype = &dt
	}

	columns := []valve.ColumnRow{
		valve.NewColumnRow(e.Name, m.cfg.EnumPrimaryKey, "Permissible Value", m.enumValueDatatype(e.Name), valve.Primary, true),
		valve.NewColumnRow(e.Name, m.cfg.MeaningColumn, "CURIE meaning", m.cfg.MeaningDatatype, "", false),
	}

	data := valve.DataTable{
		Table:   e.Name,
		Path:    table.Path,
		Headers: []string{m.cfg.EnumPrimaryKey, m.cfg.MeaningColumn},
		Rows:    make([]map[string]string, 0, len(e.PermissibleValues)),
	}

	for _, pv := range e.PermissibleValues {
		data.Rows = append(data.Rows, map[string]string{
			m.cfg.EnumPrimaryKey: pv.Text,
			m.cfg.MeaningColumn:  pv.Meaning,
		})
	}

	return table, columns, datatype, data
}

// enumValueDatatype is the datatype of an enum's permissible values and of
// the columns referencing them.
func (m *Mapper) enumValueDatatype(enumName string) string {
	if m.cfg.EnumDatatypes {
		return strings.ToLower(enumName)
	}

	return m.cfg.DefaultDatatype
}
