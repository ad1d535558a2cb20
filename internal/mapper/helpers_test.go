package mapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"linkml2valve/internal/linkml"
	"linkml2valve/internal/valve"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.OutputDir = "out"

	return cfg
}

func newTestMapper(t *testing.T, src string, cfg Config) (*Mapper, *observer.ObservedLogs) {
	t.Helper()

	schema, err := linkml.Parse([]byte(src))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)

	return New(linkml.NewSchemaView(schema), cfg, zap.New(core)), logs
}

func mapSchema(t *testing.T, src string, cfg Config) (*Result, *observer.ObservedLogs) {
	t.Helper()

	m, logs := newTestMapper(t, src, cfg)

	res, err := m.Map(context.Background())
	require.NoError(t, err)

	return res, logs
}

func column(t *testing.T, rel valve.Relations, table, name string) valve.ColumnRow {
	t.Helper()

	for _, c := range rel.Columns {
		if c.Table == table && c.Column == name {
			return c
		}
	}

	require.Failf(t, "column not found", "%s.%s", table, name)

	return valve.ColumnRow{}
}

func columnNames(rel valve.Relations, table string) []string {
	var out []string
	for _, c := range rel.ColumnsOf(table) {
		out = append(out, c.Column)
	}

	return out
}

func datatype(rel valve.Relations, name string) (valve.DatatypeRow, bool) {
	for _, d := range rel.Datatypes {
		if d.Datatype == name {
			return d, true
		}
	}

	return valve.DatatypeRow{}, false
}
