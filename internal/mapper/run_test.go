package mapper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linkml2valve/internal/valve"
)

func runInto(t *testing.T, dir string) *Result {
	t.Helper()

	cfg := DefaultConfig()
	cfg.OutputDir = dir

	res, err := Run(context.Background(), personinfoPath, cfg, zap.NewNop())
	require.NoError(t, err)

	return res
}

func readRelations(t *testing.T, dir string) []string {
	t.Helper()

	tablePath, columnPath, datatypePath := valve.RelationPaths(dir)

	var out []string

	for _, p := range []string{tablePath, columnPath, datatypePath} {
		data, err := os.ReadFile(p)
		require.NoError(t, err)

		out = append(out, string(data))
	}

	return out
}

func TestRunWritesRelations(t *testing.T) {
	dir := t.TempDir()
	res := runInto(t, dir)

	files := readRelations(t, dir)
	assert.True(t, strings.HasPrefix(files[0], "table\tpath\tdescription\ttype\n"))
	assert.True(t, strings.HasPrefix(files[1], "table\tcolumn\tnulltype\tdatatype\tstructure\tdescription\n"))
	assert.True(t, strings.HasPrefix(files[2], strings.Join(valve.DatatypeHeaders, "\t")+"\n"))

	assert.Contains(t, files[0], "Person\t"+filepath.Join(dir, "data", "Person.tsv")+"\tA person (alive, dead, undead, or fictional).\t\n")
	assert.Contains(t, files[1], "MedicalEvent\tperson\tempty\ttext\tfrom(Person.id)\tgenerated column from multivalued slot Person.has_medical_history\n")

	require.Len(t, res.EnumTables, 1)

	data, err := os.ReadFile(filepath.Join(dir, "GenderType.tsv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "permissible_value\tmeaning", lines[0])
	assert.Equal(t, "nonbinary man\tGSSO:009254", lines[1])
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	runInto(t, dir)
	first := readRelations(t, dir)

	runInto(t, dir)
	second := readRelations(t, dir)

	assert.Equal(t, first, second)
}

func TestRunMissingSchema(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()

	_, err := Run(context.Background(), filepath.Join(cfg.OutputDir, "missing.yaml"), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading schema")
}

func TestRunBaselineDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.BaselineDir = t.TempDir()

	_, err := Run(context.Background(), personinfoPath, cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading baseline")
}

func TestMapData(t *testing.T) {
	err := MapData("schema.yaml", "data")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataMappingNotImplemented))
}
