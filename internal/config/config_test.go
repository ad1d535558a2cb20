package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkml2valve/internal/datagen"
	"linkml2valve/internal/mapper"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	want := mapper.DefaultConfig()
	want.OutputDir = "out"
	assert.Equal(t, want, cfg.MapperConfig("out"))
	assert.Equal(t, datagen.DefaultConfig(), cfg.GeneratorConfig())
	assert.Empty(t, cfg.SQLitePath)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
mapping:
  primary_key: pk
  enum_datatypes: true
data:
  subdir: rows
  rows: 10
  seed: 3
baseline_dir: baseline
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	mc := cfg.MapperConfig("out")
	assert.Equal(t, "pk", mc.PrimaryKey)
	assert.True(t, mc.EnumDatatypes)
	assert.Equal(t, "rows", mc.DataSubdir)
	assert.Equal(t, "baseline", mc.BaselineDir)
	assert.Equal(t, "text", mc.DefaultDatatype)
	assert.Equal(t, filepath.Join("out", "rows"), mc.DataDir())
	assert.Equal(t, datagen.Config{Rows: 10, Seed: 3}, cfg.GeneratorConfig())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LINKML2VALVE_ROWS", "4")
	t.Setenv("LINKML2VALVE_DEFAULT_DATATYPE", "word")

	path := writeConfig(t, "data:\n  rows: 10\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Data.Rows)
	assert.Equal(t, "word", cfg.Mapping.DefaultDatatype)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative rows", "data:\n  rows: -1\n"},
		{"same enum columns", "mapping:\n  enum_primary_key: meaning\n"},
		{"not yaml", "mapping: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
