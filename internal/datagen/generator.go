package datagen

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"linkml2valve/internal/common"
	"linkml2valve/internal/valve"
)

// Config controls synthetic row generation.
type Config struct {
	// Rows is the number of rows generated per class table. Zero writes headers only.
	Rows int
	// Seed makes generated values reproducible.
	Seed uint64
}

// DefaultConfig returns the default generation configuration.
func DefaultConfig() Config {
	return Config{Rows: 0, Seed: 1}
}

// keyNamespace scopes the generated primary-key UUIDs.
var keyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ontodev/valve/linkml2valve"))

var baseDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generator produces class data tables.
type Generator struct {
	cfg Config
	log *zap.Logger
}

// New creates a Generator.
func New(cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{cfg: cfg, log: logger}
}

// Generate builds one data table per class table, returned in the order of
// classTables. rel provides the table paths, columns and datatypes; enums
// provides the values of enumeration tables for foreign keys.
func (g *Generator) Generate(rel valve.Relations, classTables []string, enums []valve.DataTable) ([]valve.DataTable, error) {
	paths := make(map[string]string, len(rel.Tables))
	for _, t := range rel.Tables {
		paths[t.Table] = t.Path
	}

	order, err := rel.DependencyOrder(classTables)
	if err != nil {
		if !errors.Is(err, valve.ErrCycle) {
			return nil, err
		}

		g.log.Warn("Tables reference each other in a cycle, generating in schema order", zap.Error(err))

		order = classTables
	}

	s := &session{
		cfg:   g.cfg,
		log:   g.log,
		rng:   rand.New(rand.NewPCG(g.cfg.Seed, g.cfg.Seed)),
		kinds: newDatatypeKinds(rel.Datatypes),
		keys:  make(map[string][]string, len(classTables)),
		enums: make(map[string][]string, len(enums)),
	}

	for _, e := range enums {
		values := make([]string, 0, len(e.Rows))

		if pk, ok := common.First(e.Headers); ok {
			for _, row := range e.Rows {
				values = append(values, row[pk])
			}
		}

		s.enums[e.Table] = values
	}

	byTable := make(map[string]valve.DataTable, len(order))

	for _, table := range order {
		path, ok := paths[table]
		if !ok {
			return nil, fmt.Errorf("table %q has no table row", table)
		}

		byTable[table] = s.table(table, path, rel.ColumnsOf(table))

		g.log.Debug("Generated data table",
			zap.String("table", table),
			zap.Int("rows", len(byTable[table].Rows)))
	}

	out := make([]valve.DataTable, len(classTables))
	for i, t := range classTables {
		out[i] = byTable[t]
	}

	return out, nil
}

// Write writes every table to its path and returns the paths.
func (g *Generator) Write(tables []valve.DataTable) ([]string, error) {
	paths := make([]string, 0, len(tables))

	for _, t := range tables {
		if err := valve.WriteDataTable(t); err != nil {
			return paths, fmt.Errorf("writing data table %s: %w", t.Table, err)
		}

		g.log.Debug("Wrote data table", zap.String("path", t.Path), zap.Int("rows", len(t.Rows)))

		paths = append(paths, t.Path)
	}

	return paths, nil
}

// session holds the state of one Generate call.
type session struct {
	cfg   Config
	log   *zap.Logger
	rng   *rand.Rand
	kinds datatypeKinds
	// keys are the generated primary-key values per class table.
	keys  map[string][]string
	enums map[string][]string
}

func (s *session) table(name, path string, columns []valve.ColumnRow) valve.DataTable {
	dt := valve.DataTable{
		Table:   name,
		Path:    path,
		Headers: make([]string, len(columns)),
		Rows:    make([]map[string]string, 0, s.cfg.Rows),
	}

	for i, c := range columns {
		dt.Headers[i] = c.Column
	}

	for i := range s.cfg.Rows {
		row := make(map[string]string, len(columns))

		for _, c := range columns {
			row[c.Column] = s.value(name, c, i)

			if c.Structure.IsPrimary() {
				s.keys[name] = append(s.keys[name], row[c.Column])
			}
		}

		dt.Rows = append(dt.Rows, row)
	}

	return dt
}

func (s *session) value(table string, c valve.ColumnRow, i int) string {
	switch {
	case c.Structure.IsPrimary():
		return s.key(table, c.Datatype, i)
	case c.Structure.IsFrom():
		return s.reference(table, c, i)
	case c.Structure == valve.Unique:
		return s.checked(table, c, s.scalar(c, i)+"-"+strconv.Itoa(i+1))
	default:
		return s.checked(table, c, s.scalar(c, i))
	}
}

// checked returns v if it satisfies every match() pattern of the column's
// datatype. Otherwise a nullable column gets an empty cell and a required
// column keeps v.
func (s *session) checked(table string, c valve.ColumnRow, v string) string {
	for _, re := range s.kinds.patterns(c.Datatype) {
		if re.MatchString(v) {
			continue
		}

		s.log.Debug("Generated value does not match datatype condition",
			zap.String("table", table),
			zap.String("column", c.Column),
			zap.String("value", v),
			zap.String("pattern", re.String()))

		if c.IsRequired() {
			return v
		}

		return ""
	}

	return v
}

// key returns the primary-key value of row i of table.
func (s *session) key(table, datatype string, i int) string {
	if s.kinds.kind(datatype) == kindInteger {
		return strconv.Itoa(i + 1)
	}

	return uuid.NewSHA1(keyNamespace, []byte(table+"/"+strconv.Itoa(i))).String()
}

func (s *session) reference(table string, c valve.ColumnRow, i int) string {
	target, _, err := c.Structure.Target()
	if err != nil {
		return ""
	}

	if values, ok := s.enums[target]; ok {
		return s.pick(values)
	}

	if target == table {
		// Self references point at rows generated so far; the first row has none.
		if i == 0 || len(s.keys[table]) == 0 {
			return ""
		}

		return s.keys[table][s.rng.IntN(len(s.keys[table]))]
	}

	if keys, ok := s.keys[target]; ok {
		return s.pick(keys)
	}

	// Target not generated yet (reference cycle). Keys are deterministic, so
	// required references can still point at a row the target will have.
	if !c.IsRequired() || s.cfg.Rows == 0 {
		return ""
	}

	return s.key(target, c.Datatype, s.rng.IntN(s.cfg.Rows))
}

func (s *session) pick(values []string) string {
	if common.IsEmpty(values) {
		return ""
	}

	return values[s.rng.IntN(len(values))]
}

func (s *session) scalar(c valve.ColumnRow, i int) string {
	switch s.kinds.kind(c.Datatype) {
	case kindInteger:
		return strconv.Itoa(s.rng.IntN(100))
	case kindDecimal:
		return strconv.FormatFloat(s.rng.Float64()*100, 'f', 2, 64)
	case kindBoolean:
		return strconv.FormatBool(s.rng.IntN(2) == 1)
	case kindDate:
		return baseDate.AddDate(0, 0, s.rng.IntN(9000)).Format(time.DateOnly)
	case kindDateTime:
		return baseDate.Add(time.Duration(s.rng.IntN(9000*24)) * time.Hour).Format(time.RFC3339)
	case kindCURIE:
		return "ex:" + strconv.Itoa(i+1)
	case kindURI:
		return "https://example.org/" + strings.ToLower(c.Table) + "/" + strconv.Itoa(i+1)
	case kindText:
	}

	return text(c.Column, i)
}

// text builds a readable sample value from the column name, e.g. "alias 3" for "aliases".
func text(column string, i int) string {
	if strings.Contains(strings.ToLower(column), "email") {
		return "user" + strconv.Itoa(i+1) + "@example.org"
	}

	words := strings.Fields(strings.ReplaceAll(column, "_", " "))
	if len(words) == 0 {
		return strconv.Itoa(i + 1)
	}

	last := len(words) - 1
	words[last] = inflection.Singular(words[last])

	return strings.Join(words, " ") + " " + strconv.Itoa(i+1)
}
