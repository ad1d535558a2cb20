package mapper

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"linkml2valve/internal/diagnostic"
	"linkml2valve/internal/linkml"
	"linkml2valve/internal/match"
	"linkml2valve/internal/valve"
)

// Mapper maps one schema. A Mapper is not safe for concurrent use.
type Mapper struct {
	view  *linkml.SchemaView
	cfg   Config
	log   *zap.Logger
	diags diagnostic.Diagnostics
}

// Result is the output of a mapping run.
type Result struct {
	// Relations are the baseline rows followed by the mapped rows.
	Relations valve.Relations
	// Mapped holds the mapped rows only.
	Mapped valve.Relations
	// ClassTables names the tables mapped from classes, in schema order.
	ClassTables []string
	// EnumTables holds one data table per enumeration.
	EnumTables []valve.DataTable
	// Diagnostics collects the recoverable findings of the run.
	Diagnostics diagnostic.Diagnostics
}

// New creates a Mapper over view. An empty cfg.DefaultRange is filled from
// the schema's default_range, falling back to cfg.DefaultDatatype.
func New(view *linkml.SchemaView, cfg Config, logger *zap.Logger) *Mapper {
	if cfg.DefaultRange == "" {
		cfg.DefaultRange = view.DefaultRange()
	}

	if cfg.DefaultRange == "" {
		cfg.DefaultRange = cfg.DefaultDatatype
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Mapper{view: view, cfg: cfg, log: logger}
}

// Config returns the effective configuration.
func (m *Mapper) Config() Config { return m.cfg }

// Map runs every phase and merges the baseline rows. Fatal errors abort the
// run; recoverable findings are logged and returned in Result.Diagnostics.
func (m *Mapper) Map(ctx context.Context) (*Result, error) {
	m.diags = diagnostic.Diagnostics{}

	m.log.Debug("Parsed schema",
		zap.String("schema", m.view.Schema().Name),
		zap.Int("classes", len(m.view.AllClasses())),
		zap.Int("slots", len(m.view.AllSlots())),
		zap.Int("enums", len(m.view.AllEnums())),
		zap.Int("types", len(m.view.AllTypes())))

	if err := m.validate(); err != nil {
		return nil, err
	}

	types := m.typeDatatypes()

	classes, err := m.classPhase(ctx)
	if err != nil {
		return nil, err
	}

	multivalued, err := m.multivaluedPhase(ctx, classes)
	if err != nil {
		return nil, err
	}

	enums, err := m.enumPhase(ctx)
	if err != nil {
		return nil, err
	}

	mapped := valve.Relations{
		Tables:    concat(classes.tables, enums.tables),
		Columns:   concat(classes.columns, multivalued.columns, enums.columns),
		Datatypes: concat(types, classes.datatypes, enums.datatypes),
	}

	if err := m.checkInvariants(mapped); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged, err := m.mergeBaseline(mapped)
	if err != nil {
		return nil, err
	}

	m.checkReferences(merged)

	res := &Result{
		Relations:   merged,
		Mapped:      mapped,
		ClassTables: make([]string, len(classes.tables)),
		EnumTables:  enums.data,
		Diagnostics: m.diags,
	}

	for i, t := range classes.tables {
		res.ClassTables[i] = t.Table
	}

	return res, nil
}

// validate fails on slot references the schema cannot resolve and warns
// about slots that no class uses.
func (m *Mapper) validate() error {
	known := m.view.SlotNames()

	for _, c := range m.view.AllClasses() {
		for _, name := range c.Slots {
			if _, ok := m.view.Slot(name); ok {
				continue
			}

			suggestions := match.Suggest(name, known, match.DefaultMaxSuggestions)
			m.diags.AddError(diagnostic.CodeUnknownSlot, "slot is not defined", c.Name, name, suggestions...)

			err := fmt.Errorf("class %q uses slot %q: %w", c.Name, name, ErrUnknownSlot)
			if len(suggestions) > 0 {
				err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
			}

			return err
		}
	}

	if dead := m.view.ClasslessSlots(); len(dead) > 0 {
		m.log.Warn("Slots not associated to a class won't be mapped",
			zap.Strings("slots", dead))

		for _, name := range dead {
			m.diags.AddWarning(diagnostic.CodeDeadSlot, "slot is not used by any class", "", name)
		}
	}

	m.warnUnresolvedRanges()

	return nil
}

func (m *Mapper) checkInvariants(mapped valve.Relations) error {
	classCount := len(m.view.AllClasses())
	if len(mapped.Tables) < classCount {
		return fmt.Errorf("%d classes mapped to %d tables, expected at least as many tables as classes: %w",
			classCount, len(mapped.Tables), ErrInvariant)
	}

	slotCount := len(m.view.AllSlots())
	if len(mapped.Columns) < slotCount {
		return fmt.Errorf("%d slots mapped to %d columns, expected at least as many columns as slots: %w",
			slotCount, len(mapped.Columns), ErrInvariant)
	}

	return nil
}

// mergeBaseline puts the baseline rows ahead of mapped. Baseline datatypes win
// over mapped datatypes of the same name.
func (m *Mapper) mergeBaseline(mapped valve.Relations) (valve.Relations, error) {
	baseline, err := valve.LoadBaseline(m.cfg.BaselineDir, m.cfg.OutputDir)
	if err != nil {
		return valve.Relations{}, fmt.Errorf("loading baseline: %w", err)
	}

	merged, dropped := valve.MergeBaseline(baseline, mapped)

	for _, name := range dropped {
		m.log.Warn("VALVE datatype already exists, skipping", zap.String("datatype", name))
		m.diags.AddWarning(diagnostic.CodeDatatypeCollision,
			fmt.Sprintf("VALVE datatype %s already exists, skipping", name), name, "")
	}

	return merged, nil
}

func (m *Mapper) checkReferences(r valve.Relations) {
	for _, p := range valve.CheckReferences(r) {
		m.log.Warn("Broken column reference",
			zap.String("table", p.Table),
			zap.String("column", p.Column),
			zap.String("structure", string(p.Structure)),
			zap.String("reason", p.Reason))

		m.diags.AddWarning(diagnostic.CodeDanglingReference, p.String(), p.Table, p.Column)
	}
}

func concat[T any](parts ...[]T) []T {
	n := 0
	for _, p := range parts {
		n += len(p)
	}

	out := make([]T, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}
