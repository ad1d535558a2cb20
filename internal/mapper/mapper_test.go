package mapper

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"linkml2valve/internal/diagnostic"
	"linkml2valve/internal/linkml"
	"linkml2valve/internal/valve"
)

var personinfoPath = filepath.Join("..", "linkml", "testdata", "personinfo.yaml")

func mapPersoninfo(t *testing.T) (*Result, *observer.ObservedLogs) {
	t.Helper()

	schema, err := linkml.LoadFile(personinfoPath)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)

	res, err := New(linkml.NewSchemaView(schema), testConfig(), zap.New(core)).Map(context.Background())
	require.NoError(t, err)

	return res, logs
}

func TestPersoninfoCoverage(t *testing.T) {
	res, _ := mapPersoninfo(t)

	schema, err := linkml.LoadFile(personinfoPath)
	require.NoError(t, err)

	view := linkml.NewSchemaView(schema)

	tables := map[string]bool{}
	for _, tr := range res.Relations.Tables {
		tables[tr.Table] = true
	}

	for _, c := range view.AllClasses() {
		assert.True(t, tables[c.Name], "class %s has no table", c.Name)
	}

	for _, e := range view.AllEnums() {
		assert.True(t, tables[e.Name], "enum %s has no table", e.Name)
	}

	columns := map[string]bool{}
	for _, c := range res.Relations.Columns {
		columns[c.Column] = true
	}

	for _, s := range view.AllSlots() {
		if _, used := view.DeclaringClass(s.Name); !used || s.IsMultivalued() {
			continue
		}

		assert.True(t, columns[s.Name], "slot %s has no column", s.Name)
	}

	for _, typ := range view.AllTypes() {
		_, ok := datatype(res.Relations, typ.Name)
		assert.True(t, ok, "type %s has no datatype", typ.Name)
	}
}

func TestPersoninfoKeys(t *testing.T) {
	res, _ := mapPersoninfo(t)

	problems := valve.CheckReferences(res.Relations)
	assert.Empty(t, problems, spew.Sdump(problems))

	for _, tr := range res.Mapped.Tables {
		primaries := 0
		for _, c := range res.Mapped.ColumnsOf(tr.Table) {
			if c.Structure.IsPrimary() {
				primaries++
			}
		}

		assert.Equal(t, 1, primaries, "table %s: %s", tr.Table, spew.Sdump(res.Mapped.ColumnsOf(tr.Table)))
	}

	seen := map[[2]string]bool{}
	for _, c := range res.Relations.Columns {
		key := [2]string{c.Table, c.Column}
		assert.False(t, seen[key], "duplicate column %s.%s", c.Table, c.Column)
		seen[key] = true
	}
}

func TestPersoninfoColumns(t *testing.T) {
	res, _ := mapPersoninfo(t)

	assert.Equal(t, []string{
		"NamedThing", "Person", "HasAliases", "Organization", "Address", "Event",
		"EmploymentEvent", "MedicalEvent", "Container", "Concept", "DiagnosisConcept",
	}, res.ClassTables)

	assert.Equal(t, []string{
		"id", "name", "description", "primary_email", "birth_date", "age_in_years", "gender", "current_address",
		"container",
	}, columnNames(res.Mapped, "Person"))
	assert.Equal(t, []string{"id", "street", "city", "postal_code"}, columnNames(res.Mapped, "Address"))
	assert.Equal(t, []string{"id"}, columnNames(res.Mapped, "HasAliases"))
	assert.Equal(t,
		[]string{"id", "started_at_time", "ended_at_time", "is_current", "diagnosis", "person"},
		columnNames(res.Mapped, "MedicalEvent"))
	assert.Equal(t, []string{"id", "name", "description", "container"}, columnNames(res.Mapped, "Organization"))

	email := column(t, res.Mapped, "Person", "primary_email")
	assert.Equal(t, "person_primary_email", email.Datatype)

	dt, ok := datatype(res.Mapped, "person_primary_email")
	require.True(t, ok)
	assert.Equal(t, "text", dt.Parent)
	assert.Equal(t, valve.Condition(`match(/^\S+@[\S+\.]+\S+/)`), dt.Condition)
	assert.Equal(t, "a person_primary_email", dt.Description)

	assert.Equal(t, "phone_number", column(t, res.Mapped, "Address", "postal_code").Datatype)
	assert.Equal(t, valve.From("Address", "id"), column(t, res.Mapped, "Person", "current_address").Structure)
	assert.Equal(t, valve.From("GenderType", "permissible_value"), column(t, res.Mapped, "Person", "gender").Structure)

	employer := column(t, res.Mapped, "EmploymentEvent", "employed_at")
	assert.Equal(t, "string", employer.Datatype)
	assert.Equal(t, valve.From("Organization", "id"), employer.Structure)

	assert.Equal(t, valve.From("DiagnosisConcept", "id"), column(t, res.Mapped, "MedicalEvent", "diagnosis").Structure)
	assert.Equal(t, valve.From("Person", "id"), column(t, res.Mapped, "EmploymentEvent", "person").Structure)

	container := column(t, res.Mapped, "Person", "container")
	assert.Equal(t, valve.From("Container", "id"), container.Structure)
	assert.Equal(t, "string", container.Datatype)

	phone, ok := datatype(res.Mapped, "phone_number")
	require.True(t, ok)
	assert.Equal(t, "string", phone.Parent)
	assert.Equal(t, "A postal or phone code made of digits and separators", phone.Description)
}

func TestPersoninfoBaselineMerge(t *testing.T) {
	res, logs := mapPersoninfo(t)

	assert.Equal(t, "table", res.Relations.Tables[0].Table)
	assert.Equal(t, filepath.Join("out", "table.tsv"), res.Relations.Tables[0].Path)
	assert.Equal(t, len(res.Mapped.Tables)+3, len(res.Relations.Tables))

	integers := 0
	for _, d := range res.Relations.Datatypes {
		if d.Datatype == "integer" {
			integers++
			assert.NotEqual(t, "text", d.Parent, "baseline integer wins")
		}
	}

	assert.Equal(t, 1, integers)

	collisions := res.Diagnostics.WithCode(diagnostic.CodeDatatypeCollision)
	require.Len(t, collisions, 1)
	assert.Equal(t, "integer", collisions[0].Element)

	warned := logs.FilterMessage("VALVE datatype already exists, skipping").FilterField(zap.String("datatype", "integer"))
	assert.Equal(t, 1, warned.Len())
	assert.Empty(t, res.Diagnostics.WithCode(diagnostic.CodeDeadSlot))
	assert.Empty(t, res.Diagnostics.WithCode(diagnostic.CodeDanglingReference))
}

func TestUnknownSlot(t *testing.T) {
	m, _ := newTestMapper(t, `
id: https://example.org/people
name: people
classes:
  Person:
    slots:
      - id
      - nme
slots:
  id:
    identifier: true
  name:
`, testConfig())

	_, err := m.Map(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSlot))
	assert.Contains(t, err.Error(), `class "Person" uses slot "nme"`)
	assert.Contains(t, err.Error(), "did you mean name?")
}

func TestUnknownParentClass(t *testing.T) {
	m, _ := newTestMapper(t, `
id: https://example.org/people
name: people
classes:
  Person:
    is_a: Being
`, testConfig())

	_, err := m.Map(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, linkml.ErrUnknownClass))
}

func TestDeadSlotWarning(t *testing.T) {
	res, logs := mapSchema(t, `
id: https://example.org/people
name: people
classes:
  Person:
    slots:
      - name
slots:
  name:
  orphan:
`, testConfig())

	dead := res.Diagnostics.WithCode(diagnostic.CodeDeadSlot)
	require.Len(t, dead, 1)
	assert.Equal(t, "orphan", dead[0].Slot)
	assert.Equal(t, 1, logs.FilterMessage("Slots not associated to a class won't be mapped").Len())
	assert.Equal(t, []string{"id", "name"}, columnNames(res.Mapped, "Person"))
}

func TestDuplicateReverseColumn(t *testing.T) {
	res, logs := mapSchema(t, `
id: https://example.org/people
name: people
classes:
  Person:
    slots:
      - id
      - jobs
      - past_jobs
  Job:
    slots:
      - title
slots:
  id:
    identifier: true
  jobs:
    range: Job
    multivalued: true
  past_jobs:
    range: Job
    multivalued: true
  title:
`, testConfig())

	assert.Equal(t, []string{"id", "title", "person"}, columnNames(res.Mapped, "Job"))

	dups := res.Diagnostics.WithCode(diagnostic.CodeDuplicateReverseColumn)
	require.Len(t, dups, 1)
	assert.Equal(t, "past_jobs", dups[0].Slot)
	assert.Equal(t, 1, logs.FilterMessage("Reverse column already exists, skipping").Len())
}

func TestMultivaluedScalarIsSkipped(t *testing.T) {
	res, _ := mapSchema(t, `
id: https://example.org/people
name: people
imports:
  - linkml:types
classes:
  Person:
    slots:
      - name
      - nicknames
slots:
  name:
  nicknames:
    range: string
    multivalued: true
`, testConfig())

	assert.Equal(t, []string{"id", "name"}, columnNames(res.Mapped, "Person"))
	require.Len(t, res.Diagnostics.WithCode(diagnostic.CodeMultivaluedScalar), 1)
}

func TestMissingPrimaryKey(t *testing.T) {
	m, _ := newTestMapper(t, `
id: https://example.org/people
name: people
classes:
  Person:
    slots:
      - events
  Event:
    slots:
      - title
slots:
  events:
    range: Event
    multivalued: true
  title:
`, testConfig())

	slot, ok := m.view.Slot("events")
	require.True(t, ok)

	_, _, err := m.mapMultivalued(slot, map[string]valve.ColumnRow{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPrimaryKey))
	assert.Contains(t, err.Error(), `"events"`)
}

func TestInvariantViolation(t *testing.T) {
	m, _ := newTestMapper(t, `
id: https://example.org/people
name: people
imports:
  - linkml:types
classes:
  Person:
    slots:
      - a
      - b
      - c
slots:
  a:
    range: string
    multivalued: true
  b:
    range: string
    multivalued: true
  c:
    range: string
    multivalued: true
`, testConfig())

	_, err := m.Map(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariant))
}

func TestSecondKeyIsUnique(t *testing.T) {
	res, logs := mapSchema(t, `
id: https://example.org/things
name: things
classes:
  Thing:
    slots:
      - id
      - code
slots:
  id:
    identifier: true
  code:
    key: true
`, testConfig())

	pk, ok := res.Mapped.PrimaryKey("Thing")
	require.True(t, ok)
	assert.Equal(t, "id", pk.Column)
	assert.Equal(t, valve.Unique, column(t, res.Mapped, "Thing", "code").Structure)
	assert.Equal(t, 1, logs.FilterMessage("Class has more than one identifier or key slot, using it as unique column").Len())
}

func TestInheritedKeyYieldsToIdentifier(t *testing.T) {
	res, logs := mapSchema(t, `
id: https://example.org/things
name: things
classes:
  Base:
    slots:
      - code
  Thing:
    is_a: Base
    slots:
      - uid
  User:
    slots:
      - owner
slots:
  code:
    key: true
  uid:
    identifier: true
  owner:
    range: Thing
`, testConfig())

	assert.Equal(t, []string{"code", "uid"}, columnNames(res.Mapped, "Thing"))

	pk, ok := res.Mapped.PrimaryKey("Thing")
	require.True(t, ok)
	assert.Equal(t, "uid", pk.Column)
	assert.Equal(t, valve.Unique, column(t, res.Mapped, "Thing", "code").Structure)
	assert.Equal(t, valve.From("Thing", "uid"), column(t, res.Mapped, "User", "owner").Structure)
	assert.Empty(t, valve.CheckReferences(res.Relations))
	assert.Equal(t, 1, logs.FilterMessage("Class has more than one identifier or key slot, using it as unique column").Len())
}

func TestForeignKeyNamedLikePrimaryKey(t *testing.T) {
	m, _ := newTestMapper(t, `
id: https://example.org/things
name: things
classes:
  Other:
    attributes:
      label:
  P:
    slots:
      - id
slots:
  id:
    range: Other
`, testConfig())

	_, err := m.Map(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrimaryKeyConflict)
	assert.Contains(t, err.Error(), `class "P" slot "id"`)
}

func TestExistingIDColumnBecomesPrimary(t *testing.T) {
	res, _ := mapSchema(t, `
id: https://example.org/things
name: things
classes:
  Thing:
    slots:
      - label
      - id
slots:
  id:
  label:
`, testConfig())

	assert.Equal(t, []string{"label", "id"}, columnNames(res.Mapped, "Thing"))

	pk, ok := res.Mapped.PrimaryKey("Thing")
	require.True(t, ok)
	assert.Equal(t, "id", pk.Column)
	assert.True(t, pk.IsRequired())
}

func TestSlotUsageKeepsGlobalPattern(t *testing.T) {
	res, _ := mapSchema(t, `
id: https://example.org/people
name: people
classes:
  Person:
    slots:
      - id
      - code
    slot_usage:
      code:
        required: true
slots:
  id:
    identifier: true
  code:
    range: string
    pattern: "[A-Z]{3}"
`, testConfig())

	code := column(t, res.Mapped, "Person", "code")
	assert.Equal(t, "person_code", code.Datatype)
	assert.True(t, code.IsRequired())

	dt, ok := datatype(res.Mapped, "person_code")
	require.True(t, ok)
	assert.Equal(t, "string", dt.Parent)
	assert.Equal(t, valve.Match("[A-Z]{3}"), dt.Condition)
}

func TestSlotUsageWithClassRange(t *testing.T) {
	res, _ := mapSchema(t, `
id: https://example.org/people
name: people
classes:
  Person:
    slots:
      - id
      - friend
    slot_usage:
      friend:
        range: Person
        required: true
slots:
  id:
    identifier: true
  friend:
    range: string
`, testConfig())

	friend := column(t, res.Mapped, "Person", "friend")
	assert.Equal(t, valve.From("Person", "id"), friend.Structure)
	assert.Equal(t, "text", friend.Datatype)
	assert.True(t, friend.IsRequired())
	assert.Empty(t, res.Mapped.Datatypes)
}

func TestMapCanceled(t *testing.T) {
	schema, err := linkml.LoadFile(personinfoPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New(linkml.NewSchemaView(schema), testConfig(), nil).Map(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewDefaultRange(t *testing.T) {
	withRange := New(linkml.NewSchemaView(&linkml.Schema{DefaultRange: "string"}), DefaultConfig(), nil)
	assert.Equal(t, "string", withRange.Config().DefaultRange)

	withoutRange := New(linkml.NewSchemaView(&linkml.Schema{}), DefaultConfig(), nil)
	assert.Equal(t, "text", withoutRange.Config().DefaultRange)

	cfg := DefaultConfig()
	cfg.DefaultRange = "word"
	explicit := New(linkml.NewSchemaView(&linkml.Schema{DefaultRange: "string"}), cfg, nil)
	assert.Equal(t, "word", explicit.Config().DefaultRange)
}
