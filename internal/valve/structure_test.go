package valve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRoundTrip(t *testing.T) {
	s := From("Address", "id")
	assert.Equal(t, Structure("from(Address.id)"), s)
	assert.True(t, s.IsFrom())
	assert.False(t, s.IsPrimary())

	table, column, err := s.Target()
	require.NoError(t, err)
	assert.Equal(t, "Address", table)
	assert.Equal(t, "id", column)
}

func TestTargetErrors(t *testing.T) {
	tests := []Structure{"", Primary, "from(Address)", "from(.id)", "tree(datatype)"}

	for _, s := range tests {
		t.Run(string(s), func(t *testing.T) {
			_, _, err := s.Target()
			assert.True(t, errors.Is(err, ErrNotReference))
		})
	}
}

func TestPrimary(t *testing.T) {
	assert.Equal(t, "primary", string(Primary))
	assert.True(t, Primary.IsPrimary())
	assert.False(t, Primary.IsFrom())
}

func TestConditions(t *testing.T) {
	assert.Equal(t, Condition(`match(/^\S+@\S+$/)`), Match(`^\S+@\S+$`))
	assert.Equal(t, Condition(""), Match(""))
	assert.Equal(t, Condition("in('male','female')"), In("male", "female"))
	assert.Equal(t, Condition(`in('it\'s')`), In("it's"))
	assert.Equal(t, Condition("in()"), In())
}

func TestConditionPattern(t *testing.T) {
	tests := []struct {
		cond    Condition
		pattern string
		ok      bool
	}{
		{Match(`\S+@\S+`), `\S+@\S+`, true},
		{Match(`a/b`), `a/b`, true},
		{Condition("match(//)"), "", true},
		{Condition(`exclude(/\n/)`), "", false},
		{In("a"), "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.cond), func(t *testing.T) {
			pattern, ok := tt.cond.Pattern()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.pattern, pattern)
		})
	}
}
