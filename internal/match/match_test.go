package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"id", "id", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"name", "nmae", 2},
		{"Person", "person", 1},
		{"ünit", "unit", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"primary_email", []string{"primary", "email"}},
		{"MedicalEvent", []string{"medical", "event"}},
		{"hasMedicalHistory", []string{"has", "medical", "history"}},
		{"CURIEPrefix", []string{"curie", "prefix"}},
		{"birth-date", []string{"birth", "date"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestNameSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, NameSimilarity("has_medical_history", "hasMedicalHistory"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.Less(t, NameSimilarity("Person", "Organization"), DefaultMinSimilarity)
}

func TestSuggest(t *testing.T) {
	known := []string{"name", "names", "description", "id", "primary_email"}

	assert.Equal(t, []string{"name", "names"}, Suggest("nme", known, 0))
	assert.Equal(t, []string{"primary_email"}, Suggest("primaryEmail", known, 1))
	assert.Empty(t, Suggest("zzzzzz", known, 3))
	assert.NotContains(t, Suggest("name", known, 3), "name")
}
