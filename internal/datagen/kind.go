package datagen

import (
	"regexp"

	"linkml2valve/internal/valve"
)

// valueKind is the kind of synthetic value generated for a datatype.
type valueKind int

const (
	kindText valueKind = iota
	kindInteger
	kindDecimal
	kindBoolean
	kindDate
	kindDateTime
	kindCURIE
	kindURI
)

// kindByDatatype maps well-known datatype names to value kinds.
var kindByDatatype = map[string]valueKind{
	"integer":          kindInteger,
	"float":            kindDecimal,
	"double":           kindDecimal,
	"decimal":          kindDecimal,
	"boolean":          kindBoolean,
	"date":             kindDate,
	"datetime":         kindDateTime,
	"date_or_datetime": kindDate,
	"CURIE":            kindCURIE,
	"curie":            kindCURIE,
	"uriorcurie":       kindCURIE,
	"IRI":              kindURI,
	"uri":              kindURI,
}

const maxParentDepth = 16

// datatypeKinds resolves value kinds and match() patterns by walking
// datatype parents.
type datatypeKinds struct {
	parents    map[string]string
	conditions map[string]valve.Condition
	// compiled caches patterns per datatype; nil when there is none or it
	// does not compile.
	compiled map[string]*regexp.Regexp
}

func newDatatypeKinds(datatypes []valve.DatatypeRow) datatypeKinds {
	k := datatypeKinds{
		parents:    make(map[string]string, len(datatypes)),
		conditions: make(map[string]valve.Condition, len(datatypes)),
		compiled:   make(map[string]*regexp.Regexp),
	}

	for _, d := range datatypes {
		if _, ok := k.parents[d.Datatype]; !ok {
			k.parents[d.Datatype] = d.Parent
			k.conditions[d.Datatype] = d.Condition
		}
	}

	return k
}

func (k datatypeKinds) kind(datatype string) valueKind {
	for range maxParentDepth {
		if kind, ok := kindByDatatype[datatype]; ok {
			return kind
		}

		parent, ok := k.parents[datatype]
		if !ok || parent == "" || parent == datatype {
			return kindText
		}

		datatype = parent
	}

	return kindText
}

// patterns returns the match() patterns of datatype and its ancestors, each
// anchored to the whole value. Patterns Go cannot compile are left out.
func (k datatypeKinds) patterns(datatype string) []*regexp.Regexp {
	var out []*regexp.Regexp

	for range maxParentDepth {
		if re := k.pattern(datatype); re != nil {
			out = append(out, re)
		}

		parent, ok := k.parents[datatype]
		if !ok || parent == "" || parent == datatype {
			break
		}

		datatype = parent
	}

	return out
}

func (k datatypeKinds) pattern(datatype string) *regexp.Regexp {
	if re, ok := k.compiled[datatype]; ok {
		return re
	}

	var re *regexp.Regexp

	if p, ok := k.conditions[datatype].Pattern(); ok {
		re, _ = regexp.Compile(`^(?:` + p + `)$`)
	}

	k.compiled[datatype] = re

	return re
}
