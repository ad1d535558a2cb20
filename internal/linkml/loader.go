package linkml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile loads a LinkML schema from path and merges its imports.
// linkml:types is provided built in; relative imports are read from the
// schema's directory. Definitions of the importing schema win over imported ones.
func LoadFile(path string) (*Schema, error) {
	l := &loader{visited: map[string]bool{}}

	return l.load(path)
}

// Parse parses YAML data into a Schema. Only the built-in linkml:types
// import is resolved; every other import is recorded as unresolved.
func Parse(data []byte) (*Schema, error) {
	s, err := parse(data)
	if err != nil {
		return nil, err
	}

	for _, imp := range s.Imports {
		if imp == BuiltinTypesImport {
			merge(s, &Schema{Types: BuiltinTypes()})
			continue
		}

		s.UnresolvedImports = append(s.UnresolvedImports, imp)
	}

	return s, nil
}

func parse(data []byte) (*Schema, error) {
	var s Schema

	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	return &s, nil
}

type loader struct {
	visited map[string]bool
}

func (l *loader) load(path string) (*Schema, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving schema path %s: %w", path, err)
	}

	l.visited[abs] = true

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	s, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(abs)

	for _, imp := range s.Imports {
		if imp == BuiltinTypesImport {
			merge(s, &Schema{Types: BuiltinTypes()})
			continue
		}

		if strings.HasPrefix(imp, "linkml:") {
			s.UnresolvedImports = append(s.UnresolvedImports, imp)
			continue
		}

		importPath, ok := findImport(dir, imp)
		if !ok {
			s.UnresolvedImports = append(s.UnresolvedImports, imp)
			continue
		}

		if l.visited[importPath] {
			continue
		}

		imported, err := l.load(importPath)
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", imp, err)
		}

		merge(s, imported)
	}

	return s, nil
}

// findImport locates an imported schema relative to dir, trying the name
// as given and with .yaml/.yml extensions.
func findImport(dir, name string) (string, bool) {
	candidates := []string{name, name + ".yaml", name + ".yml"}

	for _, c := range candidates {
		p := c
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, c)
		}

		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, true
		}

		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}
	}

	return "", false
}

// merge appends definitions of src that dst does not define yet.
func merge(dst, src *Schema) {
	dst.Classes = appendMissing(dst.Classes, src.Classes, func(c *ClassDefinition) string { return c.Name })
	dst.Slots = appendMissing(dst.Slots, src.Slots, func(s *SlotDefinition) string { return s.Name })
	dst.Enums = appendMissing(dst.Enums, src.Enums, func(e *EnumDefinition) string { return e.Name })
	dst.Types = appendMissing(dst.Types, src.Types, func(t *TypeDefinition) string { return t.Name })
	dst.UnresolvedImports = append(dst.UnresolvedImports, src.UnresolvedImports...)
}

func appendMissing[T any](dst, src []*T, name func(*T) string) []*T {
	seen := make(map[string]struct{}, len(dst))
	for _, d := range dst {
		seen[name(d)] = struct{}{}
	}

	for _, s := range src {
		if _, ok := seen[name(s)]; ok {
			continue
		}

		seen[name(s)] = struct{}{}
		dst = append(dst, s)
	}

	return dst
}
