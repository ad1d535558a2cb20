// Package linkml provides a read-only, in-memory model of a LinkML schema.
//
// Schemas are parsed from YAML with gopkg.in/yaml.v3. Declaration order of
// classes, slots, enums, types, attributes, slot usages and permissible
// values is preserved so that everything derived from a schema is
// deterministic.
//
// Key types:
//   - Schema: the parsed document (plus merged imports)
//   - ClassDefinition, SlotDefinition, EnumDefinition, TypeDefinition
//   - SchemaView: name indexes, induced slots and identifier lookup
package linkml
