package linkml

// BuiltinTypesImport is the import that brings the LinkML built-in types into a schema.
const BuiltinTypesImport = "linkml:types"

// builtinTypes mirrors the types declared by linkml:types.
var builtinTypes = []TypeDefinition{
	{Name: "string", URI: "xsd:string", Base: "str"},
	{Name: "integer", URI: "xsd:integer", Base: "int"},
	{Name: "boolean", URI: "xsd:boolean", Base: "Bool"},
	{Name: "float", URI: "xsd:float", Base: "float"},
	{Name: "double", URI: "xsd:double", Base: "float"},
	{Name: "decimal", URI: "xsd:decimal", Base: "Decimal"},
	{Name: "time", URI: "xsd:time", Base: "XSDTime"},
	{Name: "date", URI: "xsd:date", Base: "XSDDate"},
	{Name: "datetime", URI: "xsd:dateTime", Base: "XSDDateTime"},
	{Name: "date_or_datetime", URI: "linkml:DateOrDatetime", Base: "str"},
	{Name: "uriorcurie", URI: "xsd:anyURI", Base: "URIorCURIE"},
	{Name: "curie", URI: "xsd:string", Base: "Curie"},
	{Name: "uri", URI: "xsd:anyURI", Base: "URI"},
	{Name: "ncname", URI: "xsd:string", Base: "NCName"},
	{Name: "objectidentifier", URI: "shex:iri", Base: "ElementIdentifier"},
	{Name: "nodeidentifier", URI: "shex:nonLiteral", Base: "NodeIdentifier"},
	{Name: "jsonpointer", URI: "xsd:string", Base: "str"},
	{Name: "jsonpath", URI: "xsd:string", Base: "str"},
	{Name: "sparqlpath", URI: "xsd:string", Base: "str"},
}

// BuiltinTypes returns fresh copies of the LinkML built-in type definitions.
func BuiltinTypes() []*TypeDefinition {
	out := make([]*TypeDefinition, len(builtinTypes))
	for i := range builtinTypes {
		t := builtinTypes[i]
		out[i] = &t
	}

	return out
}
