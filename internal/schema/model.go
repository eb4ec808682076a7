package schema

// Location points back into the analysed source. The analysis never looks
// inside it; it is copied from a ColumnDeclaration into its Finding.
type Location struct {
	File      string
	Line      int
	Column    int
	Offset    int // byte offset of the first character
	EndOffset int // byte offset just past the last character
}

type ValueKind int

const (
	ValueLiteral ValueKind = iota // numbers, true/false/nil
	ValueSymbol
	ValueString
	ValueNested // arrays, hashes, lambdas, calls
)

type Value struct {
	Kind ValueKind
	Text string // symbol name without ':', unquoted string, or raw source
}

// Option is one keyword argument of a table definition, e.g. `id: :integer`.
type Option struct {
	Key   string
	Value Value
}

// TableDefinition is a single create-table statement. An empty Name marks
// a statement whose table name could not be read.
type TableDefinition struct {
	Name     string
	Options  []Option
	Columns  []*ColumnDeclaration
	Location Location
}

type ColumnDeclaration struct {
	TypeTag  string // "integer", "bigint", "string", ...
	Name     string
	Args     []Value // remaining arguments, unused by the analysis
	Location Location
}

// Fix replaces the first From inside Span with To.
type Fix struct {
	From string
	To   string
	Span Location
}

type Finding struct {
	Location        Location
	Message         string
	Table           string
	Column          string
	ReferencedTable string
	Fix             *Fix
}
