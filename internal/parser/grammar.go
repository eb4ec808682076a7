package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// rubyLexer covers the Ruby subset emitted by schema dumps.
// Order matters: more specific patterns come first.
var rubyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`},
	// Hash labels (`id: :integer`). The trailing blank keeps `A::B` out.
	{Name: "Label", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*[?!]?:[ \t]`},
	{Name: "Scope", Pattern: `::`},
	{Name: "Symbol", Pattern: `:(?:[a-zA-Z_][a-zA-Z0-9_]*[?!=]?|"(?:\\.|[^"\\])*")`},
	{Name: "Number", Pattern: `[-+]?\d[\d_]*(?:\.\d[\d_]*)?(?:[eE][-+]?\d+)?`},
	{Name: "Keyword", Pattern: `(?:do|end)\b`},
	{Name: "Const", Pattern: `[A-Z][a-zA-Z0-9_]*`},
	{Name: "Ident", Pattern: `[a-z_][a-zA-Z0-9_]*[?!]?`},
	{Name: "Arrow", Pattern: `=>|->`},
	{Name: "Punct", Pattern: `[.,()\[\]{}|=*&<>+-]`},
	{Name: "Newline", Pattern: `[\n;]`},
	{Name: "Whitespace", Pattern: `[ \t\r]+|\\\r?\n`},
})

// schemaParser is the Participle parser for schema scripts.
var schemaParser = participle.MustBuild[file](
	participle.Lexer(rubyLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(3),
)

var elidedTokens = func() map[lexer.TokenType]bool {
	symbols := rubyLexer.Symbols()
	return map[lexer.TokenType]bool{
		symbols["Comment"]:    true,
		symbols["Whitespace"]: true,
		symbols["Newline"]:    true,
	}
}()

//nolint:govet // participle grammar tags are not standard struct tags
type file struct {
	Statements []*call `( @@ | Newline )*`
}

// call is a method call statement such as
// `create_table "users", force: :cascade do |t| ... end`.
//
//nolint:govet // participle grammar tags are not standard struct tags
type call struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Tokens []lexer.Token

	Path  []*segment `@@ ( ( "." | "::" ) @@ )*`
	Paren *parenArgs `( @@`
	Bare  *bareArgs  `| @@ )?`
	Block *block     `@@?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type segment struct {
	Const string `  @Const`
	Index *value `  ( "[" @@ "]" )?`
	Ident string `| @Ident`
}

//nolint:govet // participle grammar tags are not standard struct tags
type parenArgs struct {
	Args []*arg `"(" Newline* ( @@ ( "," Newline* @@ )* Newline* )? ")"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type bareArgs struct {
	Args []*arg `@@ ( "," Newline* @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type arg struct {
	Pair  *pair  `  @@`
	Value *value `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type pair struct {
	Label     string `(   @Label`
	SymbolKey string `  | @Symbol "=>"`
	StringKey string `  | @String "=>" ) Newline*`
	Value     *value `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type value struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Tokens []lexer.Token

	String *string `  @String`
	Symbol *string `| @Symbol`
	Number *string `| @Number`
	Array  *array  `| @@`
	Hash   *hash   `| @@`
	Lambda *lambda `| @@`
	Ref    *ref    `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type array struct {
	Items []*value `"[" Newline* ( @@ ( "," Newline* @@ )* Newline* )? "]"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type hash struct {
	Pairs []*pair `"{" Newline* ( @@ ( "," Newline* @@ )* Newline* )? "}"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type lambda struct {
	Params []string `"->" ( "(" ( @Ident ( "," @Ident )* )? ")" )?`
	Body   *value   `"{" Newline* @@? Newline* "}"`
}

// ref is an identifier, constant path or parenthesised call used as a value:
// `nil`, `Float::INFINITY`, `now()`.
//
//nolint:govet // participle grammar tags are not standard struct tags
type ref struct {
	Path []*segment `@@ ( ( "." | "::" ) @@ )*`
	Args *parenArgs `@@?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type block struct {
	Params []string `"do" ( "|" @Ident ( "," @Ident )* "|" )?`
	Body   []*call  `( @@ | Newline )* "end"`
}

func (s *segment) name() string {
	if s.Ident != "" {
		return s.Ident
	}
	return s.Const
}

func (c *call) method() string {
	return c.Path[len(c.Path)-1].name()
}

func (c *call) args() []*arg {
	switch {
	case c.Paren != nil:
		return c.Paren.Args
	case c.Bare != nil:
		return c.Bare.Args
	}
	return nil
}
