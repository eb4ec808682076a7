// Package parser reads Rails schema scripts (db/schema.rb) into the table
// definitions analysed by package schema.
//
// Only the Ruby that schema dumps produce is understood: method calls with
// optional receivers, bare or parenthesised argument lists, hash pairs,
// arrays, hashes, lambdas and do/end blocks. Anything else is a parse error.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"fk-bigint/internal/schema"

	"github.com/alecthomas/participle/v2/lexer"
)

const createTable = "create_table"

// Parse parses a schema script and returns its create_table statements in
// document order, including ones nested in blocks such as
// `ActiveRecord::Schema.define do ... end`.
func Parse(filename string, src []byte) ([]*schema.TableDefinition, error) {
	f, err := schemaParser.ParseBytes(filename, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	b := &builder{file: filename, src: src}
	for _, c := range f.Statements {
		b.visit(c)
	}
	return b.defs, nil
}

// ParseString parses a schema script from a string.
func ParseString(filename, src string) ([]*schema.TableDefinition, error) {
	return Parse(filename, []byte(src))
}

type builder struct {
	file string
	src  []byte
	defs []*schema.TableDefinition
}

func (b *builder) visit(c *call) {
	if len(c.Path) == 1 && c.method() == createTable {
		b.defs = append(b.defs, b.table(c))
		return
	}
	if c.Block != nil {
		for _, inner := range c.Block.Body {
			b.visit(inner)
		}
	}
}

func (b *builder) table(c *call) *schema.TableDefinition {
	def := &schema.TableDefinition{Location: b.location(c.Pos, c.EndPos, c.Tokens)}

	for i, a := range c.args() {
		switch {
		case i == 0 && a.Value != nil:
			def.Name = tableName(a.Value)
		case a.Pair != nil:
			if opt, ok := b.option(a.Pair); ok {
				def.Options = append(def.Options, opt)
			}
		case a.Value != nil && a.Value.Hash != nil:
			for _, p := range a.Value.Hash.Pairs {
				if opt, ok := b.option(p); ok {
					def.Options = append(def.Options, opt)
				}
			}
		}
	}

	if c.Block != nil {
		receiver := ""
		if len(c.Block.Params) > 0 {
			receiver = c.Block.Params[0]
		}
		b.columns(def, receiver, c.Block.Body)
	}
	return def
}

// tableName returns the table name carried by a string or symbol argument,
// or "" for anything else.
func tableName(v *value) string {
	switch {
	case v.String != nil:
		return unquote(*v.String)
	case v.Symbol != nil:
		return symbolName(*v.Symbol)
	}
	return ""
}

// columns collects `<receiver>.<type> "name", ...` calls at any depth of
// the block body.
func (b *builder) columns(def *schema.TableDefinition, receiver string, body []*call) {
	for _, c := range body {
		if col, ok := b.column(receiver, c); ok {
			def.Columns = append(def.Columns, col)
		}
		if c.Block != nil {
			b.columns(def, receiver, c.Block.Body)
		}
	}
}

func (b *builder) column(receiver string, c *call) (*schema.ColumnDeclaration, bool) {
	if len(c.Path) != 2 || c.Path[1].Ident == "" {
		return nil, false
	}
	if receiver != "" && c.Path[0].Ident != receiver {
		return nil, false
	}

	col := &schema.ColumnDeclaration{
		TypeTag:  c.method(),
		Location: b.location(c.Pos, c.EndPos, c.Tokens),
	}
	for i, a := range c.args() {
		if i == 0 && a.Value != nil {
			col.Name = tableName(a.Value)
			continue
		}
		if a.Value != nil {
			col.Args = append(col.Args, b.value(a.Value))
		}
	}
	return col, true
}

// option converts a hash pair to a keyword option. String keys ("id" =>)
// do not name keyword options and are dropped.
func (b *builder) option(p *pair) (schema.Option, bool) {
	var key string
	switch {
	case p.Label != "":
		key = strings.TrimRight(p.Label, ": \t")
	case p.SymbolKey != "":
		key = symbolName(p.SymbolKey)
	default:
		return schema.Option{}, false
	}
	return schema.Option{Key: key, Value: b.value(p.Value)}, true
}

func (b *builder) value(v *value) schema.Value {
	switch {
	case v.Symbol != nil:
		return schema.Value{Kind: schema.ValueSymbol, Text: symbolName(*v.Symbol)}
	case v.String != nil:
		return schema.Value{Kind: schema.ValueString, Text: unquote(*v.String)}
	case v.Number != nil:
		return schema.Value{Kind: schema.ValueLiteral, Text: *v.Number}
	case v.Ref != nil && v.Ref.Args == nil && len(v.Ref.Path) == 1:
		switch name := v.Ref.Path[0].name(); name {
		case "true", "false", "nil":
			return schema.Value{Kind: schema.ValueLiteral, Text: name}
		}
	}
	loc := b.location(v.Pos, v.EndPos, v.Tokens)
	return schema.Value{Kind: schema.ValueNested, Text: string(b.src[loc.Offset:loc.EndOffset])}
}

// location spans from the first token of a node to the end of its last
// significant token, leaving out trailing blanks and comments.
func (b *builder) location(pos, endPos lexer.Position, tokens []lexer.Token) schema.Location {
	end := endPos.Offset
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		if elidedTokens[tok.Type] || tok.EOF() {
			continue
		}
		end = tok.Pos.Offset + len(tok.Value)
		break
	}
	if end < pos.Offset || end > len(b.src) {
		end = pos.Offset
	}
	return schema.Location{
		File:      b.file,
		Line:      pos.Line,
		Column:    pos.Column,
		Offset:    pos.Offset,
		EndOffset: end,
	}
}

func symbolName(sym string) string {
	name := strings.TrimPrefix(sym, ":")
	if strings.HasPrefix(name, `"`) {
		return unquote(name)
	}
	return name
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if s[0] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	body := s[1 : len(s)-1]
	if s[0] == '\'' {
		body = strings.NewReplacer(`\\`, `\`, `\'`, `'`).Replace(body)
	}
	return body
}
