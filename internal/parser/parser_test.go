package parser_test

import (
	"os"
	"strings"
	"testing"

	"fk-bigint/internal/parser"
	"fk-bigint/internal/schema"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	src, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return src
}

func findTable(defs []*schema.TableDefinition, name string) *schema.TableDefinition {
	for _, d := range defs {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func TestParse_SchemaDump(t *testing.T) {
	src := readFixture(t, "schema.rb")
	defs, err := parser.Parse("db/schema.rb", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
	}
	want := "applications,companies,users,device_settings"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("Expected tables %s, got %s", want, got)
	}

	companies := findTable(defs, "companies")
	if len(companies.Options) != 2 {
		t.Fatalf("Expected 2 options on companies, got %d", len(companies.Options))
	}
	if opt := companies.Options[0]; opt.Key != "id" || opt.Value.Kind != schema.ValueSymbol || opt.Value.Text != "integer" {
		t.Errorf("Expected id: :integer, got %+v", opt)
	}
	if opt := companies.Options[1]; opt.Key != "force" || opt.Value.Text != "cascade" {
		t.Errorf("Expected force: :cascade, got %+v", opt)
	}

	users := findTable(defs, "users")
	if opt := users.Options[2]; opt.Key != "charset" || opt.Value.Kind != schema.ValueString || opt.Value.Text != "utf8mb4" {
		t.Errorf("Expected charset string option, got %+v", opt)
	}

	settings := findTable(defs, "device_settings")
	var cols []string
	for _, c := range settings.Columns {
		cols = append(cols, c.TypeTag+":"+c.Name)
	}
	wantCols := "integer:application_id,integer:company_id,integer:user_id,string:setting_name,timestamps:,index:"
	if got := strings.Join(cols, ","); got != wantCols {
		t.Errorf("Expected columns %s, got %s", wantCols, got)
	}
}

func TestParse_ColumnLocation(t *testing.T) {
	src := readFixture(t, "schema.rb")
	defs, err := parser.Parse("db/schema.rb", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	col := findTable(defs, "device_settings").Columns[0]
	loc := col.Location
	if loc.File != "db/schema.rb" || loc.Line != 29 || loc.Column != 5 {
		t.Errorf("Expected db/schema.rb:29:5, got %s:%d:%d", loc.File, loc.Line, loc.Column)
	}
	if got := string(src[loc.Offset:loc.EndOffset]); got != `t.integer "application_id"` {
		t.Errorf("Expected span to cover the declaration only, got %q", got)
	}

	withOpts := findTable(defs, "device_settings").Columns[2]
	if got := string(src[withOpts.Location.Offset:withOpts.Location.EndOffset]); got != `t.integer "user_id", null: false` {
		t.Errorf("Expected span to include options, got %q", got)
	}
}

func TestParse_OptionValues(t *testing.T) {
	src := readFixture(t, "schema.rb")
	defs, err := parser.Parse("db/schema.rb", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	created := findTable(defs, "applications").Columns[1]
	if created.Name != "created_at" || len(created.Args) != 0 {
		t.Fatalf("Expected created_at without positional args, got %+v", created)
	}

	roles := findTable(defs, "users").Columns[2]
	if roles.Name != "roles" {
		t.Errorf("Expected roles column, got %q", roles.Name)
	}
}

func TestParse_LegacySyntax(t *testing.T) {
	src := readFixture(t, "legacy.rb")
	defs, err := parser.Parse("legacy.rb", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(defs))
	}

	categories := defs[0]
	if categories.Name != "categories" {
		t.Errorf("Expected symbol table name to be read, got %q", categories.Name)
	}
	if got := schema.ExtractPKType(categories); got != schema.PKInteger {
		t.Errorf("Expected :id => :integer to give integer, got %s", got)
	}
	if categories.Columns[0].Name != "title" {
		t.Errorf("Expected symbol column name, got %q", categories.Columns[0].Name)
	}

	articles := defs[1]
	if len(articles.Options) != 1 {
		t.Fatalf("Expected string-keyed pair to be dropped, got %+v", articles.Options)
	}
	if got := schema.ExtractPKType(articles); got != schema.PKInteger {
		t.Errorf("Expected hash argument option to give integer, got %s", got)
	}
	if c := articles.Columns[1]; c.TypeTag != "column" || c.Name != "author_id" {
		t.Errorf("Expected t.column declaration, got %+v", c)
	}
}

func TestParse_Edge(t *testing.T) {
	var tests = []struct {
		name   string
		src    string
		tables int
		first  string
	}{
		{"Empty", "", 0, ""},
		{"Comments Only", "# nothing here\n\n", 0, ""},
		{"No Block", `create_table "plain", id: false` + "\n", 1, "plain"},
		{"Non-String Name", "create_table foo, force: :cascade do |t|\nend\n", 1, ""},
		{"Paren Args", `create_table("wrapped", id: :bigint) do |t|` + "\nt.integer \"x_id\"\nend\n", 1, "wrapped"},
		{"Semicolons", `create_table "a" do |t|; t.integer "b_id"; end`, 1, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := parser.ParseString("schema.rb", tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(defs) != tt.tables {
				t.Fatalf("got %d tables, wanted %d", len(defs), tt.tables)
			}
			if tt.tables > 0 && defs[0].Name != tt.first {
				t.Errorf("got table %q, wanted %q", defs[0].Name, tt.first)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	var tests = []struct {
		name string
		src  string
	}{
		{"Unterminated Block", "create_table \"x\" do |t|\n  t.integer \"a_id\"\n"},
		{"Unterminated String", "create_table \"x\n"},
		{"Dangling Comma", "create_table \"x\",\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parser.ParseString("broken.rb", tt.src); err == nil {
				t.Errorf("expected an error, did not receive one")
			}
		})
	}
}

func TestParse_ColumnReceiver(t *testing.T) {
	src := `create_table "posts" do |t|
  t.integer "user_id"
  other.integer "company_id"
  integer "application_id"
  if true do
    t.integer "author_id"
  end
end
`
	defs, err := parser.ParseString("schema.rb", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var names []string
	for _, c := range defs[0].Columns {
		names = append(names, c.Name)
	}
	if got := strings.Join(names, ","); got != "user_id,author_id" {
		t.Errorf("Expected only block parameter calls as columns, got %s", got)
	}
}
