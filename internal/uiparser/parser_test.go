package uiparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString_ImportsConstantsAndMacro(t *testing.T) {
	src := `
$M = "Macros.ui";
@Accent = #111111;

@Card = Group {
  @Value = "0";
  Label #Value { Text: @Value; }
};

Group #Root {
  $M.@Card #Health { @Value = "100"; }
}
`
	ast, macros, err := ParseString("Demo.ui", src)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Accent": "#111111"}, ast.Constants)
	require.Len(t, ast.Imports, 1)

	require.Contains(t, macros, "Card")
	card := macros["Card"]
	assert.Equal(t, "Group", card.TypeName)
	assert.Equal(t, map[string]string{"Value": `"0"`}, card.Defaults)
	require.Len(t, card.Items, 1)
	assert.True(t, card.Items[0].IsChild)

	require.Len(t, ast.Items, 1)
	root := ast.Items[0].Child
	assert.Equal(t, "Root", root.ID)
	require.Len(t, root.Items, 1)
	call := root.Items[0].Child
	assert.Equal(t, MacroCall, call.Kind)
	assert.Equal(t, "M", call.Prefix)
	assert.Equal(t, "Card", call.Name)
	assert.Equal(t, "Health", call.ID)
}

func TestParseString_PropertyVsChildDisambiguation(t *testing.T) {
	src := `
Group {
  Foo: 3;
  Bar {
    Baz: 1;
  }
  Qux #Id {
  }
}
`
	ast, _, err := ParseString("f.ui", src)
	require.NoError(t, err)
	require.Len(t, ast.Items, 1)
	group := ast.Items[0].Child
	require.Len(t, group.Items, 3)
	assert.False(t, group.Items[0].IsChild)
	assert.Equal(t, "Foo: 3;", group.Items[0].Text)
	assert.True(t, group.Items[1].IsChild)
	assert.Equal(t, "Bar", group.Items[1].Child.TypeName)
	assert.True(t, group.Items[2].IsChild)
	assert.Equal(t, "Qux", group.Items[2].Child.TypeName)
	assert.Equal(t, "Id", group.Items[2].Child.ID)
}

func TestParseString_UnterminatedStatementFails(t *testing.T) {
	_, _, err := ParseString("f.ui", `Group { Foo: 3`)
	assert.Error(t, err)
}

func TestParseString_SemicolonInsideStringIsNotAStatementEnd(t *testing.T) {
	ast, _, err := ParseString("f.ui", `Group { Text: "a; b"; }`)
	require.NoError(t, err)
	group := ast.Items[0].Child
	require.Len(t, group.Items, 1)
	assert.Equal(t, `Text: "a; b";`, group.Items[0].Text)
}

func TestParseParamAssignment(t *testing.T) {
	name, value, ok := ParseParamAssignment(`@Height = 8;`)
	require.True(t, ok)
	assert.Equal(t, "Height", name)
	assert.Equal(t, "8", value)

	_, _, ok = ParseParamAssignment(`Foo: 3;`)
	assert.False(t, ok)

	_, _, ok = ParseParamAssignment(`@ = 8;`)
	assert.False(t, ok)

	_, _, ok = ParseParamAssignment(`@Height = ;`)
	assert.False(t, ok)
}

func TestParseString_IDOnlyNodeDefaultsToGroup(t *testing.T) {
	ast, _, err := ParseString("f.ui", `#Root { }`)
	require.NoError(t, err)
	require.Len(t, ast.Items, 1)
	assert.Equal(t, "Group", ast.Items[0].Child.TypeName)
	assert.Equal(t, "Root", ast.Items[0].Child.ID)
}

func TestParseString_MacroDefVsParamAssignmentAmbiguity(t *testing.T) {
	// @Foo = 3; is a parameter assignment, not a macro def, because there
	// is no node header / block before the terminating ';'.
	ast, macros, err := ParseString("f.ui", `@Foo = 3;`)
	require.NoError(t, err)
	assert.Empty(t, macros)
	assert.Equal(t, "3", ast.Constants["Foo"])
}
