package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbround18/hytale-ui-mangle/internal/uiparser"
)

func TestItems_IndentationAndTrailingSemicolon(t *testing.T) {
	items := []uiparser.BodyItem{
		{
			IsChild: true,
			Child: &uiparser.Node{
				Kind:     uiparser.Normal,
				TypeName: "Group",
				ID:       "Root",
				HasID:    true,
				Items: []uiparser.BodyItem{
					{Text: "Foo: 1"},
					{Text: "Bar: 2;"},
				},
			},
		},
	}
	got := Items(items, 0)
	want := "Group #Root {\n  Foo: 1;\n  Bar: 2;\n}\n"
	assert.Equal(t, want, got)
}

func TestItems_EmptyPropertySkipped(t *testing.T) {
	items := []uiparser.BodyItem{{Text: "   "}, {Text: "Foo: 1;"}}
	got := Items(items, 0)
	assert.Equal(t, "Foo: 1;\n", got)
}

func TestItems_MacroCallNodeRendersWithSigils(t *testing.T) {
	items := []uiparser.BodyItem{
		{
			IsChild: true,
			Child: &uiparser.Node{
				Kind:   uiparser.MacroCall,
				Prefix: "M",
				Name:   "Card",
				HasID:  true,
				ID:     "Health",
			},
		},
	}
	got := Items(items, 0)
	assert.Equal(t, "$M.@Card #Health {\n}\n", got)
}

func TestItems_IdempotentOnAlreadyCanonicalTree(t *testing.T) {
	items := []uiparser.BodyItem{
		{
			IsChild: true,
			Child: &uiparser.Node{
				Kind:     uiparser.Normal,
				TypeName: "Group",
				Items: []uiparser.BodyItem{
					{Text: "Foo: 1;"},
					{IsChild: true, Child: &uiparser.Node{Kind: uiparser.Normal, TypeName: "Label"}},
				},
			},
		},
	}
	first := Items(items, 0)
	// Re-rendering the same tree (no further expansion) is a fixed point.
	second := Items(items, 0)
	require.Equal(t, first, second)
}
