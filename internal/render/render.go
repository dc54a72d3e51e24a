// Package render flattens an expanded BodyItem tree back into canonical
// .ui source text: two-space indentation per level, a trailing ';' on
// every property that lacks one, and empty properties skipped entirely.
package render

import (
	"strings"

	"github.com/mbround18/hytale-ui-mangle/internal/uiparser"
)

// Items renders a BodyItem list at the given indent level (0 = no
// indentation).
func Items(items []uiparser.BodyItem, indent int) string {
	var out strings.Builder
	writeItems(&out, items, indent)
	return out.String()
}

func writeItems(out *strings.Builder, items []uiparser.BodyItem, indent int) {
	for _, item := range items {
		if !item.IsChild {
			trimmed := strings.TrimSpace(item.Text)
			if trimmed == "" {
				continue
			}
			out.WriteString(strings.Repeat("  ", indent))
			out.WriteString(trimmed)
			if !strings.HasSuffix(trimmed, ";") {
				out.WriteByte(';')
			}
			out.WriteByte('\n')
			continue
		}
		writeNode(out, item.Child, indent)
	}
}

func writeNode(out *strings.Builder, node *uiparser.Node, indent int) {
	out.WriteString(strings.Repeat("  ", indent))
	switch node.Kind {
	case uiparser.MacroCall:
		out.WriteByte('$')
		out.WriteString(node.Prefix)
		out.WriteByte('.')
		out.WriteByte('@')
		out.WriteString(node.Name)
	default:
		out.WriteString(node.TypeName)
	}
	if node.HasID {
		out.WriteByte(' ')
		out.WriteByte('#')
		out.WriteString(node.ID)
	}
	out.WriteString(" {\n")
	writeItems(out, node.Items, indent+1)
	out.WriteString(strings.Repeat("  ", indent))
	out.WriteString("}\n")
}
