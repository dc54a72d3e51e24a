package expander

import "github.com/mbround18/hytale-ui-mangle/internal/uiparser"

// IDEntry pairs a mangled element id with the element's type name, for
// downstream companion-class generation.
type IDEntry struct {
	MangledID string
	TypeName  string
}

// Mangle rewrites node's id (and every descendant's id) into a
// hierarchically-prefixed camelCase form, in document order, and returns
// the (mangled id, type name) pairs discovered. parent is the mangled id
// of the nearest ancestor that declared one, or "" at the document root.
func Mangle(node *uiparser.Node, parent string) []IDEntry {
	var out []IDEntry
	mangleNode(node, parent, &out)
	return out
}

func mangleNode(node *uiparser.Node, parent string, out *[]IDEntry) {
	current := parent
	if node.HasID {
		camel := camelizeID(node.ID)
		mangled := parent + camel
		node.ID = mangled
		current = mangled
		*out = append(*out, IDEntry{MangledID: mangled, TypeName: node.TypeName})
	}
	for i := range node.Items {
		item := &node.Items[i]
		if item.IsChild {
			mangleNode(item.Child, current, out)
		}
	}
}

// camelizeID upper-cases the first alphanumeric character after any run of
// non-alphanumeric separators, dropping the separators themselves. An
// input with no alphanumeric characters mangles to "Id".
func camelizeID(input string) string {
	out := make([]byte, 0, len(input))
	upperNext := true
	for i := 0; i < len(input); i++ {
		c := input[i]
		if isASCIIAlphanumeric(c) {
			if upperNext {
				out = append(out, toASCIIUpper(c))
				upperNext = false
			} else {
				out = append(out, c)
			}
		} else {
			upperNext = true
		}
	}
	if len(out) == 0 {
		return "Id"
	}
	return string(out)
}

func isASCIIAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func toASCIIUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
