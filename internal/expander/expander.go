// Package expander implements the macro-and-constant expansion engine and
// identifier-mangling pass at the heart of the compiler. Expand rewrites
// macro calls, substitutes parameters, qualifies spread references,
// de-duplicates properties, and reorders items; Mangle then rewrites
// element ids into hierarchical camelCase forms.
package expander

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mbround18/hytale-ui-mangle/internal/lexutil"
	"github.com/mbround18/hytale-ui-mangle/internal/registry"
	"github.com/mbround18/hytale-ui-mangle/internal/uiparser"
)

// maxResolutionRounds bounds constant fixed-point resolution. Anything
// needing more hops than this is left partially resolved — a deliberate
// bound against pathological input.
const maxResolutionRounds = 8

// Reserved parameter-scope keys, carried alongside ordinary @Name entries.
const (
	keyAlias          = "__alias"
	keyWarnDuplicates = "__warn_duplicates"
)

// Scope is an immutable-by-convention parameter mapping: name (without the
// leading '@') to value text, plus the reserved keys above. Callers must
// treat a Scope handed to Expand as read-only; new scopes are derived by
// copying, never by mutating in place.
type Scope map[string]string

func (s Scope) warnDuplicates() bool {
	return s[keyWarnDuplicates] == "true"
}

// Expander runs the expansion pass against a shared Registry, emitting
// duplicate-property diagnostics to Diagnostics. A zero-value Expander has
// no registry: expanding a macro call or a "$alias.@Name" reference whose
// alias is in imports dereferences the nil registry and panics; use New.
type Expander struct {
	Reg         *registry.Registry
	Diagnostics io.Writer
}

// New returns an Expander backed by reg, writing duplicate-property
// diagnostics to os.Stderr.
func New(reg *registry.Registry) *Expander {
	return &Expander{Reg: reg, Diagnostics: os.Stderr}
}

func (e *Expander) diagnostics() io.Writer {
	if e.Diagnostics == nil {
		return io.Discard
	}
	return e.Diagnostics
}

// Expand resolves every macro call, substitutes every parameter reference,
// qualifies every spread reference, and canonicalizes every node in items,
// returning a new slice. imports maps the enclosing file's import
// prefixes to absolute paths; scope may be nil (equivalent to an empty
// scope).
func (e *Expander) Expand(items []uiparser.BodyItem, imports map[string]string, scope Scope) ([]uiparser.BodyItem, error) {
	if scope == nil {
		scope = Scope{}
	}
	out := make([]uiparser.BodyItem, 0, len(items))
	for _, item := range items {
		if !item.IsChild {
			if _, _, ok := uiparser.ParseParamAssignment(item.Text); ok {
				out = append(out, item)
				continue
			}
			out = append(out, uiparser.BodyItem{Text: e.replaceWithImports(item.Text, scope, imports)})
			continue
		}
		expanded, err := e.expandNode(item.Child, imports, scope)
		if err != nil {
			return nil, err
		}
		out = append(out, uiparser.BodyItem{IsChild: true, Child: expanded})
	}
	return out, nil
}

func (e *Expander) expandNode(node *uiparser.Node, imports map[string]string, scope Scope) (*uiparser.Node, error) {
	if node.Kind != uiparser.MacroCall {
		local := make(Scope, len(scope))
		for k, v := range scope {
			local[k] = v
		}
		extractParamOverrides(&node.Items, local)
		expanded, err := e.Expand(node.Items, imports, local)
		if err != nil {
			return nil, err
		}
		node.Items = expanded
		e.dedupeNodeProperties(node, scope)
		reorderNodeItems(node)
		return node, nil
	}

	importPath, hasImport := imports[node.Prefix]
	if !hasImport {
		unresolved := node.Clone()
		applyScopeToItems(unresolved.Items, scope)
		return unresolved, nil
	}

	def, err := e.Reg.MacroDef(importPath, node.Name)
	if err != nil {
		return nil, err
	}
	if def == nil {
		unresolved := node.Clone()
		applyScopeToItems(unresolved.Items, scope)
		return unresolved, nil
	}

	resolvedConstants := resolveConstants(e.Reg.Constants(importPath))
	constantKeys := make(map[string]bool, len(resolvedConstants))
	paramMap := make(Scope, len(resolvedConstants)+len(def.Defaults)+2)
	for k, v := range resolvedConstants {
		paramMap[k] = v
		constantKeys[k] = true
	}
	paramMap[keyAlias] = node.Prefix
	for k, v := range def.Defaults {
		paramMap[k] = v
	}
	if scope.warnDuplicates() {
		paramMap[keyWarnDuplicates] = "true"
	}

	callItems := uiparser.CloneItems(node.Items)
	applyScopeToItems(callItems, scope)
	extractParamOverrides(&callItems, paramMap)

	templateItems := def.Clone().Items
	templateItems, err = e.Expand(templateItems, imports, paramMap)
	if err != nil {
		return nil, err
	}
	appendedItems, err := e.Expand(callItems, imports, paramMap)
	if err != nil {
		return nil, err
	}
	templateItems = append(templateItems, appendedItems...)

	node.Kind = uiparser.Normal
	node.TypeName = def.TypeName
	if !node.HasID {
		node.ID = def.ID
		node.HasID = def.HasID
	}
	node.Items = templateItems
	qualifySpreadAlias(node.Items, node.Prefix, constantKeys)
	e.dedupeNodeProperties(node, scope)
	reorderNodeItems(node)
	return node, nil
}

// resolveConstants resolves every raw constant value to its fixed point,
// each against the full raw map (so multi-hop chains such as
// "@Accent = @PanelBackground;" resolve correctly in a bounded number of
// rounds).
func resolveConstants(raw map[string]string) map[string]string {
	resolved := make(map[string]string, len(raw))
	for k, v := range raw {
		resolved[k] = resolveValue(v, raw)
	}
	return resolved
}

// extractParamOverrides walks a node's body items (a macro call's call-site
// items, or a Normal node's own items), removing every parameter
// assignment Property and installing it into params; everything else is
// retained in order.
func extractParamOverrides(items *[]uiparser.BodyItem, params Scope) {
	retained := make([]uiparser.BodyItem, 0, len(*items))
	for _, item := range *items {
		if !item.IsChild {
			if name, value, ok := uiparser.ParseParamAssignment(item.Text); ok {
				params[name] = value
				continue
			}
		}
		retained = append(retained, item)
	}
	*items = retained
}

// applyScopeToItems substitutes @Name references throughout items (and
// recursively through every descendant). It is applied to a macro call's
// call-site items before their overrides are extracted, and to the body of
// an unresolved macro call so enclosing parameters still flow through it.
func applyScopeToItems(items []uiparser.BodyItem, scope Scope) {
	for i := range items {
		item := &items[i]
		if item.IsChild {
			applyScopeToItems(item.Child.Items, scope)
			continue
		}
		if _, _, ok := uiparser.ParseParamAssignment(item.Text); ok {
			continue
		}
		item.Text = replaceParams(item.Text, scope)
	}
}

// ---------------------------------------------------------------------------
// Canonicalization: de-dup + reorder
// ---------------------------------------------------------------------------

func (e *Expander) dedupeNodeProperties(node *uiparser.Node, scope Scope) {
	warn := scope.warnDuplicates()
	seen := make(map[string]bool, len(node.Items))
	kept := make([]uiparser.BodyItem, 0, len(node.Items))
	for i := len(node.Items) - 1; i >= 0; i-- {
		item := node.Items[i]
		if item.IsChild {
			kept = append(kept, item)
			continue
		}
		key, ok := propertyKey(item.Text)
		if !ok {
			kept = append(kept, item)
			continue
		}
		if !seen[key] {
			seen[key] = true
			kept = append(kept, item)
			continue
		}
		if warn {
			name := node.TypeName
			if node.HasID {
				name = node.ID
			}
			fmt.Fprintf(e.diagnostics(), "ui-mangle warning: duplicate property '%s' in node '%s'\n", key, name)
		}
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	node.Items = kept
}

func reorderNodeItems(node *uiparser.Node) {
	props := make([]uiparser.BodyItem, 0, len(node.Items))
	children := make([]uiparser.BodyItem, 0, len(node.Items))
	for _, item := range node.Items {
		if item.IsChild {
			children = append(children, item)
		} else {
			props = append(props, item)
		}
	}
	node.Items = append(props, children...)
}

func propertyKey(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, "@") {
		return "", false
	}
	var key strings.Builder
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == ':' {
			break
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f' {
			continue
		}
		key.WriteByte(c)
	}
	if key.Len() == 0 {
		return "", false
	}
	return key.String(), true
}

// ---------------------------------------------------------------------------
// Spread qualification
// ---------------------------------------------------------------------------

func qualifySpreadAlias(items []uiparser.BodyItem, alias string, constants map[string]bool) {
	for i := range items {
		item := &items[i]
		if item.IsChild {
			qualifySpreadAlias(item.Child.Items, alias, constants)
			continue
		}
		item.Text = qualifySpreadInText(item.Text, alias, constants)
	}
}

func qualifySpreadInText(text, alias string, constants map[string]bool) string {
	bytes := []byte(text)
	var out strings.Builder
	out.Grow(len(text))
	i := 0
	for i < len(bytes) {
		if i+3 < len(bytes) && bytes[i] == '.' && bytes[i+1] == '.' && bytes[i+2] == '.' && bytes[i+3] == '@' {
			if name, end, ok := lexutil.IdentAt(bytes, i+4); ok && constants[name] {
				out.WriteString("...$")
				out.WriteString(alias)
				out.WriteString(".@")
				out.WriteString(name)
				i = end
				continue
			}
		}
		out.WriteByte(bytes[i])
		i++
	}
	return out.String()
}

// ---------------------------------------------------------------------------
// Parameter substitution
// ---------------------------------------------------------------------------

func isSpreadContext(bytes []byte, at int) bool {
	return at >= 3 && bytes[at-1] == '.' && bytes[at-2] == '.' && bytes[at-3] == '.'
}

// isImportRef reports whether the '@' at offset at is the property
// component of a "$alias.@Name" reference.
func isImportRef(bytes []byte, at int) bool {
	if at == 0 || bytes[at-1] != '.' {
		return false
	}
	j := at - 1
	for j > 0 && lexutil.IsIdentChar(bytes[j-1]) {
		j--
	}
	if j == 0 {
		return false
	}
	return bytes[j-1] == '$'
}

// replaceParamsOnce performs one left-to-right substitution pass over
// text using params only (no cross-file lookups).
func replaceParamsOnce(text string, params Scope) string {
	bytes := []byte(text)
	var out strings.Builder
	out.Grow(len(text))
	i := 0
	for i < len(bytes) {
		if bytes[i] == '@' {
			spread := isSpreadContext(bytes, i)
			if name, end, ok := lexutil.IdentAt(bytes, i+1); ok {
				if spread {
					if alias, has := params[keyAlias]; has {
						out.WriteByte('$')
						out.WriteString(alias)
						out.WriteString(".@")
						out.WriteString(name)
						i = end
						continue
					}
					out.WriteByte('@')
					i++
					continue
				}
				if !isImportRef(bytes, i) {
					if value, has := params[name]; has {
						out.WriteString(value)
						i = end
						continue
					}
				}
			}
		}
		out.WriteByte(bytes[i])
		i++
	}
	return out.String()
}

// resolveValue repeatedly applies replaceParamsOnce up to
// maxResolutionRounds times or until the text reaches a fixed point,
// resolving multi-hop constant chains.
func resolveValue(value string, params map[string]string) string {
	current := value
	for i := 0; i < maxResolutionRounds; i++ {
		if !strings.Contains(current, "@") {
			break
		}
		next := replaceParamsOnce(current, params)
		if next == current {
			break
		}
		current = next
	}
	return current
}

func replaceParams(text string, params Scope) string {
	if !strings.Contains(text, "@") {
		return text
	}
	return resolveValue(text, params)
}

// replaceWithImports applies replaceWithImportsOnce up to
// maxResolutionRounds times or until the text reaches a fixed point, as
// resolveValue does, so parameter values that themselves reference other
// parameters or imported constants are resolved as well.
func (e *Expander) replaceWithImports(text string, params Scope, imports map[string]string) string {
	current := text
	for i := 0; i < maxResolutionRounds; i++ {
		next := e.replaceWithImportsOnce(current, params, imports)
		if next == current {
			break
		}
		current = next
	}
	return current
}

// replaceWithImportsOnce is one substitution pass of params over text with
// the extra rule of expanding "$alias.@Name" references against an
// imported file's fully-resolved constants, applied first. Spread contexts
// suppress both: "...$alias.@Name" is not inlined across files, and
// "...@Name" is left as written (qualifySpreadAlias qualifies it later).
func (e *Expander) replaceWithImportsOnce(text string, params Scope, imports map[string]string) string {
	bytes := []byte(text)
	var out strings.Builder
	out.Grow(len(text))
	i := 0
	for i < len(bytes) {
		if bytes[i] == '$' {
			if alias, aliasEnd, ok := lexutil.IdentAt(bytes, i+1); ok {
				j := aliasEnd
				if j+1 < len(bytes) && bytes[j] == '.' && bytes[j+1] == '@' {
					if name, nameEnd, ok2 := lexutil.IdentAt(bytes, j+2); ok2 {
						spread := isSpreadContext(bytes, i)
						if !spread {
							if importPath, has := imports[alias]; has {
								constants := resolveConstants(e.Reg.Constants(importPath))
								if value, has2 := constants[name]; has2 {
									out.WriteString(replaceParams(value, constants))
									i = nameEnd
									continue
								}
							}
						}
					}
				}
			}
		}
		if bytes[i] == '@' {
			spread := isSpreadContext(bytes, i)
			if spread {
				out.WriteByte('@')
				i++
				continue
			}
			if name, end, ok := lexutil.IdentAt(bytes, i+1); ok && !isImportRef(bytes, i) {
				if value, has := params[name]; has {
					out.WriteString(value)
					i = end
					continue
				}
			}
		}
		out.WriteByte(bytes[i])
		i++
	}
	return out.String()
}
