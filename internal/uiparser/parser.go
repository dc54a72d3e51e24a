package uiparser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mbround18/hytale-ui-mangle/internal/lexutil"
)

// ParseFile reads and parses one .ui file. It does not consult or populate
// a registry; callers (the registry package) own merging the returned
// imports/constants/macros into cross-file state.
func ParseFile(path string) (*FileAst, map[string]*MacroDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseString(path, string(data))
}

// ParseString parses already-read file content. path is used only for
// error messages and import-path resolution.
func ParseString(path, content string) (*FileAst, map[string]*MacroDef, error) {
	p := &parserState{path: path, src: []byte(content)}
	items := make([]BodyItem, 0)
	imports := make(map[string]string)
	constants := make(map[string]string)
	macros := make(map[string]*MacroDef)

	for !p.eof() {
		p.idx = lexutil.SkipWhitespaceAndComments(p.src, p.idx)
		if p.eof() {
			break
		}

		if p.peek() == '@' {
			name, def, matched, err := p.tryParseMacroDef()
			if err != nil {
				return nil, nil, err
			}
			if matched {
				macros[name] = def
				continue
			}
		}

		stmt, isStatement, err := p.parseStatementOrNode(&items)
		if err != nil {
			return nil, nil, err
		}
		if isStatement {
			if prefix, importPath, ok := parseImportStatement(stmt); ok {
				imports[prefix] = resolveImportPath(path, importPath)
				continue
			}
			if name, value, ok := ParseParamAssignment(stmt); ok {
				constants[name] = value
				continue
			}
			items = append(items, BodyItem{Text: stmt})
		}
	}

	return &FileAst{Items: items, Imports: imports, Constants: constants}, macros, nil
}

func resolveImportPath(currentFile, rel string) string {
	dir := filepath.Dir(currentFile)
	return filepath.Join(dir, rel)
}

func parseImportStatement(stmt string) (prefix, path string, ok bool) {
	trimmed := strings.TrimSpace(stmt)
	if len(trimmed) == 0 || trimmed[0] != '$' {
		return "", "", false
	}
	name, end, identOK := lexutil.IdentAt([]byte(trimmed), 1)
	if !identOK {
		return "", "", false
	}
	rest := strings.TrimSpace(trimmed[end:])
	if len(rest) == 0 || rest[0] != '=' {
		return "", "", false
	}
	rest = strings.TrimSpace(rest[1:])
	rest = strings.TrimSuffix(rest, ";")
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", "", false
	}
	return name, rest[1 : len(rest)-1], true
}

// ParseParamAssignment reports whether text (after trimming and stripping
// a trailing ';') is a parameter assignment "@Name = value", returning its
// name and value when both are non-empty.
func ParseParamAssignment(text string) (name, value string, ok bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "@") {
		return "", "", false
	}
	trimmed = strings.TrimSuffix(trimmed, ";")
	eq := strings.Index(trimmed, "=")
	if eq < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(trimmed[:eq]), "@"))
	if name == "" {
		return "", "", false
	}
	value = strings.TrimSpace(trimmed[eq+1:])
	if value == "" {
		return "", "", false
	}
	return name, value, true
}

// ---------------------------------------------------------------------------
// internal scanning state
// ---------------------------------------------------------------------------

type parserState struct {
	path string
	src  []byte
	idx  int
}

func (p *parserState) eof() bool {
	return p.idx >= len(p.src)
}

func (p *parserState) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.idx]
}

func (p *parserState) skipWS() {
	p.idx = lexutil.SkipWhitespaceAndComments(p.src, p.idx)
}

func (p *parserState) parseIdent() (string, error) {
	name, end, ok := lexutil.IdentAt(p.src, p.idx)
	if !ok {
		return "", fmt.Errorf("expected identifier in %s", p.path)
	}
	p.idx = end
	return name, nil
}

func (p *parserState) expectChar(expected byte) error {
	p.skipWS()
	if p.peek() != expected {
		return fmt.Errorf("expected %q in %s", expected, p.path)
	}
	p.idx++
	return nil
}

// tryParseMacroDef speculatively attempts "@Name = <node>;" at the current
// offset. It restores the cursor and returns matched=false if the
// right-hand side is not a node header followed by a block.
func (p *parserState) tryParseMacroDef() (name string, def *MacroDef, matched bool, err error) {
	start := p.idx
	if p.peek() != '@' {
		return "", nil, false, nil
	}
	p.idx++
	name, err = p.parseIdent()
	if err != nil {
		p.idx = start
		return "", nil, false, nil
	}
	p.skipWS()
	if p.peek() != '=' {
		p.idx = start
		return "", nil, false, nil
	}
	p.idx++
	p.skipWS()
	if !p.startsNodeHeader() || !p.hasBlockBeforeStatementEnd() {
		p.idx = start
		return "", nil, false, nil
	}
	node, err := p.parseNode()
	if err != nil {
		return "", nil, false, err
	}
	p.skipWS()
	if p.peek() == ';' {
		p.idx++
	}
	defaults := make(map[string]string)
	extractParamAssignments(&node.Items, defaults)
	def = &MacroDef{
		TypeName: node.TypeName,
		ID:       node.ID,
		HasID:    node.HasID,
		Items:    node.Items,
		Defaults: defaults,
	}
	return name, def, true, nil
}

func (p *parserState) startsNodeHeader() bool {
	switch p.peek() {
	case '$', '#':
		return true
	default:
		return lexutil.IsIdentStart(p.peek())
	}
}

// hasBlockBeforeStatementEnd scans ahead (without consuming) to decide
// whether a '{' occurs before any unquoted ';'.
func (p *parserState) hasBlockBeforeStatementEnd() bool {
	inString := false
	for i := p.idx; i < len(p.src); i++ {
		c := p.src[i]
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		if c == ';' {
			return false
		}
		if c == '{' {
			return true
		}
	}
	return false
}

// parseStatementOrNode consumes one header-level statement or node. If it
// is a statement, isStatement is true and stmt holds its trimmed text
// (including the trailing ';'); if it is a node, it is appended directly
// to items and isStatement is false.
func (p *parserState) parseStatementOrNode(items *[]BodyItem) (stmt string, isStatement bool, err error) {
	p.skipWS()
	if p.eof() {
		return "", false, nil
	}
	switch {
	case p.peek() == '$':
		if p.isImportStatement() {
			stmt, err = p.readStatement()
			return stmt, true, err
		}
		node, err := p.parseNode()
		if err != nil {
			return "", false, err
		}
		*items = append(*items, BodyItem{IsChild: true, Child: node})
		return "", false, nil
	case p.peek() == '#':
		node, err := p.parseNode()
		if err != nil {
			return "", false, err
		}
		*items = append(*items, BodyItem{IsChild: true, Child: node})
		return "", false, nil
	case lexutil.IsIdentStart(p.peek()):
		saved := p.idx
		if _, err := p.parseIdent(); err != nil {
			return "", false, err
		}
		p.skipWS()
		if p.peek() == '#' || p.peek() == '{' {
			p.idx = saved
			node, err := p.parseNode()
			if err != nil {
				return "", false, err
			}
			*items = append(*items, BodyItem{IsChild: true, Child: node})
			return "", false, nil
		}
		p.idx = saved
		stmt, err = p.readStatement()
		return stmt, true, err
	default:
		stmt, err = p.readStatement()
		return stmt, true, err
	}
}

func (p *parserState) parseNode() (*Node, error) {
	p.skipWS()
	if p.eof() {
		return nil, fmt.Errorf("unexpected EOF in %s", p.path)
	}
	switch {
	case p.peek() == '$':
		return p.parseMacroCallNode()
	case p.peek() == '#':
		return p.parseIDOnlyNode()
	case lexutil.IsIdentStart(p.peek()):
		return p.parseTypedNode()
	default:
		return nil, fmt.Errorf("unexpected token in %s", p.path)
	}
}

func (p *parserState) parseMacroCallNode() (*Node, error) {
	if err := p.expectChar('$'); err != nil {
		return nil, err
	}
	prefix, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar('.'); err != nil {
		return nil, err
	}
	if err := p.expectChar('@'); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	id, hasID, err := p.parseOptionalID()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if err := p.expectChar('{'); err != nil {
		return nil, err
	}
	items, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}
	return &Node{Kind: MacroCall, Prefix: prefix, Name: name, ID: id, HasID: hasID, Items: items}, nil
}

func (p *parserState) parseIDOnlyNode() (*Node, error) {
	if err := p.expectChar('#'); err != nil {
		return nil, err
	}
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if err := p.expectChar('{'); err != nil {
		return nil, err
	}
	items, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}
	return &Node{Kind: Normal, TypeName: "Group", ID: id, HasID: true, Items: items}, nil
}

func (p *parserState) parseTypedNode() (*Node, error) {
	typeName, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	id, hasID, err := p.parseOptionalID()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if err := p.expectChar('{'); err != nil {
		return nil, err
	}
	items, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}
	return &Node{Kind: Normal, TypeName: typeName, ID: id, HasID: hasID, Items: items}, nil
}

func (p *parserState) parseOptionalID() (id string, has bool, err error) {
	if p.peek() != '#' {
		return "", false, nil
	}
	p.idx++
	id, err = p.parseIdent()
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (p *parserState) parseBlockItems() ([]BodyItem, error) {
	items := make([]BodyItem, 0)
	for {
		p.skipWS()
		if p.eof() {
			return nil, fmt.Errorf("unclosed block in %s", p.path)
		}
		if p.peek() == '}' {
			p.idx++
			return items, nil
		}
		if p.peek() == '@' {
			stmt, err := p.readStatement()
			if err != nil {
				return nil, err
			}
			items = append(items, BodyItem{Text: stmt})
			continue
		}
		switch {
		case p.peek() == '$' || p.peek() == '#':
			node, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			items = append(items, BodyItem{IsChild: true, Child: node})
		case lexutil.IsIdentStart(p.peek()):
			saved := p.idx
			if _, err := p.parseIdent(); err != nil {
				return nil, err
			}
			p.skipWS()
			if p.peek() == '#' || p.peek() == '{' {
				p.idx = saved
				node, err := p.parseNode()
				if err != nil {
					return nil, err
				}
				items = append(items, BodyItem{IsChild: true, Child: node})
			} else {
				p.idx = saved
				stmt, err := p.readStatement()
				if err != nil {
					return nil, err
				}
				items = append(items, BodyItem{Text: stmt})
			}
		default:
			stmt, err := p.readStatement()
			if err != nil {
				return nil, err
			}
			items = append(items, BodyItem{Text: stmt})
		}
	}
}

// readStatement consumes bytes up to and including the first ';' outside
// a double-quoted string, returning the trimmed text. An unterminated
// statement at EOF is a parse failure.
func (p *parserState) readStatement() (string, error) {
	start := p.idx
	inString := false
	for !p.eof() {
		c := p.peek()
		if c == '"' {
			inString = !inString
			p.idx++
			continue
		}
		if !inString && c == ';' {
			p.idx++
			return strings.TrimSpace(string(p.src[start:p.idx])), nil
		}
		p.idx++
	}
	return "", fmt.Errorf("unterminated statement in %s", p.path)
}

// isImportStatement reports whether the '$' at the current offset begins
// "$alias = ..." rather than "$alias.@Name { ... }".
func (p *parserState) isImportStatement() bool {
	if p.peek() != '$' {
		return false
	}
	idx := p.idx + 1
	if idx >= len(p.src) || !lexutil.IsIdentStart(p.src[idx]) {
		return false
	}
	idx++
	for idx < len(p.src) && lexutil.IsIdentChar(p.src[idx]) {
		idx++
	}
	for idx < len(p.src) {
		c := p.src[idx]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f' {
			idx++
			continue
		}
		return c == '='
	}
	return false
}

func extractParamAssignments(items *[]BodyItem, defaults map[string]string) {
	retained := make([]BodyItem, 0, len(*items))
	for _, item := range *items {
		if !item.IsChild {
			if name, value, ok := ParseParamAssignment(item.Text); ok {
				defaults[name] = value
				continue
			}
		}
		retained = append(retained, item)
	}
	*items = retained
}
