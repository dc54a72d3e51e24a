// Package registry implements the process-lifetime memoization of parsed
// .ui files: a map from absolute file path to that file's macro table,
// imports, and constants, populated lazily as the expander's cross-file
// resolution needs it.
//
// A Registry is not safe for concurrent use — it is owned by a single
// expansion pass.
package registry

import (
	"fmt"
	"os"

	"github.com/mbround18/hytale-ui-mangle/internal/uiparser"
)

type fileEntry struct {
	macros    map[string]*uiparser.MacroDef
	imports   map[string]string
	constants map[string]string
}

// Registry memoizes parsed FileAst/macro data keyed by absolute path.
type Registry struct {
	files map[string]*fileEntry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{files: make(map[string]*fileEntry)}
}

// Has reports whether path has already been parsed into the registry.
func (r *Registry) Has(path string) bool {
	_, ok := r.files[path]
	return ok
}

// EnsureFile parses path if it has not been seen before and the file
// exists on disk. If path does not exist, it is a no-op: callers proceed
// as if the file contributed nothing.
func (r *Registry) EnsureFile(path string) error {
	if r.Has(path) {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	ast, macros, err := uiparser.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	r.merge(path, ast, macros)
	return nil
}

// merge records (or re-records) a parsed file's contributions. Existing
// values are overwritten, supporting idempotent re-entry from lazy import
// resolution.
func (r *Registry) merge(path string, ast *uiparser.FileAst, macros map[string]*uiparser.MacroDef) {
	entry := r.files[path]
	if entry == nil {
		entry = &fileEntry{
			macros:    make(map[string]*uiparser.MacroDef),
			imports:   make(map[string]string),
			constants: make(map[string]string),
		}
		r.files[path] = entry
	}
	for k, v := range macros {
		entry.macros[k] = v
	}
	for k, v := range ast.Imports {
		entry.imports[k] = v
	}
	for k, v := range ast.Constants {
		entry.constants[k] = v
	}
}

// MacroDef returns the macro named name declared in the file at path,
// ensuring the file is parsed first. A nil def with a nil error means the
// file exists but declares no macro by that name (or the file does not
// exist at all) — the caller degrades gracefully. A non-nil error means
// the file exists but failed to parse, which a caller resolving a macro
// call should propagate rather than silently swallow, matching the
// original tool's behavior for malformed imports.
func (r *Registry) MacroDef(path, name string) (*uiparser.MacroDef, error) {
	if err := r.EnsureFile(path); err != nil {
		return nil, err
	}
	entry := r.files[path]
	if entry == nil {
		return nil, nil
	}
	return entry.macros[name], nil
}

// Constants returns the raw (unresolved) constants declared in the file at
// path, ensuring the file is parsed first. Parse failures are swallowed —
// an imported file whose constants could not be loaded simply contributes
// none, matching the original tool's cross-file constant lookup.
func (r *Registry) Constants(path string) map[string]string {
	_ = r.EnsureFile(path)
	entry := r.files[path]
	if entry == nil {
		return nil
	}
	out := make(map[string]string, len(entry.constants))
	for k, v := range entry.constants {
		out[k] = v
	}
	return out
}
