package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mbround18/hytale-ui-mangle/internal/discover"
	"github.com/mbround18/hytale-ui-mangle/internal/expander"
	"github.com/mbround18/hytale-ui-mangle/internal/javagen"
	"github.com/mbround18/hytale-ui-mangle/internal/langgen"
	"github.com/mbround18/hytale-ui-mangle/internal/lexutil"
	"github.com/mbround18/hytale-ui-mangle/internal/registry"
	"github.com/mbround18/hytale-ui-mangle/internal/render"
	"github.com/mbround18/hytale-ui-mangle/internal/uiparser"
)

// Run drives the full build: clear and recreate the output trees,
// discover .ui files, expand and mangle each, render canonical output
// with an injected import header, emit companion Java classes, and
// (when configured) generate translation-key classes from .lang files
// (original_source lib.rs::run).
func Run(cfg Config, stderr io.Writer) (int, error) {
	resourcesRoot, err := normalizePath(cfg.ResourcesRoot)
	if err != nil {
		return 0, err
	}
	uiRoot, err := normalizePath(cfg.UIRoot)
	if err != nil {
		return 0, err
	}
	uiOut, err := normalizePath(cfg.UIOut)
	if err != nil {
		return 0, err
	}
	javaOut, err := normalizePath(cfg.JavaOut)
	if err != nil {
		return 0, err
	}

	if err := recreateDir(uiOut); err != nil {
		return 0, err
	}
	if err := recreateDir(javaOut); err != nil {
		return 0, err
	}

	javaRoot := ""
	if cfg.JavaRoot != "" {
		javaRoot, err = normalizePath(cfg.JavaRoot)
		if err != nil {
			return 0, err
		}
	}

	uiFiles, err := discover.UIFiles(uiRoot, javaRoot)
	if err != nil {
		return 0, err
	}
	if len(uiFiles) == 0 {
		return 0, fmt.Errorf("no .ui files found under %s", uiRoot)
	}

	reg := registry.New()
	rootScope := expander.Scope{}
	if cfg.WarnDuplicateProperties {
		rootScope["__warn_duplicates"] = "true"
	}

	generated := 0
	for _, uiFile := range uiFiles {
		raw, err := os.ReadFile(uiFile)
		if err != nil {
			return generated, fmt.Errorf("read %s: %w", uiFile, err)
		}

		ast, _, err := uiparser.ParseFile(uiFile)
		if err != nil {
			return generated, err
		}

		scope := expander.Scope{}
		for k, v := range ast.Constants {
			scope[k] = v
		}
		for k, v := range rootScope {
			scope[k] = v
		}

		ex := &expander.Expander{Reg: reg, Diagnostics: stderr}
		expanded, err := ex.Expand(ast.Items, ast.Imports, scope)
		if err != nil {
			return generated, err
		}

		relToResources, err := filepath.Rel(resourcesRoot, uiFile)
		if err != nil {
			return generated, fmt.Errorf("%s not under resources root %s: %w", uiFile, resourcesRoot, err)
		}

		if !hasEntryNodes(expanded) {
			uiOutPath := filepath.Join(uiOut, relToResources)
			if err := os.MkdirAll(filepath.Dir(uiOutPath), 0o755); err != nil {
				return generated, err
			}
			if err := os.WriteFile(uiOutPath, raw, 0o644); err != nil {
				return generated, fmt.Errorf("write %s: %w", uiOutPath, err)
			}
			if cfg.Verbose {
				fmt.Fprintf(stderr, "write macro-only file %s\n", uiFile)
			}
			continue
		}

		var ids []expander.IDEntry
		for i := range expanded {
			if expanded[i].IsChild {
				ids = append(ids, expander.Mangle(expanded[i].Child, "")...)
			}
		}

		relToUIRoot, err := filepath.Rel(uiRoot, uiFile)
		if err != nil {
			return generated, fmt.Errorf("%s not under ui root %s: %w", uiFile, uiRoot, err)
		}

		uiOutPath := filepath.Join(uiOut, relToResources)
		if err := os.MkdirAll(filepath.Dir(uiOutPath), 0o755); err != nil {
			return generated, err
		}

		rendered := render.Items(expanded, 0)
		rendered = injectImportHeader(rendered, ast.Imports, uiFile, relToUIRoot)

		if err := os.WriteFile(uiOutPath, []byte(rendered), 0o644); err != nil {
			return generated, fmt.Errorf("write %s: %w", uiOutPath, err)
		}

		className := javagen.ClassNameFromRelPath(filepath.ToSlash(relToUIRoot))
		uiPathString := javagen.PathToSlashString(relToUIRoot)
		javaSource := javagen.Class(cfg.JavaPackage, className, uiPathString, ids)
		javaOutPath := filepath.Join(javaOut, javagen.PackageToPath(cfg.JavaPackage), className+".java")
		if err := os.MkdirAll(filepath.Dir(javaOutPath), 0o755); err != nil {
			return generated, err
		}
		if err := os.WriteFile(javaOutPath, []byte(javaSource), 0o644); err != nil {
			return generated, fmt.Errorf("write %s: %w", javaOutPath, err)
		}

		generated++
	}

	if cfg.Verbose {
		fmt.Fprintf(stderr, "generated %d UI files\n", generated)
	}

	if cfg.LangRoot != "" {
		count, err := generateLangClasses(cfg, javaOut)
		if err != nil {
			return generated, err
		}
		if cfg.Verbose {
			fmt.Fprintf(stderr, "generated %d lang classes\n", count)
		}
	}

	return generated, nil
}

func hasEntryNodes(items []uiparser.BodyItem) bool {
	for _, item := range items {
		if item.IsChild {
			return true
		}
	}
	return false
}

// injectImportHeader prepends a sorted block of "$alias = \"...\";"
// import lines for the aliases the rendered text references via "$alias.".
// An alias the source file imported gets its import re-emitted, relative
// to the file (rendered items carry no import statements); "$C" always
// gets a relative Common.ui path. Any other referenced alias gets no line.
func injectImportHeader(rendered string, imports map[string]string, uiFile, relToUIRoot string) string {
	aliases := collectAliases(rendered)
	var headerLines []string
	for _, alias := range aliases {
		if alias == "C" {
			headerLines = append(headerLines, fmt.Sprintf(`$C = "%s";`, javagen.CommonAliasPath(filepath.ToSlash(relToUIRoot))))
			continue
		}
		if importPath, ok := imports[alias]; ok {
			baseDir := filepath.Dir(uiFile)
			rel := relativeSlashPath(baseDir, importPath)
			headerLines = append(headerLines, fmt.Sprintf(`$%s = "%s";`, alias, rel))
		}
	}
	if len(headerLines) == 0 {
		return rendered
	}
	sort.Strings(headerLines)
	return strings.Join(headerLines, "\n") + "\n\n" + rendered
}

// collectAliases scans text for every "$identifier." occurrence and
// returns the distinct identifiers found, sorted.
func collectAliases(text string) []string {
	seen := make(map[string]bool)
	bytes := []byte(text)
	i := 0
	for i < len(bytes) {
		if bytes[i] == '$' {
			if name, end, ok := lexutil.IdentAt(bytes, i+1); ok {
				if end < len(bytes) && bytes[end] == '.' {
					seen[name] = true
				}
				i = end
				continue
			}
		}
		i++
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// relativeSlashPath renders the relative path from fromDir to target as
// forward-slash-separated components, without relying on the two paths
// sharing a common filesystem root beyond their shared prefix.
func relativeSlashPath(fromDir, target string) string {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

func normalizePath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return abs, nil
}

func recreateDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove %s: %w", dir, err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

func generateLangClasses(cfg Config, javaOut string) (int, error) {
	langRoot, err := normalizePath(cfg.LangRoot)
	if err != nil {
		return 0, err
	}

	var overridePath string
	if cfg.LangClassFile != "" {
		if filepath.IsAbs(cfg.LangClassFile) {
			overridePath, err = normalizePath(cfg.LangClassFile)
		} else {
			overridePath, err = normalizePath(filepath.Join(langRoot, cfg.LangClassFile))
		}
		if err != nil {
			return 0, err
		}
	}

	files, err := discover.LangFiles(langRoot)
	if err != nil {
		return 0, err
	}

	generated := 0
	for _, path := range files {
		keys, err := langgen.ParseFile(path)
		if err != nil {
			return generated, err
		}
		rel, err := filepath.Rel(langRoot, path)
		if err != nil {
			return generated, fmt.Errorf("%s not under lang root %s: %w", path, langRoot, err)
		}
		isOverride := overridePath != "" && path == overridePath
		className := langgen.ClassName(filepath.ToSlash(rel), isOverride, cfg.LangClassName)
		javaSource := langgen.Class(cfg.JavaPackage, className, keys)
		outPath := filepath.Join(javaOut, javagen.PackageToPath(cfg.JavaPackage), className+".java")
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return generated, err
		}
		if err := os.WriteFile(outPath, []byte(javaSource), 0o644); err != nil {
			return generated, fmt.Errorf("write %s: %w", outPath, err)
		}
		generated++
	}
	return generated, nil
}
