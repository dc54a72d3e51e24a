// Package javagen generates a companion Java class holding one string
// field per mangled element id, named by lower-camel-casing the id, with
// collisions disambiguated by a numeric suffix and a trailing underscore
// forced onto Java reserved words.
package javagen

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mbround18/hytale-ui-mangle/internal/expander"
)

// IDEntry is the (mangled id, element type name) pair the expander's
// mangling pass produces.
type IDEntry = expander.IDEntry

// ClassNameFromRelPath derives a companion class name from a .ui file's
// path relative to the UI root, title-casing every alphanumeric run
// across every path component and appending "Ui".
func ClassNameFromRelPath(rel string) string {
	var parts []string
	for _, component := range splitPathComponents(rel) {
		component = strings.TrimSuffix(component, ".ui")
		for _, chunk := range splitNonAlphanumeric(component) {
			if chunk == "" {
				continue
			}
			parts = append(parts, titleCaseASCII(chunk))
		}
	}
	if len(parts) == 0 {
		return "Ui"
	}
	name := strings.Join(parts, "")
	if isDigit(name[0]) {
		name = "Ui" + name
	}
	return name + "Ui"
}

// PathToSlashString renders a relative path using '/' regardless of OS
// path separator, for embedding as the companion class's UI_PATH field.
func PathToSlashString(rel string) string {
	return filepath.ToSlash(rel)
}

// PackageToPath converts a dotted Java package name to a directory path.
func PackageToPath(pkg string) string {
	return filepath.Join(strings.Split(pkg, ".")...)
}

// Class generates the companion Java class source for one .ui file's
// mangled id table. ids pairs each mangled id with its element type name;
// the "Label" type gets a ".TextSpans" value suffix.
func Class(pkg, className, uiPath string, ids []IDEntry) string {
	fields := fieldsFromIDs(ids, func(id, typeName string) string {
		value := "#" + id
		if typeName == "Label" {
			value += ".TextSpans"
		}
		return value
	})

	var out strings.Builder
	fmt.Fprintf(&out, "package %s;\n\n", pkg)
	fmt.Fprintf(&out, "public final class %s {\n", className)
	fmt.Fprintf(&out, "  public static final String UI_PATH = \"%s\";\n\n", uiPath)
	for _, f := range fields {
		fmt.Fprintf(&out, "  public final String %s = \"%s\";\n", f.name, f.value)
	}
	out.WriteString("}\n")
	return out.String()
}

type field struct {
	name  string
	value string
}

// fieldsFromIDs builds the sorted, collision-disambiguated field list
// for Class.
func fieldsFromIDs(ids []IDEntry, valueFor func(id, typeName string) string) []field {
	used := make(map[string]bool, len(ids))
	fields := make([]field, 0, len(ids))
	for _, e := range ids {
		name := FieldNameFromID(e.MangledID)
		name = disambiguate(name, used)
		used[name] = true
		fields = append(fields, field{name: name, value: valueFor(e.MangledID, e.TypeName)})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].name < fields[j].name })
	return fields
}

func disambiguate(name string, used map[string]bool) string {
	if !used[name] {
		return name
	}
	i := 2
	for used[name+strconv.Itoa(i)] {
		i++
	}
	return name + strconv.Itoa(i)
}

// FieldNameFromID lower-camel-cases a mangled id into a Java field name,
// forcing a trailing underscore if the result collides with a Java
// reserved word.
func FieldNameFromID(id string) string {
	name := lowerCamelJoin(splitNonAlphanumeric(id))
	if name == "" {
		name = "id"
	}
	if isDigit(name[0]) {
		name = "id" + name
	}
	if javaKeywords[name] {
		name += "_"
	}
	return name
}

// lowerCamelJoin joins parts the way field_name_from_id does: lowercase
// the first letter of the first part, uppercase the first letter of every
// later part, and otherwise leave each part's remaining characters as-is.
func lowerCamelJoin(parts []string) string {
	var out strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			out.WriteString(strings.ToLower(part[:1]) + part[1:])
		} else {
			out.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}
	return out.String()
}

func splitPathComponents(rel string) []string {
	rel = filepath.ToSlash(rel)
	return strings.Split(rel, "/")
}

func splitNonAlphanumeric(s string) []string {
	var parts []string
	var current strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlphanumericASCII(c) {
			current.WriteByte(c)
		} else if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func titleCaseASCII(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlphanumericASCII(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
}

// CommonAliasPath returns the relative path (as a sequence of "../") from
// a .ui file at relToUIRoot back to a shared Common.ui file at the UI
// root, used to auto-inject a "$C" import when a file references it
// without declaring it.
func CommonAliasPath(relToUIRoot string) string {
	dir := filepath.Dir(filepath.ToSlash(relToUIRoot))
	if dir == "." || dir == "" {
		return "Common.ui"
	}
	depth := len(strings.Split(dir, "/"))
	return strings.Repeat("../", depth) + "Common.ui"
}
