// Package langgen generates the companion "*Lang" Java class for a
// .lang translation file: one Message constant per translation key,
// with field names lower-camel-cased from the key and numeric collision
// suffixes. Only the path-derived class name is borrowed from javagen.
package langgen

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mbround18/hytale-ui-mangle/internal/javagen"
)

// ParseFile reads a .lang file and returns the fully-qualified
// "server.*" keys it declares, skipping blank lines, '#' and "//"
// comments, and lines without an '=' separator.
func ParseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	var keys []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		if !strings.HasPrefix(key, "server.") {
			key = "server." + key
		}
		keys = append(keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return keys, nil
}

// ClassName picks the companion class name for a .lang file at relPath
// (relative to the lang root, slash-separated). isOverrideMatch is true
// when this file is the one named by the CLI's --lang-class-file flag,
// in which case overrideClassName wins (defaulting to "ServerLang" when
// empty). The well-known server.lang / mbround18_custom.lang base names
// always become "ServerLang"; everything else borrows javagen's
// path-derived class name, strips a trailing "Ui", and appends "Lang".
func ClassName(relPath string, isOverrideMatch bool, overrideClassName string) string {
	if isOverrideMatch {
		if overrideClassName == "" {
			return "ServerLang"
		}
		return overrideClassName
	}
	base := relPath
	if idx := strings.LastIndexByte(relPath, '/'); idx >= 0 {
		base = relPath[idx+1:]
	}
	if base == "server.lang" || base == "mbround18_custom.lang" {
		return "ServerLang"
	}
	name := javagen.ClassNameFromRelPath(relPath)
	name = strings.TrimSuffix(name, "Ui")
	return name + "Lang"
}

// Class generates the companion Java class source for one .lang file's
// translation keys. Field names come from fieldNameFromKey, with
// numeric-suffix collision disambiguation; unlike javagen field names, a
// name that is a Java reserved word gets no trailing underscore.
func Class(pkg, className string, keys []string) string {
	used := make(map[string]bool, len(keys))
	type field struct{ name, key string }
	fields := make([]field, 0, len(keys))
	for _, key := range keys {
		name := fieldNameFromKey(key)
		name = disambiguate(name, used)
		used[name] = true
		fields = append(fields, field{name: name, key: key})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].name < fields[j].name })

	var out strings.Builder
	fmt.Fprintf(&out, "package %s;\n\n", pkg)
	out.WriteString("import com.hypixel.hytale.server.core.Message;\n\n")
	fmt.Fprintf(&out, "public final class %s {\n", className)
	for _, f := range fields {
		fmt.Fprintf(&out, "  public static final Message %s = Message.translation(\"%s\");\n", f.name, f.key)
	}
	out.WriteString("}\n")
	return out.String()
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

// fieldNameFromKey lower-camel-cases a "server.*" translation key into a
// Java field name, ignoring the "server." prefix.
func fieldNameFromKey(key string) string {
	key = strings.TrimPrefix(key, "server.")
	parts := splitNonAlphanumeric(key)
	if len(parts) == 0 {
		return "key"
	}
	var name strings.Builder
	for i, part := range parts {
		if i == 0 {
			name.WriteString(strings.ToLower(part[:1]) + part[1:])
		} else {
			name.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}
	result := name.String()
	if result[0] >= '0' && result[0] <= '9' {
		result = "key" + result
	}
	return result
}

func splitNonAlphanumeric(s string) []string {
	var parts []string
	var current strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
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
