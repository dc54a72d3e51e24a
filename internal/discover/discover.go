// Package discover finds the .ui files a build should process, either by
// walking a UI root directory or, additionally, by scanning Java source
// for string-literal .ui path references.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var uiRefPattern = regexp.MustCompile(`"([^"]+\.ui)"`)

// UIFiles returns every ".ui" file under uiRoot, sorted, plus every
// resolvable .ui reference discovered under javaRoot (when non-empty) by
// ResolveUIRef. Both sets are unioned and de-duplicated.
func UIFiles(uiRoot, javaRoot string) ([]string, error) {
	seen := make(map[string]bool)

	if javaRoot != "" {
		refs, err := JavaUIReferences(javaRoot)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			path := ResolveUIRef(uiRoot, ref)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				seen[path] = true
			}
		}
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(filepath.ToSlash(uiRoot), "**/*.ui"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", uiRoot, err)
	}
	for _, m := range matches {
		seen[m] = true
	}

	out := make([]string, 0, len(seen))
	for path := range seen {
		out = append(out, path)
	}
	sort.Strings(out)
	return out, nil
}

// LangFiles returns every ".lang" file under langRoot, sorted.
func LangFiles(langRoot string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(filepath.ToSlash(langRoot), "**/*.lang"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", langRoot, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// JavaUIReferences scans every ".java" file under javaRoot for
// double-quoted string literals ending in ".ui" and returns the distinct
// set found, with backslashes normalized to forward slashes.
func JavaUIReferences(javaRoot string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(filepath.ToSlash(javaRoot), "**/*.java"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", javaRoot, err)
	}

	seen := make(map[string]bool)
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for _, m := range uiRefPattern.FindAllStringSubmatch(string(content), -1) {
			seen[strings.ReplaceAll(m[1], `\`, "/")] = true
		}
	}

	out := make([]string, 0, len(seen))
	for ref := range seen {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out, nil
}

// ResolveUIRef maps a .ui string literal found in Java source onto a
// concrete path under uiRoot. References rooted at the game's own
// "Common/UI/Custom/" or "UI/Custom/" asset-path prefixes are treated as
// relative to uiRoot from that point on; anything else is joined to
// uiRoot verbatim.
func ResolveUIRef(uiRoot, ref string) string {
	const withCommon = "Common/UI/Custom/"
	const withoutCommon = "UI/Custom/"

	rel := ref
	if idx := strings.Index(ref, withCommon); idx >= 0 {
		rel = ref[idx+len(withCommon):]
	} else if idx := strings.Index(ref, withoutCommon); idx >= 0 {
		rel = ref[idx+len(withoutCommon):]
	}
	return filepath.Join(uiRoot, filepath.FromSlash(rel))
}
