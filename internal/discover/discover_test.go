package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestUIFiles_WalksUIRoot(t *testing.T) {
	dir := t.TempDir()
	uiRoot := filepath.Join(dir, "ui")
	writeFile(t, filepath.Join(uiRoot, "Demo.ui"), "Group {}")
	writeFile(t, filepath.Join(uiRoot, "hud", "Health.ui"), "Group {}")
	writeFile(t, filepath.Join(uiRoot, "notes.txt"), "ignore me")

	got, err := UIFiles(uiRoot, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Contains(t, got[0]+got[1], "Demo.ui")
	assert.Contains(t, got[0]+got[1], "Health.ui")
}

func TestJavaUIReferences(t *testing.T) {
	dir := t.TempDir()
	javaRoot := filepath.Join(dir, "java")
	writeFile(t, filepath.Join(javaRoot, "Screen.java"), `
public class Screen {
  static final String PATH = "Common/UI/Custom/hud/Health.ui";
  static final String OTHER = "UI/Custom/Menu.ui";
}
`)
	refs, err := JavaUIReferences(javaRoot)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Common/UI/Custom/hud/Health.ui", "UI/Custom/Menu.ui"}, refs)
}

func TestResolveUIRef(t *testing.T) {
	assert.Equal(t, filepath.Join("/ui", "hud", "Health.ui"), ResolveUIRef("/ui", "Common/UI/Custom/hud/Health.ui"))
	assert.Equal(t, filepath.Join("/ui", "Menu.ui"), ResolveUIRef("/ui", "UI/Custom/Menu.ui"))
	assert.Equal(t, filepath.Join("/ui", "Other/Thing.ui"), ResolveUIRef("/ui", "Other/Thing.ui"))
}

func TestUIFiles_IncludesResolvedJavaRefs(t *testing.T) {
	dir := t.TempDir()
	uiRoot := filepath.Join(dir, "ui")
	javaRoot := filepath.Join(dir, "java")
	writeFile(t, filepath.Join(uiRoot, "hud", "Health.ui"), "Group {}")
	writeFile(t, filepath.Join(javaRoot, "Screen.java"), `"Common/UI/Custom/hud/Health.ui"`)

	got, err := UIFiles(uiRoot, javaRoot)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "Health.ui")
}

func TestLangFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "server.lang"), "hud.title=Hi\n")
	writeFile(t, filepath.Join(dir, "nested", "menu.lang"), "menu.start=Go\n")

	got, err := LangFiles(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
}
