package langgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.lang")
	content := "# comment\n\n// also a comment\nhud.title=Hello\nserver.already.prefixed=World\nno_equals_sign\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	keys, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"server.hud.title", "server.already.prefixed"}, keys)
}

func TestClassName_WellKnownFiles(t *testing.T) {
	assert.Equal(t, "ServerLang", ClassName("server.lang", false, ""))
	assert.Equal(t, "ServerLang", ClassName("nested/mbround18_custom.lang", false, ""))
}

func TestClassName_Override(t *testing.T) {
	assert.Equal(t, "ServerLang", ClassName("whatever.lang", true, ""))
	assert.Equal(t, "CustomLang", ClassName("whatever.lang", true, "CustomLang"))
}

func TestClassName_DerivedFromPath(t *testing.T) {
	// class_name_from_rel_path("hud.lang") => "HudLangUi"; the trailing
	// "Ui" is stripped before "Lang" is appended, yielding "HudLangLang".
	assert.Equal(t, "HudLangLang", ClassName("hud.lang", false, ""))
}

func TestClass_SortedFields(t *testing.T) {
	got := Class("com.example.lang", "ServerLang", []string{"server.hud.title", "server.hud.body"})
	assert.Contains(t, got, "import com.hypixel.hytale.server.core.Message;")
	assert.Contains(t, got, `public static final Message hudTitle = Message.translation("server.hud.title");`)
	assert.Contains(t, got, `public static final Message hudBody = Message.translation("server.hud.body");`)
	assert.Less(t, strings.Index(got, "hudBody ="), strings.Index(got, "hudTitle ="))
}
