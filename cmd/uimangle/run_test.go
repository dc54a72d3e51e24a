package main

import (
	"bytes"
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

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	uiRoot := filepath.Join(dir, "resources", "ui")
	resourcesRoot := filepath.Join(dir, "resources")
	uiOut := filepath.Join(dir, "out", "ui")
	javaOut := filepath.Join(dir, "out", "java")

	writeFile(t, filepath.Join(uiRoot, "Common.ui"), `
@PanelBg = #222222;
`)
	writeFile(t, filepath.Join(uiRoot, "hud", "Health.ui"), `
Group #Root {
  Background: $C.@PanelBg;
  Label #Title { Text: "Health"; }
}
`)

	var stderr bytes.Buffer
	cfg := Config{
		ResourcesRoot: resourcesRoot,
		UIRoot:        uiRoot,
		UIOut:         uiOut,
		JavaOut:       javaOut,
		JavaPackage:   "com.example.ui",
		Verbose:       true,
	}
	generated, err := Run(cfg, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 1, generated)

	outContent, err := os.ReadFile(filepath.Join(uiOut, "ui", "hud", "Health.ui"))
	require.NoError(t, err)
	assert.Contains(t, string(outContent), `$C = "../Common.ui";`)
	assert.Contains(t, string(outContent), "Background: $C.@PanelBg;")
	assert.Contains(t, string(outContent), "Label #RootTitle")

	javaContent, err := os.ReadFile(filepath.Join(javaOut, "com", "example", "ui", "HudHealthUi.java"))
	require.NoError(t, err)
	assert.Contains(t, string(javaContent), "public final class HudHealthUi {")
	assert.Contains(t, string(javaContent), `rootTitle = "#RootTitle.TextSpans"`)
}

func TestRun_MacroOnlyFilePassesThroughVerbatim(t *testing.T) {
	dir := t.TempDir()
	uiRoot := filepath.Join(dir, "resources", "ui")
	resourcesRoot := filepath.Join(dir, "resources")
	uiOut := filepath.Join(dir, "out", "ui")
	javaOut := filepath.Join(dir, "out", "java")

	macroOnly := "\n@Card = Group {\n  @Value = \"0\";\n};\n"
	writeFile(t, filepath.Join(uiRoot, "Cards.ui"), macroOnly)

	var stderr bytes.Buffer
	cfg := Config{
		ResourcesRoot: resourcesRoot,
		UIRoot:        uiRoot,
		UIOut:         uiOut,
		JavaOut:       javaOut,
		JavaPackage:   "com.example.ui",
	}
	generated, err := Run(cfg, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 0, generated)

	outContent, err := os.ReadFile(filepath.Join(uiOut, "ui", "Cards.ui"))
	require.NoError(t, err)
	assert.Equal(t, macroOnly, string(outContent))

	_, err = os.Stat(filepath.Join(javaOut, "com", "example", "ui", "CardsUi.java"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_NoUIFilesIsAnError(t *testing.T) {
	dir := t.TempDir()
	uiRoot := filepath.Join(dir, "resources", "ui")
	require.NoError(t, os.MkdirAll(uiRoot, 0o755))

	var stderr bytes.Buffer
	cfg := Config{
		ResourcesRoot: filepath.Join(dir, "resources"),
		UIRoot:        uiRoot,
		UIOut:         filepath.Join(dir, "out", "ui"),
		JavaOut:       filepath.Join(dir, "out", "java"),
		JavaPackage:   "com.example.ui",
	}
	_, err := Run(cfg, &stderr)
	assert.Error(t, err)
}

func TestGenerateLangClasses(t *testing.T) {
	dir := t.TempDir()
	langRoot := filepath.Join(dir, "lang")
	javaOut := filepath.Join(dir, "out", "java")
	writeFile(t, filepath.Join(langRoot, "server.lang"), "hud.title=Hi\n")

	cfg := Config{JavaPackage: "com.example.lang", LangRoot: langRoot}
	count, err := generateLangClasses(cfg, javaOut)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	content, err := os.ReadFile(filepath.Join(javaOut, "com", "example", "lang", "ServerLang.java"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `hudTitle = Message.translation("server.hud.title")`)
}
