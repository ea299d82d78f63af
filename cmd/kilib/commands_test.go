package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kilib/pkg/kipaths"
)

// runCommand executes the root command with the given args and returns the
// combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolate points every configuration source at temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	prefs := t.TempDir()
	t.Setenv(kipaths.EnvPrefsDir, prefs)
	return prefs
}

func TestResolveCommand(t *testing.T) {
	isolate(t)

	out, err := runCommand(t, "resolve", "file:///a/b%20c")
	require.NoError(t, err)
	assert.Equal(t, "/a/b c\n", out)
}

func TestResolveCommandEmptyURI(t *testing.T) {
	isolate(t)

	_, err := runCommand(t, "resolve", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a uri")
}

func TestLibsCommandYAML(t *testing.T) {
	prefs := isolate(t)

	table := `(sym_lib_table
	  (version 9)
	  (lib (name "Device")(type "KiCad")(uri "/tmp/device.kicad_sym"))
	)`
	require.NoError(t, os.WriteFile(filepath.Join(prefs, kipaths.SymbolTableFile), []byte(table), 0644))

	out, err := runCommand(t, "libs", "--type", "symbol", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "symbol:")
	assert.Contains(t, out, "name: Device")

	// Reset flags for other tests.
	libsType = ""
	libsFormat = "text"
}

func TestConfigCommand(t *testing.T) {
	isolate(t)

	out, err := runCommand(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[kicad]")
	assert.Contains(t, out, "version = '9.0'")
}

func TestImportCommandEndToEnd(t *testing.T) {
	prefs := isolate(t)
	workDir := t.TempDir()

	dest := filepath.Join(workDir, "custom.kicad_sym")
	table := `(sym_lib_table
	  (lib (name "Custom")(type "KiCad")(uri "` + dest + `"))
	)`
	require.NoError(t, os.WriteFile(filepath.Join(prefs, kipaths.SymbolTableFile), []byte(table), 0644))

	source := filepath.Join(workDir, "incoming.kicad_sym")
	lib := `(kicad_symbol_lib
	  (version 20211014)
	  (symbol "A" (property "Reference" "A1"))
	)`
	require.NoError(t, os.WriteFile(source, []byte(lib), 0644))

	out, err := runCommand(t, "import", source, "--library", "Custom")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 1 symbol")
	assert.FileExists(t, dest)
}

func TestImportCommandUnknownLibrary(t *testing.T) {
	prefs := isolate(t)

	table := `(sym_lib_table (lib (name "Device")(uri "/tmp/d.kicad_sym")))`
	require.NoError(t, os.WriteFile(filepath.Join(prefs, kipaths.SymbolTableFile), []byte(table), 0644))

	source := filepath.Join(t.TempDir(), "incoming.kicad_sym")
	require.NoError(t, os.WriteFile(source, []byte(`(kicad_symbol_lib (symbol "A" (pin 1)))`), 0644))

	_, err := runCommand(t, "import", source, "--library", "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available symbol libraries: Device")
}
