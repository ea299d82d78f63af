package libtable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/kilib/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `(sym_lib_table
  (version 9)
  (lib (name "Device")(type "KiCad")(uri "${KICAD9_SYMBOL_DIR}/Device.kicad_sym")(options "")(descr "Passives"))
  (lib (name "Custom")(type "KiCad")(uri "~/kicad/custom.kicad_sym"))
)`

func TestRead(t *testing.T) {
	records, err := Read(sampleTable)
	require.NoError(t, err)
	require.Len(t, records, 2)

	device := records[0]
	assert.Equal(t, "Device", device.Name())
	assert.Equal(t, "KiCad", device.Type())
	assert.Equal(t, "${KICAD9_SYMBOL_DIR}/Device.kicad_sym", device.URI())
	assert.Equal(t, "Passives", device.Descr())
	assert.Equal(t, "", device.Options())

	assert.Equal(t, "Custom", records[1].Name())
}

func TestReadSkipsMalformedEntries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
	}{
		{
			name: "non-pair children ignored",
			input: `(sym_lib_table
			  (lib (name "Good")(uri "/tmp/a.kicad_sym") orphan (three a b c))
			)`,
			count: 1,
		},
		{
			name: "record with zero pairs discarded",
			input: `(sym_lib_table
			  (lib)
			  (lib (name "Kept")(uri "/tmp/b.kicad_sym"))
			)`,
			count: 1,
		},
		{
			name:  "non-lib nodes ignored",
			input: `(sym_lib_table (version 9) (generator kilib))`,
			count: 0,
		},
		{
			name:  "atom root yields nothing",
			input: `sym_lib_table`,
			count: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Read(tt.input)
			require.NoError(t, err)
			assert.Len(t, records, tt.count)
		})
	}
}

func TestReadPreservesUnknownKeys(t *testing.T) {
	records, err := Read(`(fp_lib_table (lib (name "X")(uri "/x")(vendor "acme")))`)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "acme", records[0]["vendor"])
}

func TestReadSyntaxError(t *testing.T) {
	_, err := Read("(sym_lib_table (lib (name")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSyntax))
}

func TestReadFileMissing(t *testing.T) {
	records := ReadFile(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Nil(t, records)
}

func TestReadFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sym-lib-table")
	require.NoError(t, os.WriteFile(path, []byte("(((broken"), 0644))

	records := ReadFile(path)
	assert.Nil(t, records)
}

func TestReadFileTolerance(t *testing.T) {
	// One well-formed record next to a malformed entry: exactly one Record.
	path := filepath.Join(t.TempDir(), "sym-lib-table")
	content := `(sym_lib_table
	  (lib (name "Good")(uri "/tmp/good.kicad_sym"))
	  (lib stray-not-a-pair)
	)`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	records := ReadFile(path)
	require.Len(t, records, 1)
	assert.Equal(t, "Good", records[0].Name())
}
