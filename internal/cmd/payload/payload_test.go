package payload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tmapi"
	"github.com/agentstation/tmapi/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in      string
		key     string
		value   any
		wantErr bool
	}{
		{in: "target=hola", key: "target", value: "hola"},
		{in: `target=["hola","adios"]`, key: "target", value: []any{"hola", "adios"}},
		{in: "state=20", key: "state", value: float64(20)},
		{in: "fuzzy=true", key: "fuzzy", value: true},
		{in: "note=", key: "note", value: ""},
		{in: "explanation=a=b", key: "explanation", value: "a=b"},
		{in: "target", wantErr: true},
		{in: "=hola", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			key, value, err := ParseAssignment(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestAddFlags(t *testing.T) {
	var f Flags
	fs := pflag.NewFlagSet("update", pflag.ContinueOnError)
	AddFlags(fs, &f)

	require.NoError(t, fs.Parse([]string{"--set", "target=hola", "--set", "state=20", "--file", "unit.yaml"}))
	assert.Equal(t, []string{"target=hola", "state=20"}, f.Set)
	assert.Equal(t, "unit.yaml", f.File)
	assert.False(t, f.Empty())
}

func TestRecordRequiresData(t *testing.T) {
	var f Flags
	_, err := f.Record(nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestRecordFromJSONFileWithOverrides(t *testing.T) {
	path := writeFile(t, "unit.json", `{"target": ["hola"], "state": 10, "explanation": "greeting"}`)

	f := Flags{File: path, Set: []string{"state=20"}}
	rec, err := f.Record(nil)
	require.NoError(t, err)
	assert.Equal(t, tmapi.Record{
		"target":      []any{"hola"},
		"state":       float64(20),
		"explanation": "greeting",
	}, rec)
}

func TestRecordFromYAMLFile(t *testing.T) {
	path := writeFile(t, "unit.yml", "target:\n  - hola\nexplanation: greeting\n")

	rec, err := ReadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"hola"}, rec["target"])
	assert.Equal(t, "greeting", rec["explanation"])
}

func TestRecordFromStdin(t *testing.T) {
	f := Flags{File: "-"}
	rec, err := f.Record(strings.NewReader(`{"target": "hola"}`))
	require.NoError(t, err)
	assert.Equal(t, "hola", rec["target"])
}

func TestReadFileErrors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := ReadFile(writeFile(t, "unit.txt", "target: hola"), nil)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"), nil)
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("json array", func(t *testing.T) {
		_, err := ReadFile(writeFile(t, "unit.json", `["hola"]`), nil)
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("json null", func(t *testing.T) {
		_, err := ReadFile(writeFile(t, "unit.json", `null`), nil)
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("empty yaml", func(t *testing.T) {
		_, err := ReadFile(writeFile(t, "unit.yaml", ""), nil)
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}
