// Package payload reads unit data for update and replace commands from
// repeated --set flags and JSON or YAML files.
package payload

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"

	"github.com/agentstation/tmapi"
	"github.com/agentstation/tmapi/pkg/errors"
)

// Flags holds the unit data flags of a command.
type Flags struct {
	Set  []string
	File string
}

// AddFlags registers the data flags on fs.
func AddFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringArrayVar(&f.Set, "set", nil, "set a field as key=value; value is parsed as JSON when possible (repeatable)")
	fs.StringVar(&f.File, "file", "", "read unit data from a .json, .yaml or .yml file (- for YAML on stdin)")
}

// Empty reports whether no data flag was given.
func (f *Flags) Empty() bool {
	return len(f.Set) == 0 && f.File == ""
}

// Record builds the unit data. File contents are loaded first and --set
// values are applied on top. stdin is read when the file is "-".
func (f *Flags) Record(stdin io.Reader) (tmapi.Record, error) {
	if f.Empty() {
		return nil, errors.NewValidationError("data", nil, "no unit data given, use --set or --file")
	}

	rec := tmapi.Record{}
	if f.File != "" {
		loaded, err := ReadFile(f.File, stdin)
		if err != nil {
			return nil, err
		}
		rec = loaded
	}

	for _, kv := range f.Set {
		key, value, err := ParseAssignment(kv)
		if err != nil {
			return nil, err
		}
		rec[key] = value
	}
	return rec, nil
}

// ParseAssignment splits key=value. The value is decoded as a JSON literal
// and kept as a plain string when it is not valid JSON.
func ParseAssignment(kv string) (string, any, error) {
	key, raw, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, errors.NewValidationError("set", kv, "expected key=value")
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return key, raw, nil
	}
	return key, value, nil
}

// ReadFile loads a unit record from path. The format follows the file
// extension; "-" reads YAML (a superset of JSON) from stdin.
func ReadFile(path string, stdin io.Reader) (tmapi.Record, error) {
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.WrapIO("read", "stdin", err)
		}
		return decodeYAML(data, "stdin")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, errors.NewValidationError("file", path, "unsupported extension, use .json, .yaml or .yml")
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	if ext == ".json" {
		return decodeJSON(data, path)
	}
	return decodeYAML(data, path)
}

func decodeJSON(data []byte, source string) (tmapi.Record, error) {
	var rec tmapi.Record
	if err := json.Unmarshal(bytes.TrimSpace(data), &rec); err != nil {
		return nil, errors.WrapParse("json", source, err)
	}
	if rec == nil {
		return nil, errors.NewParseError("json", source, "unit data must be an object", nil)
	}
	return rec, nil
}

func decodeYAML(data []byte, source string) (tmapi.Record, error) {
	var rec tmapi.Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, errors.WrapParse("yaml", source, err)
	}
	if rec == nil {
		return nil, errors.NewParseError("yaml", source, "unit data must be a mapping", nil)
	}
	return rec, nil
}
