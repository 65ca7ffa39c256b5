package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/tmapi"
)

// unitColumns are shown first, in this order, when a page of units has them.
var unitColumns = []string{"id", "context", "source", "target", "state"}

// Write formats data to w using the named format.
func Write(w io.Writer, format Format, data any) error {
	return NewFormatter(format).Format(w, data)
}

// RecordToTableData converts a record into table rows. A record holding a
// "results" array of objects (a list page) becomes one row per result;
// any other record becomes a Property/Value table.
func RecordToTableData(data any) (Data, bool) {
	var record map[string]any
	switch v := data.(type) {
	case tmapi.Record:
		record = v
	case map[string]any:
		record = v
	default:
		return Data{}, false
	}

	if results, ok := record["results"].([]any); ok {
		if rows, ok := resultsToTableData(results); ok {
			return rows, true
		}
	}

	keys := sortedKeys(record)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{title(k), cell(record[k])})
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}, true
}

func resultsToTableData(results []any) (Data, bool) {
	units := make([]map[string]any, 0, len(results))
	for _, r := range results {
		unit, ok := r.(map[string]any)
		if !ok {
			return Data{}, false
		}
		units = append(units, unit)
	}

	columns := pickColumns(units)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = title(c)
	}

	rows := make([][]string, 0, len(units))
	for _, unit := range units {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = cell(unit[c])
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}, true
}

// pickColumns prefers the well-known unit fields and falls back to the
// keys of the first unit.
func pickColumns(units []map[string]any) []string {
	var columns []string
	for _, c := range unitColumns {
		for _, u := range units {
			if _, ok := u[c]; ok {
				columns = append(columns, c)
				break
			}
		}
	}
	if len(columns) == 0 && len(units) > 0 {
		columns = sortedKeys(units[0])
	}
	return columns
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func title(key string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(key, "_", " "))
}

// cell renders a value on one line: string lists are joined, objects are compact JSON.
func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		return val
	case float64:
		return fmt.Sprintf("%v", val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return compactJSON(val)
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " | ")
	case map[string]any:
		return compactJSON(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
