package loader

import (
	"fmt"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
)

// LoadJSON reads a JSON dataset: either an array of objects or an object
// keyed by record id. Values are stringified so the same coercion path
// handles every format.
func LoadJSON(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}

	var arr []map[string]any
	if err := json.Unmarshal(data, &arr); err == nil {
		rows := make([]Row, 0, len(arr))
		for _, obj := range arr {
			rows = append(rows, rowFromObject(obj))
		}
		return rows, nil
	}

	var byID map[string]map[string]any
	if err := json.Unmarshal(data, &byID); err != nil {
		return nil, fmt.Errorf("parsing json dataset: %w", err)
	}
	rows := make([]Row, 0, len(byID))
	for id, obj := range byID {
		row := rowFromObject(obj)
		if _, ok := row.lookup("id"); !ok {
			row["app_id"] = id
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func rowFromObject(obj map[string]any) Row {
	row := make(Row, len(obj))
	for k, v := range obj {
		row[k] = stringify(v)
	}
	return row
}

// stringify flattens a JSON value to the text form the row coercers expect.
// Arrays become comma lists so list fields parse the same as in CSV.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case []any:
		s := ""
		for i, e := range t {
			if i > 0 {
				s += ", "
			}
			s += stringify(e)
		}
		return s
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
