package loader

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// candidate table names, in preference order.
var sqliteTables = []string{"games", "apps", "catalog", "dataset"}

// LoadSQLite reads a SQLite dataset. It picks the first known table name
// present in the file, falling back to the first user table, and reads
// every column as text.
func LoadSQLite(path string) ([]Row, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer db.Close()

	table, err := pickTable(db)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	var out []Row
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", len(out)+1, err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if vals[i].Valid {
				row[col] = vals[i].String
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func pickTable(db *sql.DB) (string, error) {
	rows, err := db.Query(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return "", fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("dataset has no tables")
	}
	for _, want := range sqliteTables {
		for _, name := range names {
			if strings.EqualFold(name, want) {
				return name, nil
			}
		}
	}
	return names[0], nil
}
