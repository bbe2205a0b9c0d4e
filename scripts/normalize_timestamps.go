//go:build ignore

// One-off fixup: early builds wrote created_at/analysed_at as RFC3339
// strings. Month bucketing and the purge cutoff compare timestamps as text
// in the "2006-01-02 15:04:05" form CURRENT_TIMESTAMP emits, so mixed-format
// rows sort and bucket wrong. This rewrites any RFC3339 values in place.
//
// Usage: go run scripts/normalize_timestamps.go [-db path] [-dry-run]
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const canonical = "2006-01-02 15:04:05"

func main() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot resolve home directory: %v\n", err)
		os.Exit(1)
	}

	dbPath := flag.String("db", filepath.Join(home, ".pawlog", "pawlog.db"), "database file")
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	db, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	total := 0
	for _, t := range []struct{ table, column string }{
		{"poo_logs", "created_at"},
		{"ai_analysis", "analysed_at"},
		{"dog_profile", "created_at"},
		{"dog_profile", "updated_at"},
	} {
		n, err := normalize(db, t.table, t.column, *dryRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s.%s: %v\n", t.table, t.column, err)
			os.Exit(1)
		}
		if n > 0 {
			fmt.Printf("%s.%s: %d rows\n", t.table, t.column, n)
		}
		total += n
	}

	if *dryRun {
		fmt.Printf("dry run: %d rows would be rewritten\n", total)
		return
	}
	fmt.Printf("✓ Rewrote %d timestamps\n", total)
}

func normalize(db *sql.DB, table, column string, dryRun bool) (int, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT rowid, %s FROM %s WHERE %s LIKE '%%T%%'", column, table, column))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	type fix struct {
		rowid int64
		value string
	}
	var fixes []fix
	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return 0, err
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			// Not RFC3339 after all; leave it alone.
			continue
		}
		fixes = append(fixes, fix{id, parsed.UTC().Format(canonical)})
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if dryRun {
		return len(fixes), nil
	}
	for _, f := range fixes {
		if _, err := db.Exec(fmt.Sprintf("UPDATE %s SET %s = ? WHERE rowid = ?", table, column), f.value, f.rowid); err != nil {
			return 0, err
		}
	}
	return len(fixes), nil
}
