package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationFS embed.FS

const migrationTable = "schema_migrations"

// Migrate applies migrations/<driver>/*.sql in lexical order, each at most
// once. Applied file names are recorded in schema_migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	driver := db.DriverName()
	root := path.Join("migrations", driver)

	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.ExecContext(ctx, createTableSQL(driver)); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		applied, err := isApplied(ctx, db, file)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied {
			continue
		}
		content, err := fs.ReadFile(migrationFS, path.Join(root, file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if err := apply(ctx, db, file, string(content)); err != nil {
			return err
		}
	}
	return nil
}

func apply(ctx context.Context, db *sqlx.DB, name, content string) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	// the MySQL driver rejects multi-statement Exec unless multiStatements is set
	for _, stmt := range SplitStatements(content) {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
	}
	q := tx.Rebind("INSERT INTO " + migrationTable + " (name, applied_at) VALUES (?, ?)")
	if _, err = tx.ExecContext(ctx, q, name, time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	return nil
}

// SplitStatements splits a migration file on semicolons, dropping comment
// lines and empty statements.
func SplitStatements(content string) []string {
	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	var out []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func createTableSQL(driver string) string {
	nameType := "TEXT"
	if driver == DriverMySQL {
		nameType = "VARCHAR(255)"
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    name %s PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`, migrationTable, nameType)
}

func isApplied(ctx context.Context, db *sqlx.DB, name string) (bool, error) {
	var n int
	q := db.Rebind("SELECT COUNT(*) FROM " + migrationTable + " WHERE name = ?")
	if err := db.GetContext(ctx, &n, q, name); err != nil {
		return false, err
	}
	return n > 0, nil
}
