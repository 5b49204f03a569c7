package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "creates new database",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "visitors.db")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "visitors.db")
			},
		},
		{
			name: "opens existing database",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "visitors.db")
				d, err := Open(path)
				if err != nil {
					t.Fatalf("setup: %v", err)
				}
				if err := d.Close(); err != nil {
					t.Fatalf("setup close: %v", err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			d, err := Open(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() {
				if err := d.Close(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Error("database file was not created")
			}
		})
	}
}

func TestWALMode(t *testing.T) {
	d := openTestDB(t)

	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestForeignKeys(t *testing.T) {
	d := openTestDB(t)

	var fk int
	if err := d.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestMigrations(t *testing.T) {
	tests := []struct {
		name  string
		table string
		cols  []string
	}{
		{
			name:  "hosts table exists",
			table: "hosts",
			cols:  []string{"id", "title", "email", "created_at", "department"},
		},
		{
			name:  "visitors table exists",
			table: "visitors",
			cols:  []string{"id", "name", "email", "contact_number", "purpose", "department", "host_id", "visit_date", "in_time", "out_time", "status", "created_at"},
		},
	}

	d := openTestDB(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := tableColumns(t, d, tt.table)
			if len(cols) != len(tt.cols) {
				t.Fatalf("got %d columns, want %d: %v", len(cols), len(tt.cols), cols)
			}
			for i, want := range tt.cols {
				if cols[i] != want {
					t.Errorf("column %d = %q, want %q", i, cols[i], want)
				}
			}
		})
	}
}

func TestStatusDefaultsToPending(t *testing.T) {
	d := openTestDB(t)

	res, err := d.Exec(
		`INSERT INTO visitors (name, contact_number, purpose, department) VALUES (?, ?, ?, ?)`,
		"Ada", "555-0100", "Interview", "IT",
	)
	if err != nil {
		t.Fatalf("insert visitor: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	var status string
	if err := d.QueryRow(`SELECT status FROM visitors WHERE id = ?`, id).Scan(&status); err != nil {
		t.Fatalf("select status: %v", err)
	}
	if status != "Pending" {
		t.Errorf("status = %q, want %q", status, "Pending")
	}
}

func TestHostDeleteClearsReference(t *testing.T) {
	d := openTestDB(t)

	res, err := d.Exec(`INSERT INTO hosts (title, email) VALUES (?, ?)`, "Grace Hopper", "grace@example.com")
	if err != nil {
		t.Fatalf("insert host: %v", err)
	}
	hostID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	if _, err := d.Exec(
		`INSERT INTO visitors (name, contact_number, purpose, department, host_id) VALUES (?, ?, ?, ?, ?)`,
		"Ada", "555-0100", "Interview", "IT", hostID,
	); err != nil {
		t.Fatalf("insert visitor: %v", err)
	}

	if _, err := d.Exec(`DELETE FROM hosts WHERE id = ?`, hostID); err != nil {
		t.Fatalf("delete host: %v", err)
	}

	var count int
	if err := d.QueryRow(`SELECT COUNT(*) FROM visitors WHERE host_id IS NULL`).Scan(&count); err != nil {
		t.Fatalf("count visitors: %v", err)
	}
	if count != 1 {
		t.Errorf("expected visitor to survive with NULL host, got %d rows", count)
	}
}

func TestUnknownHostRejected(t *testing.T) {
	d := openTestDB(t)

	_, err := d.Exec(
		`INSERT INTO visitors (name, contact_number, purpose, department, host_id) VALUES (?, ?, ?, ?, ?)`,
		"Ada", "555-0100", "Interview", "IT", 9999,
	)
	if err == nil {
		t.Error("expected foreign key error, got nil")
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visitors.db")

	// Open twice; migrations should not fail on second run
	d1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := d1.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	d2, err := Open(path)
	if err != nil {
		t.Fatalf("second open (idempotency): %v", err)
	}
	if err := d2.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(p) != "visitors.db" {
		t.Errorf("expected filename houses.db, got %s", filepath.Base(p))
	}

	dir := filepath.Base(filepath.Dir(p))
	if dir != "vms" {
		t.Errorf("expected directory vms, got %s", dir)
	}
}

// openTestDB creates a temporary database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visitors.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return d
}

// tableColumns returns column names for a table using PRAGMA table_info.
func tableColumns(t *testing.T, d *sql.DB, table string) []string {
	t.Helper()
	rows, err := d.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		t.Fatalf("pragma table_info(%s): %v", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			t.Errorf("close rows: %v", err)
		}
	}()

	var cols []string
	for rows.Next() {
		var cid int
		var name, typ string
		var notnull int
		var dflt *string
		var pk int
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols = append(cols, name)
	}
	return cols
}
