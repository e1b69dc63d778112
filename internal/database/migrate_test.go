package database

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestMigrate_Success(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("querying migrations: %v", err)
	}
	want, err := migrationFileCount()
	if err != nil {
		t.Fatalf("counting migration files: %v", err)
	}

	if count != want {
		t.Errorf("expected %d migrations, got %d", want, count)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("first migration: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("second migration should not fail: %v", err)
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	want, err := migrationFileCount()
	if err != nil {
		t.Fatalf("counting migration files: %v", err)
	}
	if count != want {
		t.Errorf("expected %d migrations after double run, got %d", want, count)
	}
}

func migrationFileCount() (int, error) {
	_, thisFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(thisFile), "migrations")
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return 0, err
	}
	want := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			want++
		}
	}
	return want, nil
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	expectedTables := []string{"users", "api_tokens", "pantry_items", "shopping_list_items", "cooked_meals"}
	for _, table := range expectedTables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table '%s' not found: %v", table, err)
		}
	}
}

func TestMigrate_BarcodeUniquePerUser(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	_, err = db.Exec(
		`INSERT INTO users (id, oidc_subject, email, name, role, created_at, updated_at)
		VALUES ('u1', 'sub1', 'a@b.c', 'A', 'admin', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
	)
	if err != nil {
		t.Fatalf("inserting user: %v", err)
	}

	insert := `INSERT INTO pantry_items
		(id, user_id, canonical_name, display_name, quantity, unit, location, barcode, created_at, updated_at)
		VALUES (?, 'u1', 'milk', 'Milk', 1, 'l', 'fridge', ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`

	if _, err := db.Exec(insert, "p1", "4006381333931"); err != nil {
		t.Fatalf("inserting first item: %v", err)
	}
	if _, err := db.Exec(insert, "p2", "4006381333931"); err == nil {
		t.Error("expected unique constraint violation for duplicate barcode")
	}
	// NULL barcodes are exempt from the unique index
	if _, err := db.Exec(insert, "p3", nil); err != nil {
		t.Fatalf("inserting item without barcode: %v", err)
	}
	if _, err := db.Exec(insert, "p4", nil); err != nil {
		t.Fatalf("inserting second item without barcode: %v", err)
	}
}
