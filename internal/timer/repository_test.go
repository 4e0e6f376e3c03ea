package timer

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/voxtime/voxtime-core/internal/lang"
)

// openTestDB creates an in-memory database with the post-migration schema.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `CREATE TABLE timers (
		id TEXT PRIMARY KEY,
		class TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		name TEXT,
		expires_at TEXT NOT NULL,
		original_expires_at TEXT NOT NULL,
		pre_expire_warning INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'inactive',
		language TEXT NOT NULL DEFAULT 'en',
		use_24_hour INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		extra_info TEXT,
		UNIQUE (entity_id, expires_at)
	)`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func sampleTimer(id string) *Timer {
	expires := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	return &Timer{
		ID:                id,
		Class:             ClassTimer,
		EntityID:          "satellite.kitchen",
		Name:              "laundry",
		ExpiresAt:         expires,
		OriginalExpiresAt: expires,
		PreExpireWarning:  30,
		Status:            StatusRunning,
		Language:          lang.CodeEN,
		Use24Hour:         true,
		CreatedAt:         expires.Add(-10 * time.Minute),
		UpdatedAt:         expires.Add(-10 * time.Minute),
		ExtraInfo:         map[string]any{"kind": "interval"},
	}
}

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	ctx := context.Background()

	want := sampleTimer("t1")
	if err := repo.Create(ctx, want); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != want.Name || got.Class != want.Class || got.EntityID != want.EntityID {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Errorf("expires_at = %v, want %v", got.ExpiresAt, want.ExpiresAt)
	}
	if got.PreExpireWarning != 30 || got.Status != StatusRunning {
		t.Errorf("got %+v", got)
	}
	if !got.Use24Hour {
		t.Error("use_24_hour not round-tripped")
	}
	if kind, _ := got.ExtraInfo["kind"].(string); kind != "interval" {
		t.Errorf("extra_info = %v", got.ExtraInfo)
	}

	got.Status = StatusExpired
	got.UpdatedAt = got.UpdatedAt.Add(time.Minute)
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := repo.GetByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if again.Status != StatusExpired {
		t.Errorf("status after update = %q", again.Status)
	}

	if err := repo.Delete(ctx, "t1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
	// Deleting again is a no-op.
	if err := repo.Delete(ctx, "t1"); err != nil {
		t.Errorf("repeat Delete: %v", err)
	}
}

func TestSQLiteRepositoryDuplicate(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, sampleTimer("t1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, sampleTimer("t2"))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Create duplicate = %v, want ErrDuplicate", err)
	}
}

func TestSQLiteRepositoryUpdateMissing(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	err := repo.Update(context.Background(), sampleTimer("ghost"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestSQLiteRepositoryList(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	a := sampleTimer("a")
	b := sampleTimer("b")
	b.EntityID = "satellite.bedroom"
	for _, tm := range []*Timer{b, a} {
		if err := repo.Create(ctx, tm); err != nil {
			t.Fatalf("Create %s: %v", tm.ID, err)
		}
	}

	// A corrupt row must not block the load.
	_, err := db.Exec(`INSERT INTO timers (id, class, entity_id, expires_at,
		original_expires_at, status, language, created_at, updated_at)
		VALUES ('bad', 'timer', 'satellite.attic', 'garbage', 'garbage',
		'running', 'en', 'garbage', 'garbage')`)
	if err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List = %d timers, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("List order = %s, %s; want a, b", got[0].ID, got[1].ID)
	}
}

func TestSQLiteRepositoryLegacyDeviceID(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteRepository(db)

	// Rows written before the owner-column rename kept the satellite
	// reference in the payload with an empty owner column.
	_, err := db.Exec(`INSERT INTO timers (id, class, entity_id, expires_at,
		original_expires_at, status, language, created_at, updated_at, extra_info)
		VALUES ('legacy', 'alarm', '', '2026-03-04T15:00:00Z',
		'2026-03-04T15:00:00Z', 'running', 'en', '2026-03-04T14:00:00Z',
		'2026-03-04T14:00:00Z', '{"device_id":"satellite.hall"}')`)
	if err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}

	got, err := repo.GetByID(context.Background(), "legacy")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.EntityID != "satellite.hall" {
		t.Errorf("entity_id = %q, want satellite.hall", got.EntityID)
	}
	if _, still := got.ExtraInfo["device_id"]; still {
		t.Error("legacy device_id key not removed from extra_info")
	}
}
