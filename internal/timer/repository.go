package timer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/voxtime/voxtime-core/internal/lang"
)

// Repository persists timers. The store treats persistence as
// write-through: in-memory state stays authoritative when a repository
// call fails.
type Repository interface {
	Create(ctx context.Context, t *Timer) error
	Update(ctx context.Context, t *Timer) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Timer, error)
	List(ctx context.Context) ([]*Timer, error)
}

// timerColumns is the canonical column list shared by every query.
const timerColumns = `id, class, entity_id, name, expires_at,
	original_expires_at, pre_expire_warning, status, language,
	use_24_hour, created_at, updated_at, extra_info`

// SQLiteRepository is the SQLite-backed Repository.
type SQLiteRepository struct {
	db     *sql.DB
	logger Logger
}

// NewSQLiteRepository creates a repository on an open database handle.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, logger: noopLogger{}}
}

// SetLogger attaches a logger for row-level load diagnostics.
func (r *SQLiteRepository) SetLogger(l Logger) {
	if l != nil {
		r.logger = l
	}
}

// Create inserts a timer. Returns ErrDuplicate when a timer with the same
// owning entity and expiry already exists.
func (r *SQLiteRepository) Create(ctx context.Context, t *Timer) error {
	extra, err := marshalExtra(t.ExtraInfo)
	if err != nil {
		return fmt.Errorf("marshal extra_info: %w", err)
	}

	query := `INSERT INTO timers (` + timerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		string(t.Class),
		t.EntityID,
		nullableString(t.Name),
		t.ExpiresAt.UTC().Format(time.RFC3339),
		t.OriginalExpiresAt.UTC().Format(time.RFC3339),
		t.PreExpireWarning,
		string(t.Status),
		string(t.Language),
		t.Use24Hour,
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.UpdatedAt.UTC().Format(time.RFC3339),
		extra,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert timer: %w", err)
	}
	return nil
}

// Update rewrites a timer's mutable fields.
func (r *SQLiteRepository) Update(ctx context.Context, t *Timer) error {
	extra, err := marshalExtra(t.ExtraInfo)
	if err != nil {
		return fmt.Errorf("marshal extra_info: %w", err)
	}

	query := `UPDATE timers SET
		class = ?, entity_id = ?, name = ?, expires_at = ?,
		original_expires_at = ?, pre_expire_warning = ?, status = ?,
		language = ?, use_24_hour = ?, updated_at = ?, extra_info = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		string(t.Class),
		t.EntityID,
		nullableString(t.Name),
		t.ExpiresAt.UTC().Format(time.RFC3339),
		t.OriginalExpiresAt.UTC().Format(time.RFC3339),
		t.PreExpireWarning,
		string(t.Status),
		string(t.Language),
		t.Use24Hour,
		t.UpdatedAt.UTC().Format(time.RFC3339),
		extra,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update timer: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a timer row. Deleting an absent row is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM timers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete timer: %w", err)
	}
	return nil
}

// GetByID fetches one timer.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Timer, error) {
	query := `SELECT ` + timerColumns + ` FROM timers WHERE id = ?`
	t, err := scanTimer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get timer: %w", err)
	}
	return t, nil
}

// List returns every persisted timer ordered by id (ULIDs, so creation
// order). Rows that fail to scan are skipped and logged rather than
// failing the whole load: one corrupt row must not block recovery of the
// rest.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Timer, error) {
	query := `SELECT ` + timerColumns + ` FROM timers ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list timers: %w", err)
	}
	defer rows.Close()

	var timers []*Timer
	for rows.Next() {
		t, err := scanTimer(rows)
		if err != nil {
			r.logger.Warn("skipping unreadable timer row", "error", err)
			continue
		}
		timers = append(timers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timers: %w", err)
	}
	return timers, nil
}

// rowScanner abstracts sql.Row and sql.Rows for the shared scan path.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimer(row rowScanner) (*Timer, error) {
	var (
		t         Timer
		class     string
		name      sql.NullString
		expires   string
		original  string
		status    string
		language  string
		createdAt string
		updatedAt string
		extra     sql.NullString
	)

	err := row.Scan(
		&t.ID, &class, &t.EntityID, &name, &expires, &original,
		&t.PreExpireWarning, &status, &language, &t.Use24Hour,
		&createdAt, &updatedAt, &extra,
	)
	if err != nil {
		return nil, err
	}

	t.Class = Class(class)
	t.Name = name.String
	t.Status = Status(status)
	t.Language = lang.Code(language)

	if t.ExpiresAt, err = time.Parse(time.RFC3339, expires); err != nil {
		return nil, fmt.Errorf("parse expires_at: %w", err)
	}
	if t.OriginalExpiresAt, err = time.Parse(time.RFC3339, original); err != nil {
		return nil, fmt.Errorf("parse original_expires_at: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	if extra.Valid && extra.String != "" {
		if err := json.Unmarshal([]byte(extra.String), &t.ExtraInfo); err != nil {
			return nil, fmt.Errorf("parse extra_info: %w", err)
		}
	}

	// Rows written before the owner field was renamed carried the
	// satellite reference inside the payload.
	if t.EntityID == "" {
		if legacy, ok := t.ExtraInfo["device_id"].(string); ok && legacy != "" {
			t.EntityID = legacy
			delete(t.ExtraInfo, "device_id")
		}
	}

	return &t, nil
}

func marshalExtra(m map[string]any) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
