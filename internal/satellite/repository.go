package satellite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/voxtime/voxtime-core/internal/lang"
)

// Repository persists satellite records.
type Repository interface {
	Create(ctx context.Context, s *Satellite) error
	Update(ctx context.Context, s *Satellite) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Satellite, error)
	List(ctx context.Context) ([]*Satellite, error)
}

const satelliteColumns = `id, entity_id, name, area, language, use_24_hour,
	created_at, updated_at`

// SQLiteRepository is the SQLite-backed Repository.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository on an open database handle.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a satellite. Returns ErrAlreadyExists when the entity id
// is taken.
func (r *SQLiteRepository) Create(ctx context.Context, s *Satellite) error {
	query := `INSERT INTO satellites (` + satelliteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.EntityID,
		nullableString(s.Name),
		nullableString(s.Area),
		string(s.Language),
		boolToInt(s.Use24Hour),
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert satellite: %w", err)
	}
	return nil
}

// Update rewrites a satellite's mutable fields.
func (r *SQLiteRepository) Update(ctx context.Context, s *Satellite) error {
	query := `UPDATE satellites SET
		entity_id = ?, name = ?, area = ?, language = ?, use_24_hour = ?,
		updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.EntityID,
		nullableString(s.Name),
		nullableString(s.Area),
		string(s.Language),
		boolToInt(s.Use24Hour),
		s.UpdatedAt.UTC().Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("update satellite: %w", err)
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

// Delete removes a satellite row.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM satellites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete satellite: %w", err)
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

// GetByID fetches one satellite.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Satellite, error) {
	query := `SELECT ` + satelliteColumns + ` FROM satellites WHERE id = ?`
	s, err := scanSatellite(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get satellite: %w", err)
	}
	return s, nil
}

// List returns every satellite ordered by entity id.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Satellite, error) {
	query := `SELECT ` + satelliteColumns + ` FROM satellites ORDER BY entity_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list satellites: %w", err)
	}
	defer rows.Close()

	var out []*Satellite
	for rows.Next() {
		s, err := scanSatellite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan satellite: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate satellites: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSatellite(row rowScanner) (*Satellite, error) {
	var (
		s         Satellite
		name      sql.NullString
		area      sql.NullString
		language  string
		use24     int
		createdAt string
		updatedAt string
	)
	err := row.Scan(&s.ID, &s.EntityID, &name, &area, &language, &use24,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	s.Name = name.String
	s.Area = area.String
	s.Language = lang.Code(language)
	s.Use24Hour = use24 != 0

	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &s, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
