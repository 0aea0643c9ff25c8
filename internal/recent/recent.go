package recent

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/filedialog/internal/shared"
)

// Location is one remembered dialog directory for a (family, kind) channel.
type Location struct {
	ID        string    `json:"id"`
	Family    string    `json:"family"`
	Kind      string    `json:"kind"`
	Directory string    `json:"directory"`
	Uses      int       `json:"uses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists recent dialog locations. Safe for concurrent use; all
// state lives in the database.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store on an open database connection. The caller runs
// migrations and owns the connection's lifecycle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Touch records directory as the channel's latest location, inserting the
// row on first use and refreshing it afterwards.
func (s *Store) Touch(family, kind, directory string) error {
	if directory == "" {
		return fmt.Errorf("%w: directory", shared.ErrMissingArgument)
	}

	now := time.Now()
	query := `
		INSERT INTO recent_locations (id, family, kind, directory, created_at, updated_at, uses)
		VALUES (?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT (family, kind) DO UPDATE SET
			directory = excluded.directory,
			updated_at = excluded.updated_at,
			uses = uses + 1
	`

	_, err := s.db.Exec(query, shared.GenerateID(), family, kind, directory, now, now)
	if err != nil {
		return fmt.Errorf("failed to record recent location: %w", err)
	}
	return nil
}

// Last returns the channel's most recent directory, or the empty string
// when the channel has no history. A channel without history is a normal
// state, not an error.
func (s *Store) Last(family, kind string) (string, error) {
	query := `SELECT directory FROM recent_locations WHERE family = ? AND kind = ?`

	var dir string
	err := s.db.QueryRow(query, family, kind).Scan(&dir)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query recent location: %w", err)
	}
	return dir, nil
}

// List returns every remembered location, most recently used first.
func (s *Store) List() ([]Location, error) {
	query := `
		SELECT id, family, kind, directory, uses, created_at, updated_at
		FROM recent_locations
		ORDER BY updated_at DESC, family, kind
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent locations: %w", err)
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.Family, &loc.Kind, &loc.Directory, &loc.Uses, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// Forget drops one channel's remembered location.
func (s *Store) Forget(family, kind string) error {
	result, err := s.db.Exec(`DELETE FROM recent_locations WHERE family = ? AND kind = ?`, family, kind)
	if err != nil {
		return fmt.Errorf("failed to forget recent location: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s/%s", shared.ErrNotFound, family, kind)
	}
	return nil
}

// Clear removes every remembered location.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM recent_locations`); err != nil {
		return fmt.Errorf("failed to clear recent locations: %w", err)
	}
	return nil
}
