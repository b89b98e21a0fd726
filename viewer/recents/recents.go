// Package recents persists the containers the viewer has opened, so the GUI
// can offer them again on later runs.
package recents

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Entry is one recorded container open.
type Entry struct {
	ID         string `db:"id"`
	FileName   string `db:"file_name"`
	SourcePath string `db:"source_path"`
	StagedPath string `db:"staged_path"`
	Port       int    `db:"port"`
	OpenedAt   int64  `db:"opened_at"`
}

// Store handles persistence of recently opened containers.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a recents store on the given database, initializing the
// schema if needed.
func NewStore(db *sqlx.DB) (*Store, error) {
	if err := DBInit(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// DBInit initializes the recent_opens table.
func DBInit(db *sqlx.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS recent_opens (
		id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL,
		source_path TEXT NOT NULL,
		staged_path TEXT,
		port INTEGER NOT NULL,
		opened_at INTEGER NOT NULL
	)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_recent_opens_opened_at ON recent_opens(opened_at)`)
	return err
}

// Record stores one container open. An empty stagedPath means staging failed
// and the open proceeded with the bare file name.
func (s *Store) Record(fileName, sourcePath, stagedPath string, port uint16) error {
	_, err := s.db.Exec(`
		INSERT INTO recent_opens (id, file_name, source_path, staged_path, port, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(),
		fileName,
		sourcePath,
		stagedPath,
		int(port),
		time.Now().UTC().Unix(),
	)
	return err
}

// Recent returns the most recently opened containers, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	var entries []Entry
	err := s.db.Select(&entries,
		"SELECT * FROM recent_opens ORDER BY opened_at DESC LIMIT $1",
		limit)
	return entries, err
}

// Prune deletes entries older than the given retention period and returns
// how many were removed.
func (s *Store) Prune(olderThan time.Duration) (int64, error) {
	threshold := time.Now().UTC().Add(-olderThan).Unix()
	result, err := s.db.Exec("DELETE FROM recent_opens WHERE opened_at < $1", threshold)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
