package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	_ "github.com/mattn/go-sqlite3"
	"github.com/weedbox/pokerdealer"
)

var (
	ErrSnapshotNotFound = errors.New("store: snapshot not found")
)

// Store keeps the latest state snapshot and an append-only hand history in SQLite.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			update_serial INTEGER NOT NULL,
			data TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS hand_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			table_id TEXT NOT NULL,
			tournament_id TEXT NOT NULL DEFAULT '',
			hand_number INTEGER NOT NULL,
			aborted INTEGER NOT NULL DEFAULT 0,
			data TEXT NOT NULL,
			ended_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_hand_history_table ON hand_history (table_id, id)`)
	return err
}

// SaveSnapshot replaces the stored snapshot unless it is newer than state.
func (s *Store) SaveSnapshot(state *pokerdealer.GameState) error {
	data, err := state.Snapshot()
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (id, update_serial, data, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			update_serial = excluded.update_serial,
			data = excluded.data,
			updated_at = excluded.updated_at
		WHERE excluded.update_serial >= snapshots.update_serial
	`, state.UpdateSerial, string(data), state.UpdateAt)
	return err
}

func (s *Store) LoadSnapshot() (*pokerdealer.GameState, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM snapshots WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	return pokerdealer.LoadGameState([]byte(data))
}

func (s *Store) AppendHandHistory(summary pokerdealer.HandSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO hand_history (table_id, tournament_id, hand_number, aborted, data, ended_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, summary.TableID, summary.TournamentID, summary.HandNumber, summary.Aborted, string(data), summary.EndedAt)
	return err
}

// HandHistory returns the most recent hands of a table, newest first.
func (s *Store) HandHistory(tableID string, limit int) ([]pokerdealer.HandSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT data FROM hand_history
		WHERE table_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, tableID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hands := make([]pokerdealer.HandSummary, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}

		var summary pokerdealer.HandSummary
		if err := json.Unmarshal([]byte(data), &summary); err != nil {
			return nil, err
		}
		hands = append(hands, summary)
	}

	return hands, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
