// Package session persists an Environment's variable bindings to a
// sqlite-backed store, for `calc session save|load|list <name>`.
// Values are stored as their printed decimal text and re-parsed on
// load, so a snapshot survives schema-free across versions.
package session

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"decimalc/internal/eval"
	"decimalc/internal/numeric"
)

const schema = `
CREATE TABLE IF NOT EXISTS bindings (
	session   TEXT NOT NULL,
	name      TEXT NOT NULL,
	value     TEXT NOT NULL,
	PRIMARY KEY (session, name)
);
`

// Store is a handle over the sqlite-backed snapshot database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if absent) the sqlite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init session store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save writes every binding in env's Environment under name, replacing
// any snapshot previously saved under the same name.
func (s *Store) Save(name string, env *eval.Environment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM bindings WHERE session = ?`, name); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO bindings (session, name, value) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, varName := range env.Names() {
		val, _ := env.Lookup(varName)
		if _, err := stmt.Exec(name, varName, val.String()); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Load restores the bindings saved under name into env, parsing each
// stored value as a decimal literal. Bindings not present in the
// snapshot are left untouched.
func (s *Store) Load(name string, env *eval.Environment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT name, value FROM bindings WHERE session = ?`, name)
	if err != nil {
		return err
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var varName, text string
		if err := rows.Scan(&varName, &text); err != nil {
			return err
		}
		found = true
		v, err := parseDecimal(text)
		if err != nil {
			return fmt.Errorf("session %q: stored value %q for %q: %w", name, text, varName, err)
		}
		env.Slot(varName).Set(v)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no such session %q", name)
	}
	return nil
}

// List returns the distinct session names currently stored.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT DISTINCT session FROM bindings ORDER BY session`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func parseDecimal(text string) (numeric.Value, error) {
	return numeric.ParseStream(strings.NewReader(text))
}
