package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteBackend keeps contacts and notes in two tables of one database file.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// NewSQLiteBackend opens (or creates) the database at path and ensures the schema.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteBackend{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteBackend) Location() string { return s.path }

func (s *SQLiteBackend) Close() error { return s.db.Close() }

func (s *SQLiteBackend) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS contacts (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		phones     TEXT NOT NULL DEFAULT '[]',
		email      TEXT NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		birthday   TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS notes (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL UNIQUE,
		body       TEXT NOT NULL DEFAULT '',
		tags       TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteBackend) Load() (*AddressBook, *NoteBook, error) {
	recs, err := s.loadContacts()
	if err != nil {
		return nil, nil, fmt.Errorf("load contacts: %w", err)
	}
	notes, err := s.loadNotes()
	if err != nil {
		return nil, nil, fmt.Errorf("load notes: %w", err)
	}
	book, err := newAddressBookFrom(recs)
	if err != nil {
		return nil, nil, err
	}
	nb, err := newNoteBookFrom(notes)
	if err != nil {
		return nil, nil, err
	}
	return book, nb, nil
}

func (s *SQLiteBackend) loadContacts() ([]Record, error) {
	rows, err := s.db.Query(`SELECT id, name, phones, email, address, birthday, created_at FROM contacts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var phones, created string
		if err := rows.Scan(&r.ID, &r.Name, &phones, &r.Email, &r.Address, &r.Birthday, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(phones), &r.Phones); err != nil {
			return nil, fmt.Errorf("%w: phones of %q: %v", ErrInvalid, r.Name, err)
		}
		if len(r.Phones) == 0 {
			r.Phones = nil
		}
		if created != "" {
			ts, err := time.Parse(time.RFC3339Nano, created)
			if err != nil {
				return nil, fmt.Errorf("%w: created_at of %q: %v", ErrInvalid, r.Name, err)
			}
			r.CreatedAt = &ts
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteBackend) loadNotes() ([]Note, error) {
	rows, err := s.db.Query(`SELECT id, title, body, tags, created_at, updated_at FROM notes ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var n Note
		var tags, created, updated string
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &tags, &created, &updated); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
			return nil, fmt.Errorf("%w: tags of %q: %v", ErrInvalid, n.Title, err)
		}
		if n.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("%w: created_at of %q: %v", ErrInvalid, n.Title, err)
		}
		if n.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("%w: updated_at of %q: %v", ErrInvalid, n.Title, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Save replaces both tables with the in-memory state in one transaction.
func (s *SQLiteBackend) Save(contacts *AddressBook, notes *NoteBook) error {
	return retryOnContention(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if err := saveContacts(tx, contacts.All()); err != nil {
			return fmt.Errorf("save contacts: %w", err)
		}
		if err := saveNotes(tx, notes.All()); err != nil {
			return fmt.Errorf("save notes: %w", err)
		}
		return tx.Commit()
	})
}

func saveContacts(tx *sql.Tx, recs []Record) error {
	if _, err := tx.Exec(`DELETE FROM contacts`); err != nil {
		return err
	}
	for _, r := range recs {
		phones, err := json.Marshal(nonNil(r.Phones))
		if err != nil {
			return err
		}
		created := ""
		if r.CreatedAt != nil {
			created = r.CreatedAt.UTC().Format(time.RFC3339Nano)
		}
		_, err = tx.Exec(
			`INSERT INTO contacts (id, name, phones, email, address, birthday, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, string(phones), r.Email, r.Address, r.Birthday, created,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func saveNotes(tx *sql.Tx, notes []Note) error {
	if _, err := tx.Exec(`DELETE FROM notes`); err != nil {
		return err
	}
	for _, n := range notes {
		tags, err := json.Marshal(nonNil(n.Tags))
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			`INSERT INTO notes (id, title, body, tags, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			n.ID, n.Title, n.Body, string(tags),
			n.CreatedAt.UTC().Format(time.RFC3339Nano),
			n.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
