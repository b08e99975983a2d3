package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend loads and saves the address book and notebook as a unit.
type Backend interface {
	Load() (*AddressBook, *NoteBook, error)
	Save(contacts *AddressBook, notes *NoteBook) error
	// Location describes where data lives, for user-facing messages.
	Location() string
	Close() error
}

const (
	contactsFile = "contacts.yaml"
	notesFile    = "notes.yaml"
)

type contactsDoc struct {
	Schema   int      `yaml:"schema"`
	Contacts []Record `yaml:"contacts"`
}

type notesDoc struct {
	Schema int    `yaml:"schema"`
	Notes  []Note `yaml:"notes"`
}

// FileBackend keeps each collection in its own yaml document under Root.
type FileBackend struct {
	Root string
}

func NewFileBackend(root string) *FileBackend {
	return &FileBackend{Root: root}
}

func (f *FileBackend) Location() string {
	return f.Root
}

func (f *FileBackend) Close() error { return nil }

// Load reads both documents. A missing file loads as an empty collection.
func (f *FileBackend) Load() (*AddressBook, *NoteBook, error) {
	var cd contactsDoc
	if err := readYAML(filepath.Join(f.Root, contactsFile), &cd); err != nil {
		return nil, nil, err
	}
	var nd notesDoc
	if err := readYAML(filepath.Join(f.Root, notesFile), &nd); err != nil {
		return nil, nil, err
	}
	book, err := newAddressBookFrom(cd.Contacts)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", contactsFile, err)
	}
	notes, err := newNoteBookFrom(nd.Notes)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", notesFile, err)
	}
	return book, notes, nil
}

func (f *FileBackend) Save(contacts *AddressBook, notes *NoteBook) error {
	if err := writeYAML(filepath.Join(f.Root, contactsFile), contactsDoc{Schema: 1, Contacts: contacts.All()}); err != nil {
		return fmt.Errorf("write %s: %w", contactsFile, err)
	}
	if err := writeYAML(filepath.Join(f.Root, notesFile), notesDoc{Schema: 1, Notes: notes.All()}); err != nil {
		return fmt.Errorf("write %s: %w", notesFile, err)
	}
	return nil
}

func readYAML(path string, v any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, filepath.Base(path), err)
	}
	return nil
}

func writeYAML(path string, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes(), 0o644)
}
