package store

import "time"

// Contacts is the address book surface commands depend on.
// *AddressBook implements it.
type Contacts interface {
	Has(name string) bool
	// Find returns the live record, so mutations through it are kept.
	Find(name string) *Record
	Insert(r *Record) bool
	Delete(name string) bool
	IsUnique(kind FieldKind, value, owner string) bool
	UpcomingBirthdays(today time.Time, within int) []Upcoming
	Search(term string) []Record
	SearchByBirthYear(year int) []Record
	All() []Record
}

// Notes is the notebook surface commands depend on.
// *NoteBook implements it.
type Notes interface {
	Find(title string) *Note
	Add(n *Note) bool
	Remove(title string) bool
	Rename(old, newTitle string) bool
	UpdateBody(title, body string) bool
	SearchByKeyword(term string) []Note
	SearchByTag(tag string) []Note
	All() []Note
}

var (
	_ Contacts = (*AddressBook)(nil)
	_ Notes    = (*NoteBook)(nil)
	_ Backend  = (*FileBackend)(nil)
	_ Backend  = (*SQLiteBackend)(nil)
)
