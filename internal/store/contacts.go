package store

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FieldKind names an editable contact field.
type FieldKind string

const (
	FieldPhone    FieldKind = "phone"
	FieldEmail    FieldKind = "email"
	FieldBirthday FieldKind = "birthday"
	FieldAddress  FieldKind = "address"
)

// BirthdayLayout is the DD.MM.YYYY form birthdays are entered and stored in.
const BirthdayLayout = "02.01.2006"

var (
	phonePattern = regexp.MustCompile(`^(\+38)?(0\d{9})$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// ParseFieldKind maps user input onto a FieldKind, case-insensitively.
func ParseFieldKind(s string) (FieldKind, bool) {
	switch k := FieldKind(strings.ToLower(strings.TrimSpace(s))); k {
	case FieldPhone, FieldEmail, FieldBirthday, FieldAddress:
		return k, true
	default:
		return "", false
	}
}

func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func ValidBirthday(s string) bool {
	_, err := ParseBirthday(s)
	return err == nil
}

// ParseBirthday parses a DD.MM.YYYY date. Dates in the future are rejected.
func ParseBirthday(s string) (time.Time, error) {
	d, err := time.Parse(BirthdayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birthday %q: expected DD.MM.YYYY", ErrInvalid, s)
	}
	if d.After(timeNow()) {
		return time.Time{}, fmt.Errorf("%w: birthday %q is in the future", ErrInvalid, s)
	}
	return d, nil
}

type Record struct {
	ID        string     `yaml:"id" json:"id"`
	Name      string     `yaml:"name" json:"name"`
	Phones    []string   `yaml:"phones,omitempty" json:"phones,omitempty"`
	Email     string     `yaml:"email,omitempty" json:"email,omitempty"`
	Address   string     `yaml:"address,omitempty" json:"address,omitempty"`
	Birthday  string     `yaml:"birthday,omitempty" json:"birthday,omitempty"`
	CreatedAt *time.Time `yaml:"created_at,omitempty" json:"created_at,omitempty"`
}

func NewRecord(name string) *Record {
	now := timeNow()
	return &Record{
		ID:        "ct_" + newULID(),
		Name:      strings.TrimSpace(name),
		CreatedAt: &now,
	}
}

func (r *Record) FindPhone(phone string) bool {
	for _, p := range r.Phones {
		if p == phone {
			return true
		}
	}
	return false
}

func (r *Record) AddPhone(phone string) error {
	if !ValidPhone(phone) {
		return fmt.Errorf("%w: phone %q", ErrInvalid, phone)
	}
	if r.FindPhone(phone) {
		return fmt.Errorf("%w: phone %q already on %s", ErrConflict, phone, r.Name)
	}
	r.Phones = append(r.Phones, phone)
	return nil
}

// EditPhone replaces old with phone in place, keeping the phone order.
func (r *Record) EditPhone(old, phone string) error {
	if !ValidPhone(phone) {
		return fmt.Errorf("%w: phone %q", ErrInvalid, phone)
	}
	for i, p := range r.Phones {
		if p == old {
			r.Phones[i] = phone
			return nil
		}
	}
	return fmt.Errorf("%w: phone %q", ErrNotFound, old)
}

func (r *Record) ClearPhones() {
	r.Phones = nil
}

func (r *Record) SetEmail(email string) error {
	if !ValidEmail(email) {
		return fmt.Errorf("%w: email %q", ErrInvalid, email)
	}
	r.Email = email
	return nil
}

func (r *Record) DeleteEmail() {
	r.Email = ""
}

func (r *Record) SetAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("%w: address is empty", ErrInvalid)
	}
	r.Address = address
	return nil
}

func (r *Record) DeleteAddress() {
	r.Address = ""
}

func (r *Record) SetBirthday(birthday string) error {
	d, err := ParseBirthday(birthday)
	if err != nil {
		return err
	}
	r.Birthday = d.Format(BirthdayLayout)
	return nil
}

func (r *Record) DeleteBirthday() {
	r.Birthday = ""
}

// BirthdayDate returns the parsed birthday, if one is set.
func (r *Record) BirthdayDate() (time.Time, bool) {
	if r.Birthday == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(BirthdayLayout, r.Birthday)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Clear empties one field. Clearing phones drops every number.
func (r *Record) Clear(kind FieldKind) {
	switch kind {
	case FieldPhone:
		r.ClearPhones()
	case FieldEmail:
		r.DeleteEmail()
	case FieldBirthday:
		r.DeleteBirthday()
	case FieldAddress:
		r.DeleteAddress()
	}
}

func (r *Record) clone() Record {
	c := *r
	c.Phones = append([]string(nil), r.Phones...)
	return c
}

func (r Record) matches(term string) bool {
	if containsFold(r.Name, term) || containsFold(r.Email, term) ||
		containsFold(r.Address, term) || containsFold(r.Birthday, term) {
		return true
	}
	for _, p := range r.Phones {
		if strings.Contains(p, term) {
			return true
		}
	}
	return false
}

func (r Record) String() string {
	var b strings.Builder
	b.WriteString("Contact name: ")
	b.WriteString(r.Name)
	if len(r.Phones) > 0 {
		b.WriteString(", phones: ")
		b.WriteString(strings.Join(r.Phones, "; "))
	}
	if r.Email != "" {
		b.WriteString(", email: ")
		b.WriteString(r.Email)
	}
	if r.Birthday != "" {
		b.WriteString(", birthday: ")
		b.WriteString(r.Birthday)
	}
	if r.Address != "" {
		b.WriteString(", address: ")
		b.WriteString(r.Address)
	}
	return b.String()
}

// AddressBook holds contact records keyed by exact name.
type AddressBook struct {
	records map[string]*Record
}

func NewAddressBook() *AddressBook {
	return &AddressBook{records: map[string]*Record{}}
}

func newAddressBookFrom(recs []Record) (*AddressBook, error) {
	b := NewAddressBook()
	for i := range recs {
		r := recs[i]
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			return nil, fmt.Errorf("%w: contact #%d has no name", ErrInvalid, i+1)
		}
		if r.ID == "" {
			r.ID = "ct_" + newULID()
		}
		if !b.Insert(&r) {
			return nil, fmt.Errorf("%w: duplicate contact %q", ErrInvalid, r.Name)
		}
	}
	return b, nil
}

func (b *AddressBook) Len() int {
	return len(b.records)
}

func (b *AddressBook) Has(name string) bool {
	_, ok := b.records[name]
	return ok
}

// Find returns the live record for name, or nil.
func (b *AddressBook) Find(name string) *Record {
	return b.records[name]
}

// Insert adds r unless a contact with the same name exists.
func (b *AddressBook) Insert(r *Record) bool {
	if r == nil || b.Has(r.Name) {
		return false
	}
	b.records[r.Name] = r
	return true
}

func (b *AddressBook) Delete(name string) bool {
	if !b.Has(name) {
		return false
	}
	delete(b.records, name)
	return true
}

// IsUnique reports whether no contact other than owner already carries
// value in the given field. Phones compare exactly, emails
// case-insensitively. Other fields are never unique-constrained.
func (b *AddressBook) IsUnique(kind FieldKind, value, owner string) bool {
	for name, r := range b.records {
		if name == owner {
			continue
		}
		switch kind {
		case FieldPhone:
			if r.FindPhone(value) {
				return false
			}
		case FieldEmail:
			if r.Email != "" && strings.EqualFold(r.Email, value) {
				return false
			}
		}
	}
	return true
}

// Search returns contacts with term in any field, sorted by name.
func (b *AddressBook) Search(term string) []Record {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return b.filter(func(r Record) bool { return r.matches(term) })
}

func (b *AddressBook) SearchByBirthYear(year int) []Record {
	return b.filter(func(r Record) bool {
		d, ok := r.BirthdayDate()
		return ok && d.Year() == year
	})
}

// All returns copies of every record sorted by name.
func (b *AddressBook) All() []Record {
	return b.filter(func(Record) bool { return true })
}

func (b *AddressBook) filter(keep func(Record) bool) []Record {
	var out []Record
	for _, r := range b.records {
		if keep(*r) {
			out = append(out, r.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ParseYear accepts a four-digit calendar year.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: year %q", ErrInvalid, s)
	}
	y, err := strconv.Atoi(s)
	if err != nil || y <= 0 {
		return 0, fmt.Errorf("%w: year %q", ErrInvalid, s)
	}
	return y, nil
}
