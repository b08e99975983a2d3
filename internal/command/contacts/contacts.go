// Package contacts implements the address book commands.
package contacts

import (
	"strings"
	"time"

	"github.com/amirbrooks/assistant/internal/command"
	"github.com/amirbrooks/assistant/internal/store"
)

type Options struct {
	// Today returns the current date for the birthdays window.
	Today func() time.Time
	// BirthdayDays is the window used when `birthdays` gets no argument.
	BirthdayDays int
}

// Commands returns every contact command in registration order.
func Commands(book store.Contacts, opts Options) []command.Command {
	return []command.Command{
		NewAdd(book),
		NewChange(book),
		NewPhone(book),
		NewAll(book),
		NewAddBirthday(book),
		NewShowBirthday(book),
		NewBirthdays(book, opts.Today, opts.BirthdayDays),
		NewAddEmail(book),
		NewAddAddress(book),
		NewDelete(book),
		NewWipe(book),
		NewSearch(book),
		NewSearchByYear(book),
	}
}

func requireContact(book store.Contacts, name, verb string) error {
	if !book.Has(name) {
		return command.Invalid("Contact you are trying to %s not found: %s", verb, name)
	}
	return nil
}

// checkPhone validates a phone about to be added to owner. A number
// owner already has counts as taken.
func checkPhone(book store.Contacts, owner, phone string) error {
	if !store.ValidPhone(phone) {
		return command.Invalid("Invalid phone number: %s. Examples of correct one: +380123456789 or 0123456789.", phone)
	}
	r := book.Find(owner)
	if !book.IsUnique(store.FieldPhone, phone, owner) || (r != nil && r.FindPhone(phone)) {
		return command.Invalid("Phone number %s already exists in the address book.", phone)
	}
	return nil
}

// checkEmail validates an email for owner. Owner's current email does not
// conflict with itself.
func checkEmail(book store.Contacts, owner, email string) error {
	if !store.ValidEmail(email) {
		return command.Invalid("Invalid email: %s", email)
	}
	if !book.IsUnique(store.FieldEmail, email, owner) {
		return command.Invalid("Email %s already exists in the address book.", email)
	}
	return nil
}

func checkBirthday(birthday string) error {
	if !store.ValidBirthday(birthday) {
		return command.Invalid("Invalid date for birthday: %s. Use DD.MM.YYYY.", birthday)
	}
	return nil
}

func listRecords(recs []store.Record) command.Event {
	if len(recs) == 0 {
		return command.Print("No contacts found.")
	}
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = r.String()
	}
	return command.Print(strings.Join(lines, "\n"))
}
