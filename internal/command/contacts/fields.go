package contacts

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/amirbrooks/assistant/internal/command"
	"github.com/amirbrooks/assistant/internal/store"
)

type AddBirthday struct {
	command.Info
	book store.Contacts
}

func NewAddBirthday(book store.Contacts) *AddBirthday {
	return &AddBirthday{
		Info: command.Info{Keyword: "add-birthday", Args: "<name> <DD.MM.YYYY>", Help: "Set a contact's birthday."},
		book: book,
	}
}

func (c *AddBirthday) Validate(args []string) error {
	if err := command.Arity(args, 2, "name and birthday", "birthday"); err != nil {
		return err
	}
	if err := requireContact(c.book, args[0], "update"); err != nil {
		return err
	}
	return checkBirthday(args[1])
}

func (c *AddBirthday) Act(args []string) command.Event {
	if err := c.book.Find(args[0]).SetBirthday(args[1]); err != nil {
		return command.Fail(err)
	}
	return command.Printf("Birthday for %s added.", args[0])
}

type AddEmail struct {
	command.Info
	book store.Contacts
}

func NewAddEmail(book store.Contacts) *AddEmail {
	return &AddEmail{
		Info: command.Info{Keyword: "add-email", Args: "<name> <email>", Help: "Set a contact's email."},
		book: book,
	}
}

func (c *AddEmail) Validate(args []string) error {
	if err := command.Arity(args, 2, "name and email", "email"); err != nil {
		return err
	}
	if err := requireContact(c.book, args[0], "update"); err != nil {
		return err
	}
	return checkEmail(c.book, args[0], args[1])
}

func (c *AddEmail) Act(args []string) command.Event {
	if err := c.book.Find(args[0]).SetEmail(args[1]); err != nil {
		return command.Fail(err)
	}
	return command.Printf("Email for %s added.", args[0])
}

// AddAddress takes every token after the name as the address.
type AddAddress struct {
	command.Info
	book store.Contacts
}

func NewAddAddress(book store.Contacts) *AddAddress {
	return &AddAddress{
		Info: command.Info{Keyword: "add-address", Args: "<name> <address...>", Help: "Set a contact's address."},
		book: book,
	}
}

func (c *AddAddress) Validate(args []string) error {
	if err := command.Arity(args, -1, "name and address", "address"); err != nil {
		return err
	}
	return requireContact(c.book, args[0], "update")
}

func (c *AddAddress) Act(args []string) command.Event {
	if err := c.book.Find(args[0]).SetAddress(command.Join(args[1:])); err != nil {
		return command.Fail(err)
	}
	return command.Printf("Address for %s added.", args[0])
}

// Delete clears one field; deleting phone drops every number.
type Delete struct {
	command.Info
	book  store.Contacts
	title cases.Caser
}

func NewDelete(book store.Contacts) *Delete {
	return &Delete{
		Info:  command.Info{Keyword: "delete", Args: "<name> <phone|email|birthday|address>", Help: "Clear a contact field."},
		book:  book,
		title: cases.Title(language.English),
	}
}

func (c *Delete) Validate(args []string) error {
	if err := command.Arity(args, 2, "name and field", "field"); err != nil {
		return err
	}
	if err := requireContact(c.book, args[0], "update"); err != nil {
		return err
	}
	if _, ok := store.ParseFieldKind(args[1]); !ok {
		return command.Invalid("Unknown field type: %s", args[1])
	}
	return nil
}

func (c *Delete) Act(args []string) command.Event {
	kind, _ := store.ParseFieldKind(args[1])
	c.book.Find(args[0]).Clear(kind)
	return command.Printf("%s for contact %s deleted.", c.title.String(string(kind)), args[0])
}

type Wipe struct {
	command.Info
	book store.Contacts
}

func NewWipe(book store.Contacts) *Wipe {
	return &Wipe{
		Info: command.Info{Keyword: "wipe", Args: "<name>", Help: "Remove a contact entirely."},
		book: book,
	}
}

func (c *Wipe) Validate(args []string) error {
	if err := command.Arity(args, 1, "name"); err != nil {
		return err
	}
	return requireContact(c.book, args[0], "wipe")
}

func (c *Wipe) Act(args []string) command.Event {
	c.book.Delete(args[0])
	return command.Printf("Contact %s wiped from address book.", args[0])
}
