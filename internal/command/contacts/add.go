package contacts

import (
	"github.com/amirbrooks/assistant/internal/command"
	"github.com/amirbrooks/assistant/internal/store"
)

// Add creates a contact, or adds a phone to an existing one when a phone
// is given.
type Add struct {
	command.Info
	book store.Contacts
}

func NewAdd(book store.Contacts) *Add {
	return &Add{
		Info: command.Info{Keyword: "add", Args: "<name> [phone]", Help: "Add a contact, or a phone to an existing contact."},
		book: book,
	}
}

func (c *Add) Validate(args []string) error {
	if err := command.Arity(args, 2, "name"); err != nil {
		return err
	}
	if len(args) == 1 {
		if c.book.Has(args[0]) {
			return command.Invalid("Contact you are trying to add already exists: %s", args[0])
		}
		return nil
	}
	return checkPhone(c.book, args[0], args[1])
}

func (c *Add) Act(args []string) command.Event {
	name := args[0]
	if r := c.book.Find(name); r != nil && len(args) > 1 {
		if err := r.AddPhone(args[1]); err != nil {
			return command.Fail(err)
		}
		return command.Printf("Phone number for %s added.", name)
	}
	r := store.NewRecord(name)
	if len(args) > 1 {
		if err := r.AddPhone(args[1]); err != nil {
			return command.Fail(err)
		}
	}
	c.book.Insert(r)
	return command.Printf("Contact %s added.", name)
}

// Change sets one field of a contact:
//
//	change <name> phone <new>          adds a phone
//	change <name> phone <old> <new>    replaces an existing phone
//	change <name> email|birthday <value>
//	change <name> address <free text>
type Change struct {
	command.Info
	book store.Contacts
}

func NewChange(book store.Contacts) *Change {
	return &Change{
		Info: command.Info{Keyword: "change", Args: "<name> <phone|email|birthday|address> [old phone] <value>", Help: "Set a contact field."},
		book: book,
	}
}

func (c *Change) Validate(args []string) error {
	if err := command.Arity(args, -1, "name, field and value", "field and value", "value"); err != nil {
		return err
	}
	name, field := args[0], args[1]
	if err := requireContact(c.book, name, "update"); err != nil {
		return err
	}
	kind, ok := store.ParseFieldKind(field)
	if !ok {
		return command.Invalid("Unknown field type: %s", field)
	}
	values := args[2:]
	switch kind {
	case store.FieldPhone:
		if len(values) > 2 {
			return command.TooMany()
		}
		if len(values) == 2 && !c.book.Find(name).FindPhone(values[0]) {
			return command.Invalid("Phone number you are trying to update not found: %s", values[0])
		}
		return checkPhone(c.book, name, values[len(values)-1])
	case store.FieldEmail:
		if len(values) > 1 {
			return command.TooMany()
		}
		return checkEmail(c.book, name, values[0])
	case store.FieldBirthday:
		if len(values) > 1 {
			return command.TooMany()
		}
		return checkBirthday(values[0])
	}
	return nil
}

func (c *Change) Act(args []string) command.Event {
	name := args[0]
	kind, _ := store.ParseFieldKind(args[1])
	values := args[2:]
	r := c.book.Find(name)

	var err error
	switch kind {
	case store.FieldPhone:
		if len(values) == 2 {
			err = r.EditPhone(values[0], values[1])
		} else {
			err = r.AddPhone(values[0])
		}
	case store.FieldEmail:
		err = r.SetEmail(values[0])
	case store.FieldBirthday:
		err = r.SetBirthday(values[0])
	case store.FieldAddress:
		err = r.SetAddress(command.Join(values))
	}
	if err != nil {
		return command.Fail(err)
	}
	return command.Printf("Contact %s changed.", name)
}
