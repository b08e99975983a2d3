package contacts

import (
	"strconv"
	"strings"
	"time"

	"github.com/amirbrooks/assistant/internal/command"
	"github.com/amirbrooks/assistant/internal/store"
)

type Phone struct {
	command.Info
	book store.Contacts
}

func NewPhone(book store.Contacts) *Phone {
	return &Phone{
		Info: command.Info{Keyword: "phone", Args: "<name>", Help: "Show a contact's phone numbers."},
		book: book,
	}
}

func (c *Phone) Validate(args []string) error {
	if err := command.Arity(args, 1, "name"); err != nil {
		return err
	}
	return requireContact(c.book, args[0], "get")
}

func (c *Phone) Act(args []string) command.Event {
	r := c.book.Find(args[0])
	if len(r.Phones) == 0 {
		return command.Printf("Contact %s has no phone numbers.", r.Name)
	}
	return command.Print(strings.Join(r.Phones, "\n"))
}

type All struct {
	command.Info
	book store.Contacts
}

func NewAll(book store.Contacts) *All {
	return &All{
		Info: command.Info{Keyword: "all", Help: "Show every contact."},
		book: book,
	}
}

func (c *All) Validate(args []string) error {
	return command.Arity(args, 0)
}

func (c *All) Act([]string) command.Event {
	return listRecords(c.book.All())
}

type ShowBirthday struct {
	command.Info
	book store.Contacts
}

func NewShowBirthday(book store.Contacts) *ShowBirthday {
	return &ShowBirthday{
		Info: command.Info{Keyword: "show-birthday", Args: "<name>", Help: "Show a contact's birthday."},
		book: book,
	}
}

func (c *ShowBirthday) Validate(args []string) error {
	if err := command.Arity(args, 1, "name"); err != nil {
		return err
	}
	if err := requireContact(c.book, args[0], "get"); err != nil {
		return err
	}
	if c.book.Find(args[0]).Birthday == "" {
		return command.Invalid("Contact %s has no birthday.", args[0])
	}
	return nil
}

func (c *ShowBirthday) Act(args []string) command.Event {
	return command.Print("🎂 " + c.book.Find(args[0]).Birthday)
}

// Birthdays lists contacts to congratulate within a window of days.
type Birthdays struct {
	command.Info
	book  store.Contacts
	today func() time.Time
	days  int
}

// NewBirthdays uses days when no window is given; non-positive means
// store.DefaultBirthdayDays. A nil today reads the wall clock.
func NewBirthdays(book store.Contacts, today func() time.Time, days int) *Birthdays {
	if today == nil {
		today = time.Now
	}
	if days <= 0 {
		days = store.DefaultBirthdayDays
	}
	return &Birthdays{
		Info:  command.Info{Keyword: "birthdays", Args: "[days]", Help: "Show birthdays coming up in the next days (default " + strconv.Itoa(days) + ")."},
		book:  book,
		today: today,
		days:  days,
	}
}

func (c *Birthdays) Validate(args []string) error {
	if err := command.Arity(args, 1); err != nil {
		return err
	}
	if len(args) == 1 {
		if _, err := parseDays(args[0]); err != nil {
			return err
		}
	}
	return nil
}

func parseDays(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, command.Invalid("days must be a positive whole number: %s", s)
	}
	return n, nil
}

func (c *Birthdays) Act(args []string) command.Event {
	days := c.days
	if len(args) == 1 {
		days, _ = parseDays(args[0])
	}
	upcoming := c.book.UpcomingBirthdays(c.today(), days)
	if len(upcoming) == 0 {
		return command.Print("No upcoming birthdays found.")
	}
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = u.String()
	}
	return command.Print(strings.Join(lines, "\n"))
}

// Search matches the joined term against every contact field.
type Search struct {
	command.Info
	book store.Contacts
}

func NewSearch(book store.Contacts) *Search {
	return &Search{
		Info: command.Info{Keyword: "search", Args: "<term>", Help: "Find contacts by any field."},
		book: book,
	}
}

func (c *Search) Validate(args []string) error {
	return command.Arity(args, -1, "search term")
}

func (c *Search) Act(args []string) command.Event {
	return listRecords(c.book.Search(command.Join(args)))
}

type SearchByYear struct {
	command.Info
	book store.Contacts
}

func NewSearchByYear(book store.Contacts) *SearchByYear {
	return &SearchByYear{
		Info: command.Info{Keyword: "search-by-year", Args: "<year>", Help: "Find contacts born in a year."},
		book: book,
	}
}

func (c *SearchByYear) Validate(args []string) error {
	if err := command.Arity(args, 1, "year"); err != nil {
		return err
	}
	if _, err := store.ParseYear(args[0]); err != nil {
		return command.Invalid("year must be a four-digit number: %s", args[0])
	}
	return nil
}

func (c *SearchByYear) Act(args []string) command.Event {
	year, _ := store.ParseYear(args[0])
	return listRecords(c.book.SearchByBirthYear(year))
}
