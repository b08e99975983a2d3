package store

import (
	"sort"
	"time"
)

// CongratulationLayout is how upcoming birthday dates are printed.
const CongratulationLayout = "2006.01.02"

// Upcoming is one contact whose birthday falls inside the requested window.
type Upcoming struct {
	Name string
	// Birthday is the next occurrence of the contact's birthday.
	Birthday time.Time
	// Congratulate is Birthday moved off the weekend onto the next Monday.
	Congratulate time.Time
}

func (u Upcoming) String() string {
	return u.Name + " - " + u.Congratulate.Format(CongratulationLayout)
}

// UpcomingBirthdays lists contacts whose next birthday is at most within
// days after today (today included), ordered by congratulation date then name.
func (b *AddressBook) UpcomingBirthdays(today time.Time, within int) []Upcoming {
	if within < 0 {
		return nil
	}
	day := dateOnly(today)
	var out []Upcoming
	for _, r := range b.records {
		born, ok := r.BirthdayDate()
		if !ok {
			continue
		}
		next := nextBirthday(born, day)
		if int(next.Sub(day).Hours()/24) > within {
			continue
		}
		out = append(out, Upcoming{
			Name:         r.Name,
			Birthday:     next,
			Congratulate: congratulationDate(next),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Congratulate.Equal(out[j].Congratulate) {
			return out[i].Congratulate.Before(out[j].Congratulate)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// nextBirthday returns the first anniversary of born on or after today.
// A 29 February birthday lands on 1 March in non-leap years.
func nextBirthday(born, today time.Time) time.Time {
	next := time.Date(today.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

func congratulationDate(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}
