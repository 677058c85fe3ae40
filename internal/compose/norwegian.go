package compose

import (
	"fmt"
	"time"
)

// norwegianWeekdays maps Go weekdays to lowercase Norwegian names.
// Minimal hosts and CI runners ship without the nb_NO locale, so the
// names are spelled out here instead of relying on the host.
var norwegianWeekdays = map[time.Weekday]string{
	time.Monday:    "mandag",
	time.Tuesday:   "tirsdag",
	time.Wednesday: "onsdag",
	time.Thursday:  "torsdag",
	time.Friday:    "fredag",
	time.Saturday:  "lørdag",
	time.Sunday:    "søndag",
}

// norwegianMonths maps Go months to lowercase Norwegian names.
var norwegianMonths = map[time.Month]string{
	time.January:   "januar",
	time.February:  "februar",
	time.March:     "mars",
	time.April:     "april",
	time.May:       "mai",
	time.June:      "juni",
	time.July:      "juli",
	time.August:    "august",
	time.September: "september",
	time.October:   "oktober",
	time.November:  "november",
	time.December:  "desember",
}

// FormatDate renders t as a Norwegian announcement date, for example
// "Fredag 22. august 2025 kl. 18:00". The weekday is capitalized, the
// month stays lowercase, and the day is zero-padded.
func (c *Composer) FormatDate(t time.Time) string {
	t = t.In(c.location)
	weekday := c.caser.String(norwegianWeekdays[t.Weekday()])
	return fmt.Sprintf("%s %02d. %s %d kl. %s",
		weekday, t.Day(), norwegianMonths[t.Month()], t.Year(), t.Format("15:04"))
}
