// Package postname parses dated post file names of the form YYYY-MM-DD-slug.
package postname

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var pattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-([A-Za-z0-9_-]+)$`)

// Name is a parsed post file name.
type Name struct {
	Year  int
	Month int
	Day   int
	Slug  string
}

// Parse matches a bare file name (no extension) against the dated post
// pattern. It reports false when the name does not match or when the
// digits do not form a real calendar date.
func Parse(name string) (Name, bool) {
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return Name{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if year < 1 {
		return Name{}, false
	}

	// time.Date normalizes overflow (Feb 30 -> Mar 2); a round trip detects it.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return Name{}, false
	}

	return Name{Year: year, Month: month, Day: day, Slug: m[4]}, true
}

// Date returns the calendar date at midnight UTC.
func (n Name) Date() time.Time {
	return time.Date(n.Year, time.Month(n.Month), n.Day, 0, 0, 0, 0, time.UTC)
}

// Link returns the canonical public path /YYYY/MM/DD/slug.
func (n Name) Link() string {
	return fmt.Sprintf("/%04d/%02d/%02d/%s", n.Year, n.Month, n.Day, n.Slug)
}

func (n Name) String() string {
	return fmt.Sprintf("%04d-%02d-%02d-%s", n.Year, n.Month, n.Day, n.Slug)
}
