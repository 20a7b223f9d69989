// Package dates converts the date strings found on Indonesian news sites to
// DD/MM/YYYY. Every normalizer is total: input it cannot parse is returned
// unchanged.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical output layout (DD/MM/YYYY) in Go time format.
const Layout = "02/01/2006"

// Normalizer maps one source's raw date text to DD/MM/YYYY, or returns the
// raw text when it cannot be parsed.
type Normalizer func(raw string) string

var indonesianFull = map[string]int{
	"Januari": 1, "Februari": 2, "Maret": 3, "April": 4,
	"Mei": 5, "Juni": 6, "Juli": 7, "Agustus": 8,
	"September": 9, "Oktober": 10, "November": 11, "Desember": 12,
}

var indonesianShort = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "Mei": 5, "Jun": 6,
	"Jul": 7, "Agt": 8, "Sep": 9, "Okt": 10, "Nov": 11, "Des": 12,
}

var englishFull = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4,
	"May": 5, "June": 6, "July": 7, "August": 8,
	"September": 9, "October": 10, "November": 11, "December": 12,
}

// mixed accepts Indonesian and English month names, full or abbreviated.
var mixed = merge(indonesianFull, indonesianShort, englishFull, map[string]int{
	"Agu": 8, "Sept": 9,
	"May": 5, "Aug": 8, "Oct": 10, "Dec": 12,
})

func merge(maps ...map[string]int) map[string]int {
	out := make(map[string]int)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// dialect describes "<day> <month name> <year>" text, optionally surrounded
// by a prefix (weekday, section name) and a suffix (time of day, category).
type dialect struct {
	months map[string]int
	// after drops everything up to and including the first occurrence of
	// this separator.
	after string
	// afterRequired makes a missing `after` separator a parse failure.
	afterRequired bool
	// before drops everything from the first occurrence of this separator.
	before string
}

func (d dialect) normalize(raw string) string {
	s := raw
	if d.after != "" {
		i := strings.Index(s, d.after)
		switch {
		case i >= 0:
			s = s[i+len(d.after):]
		case d.afterRequired:
			return raw
		}
	}
	if d.before != "" {
		if i := strings.Index(s, d.before); i >= 0 {
			s = s[:i]
		}
	}

	fields := strings.Fields(s)
	if len(fields) < 3 {
		return raw
	}
	out, ok := fromParts(fields[0], d.months[fields[1]], fields[2])
	if !ok {
		return raw
	}
	return out
}

// fromParts validates a day/month/year triple and formats it. The year may
// carry trailing punctuation ("2025,").
func fromParts(dayText string, month int, yearText string) (string, bool) {
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return "", false
	}
	year, err := strconv.Atoi(strings.TrimRight(yearText, ",.;"))
	if err != nil {
		return "", false
	}
	return format(day, month, year)
}

func format(day, month, year int) (string, bool) {
	if month < 1 || month > 12 || year < 1000 || year > 9999 || day < 1 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// 31/02 and friends roll over into the next month
		return "", false
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year), true
}

var (
	detik      = dialect{months: indonesianShort, after: ",", afterRequired: true}
	kompas     = dialect{months: mixed}
	beritasatu = dialect{months: mixed, before: "|"}
	pantura    = dialect{months: indonesianFull, after: ",", afterRequired: true, before: "|"}
	inews      = dialect{months: indonesianFull, after: ",", afterRequired: true, before: "-"}
	antara     = dialect{months: englishFull, after: "/"}
	indonesian = dialect{months: indonesianFull}
)

// Detik parses "Senin, 07 Jul 2025 14:00 WIB" (abbreviated Indonesian months
// after a weekday and comma).
func Detik(raw string) string { return detik.normalize(raw) }

// Kompas parses "07 Juli 2025, 10:00 WIB" with Indonesian or English month
// names, full or abbreviated.
func Kompas(raw string) string { return kompas.normalize(raw) }

// BeritaSatu parses "7 Jul 2025 | 10:00 WIB".
func BeritaSatu(raw string) string { return beritasatu.normalize(raw) }

// Pantura parses "Kamis, 3 Juli 2025 | 10:00 WIB".
func Pantura(raw string) string { return pantura.normalize(raw) }

// INews parses "Kamis, 03 Juli 2025 - 10:00:00 WIB".
func INews(raw string) string { return inews.normalize(raw) }

// Antara parses "Jawa Tengah / 3 July 2025 10:00" (English month names after
// an optional section and slash).
func Antara(raw string) string { return antara.normalize(raw) }

// Indonesian parses "3 Juli 2025" with full Indonesian month names.
func Indonesian(raw string) string { return indonesian.normalize(raw) }

// Slash parses "03/07/2025 - 10:00 WIB".
func Slash(raw string) string {
	part := raw
	if i := strings.Index(part, "-"); i >= 0 {
		part = part[:i]
	}
	segs := strings.Split(strings.TrimSpace(part), "/")
	if len(segs) != 3 {
		return raw
	}
	month, err := strconv.Atoi(segs[1])
	if err != nil {
		return raw
	}
	out, ok := fromParts(segs[0], month, segs[2])
	if !ok {
		return raw
	}
	return out
}

// ISO parses ISO-8601 dates and timestamps ("2025-07-03",
// "2025-07-03T10:00:00", "2025-07-03T10:00:00+07:00"). Only the calendar date
// is used; the timestamp is not converted to another zone.
func ISO(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return raw
	}
	return t.Format(Layout)
}

// Scan finds the first "<day> <Indonesian month> <year>" triple anywhere in
// the text, e.g. "Diposting pada 3 Juli 2025 oleh Redaksi".
func Scan(raw string) string {
	fields := strings.Fields(raw)
	for i := 0; i+2 < len(fields); i++ {
		month, ok := indonesianFull[fields[i+1]]
		if !ok {
			continue
		}
		if out, ok := fromParts(fields[i], month, fields[i+2]); ok {
			return out
		}
	}
	return raw
}

// RFC1123 parses feed publish dates ("Thu, 03 Jul 2025 10:00:00 +0700"),
// keeping the date in the feed's own offset.
func RFC1123(raw string) string {
	s := strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(Layout)
		}
	}
	return raw
}

// Format renders a parsed timestamp in the canonical layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}
