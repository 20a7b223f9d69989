package dates

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var canonical = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/[0-9]{4}$`)

type dateCase struct {
	name string
	raw  string
	want string
}

func runCases(t *testing.T, normalize Normalizer, cases []dateCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalize(tc.raw)
			assert.Equal(t, tc.want, got)
			if tc.want != tc.raw {
				assert.Regexp(t, canonical, got)
			}
		})
	}
}

// TestDetik verifies abbreviated Indonesian months after a weekday
func TestDetik(t *testing.T) {
	runCases(t, Detik, []dateCase{
		{"weekday and time", "Senin, 07 Jul 2025 14:00 WIB", "07/07/2025"},
		{"single digit day", "Rabu, 3 Agt 2025 09:12 WIB", "03/08/2025"},
		{"december", "Jumat, 27 Des 2024 20:00 WIB", "27/12/2024"},
		{"missing comma", "07 Jul 2025 14:00 WIB", "07 Jul 2025 14:00 WIB"},
		{"unknown month", "Senin, 07 Foo 2025", "Senin, 07 Foo 2025"},
		{"empty", "", ""},
	})
}

// TestKompas verifies mixed Indonesian and English month names
func TestKompas(t *testing.T) {
	runCases(t, Kompas, []dateCase{
		{"full indonesian", "07 Juli 2025", "07/07/2025"},
		{"english abbreviation", "1 Oct 2024", "01/10/2024"},
		{"trailing comma and time", "15 Agustus 2025, 10:00 WIB", "15/08/2025"},
		{"indonesian abbreviation", "2 Okt 2025", "02/10/2025"},
		{"too few fields", "Juli 2025", "Juli 2025"},
		{"invalid day", "32 Juli 2025", "32 Juli 2025"},
	})
}

// TestBeritaSatu verifies the category suffix is discarded
func TestBeritaSatu(t *testing.T) {
	runCases(t, BeritaSatu, []dateCase{
		{"with suffix", "7 Jul 2025 | 10:00 WIB", "07/07/2025"},
		{"no suffix", "21 May 2025", "21/05/2025"},
		{"garbage", "kemarin | Ekonomi", "kemarin | Ekonomi"},
	})
}

// TestPantura verifies weekday prefix and pipe suffix handling
func TestPantura(t *testing.T) {
	runCases(t, Pantura, []dateCase{
		{"full", "Kamis, 3 Juli 2025 | 10:00 WIB", "03/07/2025"},
		{"without suffix", "Selasa, 14 Januari 2025", "14/01/2025"},
		{"no comma", "3 Juli 2025 | 10:00", "3 Juli 2025 | 10:00"},
	})
}

// TestINews verifies the dash separated time is discarded
func TestINews(t *testing.T) {
	runCases(t, INews, []dateCase{
		{"full", "Kamis, 03 Juli 2025 - 10:00:00 WIB", "03/07/2025"},
		{"abbreviated month is not this dialect", "Kamis, 03 Jul 2025 - 10:00", "Kamis, 03 Jul 2025 - 10:00"},
	})
}

// TestAntara verifies English months after an optional section prefix
func TestAntara(t *testing.T) {
	runCases(t, Antara, []dateCase{
		{"with section", "Jawa Tengah / 3 July 2025 10:00", "03/07/2025"},
		{"without section", "12 November 2024 08:15", "12/11/2024"},
		{"indonesian month", "Jawa Tengah / 3 Juli 2025", "Jawa Tengah / 3 Juli 2025"},
	})
}

// TestIndonesian verifies full Indonesian month names
func TestIndonesian(t *testing.T) {
	runCases(t, Indonesian, []dateCase{
		{"plain", "3 Juli 2025", "03/07/2025"},
		{"leap day", "29 Februari 2024", "29/02/2024"},
		{"not a leap year", "29 Februari 2025", "29 Februari 2025"},
	})
}

// TestSlash verifies slash delimited dates with a trailing time
func TestSlash(t *testing.T) {
	runCases(t, Slash, []dateCase{
		{"with time", "03/07/2025 - 10:00 WIB", "03/07/2025"},
		{"unpadded", "3/7/2025", "03/07/2025"},
		{"wrong shape", "03-07-2025", "03-07-2025"},
		{"month out of range", "03/13/2025", "03/13/2025"},
	})
}

// TestISO verifies ISO-8601 dates and timestamps
func TestISO(t *testing.T) {
	runCases(t, ISO, []dateCase{
		{"date", "2025-07-03", "03/07/2025"},
		{"timestamp", "2025-07-03T10:00:00", "03/07/2025"},
		{"timestamp with offset", "2025-07-03T23:30:00+07:00", "03/07/2025"},
		{"not iso", "3 Juli 2025", "3 Juli 2025"},
	})
}

// TestScan verifies a date triple is found inside surrounding text
func TestScan(t *testing.T) {
	runCases(t, Scan, []dateCase{
		{"embedded", "Diposting pada 3 Juli 2025 oleh Redaksi", "03/07/2025"},
		{"at start", "17 Agustus 2025", "17/08/2025"},
		{"none", "tanpa tanggal", "tanpa tanggal"},
	})
}

// TestRFC1123 verifies feed dates keep their own offset
func TestRFC1123(t *testing.T) {
	runCases(t, RFC1123, []dateCase{
		{"numeric zone", "Thu, 03 Jul 2025 01:00:00 +0700", "03/07/2025"},
		{"named zone", "Thu, 03 Jul 2025 10:00:00 GMT", "03/07/2025"},
		{"garbage", "yesterday", "yesterday"},
	})
}

// TestFormat verifies canonical formatting of a parsed time
func TestFormat(t *testing.T) {
	assert.Equal(t, "05/01/2025", Format(time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)))
}
