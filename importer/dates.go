package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SentinelExpiryDate is written when an expiry cell cannot be parsed.
// Kept for behavioral compatibility with the legacy pharmacy importer;
// it can mask genuinely bad source data as "never expires".
const SentinelExpiryDate = "2099-12-31"

// excelEpoch is the spreadsheet serial-date anchor (day 0 = 1899-12-30).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// monthAbbrevs maps three-letter month names to their number.
var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// NormalizeCellDate converts a heterogeneous spreadsheet cell value into a
// canonical YYYY-MM-DD string, or "" when the value is unparseable.
//
// Recognized forms, tried in order:
//  1. numeric serial date in (0, 100000), anchored at 1899-12-30 UTC
//  2. YYYY-MM-DD or YYYY/MM/DD
//  3. DD-MM-YYYY or DD/MM/YYYY
//  4. MM-YYYY or MM/YYYY, expanded to the last day of the month
//  5. three-letter month plus 2- or 4-digit year (Jan-24, Jan-2024),
//     expanded to the last day of the month; two-digit years are 20xx
func NormalizeCellDate(value string) string {
	s := strings.TrimSpace(value)
	if s == "" || s == "########" {
		return ""
	}

	// Serial dates. Values outside (0, 100000) are not treated as serials
	// so arbitrary large numbers do not turn into dates.
	if num, err := strconv.ParseFloat(s, 64); err == nil {
		if num > 0 && num < 100000 {
			return excelEpoch.AddDate(0, 0, int(num)).Format("2006-01-02")
		}
		return ""
	}

	sep := detectSeparator(s)
	if sep == 0 {
		return ""
	}

	parts := strings.Split(s, string(sep))
	switch len(parts) {
	case 3:
		return normalizeThreePartDate(parts)
	case 2:
		return normalizeMonthYear(parts)
	}

	return ""
}

// detectSeparator returns '-' or '/' if the string uses exactly one of them.
func detectSeparator(s string) byte {
	if strings.Contains(s, "-") {
		return '-'
	}
	if strings.Contains(s, "/") {
		return '/'
	}
	return 0
}

// normalizeThreePartDate handles YYYY-MM-DD and DD-MM-YYYY (either separator).
func normalizeThreePartDate(parts []string) string {
	a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
	b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
	c, errC := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errA != nil || errB != nil || errC != nil {
		return ""
	}

	var year, month, day int
	if len(strings.TrimSpace(parts[0])) == 4 {
		year, month, day = a, b, c
	} else if len(strings.TrimSpace(parts[2])) == 4 {
		day, month, year = a, b, c
	} else {
		return ""
	}

	if !validCalendarDate(year, month, day) {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// normalizeMonthYear handles MM-YYYY and Mon-YY / Mon-YYYY forms.
// Month-only expiry is treated as valid through the end of the month.
func normalizeMonthYear(parts []string) string {
	first := strings.TrimSpace(parts[0])
	second := strings.TrimSpace(parts[1])

	year, err := strconv.Atoi(second)
	if err != nil {
		return ""
	}

	var month int
	if m, numErr := strconv.Atoi(first); numErr == nil {
		month = m
	} else if m, ok := monthAbbrevs[strings.ToLower(first)]; ok {
		month = int(m)
	} else {
		return ""
	}

	switch len(second) {
	case 2:
		year += 2000
	case 4:
		// already a full year
	default:
		return ""
	}

	if month < 1 || month > 12 || year < 1900 || year > 9999 {
		return ""
	}

	lastDay := lastDayOfMonth(year, month)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, lastDay)
}

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year, month int) int {
	firstOfNext := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// validCalendarDate reports whether the components form a real calendar date.
func validCalendarDate(year, month, day int) bool {
	if year < 1900 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= lastDayOfMonth(year, month)
}

// NormalizeExpiryDate normalizes an expiry cell, falling back to the
// far-future sentinel when the cell cannot be parsed.
func NormalizeExpiryDate(value string) string {
	if normalized := NormalizeCellDate(value); normalized != "" {
		return normalized
	}
	return SentinelExpiryDate
}
