package functions

import "time"

// epoch is day 1 of the 1900 serial-date system used throughout this
// engine (spec.md §4.7, "date values are stored as 1900-epoch integer
// serial numbers"). Serials are a plain day count from 1899-12-30, so
// serial 61 is March 1, 1900 and every serial from 61 onward is one day
// ahead of a naive day-count from 1900-01-01. The Go calendar has no
// February 29, 1900: serial 60 is February 28, 1900, and serials 1-60
// fall one day earlier than the same serials in Excel.
var epoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateToSerial converts a (year, month, day) triple to its 1900-epoch
// serial number.
func dateToSerial(year, month, day int) uint32 {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	days := int(t.Sub(epoch).Hours() / 24)
	return uint32(days)
}

// serialToTime converts a 1900-epoch serial back to a time.Time at
// midnight UTC.
func serialToTime(serial uint32) time.Time {
	return epoch.AddDate(0, 0, int(serial))
}

// addMonths shifts t by delta months, per the teacher corpus's bond-math
// ported from original_source/.../bond.rs add_delta_months. A plain
// t.AddDate(0, delta, 0) does not preserve month-end semantics: shifting
// Nov 30 forward three months lands on Mar 2 (Feb only has 28 days), not
// Feb 28. original_source's EasyDate avoids this by having every caller
// re-clamp to last_day_of_this_month whenever the source date is itself
// a month end; this folds that clamp into addMonths itself so every
// caller (couppcd/coupncd/coupnum, including their internal
// re-additions of deltaMonth) gets month-end-preserving arithmetic for
// free.
func addMonths(t time.Time, delta int) time.Time {
	wasEndOfMonth := lastDayOfMonth(t)

	totalMonths := t.Year()*12 + int(t.Month()) - 1 + delta
	targetYear := floorDiv(totalMonths, 12)
	targetMonth := time.Month(floorMod(totalMonths, 12) + 1)

	firstOfTarget := time.Date(targetYear, targetMonth, 1, 0, 0, 0, 0, time.UTC)
	if wasEndOfMonth {
		return endOfMonth(firstOfTarget)
	}

	day := t.Day()
	if maxDay := endOfMonth(firstOfTarget).Day(); day > maxDay {
		day = maxDay
	}
	return time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, time.UTC)
}

// floorDiv and floorMod implement division that rounds toward negative
// infinity, unlike Go's built-in / and % which truncate toward zero -
// addMonths needs this for negative month deltas to carry borrows into
// the year correctly.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// lastDayOfMonth reports whether t falls on the final day of its month.
func lastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

// endOfMonth returns the last day of t's month, same year/month.
func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1)
}
