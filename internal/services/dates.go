package services

import (
	"fmt"
	"time"

	"spendwise/internal/models"
)

// isoDate is the calendar date layout used throughout the store. Dates
// are stored as strings in this form so range filters compare lexically.
const isoDate = "2006-01-02"

// yearMonth is the layout for month arguments (budget status, net worth).
const yearMonth = "2006-01"

// validISODate reports whether s is a well-formed YYYY-MM-DD date.
func validISODate(s string) bool {
	_, err := time.Parse(isoDate, s)
	return err == nil
}

// today returns the current date in store form.
func today() string {
	return time.Now().Format(isoDate)
}

// nextDueDate advances a due date one cadence step from its current
// value. Monthly and yearly steps keep the day-of-month, clamped to the
// last valid day of the target month: Jan 31 advances to Feb 28 (Feb 29
// in leap years), and a yearly Feb 29 lands on Feb 28 in non-leap years.
// The clamp means advancement is always exactly one calendar period and
// never spills into the month after the target.
func nextDueDate(current string, freq models.Frequency) (string, error) {
	t, err := time.Parse(isoDate, current)
	if err != nil {
		return "", fmt.Errorf("parse due date %q: %w", current, err)
	}

	switch freq {
	case models.FrequencyDaily:
		t = t.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		t = t.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		t = addMonthClamped(t)
	case models.FrequencyYearly:
		t = addYearClamped(t)
	default:
		return "", fmt.Errorf("unsupported frequency %q", freq)
	}

	return t.Format(isoDate), nil
}

// addMonthClamped returns the same day-of-month in the next month,
// clamped to that month's last day. time.AddDate is unsuitable here: it
// normalizes Jan 31 + 1 month to Mar 2/3 instead of clamping.
func addMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
	if last := lastDayOf(first); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// addYearClamped returns the same month and day in the next year, with
// Feb 29 clamped to Feb 28 when the target year is not a leap year.
func addYearClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	first := time.Date(y+1, m, 1, 0, 0, 0, 0, time.UTC)
	if last := lastDayOf(first); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// lastDayOf returns the number of days in the month containing first,
// which must be the first of the month.
func lastDayOf(first time.Time) int {
	return first.AddDate(0, 1, -1).Day()
}

// monthBounds returns the inclusive first and last dates of a YYYY-MM month.
func monthBounds(month string) (string, string, error) {
	t, err := time.Parse(yearMonth, month)
	if err != nil {
		return "", "", fmt.Errorf("parse month %q: %w", month, err)
	}
	last := t.AddDate(0, 1, -1).Day()
	return month + "-01", fmt.Sprintf("%s-%02d", month, last), nil
}
