package services

import (
	"fmt"
	"strings"
	"time"

	"pos_order_backend/internal/models"
)

// DateLayout is the calendar date format accepted in paths and query strings.
const DateLayout = "2006-01-02"

// parseDateBound reads a "YYYY-MM-DD" date or an RFC3339 timestamp.
// A calendar date becomes the start of that day, or its last instant when
// endOfDay is set. Timestamps are used as given.
func parseDateBound(value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		if endOfDay {
			return endOfDayOf(t), nil
		}
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD or RFC3339", ErrInvalidDate, value)
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// endOfDayOf returns 23:59:59.999 of t's day. Millisecond precision keeps the
// bound inside the day after Postgres rounds to microseconds and matches BSON
// datetimes.
func endOfDayOf(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// dayRange turns two calendar dates into an inclusive window covering both days.
func dayRange(start, end string, loc *time.Location) (models.OrderFilters, error) {
	from, err := parseDateBound(start, loc, false)
	if err != nil {
		return models.OrderFilters{}, err
	}
	to, err := parseDateBound(end, loc, true)
	if err != nil {
		return models.OrderFilters{}, err
	}
	return models.OrderFilters{From: &from, To: &to}, nil
}

// salesWindow builds the optional window of the sales endpoints. Missing
// bounds stay open; both missing means the whole history.
func salesWindow(q models.SalesQuery, loc *time.Location) (models.OrderFilters, error) {
	var filters models.OrderFilters
	if q.StartDate != "" {
		from, err := parseDateBound(q.StartDate, loc, false)
		if err != nil {
			return filters, err
		}
		filters.From = &from
	}
	if q.EndDate != "" {
		to, err := parseDateBound(q.EndDate, loc, true)
		if err != nil {
			return filters, err
		}
		filters.To = &to
	}
	return filters, nil
}

// trailingMonth is the default top-item window: from midnight of the same
// day-of-month one calendar month back (clipped to that month's last day)
// through now.
func trailingMonth(now time.Time) models.OrderFilters {
	y, m, d := now.Date()
	firstOfPrev := time.Date(y, m-1, 1, 0, 0, 0, 0, now.Location())
	lastDay := firstOfPrev.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	from := time.Date(firstOfPrev.Year(), firstOfPrev.Month(), d, 0, 0, 0, 0, now.Location())
	to := now
	return models.OrderFilters{From: &from, To: &to}
}
