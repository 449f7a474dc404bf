package util

import "time"

// Almaty is the product's operating timezone (UTC+5). Day bucketing and
// period boundaries are always computed in this location, regardless of how
// timestamps are stored.
var Almaty = loadAlmaty()

func loadAlmaty() *time.Location {
	loc, err := time.LoadLocation("Asia/Almaty")
	if err != nil {
		// Almaty has no DST, so a fixed offset is an exact fallback for
		// hosts shipped without tzdata.
		return time.FixedZone("UTC+5", 5*60*60)
	}
	return loc
}

// MonthStart returns the first instant of t's calendar month in Almaty.
func MonthStart(t time.Time) time.Time {
	t = t.In(Almaty)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, Almaty)
}

// NextMonthStart returns the first instant of the month after t's month,
// i.e. the exclusive end of t's budget period.
func NextMonthStart(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// MonthsBack returns the first day of the month n months before t's month.
func MonthsBack(t time.Time, n int) time.Time {
	return MonthStart(t).AddDate(0, -n, 0)
}

// DayStart returns midnight of t's Almaty calendar day.
func DayStart(t time.Time) time.Time {
	t = t.In(Almaty)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Almaty)
}

// DayKey returns t's Almaty calendar day in ISO form, the bucket key for
// daily series.
func DayKey(t time.Time) string {
	return t.In(Almaty).Format("2006-01-02")
}

// PreviousWindow returns the window of identical length immediately
// preceding [start, end).
func PreviousWindow(start, end time.Time) (time.Time, time.Time) {
	return start.Add(-end.Sub(start)), start
}
