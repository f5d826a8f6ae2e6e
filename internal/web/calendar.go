package web

import "time"

// MonthDay is one day row of the grid.
type MonthDay struct {
	DateKey string // entry key, "2006-01-02"
	Day     int
	Weekday string
	Weekend bool
	Today   bool
}

// Month is one rendered calendar month: a label plus one MonthDay per day.
type Month struct {
	Year  int
	Index int // zero-based month index
	Label string
	Days  []MonthDay
	PrevY int
	PrevM int
	NextY int
	NextM int
}

// buildMonth lays out one calendar month. month0 is zero-based
// (0 = January); out-of-range values roll over the year, matching
// time.Date semantics.
func buildMonth(year, month0 int, now time.Time) Month {
	start := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	todayKey := now.UTC().Format("2006-01-02")

	m := Month{
		Year:  start.Year(),
		Index: int(start.Month()) - 1,
		Label: start.Format("January 2006"),
	}
	prev := start.AddDate(0, -1, 0)
	next := start.AddDate(0, 1, 0)
	m.PrevY, m.PrevM = prev.Year(), int(prev.Month())-1
	m.NextY, m.NextM = next.Year(), int(next.Month())-1

	for day := start; day.Month() == start.Month(); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		wd := day.Weekday()
		m.Days = append(m.Days, MonthDay{
			DateKey: key,
			Day:     day.Day(),
			Weekday: wd.String(),
			Weekend: wd == time.Saturday || wd == time.Sunday,
			Today:   key == todayKey,
		})
	}
	return m
}

// dayKeys returns the entry keys for every day of the month, in order.
func (m Month) dayKeys() []string {
	keys := make([]string, len(m.Days))
	for i, d := range m.Days {
		keys[i] = d.DateKey
	}
	return keys
}
