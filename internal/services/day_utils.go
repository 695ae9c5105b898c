package services

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDay keeps the wall-clock date of value and pins it to UTC midnight,
// so day arithmetic never crosses a DST boundary.
func CalendarDay(value time.Time) time.Time {
	if value.IsZero() {
		return time.Time{}
	}
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ParseDay(raw string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, raw, time.UTC)
}

func dayKey(value time.Time) string {
	return value.Format(dayLayout)
}

func daysBetween(from time.Time, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func addDays(value time.Time, days int) time.Time {
	return value.AddDate(0, 0, days)
}

func containsDay(days []time.Time, needle time.Time) bool {
	index := sort.Search(len(days), func(i int) bool {
		return !days[i].Before(needle)
	})
	return index < len(days) && days[index].Equal(needle)
}
