package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClockLayout is the wall clock format of slot boundaries.
const ClockLayout = "15:04"

// clockSecondsLayout is how PostgreSQL renders TIME values.
const clockSecondsLayout = "15:04:05"

var weekdayTitle = cases.Title(language.English)

// Slot is one recurring weekly availability window of a doctor.
type Slot struct {
	ID        int64
	DoctorID  string
	Day       time.Weekday
	StartTime string
	EndTime   string
}

// ParseWeekday accepts a weekday name in any letter case.
func ParseWeekday(name string) (time.Weekday, error) {
	normalized := weekdayTitle.String(strings.ToLower(strings.TrimSpace(name)))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == normalized {
			return d, nil
		}
	}
	return 0, autherror.InvalidFormat(fmt.Sprintf("available_day %q is not a weekday name", name))
}

func parseClock(value, field string) (int, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		t, err = time.Parse(clockSecondsLayout, value)
	}
	if err != nil || t.Second() != 0 {
		return 0, autherror.InvalidFormat(field + " must be formatted as HH:MM")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeSlots validates a full replacement set and returns it with
// canonical HH:MM times. Order is preserved.
func NormalizeSlots(doctorID string, slots []Slot) ([]Slot, error) {
	type window struct{ start, end, index int }
	byDay := make(map[time.Weekday][]window)
	out := make([]Slot, 0, len(slots))

	for i, s := range slots {
		start, err := parseClock(s.StartTime, "start_time")
		if err != nil {
			return nil, err
		}
		end, err := parseClock(s.EndTime, "end_time")
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, autherror.Validation(fmt.Sprintf("slot %d: start_time must be before end_time", i+1))
		}
		byDay[s.Day] = append(byDay[s.Day], window{start, end, i})
		out = append(out, Slot{DoctorID: doctorID, Day: s.Day, StartTime: formatClock(start), EndTime: formatClock(end)})
	}

	for day, windows := range byDay {
		sort.Slice(windows, func(a, b int) bool { return windows[a].start < windows[b].start })
		for i := 1; i < len(windows); i++ {
			if windows[i].start < windows[i-1].end {
				return nil, autherror.Validation(fmt.Sprintf("slots %d and %d overlap on %s",
					windows[i-1].index+1, windows[i].index+1, day))
			}
		}
	}

	return out, nil
}

// Covers reports whether the wall clock of t falls inside the slot.
// The end boundary is exclusive.
func (s Slot) Covers(t time.Time) bool {
	if t.Weekday() != s.Day {
		return false
	}
	start, err := parseClock(s.StartTime, "start_time")
	if err != nil {
		return false
	}
	end, err := parseClock(s.EndTime, "end_time")
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= start && minute < end
}
