package monitor

import "time"

// Window is a daily operating window defined by (hour, minute) bounds,
// inclusive on both ends. Only the time of day matters; the date is ignored.
type Window struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// Contains reports whether t's time of day falls inside the window. A window
// whose end precedes its start is treated as crossing midnight.
func (w Window) Contains(t time.Time) bool {
	now := t.Hour()*3600 + t.Minute()*60 + t.Second()
	start := w.StartHour*3600 + w.StartMinute*60
	end := w.EndHour*3600 + w.EndMinute*60

	if start <= end {
		return now >= start && now <= end
	}
	return now >= start || now <= end
}
