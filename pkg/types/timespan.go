package types

// DaysOfWeek is the CurbLR day set of a time span.
type DaysOfWeek struct {
	Days []DayCode `json:"days"`
}

// Contains reports whether d is in the set. Entries are compared after
// normalization, so "Mo" and "monday" both match Monday.
func (w DaysOfWeek) Contains(d DayCode) bool {
	for _, day := range w.Days {
		if day.Normalize() == d {
			return true
		}
	}
	return false
}

// TimeWindow is a CurbLR timesOfDay entry, a half-open window [From, To).
type TimeWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Contains reports whether t falls inside the window. A window whose From is
// later than its To wraps past midnight. Windows that fail to parse contain
// nothing.
func (w TimeWindow) Contains(t TimeOfDay) bool {
	from, err := ParseTimeOfDay(w.From)
	if err != nil {
		return false
	}
	to, err := ParseTimeOfDay(w.To)
	if err != nil {
		return false
	}
	if from <= to {
		return t >= from && t < to
	}
	return t >= from || t < to
}

// TimeSpan restricts when a regulation applies. A nil DaysOfWeek applies on
// every day; an empty TimesOfDay applies all day.
type TimeSpan struct {
	DaysOfWeek *DaysOfWeek  `json:"daysOfWeek,omitempty"`
	TimesOfDay []TimeWindow `json:"timesOfDay,omitempty"`
}

// Matches reports whether the span is in force for q.
func (s TimeSpan) Matches(q Query) bool {
	if !q.Valid() {
		return false
	}
	if s.DaysOfWeek != nil && !s.DaysOfWeek.Contains(q.Day) {
		return false
	}
	if len(s.TimesOfDay) == 0 {
		return true
	}
	for _, w := range s.TimesOfDay {
		if w.Contains(q.Time) {
			return true
		}
	}
	return false
}
