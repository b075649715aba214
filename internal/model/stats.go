package model

import "fmt"

const (
	// DefaultMaxXP is the xp bar size of a fresh hero.
	DefaultMaxXP = 1000

	DefaultDisplayName = "Reader"
)

// DefaultStats returns the first-run hero.
func DefaultStats() HeroStats {
	return HeroStats{
		Level:       1,
		XP:          0,
		MaxXP:       DefaultMaxXP,
		DisplayName: DefaultDisplayName,
	}
}

// Validate checks the non-negativity invariants of a stored hero.
func (s HeroStats) Validate() error {
	checks := []struct {
		field string
		ok    bool
	}{
		{"level", s.Level >= 1},
		{"xp", s.XP >= 0},
		{"maxXp", s.MaxXP > 0},
		{"streak", s.Streak >= 0},
		{"mana", s.Mana >= 0},
		{"booksRead", s.BooksRead >= 0},
		{"totalTimeHours", s.TotalTimeHours >= 0},
		{"attributes.focus", s.Attributes.Focus >= 0},
		{"attributes.comprehension", s.Attributes.Comprehension >= 0},
		{"attributes.discipline", s.Attributes.Discipline >= 0},
		{"attributes.exploration", s.Attributes.Exploration >= 0},
	}
	for _, c := range checks {
		if !c.ok {
			return InputError{Field: c.field, Reason: "out of range"}
		}
	}
	return nil
}

// XPPercent is how full the xp bar is, in [0,100]. Never stored.
func (s HeroStats) XPPercent() int {
	if s.MaxXP <= 0 {
		return 0
	}
	p := s.XP * 100 / s.MaxXP
	if p > 100 {
		return 100
	}
	return p
}

// FormatDuration renders seconds as mm:ss, or h:mm:ss past the hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	sec := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
