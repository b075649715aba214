package engine

import (
	"strings"
	"time"

	"readquest/internal/model"
)

// A session that ends between NightOwlHour and NightOwlUntil (local, across
// midnight) counts as late-night reading.
const (
	NightOwlHour  = 23
	NightOwlUntil = 4
)

// BadgeChecker calculates which badges the hero has earned. Badges are
// derived on every call and never stored.
type BadgeChecker struct {
	stats    model.HeroStats
	books    []model.Book
	sessions []model.Session
	loc      *time.Location
}

func NewBadgeChecker(stats model.HeroStats, books []model.Book, sessions []model.Session) *BadgeChecker {
	return &BadgeChecker{
		stats:    stats,
		books:    books,
		sessions: sessions,
		loc:      time.Local,
	}
}

// In sets the location used for time-of-day badges.
func (c *BadgeChecker) In(loc *time.Location) *BadgeChecker {
	if loc != nil {
		c.loc = loc
	}
	return c
}

// Badges returns all badges with their unlocked status.
func (c *BadgeChecker) Badges() []model.Badge {
	return []model.Badge{
		c.streakBadge("daily_pilgrim", "Daily Pilgrim", "Regular adventurer on the path of knowledge.", "7 Day Streak", "🔥", 7),
		c.nightOwlBadge("night_owl", "Night Owl", "The stars whisper stories to those who listen.", "Finish a session between 11 PM and 4 AM", "🦉"),
		c.sessionCountBadge("first_chapter", "First Chapter", "Every saga starts with a single page.", "Finish a session", "📖", 1),
		c.booksBadge("quest_cleared", "Quest Cleared", "The last page has been turned.", "Complete a book", "🏁", 1),
		c.booksBadge("scholar", "Scholar", "A shelf of conquered tomes.", "Complete 5 books", "🎓", 5),
		c.attrBadge("deep_diver", "Deep Diver", "Long sessions sharpen the mind.", "Focus 10", "🎯", model.AttributeFocus, 10),
		c.attrBadge("archivist", "Archivist", "Notes preserve what pages reveal.", "Comprehension 10", "🗂️", model.AttributeComprehension, 10),
		c.genreBadge("wanderer", "Wanderer", "Many lands, many tongues.", "Complete 3 genres", "🧭", 3),
	}
}

// Unlocked returns only the earned badges.
func (c *BadgeChecker) Unlocked() []model.Badge {
	var out []model.Badge
	for _, b := range c.Badges() {
		if b.Unlocked {
			out = append(out, b)
		}
	}
	return out
}

// CountEarned returns how many badges have been earned.
func (c *BadgeChecker) CountEarned() int {
	return len(c.Unlocked())
}

// NewlyUnlocked returns badges unlocked in after that were locked in before.
func NewlyUnlocked(before, after []model.Badge) []model.Badge {
	was := make(map[string]bool, len(before))
	for _, b := range before {
		was[b.ID] = b.Unlocked
	}
	var out []model.Badge
	for _, b := range after {
		if b.Unlocked && !was[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

func badge(id, name, desc, cond, icon string, earned bool) model.Badge {
	return model.Badge{ID: id, Name: name, Description: desc, Condition: cond, Icon: icon, RewardXP: 50, Unlocked: earned}
}

func (c *BadgeChecker) streakBadge(id, name, desc, cond, icon string, days int) model.Badge {
	return badge(id, name, desc, cond, icon, c.stats.Streak >= days)
}

func (c *BadgeChecker) nightOwlBadge(id, name, desc, cond, icon string) model.Badge {
	earned := false
	for _, s := range c.sessions {
		if h := s.EndedAt.In(c.loc).Hour(); h >= NightOwlHour || h < NightOwlUntil {
			earned = true
			break
		}
	}
	return badge(id, name, desc, cond, icon, earned)
}

func (c *BadgeChecker) sessionCountBadge(id, name, desc, cond, icon string, count int) model.Badge {
	return badge(id, name, desc, cond, icon, len(c.sessions) >= count)
}

func (c *BadgeChecker) booksBadge(id, name, desc, cond, icon string, count int) model.Badge {
	done := 0
	for _, b := range c.books {
		if b.Status == model.StatusCompleted {
			done++
		}
	}
	return badge(id, name, desc, cond, icon, done >= count)
}

func (c *BadgeChecker) attrBadge(id, name, desc, cond, icon string, attr model.Attribute, level int) model.Badge {
	return badge(id, name, desc, cond, icon, c.stats.Attributes.Get(attr) >= level)
}

func (c *BadgeChecker) genreBadge(id, name, desc, cond, icon string, count int) model.Badge {
	genres := map[string]bool{}
	for _, b := range c.books {
		if b.Status == model.StatusCompleted {
			genres[strings.ToLower(strings.TrimSpace(b.Genre))] = true
		}
	}
	return badge(id, name, desc, cond, icon, len(genres) >= count)
}
