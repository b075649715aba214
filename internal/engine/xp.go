package engine

import (
	"fmt"
	"math"
	"strings"

	"readquest/internal/model"
)

const (
	// XPRequiredCoef is the curve constant: XP_req = 500 * (Level^1.5)
	XPRequiredCoef = 500.0
)

// LevelPolicy decides how accumulated xp maps onto level and the xp bar.
type LevelPolicy interface {
	Name() string
	Apply(stats model.HeroStats) model.HeroStats
}

// StaticLevel leaves level and maxXp untouched; xp only accumulates.
type StaticLevel struct{}

func (StaticLevel) Name() string { return "static" }

func (StaticLevel) Apply(s model.HeroStats) model.HeroStats { return s }

// CurveLevel derives level from total xp on the 500*L^1.5 curve. Level never
// goes down and maxXp is always the next level's threshold.
type CurveLevel struct{}

func (CurveLevel) Name() string { return "curve" }

func (CurveLevel) Apply(s model.HeroStats) model.HeroStats {
	lvl := LevelForTotalXP(s.XP)
	if lvl < 1 {
		lvl = 1
	}
	if lvl > s.Level {
		s.Level = lvl
	}
	s.MaxXP = XPRequiredForLevel(s.Level + 1)
	return s
}

// ParseLevelPolicy maps a config value onto a policy. Empty means static.
func ParseLevelPolicy(name string) (LevelPolicy, error) {
	switch strings.TrimSpace(strings.ToLower(name)) {
	case "", "static":
		return StaticLevel{}, nil
	case "curve":
		return CurveLevel{}, nil
	default:
		return nil, fmt.Errorf("invalid level policy: %q", name)
	}
}

// XPRequiredForLevel returns the total XP threshold required to be at the given level.
// Level 0 requires 0 XP.
func XPRequiredForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	req := XPRequiredCoef * math.Pow(float64(level), 1.5)
	// ceil so float rounding never makes a threshold easier
	return int(math.Ceil(req))
}

// LevelForTotalXP returns the highest level L such that totalXP >= XPRequiredForLevel(L).
func LevelForTotalXP(totalXP int) int {
	if totalXP <= 0 {
		return 0
	}

	// Exponential search upper bound, then binary search.
	low := 0
	high := 1
	for XPRequiredForLevel(high) <= totalXP {
		low = high
		high *= 2
		if high > 1_000_000 {
			break
		}
	}

	for low+1 < high {
		mid := low + (high-low)/2
		if XPRequiredForLevel(mid) <= totalXP {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}
