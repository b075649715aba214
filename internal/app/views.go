package app

import (
	"fmt"
)

// View is one of the screens the coordinator can show.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewShop      View = "shop"
	ViewStats     View = "stats"
	ViewCalendar  View = "calendar"
	ViewAddQuest  View = "add"
	ViewReading   View = "reading"
)

// AllViews is the navigation order.
var AllViews = []View{ViewDashboard, ViewShop, ViewStats, ViewCalendar, ViewAddQuest, ViewReading}

func (v View) IsValid() bool {
	switch v {
	case ViewDashboard, ViewShop, ViewStats, ViewCalendar, ViewAddQuest, ViewReading:
		return true
	default:
		return false
	}
}

func ParseView(s string) (View, error) {
	v := View(s)
	if !v.IsValid() {
		return "", fmt.Errorf("unknown view %q", s)
	}
	return v, nil
}

// View returns the active screen.
func (c *Coordinator) View() View { return c.view }

// Navigate switches screens. The reading screen is only reachable through
// StartSession; leaving it abandons the running session.
func (c *Coordinator) Navigate(v View) error {
	if !v.IsValid() {
		return fmt.Errorf("unknown view %q", v)
	}
	if v == ViewReading && c.reading == nil {
		return ErrNoSession
	}
	if c.view == ViewReading && v != ViewReading {
		c.reading = nil
	}
	c.view = v
	return nil
}
