package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"readquest/internal/model"
)

// readquest theme (CLI + TUI).

const (
	IconQuest    = "📖"
	IconDone     = "✅"
	IconSparkle  = "✨"
	IconPlus     = "➕"
	IconMana     = "💎"
	IconXP       = "⭐"
	IconStreak   = "🔥"
	IconTrophy   = "🏆"
	IconShop     = "🛒"
	IconLock     = "🔒"
	IconShard    = "🔮"
	IconCalendar = "📅"
	IconTimer    = "⏳"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cMana    = lipgloss.Color("45")  // cyan
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Mana  = lipgloss.NewStyle().Bold(true).Foreground(cMana)
	Quote = lipgloss.NewStyle().Italic(true).Foreground(cAccent)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
	ReadDay     = lipgloss.NewStyle().Bold(true).Foreground(cGood)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

var printer = message.NewPrinter(language.English)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Number groups digits: 12450 -> 12,450.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// ManaText renders a mana amount.
func ManaText(n int) string {
	return Mana.Render(IconMana + " " + Number(n))
}

func StatusText(status model.Status) string {
	switch status {
	case model.StatusCompleted:
		return Good.Render("completed")
	case model.StatusActive:
		return H2.Render("active")
	default:
		return Muted.Render(string(status))
	}
}

func BookIcon(status model.Status) string {
	if status == model.StatusCompleted {
		return IconDone
	}
	return IconQuest
}

// AttributeLabel is the display name of an attribute and what feeds it.
func AttributeLabel(a model.Attribute) (name, source string) {
	switch a {
	case model.AttributeFocus:
		return "Focus", "Duration"
	case model.AttributeComprehension:
		return "Comprehension", "Notes"
	case model.AttributeDiscipline:
		return "Discipline", "Streak"
	case model.AttributeExploration:
		return "Exploration", "Genres"
	default:
		return string(a), ""
	}
}

// Bar renders value/total as a fixed-width text progress bar.
func Bar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := int(float64(value) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
