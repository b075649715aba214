package model

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

type Attribute string

const (
	AttributeFocus         Attribute = "focus"
	AttributeComprehension Attribute = "comprehension"
	AttributeDiscipline    Attribute = "discipline"
	AttributeExploration   Attribute = "exploration"
)

// AllAttributes is the display order used by the stats screens.
var AllAttributes = []Attribute{
	AttributeFocus,
	AttributeComprehension,
	AttributeDiscipline,
	AttributeExploration,
}

func (a Attribute) IsValid() bool {
	switch a {
	case AttributeFocus, AttributeComprehension, AttributeDiscipline, AttributeExploration:
		return true
	default:
		return false
	}
}

type Attributes struct {
	Focus         int `json:"focus"`
	Comprehension int `json:"comprehension"`
	Discipline    int `json:"discipline"`
	Exploration   int `json:"exploration"`
}

// Get returns the value of a single attribute; unknown attributes read as 0.
func (a Attributes) Get(attr Attribute) int {
	switch attr {
	case AttributeFocus:
		return a.Focus
	case AttributeComprehension:
		return a.Comprehension
	case AttributeDiscipline:
		return a.Discipline
	case AttributeExploration:
		return a.Exploration
	default:
		return 0
	}
}

// Book is a tracked quest.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Genre       string    `json:"genre"`
	CoverRef    string    `json:"coverRef"`
	Status      Status    `json:"status"`
	LastRead    time.Time `json:"lastRead"`
}

// HeroStats is the singleton progression record.
type HeroStats struct {
	Level          int        `json:"level"`
	XP             int        `json:"xp"`
	MaxXP          int        `json:"maxXp"`
	Streak         int        `json:"streak"`
	Mana           int        `json:"mana"`
	BooksRead      int        `json:"booksRead"`
	TotalTimeHours float64    `json:"totalTimeHours"`
	Attributes     Attributes `json:"attributes"`
	DisplayName    string     `json:"displayName"`
	AvatarRef      string     `json:"avatarRef"`
}

// ShopItem is a static catalog entry. It is rebuilt from the embedded
// catalog on every start and never persisted.
type ShopItem struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Price       int    `json:"price" yaml:"price"`
	ImageRef    string `json:"imageRef" yaml:"image"`
	Locked      bool   `json:"locked" yaml:"locked"`
}

// Badge is derived from stats and the session log on demand.
type Badge struct {
	ID          string
	Name        string
	Description string
	Condition   string
	Icon        string
	RewardXP    int
	Unlocked    bool
}

// Session is one completed reading session as recorded in the session log.
type Session struct {
	ID             int64
	BookID         string
	PagesRead      int
	ElapsedSeconds int
	Note           string
	XPGained       int
	ManaGained     int
	EndedAt        time.Time
}
