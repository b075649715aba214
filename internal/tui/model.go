package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"readquest/internal/app"
	"readquest/internal/assist"
	"readquest/internal/model"
	"readquest/internal/ui"
)

type boardModel struct {
	ctx   context.Context
	coord *app.Coordinator

	width  int
	height int

	selected int
	shopSel  int

	// reading screen input
	pages    string
	note     string
	noteMode bool
	shard    string
	shardFor int

	quote *app.PendingPurchase

	lastLog string

	now  func() time.Time
	copy func(string) error
}

type tickMsg time.Time

type shardMsg struct {
	seq  int
	text string
}

func newBoardModel(ctx context.Context, coord *app.Coordinator) boardModel {
	m := boardModel{
		ctx:     ctx,
		coord:   coord,
		lastLog: "Loaded.",
		now:     time.Now,
		copy:    clipboard.WriteAll,
	}
	if w := coord.Warnings(); len(w) > 0 {
		m.lastLog = ui.IconWarn + " " + w[len(w)-1]
	}
	return m
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// shardCmd fetches the memory shard off the update loop; a slow or failing
// generator never blocks input.
func (m boardModel) shardCmd(book model.Book, seq int) tea.Cmd {
	gen := m.coord.ShardGenerator()
	ctx := m.ctx
	return func() tea.Msg {
		text, _ := assist.MemoryShard(ctx, gen, book.Title)
		return shardMsg{seq: seq, text: text}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if _, ok := m.coord.Reading(); !ok {
			return m, nil
		}
		return m, tickCmd()
	case shardMsg:
		// results for an abandoned session are dropped
		if r, ok := m.coord.Reading(); ok && r.Seq == msg.seq {
			m.shard = msg.text
			m.shardFor = msg.seq
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.coord.View() {
		case app.ViewReading:
			return m.updateReading(msg)
		case app.ViewShop:
			return m.updateShop(msg)
		default:
			return m.updateDashboard(msg)
		}
	}
	return m, nil
}

func (m boardModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.coord.ActiveBooks())-1 {
			m.selected++
		}
	case "d", "esc":
		_ = m.coord.Navigate(app.ViewDashboard)
	case "s":
		_ = m.coord.Navigate(app.ViewShop)
		m.shopSel = 0
	case "t":
		_ = m.coord.Navigate(app.ViewStats)
	case "c":
		_ = m.coord.Navigate(app.ViewCalendar)
	case "enter":
		active := m.coord.ActiveBooks()
		if m.coord.View() != app.ViewDashboard || len(active) == 0 {
			return m, nil
		}
		book, err := m.coord.StartSession(active[m.clampSelected(len(active))].ID, m.now())
		if err != nil {
			m.lastLog = errText(err)
			return m, nil
		}
		m.pages, m.note, m.noteMode = "", "", false
		r, _ := m.coord.Reading()
		m.shard, m.shardFor = "", 0
		m.lastLog = fmt.Sprintf("Reading %s. Enter pages read, then press enter.", book.Title)
		return m, tea.Batch(tickCmd(), m.shardCmd(book, r.Seq))
	}
	return m, nil
}

func (m boardModel) updateReading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.noteMode {
		switch msg.Type {
		case tea.KeyTab, tea.KeyEsc:
			m.noteMode = false
		case tea.KeyBackspace:
			if r := []rune(m.note); len(r) > 0 {
				m.note = string(r[:len(r)-1])
			}
		case tea.KeySpace:
			m.note += " "
		case tea.KeyRunes:
			m.note += string(msg.Runes)
		}
		return m, nil
	}

	switch {
	case key == "esc":
		m.coord.CancelSession()
		m.lastLog = "Session abandoned."
	case key == "tab":
		m.noteMode = true
	case key == "p":
		if err := m.coord.TogglePause(m.now()); err != nil {
			m.lastLog = errText(err)
		}
	case key == "y":
		if m.shard == "" {
			m.lastLog = "No memory shard yet."
			return m, nil
		}
		if err := m.copy(m.shard); err != nil {
			m.lastLog = "Copy failed: " + err.Error()
			return m, nil
		}
		m.lastLog = ui.IconShard + " Memory shard copied."
	case key == "backspace":
		if len(m.pages) > 0 {
			m.pages = m.pages[:len(m.pages)-1]
		}
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		if len(m.pages) < 5 {
			m.pages += key
		}
	case key == "enter":
		pages := 0
		if m.pages != "" {
			n, err := strconv.Atoi(m.pages)
			if err != nil {
				m.lastLog = errText(err)
				return m, nil
			}
			pages = n
		}
		out, err := m.coord.CompleteSession(m.ctx, pages, m.note, m.now())
		if err != nil {
			m.lastLog = errText(err)
			return m, nil
		}
		m.lastLog = outcomeText(out)
		m.selected = 0
	}
	return m, nil
}

func (m boardModel) updateShop(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.coord.Shop()
	if m.quote != nil {
		switch msg.String() {
		case "y", "Y":
			stats, err := m.coord.ConfirmPurchase(m.ctx, m.quote.Token)
			if err != nil {
				m.lastLog = errText(err)
			} else {
				m.lastLog = fmt.Sprintf("%s Bought %s. Mana left: %s", ui.IconShop, m.quote.Item.Name, ui.Number(stats.Mana))
			}
		default:
			m.coord.CancelPurchase(m.quote.Token)
			m.lastLog = "Purchase cancelled."
		}
		m.quote = nil
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "d":
		_ = m.coord.Navigate(app.ViewDashboard)
	case "up", "k":
		if m.shopSel > 0 {
			m.shopSel--
		}
	case "down", "j":
		if m.shopSel < len(items)-1 {
			m.shopSel++
		}
	case "b", "enter":
		if len(items) == 0 {
			return m, nil
		}
		q, err := m.coord.QuotePurchase(items[m.shopSel].ID)
		if err != nil {
			m.lastLog = errText(err)
			return m, nil
		}
		m.quote = &q
		m.lastLog = fmt.Sprintf("Buy %s for %s mana? (y/n)", q.Item.Name, ui.Number(q.Item.Price))
	}
	return m, nil
}

func (m boardModel) clampSelected(n int) int {
	if m.selected >= n {
		return n - 1
	}
	if m.selected < 0 {
		return 0
	}
	return m.selected
}

func errText(err error) string {
	switch {
	case errors.Is(err, model.ErrInsufficientFunds), errors.Is(err, model.ErrItemLocked):
		return ui.IconLock + " " + err.Error()
	case model.IsSoft(err):
		return ui.IconWarn + " " + err.Error()
	default:
		return ui.IconError + " " + err.Error()
	}
}

func outcomeText(out *app.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s +%d XP  +%d mana", ui.IconSparkle, out.Delta.XP, out.Delta.Mana)
	if out.Book.Status == model.StatusCompleted {
		fmt.Fprintf(&b, "  %s %s cleared!", ui.IconTrophy, out.Book.Title)
	}
	if out.LevelUp {
		fmt.Fprintf(&b, "  %s level %d", ui.BadgeLevelUp, out.Stats.Level)
	}
	for _, badge := range out.NewBadges {
		fmt.Fprintf(&b, "  %s %s", badge.Icon, badge.Name)
	}
	return b.String()
}
