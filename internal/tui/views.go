package tui

import (
	"fmt"
	"strings"
	"time"

	"readquest/internal/app"
	"readquest/internal/model"
	"readquest/internal/ui"
)

func (m boardModel) View() string {
	var body string
	switch m.coord.View() {
	case app.ViewReading:
		body = m.renderReading()
	case app.ViewShop:
		body = m.renderShop()
	case app.ViewStats:
		body = m.renderStats()
	case app.ViewCalendar:
		body = m.renderCalendar()
	default:
		body = m.renderDashboard()
	}
	return m.renderHeader() + "\n\n" + body + "\n" + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	s := m.coord.Stats()
	return fmt.Sprintf("%s | %s | Level %d | %s %d/%d %s | %s %d | %s",
		ui.Title.Render("readquest"),
		s.DisplayName,
		s.Level,
		ui.IconXP, s.XP, s.MaxXP, ui.Bar(s.XP, s.MaxXP, 20),
		ui.IconStreak, s.Streak,
		ui.ManaText(s.Mana),
	)
}

func (m boardModel) renderDashboard() string {
	lines := []string{ui.PanelTitle.Render("Active quests")}
	active := m.coord.ActiveBooks()
	if len(active) == 0 {
		lines = append(lines, ui.Muted.Render("(no active quests; add one with `rq add`)"))
	}
	sel := m.clampSelected(len(active))
	for i, b := range active {
		row := fmt.Sprintf("%s %s %s %d/%d (%d%%)", ui.BookIcon(b.Status), b.Title, ui.Bar(b.CurrentPage, b.TotalPages, 16), b.CurrentPage, b.TotalPages, b.Percent())
		if i == sel {
			row = ui.SelectedRow.Render("> " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}

	done := m.coord.CompletedBooks()
	if len(done) > 0 {
		lines = append(lines, "", ui.PanelTitle.Render("Completed"))
		for _, b := range done {
			lines = append(lines, fmt.Sprintf("  %s %s %s", ui.IconDone, b.Title, ui.Muted.Render(b.Author)))
		}
	}

	lines = append(lines, "", ui.Muted.Render("enter: read  s: shop  t: stats  c: calendar  j/k: move  q: quit"))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderReading() string {
	r, ok := m.coord.Reading()
	if !ok {
		return ui.Muted.Render("No session.")
	}
	book, err := m.coord.FindBook(r.BookID)
	if err != nil {
		return errText(err)
	}

	elapsed := int(m.coord.Elapsed(m.now()) / time.Second)
	timer := ui.IconTimer + " " + model.FormatDuration(elapsed)
	if r.Paused() {
		timer += ui.Warn.Render("  paused")
	}

	shard := ui.Muted.Render("Summoning a memory shard…")
	if m.shardFor == r.Seq && m.shard != "" {
		shard = ui.Quote.Render("“" + m.shard + "”")
	}

	pages := m.pages
	if pages == "" {
		pages = "0"
	}
	noteLabel := "Note"
	if m.noteMode {
		noteLabel = "Note (typing, tab to finish)"
	}

	lines := []string{
		ui.Heading(ui.IconQuest, book.Title),
		fmt.Sprintf("%s %d/%d", ui.Bar(book.CurrentPage, book.TotalPages, 24), book.CurrentPage, book.TotalPages),
		"",
		ui.Gold.Render(timer),
		"",
		ui.IconShard + " " + shard,
		"",
		ui.LabelValue("Pages read", pages),
		ui.LabelValue(noteLabel, m.note),
		"",
		ui.Muted.Render("digits: pages  tab: note  p: pause  y: copy shard  enter: finish  esc: abandon"),
	}
	return ui.Panel.Render(strings.Join(lines, "\n"))
}

func (m boardModel) renderShop() string {
	lines := []string{ui.Heading(ui.IconShop, "Shop"), ""}
	for i, it := range m.coord.Shop() {
		price := ui.ManaText(it.Price)
		if it.Locked {
			price = ui.Muted.Render(ui.IconLock + " locked")
		}
		row := fmt.Sprintf("%-12s %s  %s", it.Name, price, ui.Muted.Render(it.Description))
		if i == m.shopSel {
			row = ui.SelectedRow.Render("> "+it.Name) + "  " + price + "  " + ui.Muted.Render(it.Description)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", ui.Muted.Render("b/enter: buy  j/k: move  esc: back"))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderStats() string {
	s := m.coord.Stats()
	lines := []string{
		ui.Heading(ui.IconTrophy, "Hero"),
		ui.LabelValue("Books read", s.BooksRead),
		ui.LabelValue("Reading time", fmt.Sprintf("%.1fh", s.TotalTimeHours)),
		ui.LabelValue("Streak", fmt.Sprintf("%d days", s.Streak)),
		"",
		ui.PanelTitle.Render("Attributes"),
	}
	top := 10
	for _, a := range model.AllAttributes {
		if v := s.Attributes.Get(a); v > top {
			top = v
		}
	}
	for _, a := range model.AllAttributes {
		name, source := ui.AttributeLabel(a)
		v := s.Attributes.Get(a)
		lines = append(lines, fmt.Sprintf("%-14s %s %3d  %s", name, ui.Bar(v, top, 16), v, ui.Muted.Render(source)))
	}
	lines = append(lines, "", ui.Muted.Render("esc: back"))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderCalendar() string {
	now := m.now().In(m.coord.Location())
	lines := []string{ui.Heading(ui.IconCalendar, now.Format("January 2006")), ui.MonthGrid(now, m.coord.ReadingDays()), ""}

	lines = append(lines, ui.PanelTitle.Render("Badges"))
	for _, b := range m.coord.Badges() {
		if b.Unlocked {
			lines = append(lines, fmt.Sprintf("  %s %s  %s", b.Icon, ui.Good.Render(b.Name), ui.Muted.Render(b.Description)))
		} else {
			lines = append(lines, ui.Muted.Render(fmt.Sprintf("  %s %s  (%s)", ui.IconLock, b.Name, b.Condition)))
		}
	}
	lines = append(lines, "", ui.Muted.Render("esc: back"))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}
