package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"readquest/internal/app"
)

// RunBoard runs the interactive dashboard until the user quits.
func RunBoard(ctx context.Context, coord *app.Coordinator, out io.Writer) error {
	m := newBoardModel(ctx, coord)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
