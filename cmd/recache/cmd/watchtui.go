package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// buildEvent is one row of watch history: a completed or failed rebuild.
type buildEvent struct {
	at       time.Time
	ok       bool
	assets   int
	notFound int
	duration time.Duration
	err      error
}

// watchDashboard is the bubbletea model behind "serve --tui": a scrolling
// table of rebuild history, fed by events pushed over a channel from the
// fsnotify watch loop.
type watchDashboard struct {
	events  table.Model
	history []buildEvent
	addr    string
	outDir  string
	width   int
	height  int

	headerStyle lipgloss.Style
	okStyle     lipgloss.Style
	failStyle   lipgloss.Style
	footerStyle lipgloss.Style
}

type buildEventMsg buildEvent

func newWatchDashboard(addr, outDir string) watchDashboard {
	columns := []table.Column{
		{Title: "Time", Width: 8},
		{Title: "Status", Width: 8},
		{Title: "Assets", Width: 8},
		{Title: "Not found", Width: 10},
		{Title: "Duration", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("99"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	s.Cell = s.Cell.Foreground(lipgloss.Color("252"))
	t.SetStyles(s)

	return watchDashboard{
		events: t,
		addr:   addr,
		outDir: outDir,

		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		okStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		failStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		footerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (m watchDashboard) Init() tea.Cmd {
	return nil
}

func (m watchDashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.events.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case buildEventMsg:
		m.history = append(m.history, buildEvent(msg))
		m.events.SetRows(eventRows(m.history))
		m.events.GotoBottom()
		return m, nil
	}
	return m, nil
}

func (m watchDashboard) View() string {
	header := m.headerStyle.Render(fmt.Sprintf("recache serve — %s", m.addr))
	sub := m.footerStyle.Render(fmt.Sprintf("output: %s  (q to quit, rebuilds appear below)", m.outDir))
	footer := m.footerStyle.Render(fmt.Sprintf("%d rebuild(s) so far", len(m.history)))
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n", header, sub, m.events.View(), footer)
}

func eventRows(events []buildEvent) []table.Row {
	rows := make([]table.Row, len(events))
	for i, e := range events {
		status := "ok"
		if !e.ok {
			status = "failed"
		}
		rows[i] = table.Row{
			e.at.Format("15:04:05"),
			status,
			fmt.Sprintf("%d", e.assets),
			fmt.Sprintf("%d", e.notFound),
			e.duration.Round(time.Millisecond).String(),
		}
	}
	return rows
}
