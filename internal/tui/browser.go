package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sideline-dev/sideline/internal/session"
)

// DetailLoader renders the detail view for one session record.
type DetailLoader func(session.Record) (string, error)

// Browser is the interactive sessions list with a detail pane.
type Browser struct {
	rows       []session.Record
	cursor     int
	showDetail bool
	detail     viewport.Model
	loadDetail DetailLoader
	width      int
	height     int
	err        error
}

// NewBrowser creates a Browser over the given records. loadDetail is
// called lazily when a record is opened.
func NewBrowser(rows []session.Record, loadDetail DetailLoader) *Browser {
	return &Browser{
		rows:       rows,
		detail:     viewport.New(80, 20),
		loadDetail: loadDetail,
	}
}

func (b *Browser) Init() tea.Cmd {
	return nil
}

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.detail.Width = msg.Width - 4
		b.detail.Height = msg.Height - 6
		return b, nil

	case tea.KeyMsg:
		if b.showDetail {
			return b.updateDetail(msg)
		}
		return b.updateList(msg)
	}

	return b, nil
}

func (b *Browser) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", KeyEsc, KeyCtrlC:
		return b, tea.Quit

	case KeyUp, "k":
		if b.cursor > 0 {
			b.cursor--
		}

	case KeyDown, "j":
		if b.cursor < len(b.rows)-1 {
			b.cursor++
		}

	case KeyEnter:
		if len(b.rows) == 0 {
			return b, nil
		}
		b.openDetail(b.rows[b.cursor])
	}

	return b, nil
}

func (b *Browser) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", KeyCtrlC:
		return b, tea.Quit

	case KeyEsc:
		b.showDetail = false
		b.err = nil
		return b, nil
	}

	var cmd tea.Cmd
	b.detail, cmd = b.detail.Update(msg)
	return b, cmd
}

func (b *Browser) openDetail(rec session.Record) {
	b.showDetail = true
	b.err = nil

	if b.loadDetail == nil {
		b.detail.SetContent(rowLine(rec))
		return
	}
	content, err := b.loadDetail(rec)
	if err != nil {
		b.err = err
		b.detail.SetContent("")
		return
	}
	b.detail.SetContent(content)
	b.detail.GotoTop()
}

func (b *Browser) View() string {
	if b.showDetail {
		return b.detailView()
	}
	return b.listView()
}

func (b *Browser) listView() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Sessions"))
	sb.WriteString("\n\n")

	if len(b.rows) == 0 {
		sb.WriteString(DimStyle.Render("No sessions recorded yet."))
		sb.WriteString("\n")
	}

	for i, rec := range b.rows {
		line := rowLine(rec)
		if i == b.cursor {
			sb.WriteString(SelectedStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render("up/down move - enter open - q quit"))
	return sb.String()
}

func (b *Browser) detailView() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(b.rows[b.cursor].SessionID))
	sb.WriteString("\n\n")

	if b.err != nil {
		sb.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", b.err)))
	} else {
		sb.WriteString(b.detail.View())
	}

	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render("esc back - q quit"))
	return sb.String()
}

// rowLine formats one list entry.
func rowLine(rec session.Record) string {
	when := rec.CreatedAt.Local().Format("2006-01-02 15:04")
	context := rec.Exercise
	if context == "" {
		context = rec.Location
	}
	return fmt.Sprintf("%s  %-10s %-20s %-16s %s", when, rec.Sport, rec.PlayerName, context, rec.Status)
}
