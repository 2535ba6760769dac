package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/astroviz/starplot/pkg/chart"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FigureListModel - Interactive figure selection
// =============================================================================

// FigureListModel is the bubbletea model for picking one figure out of a
// multi-figure document.
type FigureListModel struct {
	Requests []chart.Request
	Cursor   int
	Selected int
	Height   int
	Offset   int
}

// NewFigureListModel creates a new figure list model.
func NewFigureListModel(requests []chart.Request) FigureListModel {
	return FigureListModel{
		Requests: requests,
		Cursor:   0,
		Selected: -1,
		Height:   15,
		Offset:   0,
	}
}

func (m FigureListModel) Init() tea.Cmd {
	return nil
}

func (m FigureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Requests)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FigureListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Figure"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Requests) {
		end = len(m.Requests)
	}

	for i := m.Offset; i < end; i++ {
		req := m.Requests[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		title := req.Title
		if title == "" {
			title = fmt.Sprintf("Figure %d", i+1)
		}

		points := 0
		for _, ds := range req.Datasets {
			points += ds.Len()
		}
		detail := fmt.Sprintf("%d datasets, %d points", len(req.Datasets), points)

		line := fmt.Sprintf("%s%-32s  %s", cursor, title, listDimStyle.Render(detail))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Requests))))

	return b.String()
}

// pickFigure runs the interactive figure picker and returns the index of the
// selected figure, or -1 if the user quit without selecting.
func pickFigure(requests []chart.Request) (int, error) {
	model := NewFigureListModel(requests)
	program := tea.NewProgram(model)

	final, err := program.Run()
	if err != nil {
		return -1, fmt.Errorf("run figure picker: %w", err)
	}

	result, ok := final.(FigureListModel)
	if !ok {
		return -1, fmt.Errorf("unexpected model type %T", final)
	}
	return result.Selected, nil
}
