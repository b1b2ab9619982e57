package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/repolens/repolens/pkg/scout"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// ProfileListModel is the bubbletea model for interactive result selection.
type ProfileListModel struct {
	Profiles []scout.Profile
	Cursor   int
	Selected *scout.Profile
	Height   int
	Offset   int
}

// NewProfileListModel creates a new profile list model.
func NewProfileListModel(profiles []scout.Profile) ProfileListModel {
	return ProfileListModel{
		Profiles: profiles,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m ProfileListModel) Init() tea.Cmd {
	return nil
}

func (m ProfileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Profiles)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			p := m.Profiles[m.Cursor]
			m.Selected = &p
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

func (m ProfileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Repository"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ analyze  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Profiles) {
		end = len(m.Profiles)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Profiles[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			truncate(p.FullName, 40),
			orDash(p.Language),
			fmt.Sprintf("%d", p.Stars),
			formatCount(p.Contributors),
			formatRelativeTime(p.UpdatedAt),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Repository", "Lang", "Stars", "Contribs", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Profiles) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 5 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Profiles))))

	return b.String()
}

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return unknownField
	}

	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
