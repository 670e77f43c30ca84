package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/tunes/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var content string
	switch {
	case m.State == StateDetail:
		content = m.Detail.View()
	default:
		if _, detailWidth := m.paneWidths(); detailWidth > 0 {
			content = lipgloss.JoinHorizontal(lipgloss.Top, m.Grid.View(), m.Detail.View())
		} else {
			content = m.Grid.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.SearchBar.View(),
		content,
		m.renderFooter(),
	)
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while a page is outstanding, else the status message
	var left string
	st := m.Controller.State()
	if st.Loading {
		text := fmt.Sprintf("Loading page %d...", st.Page)
		left = m.Spinner.View() + " " + styles.DimStyle.Render(text)
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	// Center: hints for the current focus
	var hints []string
	switch {
	case m.State == StateDetail:
		hints = append(hints, styles.RenderKeyHint("o", "open"), styles.RenderKeyHint("esc", "back"))
	case m.Focus == FocusInput:
		hints = append(hints, styles.RenderKeyHint("enter", "search"), styles.RenderKeyHint("tab", "results"))
	default:
		hints = append(hints, styles.RenderKeyHint("enter", "details"), styles.RenderKeyHint("o", "open"),
			styles.RenderKeyHint("/", "filter"))
	}
	center := strings.Join(hints, "  ")

	right := styles.RenderKeyHint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SEARCH                          RESULTS
  type       Search as you type   h/j/k/l    Move
  Enter      Search now           g/G        First/last result
  ↑/↓        Pick a suggestion    Ctrl+u/d   Scroll half page
  C-x        Forget suggestion    /          Filter loaded results
  Tab/Esc    Go to results        Enter      Details
                                  o          Play preview / open store
OTHER                             i          Toggle detail pane
  ?          This help            s/Tab      Back to search
  q          Quit                 Esc        Clear filter / back

Press ? or Esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
