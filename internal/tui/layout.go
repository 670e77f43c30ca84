package tui

// Layout proportions
const (
	DetailPanePercent = 35 // side detail pane share of the width
	MinGridWidth      = 30
	MinDetailWidth    = 24

	// Vertical layout: single footer line
	ChromeHeight = 1
)

// paneWidths splits the width between grid and side detail pane. The pane
// is dropped when the terminal is too narrow for both.
func (m Model) paneWidths() (gridWidth, detailWidth int) {
	if !m.ShowDetail {
		return m.Width, 0
	}
	detailWidth = m.Width * DetailPanePercent / 100
	if detailWidth < MinDetailWidth || m.Width-detailWidth < MinGridWidth {
		return m.Width, 0
	}
	return m.Width - detailWidth, detailWidth
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.SearchBar.SetSize(m.Width)
	contentHeight := max(m.Height-ChromeHeight-m.SearchBar.Height(), 1)

	if m.State == StateDetail {
		m.Detail.SetSize(m.Width, contentHeight)
		return
	}

	gridWidth, detailWidth := m.paneWidths()
	m.Grid.SetSize(gridWidth, contentHeight)
	if detailWidth > 0 {
		m.Detail.SetSize(detailWidth, contentHeight)
	}
}
