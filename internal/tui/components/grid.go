package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/tunes/internal/domain"
	"github.com/mmcdole/tunes/internal/tui/styles"
)

// Layout constants for grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Each cell: border top/bottom + title, artist and meta lines
	CellHeight = BorderHeight + 3

	// Header line plus scroll indicators above and below the cells
	GridChromeLines = 3
)

// Grid shows search results as a multi-column grid of cells
type Grid struct {
	items   []domain.SearchResultItem
	columns int

	// Selection (cursor indexes the visible, possibly filtered, items)
	cursor      int
	rowOffset   int
	visibleRows int

	// Dimensions
	width   int
	height  int
	focused bool

	header string
	footer string // end-of-list or error line
	errLine bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewGrid creates a new grid component
func NewGrid(columns int) Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	if columns < 1 {
		columns = 1
	}
	return Grid{
		columns:     columns,
		filterInput: ti,
		visibleRows: 1,
	}
}

// SetItems replaces the items, keeping the cursor when the list only grew
func (g *Grid) SetItems(items []domain.SearchResultItem) {
	g.items = items
	if g.filterActive {
		g.refilter()
	}
	g.SetCursor(g.cursor)
}

// Reset clears items, cursor and filter for a new query
func (g *Grid) Reset() {
	g.items = nil
	g.cursor = 0
	g.rowOffset = 0
	g.clearFilter()
}

// SetHeader sets the text shown above the cells
func (g *Grid) SetHeader(s string) {
	g.header = s
}

// SetFooter sets the end-of-list line. isErr renders it as an error.
func (g *Grid) SetFooter(s string, isErr bool) {
	g.footer = s
	g.errLine = isErr
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcVisibleRows()
	g.ensureVisible()
}

func (g *Grid) recalcVisibleRows() {
	interior := g.height - BorderHeight - GridChromeLines
	if g.filterActive {
		interior--
	}
	g.visibleRows = max(interior/CellHeight, 1)
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// Columns returns the number of cells per row
func (g Grid) Columns() int {
	return g.columns
}

// VisibleRows returns how many rows of cells fit in the viewport
func (g Grid) VisibleRows() int {
	return g.visibleRows
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor moves the cursor, clamped to the visible items
func (g *Grid) SetCursor(pos int) {
	count := g.itemCount()
	if count == 0 {
		g.cursor = 0
		g.rowOffset = 0
		return
	}
	g.cursor = max(0, min(pos, count-1))
	g.ensureVisible()
}

// SelectedItem returns the item under the cursor
func (g Grid) SelectedItem() (domain.SearchResultItem, bool) {
	if g.cursor >= g.itemCount() {
		return domain.SearchResultItem{}, false
	}
	return g.items[g.mapIndex(g.cursor)], true
}

// IsEmpty returns true if there are no visible items
func (g Grid) IsEmpty() bool {
	return g.itemCount() == 0
}

// NearEnd reports whether the cursor sits within the last half viewport of
// rows. Filtering suspends it since the visible list is a local subset.
func (g Grid) NearEnd() bool {
	if g.filterActive && g.filterQuery != "" {
		return false
	}
	count := g.itemCount()
	if count == 0 {
		return false
	}
	rowsBelow := g.totalRows() - 1 - g.cursor/g.columns
	return rowsBelow <= max(g.visibleRows/2, 1)
}

func (g Grid) totalRows() int {
	return (g.itemCount() + g.columns - 1) / g.columns
}

// ensureVisible scrolls so the cursor row is in view
func (g *Grid) ensureVisible() {
	row := g.cursor / g.columns
	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+g.visibleRows {
		g.rowOffset = row - g.visibleRows + 1
	}
	if g.rowOffset < 0 {
		g.rowOffset = 0
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalcVisibleRows()
}

// IsFiltering returns true if filter mode is active
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if filter is active and the input has focus
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	// keep the same item selected once the full list is back
	raw := g.mapIndex(g.cursor)
	g.clearFilter()
	g.SetCursor(raw)
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcVisibleRows()
}

// applyFilter filters items based on the current input
func (g *Grid) applyFilter() {
	g.refilter()
	g.cursor = 0
	g.rowOffset = 0
}

func (g *Grid) refilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
		return
	}

	titles := make([]string, len(g.items))
	for i := range g.items {
		titles[i] = filterKey(&g.items[i])
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)
	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}
}

// filterKey is the text the "/" filter matches against
func filterKey(item domain.ListItem) string {
	return strings.ToLower(item.GetTitle() + " " + item.GetDescription())
}

func (g Grid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.items)
}

func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Typing into the filter
	if g.IsFilterTyping() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, GridKeys.Escape):
				g.ClearFilter()
				return g, nil
			case key.Matches(msg, GridKeys.Accept):
				g.filterInput.Blur()
				return g, nil
			case key.Matches(msg, GridKeys.Erase) && g.filterInput.Value() == "":
				g.ClearFilter()
				return g, nil
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		if g.filterInput.Value() != g.filterQuery {
			g.applyFilter()
		}
		return g, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	// Filter applied, navigating its results
	if g.filterActive {
		switch {
		case key.Matches(keyMsg, GridKeys.Escape):
			g.ClearFilter()
			return g, nil
		case key.Matches(keyMsg, GridKeys.Filter):
			g.filterInput.Focus()
			return g, nil
		}
	}

	count := g.itemCount()
	if count == 0 {
		return g, nil
	}

	halfPage := max(g.visibleRows/2, 1) * g.columns
	switch {
	case key.Matches(keyMsg, GridKeys.Right):
		g.SetCursor(g.cursor + 1)
	case key.Matches(keyMsg, GridKeys.Left):
		g.SetCursor(g.cursor - 1)
	case key.Matches(keyMsg, GridKeys.Down):
		if g.cursor+g.columns < count {
			g.SetCursor(g.cursor + g.columns)
		} else if g.cursor/g.columns < g.totalRows()-1 {
			// partial last row
			g.SetCursor(count - 1)
		}
	case key.Matches(keyMsg, GridKeys.Up):
		if g.cursor-g.columns >= 0 {
			g.SetCursor(g.cursor - g.columns)
		}
	case key.Matches(keyMsg, GridKeys.Home):
		g.SetCursor(0)
	case key.Matches(keyMsg, GridKeys.End):
		g.SetCursor(count - 1)
	case key.Matches(keyMsg, GridKeys.HalfDown):
		g.SetCursor(g.cursor + halfPage)
	case key.Matches(keyMsg, GridKeys.HalfUp):
		g.SetCursor(g.cursor - halfPage)
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	content := g.renderCells(g.width - frameW)

	return style.
		Width(g.width - frameW).
		Height(g.height - frameH).
		Render(content)
}

func (g Grid) renderCells(innerWidth int) string {
	headerLine := " "
	if g.header != "" {
		headerLine = styles.AccentStyle.Render(styles.Truncate(g.header, innerWidth))
	}

	count := g.itemCount()
	if count == 0 {
		msg := g.footer
		if g.filterActive && g.filterQuery != "" {
			msg = "No matches"
		}
		content := headerLine + "\n \n" + g.renderFooterLine(msg, innerWidth)
		if g.filterActive {
			content += "\n" + g.renderFilterBar()
		}
		return content
	}

	cellWidth := max(innerWidth/g.columns, 8)

	var rows []string
	firstRow := g.rowOffset
	lastRow := min(g.rowOffset+g.visibleRows, g.totalRows())
	for r := firstRow; r < lastRow; r++ {
		var cells []string
		for c := 0; c < g.columns; c++ {
			i := r*g.columns + c
			if i >= count {
				break
			}
			cells = append(cells, g.renderCell(g.items[g.mapIndex(i)], i == g.cursor, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	up := " "
	if firstRow > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if lastRow < g.totalRows() {
		down = styles.DimStyle.Render("↓ more")
	} else if g.footer != "" {
		down = g.renderFooterLine(g.footer, innerWidth)
	}

	content := headerLine + "\n" + up + "\n" + strings.Join(rows, "\n") + "\n" + down
	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}
	return content
}

func (g Grid) renderFooterLine(s string, width int) string {
	if s == "" {
		return " "
	}
	s = styles.Truncate(s, width)
	if g.errLine {
		return styles.ErrorStyle.Render(s)
	}
	return styles.DimStyle.Render(s)
}

// renderCell renders a single result: badge and title, artist, price/year
func (g Grid) renderCell(item domain.SearchResultItem, selected bool, width int) string {
	style := styles.GridCellStyle
	titleStyle := styles.SubtitleStyle
	if selected {
		style = styles.GridCellSelectedStyle
		titleStyle = styles.TitleStyle
	}

	// content width = cell - border - padding
	inner := max(width-BorderWidth-2, 1)

	badgeStyle := styles.DimBadgeStyle
	if selected {
		badgeStyle = styles.BadgeStyle
	}
	badge := badgeStyle.Render(item.Badge())
	title := styles.Truncate(item.Title, max(inner-lipgloss.Width(badge)-1, 1))
	line1 := badge + " " + titleStyle.Render(title)

	line2 := styles.DimStyle.Render(styles.Truncate(item.ArtistName, inner))

	var meta []string
	if p := item.PriceLabel(); p != "" {
		meta = append(meta, p)
	}
	if y := item.ReleaseYear(); y > 0 {
		meta = append(meta, fmt.Sprintf("%d", y))
	}
	line3 := styles.DimStyle.Render(styles.Truncate(strings.Join(meta, " · "), inner))

	return style.Width(width - BorderWidth).Render(line1 + "\n" + line2 + "\n" + line3)
}

// renderFilterBar renders the filter input bar
func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()
	if g.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.itemCount(), len(g.items)))
}
