package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/tunes/internal/domain"
	"github.com/mmcdole/tunes/internal/tui/styles"
)

// Layout constants for the detail pane
const (
	DetailBorderHeight     = 2
	DetailScrollIndicators = 2
)

// detailContent holds the three-zone layout content
type detailContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Detail presents the detail record of one result. It is a side pane on the
// results screen and the whole screen once an item is opened.
type Detail struct {
	params  domain.DetailParams
	item    domain.SearchResultItem
	hasItem bool

	width      int
	height     int
	offset     int // body scroll offset
	maxVisible int
	focused    bool
}

// NewDetail creates a new detail component
func NewDetail() Detail {
	return Detail{}
}

// SetItem sets what to display
func (d *Detail) SetItem(params domain.DetailParams, item domain.SearchResultItem) {
	if d.hasItem && d.item.ID == item.ID && d.params == params {
		return
	}
	d.params = params
	d.item = item
	d.hasItem = true
	d.offset = 0
}

// Clear removes the displayed item
func (d *Detail) Clear() {
	d.params = domain.DetailParams{}
	d.item = domain.SearchResultItem{}
	d.hasItem = false
	d.offset = 0
}

// HasItem returns true if there is an item to display
func (d Detail) HasItem() bool {
	return d.hasItem
}

// Params returns the displayed detail record
func (d Detail) Params() domain.DetailParams {
	return d.params
}

// Item returns the displayed result
func (d Detail) Item() domain.SearchResultItem {
	return d.item
}

// SetSize updates the component dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
	// title and blank line take two more
	d.maxVisible = max(height-DetailBorderHeight-DetailScrollIndicators-2, 1)
}

// SetFocused sets the focus state
func (d *Detail) SetFocused(focused bool) {
	d.focused = focused
}

// Update scrolls the body when focused
func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	if !d.focused {
		return d, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, DetailKeys.Down):
			d.offset++
		case key.Matches(msg, DetailKeys.Up):
			if d.offset > 0 {
				d.offset--
			}
		case key.Matches(msg, DetailKeys.Top):
			d.offset = 0
		}
	}
	return d, nil
}

// View renders the component
func (d Detail) View() string {
	style := styles.InactiveBorder
	if d.focused {
		style = styles.ActiveBorder
	}

	contentWidth := max(d.width-3, 10)
	content := d.render(contentWidth)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Details", contentWidth))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(d.maxVisible-len(headerLines)-len(footerLines), 1)

	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(d.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if content.header != "" {
		parts = append(parts, strings.Join(headerLines, "\n"))
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if content.footer != "" {
		parts = append(parts, strings.Join(footerLines, "\n"))
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(d.width - frameW).
		Height(d.height - frameH).
		Render(strings.Join(parts, "\n"))
}

func (d Detail) render(width int) detailContent {
	if !d.hasItem {
		return detailContent{body: styles.DimStyle.Render("No item selected")}
	}
	return detailContent{
		header: d.renderHeader(width),
		body:   d.renderBody(width),
		footer: d.renderFooter(width),
	}
}

func (d Detail) renderHeader(width int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(d.params.Title, width)))
	if d.item.CollectionName != "" && d.item.CollectionName != d.params.Title {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(d.item.CollectionName, width)))
	}
	return b.String()
}

// renderBody lists the detail rows in order. Missing values stay blank.
func (d Detail) renderBody(width int) string {
	valueWidth := max(width-styles.LabelStyle.GetWidth(), 1)

	var lines []string
	for _, row := range d.params.Rows() {
		lines = append(lines, styles.LabelStyle.Render(row.Label)+
			styles.SubtitleStyle.Render(styles.Truncate(row.Value, valueWidth)))
	}

	if d.params.Image != "" {
		lines = append(lines, "")
		lines = append(lines, styles.DimStyle.Render("Artwork"))
		lines = append(lines, wrapURL(d.params.Image, width)...)
	}
	if d.item.TrackViewURL != "" {
		lines = append(lines, "")
		lines = append(lines, styles.DimStyle.Render("Store page"))
		lines = append(lines, wrapURL(d.item.TrackViewURL, width)...)
	}
	return strings.Join(lines, "\n")
}

func (d Detail) renderFooter(width int) string {
	if d.item.OpenURL() == "" {
		return ""
	}
	hint := "open store page"
	if d.item.PreviewURL != "" {
		hint = "play preview"
	}
	sep := styles.DimStyle.Render(strings.Repeat("─", width))
	return sep + "\n" + styles.RenderKeyHint("o", hint)
}

// wrapURL breaks a URL into width-sized dim lines
func wrapURL(url string, width int) []string {
	var lines []string
	for len(url) > width {
		lines = append(lines, styles.DimStyle.Render(url[:width]))
		url = url[width:]
	}
	return append(lines, styles.DimStyle.Render(url))
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
