package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gallery/internal/domain"
	"github.com/mmcdole/gallery/internal/search"
	"github.com/mmcdole/gallery/internal/tui/styles"
)

// PanelAction is what the selection panel asks the app to do
type PanelAction struct {
	Uncheck *domain.Artwork
	Close   bool
}

// SelectionPanel lists the selected records across all pages in selection order
type SelectionPanel struct {
	visible bool
	records []domain.Artwork
	rows    []int // filtered indices into records

	cursor int
	offset int
	keys   PanelKeyMap

	filtering   bool
	filterInput textinput.Model

	width  int
	height int
}

// NewSelectionPanel creates a hidden selection panel
func NewSelectionPanel() SelectionPanel {
	ti := textinput.New()
	ti.Placeholder = "artist or department..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return SelectionPanel{
		keys:        DefaultPanelKeyMap(),
		filterInput: ti,
		width:       70,
		height:      20,
	}
}

// Show opens the panel on records
func (p *SelectionPanel) Show(records []domain.Artwork) {
	p.visible = true
	p.cursor = 0
	p.offset = 0
	p.SetRecords(records)
}

// Hide closes the panel and drops its filter
func (p *SelectionPanel) Hide() {
	p.visible = false
	p.filtering = false
	p.filterInput.SetValue("")
	p.filterInput.Blur()
}

// IsVisible returns whether the panel is shown
func (p SelectionPanel) IsVisible() bool {
	return p.visible
}

// SetRecords updates the listed records, keeping the filter
func (p *SelectionPanel) SetRecords(records []domain.Artwork) {
	p.records = records
	p.rows = search.FilterSelection(p.filterInput.Value(), records)
	p.clampCursor()
}

// SetSize sets the outer dimensions of the panel
func (p *SelectionPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.filterInput.Width = width - 10
	p.clampCursor()
}

// Len returns the number of listed rows
func (p SelectionPanel) Len() int {
	return len(p.rows)
}

func (p SelectionPanel) maxRows() int {
	// border, padding, title, blank, filter line, footer
	rows := p.height - 8
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (p *SelectionPanel) clampCursor() {
	if p.cursor >= len(p.rows) {
		p.cursor = len(p.rows) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if max := p.maxRows(); p.cursor >= p.offset+max {
		p.offset = p.cursor - max + 1
	}
}

// Update handles input, returns (panel, cmd, action)
func (p SelectionPanel) Update(msg tea.Msg) (SelectionPanel, tea.Cmd, PanelAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !p.visible || !ok {
		return p, nil, PanelAction{}
	}

	if p.filtering {
		switch keyMsg.String() {
		case "enter":
			p.filtering = false
			p.filterInput.Blur()
			return p, nil, PanelAction{}
		case "esc":
			p.filtering = false
			p.filterInput.SetValue("")
			p.filterInput.Blur()
			p.SetRecords(p.records)
			return p, nil, PanelAction{}
		}
		var cmd tea.Cmd
		p.filterInput, cmd = p.filterInput.Update(msg)
		p.SetRecords(p.records)
		return p, cmd, PanelAction{}
	}

	switch {
	case key.Matches(keyMsg, p.keys.Close):
		p.Hide()
		return p, nil, PanelAction{Close: true}
	case key.Matches(keyMsg, p.keys.Filter):
		p.filtering = true
		return p, p.filterInput.Focus(), PanelAction{}
	case key.Matches(keyMsg, p.keys.Up):
		p.cursor--
		p.clampCursor()
	case key.Matches(keyMsg, p.keys.Down):
		p.cursor++
		p.clampCursor()
	case key.Matches(keyMsg, p.keys.Uncheck):
		if p.cursor < len(p.rows) {
			rec := p.records[p.rows[p.cursor]]
			return p, nil, PanelAction{Uncheck: &rec}
		}
	}
	return p, nil, PanelAction{}
}

// View renders the panel
func (p SelectionPanel) View() string {
	if !p.visible {
		return ""
	}

	inner := p.width - 6
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	title := fmt.Sprintf("Selected artworks (%d)", len(p.records))
	b.WriteString(styles.ModalTitleStyle.Render(title))
	b.WriteString("\n")

	if len(p.rows) == 0 {
		if len(p.records) == 0 {
			b.WriteString(styles.DimStyle.Render("Nothing selected yet"))
		} else {
			b.WriteString(styles.DimStyle.Render("No selected rows match the filter"))
		}
		b.WriteString("\n")
	}

	end := p.offset + p.maxRows()
	if end > len(p.rows) {
		end = len(p.rows)
	}
	for i := p.offset; i < end; i++ {
		rec := p.records[p.rows[i]]
		artist := rec.Artist
		if artist == "" {
			artist = "Unknown artist"
		}
		line := fmt.Sprintf("#%-8d %s · %s", rec.ID, artist, rec.Department)
		line = styles.Truncate(line, inner-2)
		if i == p.cursor {
			b.WriteString(styles.SelectedItemStyle.Width(inner).Render(line))
		} else {
			b.WriteString(styles.NormalItemStyle.Width(inner).Render(line))
		}
		b.WriteString("\n")
	}

	if p.filtering || p.filterInput.Value() != "" {
		b.WriteString(p.filterInput.View())
		b.WriteString("\n")
	}

	b.WriteString(styles.AccentStyle.Render("space") + styles.DimStyle.Render(" unselect  ") +
		styles.AccentStyle.Render("/") + styles.DimStyle.Render(" filter  ") +
		styles.AccentStyle.Render("esc") + styles.DimStyle.Render(" close"))

	return styles.ModalStyle.Width(inner + 4).Render(b.String())
}
