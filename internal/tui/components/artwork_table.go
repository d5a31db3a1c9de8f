package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gallery/internal/domain"
	"github.com/mmcdole/gallery/internal/search"
	"github.com/mmcdole/gallery/internal/tui/styles"
)

// Layout constants for the artwork table
const (
	checkboxWidth  = 3
	startDateWidth = 10
	categoryWidth  = 16
	cellPadding    = 2 // TableCellStyle pads one space on each side
	columnCount    = 5

	// MinTableWidth is the narrowest width the columns still fit in
	MinTableWidth = 60
)

// ArtworkTable is the checkbox table showing the records of one page.
// Rows can be narrowed with a fuzzy filter; the checkbox state comes from
// the checked func so the table never owns the selection.
type ArtworkTable struct {
	table   table.Model
	records []domain.Artwork
	visible []int // indices into records
	checked func(id int) bool

	// Filter state
	filtering   bool
	filterInput textinput.Model
	filterQuery string

	width  int
	height int
}

// NewArtworkTable creates an empty table. checked reports whether a record is selected.
func NewArtworkTable(checked func(id int) bool) ArtworkTable {
	if checked == nil {
		checked = func(int) bool { return false }
	}

	ti := textinput.New()
	ti.Placeholder = "type to filter this page..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle
	s.Cell = styles.TableCellStyle
	s.Selected = styles.TableSelectedStyle

	t := ArtworkTable{
		table: table.New(
			table.WithFocused(true),
			table.WithHeight(domain.PageSize+1),
			table.WithStyles(s),
			table.WithKeyMap(TableKeyMap()),
		),
		checked:     checked,
		filterInput: ti,
	}
	t.SetSize(MinTableWidth+20, domain.PageSize+2)
	return t
}

// SetRecords replaces the rows with a freshly loaded page.
// An active filter query is applied to the new rows.
func (t *ArtworkTable) SetRecords(records []domain.Artwork) {
	t.records = records
	t.visible = search.FilterPage(t.filterQuery, records)
	t.Refresh()
	if len(t.visible) > 0 {
		t.table.SetCursor(0)
	}
}

// Refresh rebuilds the rows, e.g. after the selection changed
func (t *ArtworkTable) Refresh() {
	t.table.SetColumns(t.columns())

	rows := make([]table.Row, 0, len(t.visible))
	for _, idx := range t.visible {
		rec := t.records[idx]
		rows = append(rows, table.Row{
			styles.Checkbox(t.checked(rec.ID)),
			rec.Artist,
			rec.Department,
			rec.Classification,
			rec.StartYear(),
		})
	}
	t.table.SetRows(rows)

	if n := len(rows); n > 0 && t.table.Cursor() >= n {
		t.table.SetCursor(n - 1)
	}
}

// columns sizes the columns to the available width
func (t ArtworkTable) columns() []table.Column {
	width := t.width
	if width < MinTableWidth {
		width = MinTableWidth
	}
	flexible := width - columnCount*cellPadding - checkboxWidth - startDateWidth - categoryWidth
	artistWidth := flexible * 55 / 100
	departmentWidth := flexible - artistWidth

	return []table.Column{
		{Title: t.headerCheckbox(), Width: checkboxWidth},
		{Title: "Artist ▾", Width: artistWidth},
		{Title: "Department Title", Width: departmentWidth},
		{Title: "Category", Width: categoryWidth},
		{Title: "Start Date", Width: startDateWidth},
	}
}

// headerCheckbox summarizes the checked state of the visible rows
func (t ArtworkTable) headerCheckbox() string {
	if len(t.visible) == 0 {
		return styles.UncheckedBox
	}
	n := 0
	for _, idx := range t.visible {
		if t.checked(t.records[idx].ID) {
			n++
		}
	}
	switch {
	case n == 0:
		return styles.UncheckedBox
	case n == len(t.visible):
		return styles.CheckedBox
	default:
		return styles.PartialBox
	}
}

// SelectedRecord returns the record under the cursor
func (t ArtworkTable) SelectedRecord() (domain.Artwork, bool) {
	cursor := t.table.Cursor()
	if cursor < 0 || cursor >= len(t.visible) {
		return domain.Artwork{}, false
	}
	return t.records[t.visible[cursor]], true
}

// Cursor returns the cursor row among the visible rows
func (t ArtworkTable) Cursor() int {
	return t.table.Cursor()
}

// VisibleRecords returns the rows currently shown
func (t ArtworkTable) VisibleRecords() []domain.Artwork {
	out := make([]domain.Artwork, len(t.visible))
	for i, idx := range t.visible {
		out[i] = t.records[idx]
	}
	return out
}

// SetSize sets the outer dimensions of the table
func (t *ArtworkTable) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.filterInput.Width = width - 4

	rows := height - 1 // header
	if t.filterQuery != "" || t.filtering {
		rows--
	}
	if rows > domain.PageSize+1 {
		rows = domain.PageSize + 1
	}
	if rows < 3 {
		rows = 3
	}
	t.table.SetHeight(rows)
	t.table.SetWidth(width)
	t.table.SetColumns(t.columns())
}

// IsFiltering returns true while the filter query is being edited
func (t ArtworkTable) IsFiltering() bool {
	return t.filtering
}

// FilterQuery returns the applied filter query
func (t ArtworkTable) FilterQuery() string {
	return t.filterQuery
}

// StartFilter focuses the filter input
func (t *ArtworkTable) StartFilter() tea.Cmd {
	t.filtering = true
	t.filterInput.SetValue(t.filterQuery)
	t.filterInput.CursorEnd()
	t.table.Blur()
	return t.filterInput.Focus()
}

// ClearFilter drops the filter and shows every row again
func (t *ArtworkTable) ClearFilter() {
	t.filtering = false
	t.filterQuery = ""
	t.filterInput.SetValue("")
	t.filterInput.Blur()
	t.table.Focus()
	t.visible = search.FilterPage("", t.records)
	t.Refresh()
}

// Update handles navigation and filter editing
func (t ArtworkTable) Update(msg tea.Msg) (ArtworkTable, tea.Cmd) {
	if t.filtering {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				t.filtering = false
				t.filterInput.Blur()
				t.table.Focus()
				return t, nil
			case "esc":
				t.ClearFilter()
				return t, nil
			}
		}

		var cmd tea.Cmd
		t.filterInput, cmd = t.filterInput.Update(msg)
		if q := t.filterInput.Value(); q != t.filterQuery {
			t.filterQuery = q
			t.visible = search.FilterPage(q, t.records)
			t.Refresh()
			if len(t.visible) > 0 {
				t.table.SetCursor(0)
			}
		}
		return t, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" && t.filterQuery != "" {
		t.ClearFilter()
		return t, nil
	}

	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	return t, cmd
}

// View renders the table with the filter line below it
func (t ArtworkTable) View() string {
	view := t.table.View()
	if len(t.visible) == 0 {
		empty := "No artworks on this page"
		if t.filterQuery != "" {
			empty = "No rows match " + strconv.Quote(t.filterQuery)
		}
		view = lipgloss.JoinVertical(lipgloss.Left, view, styles.DimStyle.Render("  "+empty))
	}
	if t.filtering {
		view = lipgloss.JoinVertical(lipgloss.Left, view, t.filterInput.View())
	} else if t.filterQuery != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view,
			styles.FilterPromptStyle.Render("/ ")+styles.FilterStyle.Render(t.filterQuery)+styles.DimStyle.Render("  (esc to clear)"))
	}
	return view
}
