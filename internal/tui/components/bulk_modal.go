package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gallery/internal/tui/styles"
)

// BulkModal is a small popover holding a numeric input. The app uses one
// anchored to the Artist column for bulk selection and one for page jumps.
type BulkModal struct {
	visible bool
	title   string
	hint    string
	input   textinput.Model
}

// NewBulkModal creates the popover asking how many rows to select from the
// start of the catalog
func NewBulkModal() BulkModal {
	return newNumberModal("Select rows from the start", "number of rows")
}

// NewJumpModal creates the popover asking for a page number
func NewJumpModal() BulkModal {
	return newNumberModal("Go to page", "page number")
}

func newNumberModal(title, placeholder string) BulkModal {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 7
	ti.Width = 20
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Validate = digitsOnly

	return BulkModal{
		title: title,
		input: ti,
	}
}

// digitsOnly rejects anything but decimal digits
func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("not a number")
		}
	}
	return nil
}

// Show displays the modal with hint below the input
func (m *BulkModal) Show(hint string) tea.Cmd {
	m.visible = true
	m.hint = hint
	m.input.SetValue("")
	return m.input.Focus()
}

// Hide dismisses the modal
func (m *BulkModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m BulkModal) IsVisible() bool {
	return m.visible
}

// Value returns the raw input
func (m BulkModal) Value() string {
	return m.input.Value()
}

// Target parses the input. provided is false when the input is empty or not a number.
func (m BulkModal) Target() (target int, provided bool) {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Update handles input events, returns (modal, cmd, submitted)
func (m BulkModal) Update(msg tea.Msg) (BulkModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the modal
func (m BulkModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 30

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Bold(true).
		Width(modalWidth).
		Background(styles.SlateDark)

	lineStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark)

	hint := styles.DimStyle.Render(m.hint)
	if m.input.Err != nil {
		hint = styles.ErrorStyle.Render("digits only")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		lineStyle.Render(""),
		lineStyle.Render(m.input.View()),
		lineStyle.Render(""),
		lineStyle.Render(styles.AccentStyle.Render("enter")+styles.DimStyle.Render(" select  ")+
			styles.AccentStyle.Render("esc")+styles.DimStyle.Render(" close")),
		lineStyle.Render(hint),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Gold).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(content)
}
