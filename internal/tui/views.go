package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gallery/internal/tui/styles"
)

// bulkModalOffset places the bulk popover under the Artist header
const bulkModalOffset = 5

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderPager(),
		m.renderFooter(),
	)

	// Overlay the bulk popover next to the Artist column
	if m.BulkModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Left, lipgloss.Top,
			lipgloss.NewStyle().MarginLeft(bulkModalOffset).MarginTop(2).Render(m.BulkModal.View()))
	}

	if m.JumpModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.JumpModal.View())
	}

	if m.SelectionPanel.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SelectionPanel.View())
	}

	return view
}

// renderHeader renders the title line with the selection badge
func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("Artworks")
	n := m.Browser.Selection.Len()
	if n == 0 {
		return title
	}

	badge := styles.BadgeStyle.Render(fmt.Sprintf("%d selected", n))
	if m.BulkPending {
		badge += " " + m.Spinner.View() + styles.DimStyle.Render(" selecting...")
	}
	return title + " " + badge
}

// renderBody renders the table, or the spinner while a page loads
func (m Model) renderBody() string {
	height := m.Height - ChromeHeight
	if height < 1 {
		height = 1
	}

	if m.Browser.Loading {
		loading := m.Spinner.View() + styles.DimStyle.Render(" Loading artworks...")
		return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center, loading)
	}

	return lipgloss.NewStyle().Height(height).MaxHeight(height).Render(m.Table.View())
}

// renderPager renders the page indicator and the record range
func (m Model) renderPager() string {
	pager := styles.AccentStyle.Render(m.Paginator.View())
	if m.Browser.Window.PageCount() == 0 {
		pager = styles.AccentStyle.Render(fmt.Sprintf("%d/?", m.Browser.Window.Page+1))
	}
	return pager + "  " + styles.DimStyle.Render(m.Browser.Summary())
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: status message, or key hints when idle
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	} else {
		left = m.Help.ShortHelpView(Keys.ShortHelp())
	}

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Keys"),
		m.Help.FullHelpView(Keys.FullHelp()),
		"",
		styles.DimStyle.Render("In the selection panel: space unselect, / filter, esc close"),
		styles.DimStyle.Render("Press ? or esc to return..."),
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}
