package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gallery/internal/browser"
	"github.com/mmcdole/gallery/internal/domain"
	"github.com/mmcdole/gallery/internal/service"
	"github.com/mmcdole/gallery/internal/tui/components"
	"github.com/mmcdole/gallery/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Layout
const (
	// Title line, paginator line and footer
	ChromeHeight = 3

	// DefaultTimeout bounds a single page or bulk fetch
	DefaultTimeout = 30 * time.Second

	statusDelay = 3 * time.Second
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	CatalogSvc   *service.CatalogService
	SelectionSvc *service.SelectionService

	// Browser state, mutated only from Update
	Browser *browser.State

	// UI Components
	Table          components.ArtworkTable
	BulkModal      components.BulkModal
	JumpModal      components.BulkModal
	SelectionPanel components.SelectionPanel
	Spinner        spinner.Model
	Paginator      paginator.Model
	Help           help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	BulkPending bool

	initial     browser.PageRequest
	saveVersion uint64
	statusSeq   uint64
	timeout     time.Duration
	statusDelay time.Duration
}

// NewModel creates a new application model. The persisted selection, if
// any, is restored before the first page is requested.
func NewModel(catalogSvc *service.CatalogService, selectionSvc *service.SelectionService, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	st := browser.NewState()
	if selectionSvc != nil {
		st.Restore(selectionSvc.Load())
	}

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = domain.PageSize
	p.TotalPages = 1

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	m := Model{
		State:          StateBrowsing,
		CatalogSvc:     catalogSvc,
		SelectionSvc:   selectionSvc,
		Browser:        st,
		Table:          components.NewArtworkTable(func(id int) bool { return st.Selection.Contains(id) }),
		BulkModal:      components.NewBulkModal(),
		JumpModal:      components.NewJumpModal(),
		SelectionPanel: components.NewSelectionPanel(),
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.SpinnerStyle),
		),
		Paginator:   p,
		Help:        h,
		timeout:     timeout,
		statusDelay: statusDelay,
	}
	m.initial = st.RequestPage(0)
	return m
}

// Init fetches the first page
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		FetchPageCmd(m.CatalogSvc, m.initial, m.timeout),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case PageLoadedMsg:
		if !m.Browser.ApplyPage(msg.Request, msg.Page) {
			slog.Debug("dropping stale page", "page", msg.Request.Page, "seq", msg.Request.Seq)
			return m, nil
		}
		m.Table.SetRecords(m.Browser.Records)
		m.syncPaginator()
		return m, nil

	case PageFailedMsg:
		if !m.Browser.FailPage(msg.Request) {
			slog.Debug("dropping stale page failure", "page", msg.Request.Page, "error", msg.Err)
			return m, nil
		}
		// Previous records stay on screen; nothing is shown to the user
		slog.Error("page fetch failed", "page", msg.Request.Page, "error", msg.Err)
		m.syncPaginator()
		return m, nil

	case BulkLoadedMsg:
		m.BulkPending = false
		added := m.Browser.ApplyBulk(msg.Target, msg.Records)
		slog.Info("bulk selection applied", "target", msg.Target, "fetched", len(msg.Records), "added", added)
		m.refreshSelection()
		status := m.setStatus(fmt.Sprintf("Selected %d more (%d total)", added, m.Browser.Selection.Len()), false)
		return m, tea.Batch(m.saveSelection(), status)

	case BulkFailedMsg:
		m.BulkPending = false
		slog.Error("bulk fetch failed", "target", msg.Target, "error", msg.Err)
		return m, m.setStatus(ErrMsg{Err: msg.Err, Context: "selecting first " + fmt.Sprint(msg.Target)}.Error(), true)

	case SelectionSavedMsg:
		if msg.Err != nil {
			return m, m.setStatus("Could not save selection", true)
		}
		return m, nil

	case ErrMsg:
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.Seq != m.statusSeq {
			return m, nil
		}
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.State == StateHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// The filter input owns the keyboard while it is edited
	if m.Table.IsFiltering() {
		var cmd tea.Cmd
		m.Table, cmd = m.Table.Update(msg)
		m.updateLayout()
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Filter):
		cmd := m.Table.StartFilter()
		m.updateLayout()
		return m, cmd

	case key.Matches(msg, Keys.NextPage):
		if !m.Browser.Window.HasNext() {
			return m, nil
		}
		return m, m.goToPage(m.Browser.Window.Page + 1)

	case key.Matches(msg, Keys.PrevPage):
		if !m.Browser.Window.HasPrev() {
			return m, nil
		}
		return m, m.goToPage(m.Browser.Window.Page - 1)

	case key.Matches(msg, Keys.FirstPage):
		return m, m.goToPage(0)

	case key.Matches(msg, Keys.LastPage):
		count := m.Browser.Window.PageCount()
		if count == 0 {
			return m, m.setStatus("Total not known yet", false)
		}
		return m, m.goToPage(count - 1)

	case key.Matches(msg, Keys.JumpPage):
		hint := "total not known yet"
		if count := m.Browser.Window.PageCount(); count > 0 {
			hint = fmt.Sprintf("1 to %d", count)
		}
		return m, m.JumpModal.Show(hint)

	case key.Matches(msg, Keys.ToggleRow):
		rec, ok := m.Table.SelectedRecord()
		if !ok || m.Browser.Loading {
			return m, nil
		}
		m.Browser.Selection.Toggle(rec)
		m.refreshSelection()
		return m, m.saveSelection()

	case key.Matches(msg, Keys.TogglePage):
		if m.Browser.Loading {
			return m, nil
		}
		rows := m.Table.VisibleRecords()
		if len(rows) == 0 {
			return m, nil
		}
		m.Browser.Selection.TogglePage(rows)
		m.refreshSelection()
		return m, m.saveSelection()

	case key.Matches(msg, Keys.Bulk):
		if m.BulkPending {
			return m, m.setStatus("Bulk selection in progress", false)
		}
		return m, m.BulkModal.Show(fmt.Sprintf("%d selected now", m.Browser.Selection.Len()))

	case key.Matches(msg, Keys.Panel):
		m.SelectionPanel.Show(m.Browser.Selection.Records())
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.ClearAll):
		if m.Browser.Selection.Len() == 0 && m.Browser.BulkLimit == 0 {
			return m, nil
		}
		m.Browser.ClearSelection()
		m.refreshSelection()
		return m, tea.Batch(m.saveSelection(), m.setStatus("Selection cleared", false))
	}

	// Row navigation and esc (clears an applied filter)
	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	m.updateLayout()
	return m, cmd
}

// routeToModal forwards keys to the visible modal, if any
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch {
	case m.BulkModal.IsVisible():
		var cmd tea.Cmd
		var submitted bool
		m.BulkModal, cmd, submitted = m.BulkModal.Update(msg)
		if submitted {
			return true, m, m.submitBulk()
		}
		return true, m, cmd

	case m.JumpModal.IsVisible():
		var cmd tea.Cmd
		var submitted bool
		m.JumpModal, cmd, submitted = m.JumpModal.Update(msg)
		if submitted {
			return true, m, m.submitJump()
		}
		return true, m, cmd

	case m.SelectionPanel.IsVisible():
		var cmd tea.Cmd
		var action components.PanelAction
		m.SelectionPanel, cmd, action = m.SelectionPanel.Update(msg)
		if action.Uncheck != nil {
			m.Browser.Selection.Uncheck(action.Uncheck.ID)
			m.refreshSelection()
			return true, m, m.saveSelection()
		}
		return true, m, cmd
	}
	return false, m, nil
}

// submitBulk validates the bulk input and starts the fetch
func (m *Model) submitBulk() tea.Cmd {
	target, provided := m.BulkModal.Target()
	req, ok, err := m.Browser.PlanBulk(target, provided)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBulkCount) {
			return m.setStatus("Provide a valid value", true)
		}
		return m.setStatus(err.Error(), true)
	}
	m.BulkModal.Hide()
	if !ok {
		slog.Debug("bulk selection needs no fetch", "target", target, "limit", m.Browser.BulkLimit, "selected", m.Browser.Selection.Len())
		return nil
	}
	m.BulkPending = true
	return FetchBulkCmd(m.CatalogSvc, req, m.timeout)
}

// submitJump moves to the one-based page typed into the jump modal
func (m *Model) submitJump() tea.Cmd {
	target, provided := m.JumpModal.Target()
	if !provided || target <= 0 {
		return m.setStatus("Provide a valid value", true)
	}
	m.JumpModal.Hide()
	return m.goToPage(target - 1)
}

// goToPage requests a zero-based page unless it is already shown
func (m *Model) goToPage(page int) tea.Cmd {
	page = m.Browser.Window.Clamp(page)
	if page == m.Browser.Window.Page && !m.Browser.Loading && len(m.Browser.Records) > 0 {
		return nil
	}
	req := m.Browser.RequestPage(page)
	m.syncPaginator()
	return FetchPageCmd(m.CatalogSvc, req, m.timeout)
}

// refreshSelection redraws everything that shows checkbox state
func (m *Model) refreshSelection() {
	m.Table.Refresh()
	if m.SelectionPanel.IsVisible() {
		m.SelectionPanel.SetRecords(m.Browser.Selection.Records())
	}
}

// saveSelection persists the current selection in the background
func (m *Model) saveSelection() tea.Cmd {
	m.saveVersion++
	return SaveSelectionCmd(m.SelectionSvc, m.saveVersion, m.Browser.Snapshot())
}

// FlushSelection writes the final selection synchronously, used on exit
func (m Model) FlushSelection() error {
	if m.SelectionSvc == nil {
		return nil
	}
	return m.SelectionSvc.Save(m.saveVersion+1, m.Browser.Snapshot())
}

// setStatus shows a status message and schedules its removal
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	delay := m.statusDelay
	if isErr {
		delay *= 2
	}
	return ClearStatusCmd(m.statusSeq, delay)
}

// syncPaginator mirrors the window into the paginator
func (m *Model) syncPaginator() {
	w := m.Browser.Window
	if count := w.PageCount(); count > 0 {
		m.Paginator.SetTotalPages(w.Total)
	} else {
		// Unknown total: show at least one page past the current one
		m.Paginator.TotalPages = w.Page + 2
	}
	m.Paginator.Page = w.Page
}

// updateLayout resizes the components to the terminal
func (m *Model) updateLayout() {
	if !m.Ready {
		return
	}
	m.Table.SetSize(m.Width, m.Height-ChromeHeight)
	m.Help.Width = m.Width
	m.SelectionPanel.SetSize(min(m.Width-4, 90), m.Height-4)
}
