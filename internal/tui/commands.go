package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gallery/internal/browser"
	"github.com/mmcdole/gallery/internal/domain"
	"github.com/mmcdole/gallery/internal/service"
)

// Command factories for async operations

// FetchPageCmd loads the page of req
func FetchPageCmd(svc *service.CatalogService, req browser.PageRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := svc.FetchPage(ctx, req.Page)
		if err != nil {
			return PageFailedMsg{Request: req, Err: err}
		}
		return PageLoadedMsg{Request: req, Page: page}
	}
}

// FetchBulkCmd loads the first req.Count records of the catalog
func FetchBulkCmd(svc *service.CatalogService, req browser.BulkRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		records, err := svc.FetchFirst(ctx, req.Count)
		if err != nil {
			return BulkFailedMsg{Target: req.Target, Err: err}
		}
		return BulkLoadedMsg{Target: req.Target, Records: records}
	}
}

// SaveSelectionCmd persists a selection snapshot
func SaveSelectionCmd(svc *service.SelectionService, version uint64, snap domain.SelectionSnapshot) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		err := svc.Save(version, snap)
		if err != nil {
			slog.Error("selection save failed", "version", version, "error", err)
		}
		return SelectionSavedMsg{Version: version, Err: err}
	}
}

// ClearStatusCmd returns a command that clears status seq after a delay
func ClearStatusCmd(seq uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
