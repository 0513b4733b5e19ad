package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/validate"
)

// Messages. Each result carries the resource it was issued for so results
// that arrive after a resource switch are dropped.

type tickMsg time.Time

type loadedMsg struct {
	res string
	err error
}

type categoriesMsg struct {
	res  string
	cats []api.Category
	err  error
}

type submitDoneMsg struct {
	res string
	err error
}

type deleteDoneMsg struct {
	res string
	err error
}

type bulkDoneMsg struct {
	res     string
	removed int
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadCmd() tea.Cmd {
	s, ctx := m.session, m.ctx
	if s == nil {
		return nil
	}
	res := s.Resource().Name
	return func() tea.Msg {
		return loadedMsg{res: res, err: s.Reload(ctx)}
	}
}

func (m Model) categoriesCmd() tea.Cmd {
	s, ctx := m.session, m.ctx
	res := s.Resource().Name
	return func() tea.Msg {
		cats, err := s.Categories(ctx)
		return categoriesMsg{res: res, cats: cats, err: err}
	}
}

func (m Model) submitCmd(msg submitFormMsg) tea.Cmd {
	s, ctx := m.session, m.ctx
	if s == nil {
		return nil
	}
	r := s.Resource()
	return func() tea.Msg {
		p := msg.payload
		if msg.filePath != "" {
			path := expandHome(msg.filePath)
			f, err := os.Open(path)
			if err != nil {
				return submitDoneMsg{res: r.Name, err: fmt.Errorf("open image: %w", err)}
			}
			defer f.Close()
			p.Attachment = &api.Attachment{Field: r.FileField, FileName: filepath.Base(path), Body: f}
		}
		return submitDoneMsg{res: r.Name, err: s.Submit(ctx, p)}
	}
}

func (m Model) deleteCmd() tea.Cmd {
	s, ctx := m.session, m.ctx
	if s == nil {
		return nil
	}
	res := s.Resource().Name
	return func() tea.Msg {
		return deleteDoneMsg{res: res, err: s.ConfirmDelete(ctx)}
	}
}

func (m Model) bulkDeleteCmd() tea.Cmd {
	s, ctx := m.session, m.ctx
	if s == nil {
		return nil
	}
	res := s.Resource().Name
	return func() tea.Msg {
		n, err := s.DeleteSelected(ctx)
		return bulkDoneMsg{res: res, removed: n, err: err}
	}
}

func (c *confirmModal) isDelete() bool {
	_, ok := c.confirm.(confirmDeleteMsg)
	return ok
}

func isValidation(err error) bool {
	var verr *validate.Error
	return errors.As(err, &verr)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func bulkFailureText(removed int, err error) string {
	failed := 1
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		failed = len(joined.Unwrap())
	}
	return fmt.Sprintf("%s deleted, %d failed", pluralize(removed, "record"), failed)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
