package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/prefs"
	"github.com/five82/backoffice/internal/resource"
	"github.com/five82/backoffice/internal/state"
)

// DefaultUIInterval is the refresh cadence of toasts and the activity view.
const DefaultUIInterval = time.Second

type viewMode int

const (
	viewList viewMode = iota
	viewActivity
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Open      Opener
	Session   Session // first session; opened from Resource when nil
	Resource  resource.Resource
	ThemeName string
	PrefsPath string
	LogPath   string
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	open      Opener
	session   Session
	prefsPath string
	logPath   string
	pollTick  time.Duration
	now       func() time.Time

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	mode     viewMode
	showHelp bool

	// List state
	cursor    int
	search    textinput.Model
	searching bool
	pager     paginator.Model

	// Dialogs
	modal      Modal
	categories []api.Category
	catLoaded  bool

	// Load state
	loading    bool
	loadErr    error
	lastLoaded time.Time

	showDetail bool
	detail     *detailPane
	activity   *activityState
	toast      toast
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	res := opts.Resource
	if res.Name == "" {
		res, _ = resource.Lookup(resource.DefaultName)
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "Search titles..."
	search.CharLimit = 100

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.ActiveDot = "●"
	pager.InactiveDot = "○"

	m := Model{
		ctx:       ctx,
		open:      opts.Open,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		pollTick:  pollTick,
		now:       time.Now,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
		search:    search,
		pager:     pager,
		detail:    &detailPane{},
		activity:  newActivityState(),
		loading:   true,
	}
	switch {
	case opts.Session != nil:
		m.session = opts.Session
	case m.open != nil:
		m.session = m.open(res)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tickCmd(m.pollTick))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.activity.resize(m.width, m.contentHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case loadedMsg:
		if msg.res != m.resourceName() {
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err
		if msg.err != nil {
			m.notify(toastError, "Load failed: "+api.Message(msg.err))
		} else {
			m.lastLoaded = m.now()
		}
		m.syncDialog()
		m.clampCursor()
		return m, nil

	case categoriesMsg:
		if msg.res != m.resourceName() {
			return m, nil
		}
		if msg.err == nil {
			m.categories = msg.cats
			m.catLoaded = true
		}
		if form, ok := m.modal.(*formModal); ok {
			form.setCategories(msg.cats, msg.err)
		}
		return m, nil

	case submitFormMsg:
		return m, m.submitCmd(msg)

	case submitDoneMsg:
		if msg.res != m.resourceName() {
			return m, nil
		}
		m.handleSubmitDone(msg.err)
		return m, nil

	case confirmDeleteMsg:
		return m, m.deleteCmd()

	case deleteDoneMsg:
		if msg.res != m.resourceName() {
			return m, nil
		}
		m.handleDeleteDone(msg.err)
		return m, nil

	case confirmBulkDeleteMsg:
		return m, m.bulkDeleteCmd()

	case bulkDoneMsg:
		if msg.res != m.resourceName() {
			return m, nil
		}
		m.modal = nil
		switch {
		case msg.err != nil:
			m.notify(toastError, bulkFailureText(msg.removed, msg.err))
		default:
			m.notify(toastSuccess, pluralize(msg.removed, "record")+" deleted")
		}
		m.syncDialog()
		m.clampCursor()
		return m, nil

	case activityMsg:
		m.activity.apply(msg)
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = modal
		if closed {
			m.closeModal()
		}
		return m, cmd
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.Activity):
		if m.mode == viewActivity {
			m.mode = viewList
			return m, nil
		}
		m.mode = viewActivity
		m.activity.resize(m.width, m.contentHeight())
		return m, m.activityCmd()
	}

	if m.mode == viewActivity {
		return m.handleActivityKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.store()
	if store == nil {
		return m, nil
	}
	view := store.View()
	st := store.State()

	switch {
	case key.Matches(msg, m.keys.Resource):
		return m, m.switchResource(resource.Next(m.resourceName()))

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(view.Visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PrevPage):
		m.setPage(st.CurrentPage - 1)
	case key.Matches(msg, m.keys.NextPage):
		m.setPage(st.CurrentPage + 1)
	case key.Matches(msg, m.keys.FirstPage):
		m.setPage(1)
	case key.Matches(msg, m.keys.LastPage):
		m.setPage(view.TotalPages)

	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.currentItem(); ok {
			store.Dispatch(state.ToggleRowSelection{ID: item.ID, Checked: !st.IsSelected(item.ID)})
		}
	case key.Matches(msg, m.keys.ToggleAll):
		store.Dispatch(state.ToggleAll(view.Visible, st.Selected))

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(st.SearchQuery)
		m.search.CursorEnd()
		m.search.Focus()
	case key.Matches(msg, m.keys.Escape):
		switch {
		case st.SearchQuery != "":
			store.Dispatch(state.SetSearchQuery{Query: ""})
			m.search.SetValue("")
			m.cursor = 0
		case len(st.Selected) > 0:
			store.Dispatch(state.ClearSelection{})
		}
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail

	case key.Matches(msg, m.keys.New):
		store.Dispatch(state.OpenForm{})
		m.syncDialog()
		return m, m.ensureCategories()
	case key.Matches(msg, m.keys.Edit):
		item, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		store.Dispatch(state.OpenForm{Item: &item})
		m.syncDialog()
		return m, m.ensureCategories()
	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.currentItem(); ok {
			store.Dispatch(state.OpenDelete{Item: item})
			m.syncDialog()
		}
	case key.Matches(msg, m.keys.BulkDelete):
		if n := len(st.Selected); n > 0 {
			m.modal = newBulkDeleteModal(m.session.Resource().Noun, n)
		} else {
			m.notify(toastInfo, "No rows selected")
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.store()
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		if store != nil {
			store.Dispatch(state.SetSearchQuery{Query: ""})
		}
		m.cursor = 0
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before && store != nil {
		store.Dispatch(state.SetSearchQuery{Query: strings.TrimSpace(after)})
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.toast.expire(now)
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.mode == viewActivity {
		if cmd := m.activityCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleSubmitDone(err error) {
	form, _ := m.modal.(*formModal)
	if err == nil {
		verb := "updated"
		if form == nil || form.isCreate() {
			verb = "created"
		}
		m.notify(toastSuccess, m.session.Resource().Noun+" "+verb)
		m.syncDialog()
		m.clampCursor()
		return
	}
	if form != nil {
		form.finish(err)
	}
	if !isValidation(err) {
		m.notify(toastError, "Save failed: "+api.Message(err))
	}
	m.syncDialog()
}

func (m *Model) handleDeleteDone(err error) {
	if err != nil {
		m.notify(toastError, "Delete failed: "+api.Message(err))
		if c, ok := m.modal.(*confirmModal); ok {
			c.busy = false
			c.err = api.Message(err)
		}
	} else {
		m.notify(toastSuccess, m.session.Resource().Noun+" deleted")
	}
	m.syncDialog()
	m.clampCursor()
}

// syncDialog makes the open modal follow the store's dialog state. The
// store may close a dialog on its own, e.g. when a reload drops the target.
func (m *Model) syncDialog() {
	store := m.store()
	if store == nil {
		return
	}
	d := store.State().Dialog
	switch d.Mode {
	case state.DialogClosed:
		switch modal := m.modal.(type) {
		case *formModal:
			m.modal = nil
		case *confirmModal:
			if modal.isDelete() {
				m.modal = nil
			}
		}
	case state.DialogForm:
		if _, ok := m.modal.(*formModal); !ok {
			var cats []api.Category
			if m.catLoaded {
				cats = m.categories
			}
			m.modal = newFormModal(m.session.Resource(), d.Target, cats)
		}
	case state.DialogDelete:
		if c, ok := m.modal.(*confirmModal); !ok || !c.isDelete() {
			m.modal = newDeleteModal(m.session.Resource().Noun, d.Target.Title)
		}
	}
}

func (m *Model) closeModal() {
	store := m.store()
	switch modal := m.modal.(type) {
	case *formModal:
		if store != nil {
			store.Dispatch(state.CloseForm{})
		}
	case *confirmModal:
		if modal.isDelete() && store != nil {
			store.Dispatch(state.CloseDelete{})
		}
	}
	m.modal = nil
}

func (m *Model) setPage(page int) {
	if store := m.store(); store != nil {
		store.Dispatch(state.SetPage{Page: page})
		m.cursor = 0
	}
}

func (m *Model) clampCursor() {
	store := m.store()
	if store == nil {
		m.cursor = 0
		return
	}
	n := len(store.View().Visible)
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))
}

func (m *Model) switchResource(r resource.Resource) tea.Cmd {
	if m.open == nil {
		return nil
	}
	m.session = m.open(r)
	m.cursor = 0
	m.modal = nil
	m.categories = nil
	m.catLoaded = false
	m.search.SetValue("")
	m.loading = true
	m.loadErr = nil
	m.savePrefs()
	log.Printf("switched to %s", r.Name)
	return m.loadCmd()
}

func (m *Model) ensureCategories() tea.Cmd {
	if m.session == nil || !m.session.Resource().HasCategories || m.catLoaded {
		return nil
	}
	return m.categoriesCmd()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Resource: m.resourceName()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs failed: %v", err)
	}
}

func (m Model) store() *state.Store {
	if m.session == nil {
		return nil
	}
	return m.session.Store()
}

func (m Model) resourceName() string {
	if m.session == nil {
		return ""
	}
	return m.session.Resource().Name
}

func (m Model) currentItem() (api.Item, bool) {
	store := m.store()
	if store == nil {
		return api.Item{}, false
	}
	visible := store.View().Visible
	if m.cursor < 0 || m.cursor >= len(visible) {
		return api.Item{}, false
	}
	return visible[m.cursor], true
}

func (m Model) contentHeight() int {
	// header, command bar, footer, toast line
	return max(m.height-4, 3)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
