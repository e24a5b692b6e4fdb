package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/hydrant/internal/prefs"
	"github.com/five82/hydrant/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
	ShowKeys  bool
	PrefsPath string
	Logger    *zap.Logger

	// Refresh updates the store immediately. Optional.
	Refresh func(ctx context.Context)
	// Focus brings a page to the front in hydrus. Optional.
	Focus func(ctx context.Context, pageKey string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	prefsPath string
	pollTick  time.Duration
	logger    *zap.Logger
	refresh   func(ctx context.Context)
	focus     func(ctx context.Context, pageKey string) error

	keys  keyMap
	help  help.Model
	list  viewport.Model
	theme Theme

	width    int
	height   int
	ready    bool
	showKeys bool

	snapshot state.Snapshot
	selected int

	notice      string
	noticeIsErr bool
}

const headerLines = 2

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		logger:    logger,
		refresh:   opts.Refresh,
		focus:     opts.Focus,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(opts.ThemeName),
		showKeys:  opts.ShowKeys,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.list = viewport.New(msg.Width, m.listHeight())
			m.ready = true
		} else {
			m.list.Width = msg.Width
			m.list.Height = m.listHeight()
		}
		m.syncList()
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampSelection()
		m.syncList()
		return m, nil

	case focusResultMsg:
		if msg.err != nil {
			m.setNotice("focus "+msg.name+": "+msg.err.Error(), true)
			m.logger.Warn("focus page failed", zap.String("page_key", msg.key), zap.Error(msg.err))
		} else {
			m.setNotice("focused "+msg.name, false)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.renderHeader() + "\n" + m.list.View() + "\n" + m.renderFooter()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := len(m.snapshot.Pages)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeList()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.syncList()
		return m, nil

	case key.Matches(msg, m.keys.ToggleKeys):
		m.showKeys = !m.showKeys
		m.savePrefs()
		m.syncList()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.setNotice("refreshing", false)
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Focus):
		if rows == 0 || m.focus == nil {
			return m, nil
		}
		return m, m.focusCmd(m.snapshot.Pages[m.selected])

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < rows-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		if rows > 0 {
			m.selected = rows - 1
		}
	default:
		return m, nil
	}

	m.syncList()
	return m, nil
}

func (m *Model) clampSelection() {
	rows := len(m.snapshot.Pages)
	switch {
	case rows == 0:
		m.selected = 0
	case m.selected >= rows:
		m.selected = rows - 1
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeIsErr = isErr
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, ShowKeys: m.showKeys}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

func (m Model) listHeight() int {
	footer := 1
	if m.help.ShowAll {
		footer = len(m.keys.FullHelp()[0])
	}
	if h := m.height - headerLines - footer - 1; h > 0 {
		return h
	}
	return 1
}

func (m *Model) resizeList() {
	if m.ready {
		m.list.Height = m.listHeight()
		m.syncList()
	}
}

// syncList re-renders the page rows and keeps the selection visible.
func (m *Model) syncList() {
	if !m.ready {
		return
	}
	m.list.SetContent(m.renderPages())
	switch {
	case m.selected < m.list.YOffset:
		m.list.SetYOffset(m.selected)
	case m.selected >= m.list.YOffset+m.list.Height:
		m.list.SetYOffset(m.selected - m.list.Height + 1)
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type focusResultMsg struct {
	key  string
	name string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) refreshCmd() tea.Cmd {
	refresh, store, ctx := m.refresh, m.store, m.ctx
	return func() tea.Msg {
		if refresh != nil {
			refresh(ctx)
		}
		if store == nil {
			return nil
		}
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) focusCmd(row state.PageRow) tea.Cmd {
	focus, ctx := m.focus, m.ctx
	return func() tea.Msg {
		return focusResultMsg{key: row.Key, name: row.Name, err: focus(ctx, row.Key)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
