package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/assets"
	"github.com/five82/inline/internal/prefs"
	"github.com/five82/inline/internal/state"
	"github.com/five82/inline/internal/validation"
	"github.com/five82/inline/internal/waitlist"
)

// Mode selects who is using the terminal.
type Mode int

const (
	ModeCustomer Mode = iota
	ModeDashboard
)

// View represents the current active view.
type View int

const (
	ViewRoster View = iota
	ViewJoin
	ViewDashboard
	ViewAssets
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Mode    Mode
	Vendor  api.Vendor
	Log     zerolog.Logger

	// Customer mode
	Controller *waitlist.Controller
	Estimate   func(ctx context.Context, position int) (int, error)

	// Dashboard mode
	Store   *state.Store
	Refresh func(context.Context) error
	Desk    *waitlist.Desk
	Assets  *assets.Service
	JoinURL string

	PollTick  time.Duration
	ThemeName string
	Anonymize string
	PrefsPath string
}

// notice is a transient message shown in the header.
type notice struct {
	text  string
	isErr bool
	at    time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	mode       Mode
	vendor     api.Vendor
	log        zerolog.Logger
	controller *waitlist.Controller
	estimate   func(context.Context, int) (int, error)
	store      *state.Store
	refresh    func(context.Context) error
	desk       *waitlist.Desk
	assets     *assets.Service
	joinURL    string
	prefsPath  string
	pollTick   time.Duration

	// UI state
	theme       Theme
	keys        keyMap
	currentView View
	width       int
	height      int
	ready       bool
	now         time.Time
	showHelp    bool
	notice      notice

	// Customer state
	anonymize    string
	waitlist     waitlist.Snapshot
	search       textinput.Model
	searching    bool
	join         joinForm
	confirmLeave bool
	estimated    estimateMsg

	// Dashboard state
	snapshot      state.Snapshot
	lastUpdated   time.Time
	selectedRow   int
	selectedAsset int
	confirmRemove bool
	removeTarget  api.Customer
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
		themeName = ThemeNames()[0]
	}

	anonymize := opts.Anonymize
	if anonymize != prefs.AnonymizePhone {
		anonymize = prefs.AnonymizeInitial
	}

	search := textinput.New()
	search.Placeholder = "phone or email"
	search.Prompt = "› "
	search.CharLimit = 120

	view := ViewRoster
	if opts.Mode == ModeDashboard {
		view = ViewDashboard
	}

	m := Model{
		ctx:         ctx,
		mode:        opts.Mode,
		vendor:      opts.Vendor,
		log:         opts.Log,
		controller:  opts.Controller,
		estimate:    opts.Estimate,
		store:       opts.Store,
		refresh:     opts.Refresh,
		desk:        opts.Desk,
		assets:      opts.Assets,
		joinURL:     opts.JoinURL,
		prefsPath:   opts.PrefsPath,
		pollTick:    pollTick,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		currentView: view,
		now:         time.Now(),
		anonymize:   anonymize,
		search:      search,
		join:        newJoinForm(),
	}
	if m.controller != nil {
		m.waitlist = m.controller.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		clockCmd(),
	}
	switch m.mode {
	case ModeDashboard:
		cmds = append(cmds, tickCmd(m.pollTick))
		if m.refresh != nil && m.store != nil {
			cmds = append(cmds, refreshDashboardCmd(m.ctx, m.refresh, m.store))
		} else if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
	default:
		if m.controller != nil {
			cmds = append(cmds, loadRosterCmd(m.ctx, m.controller))
		}
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
		m.ready = true
		m.search.Width = maxInt(m.width/3, 20)
		return m, nil

	case clockMsg:
		m.now = time.Time(msg)
		if !m.notice.at.IsZero() && m.now.Sub(m.notice.at) > NoticeLifetime {
			m.notice = notice{}
		}
		return m, clockCmd()

	case tickMsg:
		if !m.notice.at.IsZero() && time.Since(m.notice.at) > NoticeLifetime {
			m.notice = notice{}
		}
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.selectedRow = clamp(m.selectedRow, len(m.snapshot.Customers))
		m.selectedAsset = clamp(m.selectedAsset, len(m.flatAssets()))
		return m, nil

	case rosterMsg:
		if m.controller != nil {
			m.waitlist = m.controller.Snapshot()
		}
		var expire tea.Cmd
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			expire = m.setNotice(waitlist.Message(msg.err), true)
		}
		return m, tea.Batch(expire, m.estimateSelf())

	case noticeExpiredMsg:
		if m.notice.at.Equal(time.Time(msg)) {
			m.notice = notice{}
		}
		return m, nil

	case estimateMsg:
		if msg.err != nil {
			m.log.Debug().Err(msg.err).Int("position", msg.position).Msg("wait estimate failed")
			return m, nil
		}
		m.estimated = msg
		return m, nil

	case actionMsg:
		return m.handleAction(msg)
	}

	return m.updateInputs(msg)
}

// updateInputs forwards non-key messages (cursor blink) to the focused input.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	case m.currentView == ViewJoin:
		cmd = m.join.update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Text entry swallows printable keys.
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.currentView == ViewJoin {
		return m.handleJoinKey(msg)
	}
	if m.confirmLeave || m.confirmRemove {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = m.theme.Name })
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.notice = notice{}
		return m, nil
	}

	if m.mode == ModeDashboard {
		return m.handleDashboardKey(msg)
	}
	return m.handleCustomerKey(msg)
}

// handleConfirmKey resolves a pending y/n prompt.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirmed := msg.String() == "y" || msg.String() == "Y"
	leave, remove := m.confirmLeave, m.confirmRemove
	m.confirmLeave, m.confirmRemove = false, false
	target := m.removeTarget
	m.removeTarget = api.Customer{}
	if !confirmed {
		return m, nil
	}
	switch {
	case leave && m.controller != nil:
		return m, leaveCmd(m.ctx, m.controller)
	case remove:
		c, ok := m.currentCustomer(target.ID)
		if !ok {
			expire := m.setNotice(strings.TrimSpace(target.FirstName)+" is no longer on the waitlist", true)
			return m, expire
		}
		if m.desk != nil {
			return m, m.deskCmd(m.desk.Remove, c)
		}
	}
	return m, nil
}

// handleAction applies the result of a background action.
func (m Model) handleAction(msg actionMsg) (tea.Model, tea.Cmd) {
	if m.controller != nil {
		m.waitlist = m.controller.Snapshot()
	}

	if msg.err != nil {
		switch {
		case errors.Is(msg.err, waitlist.ErrBusy), errors.Is(msg.err, context.Canceled):
			return m, nil
		}
		if verr, ok := validation.As(msg.err); ok {
			if msg.action == waitlist.ActionJoin {
				m.join.errs = verr
				return m, nil
			}
			expire := m.setNotice(verr.Error(), true)
			return m, expire
		}
		if msg.action == waitlist.ActionJoin {
			m.join.submitErr = waitlist.Message(msg.err)
			return m, nil
		}
		expire := m.setNotice(waitlist.Message(msg.err), true)
		return m, tea.Batch(expire, msg.then)
	}

	if msg.stale {
		return m, nil
	}
	if msg.action == waitlist.ActionJoin {
		m.join = newJoinForm()
		m.currentView = ViewRoster
	}
	var expire tea.Cmd
	if msg.notice != "" {
		expire = m.setNotice(msg.notice, false)
	}
	return m, tea.Batch(expire, msg.then, m.estimateSelf())
}

// estimateSelf asks for a wait estimate when the tracked customer is waiting
// without one and the position changed since the last answer.
func (m Model) estimateSelf() tea.Cmd {
	self := m.waitlist.Self
	if m.estimate == nil || self == nil || !self.IsWaiting() || self.WaitTime > 0 || self.Position < 1 {
		return nil
	}
	if m.estimated.position == self.Position {
		return nil
	}
	return estimateCmd(m.ctx, m.estimate, self.Position)
}

// setNotice shows text in the header and returns the command that clears
// it after NoticeLifetime. A newer notice outlives the older one's timer.
func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	at := time.Now()
	m.notice = notice{text: text, isErr: isErr, at: at}
	return tea.Tick(NoticeLifetime, func(time.Time) tea.Msg {
		return noticeExpiredMsg(at)
	})
}

// savePrefs persists a preference change. Failures are logged and ignored.
func (m Model) savePrefs(fn func(*prefs.Prefs)) {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Update(m.prefsPath, fn); err != nil {
		m.log.Warn().Err(err).Msg("save preferences")
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewJoin:
		return m.renderJoin()
	case ViewDashboard:
		return m.renderDashboard()
	case ViewAssets:
		return m.renderAssets()
	default:
		return m.renderCustomer()
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context.Err() != nil {
		return nil
	}
	return err
}
