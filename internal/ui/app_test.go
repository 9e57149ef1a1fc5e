package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/prefs"
	"github.com/five82/inline/internal/state"
	"github.com/five82/inline/internal/waitlist"
)

type fakeBackend struct {
	mu       sync.Mutex
	roster   []api.Customer
	nextID   int64
	removed  []int64
	notified []int64
	served   []int64
}

func (f *fakeBackend) Search(_ context.Context, identifier string, _ int64) (*api.Customer, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.roster {
		if c.Phone == identifier || c.Email == identifier {
			found := c
			return &found, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeBackend) Join(_ context.Context, req api.JoinRequest) (*api.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := api.Customer{
		ID:        100 + f.nextID,
		VendorID:  req.VendorID,
		FirstName: req.FirstName,
		Phone:     req.Phone,
		Email:     req.Email,
		PartySize: req.PartySize,
		Position:  len(f.roster) + 1,
		Status:    api.StatusWaiting,
		JoinedAt:  time.Now(),
	}
	f.roster = append(f.roster, c)
	return &c, nil
}

func (f *fakeBackend) Waitlist(context.Context, int64) ([]api.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Customer(nil), f.roster...), nil
}

func (f *fakeBackend) Remove(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
	kept := f.roster[:0]
	for _, c := range f.roster {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.roster = kept
	return nil
}

func (f *fakeBackend) Metrics(context.Context, int64) (*api.WaitlistMetrics, error) {
	return &api.WaitlistMetrics{}, nil
}

func (f *fakeBackend) Notify(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, id)
	return nil
}

func (f *fakeBackend) UpdateStatus(_ context.Context, id int64, status api.Status) (*api.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.served = append(f.served, id)
	return &api.Customer{ID: id, Status: status}, nil
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, k string) (Model, tea.Cmd) {
	next, cmd := m.Update(keyMsg(k))
	return next.(Model), cmd
}

func deliver(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func newCustomerModel(t *testing.T, b *fakeBackend) Model {
	t.Helper()
	ctrl := waitlist.NewController(7, b, zerolog.Nop())
	m := New(Options{
		Mode:       ModeCustomer,
		Vendor:     api.Vendor{ID: 7, BusinessName: "Corner Cafe"},
		Controller: ctrl,
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		Log:        zerolog.Nop(),
	})
	return deliver(m, tea.WindowSizeMsg{Width: 120, Height: 30})
}

func TestNew_Defaults(t *testing.T) {
	m := New(Options{})
	if m.currentView != ViewRoster {
		t.Fatalf("currentView = %v, want ViewRoster", m.currentView)
	}
	if m.theme.Name != "Nightfox" {
		t.Fatalf("theme = %q, want Nightfox", m.theme.Name)
	}
	if m.anonymize != prefs.AnonymizeInitial {
		t.Fatalf("anonymize = %q, want %q", m.anonymize, prefs.AnonymizeInitial)
	}
	if m.pollTick != DefaultUIInterval {
		t.Fatalf("pollTick = %v, want %v", m.pollTick, DefaultUIInterval)
	}

	d := New(Options{Mode: ModeDashboard, ThemeName: "Slate"})
	if d.currentView != ViewDashboard || d.theme.Name != "Slate" {
		t.Fatalf("dashboard view = %v theme = %q", d.currentView, d.theme.Name)
	}
}

func TestView_NotReadyShowsLoading(t *testing.T) {
	if got := New(Options{}).View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestQuitKey(t *testing.T) {
	m := newCustomerModel(t, &fakeBackend{})
	_, cmd := press(m, "e")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestJoinFlow(t *testing.T) {
	b := &fakeBackend{}
	m := newCustomerModel(t, b)

	m, _ = press(m, "j")
	if m.currentView != ViewJoin {
		t.Fatalf("currentView = %v, want ViewJoin", m.currentView)
	}
	m.join.inputs[0].SetValue("Ada")
	m.join.inputs[2].SetValue("555-0100")
	m.join.inputs[partySizeField].SetValue("3")

	m, cmd := press(m, "enter")
	if cmd == nil {
		t.Fatal("expected join command")
	}
	m = deliver(m, cmd())

	if m.currentView != ViewRoster {
		t.Fatalf("currentView = %v, want ViewRoster after join", m.currentView)
	}
	if m.notice.text != waitlist.MsgJoined || m.notice.isErr {
		t.Fatalf("notice = %+v, want %q", m.notice, waitlist.MsgJoined)
	}
	if m.waitlist.Self == nil || m.waitlist.Self.FirstName != "Ada" || m.waitlist.Self.PartySize != 3 {
		t.Fatalf("self = %+v, want Ada party of 3", m.waitlist.Self)
	}
	if !m.waitlist.SelfInRoster {
		t.Fatal("expected joined customer in roster")
	}
	if !strings.Contains(m.View(), "(You)") {
		t.Fatal("roster should mark the tracked customer")
	}
}

func TestJoinValidationStaysOnForm(t *testing.T) {
	b := &fakeBackend{}
	m := newCustomerModel(t, b)

	m, _ = press(m, "j")
	m, cmd := press(m, "enter")
	m = deliver(m, cmd())

	if m.currentView != ViewJoin {
		t.Fatalf("currentView = %v, want ViewJoin", m.currentView)
	}
	if m.join.errs.For("firstName") == "" {
		t.Fatal("expected first name error")
	}
	if got := m.join.errs.For("contact"); got != waitlist.MsgContactRequired {
		t.Fatalf("contact error = %q, want %q", got, waitlist.MsgContactRequired)
	}
	if len(b.roster) != 0 {
		t.Fatal("invalid form must not reach the backend")
	}
}

func TestJoinEscapeCancels(t *testing.T) {
	m := newCustomerModel(t, &fakeBackend{})
	m, _ = press(m, "j")
	m.join.inputs[0].SetValue("Ada")
	m, _ = press(m, "esc")
	if m.currentView != ViewRoster {
		t.Fatalf("currentView = %v, want ViewRoster", m.currentView)
	}
	if m.join.inputs[0].Value() != "" {
		t.Fatal("cancelled form should be reset")
	}
}

func TestSearchFindsSpot(t *testing.T) {
	b := &fakeBackend{roster: []api.Customer{
		{ID: 5, FirstName: "Grace", Phone: "555", Status: api.StatusWaiting, Position: 1},
	}}
	m := newCustomerModel(t, b)

	m, _ = press(m, "/")
	if !m.searching {
		t.Fatal("expected search input to be active")
	}
	m, _ = press(m, "555")
	m, cmd := press(m, "enter")
	if m.searching {
		t.Fatal("search input should close on submit")
	}
	m = deliver(m, cmd())

	if m.notice.text != waitlist.MsgFound {
		t.Fatalf("notice = %q, want %q", m.notice.text, waitlist.MsgFound)
	}
	if m.waitlist.Self == nil || m.waitlist.Self.ID != 5 {
		t.Fatalf("self = %+v, want id 5", m.waitlist.Self)
	}
}

func TestSearchBlankShowsError(t *testing.T) {
	m := newCustomerModel(t, &fakeBackend{})
	m, _ = press(m, "/")
	m, cmd := press(m, "enter")
	m = deliver(m, cmd())
	if !m.notice.isErr || m.notice.text != waitlist.MsgIdentifierRequired {
		t.Fatalf("notice = %+v, want error %q", m.notice, waitlist.MsgIdentifierRequired)
	}
}

func TestLeaveNeedsConfirmation(t *testing.T) {
	b := &fakeBackend{roster: []api.Customer{
		{ID: 5, FirstName: "Grace", Phone: "555", Status: api.StatusWaiting, Position: 1},
	}}
	m := newCustomerModel(t, b)
	m, _ = press(m, "/")
	m, _ = press(m, "555")
	m, cmd := press(m, "enter")
	m = deliver(m, cmd())

	m, _ = press(m, "x")
	if !m.confirmLeave {
		t.Fatal("expected leave confirmation prompt")
	}
	m, cmd = press(m, "n")
	if cmd != nil || m.confirmLeave {
		t.Fatal("declining must not leave")
	}
	if len(b.removed) != 0 {
		t.Fatal("backend called without confirmation")
	}

	m, _ = press(m, "x")
	m, cmd = press(m, "y")
	if cmd == nil {
		t.Fatal("expected leave command")
	}
	m = deliver(m, cmd())
	if len(b.removed) != 1 || b.removed[0] != 5 {
		t.Fatalf("removed = %v, want [5]", b.removed)
	}
	if m.waitlist.Self != nil {
		t.Fatal("self should be cleared after leaving")
	}
	if m.notice.text != waitlist.MsgLeft {
		t.Fatalf("notice = %q, want %q", m.notice.text, waitlist.MsgLeft)
	}
}

func TestLeaveWithoutSelfIgnored(t *testing.T) {
	m := newCustomerModel(t, &fakeBackend{})
	m, _ = press(m, "x")
	if m.confirmLeave {
		t.Fatal("leave prompt without a tracked customer")
	}
}

func TestAnonymizeTogglePersists(t *testing.T) {
	m := newCustomerModel(t, &fakeBackend{})
	m, _ = press(m, "a")
	if m.anonymize != prefs.AnonymizePhone {
		t.Fatalf("anonymize = %q, want %q", m.anonymize, prefs.AnonymizePhone)
	}
	if got := prefs.Load(m.prefsPath).Anonymize; got != prefs.AnonymizePhone {
		t.Fatalf("saved anonymize = %q, want %q", got, prefs.AnonymizePhone)
	}
	m, _ = press(m, "a")
	if m.anonymize != prefs.AnonymizeInitial {
		t.Fatalf("anonymize = %q, want %q", m.anonymize, prefs.AnonymizeInitial)
	}
}

func TestThemeCyclePersists(t *testing.T) {
	m := newCustomerModel(t, &fakeBackend{})
	m, _ = press(m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(m.prefsPath).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	m := newCustomerModel(t, &fakeBackend{})
	m, _ = press(m, "?")
	if !m.showHelp {
		t.Fatal("expected help overlay")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not rendered")
	}
	m, _ = press(m, "j")
	if m.showHelp || m.currentView != ViewRoster {
		t.Fatal("key closing help must not trigger an action")
	}
}

func TestClockClearsOldNotice(t *testing.T) {
	m := newCustomerModel(t, &fakeBackend{})
	m.notice = notice{text: "hello", at: time.Now().Add(-time.Hour)}
	now := time.Now()
	m = deliver(m, clockMsg(now))
	if m.notice.text != "" {
		t.Fatal("expired notice should be cleared")
	}
	if !m.now.Equal(now) {
		t.Fatalf("now = %v, want %v", m.now, now)
	}
}

func TestNoticeExpiresOnItsOwnTimer(t *testing.T) {
	m := newCustomerModel(t, &fakeBackend{})
	expire := m.setNotice("Left the waitlist", false)
	if expire == nil {
		t.Fatal("setNotice should schedule its expiry")
	}
	first := m.notice.at

	// A newer notice is not cleared by the older timer.
	m.notice = notice{text: "newer", at: first.Add(time.Second)}
	m = deliver(m, noticeExpiredMsg(first))
	if m.notice.text != "newer" {
		t.Fatalf("notice = %q, want newer notice kept", m.notice.text)
	}

	m = deliver(m, noticeExpiredMsg(m.notice.at))
	if m.notice.text != "" {
		t.Fatalf("notice = %q, want cleared", m.notice.text)
	}
}

func TestEstimateRequestedForSelfWithoutWaitTime(t *testing.T) {
	b := &fakeBackend{roster: []api.Customer{
		{ID: 5, FirstName: "Grace", Phone: "555", Status: api.StatusWaiting, Position: 2},
	}}
	var asked int
	m := newCustomerModel(t, b)
	m.estimate = func(_ context.Context, position int) (int, error) {
		asked = position
		return 12, nil
	}
	m, _ = press(m, "/")
	m, _ = press(m, "555")
	m, cmd := press(m, "enter")
	m = deliver(m, cmd())

	est := m.estimateSelf()
	if est == nil {
		t.Fatal("expected estimate command")
	}
	m = deliver(m, est())
	if asked != 2 || m.estimated.minutes != 12 {
		t.Fatalf("asked = %d minutes = %d, want 2 and 12", asked, m.estimated.minutes)
	}
	if m.estimateSelf() != nil {
		t.Fatal("estimate should not repeat for the same position")
	}
}

func newDashboardModel(t *testing.T, b *fakeBackend, store *state.Store) Model {
	t.Helper()
	m := New(Options{
		Mode:  ModeDashboard,
		Store: store,
		Desk:  waitlist.NewDesk(b, zerolog.Nop()),
		Log:   zerolog.Nop(),
	})
	m = deliver(m, tea.WindowSizeMsg{Width: 140, Height: 30})
	return deliver(m, snapshotMsg(store.Snapshot()))
}

func TestDashboardNavigationAndNotify(t *testing.T) {
	b := &fakeBackend{}
	store := &state.Store{}
	store.Update(state.Data{Customers: []api.Customer{
		{ID: 1, FirstName: "Ada", Status: api.StatusWaiting, Position: 1},
		{ID: 2, FirstName: "Grace", Status: api.StatusWaiting, Position: 2},
	}}, nil)
	m := newDashboardModel(t, b, store)

	m, _ = press(m, "j")
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want 1", m.selectedRow)
	}
	m, _ = press(m, "j")
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want clamp at 1", m.selectedRow)
	}

	m, cmd := press(m, "n")
	if cmd == nil {
		t.Fatal("expected notify command")
	}
	m = deliver(m, cmd())
	if len(b.notified) != 1 || b.notified[0] != 2 {
		t.Fatalf("notified = %v, want [2]", b.notified)
	}
	if m.notice.text != "Grace has been notified" {
		t.Fatalf("notice = %q", m.notice.text)
	}

	m, cmd = press(m, "s")
	m = deliver(m, cmd())
	if len(b.served) != 1 || m.notice.text != "Grace marked as served" {
		t.Fatalf("served = %v notice = %q", b.served, m.notice.text)
	}
}

func TestDashboardRemoveNeedsConfirmation(t *testing.T) {
	b := &fakeBackend{}
	store := &state.Store{}
	store.Update(state.Data{Customers: []api.Customer{{ID: 1, FirstName: "Ada", Status: api.StatusWaiting, Position: 1}}}, nil)
	m := newDashboardModel(t, b, store)

	m, _ = press(m, "x")
	if !m.confirmRemove {
		t.Fatal("expected remove confirmation")
	}
	m, cmd := press(m, "y")
	if cmd == nil {
		t.Fatal("expected remove command")
	}
	m = deliver(m, cmd())
	if len(b.removed) != 1 || m.notice.text != "Ada removed from waitlist" {
		t.Fatalf("removed = %v notice = %q", b.removed, m.notice.text)
	}
}

func TestDashboardRemoveTargetsConfirmedCustomer(t *testing.T) {
	b := &fakeBackend{}
	store := &state.Store{}
	store.Update(state.Data{Customers: []api.Customer{
		{ID: 1, FirstName: "Ada", Status: api.StatusWaiting, Position: 1},
		{ID: 2, FirstName: "Grace", Status: api.StatusWaiting, Position: 2},
		{ID: 3, FirstName: "Alan", Status: api.StatusWaiting, Position: 3},
	}}, nil)
	m := newDashboardModel(t, b, store)

	m, _ = press(m, "j")
	m, _ = press(m, "x")
	if !m.confirmRemove || m.removeTarget.ID != 2 {
		t.Fatalf("removeTarget = %+v, want Grace", m.removeTarget)
	}
	if !strings.Contains(m.View(), "Remove Grace") {
		t.Fatal("prompt should name the customer being removed")
	}

	// A poll lands between the two key presses and shifts the rows.
	store.Update(state.Data{Customers: []api.Customer{
		{ID: 2, FirstName: "Grace", Status: api.StatusWaiting, Position: 1},
		{ID: 3, FirstName: "Alan", Status: api.StatusWaiting, Position: 2},
	}}, nil)
	m = deliver(m, snapshotMsg(store.Snapshot()))

	m, cmd := press(m, "y")
	if cmd == nil {
		t.Fatal("expected remove command")
	}
	m = deliver(m, cmd())
	if len(b.removed) != 1 || b.removed[0] != 2 {
		t.Fatalf("removed = %v, want [2]", b.removed)
	}
	if m.notice.text != "Grace removed from waitlist" {
		t.Fatalf("notice = %q", m.notice.text)
	}
}

func TestDashboardRemoveCancelledWhenCustomerGone(t *testing.T) {
	b := &fakeBackend{}
	store := &state.Store{}
	store.Update(state.Data{Customers: []api.Customer{
		{ID: 1, FirstName: "Ada", Status: api.StatusWaiting, Position: 1},
		{ID: 2, FirstName: "Grace", Status: api.StatusWaiting, Position: 2},
	}}, nil)
	m := newDashboardModel(t, b, store)

	m, _ = press(m, "x")
	store.Update(state.Data{Customers: []api.Customer{
		{ID: 2, FirstName: "Grace", Status: api.StatusWaiting, Position: 1},
	}}, nil)
	m = deliver(m, snapshotMsg(store.Snapshot()))

	m, _ = press(m, "y")
	if len(b.removed) != 0 {
		t.Fatalf("removed = %v, want nothing", b.removed)
	}
	if m.confirmRemove || m.notice.text != "Ada is no longer on the waitlist" || !m.notice.isErr {
		t.Fatalf("confirmRemove = %v notice = %+v", m.confirmRemove, m.notice)
	}
}

func TestDashboardAssetsToggle(t *testing.T) {
	store := &state.Store{}
	store.Update(state.Data{HasAssets: true, Assets: []api.Asset{
		{ID: 1, Name: "T1", Category: "Patio", Capacity: 4, Status: api.AssetAvailable},
		{ID: 2, Name: "T2", Category: "Bar", Capacity: 2, Status: api.AssetOccupied},
	}}, nil)
	m := newDashboardModel(t, &fakeBackend{}, store)

	m, _ = press(m, "a")
	if m.currentView != ViewAssets {
		t.Fatalf("currentView = %v, want ViewAssets", m.currentView)
	}
	if a, ok := m.selectedAssetItem(); !ok || a.Category != "Bar" {
		t.Fatalf("first asset = %+v, want the Bar group first", a)
	}
	if !strings.Contains(m.View(), "Capacity") {
		t.Fatal("assets view should show the capacity pane")
	}
	m, _ = press(m, "a")
	if m.currentView != ViewDashboard {
		t.Fatalf("currentView = %v, want ViewDashboard", m.currentView)
	}
}

func TestNextAssetStatus(t *testing.T) {
	cases := map[api.AssetStatus]api.AssetStatus{
		api.AssetAvailable:   api.AssetOccupied,
		api.AssetOccupied:    api.AssetMaintenance,
		api.AssetMaintenance: api.AssetReserved,
		api.AssetReserved:    api.AssetAvailable,
		"bogus":              api.AssetAvailable,
	}
	for in, want := range cases {
		if got := nextAssetStatus(in); got != want {
			t.Fatalf("nextAssetStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClassifyConnectionError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{api.ErrUnavailable, "PAUSED"},
		{&api.Error{Status: 401}, "SESSION EXPIRED"},
		{errors.New("dial tcp: connection refused"), "OFFLINE"},
		{errors.New("lookup api: no such host"), "HOST NOT FOUND"},
		{context.DeadlineExceeded, "TIMEOUT"},
		{errors.New("weird"), "ERROR"},
	}
	for _, tc := range cases {
		if got := classifyConnectionError(tc.err); got != tc.want {
			t.Fatalf("classifyConnectionError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
