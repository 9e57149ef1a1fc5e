package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/state"
	"github.com/five82/inline/internal/waitlist"
)

// Messages

type tickMsg time.Time

type clockMsg time.Time

type noticeExpiredMsg time.Time

type snapshotMsg state.Snapshot

type rosterMsg struct{ err error }

type estimateMsg struct {
	position int
	minutes  int
	err      error
}

// actionMsg reports a finished user action. then runs afterwards, success or
// failure, and is usually a reload.
type actionMsg struct {
	action waitlist.Action
	notice string
	stale  bool
	err    error
	then   tea.Cmd
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clockCmd() tea.Cmd {
	return tea.Tick(ClockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// refreshDashboardCmd polls once out of band, then hands the store to the view.
func refreshDashboardCmd(ctx context.Context, refresh func(context.Context) error, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		_ = refresh(ctx)
		return snapshotMsg(store.Snapshot())
	}
}

func loadRosterCmd(ctx context.Context, c *waitlist.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		return rosterMsg{err: c.LoadRoster(ctx)}
	}
}

func outcomeCmd(ctx context.Context, action waitlist.Action, fn func(context.Context) (waitlist.Outcome, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		out, err := fn(ctx)
		return actionMsg{action: action, notice: out.Notice, stale: out.Stale, err: err}
	}
}

func estimateCmd(ctx context.Context, estimate func(context.Context, int) (int, error), position int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		minutes, err := estimate(ctx, position)
		return estimateMsg{position: position, minutes: minutes, err: err}
	}
}

func searchCmd(ctx context.Context, c *waitlist.Controller, identifier string) tea.Cmd {
	return outcomeCmd(ctx, waitlist.ActionSearch, func(ctx context.Context) (waitlist.Outcome, error) {
		return c.Search(ctx, identifier)
	})
}

func joinCmd(ctx context.Context, c *waitlist.Controller, form waitlist.JoinForm) tea.Cmd {
	return outcomeCmd(ctx, waitlist.ActionJoin, func(ctx context.Context) (waitlist.Outcome, error) {
		return c.Join(ctx, form)
	})
}

func refreshStatusCmd(ctx context.Context, c *waitlist.Controller) tea.Cmd {
	return outcomeCmd(ctx, waitlist.ActionRefresh, c.RefreshStatus)
}

func leaveCmd(ctx context.Context, c *waitlist.Controller) tea.Cmd {
	return outcomeCmd(ctx, waitlist.ActionLeave, c.Leave)
}

// deskCmd runs a vendor action on c and refreshes the dashboard afterwards.
func (m Model) deskCmd(fn func(context.Context, api.Customer) (string, error), c api.Customer) tea.Cmd {
	ctx, refresh, store := m.ctx, m.refresh, m.store
	return func() tea.Msg {
		actx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		text, err := fn(actx, c)
		msg := actionMsg{notice: text, err: err}
		if refresh != nil && store != nil {
			msg.then = refreshDashboardCmd(ctx, refresh, store)
		}
		return msg
	}
}

// assetCmd runs an asset change and refreshes the dashboard afterwards.
func (m Model) assetCmd(fn func(context.Context) (string, error)) tea.Cmd {
	ctx, refresh, store := m.ctx, m.refresh, m.store
	return func() tea.Msg {
		actx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		text, err := fn(actx)
		msg := actionMsg{notice: text, err: err}
		if err != nil {
			msg.err = &waitlist.Failure{Message: api.UserMessage(err, assetFailureText), Err: err}
		}
		if refresh != nil && store != nil {
			msg.then = refreshDashboardCmd(ctx, refresh, store)
		}
		return msg
	}
}
