package waitlist

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/inline/internal/api"
)

// Action names a user-triggered operation for in-flight tracking.
type Action string

const (
	ActionSearch  Action = "search"
	ActionJoin    Action = "join"
	ActionLeave   Action = "leave"
	ActionRefresh Action = "refresh"
)

// Snapshot is a consistent copy of the controller's state for rendering.
type Snapshot struct {
	VendorID     int64
	Self         *api.Customer
	SelfInRoster bool
	All          []api.Customer
	Roster       []api.Customer
	Loaded       bool
	FetchedAt    time.Time
}

// Outcome describes what an action did.
type Outcome struct {
	Notice string
	Found  bool
	Stale  bool
}

// Controller owns the tracker and snapshot cache for one vendor.
type Controller struct {
	vendorID int64
	backend  Backend
	resolver *Resolver
	joiner   *JoinHandler
	seq      Sequencer
	now      func() time.Time
	log      zerolog.Logger

	mu      sync.Mutex
	cache   SnapshotCache
	tracker Tracker
	busy    map[Action]bool
}

// NewController builds a Controller for vendorID.
func NewController(vendorID int64, backend Backend, log zerolog.Logger) *Controller {
	return &Controller{
		vendorID: vendorID,
		backend:  backend,
		resolver: NewResolver(backend),
		joiner:   NewJoinHandler(backend),
		now:      time.Now,
		log:      log.With().Int64("vendor", vendorID).Logger(),
		busy:     make(map[Action]bool),
	}
}

// VendorID returns the vendor this controller serves.
func (c *Controller) VendorID() int64 { return c.vendorID }

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		VendorID:     c.vendorID,
		All:          c.cache.All(),
		Roster:       c.cache.Roster(),
		Loaded:       c.cache.Loaded(),
		FetchedAt:    c.cache.FetchedAt(),
		SelfInRoster: c.tracker.InSnapshot(),
	}
	if self, ok := c.tracker.Current(); ok {
		snap.Self = &self
	}
	return snap
}

// Busy reports whether action is in flight.
func (c *Controller) Busy(action Action) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[action]
}

func (c *Controller) begin(action Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy[action] {
		return ErrBusy
	}
	c.busy[action] = true
	return nil
}

func (c *Controller) end(action Action) {
	c.mu.Lock()
	delete(c.busy, action)
	c.mu.Unlock()
}

// Search resolves identifier and, on a hit, tracks the result. A response
// that was superseded while in flight is dropped and reported as Stale.
func (c *Controller) Search(ctx context.Context, identifier string) (Outcome, error) {
	if err := c.begin(ActionSearch); err != nil {
		return Outcome{}, err
	}
	defer c.end(ActionSearch)
	return c.lookup(ctx, identifier)
}

func (c *Controller) lookup(ctx context.Context, identifier string) (Outcome, error) {
	seq := c.seq.Next(KindLookup)
	cust, found, err := c.resolver.Resolve(ctx, identifier, c.vendorID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.seq.IsLatest(KindLookup, seq) {
		c.log.Debug().Uint64("seq", seq).Msg("discarding stale lookup")
		return Outcome{Stale: true}, nil
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("lookup failed")
		return Outcome{}, err
	}
	if !found {
		return Outcome{Notice: MsgNotFound}, nil
	}

	c.tracker.Set(*cust)
	if c.cache.Loaded() {
		if _, ok := c.cache.Find(cust.ID); !ok {
			c.tracker.inSnapshot = false
		}
	}
	return Outcome{Notice: MsgFound, Found: true}, nil
}

// Join validates form, submits it, tracks the new entry and reloads the
// roster. Lookups issued before the join are discarded; a lookup issued while
// it is in flight keeps its result.
func (c *Controller) Join(ctx context.Context, form JoinForm) (Outcome, error) {
	if err := c.begin(ActionJoin); err != nil {
		return Outcome{}, err
	}
	defer c.end(ActionJoin)

	seq := c.seq.Next(KindLookup)
	cust, err := c.joiner.Join(ctx, c.vendorID, form)
	if err != nil {
		return Outcome{}, err
	}
	c.mu.Lock()
	if c.seq.IsLatest(KindLookup, seq) {
		c.tracker.Set(*cust)
	} else {
		c.log.Debug().Int64("customer", cust.ID).Msg("newer lookup supersedes joined entry")
	}
	c.mu.Unlock()
	c.log.Info().Int64("customer", cust.ID).Int("position", cust.Position).Msg("joined waitlist")

	if err := c.LoadRoster(ctx); err != nil {
		c.log.Warn().Err(err).Msg("roster refresh after join failed")
	}
	return Outcome{Notice: MsgJoined, Found: true}, nil
}

// RefreshStatus re-resolves the tracked customer by phone, else email, then
// reloads the roster. A miss keeps the held record.
func (c *Controller) RefreshStatus(ctx context.Context) (Outcome, error) {
	if err := c.begin(ActionRefresh); err != nil {
		return Outcome{}, err
	}
	defer c.end(ActionRefresh)

	c.mu.Lock()
	self, ok := c.tracker.Current()
	c.mu.Unlock()

	var out Outcome
	var lookupErr error
	if ok && self.Identifier() != "" {
		out, lookupErr = c.lookup(ctx, self.Identifier())
		if out.Notice == MsgNotFound {
			out.Notice = ""
		}
	}
	rosterErr := c.LoadRoster(ctx)
	if lookupErr != nil {
		return out, lookupErr
	}
	return out, rosterErr
}

// Leave removes the tracked customer. State is cleared only after the
// backend confirms.
func (c *Controller) Leave(ctx context.Context) (Outcome, error) {
	if err := c.begin(ActionLeave); err != nil {
		return Outcome{}, err
	}
	defer c.end(ActionLeave)

	c.mu.Lock()
	id := c.tracker.ID()
	c.mu.Unlock()
	if id == 0 {
		return Outcome{}, ErrNotResolved
	}

	if err := c.backend.Remove(ctx, id); err != nil {
		c.log.Warn().Err(err).Int64("customer", id).Msg("leave failed")
		return Outcome{}, &Failure{Message: MsgLeaveFailed, Err: err}
	}
	c.mu.Lock()
	c.seq.Next(KindLookup)
	if c.tracker.ID() == id {
		c.tracker.Clear()
	}
	c.mu.Unlock()
	c.log.Info().Int64("customer", id).Msg("left waitlist")

	if err := c.LoadRoster(ctx); err != nil {
		c.log.Warn().Err(err).Msg("roster refresh after leave failed")
	}
	return Outcome{Notice: MsgLeft}, nil
}

// LoadRoster fetches the vendor's queue, replaces the cache and reconciles the
// tracked customer. Superseded responses are dropped.
func (c *Controller) LoadRoster(ctx context.Context) error {
	seq := c.seq.Next(KindRoster)
	all, err := c.backend.Waitlist(ctx, c.vendorID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.seq.IsLatest(KindRoster, seq) {
		c.log.Debug().Uint64("seq", seq).Msg("discarding stale roster")
		return nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &Failure{Message: MsgRosterFailed, Err: err}
	}
	c.cache.Replace(all, c.now())
	c.tracker.Reconcile(all)
	return nil
}
