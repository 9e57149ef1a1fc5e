package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/assets"
	"github.com/five82/inline/internal/config"
	"github.com/five82/inline/internal/logging"
	"github.com/five82/inline/internal/prefs"
	"github.com/five82/inline/internal/session"
	"github.com/five82/inline/internal/state"
	"github.com/five82/inline/internal/ui"
	"github.com/five82/inline/internal/waitlist"
)

// ErrSessionRequired means a vendor command ran without a live login.
var ErrSessionRequired = errors.New("session expired or missing; run `inline login`")

// ErrNoVendor means customer mode has no vendor to join.
var ErrNoVendor = errors.New("no vendor given and none remembered; pass a vendor ID")

// Options configure an InLine run.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/inline/prefs.toml
	PollEvery  time.Duration // zero uses the configured interval
	Version    string
}

// Env holds the dependencies every command shares.
type Env struct {
	Config    config.Config
	Log       zerolog.Logger
	Session   *session.Store
	Client    *api.Client
	PrefsPath string

	pollEvery time.Duration
	closer    io.Closer
}

// Setup loads configuration and builds the logger, session store and API client.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, closer, err := logging.New(logging.Config{Level: cfg.LogLevel, Path: cfg.LogPath})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	sessions := session.Open(cfg.SessionPath)

	clientOpts := []api.Option{
		api.WithTokenSource(sessions),
		api.WithLogger(log),
	}
	if opts.Version != "" {
		clientOpts = append(clientOpts, api.WithUserAgent("inline/"+opts.Version))
	}
	client, err := api.NewClient(cfg.APIURL, clientOpts...)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	interval := cfg.PollEvery
	if opts.PollEvery > 0 {
		interval = opts.PollEvery
	}

	return &Env{
		Config:    cfg,
		Log:       log,
		Session:   sessions,
		Client:    client,
		PrefsPath: opts.PrefsPath,
		pollEvery: interval,
		closer:    closer,
	}, nil
}

// Close releases the log file.
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// RequireSession returns the live vendor session or ErrSessionRequired.
func (e *Env) RequireSession() (session.Session, error) {
	sess, err := e.Session.Current()
	if err != nil {
		return session.Session{}, ErrSessionRequired
	}
	return sess, nil
}

// LookupVendor fetches the vendor's profile. A failed lookup falls back to
// a bare record so the caller can still proceed.
func (e *Env) LookupVendor(ctx context.Context, vendorID int64) api.Vendor {
	vendor, err := e.Client.Vendor(ctx, vendorID)
	if err != nil || vendor == nil {
		e.Log.Warn().Err(err).Int64("vendor", vendorID).Msg("vendor lookup failed")
		return api.Vendor{ID: vendorID}
	}
	if vendor.ID == 0 {
		vendor.ID = vendorID
	}
	return *vendor
}

// ResolveVendorID picks the explicit vendor or the last one used.
func (e *Env) ResolveVendorID(explicit int64) (int64, error) {
	if explicit > 0 {
		return explicit, nil
	}
	if last := prefs.Load(e.PrefsPath).LastVendor; last > 0 {
		return last, nil
	}
	return 0, ErrNoVendor
}

// RunCustomer boots the customer TUI for a vendor's waitlist until the
// context is cancelled or the user quits.
func RunCustomer(ctx context.Context, env *Env, vendorID int64) error {
	vendorID, err := env.ResolveVendorID(vendorID)
	if err != nil {
		return err
	}

	userPrefs := prefs.Load(env.PrefsPath)
	if userPrefs.LastVendor != vendorID {
		if err := prefs.Update(env.PrefsPath, func(p *prefs.Prefs) { p.LastVendor = vendorID }); err != nil {
			env.Log.Warn().Err(err).Msg("save last vendor")
		}
	}

	vendor := env.LookupVendor(ctx, vendorID)
	log := env.Log.With().Int64("vendor", vendorID).Str("mode", "customer").Logger()
	log.Info().Msg("starting customer view")

	client := env.Client
	controller := waitlist.NewController(vendorID, client, log)

	return ui.Run(ui.Options{
		Context:    ctx,
		Mode:       ui.ModeCustomer,
		Vendor:     vendor,
		Log:        log,
		Controller: controller,
		Estimate: func(ctx context.Context, position int) (int, error) {
			return client.Estimate(ctx, vendorID, position)
		},
		ThemeName: userPrefs.Theme,
		Anonymize: userPrefs.Anonymize,
		PrefsPath: env.PrefsPath,
	})
}

// RunDashboard boots the vendor dashboard for the logged-in vendor.
func RunDashboard(ctx context.Context, env *Env) error {
	sess, err := env.RequireSession()
	if err != nil {
		return err
	}
	vendor := sess.Vendor
	log := env.Log.With().Int64("vendor", vendor.ID).Str("mode", "dashboard").Logger()
	log.Info().Msg("starting dashboard")

	userPrefs := prefs.Load(env.PrefsPath)
	client := env.Client
	store := &state.Store{}

	// Start background poller
	StartPoller(ctx, store, client, vendor.ID, env.pollEvery, log)

	return ui.Run(ui.Options{
		Context: ctx,
		Mode:    ui.ModeDashboard,
		Vendor:  vendor,
		Log:     log,
		Store:   store,
		Refresh: func(ctx context.Context) error {
			return refresh(ctx, store, client, vendor.ID, log)
		},
		Desk:      waitlist.NewDesk(client, log),
		Assets:    assets.NewService(client, vendor.ID),
		JoinURL:   env.Config.JoinURL(vendor.ID),
		ThemeName: userPrefs.Theme,
		Anonymize: userPrefs.Anonymize,
		PrefsPath: env.PrefsPath,
	})
}
