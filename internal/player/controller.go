package player

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Config carries the playback loop's cadences. Per-item hold and
// transition times are data, not configuration.
type Config struct {
	// PollInterval is the cadence for re-fetching the eligible list while
	// rotating. Default 15s.
	PollInterval time.Duration
	// EmptyPollInterval is the recheck cadence while nothing is eligible.
	// Default 10s.
	EmptyPollInterval time.Duration
	// ErrorBackoff is the retry cadence after a fetch failure before any
	// playlist has ever loaded. Default 60s.
	ErrorBackoff time.Duration
	// HoldUnit is the duration of one hold-time unit (an item's duration
	// field counts these). Default one second; tests shrink it.
	HoldUnit time.Duration
	// TransitionUnit is the duration of one transition millisecond.
	// Default time.Millisecond; tests shrink it.
	TransitionUnit time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = 15 * time.Second
	}
	if c.EmptyPollInterval <= 0 {
		c.EmptyPollInterval = 10 * time.Second
	}
	if c.ErrorBackoff <= 0 {
		c.ErrorBackoff = time.Minute
	}
	if c.HoldUnit <= 0 {
		c.HoldUnit = time.Second
	}
	if c.TransitionUnit <= 0 {
		c.TransitionUnit = time.Millisecond
	}
	return c
}

// Source produces the display's resolved eligible list. The server runs
// the playlist resolver at its own current instant on every fetch.
type Source interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

type fireKind int

const (
	fireHold fireKind = iota
	fireTransition
)

type timerFire struct {
	gen  uint64
	kind fireKind
}

type pollResult struct {
	snap *Snapshot
	err  error
}

// Controller is the per-display playback state machine. One goroutine
// (Run) owns all state; timers and poll results are delivered into that
// loop, so holds, transitions, and reconciliations are serialized.
type Controller struct {
	source   Source
	renderer Renderer
	cfg      Config
	logger   zerolog.Logger

	st      PlaybackState
	phase   Phase
	loaded  bool      // at least one successful poll
	pending *Snapshot // reconciliation deferred while a transition runs

	holdTimer       *time.Timer
	transitionTimer *time.Timer

	fires    chan timerFire
	polls    chan pollResult
	online   chan bool
	stateReq chan chan PlaybackState
	polling  bool
}

func NewController(source Source, renderer Renderer, cfg Config, logger zerolog.Logger) *Controller {
	return &Controller{
		source:   source,
		renderer: renderer,
		cfg:      cfg.withDefaults(),
		logger:   logger,
		phase:    PhaseLoading,
		fires:    make(chan timerFire, 16),
		polls:    make(chan pollResult, 1),
		online:   make(chan bool, 4),
		stateReq: make(chan chan PlaybackState),
	}
}

// Run executes the playback loop until context cancellation. It never
// returns for any other reason; every fetch failure becomes a state
// transition, not an escaping error.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info().Msg("playback controller started")

	pollTimer := time.NewTimer(0) // first poll immediately
	defer pollTimer.Stop()
	defer c.cancelTimers()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("playback controller stopped")
			return ctx.Err()

		case <-pollTimer.C:
			c.startPoll(ctx)

		case res := <-c.polls:
			c.polling = false
			c.handlePoll(res)
			pollTimer.Reset(c.pollDelay())

		case online := <-c.online:
			c.setOnline(online)

		case f := <-c.fires:
			if f.gen != c.st.generation {
				continue // stale timer, playlist changed since it was armed
			}
			switch f.kind {
			case fireHold:
				c.beginTransition()
			case fireTransition:
				c.commitTransition()
			}

		case resp := <-c.stateReq:
			resp <- c.st
		}
	}
}

// State round-trips through the run loop and returns a copy of the
// playback state. Used by tests and diagnostics.
func (c *Controller) State() PlaybackState {
	resp := make(chan PlaybackState, 1)
	select {
	case c.stateReq <- resp:
		return <-resp
	case <-time.After(5 * time.Second):
		return PlaybackState{}
	}
}

// NotifyOnline feeds a liveness verdict from the heartbeat reporter into
// the loop. It never blocks; a dropped update is replaced by the next one.
func (c *Controller) NotifyOnline(online bool) {
	select {
	case c.online <- online:
	default:
	}
}

func (c *Controller) startPoll(ctx context.Context) {
	if c.polling {
		return
	}
	c.polling = true
	go func() {
		snap, err := c.source.Fetch(ctx)
		select {
		case c.polls <- pollResult{snap: snap, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (c *Controller) pollDelay() time.Duration {
	switch c.phase {
	case PhaseError:
		return c.cfg.ErrorBackoff
	case PhaseEmpty:
		return c.cfg.EmptyPollInterval
	default:
		return c.cfg.PollInterval
	}
}

func (c *Controller) handlePoll(res pollResult) {
	if res.err != nil {
		if !c.loaded {
			c.phase = PhaseError
			c.logger.Error().Err(res.err).Msg("playlist fetch failed before first load")
			c.renderer.ShowError(res.err)
			return
		}
		// transient failure after a good load: keep rotating the last
		// known list, just mark offline
		c.logger.Warn().Err(res.err).Msg("poll failed, keeping last known playlist")
		c.setOnline(false)
		return
	}

	c.loaded = true
	c.setOnline(true)

	if c.st.IsTransitioning {
		// applied at the next holding state to avoid tearing the indices
		c.pending = res.snap
		return
	}
	c.reconcile(res.snap)
}

// reconcile replaces the eligible list with a freshly polled one. The
// slide currently on screen is matched by content, not index; when it
// survives, the running hold timer keeps its remaining time.
func (c *Controller) reconcile(snap *Snapshot) {
	items := snap.Slides
	if len(items) == 0 {
		c.enterEmpty()
		return
	}

	if c.phase != PhaseRotating {
		c.st.Items = items
		c.startRotation(0)
		return
	}

	current := c.st.Items[c.st.CurrentIndex]
	idx := indexOfContent(items, current.ContentID)
	c.st.Items = items

	if idx < 0 {
		// current slide no longer eligible: forced immediate advance
		c.logger.Info().Int("content_id", current.ContentID).Msg("current slide removed by reconciliation")
		c.startRotation(0)
		return
	}

	c.st.CurrentIndex = idx
	c.st.NextIndex = (idx + 1) % len(items)
	if len(items) == 1 {
		// static display from here on; the armed hold must never fire
		c.cancelTimers()
	} else if c.holdTimer == nil {
		c.armHold()
	}
}

func (c *Controller) startRotation(idx int) {
	c.cancelTimers()
	c.phase = PhaseRotating
	c.st.CurrentIndex = idx
	c.st.NextIndex = (idx + 1) % len(c.st.Items)
	c.renderer.ShowSlide(c.st.Items[idx])
	if len(c.st.Items) > 1 {
		c.armHold()
	}
}

func (c *Controller) enterEmpty() {
	c.cancelTimers()
	if c.phase != PhaseEmpty {
		c.logger.Info().Msg("no eligible items, entering empty state")
	}
	c.phase = PhaseEmpty
	c.st.Items = nil
	c.st.CurrentIndex = 0
	c.st.NextIndex = 0
	c.renderer.ShowIdle()
}

func (c *Controller) armHold() {
	slide := c.st.Items[c.st.CurrentIndex]
	d := time.Duration(slide.HoldSeconds) * c.cfg.HoldUnit
	gen := c.st.generation
	c.holdTimer = time.AfterFunc(d, func() { c.fire(gen, fireHold) })
}

func (c *Controller) beginTransition() {
	if c.st.IsTransitioning || c.phase != PhaseRotating || len(c.st.Items) < 2 {
		// duplicate fire, or the list changed underneath the timer
		return
	}
	c.holdTimer = nil
	c.st.IsTransitioning = true
	c.st.NextIndex = (c.st.CurrentIndex + 1) % len(c.st.Items)

	from := c.st.Items[c.st.CurrentIndex]
	to := c.st.Items[c.st.NextIndex]
	c.renderer.ShowTransition(from, to, to.Transition)

	d := time.Duration(to.Transition.DurationMS) * c.cfg.TransitionUnit
	gen := c.st.generation
	c.transitionTimer = time.AfterFunc(d, func() { c.fire(gen, fireTransition) })
}

func (c *Controller) commitTransition() {
	if !c.st.IsTransitioning {
		return
	}
	c.transitionTimer = nil
	c.st.CurrentIndex = c.st.NextIndex
	c.st.NextIndex = (c.st.CurrentIndex + 1) % len(c.st.Items)
	c.st.IsTransitioning = false
	c.renderer.ShowSlide(c.st.Items[c.st.CurrentIndex])

	if pending := c.pending; pending != nil {
		c.pending = nil
		c.reconcile(pending)
		return
	}
	if len(c.st.Items) > 1 {
		c.armHold()
	}
}

// cancelTimers stops both timers and bumps the generation so that any
// fire already in flight is discarded by the loop.
func (c *Controller) cancelTimers() {
	c.st.generation++
	if c.holdTimer != nil {
		c.holdTimer.Stop()
		c.holdTimer = nil
	}
	if c.transitionTimer != nil {
		c.transitionTimer.Stop()
		c.transitionTimer = nil
	}
	c.st.IsTransitioning = false
	c.pending = nil
}

func (c *Controller) setOnline(online bool) {
	if c.st.IsOnline == online {
		return
	}
	c.st.IsOnline = online
	c.renderer.SetOnline(online)
	if online {
		c.logger.Info().Msg("display online")
	} else {
		c.logger.Warn().Msg("display offline")
	}
}

func (c *Controller) fire(gen uint64, kind fireKind) {
	select {
	case c.fires <- timerFire{gen: gen, kind: kind}:
	default:
		// loop stopped or saturated; a stale fire is safe to drop
	}
}

func indexOfContent(items []Slide, contentID int) int {
	for i, it := range items {
		if it.ContentID == contentID {
			return i
		}
	}
	return -1
}
