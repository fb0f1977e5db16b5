package player

import (
	"github.com/rs/zerolog"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

// Renderer receives the controller's visual side effects. Implementations
// must not block; all calls come from the controller's run loop and stop
// once the controller stops.
type Renderer interface {
	// ShowSlide puts a slide on screen with no animation.
	ShowSlide(s Slide)
	// ShowTransition starts the animation from one slide to the next. The
	// controller commits the advance after the configured duration.
	ShowTransition(from, to Slide, cfg model.TransitionConfig)
	// ShowIdle renders the nothing-to-show placeholder.
	ShowIdle()
	// ShowError renders the connection-error screen shown before any
	// playlist has ever loaded.
	ShowError(err error)
	// SetOnline toggles the online/offline indicator without affecting
	// whatever is currently on screen.
	SetOnline(online bool)
}

// LogRenderer writes rendering side effects to the log. Display firmware
// swaps in a real renderer; this one backs headless runs and development.
type LogRenderer struct {
	logger zerolog.Logger
}

func NewLogRenderer(logger zerolog.Logger) *LogRenderer {
	return &LogRenderer{logger: logger}
}

func (r *LogRenderer) ShowSlide(s Slide) {
	r.logger.Info().
		Int("content_id", s.ContentID).
		Str("url", s.URL).
		Int("hold_seconds", s.HoldSeconds).
		Msg("showing slide")
}

func (r *LogRenderer) ShowTransition(from, to Slide, cfg model.TransitionConfig) {
	r.logger.Info().
		Int("from_content_id", from.ContentID).
		Int("to_content_id", to.ContentID).
		Str("effect", string(cfg.Type)).
		Int("duration_ms", cfg.DurationMS).
		Msg("transitioning")
}

func (r *LogRenderer) ShowIdle() {
	r.logger.Info().Msg("nothing scheduled, showing idle screen")
}

func (r *LogRenderer) ShowError(err error) {
	r.logger.Error().Err(err).Msg("showing connection error screen")
}

func (r *LogRenderer) SetOnline(online bool) {
	r.logger.Info().Bool("online", online).Msg("connectivity changed")
}
