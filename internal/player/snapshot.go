// Package player runs the unattended playback loop for a single display:
// it polls the server for the resolved eligible item list, rotates through
// it with per-item hold timers and transitions, and reports liveness.
package player

import (
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

// Slide is one renderable playlist entry with its transition already
// resolved. Legacy transition strings are mapped at ingestion so the loop
// never re-parses them.
type Slide struct {
	ContentID   int
	URL         string
	ContentType string
	Position    int
	HoldSeconds int
	Transition  model.TransitionConfig
}

// Snapshot is the ordered eligible list from one successful poll. The
// controller treats it as immutable and only ever replaces its reference.
type Snapshot struct {
	PlaylistName string
	Slides       []Slide
}

// PlaybackState is the controller's client-resident state. It is owned by
// the controller's run loop exclusively and rebuilt from scratch on
// restart; nothing here is persisted.
type PlaybackState struct {
	Items           []Slide
	CurrentIndex    int
	NextIndex       int
	IsTransitioning bool
	IsOnline        bool

	// generation invalidates timers armed against an earlier state; a
	// fire carrying a stale generation is discarded before it can touch
	// anything.
	generation uint64
}

// Phase is the coarse controller state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseEmpty
	PhaseRotating
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseEmpty:
		return "empty"
	case PhaseRotating:
		return "rotating"
	}
	return "unknown"
}
