package model

// TransitionType is the visual effect used when advancing between items.
type TransitionType string

const (
	TransitionFade  TransitionType = "fade"
	TransitionSlide TransitionType = "slide"
	TransitionZoom  TransitionType = "zoom"
	TransitionNone  TransitionType = "none"
)

type SlideDirection string

const (
	SlideLeft  SlideDirection = "left"
	SlideRight SlideDirection = "right"
	SlideUp    SlideDirection = "up"
	SlideDown  SlideDirection = "down"
)

const defaultTransitionMS = 800

// TransitionConfig is the resolved form of an item's transition. Legacy
// string values are mapped into this once at ingestion, not re-parsed on
// every advance.
type TransitionConfig struct {
	Type       TransitionType `json:"type"`
	Direction  SlideDirection `json:"direction,omitempty"`
	DurationMS int            `json:"duration_ms"`
	Easing     string         `json:"easing,omitempty"`
}

var legacyTransitions = map[string]TransitionConfig{
	"fade":        {Type: TransitionFade, DurationMS: defaultTransitionMS},
	"slide-left":  {Type: TransitionSlide, Direction: SlideLeft, DurationMS: defaultTransitionMS},
	"slide-right": {Type: TransitionSlide, Direction: SlideRight, DurationMS: defaultTransitionMS},
	"slide-up":    {Type: TransitionSlide, Direction: SlideUp, DurationMS: defaultTransitionMS},
	"slide-down":  {Type: TransitionSlide, Direction: SlideDown, DurationMS: defaultTransitionMS},
	"zoom":        {Type: TransitionZoom, DurationMS: defaultTransitionMS},
	"none":        {Type: TransitionNone, DurationMS: 0},
}

// ResolveTransition maps an item's legacy transition string plus optional
// per-item overrides into a TransitionConfig. Unknown strings fall back to
// fade.
func ResolveTransition(it PlaylistItem) TransitionConfig {
	cfg, ok := legacyTransitions[it.Transition]
	if !ok {
		cfg = legacyTransitions["fade"]
	}
	if it.TransitionMS != nil && *it.TransitionMS >= 0 {
		cfg.DurationMS = *it.TransitionMS
	}
	if it.TransitionEasing != nil {
		cfg.Easing = *it.TransitionEasing
	}
	return cfg
}
