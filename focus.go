package galaxy

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FocusMode is the camera/selection state the stage is in. Orbit is the
// resting state; Transitioning covers any timed camera flight (locking onto
// a node or resetting); Locked means the flight finished and a node owns
// focus.
type FocusMode uint8

const (
	FocusOrbit FocusMode = iota
	FocusTransitioning
	FocusLocked
)

// String returns the lowercase name of the mode.
func (m FocusMode) String() string {
	switch m {
	case FocusOrbit:
		return "orbit"
	case FocusTransitioning:
		return "transitioning"
	case FocusLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// SynergyLink is one armor→weapon pairing surfaced by the synergy overlay.
// The overlay draws a wire chain HUD anchor → armor → weapon per link.
type SynergyLink struct {
	Armor   ItemRef
	Weapon  ItemRef
	Element Element
}

// SynergyProvider resolves the synergy links for a source item. The synergy
// dataset lives with the host; the engine only asks for links when a source
// is activated and holds them until exit.
type SynergyProvider func(source ItemRef) []SynergyLink

const (
	// Camera flight durations. Locking takes the scenic route so the eye can
	// follow which node is being centered; the reset flight home is quicker.
	lockFlightTime  = 450 * time.Millisecond
	resetFlightTime = 300 * time.Millisecond

	// lockDepth is the camera-space depth a locked node is flown to.
	// scale = focal/(focal-lockDepth) ≈ 1.67 at the default focal length.
	lockDepth = 400.0

	// Synergy overlay fade and the debounce before isolation releases.
	// The debounce absorbs rapid toggle spam so the full node set doesn't
	// flash back between two synergy activations.
	synergyFadeTime    = 200 * time.Millisecond
	isolationDebounce  = 150 * time.Millisecond
	synergyFadeSeconds = 0.2
)

// focusState tracks the focus machine and the synergy overlay lifecycle.
// All timers are deadline-based against the stage clock; the state only
// moves inside tick, keeping the single-writer frame model intact.
type focusState struct {
	mode       FocusMode
	lockedKey  string
	pendingKey string // lock target while the flight is in progress

	synSource  string // key of the active synergy source, "" when inactive
	synLinks   []SynergyLink
	synMembers map[string]bool // source + link endpoint keys
	synExiting bool
	synAlpha   float64
	synTween   *gween.Tween

	isolating      bool
	isolationOffAt time.Time
}

// beginLock starts a focus flight toward the node with the given key. Only
// one lock exists at a time: a new lock releases the prior one. An active
// synergy overlay stays up; locking a node mid-synergy reads as "inspect
// this one member" and the wires keep tracking through the flight.
func (f *focusState) beginLock(key string) {
	f.pendingKey = key
	f.lockedKey = ""
	f.mode = FocusTransitioning
}

// beginReset starts the flight back to orbit, clearing lock and synergy.
func (f *focusState) beginReset() {
	f.dropSynergy()
	f.pendingKey = ""
	f.lockedKey = ""
	f.mode = FocusTransitioning
}

// flightDone is called by the stage tick once the camera flight completes.
func (f *focusState) flightDone() {
	if f.mode != FocusTransitioning {
		return
	}
	if f.pendingKey != "" {
		f.lockedKey = f.pendingKey
		f.pendingKey = ""
		f.mode = FocusLocked
	} else {
		f.mode = FocusOrbit
	}
}

// enterSynergy activates the overlay for a source and its resolved links.
// Any held focus lock releases: the overlay needs the whole field visible
// through its own isolation rules, not a camera pinned to one node.
func (f *focusState) enterSynergy(sourceKey string, links []SynergyLink) {
	f.lockedKey = ""
	f.pendingKey = ""
	f.mode = FocusOrbit

	f.synSource = sourceKey
	f.synLinks = links
	f.synExiting = false
	f.isolating = true
	f.isolationOffAt = time.Time{}
	f.synTween = gween.New(float32(f.synAlpha), 1, synergyFadeSeconds, ease.OutCubic)

	f.synMembers = make(map[string]bool, 1+2*len(links))
	f.synMembers[sourceKey] = true
	for i := range links {
		f.synMembers[links[i].Armor.Key()] = true
		f.synMembers[links[i].Weapon.Key()] = true
	}
}

// exitSynergy begins the overlay fade-out. Wires and isolation linger until
// the fade completes and the debounce expires.
func (f *focusState) exitSynergy(now time.Time) {
	if f.synSource == "" || f.synExiting {
		return
	}
	f.synExiting = true
	f.synTween = gween.New(float32(f.synAlpha), 0, synergyFadeSeconds, ease.OutCubic)
	f.isolationOffAt = now.Add(isolationDebounce)
}

// dropSynergy clears the overlay immediately, skipping the fade. Used when a
// hard state change (lock, reset, layout rebuild) supersedes the overlay.
func (f *focusState) dropSynergy() {
	f.synSource = ""
	f.synLinks = nil
	f.synMembers = nil
	f.synExiting = false
	f.synAlpha = 0
	f.synTween = nil
	f.isolating = false
	f.isolationOffAt = time.Time{}
}

// synergyActive reports whether the overlay is live (including while fading
// out).
func (f *focusState) synergyActive() bool {
	return f.synSource != ""
}

// tick advances the synergy fade and releases isolation once the exit
// debounce expires.
func (f *focusState) tick(dt float32, now time.Time) {
	if f.synTween != nil {
		v, done := f.synTween.Update(dt)
		f.synAlpha = float64(v)
		if done {
			f.synTween = nil
		}
	}
	if f.synExiting && f.synTween == nil && !f.isolationOffAt.IsZero() && !now.Before(f.isolationOffAt) {
		f.dropSynergy()
	}
}
