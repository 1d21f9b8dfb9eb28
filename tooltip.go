package galaxy

import "time"

// Tooltip hysteresis. Show delays are tiered by how deliberate a hover over
// that target tends to be: the equipped subclass is the anchor players park
// on constantly, equipped gear is a common stop, everything else gets the
// full delay to filter drive-by hovers. Hiding is delayed symmetrically so
// skimming across a node's edge doesn't flicker.
const (
	tooltipShowSubclass = 0
	tooltipShowEquipped = 90 * time.Millisecond
	tooltipShowDefault  = 150 * time.Millisecond
	tooltipHideDelay    = 150 * time.Millisecond

	// tooltipSpeedCutoff suppresses tooltips while the camera moves faster
	// than this many world units per tick. A tooltip anchored to a node
	// sweeping across the screen is noise.
	tooltipSpeedCutoff = 0.6
)

func tooltipShowDelay(n *WorldNode) time.Duration {
	switch {
	case n.Equipped && n.Kind == KindSubclass:
		return tooltipShowSubclass
	case n.Equipped:
		return tooltipShowEquipped
	default:
		return tooltipShowDefault
	}
}

// tooltipTimer runs the show/hide hysteresis for one pointer. It is pure
// state plus deadlines: the stage feeds it hover changes and ticks it with
// the frame clock, and it answers with at most one show and one hide event
// per tick.
type tooltipTimer struct {
	shownKey   string // node currently owning a visible tooltip
	pendingKey string
	showAt     time.Time
	hideAt     time.Time // zero when no hide is scheduled
}

// hover records the pointer resting on a node. Re-hovering the node that
// already owns the tooltip cancels a scheduled hide; hovering a new node
// arms the show deadline. Repeated calls with the same pending node must not
// push the deadline out, so the timer only re-arms on a key change.
func (tt *tooltipTimer) hover(key string, delay time.Duration, now time.Time) {
	if key == tt.shownKey {
		tt.pendingKey = ""
		tt.hideAt = time.Time{}
		return
	}
	if key != tt.pendingKey {
		tt.pendingKey = key
		tt.showAt = now.Add(delay)
	}
	if tt.shownKey != "" && tt.hideAt.IsZero() {
		tt.hideAt = now.Add(tooltipHideDelay)
	}
}

// leave records the pointer resting on nothing.
func (tt *tooltipTimer) leave(now time.Time) {
	tt.pendingKey = ""
	if tt.shownKey != "" && tt.hideAt.IsZero() {
		tt.hideAt = now.Add(tooltipHideDelay)
	}
}

// tick resolves deadlines. show is the key of a tooltip to present this
// frame ("" for none); hide reports that the current tooltip must close.
// Camera motion above the cutoff clears everything immediately.
func (tt *tooltipTimer) tick(now time.Time, cameraSpeed float64) (show string, hide bool) {
	if cameraSpeed > tooltipSpeedCutoff {
		tt.pendingKey = ""
		if tt.shownKey != "" {
			tt.shownKey = ""
			tt.hideAt = time.Time{}
			return "", true
		}
		return "", false
	}

	if !tt.hideAt.IsZero() && !now.Before(tt.hideAt) {
		tt.shownKey = ""
		tt.hideAt = time.Time{}
		hide = true
	}

	if tt.pendingKey != "" && !now.Before(tt.showAt) {
		if tt.shownKey != "" {
			// Replace: the old tooltip closes the moment the new one shows.
			hide = true
		}
		tt.shownKey = tt.pendingKey
		tt.pendingKey = ""
		tt.hideAt = time.Time{}
		show = tt.shownKey
	}

	return show, hide
}

// reset clears all timer state without emitting events. Used on layout
// rebuild and focus loss, where the host tears down its tooltip layer
// anyway.
func (tt *tooltipTimer) reset() {
	*tt = tooltipTimer{}
}
