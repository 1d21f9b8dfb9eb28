package galaxy

import (
	"fmt"
	"os"
	"time"
)

// FrameStats holds the previous frame's pipeline metrics. Snapshot it via
// Stage.Stats; the HUD widget renders the interesting subset.
type FrameStats struct {
	Frame uint64

	// Node counts.
	Nodes       int
	DrawnNodes  int
	VaultPoints int
	DrawnStars  int

	// Pipeline phase timings.
	Project time.Duration
	Cull    time.Duration
	Sort    time.Duration
	Resolve time.Duration
	Draw    time.Duration

	// CameraResets counts corruption-guard fires; SkippedFrames counts
	// frames abandoned because the camera snapshot was invalid. Either being
	// nonzero means something upstream is feeding the rig garbage.
	CameraResets  int
	SkippedFrames int
}

// debugLog prints the frame's timing and count stats to stderr. Called at
// the end of Draw when debug mode is on.
func (s *Stage) debugLog() {
	st := &s.stats
	total := st.Project + st.Cull + st.Sort + st.Resolve + st.Draw
	_, _ = fmt.Fprintf(os.Stderr,
		"[galaxy] project: %v | cull: %v | sort: %v | resolve: %v | draw: %v | total: %v\n",
		st.Project, st.Cull, st.Sort, st.Resolve, st.Draw, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[galaxy] nodes: %d/%d | stars: %d/%d | frame: %d\n",
		st.DrawnNodes, st.Nodes, st.DrawnStars, st.VaultPoints, st.Frame)
}

// logCameraReset reports a corruption-guard reset. Logged even outside debug
// mode: a reset means non-finite values reached the camera state, which is
// always an upstream bug worth surfacing.
func logCameraReset() {
	_, _ = fmt.Fprintf(os.Stderr, "[galaxy] camera state was non-finite; rig reset to the default orbit\n")
}
