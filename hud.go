package galaxy

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefreshFrames is how often the HUD text reformats. Half a second at the
// default tick rate; formatting every frame would be pointless churn.
const hudRefreshFrames = 30

type hudState struct {
	text      string
	lastFrame uint64
}

// DrawHUD prints a compact stats readout in the top-left corner: frame
// rates, drawn/total counts, focus mode and camera resets. Call it from the
// host's Draw after Stage.Draw; it is not drawn automatically.
func (s *Stage) DrawHUD(screen *ebiten.Image) {
	if s.hud.text == "" || s.stats.Frame-s.hud.lastFrame >= hudRefreshFrames {
		s.hud.lastFrame = s.stats.Frame
		st := s.stats
		s.hud.text = fmt.Sprintf(
			"FPS: %.1f  TPS: %.1f\nnodes: %d/%d  stars: %d/%d\nfocus: %s  resets: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			st.DrawnNodes, st.Nodes, st.DrawnStars, st.VaultPoints,
			s.focus.mode, st.CameraResets)
	}
	ebitenutil.DebugPrintAt(screen, s.hud.text, 8, 8)
}
