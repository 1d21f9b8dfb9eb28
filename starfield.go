package galaxy

// Vault starfield parameters.
const (
	// starBaseSize is the dot edge length at unit scale. Exotics and
	// bright (masterworked/crafted) items render larger.
	starBaseSize  = 2.2
	starExoticMul = 1.8
	starBrightMul = 1.3
	starMinSize   = 1.0
	starMaxSize   = 6.0

	// starHitRadius is the pick radius for the vault fallback hit test.
	// Vault points are tiny; a generous fixed radius beats scaling math.
	starHitRadius = 24.0
)

// starDot is one drawable vault point for the current frame: screen
// position, size and premultiplied color, ready for quad batching.
type starDot struct {
	x, y    float32
	size    float32
	r, g, b float32
	a       float32
}

// starProj caches a vault point's screen position for hit testing, parallel
// to Layout.Vault.
type starProj struct {
	sx, sy float64
	ok     bool
}

// starfield owns the per-frame vault point buffers. Buffers are reused
// across frames (truncate, refill) so a steady-state frame allocates
// nothing. visible is the toggle target; alpha trails it through the
// stage-driven fade so the field dissolves instead of popping.
type starfield struct {
	visible bool
	alpha   float64
	dots    []starDot
	proj    []starProj
	drawn   int
}

func newStarfield() starfield {
	return starfield{visible: true, alpha: 1}
}

// rebuild projects and culls every vault point for the frame. When the
// starfield has fully faded out the buffers empty, which also disables the
// vault hit-test fallback.
func (sf *starfield) rebuild(points []VaultPoint, sn *Snapshot, c *culler) {
	sf.dots = sf.dots[:0]
	if cap(sf.proj) < len(points) {
		sf.proj = make([]starProj, len(points))
	}
	sf.proj = sf.proj[:len(points)]
	sf.drawn = 0

	if sf.alpha <= 0.004 {
		for i := range sf.proj {
			sf.proj[i] = starProj{}
		}
		return
	}

	for i := range points {
		p := &points[i]
		pr := sn.Project(p.X, p.Y, p.Z)
		a := c.vaultAlpha(p, &pr) * sf.alpha
		if a <= 0 {
			sf.proj[i] = starProj{}
			continue
		}
		sf.proj[i] = starProj{sx: pr.ScreenX, sy: pr.ScreenY, ok: true}

		size := starBaseSize * pr.Scale
		if p.Exotic {
			size *= starExoticMul
		}
		if p.Bright {
			size *= starBrightMul
		}
		size = clamp(size, starMinSize, starMaxSize)

		sf.dots = append(sf.dots, starDot{
			x:    float32(pr.ScreenX - size/2),
			y:    float32(pr.ScreenY - size/2),
			size: float32(size),
			r:    float32(p.Color.R * a),
			g:    float32(p.Color.G * a),
			b:    float32(p.Color.B * a),
			a:    float32(a),
		})
		sf.drawn++
	}
}

// nearest returns the index of the closest drawn vault point within the
// fallback pick radius of (px, py), or -1. Only consulted after the node
// hit test misses.
func (sf *starfield) nearest(px, py float64) int {
	best := -1
	bestDist := starHitRadius * starHitRadius
	for i := range sf.proj {
		sp := &sf.proj[i]
		if !sp.ok {
			continue
		}
		dx := sp.sx - px
		dy := sp.sy - py
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
