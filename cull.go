package galaxy

// Depth windows: how far behind the focal plane a node may sit before it is
// culled. Reduced mode tightens both for weak GPUs. Vault points get a wider
// window than nodes so the starfield keeps its sense of depth after nodes
// have dropped out.
const (
	depthWindowFull    = 26000.0
	depthWindowReduced = 9000.0
	vaultWindowFull    = 34000.0
	vaultWindowReduced = 14000.0

	// passByBand is the depth over which a node fades out as it streams past
	// the near plane, instead of popping.
	passByBand = 150.0

	// deepFadeFrac is the trailing fraction of the depth window over which a
	// node fades toward the cull boundary.
	deepFadeFrac = 0.2

	// filterDimOpacity is the residual opacity of nodes excluded by an
	// active filter.
	filterDimOpacity = 0.12

	// isolationVaultAlpha is the residual vault point alpha while synergy
	// isolation is active. Non-member nodes hide outright; vault points dim
	// so the void keeps its texture.
	isolationVaultAlpha = 0.05

	// LOD scale thresholds. Reduced mode raises the full-detail bar so fewer
	// nodes draw decorations.
	lodFullScale        = 0.6
	lodFullScaleReduced = 0.9
	lodIconScale        = 0.18
)

// culler holds one frame's culling parameters, derived from stage state
// before the node pass runs. It writes visibility, opacity and LOD into
// Transform records in place.
type culler struct {
	nearLimit   float64 // focal - nearPlaneMargin
	window      float64
	vaultWindow float64
	lodFullAt   float64

	filter *filterSet

	focusedKey string
	isolating  bool
	members    map[string]bool // synergy members; nil when overlay inactive
}

func makeCuller(perf PerfMode, focal float64, filter *filterSet, focusedKey string, isolating bool, members map[string]bool) culler {
	c := culler{
		nearLimit:   focal - nearPlaneMargin,
		window:      depthWindowFull,
		vaultWindow: vaultWindowFull,
		lodFullAt:   lodFullScale,
		filter:      filter,
		focusedKey:  focusedKey,
		isolating:   isolating,
		members:     members,
	}
	if perf == PerfReduced {
		c.window = depthWindowReduced
		c.vaultWindow = vaultWindowReduced
		c.lodFullAt = lodFullScaleReduced
	}
	return c
}

// apply resolves one node's visibility for the frame. i is the node's layout
// index (for filter lookup); the projection fields of tr must already be
// filled in.
func (c *culler) apply(i int, tr *Transform) {
	n := tr.Node

	if !tr.Visible {
		tr.Opacity = 0
		return
	}

	// Isolation hides every non-member node outright. The focused node is
	// exempt: a lock taken mid-synergy must not hide its own subject.
	if c.isolating && !c.members[n.Key] && n.Key != c.focusedKey {
		tr.Visible = false
		tr.Opacity = 0
		return
	}

	// Depth window. Equipped gear, synergy members and the focused node
	// bypass it: those must never silently vanish.
	if tr.FinalZ < -c.window && !c.bypassesWindow(n) {
		tr.Visible = false
		tr.Opacity = 0
		return
	}

	o := 1.0

	// Filter dim. Synergy members are exempt: overlay membership keeps a
	// node eligible on its own, whatever a live search says.
	if c.filter != nil && c.filter.active && i < len(c.filter.match) &&
		!c.filter.match[i] && !c.member(n) {
		o = filterDimOpacity
	}

	// Pass-by fade: approaching the near plane.
	if tr.FinalZ > c.nearLimit-passByBand {
		o *= clamp01((c.nearLimit - tr.FinalZ) / passByBand)
	}

	// Deep fade: trailing edge of the depth window. Window bypassers are
	// exempt, otherwise the fade would re-hide what the bypass kept.
	if !c.bypassesWindow(n) {
		fadeStart := c.window * (1 - deepFadeFrac)
		if -tr.FinalZ > fadeStart {
			o *= clamp01(1 - (-tr.FinalZ-fadeStart)/(c.window*deepFadeFrac))
		}
	}

	// The focused node always renders fully opaque, whatever the fades say.
	if c.focusedKey != "" && n.Key == c.focusedKey {
		o = 1
	}

	tr.Opacity = o
	if o <= 0 {
		tr.Visible = false
	}
	tr.LOD = c.lod(tr.Scale)
	if tr.LOD < n.LODHint {
		tr.LOD = n.LODHint
	}
}

func (c *culler) bypassesWindow(n *WorldNode) bool {
	if n.Equipped {
		return true
	}
	if c.focusedKey != "" && n.Key == c.focusedKey {
		return true
	}
	return c.member(n)
}

func (c *culler) member(n *WorldNode) bool {
	return c.members[n.Key]
}

func (c *culler) lod(scale float64) LOD {
	switch {
	case scale >= c.lodFullAt:
		return LODFull
	case scale >= lodIconScale:
		return LODIcon
	default:
		return LODDot
	}
}

// vaultAlpha resolves a vault point's draw alpha for the frame, or 0 to skip
// it. Points follow the same near-plane and window rules as nodes but use
// the wider vault window; synergy isolation dims non-endpoint points to a
// residue instead of hiding them.
func (c *culler) vaultAlpha(p *VaultPoint, pr *Projected) float64 {
	if !pr.Visible {
		return 0
	}
	if pr.FinalZ < -c.vaultWindow {
		return 0
	}

	a := p.Color.A

	if pr.FinalZ > c.nearLimit-passByBand {
		a *= clamp01((c.nearLimit - pr.FinalZ) / passByBand)
	}

	fadeStart := c.vaultWindow * (1 - deepFadeFrac)
	if -pr.FinalZ > fadeStart {
		a *= clamp01(1 - (-pr.FinalZ-fadeStart)/(c.vaultWindow*deepFadeFrac))
	}

	if c.isolating && !c.members[p.Key] {
		if a > isolationVaultAlpha {
			a = isolationVaultAlpha
		}
	}

	return a
}
