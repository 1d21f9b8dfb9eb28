package galaxy

// WorldNode is one interactive item placed in the 3D field. A single flat
// struct is used for all item kinds to avoid interface dispatch on the hot
// path: every node is projected, culled and possibly hit-tested each frame.
//
// Nodes are immutable between layout rebuilds. The stage never writes to a
// node after BuildLayout returns; all per-frame state lives in the parallel
// Transform records.
type WorldNode struct {
	Ref  ItemRef
	Key  string // precomputed Ref.Key(), hot-path identity
	Kind Kind
	Slot SlotType

	// World-space position assigned by the layout builder.
	X, Y, Z float64

	Equipped   bool
	Tier       Tier
	Element    Element
	Power      int
	Masterwork bool
	Crafted    bool
	Enhanced   bool
	Watermark  Watermark

	// LODHint floors the level of detail culling derives from projected
	// scale, so important nodes never collapse into anonymous dots.
	LODHint LOD

	// Resolved definition data.
	Name string
	Icon string

	// IconSize is the untransformed icon edge length in pixels. The projected
	// scale multiplies this at draw and hit-test time.
	IconSize float64
}

// SynergyEligible reports whether the node can act as a synergy overlay
// source. Subclasses and exotic items carry synergy data; everything else
// does not.
func (n *WorldNode) SynergyEligible() bool {
	return n.Kind == KindSubclass || n.Tier == TierExotic
}

// Transform is the per-frame projection record for one node. The stage
// rewrites the full set every tick before any consumer runs; the renderer
// and hit-tester only ever read committed records, so a half-updated frame
// is never observable.
type Transform struct {
	Node *WorldNode

	// Stage-space position: projected coordinates relative to screen center,
	// parallax applied.
	StageX, StageY float64

	// Screen-space position: stage position plus screen center.
	ScreenX, ScreenY float64

	// Scale is the perspective factor applied to IconSize, clamped to
	// [minScale, maxScale].
	Scale float64

	// FinalZ is the camera-space depth after rotation and offset. Painter
	// order sorts on it ascending (most negative, deepest, drawn first).
	FinalZ float64

	// Opacity in [0, 1] after culling fades. Zero means skip drawing.
	Opacity float64

	// ZOrder is the node's rank in this frame's painter order. Valid only
	// when Visible.
	ZOrder int

	Visible bool
	LOD     LOD
}
