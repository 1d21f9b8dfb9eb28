package galaxy

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Synergy overlay geometry. Wires run HUD anchor → armor → weapon per link.
const (
	// overlayAnchorY is the fixed screen-space Y of the HUD anchor the wire
	// chains fan out from. X is the screen center.
	overlayAnchorY = 72.0

	wireWidth      = 2.0
	wireHoverWidth = 3.5

	// wireHitDist is the pick distance for wire hover, in pixels.
	wireHitDist = 8.0

	// Alpha applied to non-hovered wires while some wire is hovered.
	wireDimAlpha  = 0.25
	wireBaseAlpha = 0.85
)

// synergyWire is one drawable wire segment. Endpoints are pointers into the
// overlay's backing slice: resolve updates the slice in place each frame and
// every wire sees fresh positions without re-binding.
type synergyWire struct {
	a, b  *Vec2
	color Color
	link  int
	ok    bool
}

// overlay owns the synergy wire set. It is rebuilt when a synergy source
// activates and resolved against fresh transforms every frame; drawing reads
// only resolved state.
type overlay struct {
	endpoints []Vec2 // [0] = anchor, then armor, weapon per link
	wires     []synergyWire
	hoverLink int // -1 when no wire is hovered
}

func newOverlay() overlay {
	return overlay{hoverLink: -1}
}

// rebuild binds wires for the given links. Two segments per link: anchor to
// armor, armor to weapon.
func (ov *overlay) rebuild(links []SynergyLink) {
	ov.endpoints = make([]Vec2, 1+2*len(links))
	ov.wires = make([]synergyWire, 0, 2*len(links))
	ov.hoverLink = -1
	for i := range links {
		c := links[i].Element.Color()
		armor := &ov.endpoints[1+2*i]
		weapon := &ov.endpoints[2+2*i]
		ov.wires = append(ov.wires,
			synergyWire{a: &ov.endpoints[0], b: armor, color: c, link: i},
			synergyWire{a: armor, b: weapon, color: c, link: i},
		)
	}
}

// clear drops all wires.
func (ov *overlay) clear() {
	ov.endpoints = nil
	ov.wires = nil
	ov.hoverLink = -1
}

// endpointPos looks up one endpoint's screen position for the frame.
type endpointPos func(ref ItemRef) (x, y float64, ok bool)

// resolve updates every endpoint from this frame's projections. A link whose
// armor or weapon cannot be located (filtered out, culled, not in layout)
// keeps its wires but marks them not ok; they simply skip drawing this
// frame and come back when the endpoint does.
func (ov *overlay) resolve(links []SynergyLink, centerX float64, pos endpointPos) {
	if len(ov.wires) == 0 {
		return
	}
	ov.endpoints[0] = Vec2{X: centerX, Y: overlayAnchorY}

	for i := range links {
		ax, ay, aok := pos(links[i].Armor)
		wx, wy, wok := pos(links[i].Weapon)
		ov.endpoints[1+2*i] = Vec2{X: ax, Y: ay}
		ov.endpoints[2+2*i] = Vec2{X: wx, Y: wy}

		// Wire 2i runs anchor→armor, wire 2i+1 runs armor→weapon.
		ov.wires[2*i].ok = aok
		ov.wires[2*i+1].ok = aok && wok
	}
}

// hitTest returns the link index of the wire under (px, py), or -1.
func (ov *overlay) hitTest(px, py float64) int {
	best := -1
	bestDist := wireHitDist
	for i := range ov.wires {
		w := &ov.wires[i]
		if !w.ok {
			continue
		}
		d := pointSegmentDist(px, py, w.a.X, w.a.Y, w.b.X, w.b.Y)
		if d < bestDist {
			bestDist = d
			best = w.link
		}
	}
	return best
}

// draw strokes all resolved wires at the overlay alpha. Hovering one link
// brightens it and dims the rest.
func (ov *overlay) draw(dst *ebiten.Image, alpha float64) {
	if alpha <= 0 {
		return
	}
	for i := range ov.wires {
		w := &ov.wires[i]
		if !w.ok {
			continue
		}
		a := alpha * wireBaseAlpha
		width := float32(wireWidth)
		if ov.hoverLink >= 0 {
			if w.link == ov.hoverLink {
				a = alpha
				width = wireHoverWidth
			} else {
				a = alpha * wireDimAlpha
			}
		}
		vector.StrokeLine(dst,
			float32(w.a.X), float32(w.a.Y),
			float32(w.b.X), float32(w.b.Y),
			width, premulRGBA(w.color, a), true)
	}
}

// premulRGBA converts a Color at the given opacity to premultiplied 8-bit
// RGBA, the form the vector strokes and rings expect.
func premulRGBA(c Color, alpha float64) color.RGBA {
	a := clamp01(alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R*a) * 255),
		G: uint8(clamp01(c.G*a) * 255),
		B: uint8(clamp01(c.B*a) * 255),
		A: uint8(a * 255),
	}
}

// pointSegmentDist returns the distance from point p to segment ab.
func pointSegmentDist(px, py, ax, ay, bx, by float64) float64 {
	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = clamp01(((px-ax)*dx + (py-ay)*dy) / lenSq)
	}
	cx := ax + t*dx
	cy := ay + t*dy
	return math.Hypot(px-cx, py-cy)
}
