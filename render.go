package galaxy

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// Dot-LOD markers shrink with distance inside hard pixel bounds.
	dotSizeFactor = 0.5
	dotSizeMin    = 1.5
	dotSizeMax    = 8.0

	// Ring offsets from the icon's half-size, in pixels.
	equippedRingGap   = 4.0
	masterworkRingGap = 7.0
	focusRingGap      = 10.0

	exoticGlowFactor = 1.35
	exoticGlowAlpha  = 0.25

	// Watermark chip edge as a fraction of the icon edge.
	watermarkChipFactor = 0.28
)

var (
	masterworkColor    = Color{R: 1.0, G: 0.85, B: 0.3, A: 1}
	focusRingColor     = Color{R: 0.55, G: 0.85, B: 1.0, A: 1}
	exoticGlowColor    = Color{R: 1.0, G: 0.8, B: 0.35, A: 1}
	watermarkBandColor = Color{R: 0.16, G: 0.18, B: 0.24, A: 0.8}
	featuredBandColor  = Color{R: 1.0, G: 0.9, B: 0.55, A: 0.9}
)

// Draw renders the current frame: clear, vault starfield, nodes in painter
// order, then the synergy overlay on top. Draw never mutates simulation
// state beyond its render buffers; a skipped or repeated draw is harmless.
func (s *Stage) Draw(screen *ebiten.Image) {
	if s.disposed {
		return
	}
	t0 := time.Now()

	screen.Fill(s.ClearColor.toRGBA())

	s.drawStars(screen)
	s.drawNodes(screen)
	if s.focus.synAlpha > 0 {
		s.ov.draw(screen, s.focus.synAlpha)
	}

	s.stats.Draw = time.Since(t0)
	if s.debug {
		s.debugLog()
	}
	s.flushScreenshots(screen)
}

// drawStars batches the starfield into its offscreen layer and composites
// the layer onto the screen. Keeping the field on its own surface means a
// dense vault never bleeds through node icons no matter how the batch
// interleaves, and the layer is reused until the stage resizes.
func (s *Stage) drawStars(screen *ebiten.Image) {
	if len(s.star.dots) == 0 {
		return
	}
	layer := s.ensureStarLayer()
	layer.Clear()
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	for i := range s.star.dots {
		d := &s.star.dots[i]
		s.appendQuad(d.x, d.y, d.size, d.size, d.r, d.g, d.b, d.a)
	}
	s.flushQuads(layer)
	screen.DrawImage(layer, nil)
}

// ensureStarLayer returns the starfield's offscreen layer, recreating it
// when the stage size has changed since the last frame.
func (s *Stage) ensureStarLayer() *ebiten.Image {
	if s.starLayer != nil {
		b := s.starLayer.Bounds()
		if b.Dx() == s.width && b.Dy() == s.height {
			return s.starLayer
		}
		s.starLayer.Deallocate()
	}
	s.starLayer = ebiten.NewImage(s.width, s.height)
	return s.starLayer
}

// drawNodes walks the painter order back to front. Contiguous runs of
// dot-LOD nodes batch into a single triangle call; icon nodes flush the
// pending batch first so painter order survives the interleaving.
func (s *Stage) drawNodes(screen *ebiten.Image) {
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	for _, idx := range s.order {
		tr := &s.transforms[idx]
		if tr.LOD == LODDot {
			s.appendNodeDot(tr)
			continue
		}
		s.flushQuads(screen)
		s.drawIconNode(screen, tr)
	}
	s.flushQuads(screen)
}

// appendNodeDot queues a distant node's marker quad in its element color.
func (s *Stage) appendNodeDot(tr *Transform) {
	size := clamp(tr.Node.IconSize*tr.Scale*dotSizeFactor, dotSizeMin, dotSizeMax)
	c := tr.Node.Element.Color()
	a := tr.Opacity
	s.appendQuad(
		float32(tr.ScreenX-size/2), float32(tr.ScreenY-size/2),
		float32(size), float32(size),
		float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a),
	)
}

// drawIconNode draws one icon- or full-LOD node immediately.
func (s *Stage) drawIconNode(screen *ebiten.Image, tr *Transform) {
	n := tr.Node
	size := n.IconSize * tr.Scale
	half := size / 2
	a := tr.Opacity

	if tr.LOD == LODFull && n.Tier == TierExotic {
		glow := size * exoticGlowFactor
		ga := exoticGlowAlpha * a
		s.appendQuad(
			float32(tr.ScreenX-glow/2), float32(tr.ScreenY-glow/2),
			float32(glow), float32(glow),
			float32(exoticGlowColor.R*ga), float32(exoticGlowColor.G*ga), float32(exoticGlowColor.B*ga), float32(ga),
		)
		s.flushQuads(screen)
	}

	if icon := s.icons[n.Icon]; icon != nil {
		b := icon.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(size/float64(b.Dx()), size/float64(b.Dy()))
		op.GeoM.Translate(tr.ScreenX-half, tr.ScreenY-half)
		op.Filter = ebiten.FilterLinear
		fa := float32(a)
		op.ColorScale.Scale(fa, fa, fa, fa)
		screen.DrawImage(icon, &op)
	} else {
		// No registered image: a flat marker in the element color.
		c := n.Element.Color()
		s.appendQuad(
			float32(tr.ScreenX-half), float32(tr.ScreenY-half),
			float32(size), float32(size),
			float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a),
		)
		s.flushQuads(screen)
	}

	if tr.LOD == LODFull {
		if n.Watermark != WatermarkNone {
			s.drawWatermark(screen, tr, size)
		}
		s.drawRings(screen, tr, half)
	}
}

// drawWatermark draws the origin-banner chip over the icon's top-left corner.
func (s *Stage) drawWatermark(screen *ebiten.Image, tr *Transform, size float64) {
	c := watermarkBandColor
	if tr.Node.Watermark == WatermarkFeatured {
		c = featuredBandColor
	}
	a := c.A * tr.Opacity
	chip := size * watermarkChipFactor
	s.appendQuad(
		float32(tr.ScreenX-size/2), float32(tr.ScreenY-size/2),
		float32(chip), float32(chip),
		float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a),
	)
	s.flushQuads(screen)
}

// drawRings draws the status rings around a full-LOD node.
func (s *Stage) drawRings(screen *ebiten.Image, tr *Transform, half float64) {
	x, y := float32(tr.ScreenX), float32(tr.ScreenY)
	a := tr.Opacity
	n := tr.Node

	if n.Equipped {
		vector.StrokeCircle(screen, x, y, float32(half+equippedRingGap), 2, premulRGBA(ColorWhite, 0.85*a), true)
	}
	if n.Masterwork {
		vector.StrokeCircle(screen, x, y, float32(half+masterworkRingGap), 1.5, premulRGBA(masterworkColor, 0.9*a), true)
	}
	if s.focus.lockedKey == n.Key {
		vector.StrokeCircle(screen, x, y, float32(half+focusRingGap), 3, premulRGBA(focusRingColor, a), true)
	}
	if s.focus.synergyActive() && s.focus.synMembers[n.Key] {
		vector.StrokeCircle(screen, x, y, float32(half+focusRingGap), 2, premulRGBA(n.Element.Color(), s.focus.synAlpha*a), true)
	}
}

// appendQuad appends 4 vertices and 6 indices for an axis-aligned quad
// sourced from the shared white pixel. Color components are premultiplied.
func (s *Stage) appendQuad(x, y, w, h, cr, cg, cb, ca float32) {
	base := uint32(len(s.verts))
	s.verts = append(s.verts,
		ebiten.Vertex{DstX: x, DstY: y, SrcX: 0, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x + w, DstY: y, SrcX: 1, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x, DstY: y + h, SrcX: 0, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x + w, DstY: y + h, SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
	)
	s.inds = append(s.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// flushQuads submits accumulated quads as a single DrawTriangles32 call.
func (s *Stage) flushQuads(screen *ebiten.Image) {
	if len(s.verts) == 0 {
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	screen.DrawTriangles32(s.verts, s.inds, WhitePixel, &triOp)
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}
