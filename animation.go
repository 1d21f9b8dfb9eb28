package galaxy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenFloat or TweenVec2 and call Update(dt) each frame until Done. The
// stage uses groups for cosmetic fades (vault toggle); camera flights and
// the synergy overlay run their own tweens.
//
// There is no global animation manager — owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenFloat creates a TweenGroup that animates one field to the given value
// over the specified duration using the easing function.
func TweenFloat(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// TweenVec2 creates a TweenGroup that animates both components of a Vec2 to
// the given values over the specified duration using the easing function.
func TweenVec2(v *Vec2, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(v.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(v.Y), float32(toY), duration, fn)
	g.fields[0] = &v.X
	g.fields[1] = &v.Y
	return g
}
