package galaxy

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

// --- TweenGroup ---

func TestTweenFloat(t *testing.T) {
	v := 0.0
	g := TweenFloat(&v, 10, 1.0, ease.Linear)

	g.Update(0.5)
	if math.Abs(v-5) > 1e-5 {
		t.Errorf("midpoint = %v, want 5", v)
	}
	if g.Done {
		t.Error("group done at the midpoint")
	}

	g.Update(0.5)
	if v != 10 {
		t.Errorf("end = %v, want exactly 10", v)
	}
	if !g.Done {
		t.Error("group should be done")
	}
}

func TestTweenFloatOvershootClamps(t *testing.T) {
	v := 3.0
	g := TweenFloat(&v, -7, 0.25, ease.OutCubic)
	g.Update(5)
	if v != -7 || !g.Done {
		t.Errorf("v = %v, Done = %v; overshoot should land on the target", v, g.Done)
	}
}

func TestTweenVec2(t *testing.T) {
	v := Vec2{X: 1, Y: -1}
	g := TweenVec2(&v, 3, -7, 0.5, ease.Linear)

	g.Update(0.25)
	if math.Abs(v.X-2) > 1e-5 || math.Abs(v.Y-(-4)) > 1e-5 {
		t.Errorf("midpoint = %+v, want (2, -4)", v)
	}

	g.Update(0.25)
	if v.X != 3 || v.Y != -7 {
		t.Errorf("end = %+v, want (3, -7)", v)
	}
	if !g.Done {
		t.Error("group should be done")
	}
}

func TestTweenGroupDoneIsIdempotent(t *testing.T) {
	v := 0.0
	g := TweenFloat(&v, 4, 0.1, ease.Linear)
	g.Update(1)

	// Updates after completion leave the field alone.
	v = 99
	g.Update(1)
	if v != 99 {
		t.Errorf("finished group rewrote its field: %v", v)
	}
}
