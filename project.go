package galaxy

import "math"

// DefaultFocalLength is the perspective focal length a new Stage starts
// with. Larger values flatten the scene; smaller values exaggerate depth.
const DefaultFocalLength = 1000.0

const (
	// nearPlaneMargin keeps nodes from reaching the exact camera plane,
	// where the perspective divide blows up.
	nearPlaneMargin = 5.0

	// minScale and maxScale clamp the perspective factor. The lower bound
	// keeps far nodes from degenerating to zero-size quads; the upper bound
	// caps icon growth as a node streams past the viewer.
	minScale = 0.01
	maxScale = 20.0
)

// Snapshot freezes one frame's camera parameters plus precomputed rotation
// terms. The stage builds exactly one snapshot per tick and every projection
// in that tick reads it, so a node set can never mix camera states.
type Snapshot struct {
	Offset   Vec3
	Parallax Vec2
	CenterX  float64
	CenterY  float64
	Focal    float64

	sinYaw, cosYaw     float64
	sinPitch, cosPitch float64
	ok                 bool
}

// MakeSnapshot builds a frame snapshot from a camera state. Tilt angles are
// degrees: Tilt.X yaws about the Y axis, Tilt.Y pitches about the X axis.
// A camera state containing non-finite values yields an invalid snapshot:
// Project falls back to the screen center, and the stage additionally checks
// Valid to skip the frame outright.
func MakeSnapshot(cam CameraState, centerX, centerY, focal float64) Snapshot {
	if focal <= 0 {
		focal = DefaultFocalLength
	}
	sn := Snapshot{
		Offset:   cam.Offset,
		Parallax: cam.Parallax,
		CenterX:  centerX,
		CenterY:  centerY,
		Focal:    focal,
	}
	if !cameraStateFinite(cam) || !isFinite(centerX) || !isFinite(centerY) {
		return sn
	}
	yaw := cam.Tilt.X * math.Pi / 180
	pitch := cam.Tilt.Y * math.Pi / 180
	sn.sinYaw, sn.cosYaw = math.Sincos(yaw)
	sn.sinPitch, sn.cosPitch = math.Sincos(pitch)
	sn.ok = true
	return sn
}

// Valid reports whether the snapshot's camera terms are finite. An invalid
// snapshot projects every point to the fallback.
func (sn *Snapshot) Valid() bool {
	return sn.ok
}

// Projected is the result of pushing one world point through a snapshot.
type Projected struct {
	StageX, StageY   float64
	ScreenX, ScreenY float64
	Scale            float64
	FinalZ           float64
	Visible          bool
}

// Project maps a world-space point to stage and screen coordinates.
//
// The point is rotated by yaw then pitch, translated by the camera offset,
// and perspective-divided: scale = focal / (focal - finalZ). Depth grows
// toward the viewer: finalZ at zero sits at unit scale, positive finalZ
// approaches the camera, negative finalZ recedes. Points at or beyond
// focal - nearPlaneMargin are behind the near plane and marked not visible.
//
// An invalid snapshot or a non-finite point produces the safe fallback:
// screen center, unit scale, not visible. One corrupt camera or item must
// never poison a frame.
func (sn *Snapshot) Project(x, y, z float64) Projected {
	if !sn.ok || !isFinite(x) || !isFinite(y) || !isFinite(z) {
		return Projected{ScreenX: sn.CenterX, ScreenY: sn.CenterY, Scale: 1}
	}

	// Yaw about the Y axis.
	x1 := x*sn.cosYaw + z*sn.sinYaw
	z1 := -x*sn.sinYaw + z*sn.cosYaw

	// Pitch about the X axis.
	y2 := y*sn.cosPitch - z1*sn.sinPitch
	z2 := y*sn.sinPitch + z1*sn.cosPitch

	fx := x1 + sn.Offset.X
	fy := y2 + sn.Offset.Y
	fz := z2 + sn.Offset.Z

	denom := sn.Focal - fz
	var scale float64
	if denom <= 0 {
		scale = maxScale
	} else {
		scale = clamp(sn.Focal/denom, minScale, maxScale)
	}

	stageX := fx*scale + sn.Parallax.X
	stageY := fy*scale + sn.Parallax.Y

	return Projected{
		StageX:  stageX,
		StageY:  stageY,
		ScreenX: sn.CenterX + stageX,
		ScreenY: sn.CenterY + stageY,
		Scale:   scale,
		FinalZ:  fz,
		Visible: fz < sn.Focal-nearPlaneMargin,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
