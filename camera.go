package galaxy

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CameraState is the full set of camera parameters consumed by projection.
// Offset translates camera space after rotation, Tilt holds yaw/pitch in
// degrees, Parallax is a small screen-space shift applied after the
// perspective divide.
type CameraState struct {
	Offset   Vec3
	Tilt     Vec2
	Parallax Vec2
}

// DefaultOrbitOffset is the resting camera offset: pulled back just far
// enough that the equipped columns frame the screen.
var DefaultOrbitOffset = Vec3{X: 0, Y: 0, Z: -200}

const (
	// Per-tick smoothing factors at the 60 TPS cadence. Position and tilt
	// chase their targets a little faster than parallax so cursor peeking
	// stays floaty while panning feels direct.
	positionLerp = 0.12
	tiltLerp     = 0.12
	parallaxLerp = 0.10

	// maxZoomOut is the offset-Z floor. Zooming in has no ceiling; items
	// simply stream past the near plane and cull away.
	maxZoomOut = -50000.0

	// pitchLimit keeps the pitch from flipping over the pole.
	pitchLimit = 85.0
)

func defaultCameraState() CameraState {
	return CameraState{Offset: DefaultOrbitOffset}
}

// cameraTransition animates the full camera state from a start snapshot to a
// target over a fixed duration. Only the progress value is tweened; the
// states themselves are interpolated, which keeps a retarget mid-flight
// (last-wins) trivially correct.
type cameraTransition struct {
	active bool
	from   CameraState
	to     CameraState
	tween  *gween.Tween
}

// CameraRig owns the current and target camera states. Input writes targets;
// advance moves current toward target each tick, either by smoothing or by
// an active transition. Everything downstream of the rig reads only the
// current state through the frame snapshot.
type CameraRig struct {
	current CameraState
	target  CameraState
	trans   cameraTransition

	lastOffset Vec3
	speed      float64
	resets     int
}

// NewCameraRig returns a rig at the default orbit state.
func NewCameraRig() *CameraRig {
	st := defaultCameraState()
	return &CameraRig{
		current:    st,
		target:     st,
		lastOffset: st.Offset,
	}
}

// Current returns the camera state projection reads this frame.
func (r *CameraRig) Current() CameraState {
	return r.current
}

// Target returns the state the rig is converging toward.
func (r *CameraRig) Target() CameraState {
	return r.target
}

// Speed returns the camera's offset movement in world units during the last
// advance. Tooltip hysteresis uses it to suppress tooltips mid-flight.
func (r *CameraRig) Speed() float64 {
	return r.speed
}

// Transitioning reports whether a timed transition is in flight.
func (r *CameraRig) Transitioning() bool {
	return r.trans.active
}

// Resets returns how many times the corruption guard has fired.
func (r *CameraRig) Resets() int {
	return r.resets
}

// Nudge pans the target offset. Edge panning and keyboard panning route
// through here; the change is absorbed by smoothing, never applied directly
// to the current state.
func (r *CameraRig) Nudge(dx, dy float64) {
	if !isFinite(dx) || !isFinite(dy) {
		return
	}
	r.target.Offset.X += dx
	r.target.Offset.Y += dy
}

// Zoom moves the target offset along Z. Negative deltas pull back, positive
// push in. The pull-back floor is maxZoomOut.
func (r *CameraRig) Zoom(delta float64) {
	if !isFinite(delta) {
		return
	}
	z := r.target.Offset.Z + delta
	if z < maxZoomOut {
		z = maxZoomOut
	}
	r.target.Offset.Z = z
}

// Rotate adjusts the target yaw and pitch in degrees. Yaw is unbounded;
// pitch clamps at ±pitchLimit.
func (r *CameraRig) Rotate(dyaw, dpitch float64) {
	if !isFinite(dyaw) || !isFinite(dpitch) {
		return
	}
	r.target.Tilt.X += dyaw
	r.target.Tilt.Y = clamp(r.target.Tilt.Y+dpitch, -pitchLimit, pitchLimit)
}

// SetParallax sets the target parallax shift, typically derived from the
// cursor's distance to screen center.
func (r *CameraRig) SetParallax(px, py float64) {
	if !isFinite(px) || !isFinite(py) {
		return
	}
	r.target.Parallax.X = px
	r.target.Parallax.Y = py
}

// StartTransition begins a timed flight of the offset to (x, y, z) with
// ease-out cubic progress, keeping the current target tilt and parallax.
// Returns false (and starts nothing) for non-finite coordinates or a
// non-positive duration. A transition started while another is in flight
// replaces it: the new one starts from wherever the camera currently is.
func (r *CameraRig) StartTransition(x, y, z float64, d time.Duration) bool {
	if !isFinite(x) || !isFinite(y) || !isFinite(z) || d <= 0 {
		return false
	}
	if z < maxZoomOut {
		z = maxZoomOut
	}
	to := r.target
	to.Offset = Vec3{X: x, Y: y, Z: z}
	r.startTransitionTo(to, d)
	return true
}

// startTransitionTo begins a timed flight of the full camera state. Focus
// locking and view reset use this to straighten tilt and parallax along with
// the offset.
func (r *CameraRig) startTransitionTo(to CameraState, d time.Duration) {
	r.trans = cameraTransition{
		active: true,
		from:   r.current,
		to:     to,
		tween:  gween.New(0, 1, float32(d.Seconds()), ease.OutCubic),
	}
	r.target = to
}

// Reset flies the camera back to the default orbit state.
func (r *CameraRig) Reset(d time.Duration) {
	r.startTransitionTo(defaultCameraState(), d)
}

// advance moves the current state one tick toward the target. Called once
// per Stage.Update with the tick duration in seconds.
func (r *CameraRig) advance(dt float32) {
	if !cameraStateFinite(r.current) || !cameraStateFinite(r.target) {
		r.recover()
		return
	}

	if r.trans.active {
		v, done := r.trans.tween.Update(dt)
		t := float64(v)
		r.current = lerpCameraState(r.trans.from, r.trans.to, t)
		if done {
			// Snap exactly onto the target so later equality checks and
			// focus-lock completion don't chase float dust.
			r.current = r.trans.to
			r.target = r.trans.to
			r.trans = cameraTransition{}
		}
	} else {
		r.current.Offset.X += (r.target.Offset.X - r.current.Offset.X) * positionLerp
		r.current.Offset.Y += (r.target.Offset.Y - r.current.Offset.Y) * positionLerp
		r.current.Offset.Z += (r.target.Offset.Z - r.current.Offset.Z) * positionLerp
		r.current.Tilt.X += (r.target.Tilt.X - r.current.Tilt.X) * tiltLerp
		r.current.Tilt.Y += (r.target.Tilt.Y - r.current.Tilt.Y) * tiltLerp
		r.current.Parallax.X += (r.target.Parallax.X - r.current.Parallax.X) * parallaxLerp
		r.current.Parallax.Y += (r.target.Parallax.Y - r.current.Parallax.Y) * parallaxLerp
	}

	if !cameraStateFinite(r.current) {
		r.recover()
		return
	}

	dx := r.current.Offset.X - r.lastOffset.X
	dy := r.current.Offset.Y - r.lastOffset.Y
	dz := r.current.Offset.Z - r.lastOffset.Z
	r.speed = math.Sqrt(dx*dx + dy*dy + dz*dz)
	r.lastOffset = r.current.Offset
}

// recover hard-resets both states to the default orbit. The guard fires when
// non-finite values are detected anywhere in the camera state; logged even
// outside debug mode because it indicates corrupted input upstream.
func (r *CameraRig) recover() {
	st := defaultCameraState()
	r.current = st
	r.target = st
	r.trans = cameraTransition{}
	r.lastOffset = st.Offset
	r.speed = 0
	r.resets++
	logCameraReset()
}

func lerpCameraState(a, b CameraState, t float64) CameraState {
	return CameraState{
		Offset: Vec3{
			X: lerp(a.Offset.X, b.Offset.X, t),
			Y: lerp(a.Offset.Y, b.Offset.Y, t),
			Z: lerp(a.Offset.Z, b.Offset.Z, t),
		},
		Tilt: Vec2{
			X: lerp(a.Tilt.X, b.Tilt.X, t),
			Y: lerp(a.Tilt.Y, b.Tilt.Y, t),
		},
		Parallax: Vec2{
			X: lerp(a.Parallax.X, b.Parallax.X, t),
			Y: lerp(a.Parallax.Y, b.Parallax.Y, t),
		},
	}
}

func cameraStateFinite(s CameraState) bool {
	return isFinite(s.Offset.X) && isFinite(s.Offset.Y) && isFinite(s.Offset.Z) &&
		isFinite(s.Tilt.X) && isFinite(s.Tilt.Y) &&
		isFinite(s.Parallax.X) && isFinite(s.Parallax.Y)
}
