package galaxy

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	// defaultDragDeadZone is the movement in pixels before a press turns
	// into a drag instead of a click.
	defaultDragDeadZone = 5.0

	// Node hit radii scale with the projected icon but stay within hard
	// bounds: distant items keep a usable floor, close items don't blanket
	// the screen. The node owning a visible tooltip gets a sticky bonus so
	// the tooltip doesn't drop from pixel jitter at the radius edge.
	hitRadiusFactor = 0.55
	hitRadiusMin    = 30.0
	hitRadiusMax    = 120.0
	hitTooltipBonus = 1.3
	hitDepthBias    = 0.25

	// Camera bindings.
	dragRotateSpeed      = 0.22 // degrees per pixel
	dragPanSpeed         = 1.4  // world units per pixel
	wheelZoomStep        = 140.0
	edgePanMargin        = 28.0
	edgePanSpeed         = 9.0
	keyRotateSpeed       = 1.2
	keyPanSpeed          = 14.0
	cursorParallaxFactor = 0.03

	// Idle orbit drift: after idleDriftDelayTicks without any input the
	// field starts a slow turntable yaw, idleDriftStep degrees per tick.
	idleDriftDelayTicks = 300
	idleDriftStep       = 0.02
)

// --- Pointer samples ---

// pointerSample is one observed pointer state. Samples queue at the start of
// the tick and resolve after projection, so hit tests always run against the
// transforms of the frame being shown, never the previous one.
type pointerSample struct {
	x, y    float64
	pressed bool
	button  MouseButton
	mods    KeyModifiers
}

// pointerState is the press/drag machine for the (single) pointer.
type pointerState struct {
	down     bool
	dragging bool
	button   MouseButton

	startX, startY float64
	lastX, lastY   float64

	pressHit hitResult
	pressKey string

	hover    hitResult
	hoverKey string
}

// --- Hit testing ---

type hitKind uint8

const (
	hitNone hitKind = iota
	hitNode
	hitVault
)

// hitResult identifies what the pointer is over: a node (index into this
// frame's transforms), a vault point (index into the layout's vault slice),
// or nothing.
type hitResult struct {
	kind  hitKind
	index int
}

// hitKey returns the stable item key for a hit, or "".
func (s *Stage) hitKey(h hitResult) string {
	switch h.kind {
	case hitNode:
		return s.transforms[h.index].Node.Key
	case hitVault:
		return s.layout.Vault[h.index].Key
	}
	return ""
}

// hitTest resolves the item under a screen position.
//
// Precedence: an external renderer's hover claim wins outright; then nodes
// by scored radius; then the vault starfield fallback. Node scoring is
// distance minus a depth bias, so when two nodes overlap the nearer one
// wins even if the pointer sits slightly closer to the deeper one's center.
func (s *Stage) hitTest(px, py float64) hitResult {
	if s.rendererHover != "" {
		if i := s.layout.NodeIndex(s.rendererHover); i >= 0 && s.projected && s.transforms[i].Visible {
			return hitResult{kind: hitNode, index: i}
		}
	}

	best := -1
	bestScore := math.Inf(1)
	for i := range s.transforms {
		tr := &s.transforms[i]
		if !tr.Visible || tr.Opacity <= 0.05 {
			continue
		}
		radius := clamp(tr.Node.IconSize*tr.Scale*hitRadiusFactor, hitRadiusMin, hitRadiusMax)
		if tr.Node.Key == s.tip.shownKey {
			radius *= hitTooltipBonus
		}
		dx := px - tr.ScreenX
		dy := py - tr.ScreenY
		if dx*dx+dy*dy > radius*radius {
			continue
		}
		score := math.Sqrt(dx*dx+dy*dy) - hitDepthBias*tr.FinalZ
		if score < bestScore {
			bestScore = score
			best = i
		}
	}
	if best >= 0 {
		return hitResult{kind: hitNode, index: best}
	}

	if i := s.star.nearest(px, py); i >= 0 {
		return hitResult{kind: hitVault, index: i}
	}
	return hitResult{}
}

// hitInfo expands a hit into event identity fields.
func (s *Stage) hitInfo(h hitResult) (ref ItemRef, kind Kind, vault bool, wx, wy, wz float64) {
	switch h.kind {
	case hitNode:
		n := s.transforms[h.index].Node
		return n.Ref, n.Kind, false, n.X, n.Y, n.Z
	case hitVault:
		p := &s.layout.Vault[h.index]
		return p.Ref, 0, true, p.X, p.Y, p.Z
	}
	return ItemRef{}, 0, false, 0, 0, 0
}

// --- Handler registry ---

// HoverContext describes the pointer entering or leaving an item.
type HoverContext struct {
	Ref       ItemRef
	Kind      Kind
	Vault     bool
	ScreenX   float64
	ScreenY   float64
	WorldX    float64
	WorldY    float64
	WorldZ    float64
	Modifiers KeyModifiers
}

// ClickContext describes a completed click. Ref is the zero ItemRef for a
// click over empty space.
type ClickContext struct {
	Ref       ItemRef
	Kind      Kind
	Vault     bool
	ScreenX   float64
	ScreenY   float64
	WorldX    float64
	WorldY    float64
	WorldZ    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// DragContext describes a drag in progress or ending. Ref identifies the
// item under the press that started the drag, if any.
type DragContext struct {
	Ref       ItemRef
	Kind      Kind
	Vault     bool
	ScreenX   float64
	ScreenY   float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

type hoverHandler struct {
	id uint32
	fn func(HoverContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type handlerRegistry struct {
	hoverEnter []hoverHandler
	hoverLeave []hoverHandler
	click      []clickHandler
	secondary  []clickHandler
	dragStart  []dragHandler
	drag       []dragHandler
	dragEnd    []dragHandler
	nextID     uint32
}

// CallbackHandle allows removing a registered stage-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventHoverEnter:
		h.reg.hoverEnter = removeHoverHandler(h.reg.hoverEnter, h.id)
	case EventHoverLeave:
		h.reg.hoverLeave = removeHoverHandler(h.reg.hoverLeave, h.id)
	case EventClick:
		h.reg.click = removeClickHandler(h.reg.click, h.id)
	case EventSecondary:
		h.reg.secondary = removeClickHandler(h.reg.secondary, h.id)
	case EventDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeDragHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	}
}

func removeHoverHandler(s []hoverHandler, id uint32) []hoverHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = hoverHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = dragHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Stage-level event registration ---

// OnHoverEnter registers a callback for the pointer moving onto an item.
func (s *Stage) OnHoverEnter(fn func(HoverContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.hoverEnter = append(s.handlers.hoverEnter, hoverHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventHoverEnter}
}

// OnHoverLeave registers a callback for the pointer moving off an item.
func (s *Stage) OnHoverLeave(fn func(HoverContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.hoverLeave = append(s.handlers.hoverLeave, hoverHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventHoverLeave}
}

// OnClick registers a callback for primary and middle-button clicks.
func (s *Stage) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// OnSecondary registers a callback for right-button clicks.
func (s *Stage) OnSecondary(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.secondary = append(s.handlers.secondary, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventSecondary}
}

// OnDragStart registers a callback for drag start events.
func (s *Stage) OnDragStart(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.dragStart = append(s.handlers.dragStart, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragStart}
}

// OnDrag registers a callback for drag move events.
func (s *Stage) OnDrag(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.drag = append(s.handlers.drag, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDrag}
}

// OnDragEnd registers a callback for drag end events.
func (s *Stage) OnDragEnd(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.dragEnd = append(s.handlers.dragEnd, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragEnd}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Stage) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// SetDefaultBindings enables or disables the built-in interaction bindings
// (click to focus, right-click for synergy, drag to orbit, wheel to zoom).
// Hosts that want full control over interaction disable them and drive the
// stage through its public methods from their own handlers.
func (s *Stage) SetDefaultBindings(enabled bool) {
	s.bindings = enabled
}

// --- Input collection ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// collectInput queues this tick's pointer sample and applies the continuous
// camera bindings. Synthetic events take precedence: while the inject queue
// holds events, one is consumed per tick and the real pointer is ignored,
// exactly as scripted runs expect.
func (s *Stage) collectInput() {
	if len(s.injectQueue) > 0 {
		ev := s.injectQueue[0]
		copy(s.injectQueue, s.injectQueue[1:])
		s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
		s.samples = append(s.samples, ev)
		return
	}

	if !ebiten.IsFocused() {
		// An unfocused window swallows release events. Drop any held press
		// now so a drag can't wake up mid-air when focus comes back.
		s.clearHeldInput()
		return
	}

	mods := readModifiers()
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}
	s.samples = append(s.samples, pointerSample{x: x, y: y, pressed: pressed, button: button, mods: mods})
	moved := x != s.pointer.lastX || y != s.pointer.lastY

	if !s.bindings {
		return
	}

	// A lock, or the flight toward one, owns the camera: steering goes
	// quiet until the view is reset. Hover, clicks, Home and Escape stay
	// live, and the cursor parallax keeps its lean.
	steer := s.focus.mode == FocusOrbit
	_, wheelY := ebiten.Wheel()
	if steer && wheelY != 0 {
		s.rig.Zoom(wheelY * wheelZoomStep)
	}

	keys := s.readKeys(steer)
	if steer {
		s.edgePan(x, y)
	}
	s.idleDrift(pressed || moved || wheelY != 0 || keys)

	// Cursor parallax: peek opposite the cursor so the field leans away,
	// reinforcing depth without moving the camera.
	cx, cy := float64(s.width)/2, float64(s.height)/2
	s.rig.SetParallax(-(x-cx)*cursorParallaxFactor, -(y-cy)*cursorParallaxFactor)
}

// clearHeldInput releases the pointer press machine without firing click or
// drag handlers, and straightens the parallax lean. Used when the window
// loses focus mid-interaction.
func (s *Stage) clearHeldInput() {
	s.pointer.down = false
	s.pointer.dragging = false
	s.pointer.pressHit = hitResult{}
	s.pointer.pressKey = ""
	s.rig.SetParallax(0, 0)
	s.idleTicks = 0
}

// idleDrift creeps the orbit yaw after a quiet stretch, a slow turntable
// that keeps the field alive while nobody is steering. Any activity resets
// the counter; locks and flights suppress the creep outright.
func (s *Stage) idleDrift(active bool) {
	if active {
		s.idleTicks = 0
		return
	}
	s.idleTicks++
	if s.idleTicks > idleDriftDelayTicks && s.focus.mode == FocusOrbit {
		s.rig.Rotate(idleDriftStep, 0)
	}
}

// readKeys applies the keyboard camera bindings and reports whether any
// bound key fired this tick. Steering keys are live only while the orbit
// view owns the camera; Home and Escape always work since they are the way
// back out of a lock.
func (s *Stage) readKeys(steer bool) bool {
	active := false
	if steer {
		if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
			s.rig.Rotate(-keyRotateSpeed, 0)
			active = true
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
			s.rig.Rotate(keyRotateSpeed, 0)
			active = true
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
			s.rig.Rotate(0, -keyRotateSpeed)
			active = true
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
			s.rig.Rotate(0, keyRotateSpeed)
			active = true
		}
		if ebiten.IsKeyPressed(ebiten.KeyA) {
			s.rig.Nudge(keyPanSpeed, 0)
			active = true
		}
		if ebiten.IsKeyPressed(ebiten.KeyD) {
			s.rig.Nudge(-keyPanSpeed, 0)
			active = true
		}
		if ebiten.IsKeyPressed(ebiten.KeyW) {
			s.rig.Nudge(0, keyPanSpeed)
			active = true
		}
		if ebiten.IsKeyPressed(ebiten.KeyS) {
			s.rig.Nudge(0, -keyPanSpeed)
			active = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		s.ResetView()
		active = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		switch {
		case s.focus.synergyActive():
			s.ExitSynergy()
		case s.focus.mode == FocusLocked:
			s.ResetView()
		}
		active = true
	}
	return active
}

// edgePan nudges the camera while the cursor rests near a screen edge.
// Suppressed during a press so drags near the border stay precise.
func (s *Stage) edgePan(x, y float64) {
	if s.pointer.down {
		return
	}
	w, h := float64(s.width), float64(s.height)
	if x < 0 || y < 0 || x > w || y > h {
		return
	}
	switch {
	case x < edgePanMargin:
		s.rig.Nudge(edgePanSpeed, 0)
	case x > w-edgePanMargin:
		s.rig.Nudge(-edgePanSpeed, 0)
	}
	switch {
	case y < edgePanMargin:
		s.rig.Nudge(0, edgePanSpeed)
	case y > h-edgePanMargin:
		s.rig.Nudge(0, -edgePanSpeed)
	}
}

// resolvePointer runs every queued sample through the pointer state machine
// against this frame's transforms, then refreshes the synergy wire hover.
func (s *Stage) resolvePointer(now time.Time) {
	for i := range s.samples {
		sm := &s.samples[i]
		s.processPointer(sm.x, sm.y, sm.pressed, sm.button, sm.mods, now)
	}
	s.samples = s.samples[:0]

	switch {
	case !s.focus.synergyActive() || s.focus.synExiting:
		s.ov.hoverLink = -1
	case s.wireHoverClaim >= 0:
		// A renderer's wire claim wins over the geometric test, mirroring
		// SetRendererHover for nodes.
		s.ov.hoverLink = s.wireHoverClaim
	case s.pointer.hoverKey == "":
		s.ov.hoverLink = s.ov.hitTest(s.pointer.lastX, s.pointer.lastY)
	default:
		s.ov.hoverLink = -1
	}
}

// processPointer runs the pointer state machine for one sample.
func (s *Stage) processPointer(x, y float64, pressed bool, button MouseButton, mods KeyModifiers, now time.Time) {
	ps := &s.pointer

	target := s.hitTest(x, y)
	targetKey := s.hitKey(target)

	// Hover enter/leave when the hovered item changes.
	if targetKey != ps.hoverKey {
		if ps.hoverKey != "" {
			s.fireHoverLeave(ps.hover, x, y, mods)
			s.tip.leave(now)
		}
		if targetKey != "" {
			s.fireHoverEnter(target, x, y, mods)
			s.tip.hover(targetKey, s.hoverShowDelay(target), now)
		}
		ps.hover = target
		ps.hoverKey = targetKey
	}

	if pressed && !ps.down {
		// Just pressed. The button is captured for the whole interaction.
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.pressHit = target
		ps.pressKey = targetKey
		ps.dragging = false
	} else if !pressed && ps.down {
		// Just released.
		if ps.dragging {
			s.fireDragEnd(ps.pressHit, x, y, ps.startX, ps.startY, x-ps.lastX, y-ps.lastY, ps.button, mods)
		} else if ps.pressKey == targetKey {
			// Click resolves on the release target; empty-space clicks are
			// meaningful (they release a focus lock).
			s.fireClick(target, x, y, ps.button, mods)
		}
		ps.down = false
		ps.dragging = false
		ps.pressHit = hitResult{}
		ps.pressKey = ""
		ps.lastX, ps.lastY = x, y
	} else if pressed && ps.down {
		// Held, possibly moving.
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging {
				dx, dy := x-ps.startX, y-ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDragStart(ps.pressHit, x, y, ps.startX, ps.startY, dx, dy, ps.button, mods)
				}
			}
			if ps.dragging {
				s.fireDrag(ps.pressHit, x, y, ps.startX, ps.startY, x-ps.lastX, y-ps.lastY, ps.button, mods)
			}
			ps.lastX, ps.lastY = x, y
		}
	} else {
		ps.lastX, ps.lastY = x, y
	}
}

// hoverShowDelay picks the tooltip show delay for a hit.
func (s *Stage) hoverShowDelay(h hitResult) time.Duration {
	if h.kind == hitNode {
		return tooltipShowDelay(s.transforms[h.index].Node)
	}
	return tooltipShowDefault
}

// --- Event dispatch ---

func (s *Stage) fireHoverEnter(h hitResult, x, y float64, mods KeyModifiers) {
	ref, kind, vault, wx, wy, wz := s.hitInfo(h)
	ctx := HoverContext{
		Ref: ref, Kind: kind, Vault: vault,
		ScreenX: x, ScreenY: y,
		WorldX: wx, WorldY: wy, WorldZ: wz,
		Modifiers: mods,
	}
	for _, hd := range s.handlers.hoverEnter {
		hd.fn(ctx)
	}
	s.emitEvent(EventHoverEnter, ref, kind, vault, x, y, wx, wy, wz, MouseButtonLeft, mods, DragContext{})
}

func (s *Stage) fireHoverLeave(h hitResult, x, y float64, mods KeyModifiers) {
	ref, kind, vault, wx, wy, wz := s.hitInfo(h)
	ctx := HoverContext{
		Ref: ref, Kind: kind, Vault: vault,
		ScreenX: x, ScreenY: y,
		WorldX: wx, WorldY: wy, WorldZ: wz,
		Modifiers: mods,
	}
	for _, hd := range s.handlers.hoverLeave {
		hd.fn(ctx)
	}
	s.emitEvent(EventHoverLeave, ref, kind, vault, x, y, wx, wy, wz, MouseButtonLeft, mods, DragContext{})
}

func (s *Stage) fireClick(h hitResult, x, y float64, button MouseButton, mods KeyModifiers) {
	ref, kind, vault, wx, wy, wz := s.hitInfo(h)
	ctx := ClickContext{
		Ref: ref, Kind: kind, Vault: vault,
		ScreenX: x, ScreenY: y,
		WorldX: wx, WorldY: wy, WorldZ: wz,
		Button: button, Modifiers: mods,
	}
	evType := EventClick
	if button == MouseButtonRight {
		evType = EventSecondary
		for _, hd := range s.handlers.secondary {
			hd.fn(ctx)
		}
	} else {
		for _, hd := range s.handlers.click {
			hd.fn(ctx)
		}
	}
	s.emitEvent(evType, ref, kind, vault, x, y, wx, wy, wz, button, mods, DragContext{})
	s.clickDefaults(h, ctx)
}

func (s *Stage) fireDragStart(h hitResult, x, y, startX, startY, dx, dy float64, button MouseButton, mods KeyModifiers) {
	ctx := s.dragContext(h, x, y, startX, startY, dx, dy, button, mods)
	for _, hd := range s.handlers.dragStart {
		hd.fn(ctx)
	}
	s.emitEvent(EventDragStart, ctx.Ref, ctx.Kind, ctx.Vault, x, y, 0, 0, 0, button, mods, ctx)
}

func (s *Stage) fireDrag(h hitResult, x, y, startX, startY, dx, dy float64, button MouseButton, mods KeyModifiers) {
	ctx := s.dragContext(h, x, y, startX, startY, dx, dy, button, mods)
	for _, hd := range s.handlers.drag {
		hd.fn(ctx)
	}
	s.emitEvent(EventDrag, ctx.Ref, ctx.Kind, ctx.Vault, x, y, 0, 0, 0, button, mods, ctx)
	s.dragDefaults(ctx)
}

func (s *Stage) fireDragEnd(h hitResult, x, y, startX, startY, dx, dy float64, button MouseButton, mods KeyModifiers) {
	ctx := s.dragContext(h, x, y, startX, startY, dx, dy, button, mods)
	for _, hd := range s.handlers.dragEnd {
		hd.fn(ctx)
	}
	s.emitEvent(EventDragEnd, ctx.Ref, ctx.Kind, ctx.Vault, x, y, 0, 0, 0, button, mods, ctx)
}

func (s *Stage) dragContext(h hitResult, x, y, startX, startY, dx, dy float64, button MouseButton, mods KeyModifiers) DragContext {
	ref, kind, vault, _, _, _ := s.hitInfo(h)
	return DragContext{
		Ref: ref, Kind: kind, Vault: vault,
		ScreenX: x, ScreenY: y,
		StartX: startX, StartY: startY,
		DeltaX: dx, DeltaY: dy,
		Button: button, Modifiers: mods,
	}
}

// --- Default bindings ---

// clickDefaults applies the built-in click behaviors after user handlers.
func (s *Stage) clickDefaults(h hitResult, ctx ClickContext) {
	if !s.bindings {
		return
	}

	if ctx.Button == MouseButtonRight {
		if h.kind == hitNode {
			n := s.transforms[h.index].Node
			if n.SynergyEligible() {
				if s.focus.synSource == n.Key {
					s.ExitSynergy()
				} else {
					s.EnterSynergy(n.Ref)
				}
				return
			}
		}
		if s.focus.synergyActive() {
			s.ExitSynergy()
		}
		return
	}

	if ctx.Button != MouseButtonLeft {
		return
	}
	switch h.kind {
	case hitNode:
		s.LockFocus(s.transforms[h.index].Node.Ref)
	case hitVault:
		s.flyToVaultPoint(h.index)
	case hitNone:
		if s.focus.mode == FocusLocked {
			s.ResetView()
		}
	}
}

// flyToVaultPoint flies the camera toward a vault star without locking
// focus; the star stays a point, so there is nothing to pin.
func (s *Stage) flyToVaultPoint(i int) {
	if i < 0 || i >= len(s.layout.Vault) {
		return
	}
	p := &s.layout.Vault[i]
	cam := s.rig.Current()
	rx, ry, rz := rotatePoint(p.X, p.Y, p.Z, cam.Tilt)
	s.rig.StartTransition(-rx, -ry, lockDepth-rz, lockFlightTime)
}

// dragDefaults applies the built-in camera drag: plain dragging pans, the
// middle or secondary button orbits. Dead while a lock owns the camera.
func (s *Stage) dragDefaults(ctx DragContext) {
	if !s.bindings || s.focus.mode != FocusOrbit {
		return
	}
	switch ctx.Button {
	case MouseButtonLeft:
		s.rig.Nudge(ctx.DeltaX*dragPanSpeed, ctx.DeltaY*dragPanSpeed)
	case MouseButtonRight, MouseButtonMiddle:
		s.rig.Rotate(ctx.DeltaX*dragRotateSpeed, ctx.DeltaY*dragRotateSpeed)
	}
}

// --- Sink bridge ---

// emitEvent forwards one interaction to the sink. Events without an item
// identity are not forwarded; the sink mirrors item interactions, not raw
// pointer traffic.
func (s *Stage) emitEvent(t EventType, ref ItemRef, kind Kind, vault bool,
	x, y, wx, wy, wz float64, button MouseButton, mods KeyModifiers, drag DragContext) {
	if s.sink == nil || ref.IsZero() {
		return
	}
	s.sink.EmitEvent(InteractionEvent{
		Type:      t,
		Ref:       ref,
		Kind:      kind,
		Vault:     vault,
		ScreenX:   x,
		ScreenY:   y,
		WorldX:    wx,
		WorldY:    wy,
		WorldZ:    wz,
		Button:    button,
		Modifiers: mods,
		StartX:    drag.StartX,
		StartY:    drag.StartY,
		DeltaX:    drag.DeltaX,
		DeltaY:    drag.DeltaY,
	})
}
