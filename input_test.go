package galaxy

import (
	"testing"
	"time"
)

// ptrTime is the wall-clock instant fed to every synthetic pointer sample.
// Tooltip scheduling reads it; none of these tests advance it.
var ptrTime = time.Unix(1000, 0)

// itemNode builds a carried rare weapon. Under hitStage the node's X/Y double
// as its screen position and Z as its depth.
func itemNode(id string, x, y float64) *WorldNode {
	ref := ItemRef{InstanceID: id}
	return &WorldNode{
		Ref:      ref,
		Key:      ref.Key(),
		Kind:     KindWeapon,
		Slot:     SlotPrimary,
		Tier:     TierRare,
		Name:     id,
		X:        x,
		Y:        y,
		IconSize: 96,
	}
}

// exoticNode builds a synergy-eligible variant of itemNode.
func exoticNode(id string, x, y float64) *WorldNode {
	n := itemNode(id, x, y)
	n.Tier = TierExotic
	return n
}

// hitStage builds a stage with hand-placed transforms, bypassing projection:
// every node sits fully visible at scale 1, screen position (X, Y), depth Z.
func hitStage(nodes ...*WorldNode) *Stage {
	s := NewStage(800, 600)
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, ok := index[n.Key]; !ok {
			index[n.Key] = i
		}
	}
	s.layout = Layout{Nodes: nodes, index: index}
	s.transforms = make([]Transform, len(nodes))
	for i, n := range nodes {
		s.transforms[i] = Transform{
			Node:    n,
			ScreenX: n.X,
			ScreenY: n.Y,
			Scale:   1,
			FinalZ:  n.Z,
			Opacity: 1,
			Visible: true,
			LOD:     LODFull,
		}
	}
	s.projected = true
	return s
}

func ptrMove(s *Stage, x, y float64) {
	s.processPointer(x, y, false, 0, 0, ptrTime)
}

func ptrPress(s *Stage, x, y float64, b MouseButton) {
	s.processPointer(x, y, true, b, 0, ptrTime)
}

func ptrRelease(s *Stage, x, y float64) {
	s.processPointer(x, y, false, 0, 0, ptrTime)
}

// recordingSink captures emitted interaction events in order.
type recordingSink struct {
	events []InteractionEvent
}

func (rs *recordingSink) EmitEvent(e InteractionEvent) {
	rs.events = append(rs.events, e)
}

// --- hit testing ---

func TestHitTestRadius(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300))

	// IconSize 96 at scale 1 gives a 52.8px radius.
	if h := s.hitTest(452, 300); h.kind != hitNode || h.index != 0 {
		t.Errorf("pointer 52px out missed: %+v", h)
	}
	if h := s.hitTest(453, 300); h.kind != hitNone {
		t.Errorf("pointer 53px out hit: %+v", h)
	}
}

func TestHitTestRadiusClamps(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300))

	// Tiny projections keep the 30px floor.
	s.transforms[0].Scale = 0.2
	if h := s.hitTest(429, 300); h.kind != hitNode {
		t.Errorf("miss inside the floor radius: %+v", h)
	}
	if h := s.hitTest(431, 300); h.kind != hitNone {
		t.Errorf("hit outside the floor radius: %+v", h)
	}

	// Huge projections cap at 120px.
	s.transforms[0].Scale = 3
	if h := s.hitTest(519, 300); h.kind != hitNode {
		t.Errorf("miss inside the cap radius: %+v", h)
	}
	if h := s.hitTest(521, 300); h.kind != hitNone {
		t.Errorf("hit outside the cap radius: %+v", h)
	}
}

func TestHitTestDepthBias(t *testing.T) {
	a := itemNode("a", 400, 300)
	b := itemNode("b", 406, 300)
	b.Z = 60
	s := hitStage(a, b)

	// Both centers sit 3px from the pointer; the closer-to-camera node wins.
	if h := s.hitTest(403, 300); h.index != 1 {
		t.Errorf("depth bias should favor b: %+v", h)
	}

	// Push b deep and the tie breaks the other way.
	s.transforms[1].FinalZ = -60
	if h := s.hitTest(403, 300); h.index != 0 {
		t.Errorf("depth bias should favor a: %+v", h)
	}
}

func TestHitTestSkipsInvisibleAndFaded(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300))

	s.transforms[0].Opacity = 0.04
	if h := s.hitTest(400, 300); h.kind != hitNone {
		t.Errorf("nearly transparent node hit: %+v", h)
	}
	s.transforms[0].Opacity = 0.05 // the floor is inclusive
	if h := s.hitTest(400, 300); h.kind != hitNone {
		t.Errorf("node at the opacity floor hit: %+v", h)
	}
	s.transforms[0].Opacity = 0.06
	if h := s.hitTest(400, 300); h.kind != hitNode {
		t.Errorf("node above the opacity floor missed: %+v", h)
	}

	s.transforms[0].Visible = false
	if h := s.hitTest(400, 300); h.kind != hitNone {
		t.Errorf("invisible node hit: %+v", h)
	}
}

func TestHitTestTooltipSticky(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300))

	if h := s.hitTest(460, 300); h.kind != hitNone {
		t.Fatalf("60px out should miss without the tooltip bonus: %+v", h)
	}

	// The tooltip owner's radius grows to 68.64px.
	s.tip.shownKey = "a"
	if h := s.hitTest(468, 300); h.kind != hitNode {
		t.Errorf("miss inside the sticky radius: %+v", h)
	}
	if h := s.hitTest(469, 300); h.kind != hitNone {
		t.Errorf("hit outside the sticky radius: %+v", h)
	}
}

func TestHitTestRendererHoverClaim(t *testing.T) {
	a := itemNode("a", 400, 300)
	b := itemNode("b", 600, 300)
	s := hitStage(a, b)

	s.SetRendererHover(b.Ref)
	if h := s.hitTest(400, 300); h.kind != hitNode || h.index != 1 {
		t.Errorf("claim should outrank radius scoring: %+v", h)
	}

	// A claim on an invisible node falls through to normal scoring.
	s.transforms[1].Visible = false
	if h := s.hitTest(400, 300); h.index != 0 {
		t.Errorf("invisible claim not ignored: %+v", h)
	}

	s.transforms[1].Visible = true
	s.SetRendererHover(ItemRef{})
	if h := s.hitTest(400, 300); h.index != 0 {
		t.Errorf("released claim still active: %+v", h)
	}
}

func TestHitTestVaultFallback(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300))
	s.layout.Vault = []VaultPoint{{Ref: ItemRef{Hash: 9}, Key: "h:9", X: 5, Y: 6, Z: -4000}}
	s.star.proj = []starProj{{sx: 401, sy: 300, ok: true}}

	// A node in range outranks any star.
	if h := s.hitTest(400, 300); h.kind != hitNode {
		t.Errorf("star outranked a node: %+v", h)
	}

	s.star.proj[0] = starProj{sx: 700, sy: 500, ok: true}
	if h := s.hitTest(710, 500); h.kind != hitVault || h.index != 0 {
		t.Errorf("no vault fallback: %+v", h)
	}
	if h := s.hitTest(724, 500); h.kind != hitNone {
		t.Errorf("hit at the star pick radius: %+v", h)
	}
}

// --- hover dispatch ---

func TestHoverEnterLeave(t *testing.T) {
	a := itemNode("a", 400, 300)
	b := itemNode("b", 600, 300)
	s := hitStage(a, b)
	sink := &recordingSink{}
	s.SetEventSink(sink)

	var entered, left []HoverContext
	s.OnHoverEnter(func(c HoverContext) { entered = append(entered, c) })
	s.OnHoverLeave(func(c HoverContext) { left = append(left, c) })

	ptrMove(s, 400, 300) // enter a
	ptrMove(s, 401, 300) // same node: no churn
	ptrMove(s, 500, 300) // empty space: leave a
	ptrMove(s, 600, 300) // enter b

	if len(entered) != 2 || len(left) != 1 {
		t.Fatalf("enter/leave counts = %d/%d, want 2/1", len(entered), len(left))
	}
	if entered[0].Ref != a.Ref || entered[1].Ref != b.Ref {
		t.Errorf("enter refs = %v, %v", entered[0].Ref, entered[1].Ref)
	}
	assertNear(t, "enter WorldX", entered[0].WorldX, 400)
	if left[0].Ref != a.Ref {
		t.Errorf("leave ref = %v, want a", left[0].Ref)
	}
	// The leave context carries the position that vacated the node.
	assertNear(t, "leave ScreenX", left[0].ScreenX, 500)

	if ref, ok := s.Hovered(); !ok || ref != b.Ref {
		t.Errorf("Hovered = %v %v, want b", ref, ok)
	}
	if s.tip.pendingKey != "b" {
		t.Errorf("tooltip pending %q, want b", s.tip.pendingKey)
	}

	want := []EventType{EventHoverEnter, EventHoverLeave, EventHoverEnter}
	if len(sink.events) != len(want) {
		t.Fatalf("sink saw %d events, want %d", len(sink.events), len(want))
	}
	for i, e := range sink.events {
		if e.Type != want[i] {
			t.Errorf("event %d type = %v, want %v", i, e.Type, want[i])
		}
	}
	if sink.events[1].Ref != a.Ref || sink.events[2].Ref != b.Ref {
		t.Error("sink event refs do not match the hover sequence")
	}
}

func TestHoverModifiersPassThrough(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300))

	var got KeyModifiers
	s.OnHoverEnter(func(c HoverContext) { got = c.Modifiers })

	s.processPointer(400, 300, false, 0, ModShift|ModCtrl, ptrTime)
	if got != ModShift|ModCtrl {
		t.Errorf("modifiers = %v, want shift|ctrl", got)
	}
}

// --- click dispatch ---

func TestClickOnRelease(t *testing.T) {
	a := itemNode("a", 400, 300)
	s := hitStage(a)
	sink := &recordingSink{}
	s.SetEventSink(sink)

	var clicks []ClickContext
	s.OnClick(func(c ClickContext) { clicks = append(clicks, c) })

	ptrPress(s, 400, 300, MouseButtonLeft)
	if len(clicks) != 0 {
		t.Fatal("click fired on press")
	}
	ptrRelease(s, 400, 300)
	if len(clicks) != 1 {
		t.Fatalf("clicks = %d, want 1", len(clicks))
	}
	c := clicks[0]
	if c.Ref != a.Ref || c.Button != MouseButtonLeft {
		t.Errorf("click context %+v", c)
	}
	assertNear(t, "ScreenX", c.ScreenX, 400)

	last := sink.events[len(sink.events)-1]
	if last.Type != EventClick || last.Ref != a.Ref {
		t.Errorf("sink tail = %+v, want click on a", last)
	}

	// The default binding locked onto the node.
	if s.focus.mode != FocusTransitioning || s.focus.pendingKey != "a" {
		t.Errorf("focus = %v %q after click", s.focus.mode, s.focus.pendingKey)
	}
	if !s.rig.Transitioning() {
		t.Error("no focus flight started")
	}
	if off := s.rig.Target().Offset; off != (Vec3{X: -400, Y: -300, Z: 400}) {
		t.Errorf("flight target %+v", off)
	}
}

func TestClickTargetMustMatchPress(t *testing.T) {
	a := itemNode("a", 400, 300)
	b := itemNode("b", 600, 300)
	s := hitStage(a, b)
	s.SetDragDeadZone(1e6) // keep held movement from becoming a drag

	clicks := 0
	s.OnClick(func(ClickContext) { clicks++ })

	ptrPress(s, 400, 300, MouseButtonLeft)
	ptrPress(s, 600, 300, MouseButtonLeft) // held move onto b
	ptrRelease(s, 600, 300)

	if clicks != 0 {
		t.Errorf("release over a different item clicked %d times", clicks)
	}
	if s.focus.mode != FocusOrbit {
		t.Errorf("focus moved to %v without a click", s.focus.mode)
	}
}

func TestSecondaryButtonRouting(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300)) // rare: carries no synergy data
	sink := &recordingSink{}
	s.SetEventSink(sink)

	clicks, secondaries := 0, 0
	s.OnClick(func(ClickContext) { clicks++ })
	s.OnSecondary(func(ClickContext) { secondaries++ })

	ptrPress(s, 400, 300, MouseButtonRight)
	ptrRelease(s, 400, 300)

	if clicks != 0 || secondaries != 1 {
		t.Errorf("clicks/secondaries = %d/%d, want 0/1", clicks, secondaries)
	}
	last := sink.events[len(sink.events)-1]
	if last.Type != EventSecondary || last.Button != MouseButtonRight {
		t.Errorf("sink tail = %+v, want secondary", last)
	}
	if s.focus.synSource != "" || s.focus.mode != FocusOrbit {
		t.Error("right-click on a plain node changed focus state")
	}
}

func TestButtonCapturedAtPress(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300))

	var clicks []ClickContext
	secondaries := 0
	s.OnClick(func(c ClickContext) { clicks = append(clicks, c) })
	s.OnSecondary(func(ClickContext) { secondaries++ })

	// The release sample arrives flagged right; the interaction keeps its
	// press button.
	s.processPointer(400, 300, true, MouseButtonLeft, 0, ptrTime)
	s.processPointer(400, 300, false, MouseButtonRight, 0, ptrTime)

	if len(clicks) != 1 || secondaries != 0 {
		t.Fatalf("clicks/secondaries = %d/%d, want 1/0", len(clicks), secondaries)
	}
	if clicks[0].Button != MouseButtonLeft {
		t.Errorf("click button = %v, want the press button", clicks[0].Button)
	}
}

func TestEmptySpaceClick(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300))
	sink := &recordingSink{}
	s.SetEventSink(sink)

	var clicks []ClickContext
	s.OnClick(func(c ClickContext) { clicks = append(clicks, c) })

	ptrPress(s, 100, 100, MouseButtonLeft)
	ptrRelease(s, 100, 100)

	if len(clicks) != 1 {
		t.Fatalf("clicks = %d, want 1", len(clicks))
	}
	if !clicks[0].Ref.IsZero() {
		t.Errorf("empty-space click carries ref %v", clicks[0].Ref)
	}
	// Identityless events never reach the sink.
	if len(sink.events) != 0 {
		t.Errorf("sink saw %d events for empty space", len(sink.events))
	}
	// Nothing was locked, so there is no view to reset.
	if s.rig.Transitioning() {
		t.Error("empty-space click in orbit moved the camera")
	}
}

// --- drag ---

func TestDragChoreography(t *testing.T) {
	a := itemNode("a", 400, 300)
	s := hitStage(a)
	s.SetDefaultBindings(false)

	var starts, drags, ends []DragContext
	clicks := 0
	s.OnDragStart(func(c DragContext) { starts = append(starts, c) })
	s.OnDrag(func(c DragContext) { drags = append(drags, c) })
	s.OnDragEnd(func(c DragContext) { ends = append(ends, c) })
	s.OnClick(func(ClickContext) { clicks++ })

	ptrPress(s, 400, 300, MouseButtonLeft)
	ptrPress(s, 403, 300, MouseButtonLeft) // 3px: inside the dead zone
	if len(starts) != 0 || len(drags) != 0 {
		t.Fatal("drag started inside the dead zone")
	}

	ptrPress(s, 408, 300, MouseButtonLeft) // 8px from the press: drag begins
	if len(starts) != 1 || len(drags) != 1 {
		t.Fatalf("starts/drags = %d/%d after crossing the dead zone", len(starts), len(drags))
	}
	st := starts[0]
	if st.Ref != a.Ref || st.Button != MouseButtonLeft {
		t.Errorf("drag start identity %+v", st)
	}
	assertNear(t, "start StartX", st.StartX, 400)
	assertNear(t, "start DeltaX", st.DeltaX, 8) // measured from the press
	assertNear(t, "start DeltaY", st.DeltaY, 0)
	// The drag event on the same sample reports movement since the last one.
	assertNear(t, "drag DeltaX", drags[0].DeltaX, 5)

	ptrPress(s, 409, 301, MouseButtonLeft)
	if len(drags) != 2 {
		t.Fatalf("drags = %d after a second move", len(drags))
	}
	assertNear(t, "second DeltaX", drags[1].DeltaX, 1)
	assertNear(t, "second DeltaY", drags[1].DeltaY, 1)

	ptrRelease(s, 409, 301)
	if len(ends) != 1 {
		t.Fatalf("ends = %d, want 1", len(ends))
	}
	assertNear(t, "end DeltaX", ends[0].DeltaX, 0)
	assertNear(t, "end ScreenX", ends[0].ScreenX, 409)
	assertNear(t, "end StartX", ends[0].StartX, 400)

	if clicks != 0 {
		t.Error("a completed drag must not also click")
	}
	if s.pointer.down || s.pointer.dragging {
		t.Error("pointer state not reset after release")
	}
}

func TestDragDeadZoneConfigurable(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300))
	s.SetDefaultBindings(false)
	s.SetDragDeadZone(50)

	starts := 0
	s.OnDragStart(func(DragContext) { starts++ })

	ptrPress(s, 400, 300, MouseButtonLeft)
	ptrPress(s, 440, 300, MouseButtonLeft) // 40px: still a press
	if starts != 0 {
		t.Fatal("drag started below the configured dead zone")
	}
	ptrPress(s, 450, 300, MouseButtonLeft) // exactly 50px: the zone is exclusive
	if starts != 0 {
		t.Fatal("drag started at the dead zone boundary")
	}
	ptrPress(s, 460, 300, MouseButtonLeft)
	if starts != 1 {
		t.Errorf("starts = %d after crossing the zone", starts)
	}
}

func TestDragDefaultsOrbitAndPan(t *testing.T) {
	// Plain drag pans.
	s := hitStage()
	ptrPress(s, 100, 100, MouseButtonLeft)
	ptrPress(s, 110, 100, MouseButtonLeft)
	assertNear(t, "pan X", s.rig.Target().Offset.X, 10*dragPanSpeed)
	assertNear(t, "pan Z", s.rig.Target().Offset.Z, DefaultOrbitOffset.Z)

	// Middle drag orbits.
	s = hitStage()
	ptrPress(s, 100, 100, MouseButtonMiddle)
	ptrPress(s, 110, 100, MouseButtonMiddle)
	assertNear(t, "yaw", s.rig.Target().Tilt.X, 10*dragRotateSpeed)
	assertNear(t, "pitch", s.rig.Target().Tilt.Y, 0)

	// Secondary drag orbits too.
	s = hitStage()
	ptrPress(s, 100, 100, MouseButtonRight)
	ptrPress(s, 100, 110, MouseButtonRight)
	assertNear(t, "pitch", s.rig.Target().Tilt.Y, 10*dragRotateSpeed)
}

func TestDragDefaultsSuppressedWhileLocked(t *testing.T) {
	s := hitStage()
	s.focus.mode = FocusLocked

	ptrPress(s, 100, 100, MouseButtonLeft)
	ptrPress(s, 130, 100, MouseButtonLeft)
	if s.rig.Target().Offset != DefaultOrbitOffset {
		t.Errorf("locked camera panned: %+v", s.rig.Target().Offset)
	}
	// The drag machine itself still runs so handlers observe the gesture.
	if !s.pointer.dragging {
		t.Error("drag state machine stopped while locked")
	}
	ptrRelease(s, 130, 100)

	ptrPress(s, 100, 100, MouseButtonMiddle)
	ptrPress(s, 130, 100, MouseButtonMiddle)
	if s.rig.Target().Tilt != (Vec2{}) {
		t.Errorf("locked camera orbited: %+v", s.rig.Target().Tilt)
	}
}

func TestDefaultBindingsOff(t *testing.T) {
	a := itemNode("a", 400, 300)
	s := hitStage(a)
	s.SetDefaultBindings(false)

	clicks, drags := 0, 0
	s.OnClick(func(ClickContext) { clicks++ })
	s.OnDrag(func(DragContext) { drags++ })

	// Clicking still dispatches but no longer locks focus.
	ptrPress(s, 400, 300, MouseButtonLeft)
	ptrRelease(s, 400, 300)
	if clicks != 1 {
		t.Fatalf("clicks = %d with bindings off", clicks)
	}
	if s.focus.mode != FocusOrbit || s.rig.Transitioning() {
		t.Error("disabled bindings still locked focus")
	}

	// Dragging still dispatches but no longer moves the camera.
	ptrPress(s, 100, 100, MouseButtonLeft)
	ptrPress(s, 120, 100, MouseButtonLeft)
	if drags != 1 {
		t.Fatalf("drags = %d with bindings off", drags)
	}
	if s.rig.Target().Offset != DefaultOrbitOffset {
		t.Errorf("disabled bindings still panned: %+v", s.rig.Target().Offset)
	}
}

// --- click defaults ---

func TestClickDefaultsFocusCycle(t *testing.T) {
	a := itemNode("a", 400, 300)
	s := hitStage(a)

	// Left on a node: lock flight toward it.
	ptrPress(s, 400, 300, MouseButtonLeft)
	ptrRelease(s, 400, 300)
	if s.focus.mode != FocusTransitioning || s.focus.pendingKey != "a" {
		t.Fatalf("focus = %v %q after node click", s.focus.mode, s.focus.pendingKey)
	}

	s.focus.flightDone()
	if s.focus.mode != FocusLocked || s.focus.lockedKey != "a" {
		t.Fatalf("focus = %v %q after flight", s.focus.mode, s.focus.lockedKey)
	}

	// Left on empty space while locked: fly back to orbit.
	ptrPress(s, 100, 100, MouseButtonLeft)
	ptrRelease(s, 100, 100)
	if s.focus.mode != FocusTransitioning || s.focus.lockedKey != "" {
		t.Errorf("focus = %v %q after empty-space click", s.focus.mode, s.focus.lockedKey)
	}
	if !s.rig.Transitioning() {
		t.Error("no reset flight started")
	}
	if s.rig.Target() != defaultCameraState() {
		t.Errorf("reset target %+v", s.rig.Target())
	}
}

func TestClickDefaultsVaultFlight(t *testing.T) {
	s := hitStage()
	s.layout.Vault = []VaultPoint{{Ref: ItemRef{Hash: 7}, Key: "h:7", X: 10, Y: 20, Z: -5000}}
	s.star.proj = []starProj{{sx: 650, sy: 450, ok: true}}

	ptrPress(s, 650, 450, MouseButtonLeft)
	ptrRelease(s, 650, 450)

	// The camera flies toward the point but nothing locks: a star stays a
	// point, there is nothing to pin.
	if !s.rig.Transitioning() {
		t.Fatal("no flight toward the vault point")
	}
	if off := s.rig.Target().Offset; off != (Vec3{X: -10, Y: -20, Z: 5400}) {
		t.Errorf("flight target %+v", off)
	}
	if s.focus.mode != FocusOrbit {
		t.Errorf("vault click changed focus to %v", s.focus.mode)
	}
	if _, ok := s.FocusedItem(); ok {
		t.Error("vault click locked focus")
	}
}

func TestRightClickSynergyToggle(t *testing.T) {
	src := exoticNode("src", 400, 300)
	arm := itemNode("arm", 600, 300)
	wep := itemNode("wep", 200, 300)
	s := hitStage(src, arm, wep)
	s.SetSynergyProvider(func(ref ItemRef) []SynergyLink {
		if ref.Key() != "src" {
			return nil
		}
		return []SynergyLink{{Armor: arm.Ref, Weapon: wep.Ref, Element: ElementSolar}}
	})

	// Right-click the source: overlay on.
	ptrPress(s, 400, 300, MouseButtonRight)
	ptrRelease(s, 400, 300)
	if s.focus.synSource != "src" || !s.focus.isolating {
		t.Fatalf("synergy not active: %q isolating=%v", s.focus.synSource, s.focus.isolating)
	}
	if len(s.focus.synMembers) != 3 {
		t.Errorf("members = %d, want source + both endpoints", len(s.focus.synMembers))
	}
	if len(s.ov.wires) != 2 {
		t.Errorf("wires = %d, want 2 per link", len(s.ov.wires))
	}
	if len(s.SynergyLinks()) != 1 {
		t.Errorf("SynergyLinks = %d, want 1", len(s.SynergyLinks()))
	}

	// Right-click it again: fade-out begins, the source lingers until the
	// fade and debounce run out.
	ptrPress(s, 400, 300, MouseButtonRight)
	ptrRelease(s, 400, 300)
	if !s.focus.synExiting {
		t.Error("second right-click did not begin the exit")
	}
	if s.focus.synSource != "src" {
		t.Error("source dropped before the fade finished")
	}

	// On a fresh overlay, right-clicking empty space also exits.
	src2 := exoticNode("src", 400, 300)
	arm2 := itemNode("arm", 600, 300)
	wep2 := itemNode("wep", 200, 300)
	s2 := hitStage(src2, arm2, wep2)
	s2.SetSynergyProvider(func(ItemRef) []SynergyLink {
		return []SynergyLink{{Armor: arm2.Ref, Weapon: wep2.Ref, Element: ElementArc}}
	})
	if !s2.EnterSynergy(src2.Ref) {
		t.Fatal("EnterSynergy refused a valid source")
	}
	ptrPress(s2, 100, 100, MouseButtonRight)
	ptrRelease(s2, 100, 100)
	if !s2.focus.synExiting {
		t.Error("right-click on empty space did not begin the exit")
	}
}

func TestEnterSynergyGuards(t *testing.T) {
	src := exoticNode("src", 400, 300)
	dull := itemNode("dull", 600, 300)
	s := hitStage(src, dull)

	if s.EnterSynergy(src.Ref) {
		t.Error("entered with no provider")
	}

	s.SetSynergyProvider(func(ItemRef) []SynergyLink { return nil })
	if s.EnterSynergy(src.Ref) {
		t.Error("entered with no links")
	}
	if s.focus.synSource != "" {
		t.Fatalf("failed enter left source %q", s.focus.synSource)
	}

	s.SetSynergyProvider(func(ItemRef) []SynergyLink {
		return []SynergyLink{{Armor: dull.Ref, Weapon: src.Ref}}
	})
	if s.EnterSynergy(ItemRef{InstanceID: "ghost"}) {
		t.Error("entered on an item outside the layout")
	}
	if s.EnterSynergy(dull.Ref) {
		t.Error("entered on an ineligible item")
	}

	if !s.EnterSynergy(src.Ref) {
		t.Fatal("refused a valid source")
	}
	if ref, ok := s.SynergySource(); !ok || ref != src.Ref {
		t.Errorf("SynergySource = %v %v, want src", ref, ok)
	}
}

// --- callback handles ---

func TestCallbackHandleRemove(t *testing.T) {
	s := hitStage(itemNode("a", 400, 300))
	s.SetDefaultBindings(false)

	first, second := 0, 0
	h1 := s.OnClick(func(ClickContext) { first++ })
	s.OnClick(func(ClickContext) { second++ })
	h1.Remove()

	ptrPress(s, 400, 300, MouseButtonLeft)
	ptrRelease(s, 400, 300)
	if first != 0 || second != 1 {
		t.Errorf("first/second = %d/%d after removal", first, second)
	}

	// Removing again is harmless, as is a zero handle.
	h1.Remove()
	var zero CallbackHandle
	zero.Remove()

	// Hover handles detach the same way.
	ptrMove(s, 100, 100)
	hh := s.OnHoverEnter(func(HoverContext) { t.Error("removed hover handler fired") })
	hh.Remove()
	ptrMove(s, 400, 300)
}

// --- wire hover ---

func TestWireHoverOnIdlePointer(t *testing.T) {
	links := overlayLinks()
	s := hitStage()
	s.focus.synSource = "src"
	s.ov.rebuild(links)
	s.ov.resolve(links, 320, fixedPositions(map[string]Vec2{
		"arm-1": {X: 320, Y: 272},
		"wep-1": {X: 320, Y: 472},
		"arm-2": {X: 120, Y: 72},
		"wep-2": {X: 20, Y: 72},
	}))

	// Pointer resting 3px off the anchor→armor wire of link 0.
	s.pointer.lastX, s.pointer.lastY = 323, 150
	s.resolvePointer(ptrTime)
	if s.ov.hoverLink != 0 {
		t.Errorf("hoverLink = %d, want 0", s.ov.hoverLink)
	}

	// A hovered node outranks wires.
	s.pointer.hoverKey = "something"
	s.resolvePointer(ptrTime)
	if s.ov.hoverLink != -1 {
		t.Error("wire hover held through a node hover")
	}

	// The fade-out disables wire hover.
	s.pointer.hoverKey = ""
	s.focus.synExiting = true
	s.resolvePointer(ptrTime)
	if s.ov.hoverLink != -1 {
		t.Error("wire hover survived the synergy exit")
	}
}

func TestWireHoverClaimWins(t *testing.T) {
	links := overlayLinks()
	s := hitStage()
	s.focus.synSource = "src"
	s.ov.rebuild(links)

	// The claim needs no resolved geometry, it simply names the link.
	s.HoverWire(1)
	s.resolvePointer(ptrTime)
	if s.ov.hoverLink != 1 {
		t.Errorf("hoverLink = %d, want the claimed link", s.ov.hoverLink)
	}

	// Claims outrank node hover; only clearing hands back the hit test.
	s.pointer.hoverKey = "something"
	s.resolvePointer(ptrTime)
	if s.ov.hoverLink != 1 {
		t.Error("claim lost to a node hover")
	}

	s.ClearWireHover()
	s.resolvePointer(ptrTime)
	if s.ov.hoverLink != -1 {
		t.Error("hover held after the claim cleared")
	}
}

// --- held input and idle drift ---

func TestClearHeldInputDropsPress(t *testing.T) {
	n := itemNode("a", 400, 300)
	s := hitStage(n)
	sink := &recordingSink{}
	s.SetEventSink(sink)

	ptrPress(s, 400, 300, MouseButtonLeft)
	s.processPointer(420, 300, true, MouseButtonLeft, 0, ptrTime)
	if !s.pointer.dragging {
		t.Fatal("drag never started")
	}
	s.rig.SetParallax(4, 4)
	fired := len(sink.events)

	s.clearHeldInput()
	if s.pointer.down || s.pointer.dragging || s.pointer.pressKey != "" {
		t.Errorf("held state survived: %+v", s.pointer)
	}
	if s.pointer.pressHit != (hitResult{}) {
		t.Error("press hit survived")
	}
	if p := s.rig.Target().Parallax; p != (Vec2{}) {
		t.Errorf("parallax = %+v, want zero", p)
	}
	if len(sink.events) != fired {
		t.Error("clearing held input fired handlers")
	}
}

func TestIdleDriftAfterQuietPeriod(t *testing.T) {
	s := hitStage()

	for i := 0; i < idleDriftDelayTicks; i++ {
		s.idleDrift(false)
	}
	if yaw := s.rig.Target().Tilt.X; yaw != 0 {
		t.Fatalf("drift before the delay elapsed: %v", yaw)
	}

	for i := 0; i < 10; i++ {
		s.idleDrift(false)
	}
	assertNear(t, "drift yaw", s.rig.Target().Tilt.X, 10*idleDriftStep)
	if s.rig.Current().Tilt.X != 0 {
		t.Error("drift wrote current state directly")
	}

	// Any activity resets the quiet counter.
	s.idleDrift(true)
	if s.idleTicks != 0 {
		t.Errorf("idleTicks = %d after activity", s.idleTicks)
	}

	// Locks suppress the creep entirely.
	s.rig.target.Tilt.X = 0
	s.focus.mode = FocusLocked
	for i := 0; i < idleDriftDelayTicks+10; i++ {
		s.idleDrift(false)
	}
	if yaw := s.rig.Target().Tilt.X; yaw != 0 {
		t.Errorf("drift while locked: %v", yaw)
	}
}
