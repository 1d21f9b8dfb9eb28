package galaxy

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// vaultFadeSeconds is the starfield dissolve duration when the vault layer
// toggles.
const vaultFadeSeconds = 0.25

// Stage is the top-level object that owns the item field: layout, camera
// rig, per-frame transforms, input state, the synergy overlay, and the vault
// starfield. A Stage is not safe for concurrent use; drive it from the game
// loop goroutine only.
type Stage struct {
	// ClearColor fills the screen before anything draws.
	ClearColor Color

	// ScreenshotDir receives PNGs queued via Screenshot.
	ScreenshotDir string

	// OnUpdate, when set, runs at the end of every Update tick with the tick
	// duration in seconds.
	OnUpdate func(dt float64)

	width  int
	height int
	focal  float64

	rig   *CameraRig
	focus focusState
	tip   tooltipTimer
	star  starfield
	ov    overlay

	// Inventory and layout.
	inv       InventorySnapshot
	defs      DefSource
	layoutCfg LayoutConfig
	layout    Layout
	dirty     bool

	filter  Filter
	matches filterSet

	perf PerfMode

	// Per-frame projection state.
	transforms []Transform
	order      []int
	sortBuf    []int
	sn         Snapshot
	projected  bool // at least one frame has been projected

	// Input state.
	handlers       handlerRegistry
	pointer        pointerState
	samples        []pointerSample
	injectQueue    []pointerSample
	dragDeadZone   float64
	bindings       bool
	rendererHover  string
	wireHoverClaim int // renderer-claimed synergy link, -1 when none
	idleTicks      int

	sink       EventSink
	synergyFor SynergyProvider

	icons map[string]*ebiten.Image

	fades []*TweenGroup

	runner          *TestRunner
	screenshotQueue []string

	clock    func() time.Time
	frame    uint64
	stats    FrameStats
	debug    bool
	hud      hudState
	disposed bool

	// Render buffers (see render.go).
	verts     []ebiten.Vertex
	inds      []uint32
	starLayer *ebiten.Image
}

// NewStage creates a stage with the given logical screen size in pixels.
func NewStage(width, height int) *Stage {
	return &Stage{
		ClearColor:     Color{R: 0.01, G: 0.01, B: 0.03, A: 1},
		ScreenshotDir:  "screenshots",
		width:          width,
		height:         height,
		focal:          DefaultFocalLength,
		rig:            NewCameraRig(),
		star:           newStarfield(),
		ov:             newOverlay(),
		perf:           PerfFull,
		dragDeadZone:   defaultDragDeadZone,
		bindings:       true,
		wireHoverClaim: -1,
		icons:          make(map[string]*ebiten.Image),
		clock:          time.Now,
	}
}

// Resize changes the stage's logical screen size. Projection centers on the
// new size from the next frame.
func (s *Stage) Resize(width, height int) {
	if width > 0 {
		s.width = width
	}
	if height > 0 {
		s.height = height
	}
}

// Size returns the stage's logical screen size.
func (s *Stage) Size() (width, height int) {
	return s.width, s.height
}

// Camera returns the stage's camera rig. Hosts may drive it directly; input
// bindings route through the same rig.
func (s *Stage) Camera() *CameraRig {
	return s.rig
}

// SetFocalLength overrides the projection focal length. Non-positive values
// restore the default.
func (s *Stage) SetFocalLength(f float64) {
	if f <= 0 || !isFinite(f) {
		f = DefaultFocalLength
	}
	s.focal = f
}

// SetDefs sets the item definition source used to resolve names, icons,
// slots and tiers during layout. Triggers a rebuild.
func (s *Stage) SetDefs(defs DefSource) {
	s.defs = defs
	s.dirty = true
}

// SetInventory replaces the inventory snapshot and schedules a layout
// rebuild for the next tick.
func (s *Stage) SetInventory(inv InventorySnapshot) {
	s.inv = inv
	s.dirty = true
}

// SetLayoutMode switches vault placement between the organized shells and
// the random scatter. Triggers a rebuild.
func (s *Stage) SetLayoutMode(mode LayoutMode) {
	if s.layoutCfg.Mode == mode {
		return
	}
	s.layoutCfg.Mode = mode
	s.dirty = true
}

// SetSeed sets the deterministic scatter seed. Triggers a rebuild.
func (s *Stage) SetSeed(seed int64) {
	if s.layoutCfg.Seed == seed {
		return
	}
	s.layoutCfg.Seed = seed
	s.dirty = true
}

// SetIconSize overrides the base icon edge length in pixels. Zero restores
// the default. Triggers a rebuild.
func (s *Stage) SetIconSize(px float64) {
	if s.layoutCfg.IconSize == px {
		return
	}
	s.layoutCfg.IconSize = px
	s.dirty = true
}

// SetFilter applies a search filter. Non-matching nodes dim but keep their
// positions; an empty filter restores full opacity everywhere.
func (s *Stage) SetFilter(f Filter) {
	s.filter = f
	s.matches = compileFilter(f, s.layout.Nodes)
}

// ClearFilter removes any active filter.
func (s *Stage) ClearFilter() {
	s.SetFilter(Filter{})
}

// Filter returns the active filter.
func (s *Stage) Filter() Filter {
	return s.filter
}

// SetPerfMode switches between the full and reduced visibility windows.
func (s *Stage) SetPerfMode(p PerfMode) {
	s.perf = p
}

// PerfMode returns the active performance mode.
func (s *Stage) PerfMode() PerfMode {
	return s.perf
}

// SetVaultVisible toggles the vault starfield. The field fades rather than
// popping; hit testing against vault points stops once fully faded.
func (s *Stage) SetVaultVisible(visible bool) {
	if s.star.visible == visible {
		return
	}
	s.star.visible = visible
	to := 0.0
	if visible {
		to = 1.0
	}
	s.fades = append(s.fades, TweenFloat(&s.star.alpha, to, vaultFadeSeconds, ease.OutCubic))
}

// VaultVisible reports the vault toggle target (not the fade position).
func (s *Stage) VaultVisible() bool {
	return s.star.visible
}

// SetEventSink sets the sink that receives flattened interaction events.
func (s *Stage) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetSynergyProvider sets the resolver consulted when a synergy source is
// activated.
func (s *Stage) SetSynergyProvider(fn SynergyProvider) {
	s.synergyFor = fn
}

// RegisterIcon associates an icon name (as referenced by item definitions)
// with an image. Nodes whose icon has no registered image draw as colored
// markers instead.
func (s *Stage) RegisterIcon(name string, img *ebiten.Image) {
	if s.disposed || name == "" || img == nil {
		return
	}
	s.icons[name] = img
}

// SetRendererHover lets an external renderer claim the pointer for one item:
// while set, hit testing resolves to that item before any radius scoring.
// Pass the zero ItemRef to release the claim.
func (s *Stage) SetRendererHover(ref ItemRef) {
	if ref.IsZero() {
		s.rendererHover = ""
		return
	}
	s.rendererHover = ref.Key()
}

// HoverWire claims hover for the synergy link at the given index, the wire
// counterpart of SetRendererHover. While claimed, the hovered link brightens
// and isolation narrows to that link's endpoints regardless of where the
// pointer sits. The claim only takes effect while an overlay is active.
func (s *Stage) HoverWire(link int) {
	if link < 0 {
		link = -1
	}
	s.wireHoverClaim = link
}

// ClearWireHover releases a HoverWire claim, returning wire hover to the
// pointer hit test.
func (s *Stage) ClearWireHover() {
	s.wireHoverClaim = -1
}

// SetDebug enables or disables debug mode. When enabled, per-frame timing
// stats are logged to stderr.
func (s *Stage) SetDebug(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Stage debug flag so helpers
// without a Stage pointer can check it cheaply. Only meaningful with a
// single Stage.
var globalDebug bool

// --- Focus and synergy ---

// LockFocus starts a camera flight that brings the item to screen center at
// reading depth and locks focus on it. Returns false when the item is not in
// the current layout. A prior lock releases; an active synergy overlay stays
// up, so locking a linked item inspects it without losing the wires.
func (s *Stage) LockFocus(ref ItemRef) bool {
	key := ref.Key()
	n := s.layout.Node(key)
	if n == nil {
		return false
	}

	// Solve the camera offset that lands the node centered at lockDepth:
	// rotate the node's world position by the current tilt, then pick the
	// offset that cancels x/y and leaves z at lockDepth.
	cam := s.rig.Current()
	rx, ry, rz := rotatePoint(n.X, n.Y, n.Z, cam.Tilt)
	to := s.rig.Target()
	to.Offset = Vec3{X: -rx, Y: -ry, Z: lockDepth - rz}
	to.Parallax = Vec2{}
	s.rig.startTransitionTo(to, lockFlightTime)

	s.focus.beginLock(key)
	return true
}

// ResetView flies the camera back to the default orbit and clears any focus
// lock or synergy overlay.
func (s *Stage) ResetView() {
	s.rig.Reset(resetFlightTime)
	s.ov.clear()
	s.focus.beginReset()
}

// EnterSynergy activates the synergy overlay for the given source item.
// Returns false when no provider is set, the item is not in the layout, the
// item is not synergy-eligible, or the provider returns no links. Entering
// releases any focus lock so the overlay starts from the full orbit view;
// the user can lock onto a member afterwards without dropping the wires.
func (s *Stage) EnterSynergy(source ItemRef) bool {
	if s.synergyFor == nil {
		return false
	}
	key := source.Key()
	n := s.layout.Node(key)
	if n == nil || !n.SynergyEligible() {
		return false
	}
	links := s.synergyFor(source)
	if len(links) == 0 {
		return false
	}
	s.focus.enterSynergy(key, links)
	s.ov.rebuild(links)
	s.wireHoverClaim = -1
	return true
}

// ExitSynergy begins the overlay fade-out. Wires and isolation linger until
// the fade and the release debounce complete.
func (s *Stage) ExitSynergy() {
	s.focus.exitSynergy(s.clock())
}

// FocusMode returns the current focus machine state.
func (s *Stage) FocusMode() FocusMode {
	return s.focus.mode
}

// FocusedItem returns the locked item, if any.
func (s *Stage) FocusedItem() (ItemRef, bool) {
	if s.focus.lockedKey == "" {
		return ItemRef{}, false
	}
	n := s.layout.Node(s.focus.lockedKey)
	if n == nil {
		return ItemRef{}, false
	}
	return n.Ref, true
}

// SynergySource returns the active synergy source, if any.
func (s *Stage) SynergySource() (ItemRef, bool) {
	if s.focus.synSource == "" {
		return ItemRef{}, false
	}
	n := s.layout.Node(s.focus.synSource)
	if n == nil {
		return ItemRef{}, false
	}
	return n.Ref, true
}

// SynergyLinks returns the live overlay links, or nil. The slice must not be
// mutated.
func (s *Stage) SynergyLinks() []SynergyLink {
	return s.focus.synLinks
}

// ScreenPositionFor resolves an item key to its screen position in the most
// recent frame, for hosts drawing their own wires or badges. The key is an
// item key (instance id, or "h:<hash>" for uninstanced items), or "source"
// for the fixed HUD anchor the wire chains fan out from. The bool is false
// when the item is missing, culled, or no frame has been projected.
func (s *Stage) ScreenPositionFor(key string) (Vec2, bool) {
	if key == "source" {
		return Vec2{X: float64(s.width) / 2, Y: overlayAnchorY}, true
	}
	i := s.layout.NodeIndex(key)
	if i < 0 || !s.projected {
		return Vec2{}, false
	}
	tr := &s.transforms[i]
	if !tr.Visible {
		return Vec2{}, false
	}
	return Vec2{X: tr.ScreenX, Y: tr.ScreenY}, true
}

// --- Queries ---

// NodeTransform returns the item's projection record from the most recent
// frame. The bool is false when the item is not in the layout or no frame
// has been projected yet.
func (s *Stage) NodeTransform(ref ItemRef) (Transform, bool) {
	i := s.layout.NodeIndex(ref.Key())
	if i < 0 || !s.projected {
		return Transform{}, false
	}
	return s.transforms[i], true
}

// TransformFor is NodeTransform keyed by item key instead of ItemRef, for
// renderers that index their own state by key.
func (s *Stage) TransformFor(key string) (Transform, bool) {
	i := s.layout.NodeIndex(key)
	if i < 0 || !s.projected {
		return Transform{}, false
	}
	return s.transforms[i], true
}

// Transforms returns this frame's projection records in layout order, the
// whole-field form of NodeTransform for renderers that diff-apply every node
// each frame. Nil until a frame has been projected; the slice is reused
// across frames and must not be mutated or held.
func (s *Stage) Transforms() []Transform {
	if !s.projected {
		return nil
	}
	return s.transforms
}

// NodeAt returns the item under the given screen position using the same
// precedence as pointer hit testing. The bool is false over empty space.
// Vault points resolve to their ItemRef like nodes do.
func (s *Stage) NodeAt(x, y float64) (ItemRef, bool) {
	hit := s.hitTest(x, y)
	switch hit.kind {
	case hitNode:
		return s.transforms[hit.index].Node.Ref, true
	case hitVault:
		return s.layout.Vault[hit.index].Ref, true
	}
	return ItemRef{}, false
}

// Tooltip returns the item currently owning a visible tooltip.
func (s *Stage) Tooltip() (ItemRef, bool) {
	return s.refForKey(s.tip.shownKey)
}

// Hovered returns the item currently under the pointer.
func (s *Stage) Hovered() (ItemRef, bool) {
	return s.refForKey(s.pointer.hoverKey)
}

// refForKey resolves a node or vault key back to its ItemRef.
func (s *Stage) refForKey(key string) (ItemRef, bool) {
	if key == "" {
		return ItemRef{}, false
	}
	if n := s.layout.Node(key); n != nil {
		return n.Ref, true
	}
	for i := range s.layout.Vault {
		if s.layout.Vault[i].Key == key {
			return s.layout.Vault[i].Ref, true
		}
	}
	return ItemRef{}, false
}

// Stats returns the most recent frame's metrics.
func (s *Stage) Stats() FrameStats {
	return s.stats
}

// --- Frame pipeline ---

// Update advances the stage by one tick: input is sampled, the camera and
// all timers advance, the layout rebuilds if dirty, and every node is
// projected, culled and depth-sorted. Pointer samples resolve against the
// transforms computed this same tick, never stale ones.
func (s *Stage) Update() {
	if s.disposed {
		return
	}
	dt := float32(1.0 / float64(ebiten.TPS()))
	now := s.clock()

	s.collectInput()
	if s.runner != nil {
		s.runner.step(s)
	}

	s.rig.advance(dt)
	if s.focus.mode == FocusTransitioning && !s.rig.Transitioning() {
		s.focus.flightDone()
	}
	s.focus.tick(dt, now)
	if !s.focus.synergyActive() && len(s.ov.wires) > 0 {
		s.ov.clear()
	}
	s.advanceFades(dt)

	if s.dirty {
		s.rebuildLayout()
	}

	s.stats.CameraResets = s.rig.Resets()

	sn := MakeSnapshot(s.rig.Current(), float64(s.width)/2, float64(s.height)/2, s.focal)
	if !sn.Valid() {
		// Corrupted camera state slipped through: reset the rig and keep
		// last frame's transforms rather than projecting garbage.
		s.rig.recover()
		s.stats.SkippedFrames++
		s.frame++
		return
	}
	s.sn = sn

	t0 := time.Now()
	s.projectAll()
	s.stats.Project = time.Since(t0)

	t0 = time.Now()
	s.cullAll()
	s.stats.Cull = time.Since(t0)

	t0 = time.Now()
	s.sortOrder()
	s.stats.Sort = time.Since(t0)

	c := s.frameCuller()
	s.star.rebuild(s.layout.Vault, &s.sn, &c)
	s.stats.VaultPoints = len(s.layout.Vault)
	s.stats.DrawnStars = s.star.drawn

	s.ov.resolve(s.focus.synLinks, float64(s.width)/2, s.endpointFor)

	t0 = time.Now()
	s.resolvePointer(now)
	s.stats.Resolve = time.Since(t0)

	s.tooltipTick(now)

	if s.OnUpdate != nil {
		s.OnUpdate(float64(dt))
	}

	s.stats.Frame = s.frame
	s.frame++
}

// advanceFades steps the live tween groups and compacts out finished ones.
func (s *Stage) advanceFades(dt float32) {
	if len(s.fades) == 0 {
		return
	}
	kept := s.fades[:0]
	for _, g := range s.fades {
		g.Update(dt)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	s.fades = kept
}

// rebuildLayout rebuilds node placement from the current inventory. Focus,
// hover and tooltip state referring to items that no longer exist is
// dropped.
func (s *Stage) rebuildLayout() {
	s.layout = BuildLayout(s.inv, s.defs, s.layoutCfg)
	s.dirty = false

	s.transforms = make([]Transform, len(s.layout.Nodes))
	s.order = s.order[:0]
	s.projected = false
	s.matches = compileFilter(s.filter, s.layout.Nodes)

	// A focused item that left the inventory releases focus without a
	// flight; the camera simply stays where it is.
	if key := s.focusKey(); key != "" && s.layout.NodeIndex(key) < 0 {
		s.focus.pendingKey = ""
		s.focus.lockedKey = ""
		if s.focus.mode == FocusLocked {
			s.focus.mode = FocusOrbit
		}
	}
	if s.focus.synSource != "" && s.layout.NodeIndex(s.focus.synSource) < 0 {
		s.focus.dropSynergy()
		s.ov.clear()
	}

	// Stale pointer identity is meaningless against the new layout; a press
	// in flight is swallowed rather than resolved against different items.
	s.pointer.hoverKey = ""
	s.pointer.hover = hitResult{}
	s.pointer.pressHit = hitResult{}
	s.pointer.pressKey = ""
	s.pointer.down = false
	s.pointer.dragging = false
	s.tip.reset()
}

// focusKey returns the locked or pending focus key, if any.
func (s *Stage) focusKey() string {
	if s.focus.lockedKey != "" {
		return s.focus.lockedKey
	}
	return s.focus.pendingKey
}

// frameCuller builds the culler for this frame from focus, filter and
// synergy state.
func (s *Stage) frameCuller() culler {
	var fs *filterSet
	if s.matches.active {
		fs = &s.matches
	}
	var members map[string]bool
	isolating := false
	if s.focus.synergyActive() {
		members = s.focus.synMembers
		isolating = s.focus.isolating
		// Hovering one wire narrows isolation to that link's endpoints, so
		// the rest of the graph recedes while the user reads the pairing.
		if link := s.ov.hoverLink; link >= 0 && link < len(s.focus.synLinks) {
			ln := &s.focus.synLinks[link]
			members = map[string]bool{
				s.focus.synSource: true,
				ln.Armor.Key():    true,
				ln.Weapon.Key():   true,
			}
		}
	}
	return makeCuller(s.perf, s.focal, fs, s.focusKey(), isolating, members)
}

// projectAll projects every node through this frame's snapshot.
func (s *Stage) projectAll() {
	for i, n := range s.layout.Nodes {
		pr := s.sn.Project(n.X, n.Y, n.Z)
		tr := &s.transforms[i]
		tr.Node = n
		tr.StageX = pr.StageX
		tr.StageY = pr.StageY
		tr.ScreenX = pr.ScreenX
		tr.ScreenY = pr.ScreenY
		tr.Scale = pr.Scale
		tr.FinalZ = pr.FinalZ
		tr.Visible = pr.Visible
		tr.Opacity = 0
		tr.LOD = LODDot
		tr.ZOrder = 0
	}
	s.projected = true
	s.stats.Nodes = len(s.layout.Nodes)
}

// cullAll resolves visibility, opacity and LOD for every node.
func (s *Stage) cullAll() {
	c := s.frameCuller()
	drawn := 0
	for i := range s.transforms {
		c.apply(i, &s.transforms[i])
		if s.transforms[i].Visible && s.transforms[i].Opacity > 0 {
			drawn++
		}
	}
	s.stats.DrawnNodes = drawn
}

// sortOrder rebuilds the painter order: indices of drawable transforms
// sorted by FinalZ ascending, deepest first.
func (s *Stage) sortOrder() {
	s.order = s.order[:0]
	for i := range s.transforms {
		if s.transforms[i].Visible && s.transforms[i].Opacity > 0 {
			s.order = append(s.order, i)
		}
	}
	s.mergeSortOrder()
	for rank, idx := range s.order {
		s.transforms[idx].ZOrder = rank
	}
}

// mergeSortOrder sorts s.order by FinalZ ascending using a bottom-up merge
// sort with a reused scratch buffer. Stable, so equal depths keep layout
// order and the frame-to-frame draw order never flickers.
func (s *Stage) mergeSortOrder() {
	n := len(s.order)
	if n < 2 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]int, n)
	}
	buf := s.sortBuf[:n]
	src := s.order
	dst := buf

	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := lo + width
			hi := mid + width
			if mid > n {
				mid = n
			}
			if hi > n {
				hi = n
			}
			i, j, k := lo, mid, lo
			for i < mid && j < hi {
				if s.transforms[src[i]].FinalZ <= s.transforms[src[j]].FinalZ {
					dst[k] = src[i]
					i++
				} else {
					dst[k] = src[j]
					j++
				}
				k++
			}
			for i < mid {
				dst[k] = src[i]
				i++
				k++
			}
			for j < hi {
				dst[k] = src[j]
				j++
				k++
			}
		}
		src, dst = dst, src
	}

	if &src[0] != &s.order[0] {
		copy(s.order, src)
	}
	s.sortBuf = buf
}

// endpointFor resolves a synergy wire endpoint to its screen position from
// this frame's transforms.
func (s *Stage) endpointFor(ref ItemRef) (x, y float64, ok bool) {
	i := s.layout.NodeIndex(ref.Key())
	if i < 0 || !s.projected {
		return 0, 0, false
	}
	tr := &s.transforms[i]
	return tr.ScreenX, tr.ScreenY, tr.Visible
}

// tooltipTick advances the tooltip timer against the camera speed.
func (s *Stage) tooltipTick(now time.Time) {
	s.tip.tick(now, s.rig.Speed())
}

// Dispose releases everything the stage holds: handlers, timers, frame
// buffers and the starfield layer. Update and Draw become no-ops afterwards;
// the stage cannot be revived.
func (s *Stage) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	s.handlers = handlerRegistry{}
	s.sink = nil
	s.synergyFor = nil
	s.OnUpdate = nil
	s.runner = nil

	s.tip.reset()
	s.fades = nil
	s.focus = focusState{}
	s.ov.clear()

	s.layout = Layout{}
	s.dirty = false
	s.projected = false
	s.transforms = nil
	s.order = nil
	s.sortBuf = nil
	s.samples = nil
	s.injectQueue = nil
	s.screenshotQueue = nil
	s.icons = nil
	s.star = starfield{}

	s.verts = nil
	s.inds = nil
	if s.starLayer != nil {
		s.starLayer.Deallocate()
		s.starLayer = nil
	}
}

// rotatePoint applies the camera's yaw/pitch rotation to a world position.
// Kept in lockstep with Snapshot.Project.
func rotatePoint(x, y, z float64, tilt Vec2) (rx, ry, rz float64) {
	sinYaw, cosYaw := math.Sincos(tilt.X * math.Pi / 180)
	sinPitch, cosPitch := math.Sincos(tilt.Y * math.Pi / 180)

	rx = x*cosYaw + z*sinYaw
	rz = -x*sinYaw + z*cosYaw
	ry = y*cosPitch - rz*sinPitch
	rz = y*sinPitch + rz*cosPitch
	return rx, ry, rz
}

// --- ebiten.Game adapter ---

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	Resizable  bool
	ShowHUD    bool // overlay frame statistics in the top-left corner
}

// stageGame adapts a Stage to ebiten.Game with a fixed logical size.
type stageGame struct {
	stage   *Stage
	showHUD bool
}

func (g *stageGame) Update() error {
	g.stage.Update()
	if g.stage.runner != nil && g.stage.runner.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *stageGame) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
	if g.showHUD {
		g.stage.DrawHUD(screen)
	}
}

func (g *stageGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.stage.width, g.stage.height
}

// Run opens a window and drives the stage until the window closes or an
// attached test runner finishes. Must be called from the main goroutine.
func Run(s *Stage, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = s.width, s.height
	}
	title := cfg.Title
	if title == "" {
		title = "galaxy"
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(&stageGame{stage: s, showHUD: cfg.ShowHUD}); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
