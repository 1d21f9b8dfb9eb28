package galaxy

import "math"

// Equipped column geometry. Weapons stack on the left, armor on the right,
// rows spaced by the vertical pitch and centered on the origin. The equipped
// subclass sits at the world origin itself.
const (
	weaponColumnX    = -550.0
	armorColumnX     = 550.0
	equippedRowPitch = 220.0

	// Carried items scatter near their kind's column, slightly behind the
	// equipped plane so equipped gear always reads in front.
	carriedSpreadX = 340.0
	carriedSpreadY = 700.0
	carriedNearZ   = -250.0
	carriedDepth   = 1400.0

	// Unequipped subclasses wind down a spiral behind the equipped one.
	subclassSpiralAngle  = 2.39996 // golden angle, radians
	subclassSpiralRadius = 160.0
	subclassSpiralGrow   = 40.0
	subclassSpiralPitch  = 260.0
	subclassSpiralNearZ  = -300.0

	// DefaultIconSize is the untransformed icon edge length.
	DefaultIconSize = 96.0
)

// Vault scatter volume (random mode).
var (
	vaultXRange = Range{Min: -2600, Max: 2600}
	vaultYRange = Range{Min: -1500, Max: 1500}
	vaultZRange = Range{Min: -30000, Max: -1500}
)

// Organized-mode vault geometry: one shell of buckets per slot type, shells
// stacked by depth, buckets within a shell stepping deeper as they fill.
const (
	organizedBaseZ      = -2000.0
	organizedShellGap   = 3500.0
	organizedBucketGap  = 900.0
	organizedBucketSize = 48
	organizedDiscRadius = 900.0
	organizedDiscSquash = 0.55
)

// LayoutConfig controls a layout build.
type LayoutConfig struct {
	Mode LayoutMode
	Seed int64

	// IconSize overrides DefaultIconSize when positive.
	IconSize float64
}

// VaultPoint is one vault item rendered as a background star. Vault items
// are points, not nodes: no icon, no per-point focus, hit-testable only
// through the coarse starfield fallback.
type VaultPoint struct {
	Ref     ItemRef
	Key     string
	X, Y, Z float64
	Color   Color
	Exotic  bool
	Bright  bool // masterworked or crafted: slightly larger, brighter dot
}

// Layout is the output of a build: interactive nodes, vault points, and a
// key index for lookup. It is immutable once returned; the stage swaps whole
// layouts on inventory change.
type Layout struct {
	Nodes []*WorldNode
	Vault []VaultPoint

	index map[string]int
}

// NodeIndex returns the index of the node with the given key, or -1.
func (l *Layout) NodeIndex(key string) int {
	if i, ok := l.index[key]; ok {
		return i
	}
	return -1
}

// Node returns the node with the given key, or nil.
func (l *Layout) Node(key string) *WorldNode {
	if i, ok := l.index[key]; ok {
		return l.Nodes[i]
	}
	return nil
}

// BuildLayout places every item in the snapshot and returns the finished
// layout. The build is pure and deterministic: the same snapshot, defs and
// config always produce identical positions, across runs and platforms.
// Placement derives only from item identity and slice order — never from map
// iteration.
func BuildLayout(inv InventorySnapshot, defs DefSource, cfg LayoutConfig) Layout {
	iconSize := cfg.IconSize
	if iconSize <= 0 {
		iconSize = DefaultIconSize
	}

	l := Layout{
		Nodes: make([]*WorldNode, 0, len(inv.Equipped)+len(inv.Carried)),
		Vault: make([]VaultPoint, 0, len(inv.Vault)),
		index: make(map[string]int, len(inv.Equipped)+len(inv.Carried)),
	}

	for i := range inv.Equipped {
		n := makeNode(&inv.Equipped[i], defs, iconSize)
		n.Equipped = true
		if n.LODHint < LODIcon {
			n.LODHint = LODIcon
		}
		placeEquipped(n)
		l.append(n)
	}

	spiralIdx := 0
	for i := range inv.Carried {
		n := makeNode(&inv.Carried[i], defs, iconSize)
		if n.Kind == KindSubclass {
			placeSpiral(n, spiralIdx)
			spiralIdx++
		} else {
			placeCarried(n, cfg.Seed)
		}
		l.append(n)
	}

	counts := [len(slotNames)]int{}
	for i := range inv.Vault {
		it := &inv.Vault[i]
		def := resolveDef(defs, it.Ref)
		slot := it.Slot
		// Slot values newer than this build knows fold into the last shell.
		if int(slot) >= len(slotNames) {
			slot = SlotSubclass
		}
		ord := counts[slot]
		counts[slot]++
		l.Vault = append(l.Vault, makeVaultPoint(it, def, cfg, slot, ord))
	}

	return l
}

func (l *Layout) append(n *WorldNode) {
	l.Nodes = append(l.Nodes, n)
	if _, exists := l.index[n.Key]; !exists {
		l.index[n.Key] = len(l.Nodes) - 1
	}
}

func makeNode(it *ItemState, defs DefSource, iconSize float64) *WorldNode {
	def := resolveDef(defs, it.Ref)
	n := &WorldNode{
		Ref:        it.Ref,
		Key:        it.Ref.Key(),
		Kind:       it.Slot.Kind(),
		Slot:       it.Slot,
		Tier:       def.Tier,
		Element:    it.Element,
		Power:      it.Power,
		Masterwork: it.Masterwork,
		Crafted:    it.Crafted,
		Enhanced:   it.Enhanced,
		Watermark:  def.Watermark,
		Name:       def.Name,
		Icon:       def.Icon,
		IconSize:   iconSize,
	}
	// Exotics stay recognizable at distance; the equipped loop raises its
	// nodes the same way.
	if def.Tier == TierExotic {
		n.LODHint = LODIcon
	}
	return n
}

// placeEquipped pins an equipped item to its column row at depth zero. The
// equipped subclass takes the world origin.
func placeEquipped(n *WorldNode) {
	switch n.Kind {
	case KindWeapon:
		n.X = weaponColumnX
		n.Y = float64(n.Slot.row()-1) * equippedRowPitch
	case KindArmor:
		n.X = armorColumnX
		n.Y = float64(n.Slot.row()-2) * equippedRowPitch
	default:
		n.X, n.Y = 0, 0
	}
	n.Z = 0
}

// placeCarried scatters an unequipped weapon or armor piece near its kind's
// column, behind the equipped plane.
func placeCarried(n *WorldNode, seed int64) {
	colX := weaponColumnX
	if n.Kind == KindArmor {
		colX = armorColumnX
	}
	n.X = colX + scatterSigned(n.Key, saltCarriedX, seed)*carriedSpreadX
	n.Y = scatterSigned(n.Key, saltCarriedY, seed) * carriedSpreadY
	n.Z = carriedNearZ - scatter01(n.Key, saltCarriedZ, seed)*carriedDepth
}

// placeSpiral puts the i-th unequipped subclass on the center spiral.
func placeSpiral(n *WorldNode, i int) {
	angle := float64(i) * subclassSpiralAngle
	radius := subclassSpiralRadius + float64(i)*subclassSpiralGrow
	n.X = math.Cos(angle) * radius
	n.Y = math.Sin(angle) * radius * 0.6
	n.Z = subclassSpiralNearZ - float64(i)*subclassSpiralPitch
}

func makeVaultPoint(it *ItemState, def ItemDef, cfg LayoutConfig, slot SlotType, ord int) VaultPoint {
	p := VaultPoint{
		Ref:    it.Ref,
		Key:    it.Ref.Key(),
		Exotic: def.Tier == TierExotic,
		Bright: it.Masterwork || it.Crafted,
	}

	c := it.Element.Color()
	// Rarer tiers read brighter against the void.
	c.A = 0.35 + 0.13*float64(def.Tier)
	p.Color = c

	if cfg.Mode == LayoutRandom {
		p.X = scatterIn(p.Key, saltVaultX, cfg.Seed, vaultXRange)
		p.Y = scatterIn(p.Key, saltVaultY, cfg.Seed, vaultYRange)
		p.Z = scatterIn(p.Key, saltVaultZ, cfg.Seed, vaultZRange)
		return p
	}

	// Organized mode: slot shells at increasing depth, each shell a stack of
	// flattened discs filled in arrival order.
	bucket := ord / organizedBucketSize
	angle := scatter01(p.Key, saltBucketAngle, cfg.Seed) * 2 * math.Pi
	radius := math.Sqrt(scatter01(p.Key, saltBucketRadius, cfg.Seed)) * organizedDiscRadius
	jitter := scatterSigned(p.Key, saltBucketDepth, cfg.Seed) * 200

	p.X = math.Cos(angle) * radius
	p.Y = math.Sin(angle) * radius * organizedDiscSquash
	p.Z = organizedBaseZ - float64(slot)*organizedShellGap - float64(bucket)*organizedBucketGap + jitter
	return p
}
