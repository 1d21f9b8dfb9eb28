package galaxy

import (
	"fmt"
	"math"
	"testing"
)

func layoutManifest() *Manifest {
	m := NewManifest()
	defs := []struct {
		hash uint32
		name string
		slot SlotType
		tier Tier
	}{
		{1, "Fatebringer", SlotPrimary, TierLegendary},
		{2, "Found Verdict", SlotSpecial, TierLegendary},
		{3, "Corrective Measure", SlotHeavy, TierLegendary},
		{4, "Helm of Saint-14", SlotHelmet, TierExotic},
		{5, "Kabr's Brazen Grips", SlotArms, TierLegendary},
		{6, "Kabr's Wrath", SlotChest, TierLegendary},
		{7, "Kabr's Forceful Greaves", SlotLegs, TierLegendary},
		{8, "Mark of the Vanguard", SlotClassItem, TierRare},
		{9, "Sentinel", SlotSubclass, TierCommon},
	}
	for _, d := range defs {
		def := ItemDef{Name: d.name, Icon: d.name, Slot: d.slot, Tier: d.tier}
		if d.tier == TierExotic {
			def.Watermark = WatermarkFeatured
		}
		m.Add(d.hash, def)
	}
	return m
}

func fullLoadout() InventorySnapshot {
	slots := []SlotType{
		SlotPrimary, SlotSpecial, SlotHeavy,
		SlotHelmet, SlotArms, SlotChest, SlotLegs, SlotClassItem,
		SlotSubclass,
	}
	inv := InventorySnapshot{}
	for i, slot := range slots {
		inv.Equipped = append(inv.Equipped, ItemState{
			Ref:  ItemRef{Hash: uint32(i + 1), InstanceID: fmt.Sprintf("eq-%s", slot)},
			Slot: slot,
		})
	}
	return inv
}

// --- equipped columns ---

func TestBuildLayoutEquippedColumns(t *testing.T) {
	l := BuildLayout(fullLoadout(), layoutManifest(), LayoutConfig{})
	if len(l.Nodes) != 9 {
		t.Fatalf("len(Nodes) = %d, want 9", len(l.Nodes))
	}

	tests := []struct {
		key  string
		x, y float64
	}{
		{"eq-primary", weaponColumnX, -equippedRowPitch},
		{"eq-special", weaponColumnX, 0},
		{"eq-heavy", weaponColumnX, equippedRowPitch},
		{"eq-helmet", armorColumnX, -2 * equippedRowPitch},
		{"eq-arms", armorColumnX, -equippedRowPitch},
		{"eq-chest", armorColumnX, 0},
		{"eq-legs", armorColumnX, equippedRowPitch},
		{"eq-classitem", armorColumnX, 2 * equippedRowPitch},
		{"eq-subclass", 0, 0},
	}
	for _, tt := range tests {
		n := l.Node(tt.key)
		if n == nil {
			t.Fatalf("node %q missing", tt.key)
		}
		assertNear(t, tt.key+" X", n.X, tt.x)
		assertNear(t, tt.key+" Y", n.Y, tt.y)
		assertNear(t, tt.key+" Z", n.Z, 0)
		if !n.Equipped {
			t.Errorf("%s: Equipped = false", tt.key)
		}
	}
}

func TestBuildLayoutNodeFields(t *testing.T) {
	inv := InventorySnapshot{Equipped: []ItemState{{
		Ref:        ItemRef{Hash: 4, InstanceID: "helm-1"},
		Slot:       SlotHelmet,
		Element:    ElementSolar,
		Power:      1810,
		Masterwork: true,
	}}}
	l := BuildLayout(inv, layoutManifest(), LayoutConfig{})

	n := l.Node("helm-1")
	if n == nil {
		t.Fatal("node missing")
	}
	if n.Name != "Helm of Saint-14" || n.Tier != TierExotic || n.Watermark != WatermarkFeatured {
		t.Errorf("definition not resolved: %+v", n)
	}
	if n.Kind != KindArmor || n.Element != ElementSolar || n.Power != 1810 || !n.Masterwork {
		t.Errorf("instance state not carried: %+v", n)
	}
	assertNear(t, "IconSize", n.IconSize, DefaultIconSize)
}

func TestBuildLayoutIconSizeOverride(t *testing.T) {
	l := BuildLayout(fullLoadout(), layoutManifest(), LayoutConfig{IconSize: 64})
	for _, n := range l.Nodes {
		if n.IconSize != 64 {
			t.Fatalf("IconSize = %v, want 64", n.IconSize)
		}
	}
}

func TestBuildLayoutLODHints(t *testing.T) {
	inv := fullLoadout()
	inv.Carried = []ItemState{
		{Ref: ItemRef{Hash: 4, InstanceID: "c-exotic"}, Slot: SlotHelmet},
		{Ref: ItemRef{Hash: 1, InstanceID: "c-plain"}, Slot: SlotPrimary},
	}
	l := BuildLayout(inv, layoutManifest(), LayoutConfig{})

	// Equipped gear and exotics keep at least icon detail at any depth.
	for _, n := range l.Nodes[:9] {
		if n.LODHint != LODIcon {
			t.Errorf("equipped %s hint = %v, want the icon floor", n.Key, n.LODHint)
		}
	}
	if n := l.Node("c-exotic"); n.LODHint != LODIcon {
		t.Errorf("carried exotic hint = %v, want the icon floor", n.LODHint)
	}
	if n := l.Node("c-plain"); n.LODHint != LODDot {
		t.Errorf("carried legendary hint = %v, want none", n.LODHint)
	}
}

// --- carried scatter ---

func TestBuildLayoutCarriedScatter(t *testing.T) {
	inv := InventorySnapshot{}
	for i := 0; i < 20; i++ {
		inv.Carried = append(inv.Carried, ItemState{
			Ref:  ItemRef{Hash: 1, InstanceID: fmt.Sprintf("w-%d", i)},
			Slot: SlotPrimary,
		})
		inv.Carried = append(inv.Carried, ItemState{
			Ref:  ItemRef{Hash: 6, InstanceID: fmt.Sprintf("a-%d", i)},
			Slot: SlotChest,
		})
	}
	l := BuildLayout(inv, layoutManifest(), LayoutConfig{Seed: 11})

	for _, n := range l.Nodes {
		colX := weaponColumnX
		if n.Kind == KindArmor {
			colX = armorColumnX
		}
		if math.Abs(n.X-colX) > carriedSpreadX {
			t.Errorf("%s: X = %v, too far from column %v", n.Key, n.X, colX)
		}
		if math.Abs(n.Y) > carriedSpreadY {
			t.Errorf("%s: Y = %v out of range", n.Key, n.Y)
		}
		if n.Z > carriedNearZ || n.Z <= carriedNearZ-carriedDepth {
			t.Errorf("%s: Z = %v, want (%v, %v]", n.Key, n.Z, carriedNearZ-carriedDepth, carriedNearZ)
		}
		if n.Equipped {
			t.Errorf("%s: carried item marked equipped", n.Key)
		}
	}
}

func TestBuildLayoutSubclassSpiral(t *testing.T) {
	// Subclasses take spiral seats in carried order, skipping other kinds.
	inv := InventorySnapshot{Carried: []ItemState{
		{Ref: ItemRef{Hash: 1, InstanceID: "w-0"}, Slot: SlotPrimary},
		{Ref: ItemRef{Hash: 9, InstanceID: "sub-a"}, Slot: SlotSubclass},
		{Ref: ItemRef{Hash: 6, InstanceID: "a-0"}, Slot: SlotChest},
		{Ref: ItemRef{Hash: 9, InstanceID: "sub-b"}, Slot: SlotSubclass},
	}}
	l := BuildLayout(inv, layoutManifest(), LayoutConfig{Seed: 3})

	a := l.Node("sub-a")
	assertNear(t, "sub-a X", a.X, subclassSpiralRadius)
	assertNear(t, "sub-a Y", a.Y, 0)
	assertNear(t, "sub-a Z", a.Z, subclassSpiralNearZ)

	b := l.Node("sub-b")
	radius := subclassSpiralRadius + subclassSpiralGrow
	assertNear(t, "sub-b X", b.X, math.Cos(subclassSpiralAngle)*radius)
	assertNear(t, "sub-b Y", b.Y, math.Sin(subclassSpiralAngle)*radius*0.6)
	assertNear(t, "sub-b Z", b.Z, subclassSpiralNearZ-subclassSpiralPitch)
}

// --- determinism ---

func TestBuildLayoutDeterministic(t *testing.T) {
	inv := fullLoadout()
	for i := 0; i < 30; i++ {
		inv.Carried = append(inv.Carried, ItemState{
			Ref:  ItemRef{Hash: 2, InstanceID: fmt.Sprintf("c-%d", i)},
			Slot: SlotSpecial,
		})
		inv.Vault = append(inv.Vault, ItemState{
			Ref:  ItemRef{Hash: 3, InstanceID: fmt.Sprintf("v-%d", i)},
			Slot: SlotHeavy,
		})
	}
	cfg := LayoutConfig{Mode: LayoutRandom, Seed: 99}

	a := BuildLayout(inv, layoutManifest(), cfg)
	b := BuildLayout(inv, layoutManifest(), cfg)

	if len(a.Nodes) != len(b.Nodes) || len(a.Vault) != len(b.Vault) {
		t.Fatal("rebuild changed counts")
	}
	for i := range a.Nodes {
		if *a.Nodes[i] != *b.Nodes[i] {
			t.Fatalf("node %d differs: %+v vs %+v", i, a.Nodes[i], b.Nodes[i])
		}
	}
	for i := range a.Vault {
		if a.Vault[i] != b.Vault[i] {
			t.Fatalf("vault point %d differs", i)
		}
	}
}

func TestBuildLayoutSeedMovesScatteredOnly(t *testing.T) {
	inv := fullLoadout()
	for i := 0; i < 10; i++ {
		inv.Carried = append(inv.Carried, ItemState{
			Ref:  ItemRef{Hash: 2, InstanceID: fmt.Sprintf("c-%d", i)},
			Slot: SlotSpecial,
		})
	}
	a := BuildLayout(inv, layoutManifest(), LayoutConfig{Seed: 1})
	b := BuildLayout(inv, layoutManifest(), LayoutConfig{Seed: 2})

	// Equipped positions are seed-independent.
	for i := range a.Nodes[:9] {
		if a.Nodes[i].X != b.Nodes[i].X || a.Nodes[i].Y != b.Nodes[i].Y {
			t.Errorf("equipped node %d moved with the seed", i)
		}
	}

	moved := 0
	for i := 9; i < len(a.Nodes); i++ {
		if a.Nodes[i].X != b.Nodes[i].X || a.Nodes[i].Z != b.Nodes[i].Z {
			moved++
		}
	}
	if moved < 8 {
		t.Errorf("only %d of 10 carried nodes moved with the seed", moved)
	}
}

// --- vault placement ---

func TestBuildLayoutVaultRandomBounds(t *testing.T) {
	inv := InventorySnapshot{}
	for i := 0; i < 200; i++ {
		inv.Vault = append(inv.Vault, ItemState{
			Ref:  ItemRef{Hash: 1, InstanceID: fmt.Sprintf("v-%d", i)},
			Slot: SlotType(i % 9),
		})
	}
	l := BuildLayout(inv, layoutManifest(), LayoutConfig{Mode: LayoutRandom, Seed: 5})

	if len(l.Vault) != 200 {
		t.Fatalf("len(Vault) = %d, want 200", len(l.Vault))
	}
	for _, p := range l.Vault {
		if p.X < vaultXRange.Min || p.X >= vaultXRange.Max {
			t.Errorf("%s: X = %v out of range", p.Key, p.X)
		}
		if p.Y < vaultYRange.Min || p.Y >= vaultYRange.Max {
			t.Errorf("%s: Y = %v out of range", p.Key, p.Y)
		}
		if p.Z < vaultZRange.Min || p.Z >= vaultZRange.Max {
			t.Errorf("%s: Z = %v out of range", p.Key, p.Z)
		}
	}
}

func TestBuildLayoutVaultOrganizedShells(t *testing.T) {
	inv := InventorySnapshot{}
	for i := 0; i < 60; i++ {
		inv.Vault = append(inv.Vault, ItemState{
			Ref:  ItemRef{Hash: 1, InstanceID: fmt.Sprintf("p-%d", i)},
			Slot: SlotPrimary,
		})
	}
	for i := 0; i < 3; i++ {
		inv.Vault = append(inv.Vault, ItemState{
			Ref:  ItemRef{Hash: 3, InstanceID: fmt.Sprintf("h-%d", i)},
			Slot: SlotHeavy,
		})
	}
	l := BuildLayout(inv, layoutManifest(), LayoutConfig{Mode: LayoutOrganized, Seed: 7})

	for i, p := range l.Vault {
		var slot SlotType
		var ord int
		if i < 60 {
			slot, ord = SlotPrimary, i
		} else {
			slot, ord = SlotHeavy, i-60
		}
		base := organizedBaseZ - float64(slot)*organizedShellGap -
			float64(ord/organizedBucketSize)*organizedBucketGap
		if math.Abs(p.Z-base) > 200 {
			t.Errorf("%s: Z = %v, want within 200 of %v", p.Key, p.Z, base)
		}
		if math.Abs(p.X) > organizedDiscRadius {
			t.Errorf("%s: X = %v outside disc", p.Key, p.X)
		}
		if math.Abs(p.Y) > organizedDiscRadius*organizedDiscSquash {
			t.Errorf("%s: Y = %v outside squashed disc", p.Key, p.Y)
		}
	}
}

func TestBuildLayoutVaultUnknownSlot(t *testing.T) {
	// Slot values past the known range fold into the last shell.
	inv := InventorySnapshot{Vault: []ItemState{
		{Ref: ItemRef{Hash: 1, InstanceID: "v-next"}, Slot: SlotType(40)},
		{Ref: ItemRef{Hash: 9, InstanceID: "v-sub"}, Slot: SlotSubclass},
	}}
	l := BuildLayout(inv, layoutManifest(), LayoutConfig{Mode: LayoutOrganized, Seed: 3})

	if len(l.Vault) != 2 {
		t.Fatalf("len(Vault) = %d, want 2", len(l.Vault))
	}
	shell := organizedBaseZ - float64(SlotSubclass)*organizedShellGap
	for _, p := range l.Vault {
		if math.Abs(p.Z-shell) > 200 {
			t.Errorf("%s: Z = %v, want within 200 of %v", p.Key, p.Z, shell)
		}
	}
}

func TestVaultPointAppearance(t *testing.T) {
	m := NewManifest()
	m.Add(301, ItemDef{Name: "Gjallarhorn", Slot: SlotHeavy, Tier: TierExotic})
	m.Add(302, ItemDef{Name: "Baseline", Slot: SlotPrimary, Tier: TierCommon})

	inv := InventorySnapshot{Vault: []ItemState{
		{Ref: ItemRef{Hash: 301, InstanceID: "g-1"}, Slot: SlotHeavy, Element: ElementSolar},
		{Ref: ItemRef{Hash: 302, InstanceID: "b-1"}, Slot: SlotPrimary, Element: ElementKinetic, Masterwork: true},
		{Ref: ItemRef{Hash: 999, InstanceID: "u-1"}, Slot: SlotChest, Crafted: true},
	}}
	l := BuildLayout(inv, m, LayoutConfig{})

	g := l.Vault[0]
	if !g.Exotic || g.Bright {
		t.Errorf("exotic point flags = %+v", g)
	}
	assertNear(t, "exotic alpha", g.Color.A, 0.35+0.13*float64(TierExotic))
	solar := ElementSolar.Color()
	if g.Color.R != solar.R || g.Color.G != solar.G || g.Color.B != solar.B {
		t.Errorf("exotic point color = %+v, want solar", g.Color)
	}

	b := l.Vault[1]
	if b.Exotic || !b.Bright {
		t.Errorf("masterwork point flags = %+v", b)
	}
	assertNear(t, "common alpha", b.Color.A, 0.35)

	// Unresolvable definitions fall back to the common tier.
	u := l.Vault[2]
	if u.Exotic || !u.Bright {
		t.Errorf("placeholder point flags = %+v", u)
	}
	assertNear(t, "placeholder alpha", u.Color.A, 0.35)
}

// --- lookup ---

func TestLayoutLookup(t *testing.T) {
	l := BuildLayout(fullLoadout(), layoutManifest(), LayoutConfig{})

	if i := l.NodeIndex("eq-primary"); i != 0 {
		t.Errorf("NodeIndex(eq-primary) = %d, want 0", i)
	}
	if l.NodeIndex("nope") != -1 {
		t.Error("unknown key should index -1")
	}
	if l.Node("nope") != nil {
		t.Error("unknown key should resolve nil")
	}
}

func TestLayoutDuplicateKeyFirstWins(t *testing.T) {
	inv := InventorySnapshot{Carried: []ItemState{
		{Ref: ItemRef{Hash: 1, InstanceID: "dup"}, Slot: SlotPrimary},
		{Ref: ItemRef{Hash: 3, InstanceID: "dup"}, Slot: SlotHeavy},
	}}
	l := BuildLayout(inv, layoutManifest(), LayoutConfig{})

	if len(l.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(l.Nodes))
	}
	if i := l.NodeIndex("dup"); i != 0 {
		t.Errorf("NodeIndex(dup) = %d, want first occurrence", i)
	}
	if l.Node("dup").Slot != SlotPrimary {
		t.Error("lookup should resolve the first occurrence")
	}
}

func TestLayoutVaultKeysNotIndexed(t *testing.T) {
	inv := InventorySnapshot{Vault: []ItemState{
		{Ref: ItemRef{Hash: 1, InstanceID: "v-1"}, Slot: SlotPrimary},
	}}
	l := BuildLayout(inv, layoutManifest(), LayoutConfig{})
	if l.NodeIndex("v-1") != -1 {
		t.Error("vault points must not enter the node index")
	}
}
