// galaxyfield renders a synthetic character inventory as a navigable item
// galaxy: equipped gear pinned in two columns, carried items scattered in
// depth, and a few thousand vault items as a distant starfield. All icons
// are procedural — no external assets are required.
//
// Configuration comes from the environment:
//
//	GALAXY_SEED=7 GALAXY_VAULT=5000 GALAXY_MODE=random go run ./demos/galaxyfield
package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand/v2"

	"github.com/caarlos0/env/v11"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/galaxy"
)

// config is read from the environment; unset variables fall back to their
// envDefault values.
type config struct {
	Seed    int64  `env:"GALAXY_SEED"    envDefault:"7"`
	Carried int    `env:"GALAXY_CARRIED" envDefault:"72"`
	Vault   int    `env:"GALAXY_VAULT"   envDefault:"3000"`
	Mode    string `env:"GALAXY_MODE"    envDefault:"organized"`
	Perf    string `env:"GALAXY_PERF"    envDefault:"full"`
	Width   int    `env:"GALAXY_WIDTH"   envDefault:"1280"`
	Height  int    `env:"GALAXY_HEIGHT"  envDefault:"720"`
	Debug   bool   `env:"GALAXY_DEBUG"`
}

const iconPx = 64

var weaponWords = [...]string{
	"Verdict", "Promise", "Requiem", "Lament", "Oath", "Hymn",
	"Vigil", "Reckoner", "Epitaph", "Cadence", "Warden", "Spire",
}

var weaponPrefixes = [...]string{
	"Hollow", "Radiant", "Silent", "Vexed", "Ashen", "Gilded",
	"Umbral", "Keen", "Feral", "Sovereign",
}

var armorWords = [...]string{
	"Helm", "Gauntlets", "Plate", "Greaves", "Mark",
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	stage := galaxy.NewStage(cfg.Width, cfg.Height)
	stage.SetDebug(cfg.Debug)
	stage.SetSeed(cfg.Seed)

	switch cfg.Mode {
	case "organized":
		stage.SetLayoutMode(galaxy.LayoutOrganized)
	case "random":
		stage.SetLayoutMode(galaxy.LayoutRandom)
	default:
		log.Fatalf("GALAXY_MODE must be organized or random, got %q", cfg.Mode)
	}
	switch cfg.Perf {
	case "full":
		stage.SetPerfMode(galaxy.PerfFull)
	case "reduced":
		stage.SetPerfMode(galaxy.PerfReduced)
	default:
		log.Fatalf("GALAXY_PERF must be full or reduced, got %q", cfg.Perf)
	}

	gen := newGenerator(cfg.Seed)
	inv := gen.inventory(cfg.Carried, cfg.Vault)
	stage.SetDefs(gen.defs)
	stage.SetInventory(inv)
	stage.SetSynergyProvider(buildSynergies(inv))
	registerElementIcons(stage)

	fmt.Println("galaxyfield controls:")
	fmt.Println("  left-drag pan | middle-drag orbit | wheel zoom | WASD pan | arrows rotate")
	fmt.Println("  left-click item: lock focus | left-click empty: release")
	fmt.Println("  right-click exotic or subclass: synergy overlay (right-click again to exit)")
	fmt.Println("  Home: reset view | Escape: exit overlay / release focus")

	if err := galaxy.Run(stage, galaxy.RunConfig{
		Title:   "Galaxy — Inventory Field",
		Width:   cfg.Width,
		Height:  cfg.Height,
		ShowHUD: true,
	}); err != nil {
		log.Fatal(err)
	}
}

// generator fabricates item definitions and instances. Sequential hashes,
// names from word lists, deterministic for a given seed.
type generator struct {
	rng  *rand.Rand
	defs *galaxy.Manifest
	next uint32
}

func newGenerator(seed int64) *generator {
	return &generator{
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)+1)),
		defs: galaxy.NewManifest(),
		next: 1,
	}
}

// item mints one definition and one instance of it in the given slot.
func (g *generator) item(slot galaxy.SlotType, equipped bool) galaxy.ItemState {
	hash := g.next
	g.next++

	elem := g.element()
	tier := g.tier()
	g.defs.Add(hash, galaxy.ItemDef{
		Name:    g.name(slot, tier),
		Icon:    "disc-" + elem.String(),
		Slot:    slot,
		Element: elem,
		Tier:    tier,
	})

	return galaxy.ItemState{
		Ref:        galaxy.ItemRef{Hash: hash, InstanceID: fmt.Sprintf("itm-%d", hash)},
		Slot:       slot,
		Element:    elem,
		Power:      1800 + g.rng.IntN(210),
		Equipped:   equipped,
		Masterwork: g.rng.IntN(6) == 0,
		Crafted:    g.rng.IntN(9) == 0,
	}
}

func (g *generator) name(slot galaxy.SlotType, tier galaxy.Tier) string {
	switch slot.Kind() {
	case galaxy.KindWeapon:
		base := weaponPrefixes[g.rng.IntN(len(weaponPrefixes))] + " " +
			weaponWords[g.rng.IntN(len(weaponWords))]
		if tier == galaxy.TierExotic {
			return "The " + base
		}
		return base
	case galaxy.KindArmor:
		word := armorWords[int(slot-galaxy.SlotHelmet)%len(armorWords)]
		return word + " of the " + weaponPrefixes[g.rng.IntN(len(weaponPrefixes))]
	default:
		return "Path of " + weaponWords[g.rng.IntN(len(weaponWords))]
	}
}

func (g *generator) element() galaxy.Element {
	return galaxy.Element(g.rng.IntN(int(galaxy.ElementPrismatic) + 1))
}

// tier skews the distribution toward legendary with a thin exotic tail.
func (g *generator) tier() galaxy.Tier {
	switch r := g.rng.IntN(20); {
	case r == 0:
		return galaxy.TierExotic
	case r < 14:
		return galaxy.TierLegendary
	case r < 18:
		return galaxy.TierRare
	default:
		return galaxy.TierUncommon
	}
}

func (g *generator) randomSlot() galaxy.SlotType {
	return galaxy.SlotType(g.rng.IntN(int(galaxy.SlotClassItem) + 1))
}

// inventory builds a full snapshot: one equipped item per slot, the requested
// number of carried items, and the vault field.
func (g *generator) inventory(carried, vault int) galaxy.InventorySnapshot {
	var inv galaxy.InventorySnapshot
	for slot := galaxy.SlotPrimary; slot <= galaxy.SlotSubclass; slot++ {
		inv.Equipped = append(inv.Equipped, g.item(slot, true))
	}
	for range carried {
		inv.Carried = append(inv.Carried, g.item(g.randomSlot(), false))
	}
	for range vault {
		inv.Vault = append(inv.Vault, g.item(g.randomSlot(), false))
	}
	return inv
}

// buildSynergies precomputes an armor→weapon link table for every eligible
// source: each exotic or subclass pairs the character's armor and weapons
// that share its element, capped at six wires per source.
func buildSynergies(inv galaxy.InventorySnapshot) galaxy.SynergyProvider {
	byElement := func(kind galaxy.Kind) map[galaxy.Element][]galaxy.ItemRef {
		out := make(map[galaxy.Element][]galaxy.ItemRef)
		for _, list := range [][]galaxy.ItemState{inv.Equipped, inv.Carried} {
			for _, it := range list {
				if it.Slot.Kind() == kind {
					out[it.Element] = append(out[it.Element], it.Ref)
				}
			}
		}
		return out
	}
	armor := byElement(galaxy.KindArmor)
	weapons := byElement(galaxy.KindWeapon)

	table := make(map[string][]galaxy.SynergyLink)
	add := func(it galaxy.ItemState) {
		a, w := armor[it.Element], weapons[it.Element]
		var links []galaxy.SynergyLink
		for i := 0; i < len(a) && i < len(w) && i < 6; i++ {
			links = append(links, galaxy.SynergyLink{
				Armor:   a[i],
				Weapon:  w[i],
				Element: it.Element,
			})
		}
		if len(links) > 0 {
			table[it.Ref.Key()] = links
		}
	}
	for _, it := range inv.Equipped {
		add(it)
	}
	for _, it := range inv.Carried {
		add(it)
	}

	return func(source galaxy.ItemRef) []galaxy.SynergyLink {
		return table[source.Key()]
	}
}

// registerElementIcons builds one soft-disc icon per element so every node
// renders textured without shipping image assets.
func registerElementIcons(stage *galaxy.Stage) {
	for e := galaxy.ElementKinetic; e <= galaxy.ElementPrismatic; e++ {
		stage.RegisterIcon("disc-"+e.String(), makeDiscIcon(e.Color()))
	}
}

// makeDiscIcon renders a radial-falloff disc tinted with the element color.
// Pixels are premultiplied by hand so linear filtering doesn't fringe.
func makeDiscIcon(tint galaxy.Color) *ebiten.Image {
	img := ebiten.NewImage(iconPx, iconPx)
	center := float64(iconPx) / 2
	for y := 0; y < iconPx; y++ {
		for x := 0; x < iconPx; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			dist := math.Sqrt(dx*dx+dy*dy) / center
			if dist >= 1 {
				continue
			}
			alpha := math.Min(1, (1-dist)*4)
			// Brighten toward the center to fake a highlight.
			boost := 1 - 0.6*dist
			r := math.Min(1, tint.R*boost+0.25*(1-dist))
			g := math.Min(1, tint.G*boost+0.25*(1-dist))
			b := math.Min(1, tint.B*boost+0.25*(1-dist))
			img.Set(x, y, color.RGBA{
				R: uint8(r * alpha * 255),
				G: uint8(g * alpha * 255),
				B: uint8(b * alpha * 255),
				A: uint8(alpha * 255),
			})
		}
	}
	return img
}
