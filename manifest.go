package galaxy

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
)

// ItemDef is the static definition of an item: the display data the host's
// manifest knows about a hash, independent of any rolled instance.
type ItemDef struct {
	Name      string
	Icon      string // icon key for RegisterIcon; empty means untextured quad
	Slot      SlotType
	Element   Element
	Tier      Tier
	Watermark Watermark
}

// DefSource resolves item definition hashes. The layout builder accepts any
// DefSource; Manifest is the JSON-backed implementation.
type DefSource interface {
	Lookup(hash uint32) (ItemDef, bool)
}

// Manifest holds item definitions keyed by hash.
type Manifest struct {
	defs map[uint32]ItemDef
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{defs: make(map[uint32]ItemDef)}
}

// Add inserts or replaces one definition.
func (m *Manifest) Add(hash uint32, def ItemDef) {
	m.defs[hash] = def
}

// Len returns the number of definitions.
func (m *Manifest) Len() int {
	return len(m.defs)
}

// Lookup returns the definition for hash, if present.
func (m *Manifest) Lookup(hash uint32) (ItemDef, bool) {
	def, ok := m.defs[hash]
	return def, ok
}

// resolveDef returns the definition for an item, or a visible placeholder
// when the manifest has no entry. Missing definitions must not take down the
// layout build: the item still occupies its slot, it just renders unnamed.
func resolveDef(defs DefSource, ref ItemRef) ItemDef {
	if defs != nil {
		if def, ok := defs.Lookup(ref.Hash); ok {
			return def
		}
	}
	if globalDebug {
		log.Printf("galaxy: no definition for item hash %d, using placeholder", ref.Hash)
	}
	return ItemDef{Name: "#" + strconv.FormatUint(uint64(ref.Hash), 10)}
}

// --- JSON structure types ---

type jsonItemDef struct {
	Hash      uint32 `json:"hash"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Slot      string `json:"slot"`
	Element   string `json:"element"`
	Tier      string `json:"tier"`
	Watermark string `json:"watermark"`
}

// LoadManifest parses manifest JSON of the form
//
//	{"items": [{"hash": 1, "name": "...", "icon": "...", "slot": "special",
//	            "element": "solar", "tier": "exotic"}, ...]}
//
// Unknown slot/element/tier/watermark strings are errors; an absent
// watermark is WatermarkNone; duplicate hashes keep the last entry.
func LoadManifest(jsonData []byte) (*Manifest, error) {
	var doc struct {
		Items []jsonItemDef `json:"items"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("galaxy: failed to parse manifest JSON: %w", err)
	}
	if doc.Items == nil {
		return nil, fmt.Errorf("galaxy: manifest JSON has no \"items\" key")
	}

	m := NewManifest()
	for i, it := range doc.Items {
		if it.Hash == 0 {
			return nil, fmt.Errorf("galaxy: manifest item %d has no hash", i)
		}
		slot, err := ParseSlot(it.Slot)
		if err != nil {
			return nil, fmt.Errorf("galaxy: manifest item %d: %w", i, err)
		}
		elem, err := ParseElement(it.Element)
		if err != nil {
			return nil, fmt.Errorf("galaxy: manifest item %d: %w", i, err)
		}
		tier, err := ParseTier(it.Tier)
		if err != nil {
			return nil, fmt.Errorf("galaxy: manifest item %d: %w", i, err)
		}
		wm, err := ParseWatermark(it.Watermark)
		if err != nil {
			return nil, fmt.Errorf("galaxy: manifest item %d: %w", i, err)
		}
		m.Add(it.Hash, ItemDef{
			Name:      it.Name,
			Icon:      it.Icon,
			Slot:      slot,
			Element:   elem,
			Tier:      tier,
			Watermark: wm,
		})
	}
	return m, nil
}
