package galaxy

import (
	"fmt"
	"strconv"
)

// ItemRef identifies an inventory item. Hash refers to the item definition;
// InstanceID distinguishes individual rolls of the same definition and may be
// empty for stacked or definition-only items.
type ItemRef struct {
	Hash       uint32
	InstanceID string
}

// Key returns the stable identity used for node lookup, hover tracking and
// focus locking. Instanced items key on their instance ID; uninstanced items
// fall back to the definition hash.
func (r ItemRef) Key() string {
	if r.InstanceID != "" {
		return r.InstanceID
	}
	return "h:" + strconv.FormatUint(uint64(r.Hash), 10)
}

// IsZero reports whether the ref identifies nothing.
func (r ItemRef) IsZero() bool {
	return r.Hash == 0 && r.InstanceID == ""
}

// SlotType is the equip slot an item occupies. Slot order is load-bearing:
// the layout builder derives column rows and organized-vault shell depth from
// the numeric slot value.
type SlotType uint8

const (
	SlotPrimary   SlotType = iota // weapon row 0
	SlotSpecial                   // weapon row 1
	SlotHeavy                     // weapon row 2
	SlotHelmet                    // armor row 0
	SlotArms                      // armor row 1
	SlotChest                     // armor row 2
	SlotLegs                      // armor row 3
	SlotClassItem                 // armor row 4
	SlotSubclass                  // center spiral
)

var slotNames = [...]string{
	"primary", "special", "heavy",
	"helmet", "arms", "chest", "legs", "classitem",
	"subclass",
}

// String returns the lowercase name of the slot.
func (s SlotType) String() string {
	if int(s) < len(slotNames) {
		return slotNames[s]
	}
	return "unknown"
}

// ParseSlot converts a lowercase slot name to a SlotType.
func ParseSlot(s string) (SlotType, error) {
	for i, name := range slotNames {
		if s == name {
			return SlotType(i), nil
		}
	}
	return SlotPrimary, fmt.Errorf("galaxy: unknown slot %q", s)
}

// Kind returns the spatial family the slot belongs to.
func (s SlotType) Kind() Kind {
	switch {
	case s <= SlotHeavy:
		return KindWeapon
	case s <= SlotClassItem:
		return KindArmor
	default:
		return KindSubclass
	}
}

// row returns the slot's row index within its kind's equipped column.
func (s SlotType) row() int {
	switch s.Kind() {
	case KindWeapon:
		return int(s)
	case KindArmor:
		return int(s - SlotHelmet)
	default:
		return 0
	}
}

// ItemState is one item instance as reported by the inventory host. It is
// pure data: the layout builder reads it, resolves the definition, and emits
// a WorldNode or VaultPoint.
type ItemState struct {
	Ref        ItemRef
	Slot       SlotType
	Element    Element
	Power      int
	Equipped   bool
	Masterwork bool
	Crafted    bool
	Enhanced   bool
}

// InventorySnapshot is the host-provided view of one character plus the
// shared vault. The builder treats it as read-only; slice order is preserved
// so hosts control deterministic placement by sorting before handing it over.
type InventorySnapshot struct {
	Equipped []ItemState // at most one item per slot
	Carried  []ItemState // unequipped items on the character
	Vault    []ItemState // rendered as the background starfield
}

// Count returns the total number of items in the snapshot.
func (inv *InventorySnapshot) Count() int {
	return len(inv.Equipped) + len(inv.Carried) + len(inv.Vault)
}
