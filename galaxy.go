package galaxy

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for screen positions, tilt angles, and parallax
// offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector used for world positions and camera offsets.
type Vec3 struct {
	X, Y, Z float64
}

// WhitePixel is a 1x1 white image used for solid color quads and dots.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range. Used by the layout builder to
// describe the vault scatter volume.
type Range struct {
	Min, Max float64
}

// At returns the value at parameter t in [0, 1] mapped onto the range.
func (r Range) At(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendMultiply                  // multiply (source * destination; only darkens)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// Kind classifies an item into one of the three spatial families the layout
// builder understands.
type Kind uint8

const (
	KindWeapon   Kind = iota // left column / weapon-side scatter
	KindArmor                // right column / armor-side scatter
	KindSubclass             // center spiral
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindWeapon:
		return "weapon"
	case KindArmor:
		return "armor"
	case KindSubclass:
		return "subclass"
	default:
		return "unknown"
	}
}

// Element is an item's damage/energy affinity. It drives node tinting, vault
// point color, and synergy wire color.
type Element uint8

const (
	ElementKinetic Element = iota
	ElementArc
	ElementSolar
	ElementVoid
	ElementStasis
	ElementStrand
	ElementPrismatic
)

var elementNames = [...]string{
	"kinetic", "arc", "solar", "void", "stasis", "strand", "prismatic",
}

// String returns the lowercase name of the element.
func (e Element) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	return "unknown"
}

// ParseElement converts a lowercase element name to an Element.
func ParseElement(s string) (Element, error) {
	for i, name := range elementNames {
		if s == name {
			return Element(i), nil
		}
	}
	return ElementKinetic, fmt.Errorf("galaxy: unknown element %q", s)
}

var elementColors = [...]Color{
	ElementKinetic:   {0.78, 0.78, 0.80, 1},
	ElementArc:       {0.47, 0.78, 1.00, 1},
	ElementSolar:     {1.00, 0.55, 0.19, 1},
	ElementVoid:      {0.62, 0.40, 0.90, 1},
	ElementStasis:    {0.29, 0.41, 0.86, 1},
	ElementStrand:    {0.22, 0.83, 0.49, 1},
	ElementPrismatic: {0.91, 0.42, 0.84, 1},
}

// Color returns the display color for the element.
func (e Element) Color() Color {
	if int(e) < len(elementColors) {
		return elementColors[e]
	}
	return ColorWhite
}

// Tier is an item's rarity tier.
type Tier uint8

const (
	TierCommon Tier = iota
	TierUncommon
	TierRare
	TierLegendary
	TierExotic
)

var tierNames = [...]string{
	"common", "uncommon", "rare", "legendary", "exotic",
}

// String returns the lowercase name of the tier.
func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return "unknown"
}

// ParseTier converts a lowercase tier name to a Tier.
func ParseTier(s string) (Tier, error) {
	for i, name := range tierNames {
		if s == name {
			return Tier(i), nil
		}
	}
	return TierCommon, fmt.Errorf("galaxy: unknown tier %q", s)
}

// Watermark is the origin-banner style drawn over a full-LOD icon's corner.
type Watermark uint8

const (
	WatermarkNone     Watermark = iota // no banner
	WatermarkStandard                  // plain origin banner
	WatermarkFeatured                  // highlighted: gear in the current rotation
)

var watermarkNames = [...]string{
	"none", "standard", "featured",
}

// String returns the lowercase name of the watermark style.
func (w Watermark) String() string {
	if int(w) < len(watermarkNames) {
		return watermarkNames[w]
	}
	return "unknown"
}

// ParseWatermark converts a lowercase watermark name to a Watermark. The
// empty string parses as WatermarkNone so manifests may omit the field.
func ParseWatermark(s string) (Watermark, error) {
	if s == "" {
		return WatermarkNone, nil
	}
	for i, name := range watermarkNames {
		if s == name {
			return Watermark(i), nil
		}
	}
	return WatermarkNone, fmt.Errorf("galaxy: unknown watermark %q", s)
}

// LayoutMode selects how unequipped vault items are scattered.
type LayoutMode uint8

const (
	LayoutOrganized LayoutMode = iota // slot-type shells at increasing depth
	LayoutRandom                      // uniform scatter through the vault volume
)

// PerfMode selects the depth-window size used by visibility culling.
type PerfMode uint8

const (
	PerfFull    PerfMode = iota // full draw distance
	PerfReduced                 // tightened depth window for weak GPUs
)

// LOD is the level of detail a node renders at, derived from its projected scale.
type LOD uint8

const (
	LODDot  LOD = iota // distant: single untextured dot
	LODIcon            // mid-range: flat icon quad, no decorations
	LODFull            // near: icon plus equipped ring, tier border, glow
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventHoverEnter EventType = iota // pointer moved onto a node or vault point
	EventHoverLeave                  // pointer moved off a node or vault point
	EventClick                       // press then release on the same target within the drag dead zone
	EventSecondary                   // right-button click on a target
	EventDragStart                   // movement exceeded the drag dead zone
	EventDrag                        // fires each processed move while dragging
	EventDragEnd                     // pointer released after dragging
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// InteractionEvent is the flattened event form forwarded to an EventSink.
// Inventory hosts that mirror interactions into an ECS world receive these.
type InteractionEvent struct {
	Type      EventType
	Ref       ItemRef
	Kind      Kind
	Vault     bool // true when the target is a vault point rather than a node
	ScreenX   float64
	ScreenY   float64
	WorldX    float64
	WorldY    float64
	WorldZ    float64
	Button    MouseButton
	Modifiers KeyModifiers

	// Drag-only fields.
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
}

// EventSink receives interaction events for mirroring into an external
// system (typically an ECS world — see the ecs subpackage).
type EventSink interface {
	EmitEvent(e InteractionEvent)
}

// toRGBA converts a Color to a premultiplied color.RGBA-compatible value.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
