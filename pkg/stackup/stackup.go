// Package stackup maps PCB layer roles to vertical placement and display
// metadata. Bottom-side layers stack upward from Z=0; top-side layers stack
// upward from the board thickness. The ordering is a display convention,
// not a physical stack-up guarantee.
package stackup

import "strings"

// Role identifies one of the six fixed fabrication layers.
type Role string

const (
	TopCopper        Role = "top_copper"
	BottomCopper     Role = "bottom_copper"
	TopSoldermask    Role = "top_soldermask"
	BottomSoldermask Role = "bottom_soldermask"
	TopSilkscreen    Role = "top_silkscreen"
	BottomSilkscreen Role = "bottom_silkscreen"
)

// Roles lists all layer roles in bottom-to-top display order.
var Roles = []Role{
	BottomCopper,
	BottomSoldermask,
	BottomSilkscreen,
	TopCopper,
	TopSoldermask,
	TopSilkscreen,
}

// Thicknesses are the four board parameters driving the vertical plan,
// all in mm.
type Thicknesses struct {
	Board      float64
	Copper     float64
	Soldermask float64
	Silkscreen float64
}

// DefaultThicknesses returns standard 1.6 mm FR4 values.
func DefaultThicknesses() Thicknesses {
	return Thicknesses{
		Board:      1.6,
		Copper:     0.035,
		Soldermask: 0.025,
		Silkscreen: 0.020,
	}
}

// Placement is the vertical span assigned to one layer role.
type Placement struct {
	ZOffset   float64 // Bottom of the layer, in mm
	Thickness float64 // Extrusion height, in mm
}

// Plan computes the placement of every role. Copper sits directly on the
// board faces, soldermask on the copper, and silkscreen one
// soldermask-thickness above its side's copper.
func Plan(t Thicknesses) map[Role]Placement {
	return map[Role]Placement{
		BottomCopper:     {ZOffset: 0.0, Thickness: t.Copper},
		BottomSoldermask: {ZOffset: t.Copper, Thickness: t.Soldermask},
		BottomSilkscreen: {ZOffset: t.Copper + t.Soldermask, Thickness: t.Silkscreen},
		TopCopper:        {ZOffset: t.Board, Thickness: t.Copper},
		TopSoldermask:    {ZOffset: t.Board + t.Copper, Thickness: t.Soldermask},
		TopSilkscreen:    {ZOffset: t.Board + t.Copper + t.Soldermask, Thickness: t.Silkscreen},
	}
}

// Color is the RGBA display color of a layer role.
type Color struct {
	R, G, B, A float64
}

// roleInfo carries per-role display metadata.
type roleInfo struct {
	title    string
	color    Color
	metallic bool
}

var roleInfos = map[Role]roleInfo{
	TopCopper:        {"Top Copper", Color{0.8, 0.5, 0.2, 1.0}, true},
	BottomCopper:     {"Bottom Copper", Color{0.8, 0.5, 0.2, 1.0}, true},
	TopSoldermask:    {"Top Soldermask", Color{0.0, 0.3, 0.0, 0.8}, false},
	BottomSoldermask: {"Bottom Soldermask", Color{0.0, 0.3, 0.0, 0.8}, false},
	TopSilkscreen:    {"Top Silkscreen", Color{1.0, 1.0, 1.0, 1.0}, false},
	BottomSilkscreen: {"Bottom Silkscreen", Color{1.0, 1.0, 1.0, 1.0}, false},
}

// Title returns the human-readable layer name.
func (r Role) Title() string {
	if info, ok := roleInfos[r]; ok {
		return info.title
	}
	return string(r)
}

// DisplayColor returns the conventional render color for the role.
func (r Role) DisplayColor() Color {
	return roleInfos[r].color
}

// Metallic reports whether the role renders as metal (copper layers).
func (r Role) Metallic() bool {
	return roleInfos[r].metallic
}

// extensionRoles maps conventional Gerber file extensions to layer roles.
var extensionRoles = map[string]Role{
	"gtl": TopCopper,
	"gbl": BottomCopper,
	"gts": TopSoldermask,
	"gbs": BottomSoldermask,
	"gto": TopSilkscreen,
	"gbo": BottomSilkscreen,
}

// RoleForExtension resolves a file extension (without dot, any case) to a
// layer role. Generic .gbr files carry no role information and resolve to
// nothing.
func RoleForExtension(ext string) (Role, bool) {
	role, ok := extensionRoles[strings.ToLower(ext)]
	return role, ok
}

// Substrate and drill display constants, matching the conventional FR4 and
// plated-hole appearance.
var (
	SubstrateColor = Color{0.2, 0.25, 0.15, 1.0}
	DrillColor     = Color{0.05, 0.05, 0.05, 1.0}
)
