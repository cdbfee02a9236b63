package terrain

import (
	"fmt"
	"image/color"
)

// Kind identifies one entry of the fixed terrain catalog. Cells store a Kind
// rather than a copy of the class data.
type Kind uint8

const (
	OpenLand Kind = iota
	RoughMeadow
	EasyMovementForest
	SlowRunForest
	WalkForest
	ImpassibleVegetation
	LakeSwampMarsh
	PavedRoad
	FootPath
	OutOfBounds

	numKinds
)

// BlockedPenalty is the penalty sentinel used for terrain a walker should
// avoid at almost any cost.
const BlockedPenalty = 100000

// Class is an immutable catalog entry.
type Class struct {
	Name       string
	Color      color.NRGBA
	Penalty    float64
	Impassible bool
}

// catalog is indexed by Kind. The penalty is added by the search heuristic
// whenever a cell of that class is considered.
var catalog = [numKinds]Class{
	OpenLand:             {"OPEN_LAND", color.NRGBA{248, 148, 18, 255}, 1, false},
	RoughMeadow:          {"ROUGH_MEADOW", color.NRGBA{255, 192, 0, 255}, 1, false},
	EasyMovementForest:   {"EASY_MOVEMENT_FOREST", color.NRGBA{255, 255, 255, 255}, 1, false},
	SlowRunForest:        {"SLOW_RUN_FOREST", color.NRGBA{2, 208, 60, 255}, 1, false},
	WalkForest:           {"WALK_FOREST", color.NRGBA{2, 136, 40, 255}, 1, false},
	ImpassibleVegetation: {"IMPASSIBLE_VEGETATION", color.NRGBA{5, 73, 24, 255}, BlockedPenalty, true},
	LakeSwampMarsh:       {"LAKE_SWAMP_MARSH", color.NRGBA{0, 0, 255, 255}, BlockedPenalty, false},
	PavedRoad:            {"PAVED_ROAD", color.NRGBA{71, 51, 3, 255}, 1, false},
	FootPath:             {"FOOT_PATH", color.NRGBA{0, 0, 0, 255}, 1, false},
	OutOfBounds:          {"OUT_OF_BOUNDS", color.NRGBA{205, 0, 101, 255}, 1, true},
}

// Kinds returns every catalog entry in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k names a catalog entry.
func (k Kind) Valid() bool { return k < numKinds }

// Class returns the catalog entry for k. It panics on an invalid Kind.
func (k Kind) Class() Class {
	if !k.Valid() {
		panic(fmt.Sprintf("terrain: invalid kind %d", k))
	}
	return catalog[k]
}

func (k Kind) Penalty() float64   { return k.Class().Penalty }
func (k Kind) Impassible() bool   { return k.Class().Impassible }
func (k Kind) Color() color.NRGBA { return k.Class().Color }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return catalog[k].Name
}

// Classify matches a raster sample against the catalog on all four RGBA
// components.
func Classify(c color.Color) (Kind, bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	for k := Kind(0); k < numKinds; k++ {
		if catalog[k].Color == n {
			return k, true
		}
	}
	return 0, false
}

// ClassifyRGB matches on the first three components only, for samples that
// carry no alpha channel.
func ClassifyRGB(r, g, b uint8) (Kind, bool) {
	for k := Kind(0); k < numKinds; k++ {
		c := catalog[k].Color
		if c.R == r && c.G == g && c.B == b {
			return k, true
		}
	}
	return 0, false
}
