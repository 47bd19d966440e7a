package material

import (
	"image/color"
	"sort"

	"pitch-renderer/internal/dataset"
)

var (
	leather  = color.NRGBA{242, 242, 242, 255}
	seamRed  = color.NRGBA{201, 31, 36, 255}
	trailDef = color.NRGBA{0x88, 0x88, 0x88, 255}
)

var accents = map[string]color.NRGBA{
	"FF": rgb(0xff3b30),
	"SL": rgb(0x0a84ff),
	"CH": rgb(0x30d158),
	"KC": rgb(0x5e5ce6),
	"SI": rgb(0xff9f0a),
	"CU": rgb(0xbf5af2),
	"FC": rgb(0x8e8e93),
	"ST": rgb(0x64d2ff),
	"FS": rgb(0x64d2ff),
	"EP": rgb(0xff375f),
	"KN": rgb(0xa1a1a6),
	"SC": rgb(0x6e6e73),
	"SV": rgb(0xffffff),
	"CS": rgb(0xac8e68),
	"FO": rgb(0xffd60a),
}

// Accent returns the emissive tint for a pitch type. Full keys such as
// "SL 4" are accepted; unknown types get the four-seam red.
func Accent(pitchType string) color.NRGBA {
	if c, ok := accents[dataset.TypeOf(pitchType)]; ok {
		return c
	}
	return accents["FF"]
}

// TrailColor returns the trail dot color for a pitch type; unknown types
// are grey.
func TrailColor(pitchType string) color.NRGBA {
	if c, ok := accents[dataset.TypeOf(pitchType)]; ok {
		return c
	}
	return trailDef
}

// PitchTypes lists every pitch type with its own accent, sorted.
func PitchTypes() []string {
	out := make([]string, 0, len(accents))
	for k := range accents {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func rgb(hex uint32) color.NRGBA {
	return color.NRGBA{uint8(hex >> 16), uint8(hex >> 8), uint8(hex), 255}
}
