// Package areacolor maps research-area and card tags to a fixed colour palette.
package areacolor

import "unicode/utf16"

// Style is the set of utility classes used to render a tag chip, plus a hex
// swatch for terminal output.
type Style struct {
	Name       string `json:"name"`
	Light      string `json:"light"`
	Dark       string `json:"dark"`
	Border     string `json:"border"`
	DarkBorder string `json:"darkBorder"`
	Text       string `json:"text"`
	DarkText   string `json:"darkText"`
	Swatch     string `json:"swatch"`
}

func newStyle(name, swatch string) Style {
	return Style{
		Name:       name,
		Light:      "bg-" + name + "-50",
		Dark:       "dark:bg-" + name + "-900/20",
		Border:     "border-" + name + "-100",
		DarkBorder: "dark:border-" + name + "-800",
		Text:       "text-" + name + "-600",
		DarkText:   "dark:text-" + name + "-400",
		Swatch:     swatch,
	}
}

// Palette is the fixed set of styles. Its order is part of the tag mapping;
// reordering it recolours every tag on the site.
var Palette = [10]Style{
	newStyle("purple", "#9333ea"),
	newStyle("blue", "#2563eb"),
	newStyle("pink", "#db2777"),
	newStyle("indigo", "#4f46e5"),
	newStyle("cyan", "#0891b2"),
	newStyle("teal", "#0d9488"),
	newStyle("emerald", "#059669"),
	newStyle("orange", "#ea580c"),
	newStyle("amber", "#d97706"),
	newStyle("rose", "#e11d48"),
}

// Index returns the palette index for tag.
//
// The hash is the classic 31-multiplier string hash over UTF-16 code units,
// wrapped to 32 bits at every step, so a tag gets the same colour here as in
// any JavaScript front end using the same function.
func Index(tag string) int {
	var h int32
	for _, c := range utf16.Encode([]rune(tag)) {
		h = h*31 + int32(c)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return int(abs % int64(len(Palette)))
}

// For returns the style for tag. Distinct tags may share a style.
func For(tag string) Style {
	return Palette[Index(tag)]
}
