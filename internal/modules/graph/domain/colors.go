package domain

import catalog "promptatlas/internal/modules/catalog/domain"

// Palette holds the Catppuccin Mocha accents in display order.
var Palette = []string{
	"#89b4fa", // blue
	"#a6e3a1", // green
	"#fab387", // peach
	"#cba6f7", // mauve
	"#f38ba8", // red
	"#94e2d5", // teal
	"#f9e2af", // yellow
	"#f5c2e7", // pink
	"#74c7ec", // sapphire
	"#eba0ac", // maroon
	"#b4befe", // lavender
	"#89dceb", // sky
	"#f2cdcd", // flamingo
	"#f5e0dc", // rosewater
}

// GetCategoryColors assigns palette entries by category position, wrapping
// when there are more categories than colors.
func GetCategoryColors(cat catalog.Catalogue) map[string]string {
	out := make(map[string]string, len(cat.Categories))
	for i, category := range cat.Categories {
		out[category.ID] = Palette[i%len(Palette)]
	}
	return out
}
