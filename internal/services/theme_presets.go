package services

import "boutique/internal/models"

// DefaultTheme is written when no live theme exists.
var DefaultTheme = models.Palette{
	Primary:        "#e91e63",
	Secondary:      "#f06292",
	Accent:         "#ec407a",
	Background:     "linear-gradient(135deg, #ffeef8 0%, #fff0f5 50%, #fdf2f8 100%)",
	CardBackground: "linear-gradient(135deg, rgba(255,255,255,0.9), rgba(253,242,248,0.7))",
	TextColor:      "#4a4a4a",
	BorderColor:    "#f8bbd9",
	ThemeName:      "Pink Theme",
}

var themePresets = map[string]models.Palette{
	"pink": DefaultTheme,
	"blue": {
		Primary:        "#2196f3",
		Secondary:      "#64b5f6",
		Accent:         "#42a5f5",
		Background:     "linear-gradient(135deg, #e3f2fd 0%, #f3e5f5 50%, #e8f5e8 100%)",
		CardBackground: "linear-gradient(135deg, rgba(255,255,255,0.9), rgba(227,242,253,0.7))",
		TextColor:      "#2c3e50",
		BorderColor:    "#bbdefb",
		ThemeName:      "Blue Theme",
	},
	"purple": {
		Primary:        "#9c27b0",
		Secondary:      "#ba68c8",
		Accent:         "#ab47bc",
		Background:     "linear-gradient(135deg, #f3e5f5 0%, #e1bee7 50%, #f8bbd9 100%)",
		CardBackground: "linear-gradient(135deg, rgba(255,255,255,0.9), rgba(243,229,245,0.7))",
		TextColor:      "#4a148c",
		BorderColor:    "#e1bee7",
		ThemeName:      "Purple Theme",
	},
	"green": {
		Primary:        "#4caf50",
		Secondary:      "#81c784",
		Accent:         "#66bb6a",
		Background:     "linear-gradient(135deg, #e8f5e8 0%, #f1f8e9 50%, #f9fbe7 100%)",
		CardBackground: "linear-gradient(135deg, rgba(255,255,255,0.9), rgba(232,245,232,0.7))",
		TextColor:      "#2e7d32",
		BorderColor:    "#c8e6c9",
		ThemeName:      "Green Theme",
	},
	"orange": {
		Primary:        "#ff9800",
		Secondary:      "#ffb74d",
		Accent:         "#ffa726",
		Background:     "linear-gradient(135deg, #fff8e1 0%, #ffecb3 50%, #ffe0b2 100%)",
		CardBackground: "linear-gradient(135deg, rgba(255,255,255,0.9), rgba(255,248,225,0.7))",
		TextColor:      "#e65100",
		BorderColor:    "#ffcc02",
		ThemeName:      "Orange Theme",
	},
	"dark": {
		Primary:        "#bb86fc",
		Secondary:      "#3700b3",
		Accent:         "#03dac6",
		Background:     "linear-gradient(135deg, #121212 0%, #1e1e1e 50%, #2d2d2d 100%)",
		CardBackground: "linear-gradient(135deg, rgba(255,255,255,0.05), rgba(187,134,252,0.1))",
		TextColor:      "#ffffff",
		BorderColor:    "#333333",
		ThemeName:      "Dark Theme",
	},
	"luxury": {
		Primary:        "#d4af37",
		Secondary:      "#f4e4c1",
		Accent:         "#a0826d",
		Background:     "linear-gradient(135deg, #1a1a1a 0%, #2d2d2d 50%, #1a1a1a 100%)",
		CardBackground: "linear-gradient(135deg, rgba(212,175,55,0.1), rgba(244,228,193,0.05))",
		TextColor:      "#f4e4c1",
		BorderColor:    "#d4af37",
		ThemeName:      "Luxury Gold Theme",
	},
}
