package domain

import (
	"image/color"
	"regexp"
	"strconv"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// NamedColors maps lowercase color names accepted in seed files to hex.
var NamedColors = map[string]string{
	"white":        "#FFFFFF",
	"black":        "#000000",
	"steelblue":    "#4682B4",
	"teal":         "#14B8A6",
	"darkorange":   "#FF8C00",
	"midnightblue": "#191970",
	"antiquewhite": "#FAEBD7",
	"wheat":        "#F5DEB3",
	"tomato":       "#FF6347",
	"seagreen":     "#2E8B57",
}

func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// NormalizeColor uppercases a valid hex color.
func NormalizeColor(s string) string {
	return strings.ToUpper(s)
}

// ResolveColor turns a seed token into a hex color. Anything that is neither
// hex nor a known name becomes white.
func ResolveColor(token string) string {
	token = strings.TrimSpace(token)
	if IsHexColor(token) {
		return NormalizeColor(token)
	}
	if hex, ok := NamedColors[strings.ToLower(token)]; ok {
		return hex
	}
	return DefaultColor
}

// ParseRGBA decodes a #RRGGBB string into an opaque color.
func ParseRGBA(s string) (color.RGBA, bool) {
	if !IsHexColor(s) {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
