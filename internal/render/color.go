package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultColor strokes segments drawn without a colour.
const DefaultColor = "#000000"

type rgb [3]uint8

func parseColor(s string) (rgb, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 || !strings.HasPrefix(s, "#") {
		return rgb{}, fmt.Errorf("bad colour %q: want #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb{}, fmt.Errorf("bad colour %q: %w", s, err)
	}
	return rgb{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

func (c rgb) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// Blend returns base faded towards blend by t in [0, 1]. An empty blend
// leaves base unchanged.
func Blend(base, blend string, t float64) (string, error) {
	if base == "" {
		base = DefaultColor
	}
	a, err := parseColor(base)
	if err != nil {
		return "", err
	}
	if blend == "" {
		return a.String(), nil
	}
	b, err := parseColor(blend)
	if err != nil {
		return "", err
	}
	var out rgb
	for i := range a {
		out[i] = uint8(math.Round(float64(a[i]) + (float64(b[i])-float64(a[i]))*t))
	}
	return out.String(), nil
}

// CheckColor reports whether s is a colour Blend accepts.
func CheckColor(s string) error {
	_, err := parseColor(s)
	return err
}
