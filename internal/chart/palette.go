package chart

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxSeries is the size of the largest colorblind-safe palette
const MaxSeries = 8

// ErrTooManySeries is returned when more series are requested than the palette has colors
var ErrTooManySeries = errors.New("too many series for the colorblind palette")

// colorblind8 is the Okabe-Ito colorblind-safe palette. Smaller palettes are its prefixes.
var colorblind8 = [MaxSeries]string{
	"#0072B2", "#E69F00", "#F0E442", "#009E73",
	"#56B4E9", "#D55E00", "#CC79A7", "#000000",
}

// Palette returns the colorblind palette for n series. Fewer than 3 series still
// get the 3-color palette; only the first n colors end up used.
func Palette(n int) ([]string, error) {
	if n > MaxSeries {
		return nil, fmt.Errorf("%w: %d requested, at most %d", ErrTooManySeries, n, MaxSeries)
	}
	if n < 3 {
		n = 3
	}
	out := make([]string, n)
	copy(out, colorblind8[:n])
	return out, nil
}

// rgba turns "#RRGGBB" into an rgba() color with the given alpha
func rgba(hex string, alpha float64) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return hex
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", v>>16&0xff, v>>8&0xff, v&0xff, alpha)
}
