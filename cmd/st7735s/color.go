// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"sort"
	"strconv"
	"strings"

	errorsGo "github.com/go-errors/errors"

	"github.com/GermanBionicSystems/st7735s/rgb565"
)

var colorNames = map[string]rgb565.Color{
	"black":       rgb565.Black,
	"navy":        rgb565.Navy,
	"darkgreen":   rgb565.DarkGreen,
	"darkcyan":    rgb565.DarkCyan,
	"maroon":      rgb565.Maroon,
	"purple":      rgb565.Purple,
	"olive":       rgb565.Olive,
	"lightgrey":   rgb565.LightGrey,
	"darkgrey":    rgb565.DarkGrey,
	"blue":        rgb565.Blue,
	"green":       rgb565.Green,
	"cyan":        rgb565.Cyan,
	"red":         rgb565.Red,
	"magenta":     rgb565.Magenta,
	"yellow":      rgb565.Yellow,
	"white":       rgb565.White,
	"orange":      rgb565.Orange,
	"greenyellow": rgb565.GreenYellow,
}

// parseColor accepts a color name or #rrggbb.
func parseColor(s string) (rgb565.Color, error) {
	if c, ok := colorNames[strings.ToLower(s)]; ok {
		return c, nil
	}
	if len(s) == 7 && s[0] == '#' {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return rgb565.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
		}
	}
	names := make([]string, 0, len(colorNames))
	for n := range colorNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return 0, errorsGo.Errorf("invalid color %q, use #rrggbb or one of %s", s, strings.Join(names, ", "))
}
