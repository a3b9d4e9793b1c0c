// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/st7735s"
	"github.com/GermanBionicSystems/st7735s/bitfont"
)

func init() {
	f := textCmd.Flags()
	f.Float64Var(&textSize, "size", 0, "Go font size in pixels, 0 uses the 7x13 fixed font")
	f.StringVar(&textFg, "fg", "white", "foreground color")
	f.StringVar(&textBg, "bg", "black", "background color")
	f.IntVar(&textX, "x", 0, "cursor column in pixels")
	f.IntVar(&textY, "y", 0, "cursor row in pixels")
	f.BoolVar(&textClear, "clear", true, "clear the screen with the background color first")
	rootCmd.AddCommand(textCmd)
}

var (
	textSize  float64
	textFg    string
	textBg    string
	textX     int
	textY     int
	textClear bool
)

var textCmd = &cobra.Command{
	Use:   "text <text>...",
	Short: "print text with the bitmap font renderer",
	Long:  `print text with the bitmap font renderer, \n starts a new line`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := strings.ReplaceAll(strings.Join(args, " "), `\n`, "\n")
		run(with(func(ss *session) error { return printText(ss, s) }))
	},
}

func printText(s *session, str string) error {
	fg, err := parseColor(textFg)
	if err != nil {
		return err
	}
	bg, err := parseColor(textBg)
	if err != nil {
		return err
	}
	var f *bitfont.Font
	if textSize > 0 {
		if f, err = bitfont.FromTrueType(goregular.TTF, textSize); err != nil {
			return err
		}
	}
	con := st7735s.NewConsole(s.dev, f)
	con.SetStyle(st7735s.Style{Foreground: fg, Background: bg})
	if textClear {
		if err := con.Clear(); err != nil {
			return err
		}
	}
	con.SetCursor(textX, textY)
	_, err = con.WriteString(str)
	return err
}
