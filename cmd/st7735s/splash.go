// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/spf13/cobra"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/st7735s/rgb565"
)

func init() {
	splashCmd.Flags().Float64Var(&splashSize, "size", 22, "font size in pixels")
	rootCmd.AddCommand(splashCmd)
}

var splashSize float64

var splashCmd = &cobra.Command{
	Use:   "splash [text]",
	Short: "draw anti-aliased centered text",
	Long:  "draw anti-aliased centered text rendered with the Go font",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := "periph"
		if len(args) == 1 {
			s = strings.ReplaceAll(args[0], `\n`, "\n")
		}
		run(with(func(ss *session) error { return splash(ss, s) }))
	},
}

func splash(s *session, str string) error {
	r := s.dev.Bounds()
	c := gg.NewContext(r.Dx(), r.Dy())
	c.SetColor(rgb565.Navy)
	c.Clear()
	c.SetColor(rgb565.White)
	c.SetFontFace(face(splashSize))
	c.DrawStringWrapped(str, float64(r.Dx())/2, float64(r.Dy())/2, 0.5, 0.5, float64(r.Dx()), 1.2, gg.AlignCenter)
	return s.dev.Draw(r, c.Image(), image.Point{})
}

func face(size float64) font.Face {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
}
