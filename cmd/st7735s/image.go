// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/fogleman/gg"
	errorsGo "github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/st7735s/rgb565"
)

func init() {
	imageCmd.Flags().BoolVar(&stretch, "stretch", false, "ignore the aspect ratio")
	imageCmd.Flags().StringVar(&imageBg, "bg", "black", "color around the image")
	rootCmd.AddCommand(imageCmd)
}

var (
	stretch bool
	imageBg string
)

var imageCmd = &cobra.Command{
	Use:   "image /path/to/image.png",
	Short: "display an image scaled to the screen",
	Long:  "display a PNG, JPEG, GIF, BMP, TIFF or WebP image scaled to the screen",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(with(func(s *session) error { return showImage(s, args[0]) }))
	},
}

func showImage(s *session, path string) error {
	bg, err := parseColor(imageBg)
	if err != nil {
		return err
	}
	src, err := gg.LoadImage(path)
	if err != nil {
		return errorsGo.Wrap(err, 0)
	}
	r := s.dev.Bounds()
	img := rgb565.FromImage(fit(src, r.Dx(), r.Dy(), bg))
	return s.dev.DrawImage(img.Pix, 0, 0, r.Dx(), r.Dy())
}

// fit scales src to a w x h image.
func fit(src image.Image, w, h int, bg rgb565.Color) image.Image {
	b := src.Bounds()
	sx := float64(w) / float64(b.Dx())
	sy := float64(h) / float64(b.Dy())
	if !stretch {
		sx = min(sx, sy)
		sy = sx
	}
	c := gg.NewContext(w, h)
	c.SetColor(bg)
	c.Clear()
	c.Translate((float64(w)-sx*float64(b.Dx()))/2, (float64(h)-sy*float64(b.Dy()))/2)
	c.Scale(sx, sy)
	c.DrawImage(src, -b.Min.X, -b.Min.Y)
	return c.Image()
}
