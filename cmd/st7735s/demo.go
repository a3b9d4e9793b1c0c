// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/fogleman/gg"
	errorsGo "github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/st7735s"
	"github.com/GermanBionicSystems/st7735s/bitfont"
	"github.com/GermanBionicSystems/st7735s/rgb565"
)

func init() {
	demoCmd.Flags().IntVar(&loops, "loops", 1, "number of times to run the demo, 0 runs forever")
	demoCmd.Flags().DurationVar(&pause, "pause", 4*time.Second, "time each scene is kept on screen")
	demoCmd.Flags().BoolVar(&animate, "animate", false, "include the moving rectangle scene")
	rootCmd.AddCommand(demoCmd)
}

var (
	loops   int
	pause   time.Duration
	animate bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "cycle through the test scenes",
	Long:  "cycle through color bars, a rectangle grid, text in three sizes and a bitmap",
	Run: func(cmd *cobra.Command, args []string) {
		run(with(demo))
	},
}

type scene struct {
	name string
	fn   func(s *session) error
}

func demo(s *session) error {
	scenes := []scene{
		{"bars", bars},
		{"grid", grid},
	}
	if animate {
		scenes = append(scenes, scene{"animation", animation})
	}
	scenes = append(scenes, scene{"text", fonts}, scene{"bitmap", bitmap})
	for i := 0; loops == 0 || i < loops; i++ {
		for _, sc := range scenes {
			if err := sc.fn(s); err != nil {
				return errorsGo.WrapPrefix(err, sc.name, 0)
			}
			if err := s.show(); err != nil {
				return err
			}
			time.Sleep(pause)
		}
	}
	return nil
}

// bars draws 16 vertical color bars.
func bars(s *session) error {
	w := s.dev.Bounds().Dx() / 16
	h := s.dev.Bounds().Dy()
	for i := 0; i < 16; i++ {
		if err := s.dev.FillRect(i*w, 0, (i+1)*w-1, h-1, rgb565.Palette[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// grid draws 8x8 squares with random colors inside a grey frame.
func grid(s *session) error {
	d := s.dev
	r := d.Bounds()
	if err := d.Clear(rgb565.DarkGrey); err != nil {
		return err
	}
	for x := 0; x < r.Dx(); x += 8 {
		for y := 0; y < r.Dy(); y += 8 {
			c := rgb565.Palette[1+rand.Intn(len(rgb565.Palette)-1)]
			if err := d.Rect(x, y, min(x+8, r.Dx()-1), min(y+8, r.Dy()-1), c); err != nil {
				return err
			}
		}
	}
	return d.Rect(0, 0, r.Dx()-1, r.Dy()-1, rgb565.DarkGrey)
}

// animation shrinks a rectangle while a circle leaves the screen.
func animation(s *session) error {
	d := s.dev
	if err := d.Clear(rgb565.Blue); err != nil {
		return err
	}
	con := st7735s.NewConsole(d, nil)
	con.SetStyle(st7735s.Style{Foreground: rgb565.White, Background: rgb565.Blue})
	for x := d.Bounds().Dx() - 1; x >= 0; x-- {
		if err := d.Rect(0, 0, x, x/2, rgb565.Red); err != nil {
			return err
		}
		r := x - 119
		if r > 0 {
			if err := d.Circle(x-40, 40, r, rgb565.Yellow); err != nil {
				return err
			}
		}
		con.SetCursor(10, 10)
		if _, err := fmt.Fprintf(con, "X=%3d, y=%2d", x, x/2); err != nil {
			return err
		}
		if err := s.show(); err != nil {
			return err
		}
		time.Sleep(30 * time.Millisecond)
		if err := d.Rect(0, 0, x, x/2, rgb565.Blue); err != nil {
			return err
		}
		if r > 0 {
			if err := d.Circle(x-40, 40, r, rgb565.Blue); err != nil {
				return err
			}
		}
	}
	return nil
}

// fonts prints the same string with three font sizes.
func fonts(s *session) error {
	con := st7735s.NewConsole(s.dev, nil)
	con.SetStyle(st7735s.Style{Foreground: rgb565.Yellow, Background: rgb565.Navy})
	if err := con.Clear(); err != nil {
		return err
	}
	for _, l := range []struct {
		size float64
		y    int
		s    string
	}{
		{12, 4, "ABCDabcd1234"},
		{24, 18, "ABCDabcd"},
		{28, 46, "ABCDabcd"},
	} {
		f, err := bitfont.FromTrueType(goregular.TTF, l.size)
		if err != nil {
			return err
		}
		con.SetFont(f)
		con.SetCursor(2, l.y)
		if _, err := con.WriteString(l.s); err != nil {
			return err
		}
	}
	return nil
}

// bitmap renders a full screen picture and sends it as raw pixels.
func bitmap(s *session) error {
	r := s.dev.Bounds()
	img := rgb565.FromImage(picture(r.Dx(), r.Dy()))
	return s.dev.DrawImage(img.Pix, 0, 0, r.Dx(), r.Dy())
}

func picture(w, h int) image.Image {
	c := gg.NewContext(w, h)
	g := gg.NewLinearGradient(0, 0, float64(w), float64(h))
	g.AddColorStop(0, color.RGBA{0, 0, 128, 255})
	g.AddColorStop(1, color.RGBA{0, 160, 160, 255})
	c.SetFillStyle(g)
	c.DrawRectangle(0, 0, float64(w), float64(h))
	c.Fill()
	c.SetRGB(1, 0.65, 0)
	c.DrawCircle(float64(w)*3/4, float64(h)/2, float64(h)/3)
	c.Fill()
	c.SetRGB(1, 1, 1)
	c.SetLineWidth(2)
	c.DrawRoundedRectangle(4, 4, float64(w)-8, float64(h)-8, 6)
	c.Stroke()
	c.SetFontFace(face(20))
	c.DrawStringAnchored("ST7735S", float64(w)/3, float64(h)/2, 0.5, 0.5)
	return c.Image()
}
