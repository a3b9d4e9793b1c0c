// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// st7735s drives a 160x80 ST7735S panel from the command line.
//
// With --emulate the panel is replaced by st7735stest and every frame is
// printed on the terminal. --http also streams the frames to web browsers.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	errorsGo "github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/st7735s"
	"github.com/GermanBionicSystems/st7735s/screen2d"
	"github.com/GermanBionicSystems/st7735s/st7735stest"
	"github.com/GermanBionicSystems/st7735s/webview"
)

var rootCmd = &cobra.Command{
	Use:          "st7735s",
	Short:        "st7735s drives a 160x80 ST7735S TFT over SPI",
	Long:         "st7735s drives a 160x80 ST7735S TFT over SPI",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
		os.Exit(1)
	},
}

var (
	debug   bool
	spiName string
	dcName  string
	csName  string
	rstName string
	blName  string
	hz      string
	emulate bool
	step    int
	addr    string
)

func init() {
	cobra.EnablePrefixMatching = true
	f := rootCmd.PersistentFlags()
	f.BoolVar(&debug, "debug", false, "print the stack of errors")
	f.StringVar(&spiName, "spi", "", "SPI port to use")
	f.StringVar(&dcName, "dc", "GPIO25", "data/command pin")
	f.StringVar(&csName, "cs", "", "chip select pin, empty when driven by the SPI port")
	f.StringVar(&rstName, "rst", "GPIO27", "reset pin, empty when not wired")
	f.StringVar(&blName, "bl", "GPIO18", "backlight pin, empty when not wired")
	f.StringVar(&hz, "hz", "", "SPI clock, e.g. 20MHz")
	f.BoolVar(&emulate, "emulate", false, "print frames on the terminal instead of using the panel")
	f.IntVar(&step, "step", 2, "keep one pixel out of step when emulating")
	f.StringVar(&addr, "http", "", "also stream emulated frames to browsers on this address, e.g. :8080")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(fn func() error) {
	if err := fn(); err != nil {
		if e, ok := err.(*errorsGo.Error); debug && ok {
			fmt.Fprintln(os.Stderr, e.ErrorStack())
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

// session is an opened display, real or emulated.
type session struct {
	dev    *st7735s.Dev
	port   spi.PortCloser
	emu    *st7735stest.Controller
	screen *screen2d.Dev
	web    *webview.Display
	srv    *http.Server
}

func open() (*session, error) {
	opts := st7735s.DefaultOpts
	if hz != "" {
		var f physic.Frequency
		if err := f.Set(hz); err != nil {
			return nil, errorsGo.WrapPrefix(err, "--hz", 0)
		}
		opts.Speed = f
	}
	if emulate || addr != "" {
		c := st7735stest.New()
		dev, err := st7735s.NewSPI(c, c.DC, c.CS, c.RST, &opts)
		if err != nil {
			return nil, errorsGo.Wrap(err, 0)
		}
		s := &session{
			dev:    dev,
			port:   c,
			emu:    c,
			screen: screen2d.New(&screen2d.Opts{W: opts.W, H: opts.H, Step: step, Home: true}),
		}
		if addr != "" {
			if err := s.serve(addr); err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	if _, err := host.Init(); err != nil {
		return nil, errorsGo.Wrap(err, 0)
	}
	dc, err := pin("--dc", dcName)
	if err != nil {
		return nil, err
	}
	cs, err := pin("--cs", csName)
	if err != nil {
		return nil, err
	}
	rst, err := pin("--rst", rstName)
	if err != nil {
		return nil, err
	}
	bl, err := pin("--bl", blName)
	if err != nil {
		return nil, err
	}
	if bl != nil {
		if err := bl.Out(gpio.High); err != nil {
			return nil, errorsGo.WrapPrefix(err, "backlight", 0)
		}
	}
	p, err := spireg.Open(spiName)
	if err != nil {
		return nil, errorsGo.Wrap(err, 0)
	}
	dev, err := st7735s.NewSPI(p, dc, cs, rst, &opts)
	if err != nil {
		_ = p.Close()
		return nil, errorsGo.Wrap(err, 0)
	}
	return &session{dev: dev, port: p}, nil
}

// pin returns nil for an empty name.
func pin(flag, name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errorsGo.Errorf("%s: unknown pin %q", flag, name)
	}
	return p, nil
}

// show prints the emulated frame. It does nothing on real hardware.
func (s *session) show() error {
	if s.emu == nil {
		return nil
	}
	if s.emu.FramingErrors != 0 {
		return errorsGo.Errorf("emulator: %d framing errors", s.emu.FramingErrors)
	}
	if s.web != nil {
		if err := s.emu.Present(s.web); err != nil {
			return err
		}
	}
	return s.emu.Present(s.screen)
}

func (s *session) Close() error {
	s.stopServing()
	if s.screen != nil {
		_ = s.screen.Halt()
	}
	return s.port.Close()
}

// with opens the display, runs fn and shows the result.
func with(fn func(s *session) error) func() error {
	return func() error {
		s, err := open()
		if err != nil {
			return err
		}
		defer s.Close()
		if err := fn(s); err != nil {
			return err
		}
		if err := s.show(); err != nil {
			return err
		}
		s.wait()
		return nil
	}
}
