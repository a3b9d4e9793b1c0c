// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
)

func init() {
	clearCmd.Flags().StringVar(&clearColor, "color", "black", "fill color")
	clearCmd.Flags().BoolVar(&clearOff, "off", false, "put the panel to sleep afterward")
	rootCmd.AddCommand(clearCmd)
}

var (
	clearColor string
	clearOff   bool
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "fill the screen with one color",
	Long:  "fill the screen with one color",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(with(clearScreen))
	},
}

func clearScreen(s *session) error {
	c, err := parseColor(clearColor)
	if err != nil {
		return err
	}
	if err := s.dev.Clear(c); err != nil {
		return err
	}
	if clearOff {
		return s.dev.Sleep()
	}
	return nil
}
