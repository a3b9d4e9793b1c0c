// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7735s controls a 160x80 TFT panel driven by a Sitronix ST7735S
// controller over a 4-wire SPI bus.
//
// The driver keeps no framebuffer. Every call addresses a window in the
// controller RAM and streams RGB565 pixels into it right away, so memory use
// is constant and a call returns once the panel content is updated.
//
// # Wiring
//
// Connect SDA to SPI_MOSI, SCL to SPI_CLK, CS to SPI_CS or a GPIO, DC to a
// GPIO and RES to a GPIO. Pass nil for cs when the SPI port drives chip
// select, and nil for rst when the reset line is tied high.
//
// # Coordinates
//
// The visible 160x80 area is a window of the controller 162x132 RAM. The
// driver adds Opts.ColOffset to columns and Opts.RowOffset to rows on the wire.
//
// # Datasheets
//
// https://www.displayfuture.com/Display/datasheet/controller/ST7735.pdf
//
// Product page:
//
// 0.96inch LCD Module: https://www.waveshare.com/wiki/0.96inch_LCD_Module
package st7735s
