// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package webview is a display.Drawer that streams its content to web
// browsers.
//
// Each GET request receives a multipart/x-mixed-replace stream ("MJPEG", as
// sent by IP cameras). The first part is the current frame and a new part is
// sent after every Draw. Browsers render the stream with a plain <img> tag.
//
// Frames are kept in RGB565 so the stream shows exactly the colors a panel
// would, and are enlarged with nearest neighbor scaling since 160x80 is tiny
// on a desktop monitor.
package webview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/st7735s/rgb565"
)

// Opts for a Display.
type Opts struct {
	// W and H are the size of the frame buffer.
	W, H int
	// Scale enlarges each pixel to a Scale x Scale block in the stream. 0 is
	// the same as 1.
	Scale int
	// Format is the default image format, clients can override it with the
	// "format" URL parameter.
	Format ImageFormat
	// JPEGQuality is between 1 and 100. 0 uses jpeg.DefaultQuality.
	JPEGQuality int
	// PNGCompression defaults to png.DefaultCompression.
	PNGCompression png.CompressionLevel
	// Keepalive resends the current frame when nothing was drawn for that
	// long. 0 disables it.
	Keepalive time.Duration
}

// Display is an in-memory frame buffer served over HTTP.
type Display struct {
	opts Opts

	mu       sync.Mutex
	frame    *rgb565.Image
	scaled   *image.RGBA
	clients  map[*client]struct{}
	snapshot map[ImageFormat][]byte
}

// New returns a black Display.
func New(opts *Opts) *Display {
	o := *opts
	if o.Scale < 1 {
		o.Scale = 1
	}
	d := &Display{
		opts:     o,
		frame:    rgb565.NewImage(image.Rect(0, 0, o.W, o.H)),
		clients:  map[*client]struct{}{},
		snapshot: map[ImageFormat][]byte{},
	}
	if o.Scale > 1 {
		d.scaled = image.NewRGBA(image.Rect(0, 0, o.W*o.Scale, o.H*o.Scale))
	}
	return d
}

func (d *Display) String() string {
	return fmt.Sprintf("WebView{%dx%d}", d.opts.W, d.opts.H)
}

// Halt implements conn.Resource.
//
// It ends all running streams asynchronously.
func (d *Display) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for c := range d.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
	return nil
}

// ColorModel implements display.Drawer.
func (d *Display) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer.
func (d *Display) Bounds() image.Rectangle {
	return d.frame.Rect
}

// Draw implements display.Drawer.
func (d *Display) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	draw.Draw(d.frame, r, src, sp, draw.Src)
	d.changedLocked()
	return nil
}

// Frame returns a copy of the frame buffer.
func (d *Display) Frame() *rgb565.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := rgb565.NewImage(d.frame.Rect)
	copy(f.Pix, d.frame.Pix)
	return f
}

// Clients returns the number of running streams.
func (d *Display) Clients() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.clients)
}

func (d *Display) changedLocked() {
	for f, b := range d.snapshot {
		bufferPool.Put(b[:0])
		delete(d.snapshot, f)
	}
	for c := range d.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
}

// imageLocked returns the frame as sent to clients.
func (d *Display) imageLocked() image.Image {
	if d.scaled == nil {
		return d.frame
	}
	xdraw.NearestNeighbor.Scale(d.scaled, d.scaled.Rect, d.frame, d.frame.Rect, xdraw.Src, nil)
	return d.scaled
}

var _ display.Drawer = &Display{}
var _ http.Handler = &Display{}
var _ fmt.Stringer = &Display{}
