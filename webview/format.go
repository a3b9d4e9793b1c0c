// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package webview

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"sync"
)

// ImageFormat is the encoding of each part of the stream.
type ImageFormat int

const (
	// PNG is lossless and the default; it suits drawn graphics.
	PNG ImageFormat = iota
	JPEG
)

func (f ImageFormat) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	default:
		return fmt.Sprint(int(f))
	}
}

func (f ImageFormat) mimeType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// ParseImageFormat returns the ImageFormat for "png", "jpg" or "jpeg".
func ParseImageFormat(s string) (ImageFormat, error) {
	switch s {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	default:
		return PNG, fmt.Errorf("webview: unknown image format %q", s)
	}
}

// bufferPool holds encoded frames.
var bufferPool = sync.Pool{
	New: func() any { return []byte(nil) },
}

type pngBufferPool struct{ p sync.Pool }

func (p *pngBufferPool) Get() *png.EncoderBuffer {
	b, _ := p.p.Get().(*png.EncoderBuffer)
	return b
}

func (p *pngBufferPool) Put(b *png.EncoderBuffer) {
	p.p.Put(b)
}

var pngBuffers pngBufferPool

func (d *Display) encodeLocked(f ImageFormat) ([]byte, error) {
	buf := bytes.NewBuffer(bufferPool.Get().([]byte)[:0])
	img := d.imageLocked()
	var err error
	switch f {
	case PNG:
		enc := png.Encoder{CompressionLevel: d.opts.PNGCompression, BufferPool: &pngBuffers}
		err = enc.Encode(buf, img)
	case JPEG:
		q := d.opts.JPEGQuality
		if q == 0 {
			q = jpeg.DefaultQuality
		}
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: q})
	default:
		err = fmt.Errorf("webview: unhandled image format %s", f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// snapshotFor returns the encoded frame. The caller owns the returned slice and
// should give it back to bufferPool.
func (d *Display) snapshotFor(f ImageFormat) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.snapshot[f]
	if !ok {
		var err error
		if b, err = d.encodeLocked(f); err != nil {
			return nil, err
		}
		d.snapshot[f] = b
	}
	return append(bufferPool.Get().([]byte)[:0], b...), nil
}
