// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package webview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/GermanBionicSystems/st7735s/rgb565"
)

func TestDisplay(t *testing.T) {
	d := New(&Opts{W: 4, H: 2})
	if s := d.String(); s != "WebView{4x2}" {
		t.Fatalf("String() = %q", s)
	}
	if b := d.Bounds(); b != image.Rect(0, 0, 4, 2) {
		t.Fatalf("Bounds() = %v", b)
	}
	if d.ColorModel() != rgb565.Model {
		t.Fatal("unexpected color model")
	}
	if err := d.Draw(image.Rect(1, 0, 3, 1), image.NewUniform(rgb565.Orange), image.Point{}); err != nil {
		t.Fatal(err)
	}
	f := d.Frame()
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			want := rgb565.Black
			if y == 0 && (x == 1 || x == 2) {
				want = rgb565.Orange
			}
			if got := f.Color565At(x, y); got != want {
				t.Errorf("(%d, %d) = %s, want %s", x, y, got, want)
			}
		}
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
}

func TestImageFormat(t *testing.T) {
	for _, tc := range []struct {
		format   ImageFormat
		name     string
		mimeType string
	}{
		{ImageFormat(-1), "-1", "application/octet-stream"},
		{PNG, "PNG", "image/png"},
		{JPEG, "JPEG", "image/jpeg"},
	} {
		if got := tc.format.String(); got != tc.name {
			t.Errorf("String() = %q, want %q", got, tc.name)
		}
		if got := tc.format.mimeType(); got != tc.mimeType {
			t.Errorf("mimeType() = %q, want %q", got, tc.mimeType)
		}
	}
	for s, want := range map[string]ImageFormat{"png": PNG, "jpg": JPEG, "jpeg": JPEG} {
		if got, err := ParseImageFormat(s); got != want || err != nil {
			t.Errorf("ParseImageFormat(%q) = %s, %v", s, got, err)
		}
	}
	if _, err := ParseImageFormat("bmp"); err == nil {
		t.Error("expected error")
	}
}

var boundaryRe = regexp.MustCompile(`^[a-f0-9]{68}$`)

func TestRandomBoundary(t *testing.T) {
	for i := 0; i < 100; i++ {
		if got := randomBoundary(); !boundaryRe.MatchString(got) {
			t.Fatalf("boundary %q doesn't match %s", got, boundaryRe)
		}
	}
}

// stream starts a request and returns a reader over its parts.
func stream(t *testing.T, d *Display, target string) *multipart.Reader {
	t.Helper()
	srv := httptest.NewServer(d)
	t.Cleanup(srv.Close)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+target, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	mt, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		t.Fatal(err)
	}
	if mt != "multipart/x-mixed-replace" {
		t.Fatalf("Content-Type is %q", mt)
	}
	return multipart.NewReader(resp.Body, params["boundary"])
}

// next decodes the next part of the stream.
func next(t *testing.T, mr *multipart.Reader, mediaType string) image.Image {
	t.Helper()
	p, err := mr.NextPart()
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	if mt, _, err := mime.ParseMediaType(p.Header.Get("Content-Type")); err != nil || mt != mediaType {
		t.Fatalf("part Content-Type is %q, %v, want %q", mt, err, mediaType)
	}
	n, err := strconv.Atoi(p.Header.Get("Content-Length"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != n {
		t.Fatalf("read %d bytes, Content-Length is %d", len(b), n)
	}
	dec := png.Decode
	if mediaType == "image/jpeg" {
		dec = jpeg.Decode
	}
	img, err := dec(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestServeHTTP(t *testing.T) {
	for _, tc := range []struct {
		name      string
		opts      Opts
		target    string
		mediaType string
	}{
		{"png", Opts{W: 8, H: 4}, "/", "image/png"},
		{"png scaled", Opts{W: 8, H: 4, Scale: 3}, "/", "image/png"},
		{"jpeg", Opts{W: 16, H: 8, Format: JPEG}, "/", "image/jpeg"},
		{"png param", Opts{W: 8, H: 4, Format: JPEG, Scale: 2}, "/?format=png", "image/png"},
		{"jpeg param", Opts{W: 16, H: 8, JPEGQuality: 50}, "/?format=jpeg", "image/jpeg"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := New(&tc.opts)
			if err := d.Draw(d.Bounds(), image.NewUniform(rgb565.Red), image.Point{}); err != nil {
				t.Fatal(err)
			}
			mr := stream(t, d, tc.target)
			scale := max(tc.opts.Scale, 1)
			size := image.Pt(tc.opts.W*scale, tc.opts.H*scale)

			img := next(t, mr, tc.mediaType)
			if got := img.Bounds().Size(); got != size {
				t.Fatalf("image size %v, want %v", got, size)
			}
			if d.Clients() != 1 {
				t.Fatalf("Clients() = %d", d.Clients())
			}

			if err := d.Draw(image.Rect(0, 0, 1, 1), image.NewUniform(rgb565.Blue), image.Point{}); err != nil {
				t.Fatal(err)
			}
			img = next(t, mr, tc.mediaType)
			if tc.mediaType == "image/png" {
				// The top left pixel covers a scale x scale block.
				for _, p := range []image.Point{{0, 0}, {scale - 1, scale - 1}, {scale, 0}} {
					want := rgb565.Blue
					if p.X >= scale {
						want = rgb565.Red
					}
					if got := rgb565.Model.Convert(img.At(p.X, p.Y)); got != want {
						t.Errorf("%v = %s, want %s", p, got, want)
					}
				}
			}

			if err := d.Halt(); err != nil {
				t.Fatal(err)
			}
			if _, err := mr.NextPart(); err == nil {
				t.Fatal("stream not terminated by Halt()")
			}
		})
	}
}

func TestServeHTTP_keepalive(t *testing.T) {
	d := New(&Opts{W: 2, H: 2, Keepalive: time.Millisecond})
	mr := stream(t, d, "/")
	for i := 0; i < 3; i++ {
		next(t, mr, "image/png")
	}
}

func TestServeHTTP_status(t *testing.T) {
	for _, tc := range []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/?format=bmp", http.StatusBadRequest},
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
	} {
		t.Run(fmt.Sprint(tc), func(t *testing.T) {
			d := New(&Opts{W: 16, H: 16})
			srv := httptest.NewServer(d)
			t.Cleanup(srv.Close)
			req, err := http.NewRequest(tc.method, srv.URL+tc.target, nil)
			if err != nil {
				t.Fatal(err)
			}
			resp, err := srv.Client().Do(req)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Fatalf("%s %s = %d, want %d", tc.method, tc.target, resp.StatusCode, tc.want)
			}
		})
	}
}
