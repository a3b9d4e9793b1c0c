// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package webview

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/textproto"
	"sort"
	"strconv"
	"time"
)

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

// ServeHTTP streams the frame buffer. "?format=png" and "?format=jpeg"
// override Opts.Format.
func (d *Display) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.Body.Close(); err != nil {
		log.Printf("webview: closing request body: %v", err)
	}
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	f := d.opts.Format
	if v := r.URL.Query().Get("format"); v != "" {
		var err error
		if f, err = ParseImageFormat(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	pw := newPartWriter(w)
	w.Header().Set("Content-Type", mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{"boundary": pw.boundary}))

	c := &client{refresh: make(chan struct{}, 1), terminate: make(chan struct{}, 1)}
	d.mu.Lock()
	d.clients[c] = struct{}{}
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		delete(d.clients, c)
		d.mu.Unlock()
	}()

	h := textproto.MIMEHeader{}
	h.Set("Content-Type", f.mimeType())
	h.Set("Content-Transfer-Encoding", "binary")

	var keepalive <-chan time.Time
	var t *time.Timer
	if d.opts.Keepalive > 0 {
		t = time.NewTimer(d.opts.Keepalive)
		defer t.Stop()
		keepalive = t.C
	}
	for {
		b, err := d.snapshotFor(f)
		if err != nil {
			log.Printf("webview: %v", err)
			return
		}
		err = pw.writePart(h, b)
		bufferPool.Put(b[:0])
		if err != nil {
			// The client went away.
			return
		}
		if fl, ok := w.(http.Flusher); ok {
			fl.Flush()
		}
		if t != nil {
			t.Reset(d.opts.Keepalive)
		}
		select {
		case <-c.refresh:
		case <-keepalive:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// partWriter writes an endless MIME multipart body. mime/multipart.Writer
// cannot flush the closing boundary of a part before the next one starts.
type partWriter struct {
	w        io.Writer
	boundary string
	started  bool
	buf      bytes.Buffer
}

func newPartWriter(w io.Writer) *partWriter {
	return &partWriter{w: w, boundary: randomBoundary()}
}

// randomBoundary returns a boundary valid per RFC 2046 section 5.1.1.
func randomBoundary() string {
	var b [34]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%x", b[:])
}

// writePart writes one complete part including its closing boundary. It sets
// Content-Length in h.
func (p *partWriter) writePart(h textproto.MIMEHeader, body []byte) error {
	h.Set("Content-Length", strconv.Itoa(len(body)))
	p.buf.Reset()
	if !p.started {
		fmt.Fprintf(&p.buf, "--%s\r\n", p.boundary)
		p.started = true
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range h[k] {
			fmt.Fprintf(&p.buf, "%s: %s\r\n", k, v)
		}
	}
	p.buf.WriteString("\r\n")
	p.buf.Write(body)
	fmt.Fprintf(&p.buf, "\r\n--%s\r\n", p.boundary)
	_, err := p.buf.WriteTo(p.w)
	return err
}
