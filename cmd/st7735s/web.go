// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	errorsGo "github.com/go-errors/errors"

	"github.com/GermanBionicSystems/st7735s/webview"
)

const index = `<!DOCTYPE html>
<html><head><title>st7735s</title></head>
<body style="background:#222">
<img src="/stream" style="image-rendering:pixelated;width:%dpx">
</body></html>
`

// serve streams the emulated frames on addr.
func (s *session) serve(addr string) error {
	r := s.dev.Bounds()
	s.web = webview.New(&webview.Opts{W: r.Dx(), H: r.Dy(), Scale: 4, Keepalive: 5 * time.Second})
	mux := http.NewServeMux()
	mux.Handle("/stream", s.web)
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, index, r.Dx()*4)
	})
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return errorsGo.Wrap(err, 0)
	}
	s.srv = &http.Server{Handler: mux}
	go func() {
		if err := s.srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http: %v", err)
		}
	}()
	log.Printf("streaming on http://%s/", l.Addr())
	return nil
}

// wait blocks until Ctrl-C so browsers can keep watching.
func (s *session) wait() {
	if s.srv == nil {
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Print("press Ctrl-C to exit")
	<-ctx.Done()
}

func (s *session) stopServing() {
	if s.srv == nil {
		return
	}
	_ = s.web.Halt()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = s.srv.Shutdown(ctx)
}
