// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/wavetermdev/reactshim/pkg/demoapp"
	"github.com/wavetermdev/reactshim/pkg/mount"
	"github.com/wavetermdev/reactshim/pkg/panichandler"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

type WebFnType = func(http.ResponseWriter, *http.Request)

// Header constants
const (
	CacheControlHeaderKey     = "Cache-Control"
	CacheControlHeaderNoCache = "no-cache"

	ContentTypeHeaderKey = "Content-Type"
	ContentTypeJson      = "application/json"
	ContentTypeHtml      = "text/html; charset=utf-8"
)

const HttpReadTimeout = 5 * time.Second
const HttpWriteTimeout = 21 * time.Second
const HttpMaxHeaderBytes = 60000
const HttpTimeoutDuration = 21 * time.Second
const ShutdownTimeout = 2 * time.Second

const pageTemplate = `
<html>
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="minimum-scale=1, initial-scale=1, width=device-width"/>
    <title>reactshim</title>
  </head>
  <body>
    <div id="root"><bind key="root"/></div>
  </body>
</html>
`

// pageTarget binds the mounted tree into the html document shell
type pageTarget struct {
	W        io.Writer
	Registry *vdom.Registry
}

func (t pageTarget) Render(root *vdom.Elem) error {
	page, err := t.Registry.ParseBind(pageTemplate, map[string]any{"root": root})
	if err != nil {
		return fmt.Errorf("building page shell: %w", err)
	}
	_, err = io.WriteString(t.W, "<!DOCTYPE html>")
	if err != nil {
		return err
	}
	return mount.HTMLTarget{W: t.W}.Render(page)
}

type WebFnOpts struct {
	AllowCaching bool
	JsonErrors   bool
}

type errorRtn struct {
	Error string `json:"error"`
}

// Server mounts the demo app on every request, so theme changes show up on reload
type Server struct {
	App     *demoapp.App
	ThemeFn func() map[string]any
}

func (s *Server) theme() map[string]any {
	if s.ThemeFn == nil {
		return nil
	}
	return s.ThemeFn()
}

func writeJsonError(w http.ResponseWriter, status int, errMsg string) {
	barr, _ := json.Marshal(errorRtn{Error: errMsg})
	w.Header().Set(ContentTypeHeaderKey, ContentTypeJson)
	w.WriteHeader(status)
	w.Write(barr)
}

func WebFnWrap(opts WebFnOpts, fn WebFnType) WebFnType {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			panicErr := panichandler.PanicHandler("web:"+r.URL.Path, recover())
			if panicErr == nil {
				return
			}
			if opts.JsonErrors {
				writeJsonError(w, http.StatusInternalServerError, panicErr.Error())
				return
			}
			http.Error(w, panicErr.Error(), http.StatusInternalServerError)
		}()
		if !opts.AllowCaching {
			w.Header().Set(CacheControlHeaderKey, CacheControlHeaderNoCache)
		}
		fn(w, r)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var body bytes.Buffer
	err := s.App.Render(r.Context(), s.theme(), pageTarget{W: &body, Registry: s.App.Registry})
	if err != nil {
		log.Printf("[web] error rendering page: %v\n", err)
		http.Error(w, fmt.Sprintf("error rendering page: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set(ContentTypeHeaderKey, ContentTypeHtml)
	w.WriteHeader(http.StatusOK)
	w.Write(body.Bytes())
}

func (s *Server) handleVDom(w http.ResponseWriter, r *http.Request) {
	var body bytes.Buffer
	err := s.App.Render(r.Context(), s.theme(), mount.JSONTarget{W: &body})
	if err != nil {
		log.Printf("[web] error rendering vdom: %v\n", err)
		writeJsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set(ContentTypeHeaderKey, ContentTypeJson)
	w.WriteHeader(http.StatusOK)
	w.Write(body.Bytes())
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(ContentTypeHeaderKey, ContentTypeJson)
	w.Write([]byte(`{"ok":true}`))
}

func (s *Server) Router() *mux.Router {
	gr := mux.NewRouter()
	gr.HandleFunc("/", WebFnWrap(WebFnOpts{}, s.handlePage)).Methods(http.MethodGet)
	gr.HandleFunc("/vdom", WebFnWrap(WebFnOpts{JsonErrors: true}, s.handleVDom)).Methods(http.MethodGet)
	gr.HandleFunc("/healthz", WebFnWrap(WebFnOpts{}, handleHealthz)).Methods(http.MethodGet)
	return gr
}

func MakeTCPListener(serverAddr string) (net.Listener, error) {
	rtn, err := net.Listen("tcp", serverAddr)
	if err != nil {
		return nil, fmt.Errorf("error creating listener at %v: %v", serverAddr, err)
	}
	log.Printf("[web] server listening on %s\n", rtn.Addr())
	return rtn, nil
}

// blocking, returns nil after a clean shutdown (ctx done)
func RunWebServer(ctx context.Context, listener net.Listener, handler http.Handler) error {
	server := &http.Server{
		ReadTimeout:    HttpReadTimeout,
		WriteTimeout:   HttpWriteTimeout,
		MaxHeaderBytes: HttpMaxHeaderBytes,
		Handler:        http.TimeoutHandler(handler, HttpTimeoutDuration, "Timeout"),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()
	err := server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
