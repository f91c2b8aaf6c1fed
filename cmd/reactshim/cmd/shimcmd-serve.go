// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/wavetermdev/reactshim/pkg/shimconfig"
	"github.com/wavetermdev/reactshim/pkg/web"
)

var serveAddr string
var serveOpen bool
var serveWatch bool
var serveTheme string

var serveCmd = &cobra.Command{
	Use:   "serve [--addr host:port] [--open] [--watch] [--theme file]",
	Short: "serve the demo page over http",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the page in the default browser")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the theme file when it changes")
	serveCmd.Flags().StringVar(&serveTheme, "theme", "", "yaml theme file (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func serveRun(cmd *cobra.Command, args []string) error {
	addr := ShimConfig.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	themeFile := ShimConfig.ThemeFile
	if serveTheme != "" {
		themeFile = serveTheme
	}
	if serveWatch && themeFile == "" {
		return fmt.Errorf("--watch requires a theme file")
	}
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	app, err := makeApp()
	if err != nil {
		return err
	}
	server := &web.Server{App: app}
	if serveWatch {
		watcher, err := shimconfig.MakeThemeWatcher(themeFile)
		if err != nil {
			return err
		}
		defer watcher.Close()
		watcher.OnChange(func(theme map[string]any) {
			WriteStderr("theme reloaded, refresh the page\n")
		})
		watcher.Start(ctx)
		server.ThemeFn = watcher.Theme
	} else {
		theme, err := resolveTheme(themeFile)
		if err != nil {
			return err
		}
		server.ThemeFn = func() map[string]any { return theme }
	}
	listener, err := web.MakeTCPListener(addr)
	if err != nil {
		return err
	}
	url := "http://" + listener.Addr().String() + "/"
	WriteStderr("serving on %s\n", url)
	if serveOpen || ShimConfig.OpenBrowser {
		go openBrowser(url)
	}
	return web.RunWebServer(ctx, listener, server.Router())
}

func openBrowser(url string) {
	err := open.Start(url)
	if err != nil {
		log.Printf("[web] error opening browser: %v\n", err)
	}
}
