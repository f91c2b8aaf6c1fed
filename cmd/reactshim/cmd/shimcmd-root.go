// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/reactshim/pkg/demoapp"
	"github.com/wavetermdev/reactshim/pkg/shimconfig"
)

var (
	rootCmd = &cobra.Command{
		Use:               "reactshim",
		Short:             "render wrapped component trees",
		Long:              `reactshim builds the demo page from wrapped components and renders it as html or vdom json, or serves it over http`,
		SilenceUsage:      true,
		PersistentPreRunE: preRunLoadConfig,
	}
)

var ReactShimVersion = "0.0.0"
var BuildTime = "0"

var envFileArg string
var ShimConfig *shimconfig.Config
var ExitCode int

func init() {
	rootCmd.PersistentFlags().StringVar(&envFileArg, "env", "", "env file to read REACTSHIM_* settings from (default .env if present)")
}

var WrappedStderr io.Writer = os.Stderr

func WriteStderr(fmtStr string, args ...interface{}) {
	fmt.Fprintf(WrappedStderr, fmtStr, args...)
}

func WriteOut(cmd *cobra.Command, fmtStr string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), fmtStr, args...)
}

func preRunLoadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := shimconfig.Load(envFileArg)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	ShimConfig = cfg
	if cfg.Dev {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
	return nil
}

// resolveTheme returns nil (the app default) when no theme file is given
func resolveTheme(themeFile string) (map[string]any, error) {
	if themeFile == "" {
		return nil, nil
	}
	theme, err := shimconfig.LoadTheme(themeFile)
	if err != nil {
		return nil, err
	}
	return theme, nil
}

func makeApp() (*demoapp.App, error) {
	app, err := demoapp.MakeApp()
	if err != nil {
		return nil, err
	}
	app.MountOpts.MaxDepth = ShimConfig.MaxDepth
	return app, nil
}

// Execute executes the root command.
func Execute() {
	defer func() {
		r := recover()
		if r != nil {
			WriteStderr("[panic] %v\n", r)
			debug.PrintStack()
			os.Exit(1)
		}
		os.Exit(ExitCode)
	}()
	err := rootCmd.Execute()
	if err != nil {
		ExitCode = 1
	}
}
