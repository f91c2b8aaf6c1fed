// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/reactshim/pkg/mount"
	"github.com/wavetermdev/reactshim/pkg/shimconfig"
	"github.com/wavetermdev/reactshim/pkg/util/utilfn"
)

var renderFormat string
var renderTheme string
var renderOutFile string

var renderCmd = &cobra.Command{
	Use:   "render [--format html|json] [--theme file] [-o file]",
	Short: "render the demo page once",
	Args:  cobra.NoArgs,
	RunE:  renderRun,
}

func init() {
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "output format, html or json (default from config)")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "yaml theme file (default from config)")
	renderCmd.Flags().StringVarP(&renderOutFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

func renderTarget(format string, buf *bytes.Buffer) (mount.Target, error) {
	switch format {
	case shimconfig.FormatHTML:
		return mount.HTMLTarget{W: buf}, nil
	case shimconfig.FormatJSON:
		return mount.JSONTarget{W: buf, Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("invalid format %q", format)
	}
}

func renderRun(cmd *cobra.Command, args []string) error {
	format := ShimConfig.Format
	if renderFormat != "" {
		format = renderFormat
	}
	themeFile := ShimConfig.ThemeFile
	if renderTheme != "" {
		themeFile = renderTheme
	}
	var buf bytes.Buffer
	target, err := renderTarget(format, &buf)
	if err != nil {
		return err
	}
	theme, err := resolveTheme(themeFile)
	if err != nil {
		return err
	}
	app, err := makeApp()
	if err != nil {
		return err
	}
	err = app.Render(cmd.Context(), theme, target)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if format == shimconfig.FormatHTML {
		buf.WriteByte('\n')
	}
	if renderOutFile == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	written, err := utilfn.WriteFileIfDifferent(renderOutFile, buf.Bytes())
	if err != nil {
		return fmt.Errorf("writing %s: %w", renderOutFile, err)
	}
	if !written {
		WriteStderr("no changes to %s\n", renderOutFile)
	}
	return nil
}
