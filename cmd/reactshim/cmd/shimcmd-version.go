// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

var versionVerbose bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version [-v]",
	Short: "Print the version number of reactshim",
	RunE:  runVersionCmd,
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "Display full version information")
	rootCmd.AddCommand(versionCmd)
}

// returns "dev" for versions that are not valid semver (e.g. local builds)
func releaseLine(version string) string {
	if !semver.IsValid(version) || semver.Prerelease(version) != "" {
		return "dev"
	}
	return semver.MajorMinor(version)
}

func runVersionCmd(cmd *cobra.Command, args []string) error {
	if !versionVerbose {
		WriteOut(cmd, "reactshim v%s\n", ReactShimVersion)
		return nil
	}
	WriteOut(cmd, "v%s (%s)\n", ReactShimVersion, BuildTime)
	WriteOut(cmd, "release:    %s\n", releaseLine("v"+ReactShimVersion))
	WriteOut(cmd, "listenaddr: %s\n", ShimConfig.ListenAddr)
	WriteOut(cmd, "format:     %s\n", ShimConfig.Format)
	if ShimConfig.ThemeFile != "" {
		WriteOut(cmd, "themefile:  %s\n", ShimConfig.ThemeFile)
	}
	return nil
}
