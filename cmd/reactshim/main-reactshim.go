// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/wavetermdev/reactshim/cmd/reactshim/cmd"
)

// set via -ldflags at build time
var ReactShimVersion = "0.0.0"
var BuildTime = "0"

func main() {
	cmd.ReactShimVersion = ReactShimVersion
	cmd.BuildTime = BuildTime
	cmd.Execute()
}
