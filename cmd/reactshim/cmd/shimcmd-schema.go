// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"github.com/wavetermdev/reactshim/pkg/shimconfig"
	"github.com/wavetermdev/reactshim/pkg/util/utilfn"
)

var schemaOutFile string

var schemaCmd = &cobra.Command{
	Use:       "schema [config|elem] [-o file]",
	Short:     "print the json schema for the config or the rendered vdom",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"config", "elem"},
	RunE:      schemaRun,
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutFile, "output", "o", "", "write schema to file instead of stdout")
	rootCmd.AddCommand(schemaCmd)
}

func schemaRun(cmd *cobra.Command, args []string) error {
	var schema *jsonschema.Schema
	if len(args) == 0 || args[0] == "config" {
		schema = shimconfig.ConfigSchema()
	} else {
		schema = shimconfig.ElemSchema()
	}
	schemaStr, err := utilfn.MarshalIndentNoHTMLString(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %v", err)
	}
	if schemaOutFile == "" {
		WriteOut(cmd, "%s\n", schemaStr)
		return nil
	}
	written, err := utilfn.WriteFileIfDifferent(schemaOutFile, []byte(schemaStr))
	if err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	if !written {
		WriteStderr("no changes to %s\n", schemaOutFile)
	}
	return nil
}
