// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package shimconfig

import (
	"github.com/invopop/jsonschema"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

func ConfigSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

// ElemSchema describes the json form of a mounted tree (see mount.JSONTarget)
func ElemSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&vdom.Elem{})
}
