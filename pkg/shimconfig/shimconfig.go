// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package shimconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/wavetermdev/reactshim/pkg/util/utilfn"
)

const EnvPrefix = "REACTSHIM_"
const DefaultEnvFile = ".env"

const FormatHTML = "html"
const FormatJSON = "json"

const DefaultListenAddr = "127.0.0.1:1729"

type Config struct {
	ListenAddr  string `json:"listenaddr" jsonschema:"description=address the dev server listens on"`
	ThemeFile   string `json:"themefile,omitempty" jsonschema:"description=yaml theme file passed to the theme provider"`
	Format      string `json:"format" jsonschema:"enum=html,enum=json"`
	OpenBrowser bool   `json:"openbrowser,omitempty"`
	Dev         bool   `json:"dev,omitempty" jsonschema:"description=verbose logging"`
	MaxDepth    int    `json:"maxdepth,omitempty" jsonschema:"minimum=0,description=component expansion depth limit (0 = default)"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddr: DefaultListenAddr,
		Format:     FormatHTML,
	}
}

func (c *Config) Validate() error {
	if c.Format != FormatHTML && c.Format != FormatJSON {
		return fmt.Errorf("invalid format %q (expected %q or %q)", c.Format, FormatHTML, FormatJSON)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid maxdepth %d", c.MaxDepth)
	}
	if c.ListenAddr == "" {
		return errors.New("listenaddr cannot be empty")
	}
	return nil
}

// envKeyToField maps REACTSHIM_LISTEN_ADDR -> listenaddr
func envKeyToField(key string) (string, bool) {
	if !strings.HasPrefix(key, EnvPrefix) {
		return "", false
	}
	field := strings.ToLower(strings.ReplaceAll(key[len(EnvPrefix):], "_", ""))
	return field, field != ""
}

func readEnvFile(envFile string, required bool) (map[string]string, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	envMap, err := godotenv.Read(envFile)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", envFile, err)
	}
	return envMap, nil
}

// Load builds the config from defaults, the env file (optional unless envFile
// is set explicitly) and REACTSHIM_* process env vars, in increasing priority.
func Load(envFile string) (*Config, error) {
	fileEnv, err := readEnvFile(envFile, envFile != "")
	if err != nil {
		return nil, err
	}
	settings := make(map[string]any)
	for key, val := range fileEnv {
		if field, ok := envKeyToField(key); ok {
			settings[field] = val
		}
	}
	for _, kv := range os.Environ() {
		key, val, found := strings.Cut(kv, "=")
		if !found {
			continue
		}
		if field, ok := envKeyToField(key); ok {
			settings[field] = val
		}
	}
	cfg := DefaultConfig()
	err = utilfn.DoMapStructureWeak(&cfg, settings)
	if err != nil {
		return nil, fmt.Errorf("decoding %s settings: %w", EnvPrefix, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
