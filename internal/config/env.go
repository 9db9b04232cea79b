// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the `env` and `envPrefix` tags of
// [StructuredConfig]. Blank variables count as unset, so an exported but
// empty ADAPTER_ADDRESS does not hide the flag or the JSON value.
func parseEnv(cfg any) error {
	opts := env.Options{Environment: environWithoutBlanks(os.Environ())}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

func environWithoutBlanks(environ []string) map[string]string {
	vars := env.ToMap(environ)
	for key, value := range vars {
		if strings.TrimSpace(value) == "" {
			delete(vars, key)
		}
	}
	return vars
}
