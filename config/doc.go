// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.
// Package config provides configuration loading and persistence helpers for
// devcheck. It uses Viper for file/env/flag parsing and goccy/go-yaml to
// write configuration files.
package config
