// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.
// Package model defines the data shapes shared by the parsers, the key scanner,
// the doctor and the renderers. They are plain values with JSON tags so a
// report can be printed as a table or emitted as JSON without conversion.
package model
