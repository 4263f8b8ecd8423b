// Package config provides the configuration system for Vixel.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (cmd/vixel)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← VIXEL_*
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← vixel.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The resolved Config is validated once before the editor starts. Helpers
// turn validated string settings into the typed values the canvas and the
// mode controller consume.
//
// # Sub-packages
//
//   - loader: TOML file decoding over an abstract file system
package config
