// Package config loads prompt configuration from TOML or YAML files,
// builds the keymap registry from it, and watches for live reloads.
package config
