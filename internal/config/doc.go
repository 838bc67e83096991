// Package config loads, normalizes, and validates the mediasort TOML
// configuration. Loading never fails just because the file is absent;
// defaults are applied first and the file overlays them.
package config
