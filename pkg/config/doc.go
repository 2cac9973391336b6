// Package config handles configuration management for dotlink.
// It layers the embedded defaults, the user's XDG config file, a file in
// the source directory, an explicit --config file and command-line
// overrides using koanf, and exposes the result as a Config.
package config
