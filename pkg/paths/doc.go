// Package paths provides centralized path handling for dotlink.
//
// It resolves the user's home and XDG config directories (via adrg/xdg),
// discovers the dotfiles source directory, expands the placeholders that
// registry entries may use, and resolves symlink chains the way the planner
// needs to compare an existing destination with its desired source.
package paths
