package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config keys
const (
	KeySourceDir = "source_dir"
	KeyGroups    = "groups"
)

// File names looked up in the user's config directory and the source directory
var (
	userConfigFiles   = []string{"config.toml", "config.yaml", "config.yml"}
	sourceConfigFiles = []string{".dotlink.toml", "dotlink.toml"}
)

// LinkConfig is a single link entry as written in a config file
type LinkConfig struct {
	Source       string   `koanf:"source"`
	Destinations []string `koanf:"destinations"`
}

// GroupConfig is a named group as written in a config file
type GroupConfig struct {
	Description string       `koanf:"description"`
	Links       []LinkConfig `koanf:"links"`
}

// Config is the effective configuration after all layers are merged
type Config struct {
	SourceDir string                 `koanf:"source_dir"`
	Groups    map[string]GroupConfig `koanf:"groups"`

	// Paths resolved for this run
	Paths *paths.Paths `koanf:"-"`

	// Files lists the config files that were loaded, in load order
	Files []string `koanf:"-"`
}

// LoadOptions carries command-line overrides
type LoadOptions struct {
	// SourceDir overrides every other source directory setting
	SourceDir string

	// ConfigFile is an explicit config file; it must exist
	ConfigFile string
}

// Load builds the effective configuration. Layers, lowest precedence first:
//  1. embedded defaults
//  2. $XDG_CONFIG_HOME/dotlink/config.{toml,yaml,yml}
//  3. <source>/.dotlink.toml or <source>/dotlink.toml
//  4. opts.ConfigFile
//  5. opts.SourceDir
//
// The source directory is settled before layer 3 is read, so layer 3
// cannot move it.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	// Home and XDG config do not depend on the source directory
	bootstrap, err := paths.New(opts.SourceDir)
	if err != nil {
		return nil, err
	}

	userFile := firstExisting(bootstrap.ConfigDir(), userConfigFiles)

	var explicitFile string
	if opts.ConfigFile != "" {
		explicitFile, err = bootstrap.Expand(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(explicitFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", explicitFile)
		}
	}

	// First pass settles the source directory
	k, err := loadLayers(userFile, "", explicitFile, opts.SourceDir)
	if err != nil {
		return nil, err
	}

	p := bootstrap
	if opts.SourceDir == "" {
		if dir := k.String(KeySourceDir); dir != "" {
			if p, err = paths.New(dir); err != nil {
				return nil, err
			}
		}
	}

	sourceFile := firstExisting(p.SourceDir(), sourceConfigFiles)
	if sourceFile != "" {
		// Reload everything so precedence holds with the new layer in place
		k, err = loadLayers(userFile, sourceFile, explicitFile, p.SourceDir())
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	cfg.SourceDir = p.SourceDir()
	cfg.Paths = p
	for _, f := range []string{userFile, sourceFile, explicitFile} {
		if f != "" {
			cfg.Files = append(cfg.Files, f)
		}
	}

	logger.Debug().
		Str("sourceDir", cfg.SourceDir).
		Strs("files", cfg.Files).
		Int("groups", len(cfg.Groups)).
		Msg("Configuration loaded")

	return cfg, nil
}

// loadLayers loads the layers in precedence order. Empty file names are skipped.
func loadLayers(userFile, sourceFile, explicitFile, sourceDir string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	for _, path := range []string{userFile, sourceFile, explicitFile} {
		if path == "" {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}

	if sourceDir != "" {
		overrides := map[string]interface{}{KeySourceDir: sourceDir}
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return k, nil
}

// loadFile merges a TOML or YAML file, picked by extension
func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return errors.Newf(errors.ErrConfigParse, "unsupported config file type %q", path).
			WithDetail("path", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
