package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	xterm "golang.org/x/term"

	"github.com/wippyai/beam-runtime/errors"
)

// defaultConfigFile is read from the working directory when -config is not
// given. A missing default file is not an error.
const defaultConfigFile = "beamdump.toml"

// Config is the beamdump.toml layout.
type Config struct {
	Decode DecodeConfig `toml:"decode"`
	Output OutputConfig `toml:"output"`
}

// DecodeConfig controls instruction decoding.
type DecodeConfig struct {
	Workers   int  `toml:"workers"`    // parallel files; 0 means one per file
	StrictEnd bool `toml:"strict_end"` // require a trailing int_code_end
}

// OutputConfig controls the listing.
type OutputConfig struct {
	Color        string `toml:"color"` // auto, always or never
	ResolveAtoms bool   `toml:"resolve_atoms"`
	Functions    bool   `toml:"functions"`
}

func defaultConfig() Config {
	return Config{
		Output: OutputConfig{Color: "auto", ResolveAtoms: true},
	}
}

// loadConfig parses path over the defaults. An empty path tries
// defaultConfigFile.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse "+path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.InvalidData(errors.PhaseConfig, []string{path},
			fmt.Sprintf("unknown key %s", undecoded[0]))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Decode.Workers < 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidData).
			Path("decode", "workers").
			Value(c.Decode.Workers).
			Detail("must not be negative").
			Build()
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidData).
			Path("output", "color").
			Expected("auto, always or never").
			Value(c.Output.Color).
			Build()
	}
	return nil
}

// useColor resolves the color mode against the output descriptor.
func (c Config) useColor(fd uintptr) bool {
	switch c.Output.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return xterm.IsTerminal(int(fd))
	}
}
