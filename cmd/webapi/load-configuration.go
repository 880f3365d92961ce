package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Config string `conf:"default:config.yml"`
	Web    struct {
		APIHost         string        `conf:"default:0.0.0.0:3000"`
		ReadTimeout     time.Duration `conf:"default:5s"`
		WriteTimeout    time.Duration `conf:"default:5s"`
		ShutdownTimeout time.Duration `conf:"default:5s"`
	}
	DB struct {
		Filename string `conf:"default:data/pawtrack.db"`
	}
	Uploads struct {
		Path string `conf:"default:assets/uploads"`
	}
	Debug bool `conf:"default:false"`
}

// fileConfig mirrors the subset of settings the optional YAML file may override.
type fileConfig struct {
	Web struct {
		APIHost string `yaml:"apiHost"`
	} `yaml:"web"`
	DB struct {
		Filename string `yaml:"filename"`
	} `yaml:"db"`
	Uploads struct {
		Path string `yaml:"path"`
	} `yaml:"uploads"`
	Debug *bool `yaml:"debug"`
}

// loadConfiguration assembles settings from defaults, environment variables and flags,
// then lets an optional YAML file override the result.
func loadConfiguration() (cfg Config, err error) {

	if err = conf.Parse(os.Args[1:], "PAWTRACK", &cfg); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, usageErr := conf.Usage("PAWTRACK", &cfg)
			if usageErr != nil {
				return cfg, fmt.Errorf("generating config usage: %w", usageErr)
			}
			fmt.Println(usage)
			return cfg, conf.ErrHelpWanted
		}
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}

	// a missing file isn't an error; explicit settings simply stand
	contents, readErr := os.ReadFile(cfg.Config)
	if readErr != nil {
		return cfg, nil
	}

	var overrides fileConfig
	if err = yaml.Unmarshal(contents, &overrides); err != nil {
		return cfg, fmt.Errorf("parsing configuration file %q: %w", cfg.Config, err)
	}

	if overrides.Web.APIHost != "" {
		cfg.Web.APIHost = overrides.Web.APIHost
	}
	if overrides.DB.Filename != "" {
		cfg.DB.Filename = overrides.DB.Filename
	}
	if overrides.Uploads.Path != "" {
		cfg.Uploads.Path = overrides.Uploads.Path
	}
	if overrides.Debug != nil {
		cfg.Debug = *overrides.Debug
	}

	return cfg, nil
}
