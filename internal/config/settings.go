package config

import (
	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/fsys"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Save writes cfg to .genny/settings.yml under rootDir, replacing the
// previous file atomically.
func Save(rootDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to encode settings"), errors.ErrSerialization)
	}

	path := Path(rootDir)
	if err := fsys.WriteAtomic(afero.NewOsFs(), path, data); err != nil {
		return errors.Mark(errors.Wrapf(err, "Error saving settings to file '%s'", path), errors.ErrIOFailure)
	}
	return nil
}

// UpdateSetting loads the settings for rootDir, assigns value to key and
// saves the result. Unknown keys yield ErrUnknownSetting and leave the
// file untouched.
func UpdateSetting(rootDir, key, value string) (*Config, error) {
	cfg, err := NewLoader(rootDir).Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Set(key, value); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}

	if err := Save(rootDir, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
