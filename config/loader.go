package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// NewFromURL loads, initialises and validates config from JSON or YAML URL
func NewFromURL(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download config: %v", URL)
	}
	cfg, err := decode(data, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode config: %v", URL)
	}
	cfg.URL = URL
	if cfg.EnvURL != "" {
		cfg.EnvURL = resolveURL(URL, cfg.EnvURL)
		if err = loadEnv(ctx, fs, cfg.EnvURL); err != nil {
			return nil, err
		}
	}
	cfg.Init()
	return cfg, cfg.Validate()
}

// decode normalises YAML into generic map first so that both formats share JSON field mapping
func decode(data []byte, URL string) (*Config, error) {
	if ext := strings.ToLower(filepath.Ext(URL)); ext == ".yaml" || ext == ".yml" {
		aMap := map[string]interface{}{}
		if err := yaml.Unmarshal(data, &aMap); err != nil {
			return nil, err
		}
		var err error
		if data, err = json.Marshal(aMap); err != nil {
			return nil, err
		}
	}
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnv sets variables defined in .env file, variables already present in the environment are kept
func loadEnv(ctx context.Context, fs afs.Service, URL string) error {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return errors.Wrapf(err, "failed to download env: %v", URL)
	}
	values, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return errors.Wrapf(err, "failed to parse env: %v", URL)
	}
	for key, value := range values {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err = os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// resolveURL resolves location relative to config URL
func resolveURL(configURL, location string) string {
	if !url.IsRelative(location) || filepath.IsAbs(location) {
		return location
	}
	if strings.Contains(configURL, "://") {
		parent, _ := url.Split(configURL, "file")
		return url.Join(parent, location)
	}
	return filepath.Join(filepath.Dir(configURL), location)
}
