package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	apiclient "github.com/shishir-py/personal-portfolio-sub000/pkg/api/client"
)

const defaultAPIBaseURL = "http://localhost:4000"

type cliConfig struct {
	APIBaseURL   string `json:"api_base_url"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func loadConfig() (cliConfig, error) {
	path, err := configPath("config.json")
	if err != nil {
		return cliConfig{}, err
	}
	cfg := cliConfig{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cliConfig{}, err
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cliConfig{}, err
		}
	}
	if override := strings.TrimSpace(apiOverride); override != "" {
		cfg.APIBaseURL = override
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	return cfg, nil
}

func saveConfig(cfg cliConfig) error {
	path, err := configPath("config.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func configPath(name string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "folio", name), nil
}

// session loads the saved config and a client for it. When admin is set a
// stored access token is required.
func session(admin bool) (cliConfig, *apiclient.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cliConfig{}, nil, err
	}
	if admin && strings.TrimSpace(cfg.AccessToken) == "" {
		return cliConfig{}, nil, errors.New("please login first using 'folio login'")
	}
	client, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		return cliConfig{}, nil, err
	}
	return cfg, client, nil
}
