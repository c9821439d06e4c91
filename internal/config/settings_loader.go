package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// SettingsFileName is the name of the user settings file.
const SettingsFileName = "settings.yaml"

// envPrefix is the prefix for environment overrides, e.g.
// REPOSYNC_REMOTE or REPOSYNC_PYTHON_REQUIRED_VERSION.
const envPrefix = "REPOSYNC"

// SettingsLoader handles loading and saving of user settings.
type SettingsLoader struct {
	path string
}

// NewSettingsLoader creates a SettingsLoader rooted at the reposync home.
func NewSettingsLoader() (*SettingsLoader, error) {
	home, err := ReposyncHome()
	if err != nil {
		return nil, fmt.Errorf("determining reposync home: %w", err)
	}
	return &SettingsLoader{
		path: filepath.Join(home, SettingsFileName),
	}, nil
}

// NewSettingsLoaderAt creates a SettingsLoader for an explicit file path.
func NewSettingsLoaderAt(path string) *SettingsLoader {
	return &SettingsLoader{path: path}
}

// Path returns the full path to the settings file.
func (l *SettingsLoader) Path() string {
	return l.path
}

// Exists checks if the settings file exists.
func (l *SettingsLoader) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// Load reads the settings file, layering REPOSYNC_* environment variables
// over it and defaults under it. A missing file is not an error; the
// defaults are returned.
func (l *SettingsLoader) Load() (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(l.path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registering defaults also makes the keys visible to AutomaticEnv.
	defaults := DefaultSettings()
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("upstream_url", defaults.UpstreamURL)
	v.SetDefault("branch_priority", defaults.BranchPriority)
	v.SetDefault("python.required_version", defaults.Python.RequiredVersion)
	v.SetDefault("python.venv_dir", defaults.Python.VenvDir)
	v.SetDefault("python.manifest", defaults.Python.Manifest)
	v.SetDefault("logging.max_size_mb", 0)
	v.SetDefault("logging.max_age_days", 0)
	v.SetDefault("logging.max_backups", 0)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading settings file %s: %w", l.path, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", l.path, err)
	}
	settings.Normalize()

	return &settings, nil
}

// Save writes the settings to the file, creating the parent directory if
// needed.
func (l *SettingsLoader) Save(s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// EnsureExists creates the settings file with the commented default template
// if it doesn't exist. Returns true if the file was created.
func (l *SettingsLoader) EnsureExists() (bool, error) {
	if l.Exists() {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(l.path, []byte(DefaultSettingsYAML), 0o644); err != nil {
		return false, fmt.Errorf("writing settings file: %w", err)
	}
	return true, nil
}
