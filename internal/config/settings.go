package config

// Settings represents user-level configuration stored in
// $REPOSYNC_HOME/settings.yaml. Settings apply to every repository reposync
// is run against; per-run overrides come from command flags.
type Settings struct {
	// Remote is the conventional remote name selected automatically when
	// present (default: origin).
	Remote string `yaml:"remote,omitempty" mapstructure:"remote"`

	// UpstreamURL is the canonical upstream location offered when the
	// repository has no remotes configured.
	UpstreamURL string `yaml:"upstream_url,omitempty" mapstructure:"upstream_url"`

	// BranchPriority is the ordered list of branch names tried when
	// detecting the upstream default branch. First match wins.
	BranchPriority []string `yaml:"branch_priority,omitempty" mapstructure:"branch_priority"`

	// Python configures the dependency environment checks.
	Python PythonConfig `yaml:"python,omitempty" mapstructure:"python"`

	// Logging configures file-based logging.
	Logging LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
}

// PythonConfig configures the virtualenv validation and dependency refresh.
type PythonConfig struct {
	// RequiredVersion is the exact interpreter version the virtualenv must
	// report (default: 3.11.9). The comparison is exact, not a range: a
	// different pre-existing environment is treated as incompatible.
	RequiredVersion string `yaml:"required_version,omitempty" mapstructure:"required_version"`

	// VenvDir is the virtualenv directory relative to the repository root
	// (default: .venv).
	VenvDir string `yaml:"venv_dir,omitempty" mapstructure:"venv_dir"`

	// Manifest is the dependency manifest relative to the repository root
	// (default: requirements.txt).
	Manifest string `yaml:"manifest,omitempty" mapstructure:"manifest"`
}

// LoggingConfig configures file-based logging.
// File logging is enabled by default; disable via settings.yaml.
type LoggingConfig struct {
	// FileEnabled enables logging to file (default: true).
	FileEnabled *bool `yaml:"file_enabled,omitempty" mapstructure:"file_enabled"`
	// MaxSizeMB is the max size in MB before rotation (default: 50).
	MaxSizeMB int `yaml:"max_size_mb,omitempty" mapstructure:"max_size_mb"`
	// MaxAgeDays is max days to retain old logs (default: 7).
	MaxAgeDays int `yaml:"max_age_days,omitempty" mapstructure:"max_age_days"`
	// MaxBackups is max number of old log files to keep (default: 3).
	MaxBackups int `yaml:"max_backups,omitempty" mapstructure:"max_backups"`
}

const (
	defaultRemote        = "origin"
	defaultUpstreamURL   = "https://github.com/schmitthub/reposync-demo.git"
	defaultPythonVersion = "3.11.9"
	defaultVenvDir       = ".venv"
	defaultManifest      = "requirements.txt"
)

// DefaultSettings returns settings populated with every default value.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.Normalize()
	return s
}

// Normalize fills zero-valued fields with their defaults.
func (s *Settings) Normalize() {
	if s.Remote == "" {
		s.Remote = defaultRemote
	}
	if s.UpstreamURL == "" {
		s.UpstreamURL = defaultUpstreamURL
	}
	if len(s.BranchPriority) == 0 {
		s.BranchPriority = []string{"main", "master", "develop"}
	}
	if s.Python.RequiredVersion == "" {
		s.Python.RequiredVersion = defaultPythonVersion
	}
	if s.Python.VenvDir == "" {
		s.Python.VenvDir = defaultVenvDir
	}
	if s.Python.Manifest == "" {
		s.Python.Manifest = defaultManifest
	}
}

// DefaultSettingsYAML is the commented template written by EnsureExists.
const DefaultSettingsYAML = `# reposync user settings
# Remote name selected automatically when present.
remote: origin

# Canonical upstream, offered when the repository has no remotes at all.
upstream_url: https://github.com/schmitthub/reposync-demo.git

# Ordered preference list for upstream default-branch detection.
branch_priority:
  - main
  - master
  - develop

python:
  # Exact interpreter version the virtualenv must report.
  required_version: "3.11.9"
  venv_dir: .venv
  manifest: requirements.txt

logging:
  file_enabled: true
  max_size_mb: 50
  max_age_days: 7
  max_backups: 3
`
