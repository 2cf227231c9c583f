// Package config loads parse-checker.yaml. Every field has a default, so a
// missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "parse-checker.yaml"

// ToolsConfig names external executables. An empty path means the tool is
// not used.
type ToolsConfig struct {
	// PrintAST is the previous release's print-ast helper that the CLI diffs
	// against.
	PrintAST     string `yaml:"print_ast"`
	Mcrl22lps    string `yaml:"mcrl22lps"`
	Lps2pbes     string `yaml:"lps2pbes"`
	Mcrl22lpsOld string `yaml:"mcrl22lps_old"`
	Lps2pbesOld  string `yaml:"lps2pbes_old"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	Port int    `yaml:"port"`
}

type CorpusConfig struct {
	Patterns     []string `yaml:"patterns"`
	SnapshotDir  string   `yaml:"snapshot_dir"`
	Quantitative []string `yaml:"quantitative"`
}

type WatchConfig struct {
	DebounceWindow time.Duration `yaml:"debounce_window"`
	MaxBatchSize   int           `yaml:"max_batch_size"`
}

type LogConfig struct {
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file"`
}

type Config struct {
	Tools  ToolsConfig  `yaml:"tools"`
	Server ServerConfig `yaml:"server"`
	Corpus CorpusConfig `yaml:"corpus"`
	Watch  WatchConfig  `yaml:"watch"`
	Log    LogConfig    `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Tools: ToolsConfig{
			PrintAST: "mcrl2-2024",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1",
			Port: 3000,
		},
		Corpus: CorpusConfig{
			Patterns:    []string{"**/*.mcrl2", "**/*.mcf"},
			SnapshotDir: "snapshot",
		},
		Watch: WatchConfig{
			DebounceWindow: 300 * time.Millisecond,
			MaxBatchSize:   100,
		},
		Log: LogConfig{
			Verbosity: 0,
		},
	}
}

// Load overlays the YAML file at path on the defaults. A missing file yields
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ValidationError collects every problem found in a configuration.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Issues, "; ")
}

// Validate checks values that would only fail later, such as an
// unusable port.
func (c *Config) Validate() error {
	var issues []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if len(c.Corpus.Patterns) == 0 {
		issues = append(issues, "corpus.patterns must not be empty")
	}
	if c.Watch.DebounceWindow < 0 {
		issues = append(issues, "watch.debounce_window must not be negative")
	}
	if c.Watch.MaxBatchSize <= 0 {
		issues = append(issues, "watch.max_batch_size must be positive")
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// MissingTools lists the configured tools whose paths do not exist, as
// "name: path". Tools given as bare names are looked up on PATH by the
// caller and are not reported here.
func (c *Config) MissingTools() []string {
	tools := []struct{ name, path string }{
		{"mcrl22lps", c.Tools.Mcrl22lps},
		{"lps2pbes", c.Tools.Lps2pbes},
		{"mcrl22lps-old", c.Tools.Mcrl22lpsOld},
		{"lps2pbes-old", c.Tools.Lps2pbesOld},
	}

	var missing []string
	for _, tool := range tools {
		if tool.path == "" || !strings.ContainsRune(tool.path, os.PathSeparator) {
			continue
		}
		if _, err := os.Stat(tool.path); err != nil {
			missing = append(missing, tool.name+": "+tool.path)
		}
	}
	return missing
}

// IsQuantitative reports whether a formula file was listed as quantitative.
func (c *Config) IsQuantitative(path string) bool {
	for _, q := range c.Corpus.Quantitative {
		if strings.HasSuffix(path, q) {
			return true
		}
	}
	return false
}
