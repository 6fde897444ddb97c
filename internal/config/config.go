package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/jobtrack/internal/models"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jobtrack"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
	StoreFileName   = "jobs.json"

	// DirEnv relocates the whole config directory.
	DirEnv = "JOBTRACK_CONFIG_DIR"

	DefaultFetchTimeoutSeconds   = 15
	DefaultHostRequestsPerSecond = 1.0
)

// Config contains defaults for processing and storing postings.
type Config struct {
	DefaultStatus       string `json:"default_status"`
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds"`
	StorePath           string `json:"store_path"`
	NormalizeSalary     bool   `json:"normalize_salary"`

	// HostRequestsPerSecond caps fetches per host; 0 disables the limit.
	HostRequestsPerSecond float64 `json:"host_requests_per_second"`
}

func DefaultConfig() Config {
	return Config{
		DefaultStatus:         models.DefaultStatus,
		FetchTimeoutSeconds:   DefaultFetchTimeoutSeconds,
		HostRequestsPerSecond: DefaultHostRequestsPerSecond,
	}
}

// FetchTimeout returns the per-page fetch timeout.
func (c Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return DefaultFetchTimeoutSeconds * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// ResolvedStorePath returns StorePath, or jobs.json in the config dir.
func (c Config) ResolvedStorePath() (string, error) {
	if strings.TrimSpace(c.StorePath) != "" {
		return expandHome(c.StorePath), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StoreFileName), nil
}

func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(DirEnv)); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

// Load reads config.json (JSON5 allowed) over the defaults, then applies
// JOBTRACK_* environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	cfg.DefaultStatus = envString("JOBTRACK_DEFAULT_STATUS", cfg.DefaultStatus)
	cfg.FetchTimeoutSeconds = envInt("JOBTRACK_FETCH_TIMEOUT", cfg.FetchTimeoutSeconds)
	cfg.StorePath = envString("JOBTRACK_STORE", cfg.StorePath)
	cfg.NormalizeSalary = envBool("JOBTRACK_NORMALIZE_SALARY", cfg.NormalizeSalary)
	cfg.HostRequestsPerSecond = envFloat("JOBTRACK_HOST_RPS", cfg.HostRequestsPerSecond)
	return cfg
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("JOBTRACK_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
