// Package brand provides centralized naming constants for the watchdog.
//
// The brand identity is loaded from brand.json at compile time via go:embed,
// so packaging scripts can read the same file.
package brand

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information
type Brand struct {
	Name            string `json:"name"`
	LowerName       string `json:"lowerName"`
	Vendor          string `json:"vendor"`
	Website         string `json:"website"`
	Repository      string `json:"repository"`
	Description     string `json:"description"`
	Tagline         string `json:"tagline"`
	ConfigEnvPrefix string `json:"configEnvPrefix"`
	DefaultLogDir   string `json:"defaultLogDir"`
	DefaultRunDir   string `json:"defaultRunDir"`
	BinaryName      string `json:"binaryName"`
	LogFileName     string `json:"logFileName"`
	MetricsFileName string `json:"metricsFileName"`
	Copyright       string `json:"copyright"`
	License         string `json:"license"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Vendor = b.Vendor
	Website = b.Website
	Repository = b.Repository
	Description = b.Description
	Tagline = b.Tagline
	ConfigEnvPrefix = b.ConfigEnvPrefix
	DefaultLogDir = b.DefaultLogDir
	DefaultRunDir = b.DefaultRunDir
	BinaryName = b.BinaryName
	LogFileName = b.LogFileName
	MetricsFileName = b.MetricsFileName
	Copyright = b.Copyright
	License = b.License
}

var (
	Name            string
	LowerName       string
	Vendor          string
	Website         string
	Repository      string
	Description     string
	Tagline         string
	ConfigEnvPrefix string
	DefaultLogDir   string
	DefaultRunDir   string
	BinaryName      string
	LogFileName     string
	MetricsFileName string
	Copyright       string
	License         string

	// Version is set at build time via -ldflags
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// EnvVar returns the environment variable name for a setting,
// e.g. EnvVar("LOG_FILE") == "WANWATCH_LOG_FILE".
func EnvVar(name string) string {
	return ConfigEnvPrefix + "_" + name
}

// GetLogDir returns the log directory, checking env vars first.
// Priority: WANWATCH_LOG_DIR > WANWATCH_PREFIX/log > DefaultLogDir
func GetLogDir() string {
	if dir := os.Getenv(EnvVar("LOG_DIR")); dir != "" {
		return dir
	}
	if prefix := os.Getenv(EnvVar("PREFIX")); prefix != "" {
		return filepath.Join(prefix, "log")
	}
	return DefaultLogDir
}

// DefaultLogFile is the persistent log sink used when none is configured.
func DefaultLogFile() string {
	return filepath.Join(GetLogDir(), LogFileName)
}

// VersionString returns a one-line version banner.
func VersionString() string {
	return Name + " " + Version + " (" + GitCommit + ", built " + BuildTime + ")"
}
