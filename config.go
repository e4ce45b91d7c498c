package yongeon

import (
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

const (
	// EnvDictDir overrides Config.DictionaryDir when set.
	EnvDictDir = "YONGEON_DICT_DIR"

	DfltDictionaryDir          = "dictionary"
	DfltDictionaryName         = "default"
	DfltCitationMarker         = "다"
	DfltLogLevel               = "info"
	DfltListenAddress          = "localhost:8080"
	DfltServerReadTimeoutSecs  = 10
	DfltServerWriteTimeoutSecs = 30
	DfltRequestsBurst          = 100

	VerbsFile      = "Verbs.txt"
	AdjectivesFile = "Adjectives.txt"
	EndingsFile    = "Eomis.txt"
	RulesFile      = "rules.txt"
)

// ServerConf configures the HTTP API.
type ServerConf struct {
	ListenAddress      string   `json:"listenAddress"`
	ReadTimeoutSecs    int      `json:"readTimeoutSecs"`
	WriteTimeoutSecs   int      `json:"writeTimeoutSecs"`
	CORSAllowedOrigins []string `json:"corsAllowedOrigins"`

	// RequestsPerSecond limits the overall request rate, 0 disables limiting.
	RequestsPerSecond float64 `json:"requestsPerSecond"`
	Burst             int     `json:"burst"`

	// WatchDictionary enables reloading the dictionary when its files change.
	WatchDictionary bool `json:"watchDictionary"`
}

// Config selects the dictionary set and the runtime environment.
type Config struct {
	DictionaryDir  string     `json:"dictionaryDir"`
	DictionaryName string     `json:"dictionaryName"`
	CitationMarker string     `json:"citationMarker"`
	LogPath        string     `json:"logPath"`
	LogLevel       string     `json:"logLevel"`
	Server         ServerConf `json:"server"`
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	conf := &Config{}
	conf.ApplyDefaults()
	return conf
}

// LoadConfig reads a JSON configuration file and applies defaults
// to the missing values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, newConfigError("config", "path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Config
	if err := sonic.Unmarshal(rawData, &conf); err != nil {
		return nil, newConfigError("config", "failed to parse %s: %s", path, err)
	}
	conf.ApplyDefaults()
	return &conf, nil
}

// ApplyDefaults fills in zero values. The EnvDictDir variable
// takes precedence over the configured dictionary directory.
func (c *Config) ApplyDefaults() {
	if dir := os.Getenv(EnvDictDir); dir != "" {
		c.DictionaryDir = dir
	}
	if c.DictionaryDir == "" {
		c.DictionaryDir = DfltDictionaryDir
	}
	if c.DictionaryName == "" {
		c.DictionaryName = DfltDictionaryName
	}
	if c.CitationMarker == "" {
		c.CitationMarker = DfltCitationMarker
	}
	if c.LogLevel == "" {
		c.LogLevel = DfltLogLevel
	}
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = DfltListenAddress
	}
	if c.Server.ReadTimeoutSecs == 0 {
		c.Server.ReadTimeoutSecs = DfltServerReadTimeoutSecs
	}
	if c.Server.WriteTimeoutSecs == 0 {
		c.Server.WriteTimeoutSecs = DfltServerWriteTimeoutSecs
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = DfltRequestsBurst
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c == nil {
		return newConfigError("config", "missing configuration")
	}
	if c.DictionaryDir == "" {
		return newConfigError("dictionaryDir", "must not be empty")
	}
	if c.DictionaryName == "" || filepath.Base(c.DictionaryName) != c.DictionaryName {
		return newConfigError("dictionaryName", "%q is not a plain directory name", c.DictionaryName)
	}
	if !validMorph(c.CitationMarker) {
		return newConfigError("citationMarker", "invalid value %q", c.CitationMarker)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return newConfigError("logLevel", "invalid logging level %q", c.LogLevel)
	}
	if c.Server.ReadTimeoutSecs < 0 || c.Server.WriteTimeoutSecs < 0 {
		return newConfigError("server", "timeouts must not be negative")
	}
	if c.Server.RequestsPerSecond < 0 || c.Server.Burst < 0 {
		return newConfigError("server", "rate limit must not be negative")
	}
	return nil
}

// DictionaryPaths locates the files of one dictionary set.
type DictionaryPaths struct {
	Dir        string
	Verbs      string
	Adjectives string
	Endings    string
	Rules      string
}

// PathsIn returns the standard file layout of a dictionary set stored in dir.
func PathsIn(dir string) DictionaryPaths {
	return DictionaryPaths{
		Dir:        dir,
		Verbs:      filepath.Join(dir, VerbsFile),
		Adjectives: filepath.Join(dir, AdjectivesFile),
		Endings:    filepath.Join(dir, EndingsFile),
		Rules:      filepath.Join(dir, RulesFile),
	}
}

// DictionaryPaths returns the files of the configured dictionary set.
func (c *Config) DictionaryPaths() DictionaryPaths {
	return PathsIn(filepath.Join(c.DictionaryDir, c.DictionaryName))
}
