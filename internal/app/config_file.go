package app

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "time"

    yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested
// sections improve readability and map naturally to flags/env.
type FileConfig struct {
    Year    int    `yaml:"year" json:"year"`
    BaseURL string `yaml:"baseURL" json:"baseURL"`

    Output string `yaml:"output" json:"output"`
    XLSX   string `yaml:"xlsx" json:"xlsx"`
    SQLite string `yaml:"sqlite" json:"sqlite"`
    PDF    string `yaml:"pdf" json:"pdf"`

    Cache struct {
        Dir     string        `yaml:"dir" json:"dir"`
        MaxAge  time.Duration `yaml:"maxAge" json:"maxAge"`
        Clear   bool          `yaml:"clear" json:"clear"`
        Disable bool          `yaml:"disable" json:"disable"`
    } `yaml:"cache" json:"cache"`

    Fetch struct {
        Concurrency int           `yaml:"concurrency" json:"concurrency"`
        Attempts    int           `yaml:"attempts" json:"attempts"`
        Timeout     time.Duration `yaml:"timeout" json:"timeout"`
        Backoff     time.Duration `yaml:"backoff" json:"backoff"`
        UserAgent   string        `yaml:"ua" json:"ua"`
    } `yaml:"fetch" json:"fetch"`

    Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// Defaults shared between flag registration and the file-config overlay so
// the overlay can tell "flag left at default" apart from an explicit value.
const (
    DefaultOutputPath  = "output/nrc_reactor_status_1999.psv"
    DefaultCacheDir    = ".cache/nrc-html"
    DefaultYear        = 1999
    DefaultConcurrency = 4
    DefaultAttempts    = 5
    DefaultTimeout     = 30 * time.Second
    DefaultUserAgent   = "reactorstatus/1.0 (+https://github.com/nukewatch/reactorstatus)"
)

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset or still at their flag default. Flags should
// already have been parsed; this lets file config supply defaults while
// preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil {
        return
    }

    if (cfg.Year == 0 || cfg.Year == DefaultYear) && fc.Year != 0 {
        cfg.Year = fc.Year
    }
    if cfg.BaseURL == "" && fc.BaseURL != "" {
        cfg.BaseURL = fc.BaseURL
    }
    if (cfg.OutputPath == "" || cfg.OutputPath == DefaultOutputPath) && fc.Output != "" {
        cfg.OutputPath = fc.Output
    }
    if cfg.XLSXPath == "" && fc.XLSX != "" {
        cfg.XLSXPath = fc.XLSX
    }
    if cfg.SQLitePath == "" && fc.SQLite != "" {
        cfg.SQLitePath = fc.SQLite
    }
    if cfg.PDFPath == "" && fc.PDF != "" {
        cfg.PDFPath = fc.PDF
    }

    if (cfg.CacheDir == "" || cfg.CacheDir == DefaultCacheDir) && fc.Cache.Dir != "" {
        cfg.CacheDir = fc.Cache.Dir
    }
    if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
        cfg.CacheMaxAge = fc.Cache.MaxAge
    }
    if fc.Cache.Clear {
        cfg.CacheClear = true
    }
    if fc.Cache.Disable {
        cfg.NoCache = true
    }

    if (cfg.Concurrency == 0 || cfg.Concurrency == DefaultConcurrency) && fc.Fetch.Concurrency > 0 {
        cfg.Concurrency = fc.Fetch.Concurrency
    }
    if (cfg.MaxAttempts == 0 || cfg.MaxAttempts == DefaultAttempts) && fc.Fetch.Attempts > 0 {
        cfg.MaxAttempts = fc.Fetch.Attempts
    }
    if (cfg.PerRequestTimeout == 0 || cfg.PerRequestTimeout == DefaultTimeout) && fc.Fetch.Timeout > 0 {
        cfg.PerRequestTimeout = fc.Fetch.Timeout
    }
    if cfg.RetryBackoff == 0 && fc.Fetch.Backoff > 0 {
        cfg.RetryBackoff = fc.Fetch.Backoff
    }
    if (cfg.UserAgent == "" || cfg.UserAgent == DefaultUserAgent) && fc.Fetch.UserAgent != "" {
        cfg.UserAgent = fc.Fetch.UserAgent
    }

    if fc.Verbose {
        cfg.Verbose = true
    }
}
