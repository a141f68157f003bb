package app

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return p
}

func TestLoadConfigFile_YAML(t *testing.T) {
	p := writeTemp(t, "config.yaml", `
year: 1999
baseURL: https://example.gov/reports
output: out/status.psv
sqlite: out/status.db
cache:
  dir: .cache/pages
  clear: true
fetch:
  concurrency: 2
  attempts: 3
verbose: true
`)
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Year != 1999 || fc.BaseURL != "https://example.gov/reports" {
		t.Fatalf("unexpected config: %+v", fc)
	}
	if fc.SQLite != "out/status.db" || !fc.Cache.Clear || fc.Fetch.Concurrency != 2 {
		t.Fatalf("unexpected config: %+v", fc)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	p := writeTemp(t, "config.json", `{"year": 2000, "output": "y2k.psv"}`)
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Year != 2000 || fc.Output != "y2k.psv" {
		t.Fatalf("unexpected config: %+v", fc)
	}
}

func TestLoadConfigFile_Malformed(t *testing.T) {
	p := writeTemp(t, "config.yaml", "year: [not a number")
	if _, err := LoadConfigFile(p); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	var fc FileConfig
	fc.Year = 2000
	fc.Output = "from-file.psv"
	fc.Fetch.Concurrency = 2

	// Explicit flag values (different from defaults) must survive overlay.
	cfg := Config{Year: 1998, OutputPath: "from-flag.psv", Concurrency: 9}
	ApplyFileConfig(&cfg, fc)
	if cfg.Year != 1998 {
		t.Fatalf("explicit year overridden: %d", cfg.Year)
	}
	if cfg.OutputPath != "from-flag.psv" {
		t.Fatalf("explicit output overridden: %s", cfg.OutputPath)
	}
	if cfg.Concurrency != 9 {
		t.Fatalf("explicit concurrency overridden: %d", cfg.Concurrency)
	}
}

func TestApplyFileConfig_FillsDefaults(t *testing.T) {
	var fc FileConfig
	fc.Year = 2000
	fc.Output = "from-file.psv"
	fc.Cache.Disable = true

	cfg := Config{Year: DefaultYear, OutputPath: DefaultOutputPath}
	ApplyFileConfig(&cfg, fc)
	if cfg.Year != 2000 || cfg.OutputPath != "from-file.psv" {
		t.Fatalf("file config not applied over defaults: %+v", cfg)
	}
	if !cfg.NoCache {
		t.Fatalf("cache.disable not applied")
	}
}
