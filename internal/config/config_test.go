package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input.Pattern != "src/preprocessed/*.xml" {
		t.Errorf("expected default pattern, got %s", cfg.Input.Pattern)
	}
	if cfg.Output.Dir != "public" {
		t.Errorf("expected output dir 'public', got %s", cfg.Output.Dir)
	}
	if cfg.Output.Format != "html" || !cfg.Output.Index {
		t.Errorf("expected html output with index, got %+v", cfg.Output)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Workers)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("expected catalog disabled by default, got %s", cfg.Catalog.Path)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(*Config) bool
	}{
		{"output.dir", "site", false, func(c *Config) bool { return c.Output.Dir == "site" }},
		{"output.format", "Markdown", false, func(c *Config) bool { return c.Output.Format == "markdown" }},
		{"output.index", "false", false, func(c *Config) bool { return !c.Output.Index }},
		{"output.index", "maybe", true, nil},
		{"input.strict", "true", false, func(c *Config) bool { return c.Input.Strict }},
		{"workers", "8", false, func(c *Config) bool { return c.Workers == 8 }},
		{"workers", "0", true, nil},
		{"workers", "many", true, nil},
		{"render.page_size", "Letter", false, func(c *Config) bool { return c.Render.PageSize == "Letter" }},
		{"catalog.path", "plays.db", false, func(c *Config) bool { return c.Catalog.Path == "plays.db" }},
		{"logging.format", "JSON", false, func(c *Config) bool { return c.Logging.Format == "json" }},
		{"logging.format", "xml", true, nil},
		{"nonexistent", "x", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Set(%q, %q) did not apply: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestKeys_AllSettable(t *testing.T) {
	for _, key := range Keys {
		value := "1"
		if key == "logging.format" {
			value = "json"
		}
		if err := DefaultConfig().Set(key, value); err != nil {
			t.Errorf("listed key %s rejected: %v", key, err)
		}
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("PLAY2HTML_OUTPUT_DIR", "/srv/www")
	t.Setenv("PLAY2HTML_WORKERS", "2")
	t.Setenv("PLAY2HTML_STRICT", "yes")
	t.Setenv("PLAY2HTML_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Output.Dir != "/srv/www" {
		t.Errorf("expected output dir from env, got %s", cfg.Output.Dir)
	}
	if cfg.Workers != 2 {
		t.Errorf("expected 2 workers from env, got %d", cfg.Workers)
	}
	if !cfg.Input.Strict {
		t.Error("expected strict mode from env")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level from env, got %s", cfg.Logging.Level)
	}
	if cfg.Output.Format != "html" {
		t.Errorf("expected unset env to keep default, got %s", cfg.Output.Format)
	}
}

func TestConfig_ResolvePaths(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "home", "plays")
	abs := filepath.Join(string(filepath.Separator), "tmp", "out")

	cfg := DefaultConfig()
	cfg.Output.Dir = abs
	cfg.ResolvePaths(base)

	if cfg.Input.Pattern != filepath.Join(base, "src", "preprocessed", "*.xml") {
		t.Errorf("unexpected pattern: %s", cfg.Input.Pattern)
	}
	if cfg.Output.Dir != abs {
		t.Errorf("expected absolute dir unchanged, got %s", cfg.Output.Dir)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("expected empty catalog path unchanged, got %s", cfg.Catalog.Path)
	}
}

func TestBaseDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := BaseDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != dir {
		t.Errorf("expected %s, got %s", dir, got)
	}

	t.Setenv(HomeEnv, "")
	got, err = BaseDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wd, _ := os.Getwd()
	if got != wd {
		t.Errorf("expected working directory %s, got %s", wd, got)
	}
}

func TestLoader_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg := DefaultConfig()
	cfg.Output.Format = "markdown"
	cfg.Workers = 6

	if err := loader.Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if !loader.Exists() {
		t.Error("expected config file to exist")
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if loaded.Output.Format != "markdown" {
		t.Errorf("expected format 'markdown', got %s", loaded.Output.Format)
	}
	if loaded.Workers != 6 {
		t.Errorf("expected 6 workers, got %d", loaded.Workers)
	}
}

func TestLoader_LoadNonExistent(t *testing.T) {
	loader := NewLoaderWithPath(filepath.Join(t.TempDir(), "nonexistent.yaml"))

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Dir != "public" {
		t.Errorf("expected default config, got %+v", cfg.Output)
	}
}

func TestLoader_LoadPartialKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  dir: site\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Output.Dir != "site" {
		t.Errorf("expected dir 'site', got %s", cfg.Output.Dir)
	}
	if cfg.Output.Format != "html" || cfg.Workers != 4 {
		t.Errorf("expected missing keys to keep defaults, got %+v", cfg)
	}
}

func TestLoader_LoadInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("workers: [1, 2"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := NewLoaderWithPath(configPath).Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoader_EnvExpansion(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "output:\n  dir: ${TEST_PLAY_OUTPUT}\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("TEST_PLAY_OUTPUT", "/var/www/plays")

	loader := NewLoaderWithPath(configPath)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Output.Dir != "/var/www/plays" {
		t.Errorf("expected expanded dir, got %s", cfg.Output.Dir)
	}

	raw, err := loader.LoadRaw()
	if err != nil {
		t.Fatalf("failed to load raw config: %v", err)
	}
	if raw.Output.Dir != "${TEST_PLAY_OUTPUT}" {
		t.Errorf("expected raw reference, got %s", raw.Output.Dir)
	}
}

func TestLoader_DotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(filepath.Join(tmpDir, EnvFileName), []byte("TEST_PLAY_DOTENV=from-dotenv\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	if err := os.WriteFile(configPath, []byte("render:\n  index_title: ${TEST_PLAY_DOTENV}\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	os.Unsetenv("TEST_PLAY_DOTENV")
	t.Cleanup(func() { os.Unsetenv("TEST_PLAY_DOTENV") })

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Render.IndexTitle != "from-dotenv" {
		t.Errorf("expected value from .env, got %s", cfg.Render.IndexTitle)
	}
}

func TestLoader_Init(t *testing.T) {
	loader := NewLoaderWithPath(filepath.Join(t.TempDir(), "sub", "config.yaml"))

	if err := loader.Init(); err != nil {
		t.Fatalf("failed to init: %v", err)
	}
	if !loader.Exists() {
		t.Error("expected config file to exist after init")
	}

	err := loader.Init()
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected already exists error, got %v", err)
	}
}

func TestLoader_ConfigPath(t *testing.T) {
	loader, err := NewLoader()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if !strings.HasSuffix(loader.ConfigPath(), filepath.Join(ConfigDirName, ConfigFileName)) {
		t.Errorf("unexpected config path: %s", loader.ConfigPath())
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_PLAY_VAR", "test_value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_PLAY_VAR}", "test_value"},
		{"prefix_${TEST_PLAY_VAR}_suffix", "prefix_test_value_suffix"},
		{"${NONEXISTENT_PLAY_VAR}", ""},
		{"no_vars", "no_vars"},
	}

	for _, tt := range tests {
		if result := expandEnvVars(tt.input); result != tt.expected {
			t.Errorf("expandEnvVars(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_PLAY_BOOL", "Yes")
	t.Setenv("TEST_PLAY_INT", "12")
	t.Setenv("TEST_PLAY_BAD_INT", "twelve")

	if !GetEnvBool("TEST_PLAY_BOOL") {
		t.Error("expected GetEnvBool to accept 'Yes'")
	}
	if GetEnvBool("TEST_PLAY_UNSET") {
		t.Error("expected unset variable to be false")
	}
	if GetEnvInt("TEST_PLAY_INT", 1) != 12 {
		t.Error("expected 12")
	}
	if GetEnvInt("TEST_PLAY_BAD_INT", 1) != 1 {
		t.Error("expected default for invalid int")
	}
	if GetEnvOrDefault("TEST_PLAY_UNSET", "fallback") != "fallback" {
		t.Error("expected fallback")
	}
}
