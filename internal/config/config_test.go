package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a main.toml into a temp directory and returns the
// directory path with a trailing separator, the way ReadConfig expects it.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	return dir + string(filepath.Separator)
}

const testConfig = `
Title = "GoRadius-Admin Test"

[DB]
GormEngine = "sqlite"
Path = "test.db"

[Radius]
SessionTimeLimit = "3600"
`

func TestReadConfig(t *testing.T) {
	configPath := writeTestConfig(t, testConfig)

	cfg, err := ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "GoRadius-Admin Test" {
		t.Errorf("Title = %v, want %v", cfg.Title, "GoRadius-Admin Test")
	}

	if cfg.DB.GormEngine != "sqlite" {
		t.Errorf("DB.GormEngine = %v, want sqlite", cfg.DB.GormEngine)
	}

	if cfg.Radius.SessionTimeLimit != "3600" {
		t.Errorf("Radius.SessionTimeLimit = %v, want 3600", cfg.Radius.SessionTimeLimit)
	}

	// The traffic limit was not set and falls back to the default.
	if cfg.Radius.SessionTrafficLimit != "3000000000" {
		t.Errorf("Radius.SessionTrafficLimit = %v, want 3000000000", cfg.Radius.SessionTrafficLimit)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	dir := t.TempDir() + string(filepath.Separator)

	if _, err := ReadConfig(dir); err == nil {
		t.Error("ReadConfig() should fail when main.toml is missing")
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	configPath := writeTestConfig(t, testConfig)

	jsonOverride := `{"Title":"Test Override","Radius":{"SessionTimeLimit":"60"}}`
	t.Setenv("GO_RADIUS_ADMIN_CONFIG_JSON", jsonOverride)

	cfg, err := ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Test Override" {
		t.Errorf("Title = %v, want %v", cfg.Title, "Test Override")
	}

	if cfg.Radius.SessionTimeLimit != "60" {
		t.Errorf("Radius.SessionTimeLimit = %v, want 60", cfg.Radius.SessionTimeLimit)
	}

	// Fields absent from the override keep their file values.
	if cfg.DB.GormEngine != "sqlite" {
		t.Errorf("DB.GormEngine = %v, want sqlite", cfg.DB.GormEngine)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid sqlite config",
			config: Config{
				DB: DB{GormEngine: "sqlite"},
			},
			wantErr: false,
		},
		{
			name: "valid mysql config",
			config: Config{
				DB: DB{GormEngine: "mysql", Name: "radius"},
			},
			wantErr: false,
		},
		{
			name: "unknown engine",
			config: Config{
				DB: DB{GormEngine: "oracle", Name: "radius"},
			},
			wantErr: true,
		},
		{
			name: "server engine without db name",
			config: Config{
				DB: DB{GormEngine: "postgres"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFillsRadiusDefaults(t *testing.T) {
	cfg := Config{DB: DB{GormEngine: "sqlite"}}

	if err := validate(&cfg); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if cfg.Radius.SessionTimeLimit != "10800" {
		t.Errorf("SessionTimeLimit = %v, want 10800", cfg.Radius.SessionTimeLimit)
	}

	if cfg.Radius.SessionTrafficLimit != "3000000000" {
		t.Errorf("SessionTrafficLimit = %v, want 3000000000", cfg.Radius.SessionTrafficLimit)
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		DB:      DB{GormEngine: "sqlite", Path: "test.db"},
	}

	tomlStr, err := DumpConfig(cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if tomlStr == "" {
		t.Error("DumpConfig() returned empty string")
	}

	if !strings.Contains(tomlStr, "Test") {
		t.Error("DumpConfig() output should contain Title")
	}
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := Config{
		Title: "Test",
		DB:    DB{GormEngine: "sqlite"},
	}

	jsonStr, err := DumpConfigJSON(cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if !strings.Contains(jsonStr, "Test") {
		t.Error("DumpConfigJSON() output should contain Title")
	}
}
