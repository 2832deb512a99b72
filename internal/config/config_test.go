package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points XDG and the working directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))

	origWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp dir: %v", err)
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		want      string
	}{
		{
			name:      "with XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			want:      "/custom/config/listwiz/listwiz.yml",
		},
		{
			name:      "without XDG_CONFIG_HOME",
			xdgConfig: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)

			got := GlobalPath()
			if tt.want != "" {
				if got != tt.want {
					t.Errorf("GlobalPath() = %v, want %v", got, tt.want)
				}
				return
			}
			if !filepath.IsAbs(got) {
				t.Errorf("GlobalPath() should return absolute path, got %v", got)
			}
			if !strings.HasSuffix(got, filepath.Join(".config", "listwiz", "listwiz.yml")) {
				t.Errorf("GlobalPath() = %v, want suffix .config/listwiz/listwiz.yml", got)
			}
		})
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true, want false when no config files exist")
	}

	if err := os.WriteFile(ProjectPath(), []byte("profile: x\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != ".listwiz" {
		t.Errorf("DataDir = %q, want .listwiz", cfg.DataDir)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("Backend = %q, want file", cfg.Backend)
	}
	if cfg.Debounce() != 500*time.Millisecond {
		t.Errorf("Debounce() = %v, want 500ms", cfg.Debounce())
	}
	if cfg.RedisTTL() != 24*time.Hour {
		t.Errorf("RedisTTL() = %v, want 24h", cfg.RedisTTL())
	}
	if cfg.DraftKey() != "listing-draft-default" {
		t.Errorf("DraftKey() = %q", cfg.DraftKey())
	}
	if cfg.DatabasePath() != filepath.Join(".listwiz", "drafts.db") {
		t.Errorf("DatabasePath() = %q", cfg.DatabasePath())
	}
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)

	global := &Config{Backend: BackendSQLite, Profile: "global", DebounceMs: 100, LogLevel: "warn"}
	if err := WriteGlobal(global); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}
	if err := os.WriteFile(ProjectPath(), []byte("backend: redis\nprofile: Project Eins\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	t.Setenv("LISTWIZ_DEBOUNCE_MS", "250")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend != BackendRedis {
		t.Errorf("Backend = %q, project config should override global", cfg.Backend)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, global config should apply", cfg.LogLevel)
	}
	if cfg.DebounceMs != 250 {
		t.Errorf("DebounceMs = %d, env should override files", cfg.DebounceMs)
	}
	if cfg.DraftKey() != "listing-draft-project-eins" {
		t.Errorf("DraftKey() = %q", cfg.DraftKey())
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	isolate(t)
	t.Setenv("LISTWIZ_BACKEND", "floppy")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for unknown backend")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "file backend", config: &Config{Backend: BackendFile}},
		{name: "nats backend", config: &Config{Backend: BackendNATS, DebounceMs: 10}},
		{name: "empty backend", config: &Config{}, wantErr: true},
		{name: "negative debounce", config: &Config{Backend: BackendMemory, DebounceMs: -1}, wantErr: true},
		{name: "negative ttl", config: &Config{Backend: BackendRedis, RedisTTLHours: -2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDraftKey(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "explicit key wins", cfg: Config{DraftKeyName: "custom", Profile: "x"}, want: "custom"},
		{name: "profile slugged", cfg: Config{Profile: "Frau Mueller 5b"}, want: "listing-draft-frau-mueller-5b"},
		{name: "empty profile", cfg: Config{}, want: "listing-draft-default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DraftKey(); got != tt.want {
				t.Errorf("DraftKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	cfg := &Config{DataDir: ".test", Backend: BackendNATS, NATSBucket: "b", RedisTTLHours: 6}
	if err := WriteProject(cfg); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}

	data, err := os.ReadFile(ProjectPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	content := string(data)
	for _, field := range []string{"data_dir: .test", "backend: nats", "nats_bucket: b", "redis_ttl_hours: 6"} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}
