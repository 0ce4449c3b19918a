package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	camderrors "github.com/cheapamd/camd/pkg/errors"
)

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	if !camderrors.HasCode(err, camderrors.ErrCodeConfigMissing) {
		t.Errorf("expected CONFIG_MISSING, got %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg := &Config{
		Providers: map[string]Credential{
			"runpod": {APIKey: "rp-key"},
			"vultr":  {APIKey: "vu-key"},
		},
		CacheMinutes: 10,
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cred, ok := loaded.Credential("runpod")
	if !ok || cred.APIKey != "rp-key" {
		t.Errorf("runpod credential = %+v, ok=%v", cred, ok)
	}
	if loaded.CacheWindow() != 10*time.Minute {
		t.Errorf("cache window = %v, want 10m", loaded.CacheWindow())
	}
}

func TestSave_RestrictedPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	t.Setenv(EnvConfigDir, t.TempDir())

	if err := Save(&Config{Providers: map[string]Credential{"runpod": {APIKey: "secret"}}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(Path())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvRunpodAPIKey, "env-key")
	t.Setenv(EnvCacheMinutes, "30")

	if err := Save(&Config{Providers: map[string]Credential{"runpod": {APIKey: "file-key"}}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cred, _ := cfg.Credential("runpod")
	if cred.APIKey != "env-key" {
		t.Errorf("expected env override, got %q", cred.APIKey)
	}
	if cfg.CacheWindow() != 30*time.Minute {
		t.Errorf("cache window = %v, want 30m", cfg.CacheWindow())
	}
}

func TestLoadOrEnv_EnvOnly(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	t.Setenv(EnvVultrAPIKey, "vu-key")

	cfg, err := LoadOrEnv()
	if err != nil {
		t.Fatalf("LoadOrEnv failed: %v", err)
	}
	if _, ok := cfg.Credential("vultr"); !ok {
		t.Error("expected vultr credential from environment")
	}
}

func TestLoadOrEnv_NothingConfigured(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	_, err := LoadOrEnv()
	if !camderrors.HasCode(err, camderrors.ErrCodeConfigMissing) {
		t.Errorf("expected CONFIG_MISSING, got %v", err)
	}
}

func TestDefaultCacheWindow(t *testing.T) {
	cfg := &Config{}
	if cfg.CacheWindow() != DefaultCacheWindow {
		t.Errorf("default window = %v, want %v", cfg.CacheWindow(), DefaultCacheWindow)
	}
}

func TestCachePath_UnderConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	if got := CachePath(); got != filepath.Join(dir, "cache.json") {
		t.Errorf("CachePath() = %q", got)
	}
}
