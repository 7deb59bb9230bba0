package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	return path
}

func TestLoaderLoadEnv(t *testing.T) {
	t.Parallel()

	envContent := `# Deployment target
DEPLOY_HOST=deploy@example.com

DEPLOY_PATH="/var/www/site"
DEPLOY_CONTENT_DIR=content
DEPLOY_MAX_BACKUPS=5
DEPLOY_CONNECT_TIMEOUT=10
`

	path := writeConfig(t, "deploy.env", envContent)

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Host != "deploy@example.com" {
		t.Errorf("Host = %v, want deploy@example.com", cfg.Host)
	}

	// Surrounding quotes must be stripped from values
	if cfg.RemotePath != "/var/www/site" {
		t.Errorf("RemotePath = %v, want /var/www/site", cfg.RemotePath)
	}

	if cfg.MaxBackups != 5 {
		t.Errorf("MaxBackups = %d, want 5", cfg.MaxBackups)
	}

	if cfg.ConnectTimeoutSecs != 10 {
		t.Errorf("ConnectTimeoutSecs = %d, want 10", cfg.ConnectTimeoutSecs)
	}
}

func TestLoaderAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "deploy.env", "DEPLOY_HOST=server\nDEPLOY_PATH=/srv/site\n")

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ContentDir != DefaultContentDir {
		t.Errorf("ContentDir = %v, want %v", cfg.ContentDir, DefaultContentDir)
	}

	if cfg.BackupsDir != DefaultBackupsDir {
		t.Errorf("BackupsDir = %v, want %v", cfg.BackupsDir, DefaultBackupsDir)
	}

	if cfg.SSHBin != DefaultSSHBin || cfg.RsyncBin != DefaultRsyncBin {
		t.Errorf("binaries = %v/%v, want %v/%v", cfg.SSHBin, cfg.RsyncBin, DefaultSSHBin, DefaultRsyncBin)
	}

	if cfg.ConnectTimeoutSecs != DefaultConnectTimeout {
		t.Errorf("ConnectTimeoutSecs = %d, want %d", cfg.ConnectTimeoutSecs, DefaultConnectTimeout)
	}

	if cfg.MaxBackups != 0 {
		t.Errorf("MaxBackups = %d, want 0 (keep everything)", cfg.MaxBackups)
	}
}

func TestLoaderMissingRequiredKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "missing host", content: "DEPLOY_PATH=/srv/site\n"},
		{name: "missing path", content: "DEPLOY_HOST=server\n"},
		{name: "empty host", content: "DEPLOY_HOST=\nDEPLOY_PATH=/srv/site\n"},
		{name: "whitespace path", content: "DEPLOY_HOST=server\nDEPLOY_PATH=\"  \"\n"},
		{name: "empty file", content: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, "deploy.env", tt.content)

			if _, err := NewLoader().Load(path); err == nil {
				t.Error("Load succeeded, want error for incomplete config")
			}
		})
	}
}

func TestLoaderMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Error("Load succeeded, want error for absent file")
	}
}

func TestLoaderLoadTOML(t *testing.T) {
	t.Parallel()

	tomlContent := `host = "deploy@example.com"
remotePath = "/var/www/site"
contentDir = "content"
maxBackups = 3
`

	path := writeConfig(t, "stagehand.toml", tomlContent)

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Host != "deploy@example.com" {
		t.Errorf("Host = %v, want deploy@example.com", cfg.Host)
	}

	if cfg.MaxBackups != 3 {
		t.Errorf("MaxBackups = %d, want 3", cfg.MaxBackups)
	}
}

func TestLoaderLoadJSONC(t *testing.T) {
	t.Parallel()

	jsoncContent := `{
	// Deployment target
	"host": "deploy@example.com",
	"remotePath": "/var/www/site"
}`

	path := writeConfig(t, "stagehand.jsonc", jsoncContent)

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Host != "deploy@example.com" {
		t.Errorf("Host = %v, want deploy@example.com", cfg.Host)
	}

	if cfg.RemotePath != "/var/www/site" {
		t.Errorf("RemotePath = %v, want /var/www/site", cfg.RemotePath)
	}
}

func TestLoaderInvalidNumber(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "deploy.env", "DEPLOY_HOST=server\nDEPLOY_PATH=/srv\nDEPLOY_MAX_BACKUPS=many\n")

	if _, err := NewLoader().Load(path); err == nil {
		t.Error("Load succeeded, want error for non-numeric DEPLOY_MAX_BACKUPS")
	}
}
