package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "Empty"},
		{
			name: "Full",
			content: `
[layout]
algorithm = "clustered"
columns = 3

[cache]
backend = "redis"
redis_addr = "localhost:6379"
prefix = "staging"

[server]
addr = ":9000"
timeout = "5s"
`,
		},
		{name: "UnknownKey", content: "[cache]\nbackends = \"file\"\n", wantErr: "unknown keys: cache.backends"},
		{name: "BadBackend", content: "[cache]\nbackend = \"s3\"\n", wantErr: "[cache]"},
		{name: "RedisWithoutAddr", content: "[cache]\nbackend = \"redis\"\n", wantErr: "[cache]"},
		{name: "BadTimeout", content: "[server]\ntimeout = \"soon\"\n", wantErr: "server.timeout"},
		{name: "BadAlgorithm", content: "[layout]\nalgorithm = \"radial\"\n", wantErr: "[layout]"},
		{name: "Syntax", content: "[layout\n", wantErr: "read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, got, err := loadConfig(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != path {
				t.Errorf("path = %q, want %q", got, path)
			}
		})
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[layout]\nalgorithm = \"force\"\nseed = 7\n\n[server]\naddr = \":9000\"\ntimeout = \"5s\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.Algorithm != diagram.AlgorithmForce || cfg.Layout.Seed != 7 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server.addr = %q", cfg.Server.Addr)
	}
	if d, _ := cfg.Server.timeout(); d != 5*time.Second {
		t.Errorf("server.timeout = %v, want 5s", d)
	}
}

func TestLoadConfigSearch(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, path, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if path != "" || cfg != (Config{}) {
		t.Errorf("no config file should give the zero config, got %q %+v", path, cfg)
	}

	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(want, []byte("[cache]\nbackend = \"memory\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, path, err = loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if path != want || cfg.Cache.Backend != backendMemory {
		t.Errorf("loadConfig() = %q %+v, want %q with memory backend", path, cfg.Cache, want)
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	_, _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v, want not found", err)
	}
}
