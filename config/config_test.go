package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"juliapow/pkg/pow/julia"
)

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("ADDR", ":9000")
	t.Setenv("NAME", "notary")
	t.Setenv("DEADLINE", "10s")
	t.Setenv("POW_TARGET", "12")

	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.Server.Name != "notary" || cfg.Deadline != 10*time.Second {
		t.Fatalf("unexpected server section %+v", cfg.Server)
	}
	if cfg.KeepAlive != 15*time.Second {
		t.Fatalf("expected default keep alive, got %v", cfg.KeepAlive)
	}
	if cfg.Target != 12 || cfg.MaxIterations != 200 || cfg.PoolSize != 500 || cfg.Radius != 2 {
		t.Fatalf("unexpected pow section %+v", cfg.Pow)
	}
	if cfg.Parameter() != julia.NewPoint(0.285, 0) {
		t.Fatalf("unexpected parameter %v", cfg.Parameter())
	}
}

func TestLoadServerConfigMissingRequired(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("ADDR", "")
	t.Setenv("NAME", "")
	t.Setenv("DEADLINE", "")
	os.Unsetenv("ADDR")
	os.Unsetenv("NAME")
	os.Unsetenv("DEADLINE")

	if _, err := LoadServerConfig(); err == nil {
		t.Fatalf("expected an error without required variables")
	}
}

func TestLoadClientConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	data := `client:
  server_addr: "localhost:9000"
  name: "miner"
  payload: "hello"
pow:
  target: 7
  workers: 4
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Setenv(ConfigPathEnv, path)

	cfg, err := LoadClientConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddr != "localhost:9000" || cfg.Client.Name != "miner" || cfg.Payload != "hello" {
		t.Fatalf("unexpected client section %+v", cfg.Client)
	}

	s := cfg.Settings()
	if s.Target != 7 || s.Workers != 4 {
		t.Fatalf("unexpected settings %+v", s)
	}
}

func TestUsage(t *testing.T) {
	u := Usage(&Pow{})
	if !strings.Contains(u, "POW_TARGET") {
		t.Fatalf("expected usage to list POW_TARGET, got %q", u)
	}
}
