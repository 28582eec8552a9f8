package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("got port %q, want 8080", cfg.Port)
	}
	if cfg.OracleTimeoutSecs != 30 {
		t.Fatalf("got oracle timeout %d, want 30", cfg.OracleTimeoutSecs)
	}
	if cfg.MatchFanoutLimit != 8 {
		t.Fatalf("got fanout limit %d, want 8", cfg.MatchFanoutLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ORACLE_TIMEOUT_SECONDS", "5")
	t.Setenv("MATCH_FANOUT_LIMIT", "not-a-number")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("got port %q, want 9090", cfg.Port)
	}
	if cfg.OracleTimeoutSecs != 5 {
		t.Fatalf("got oracle timeout %d, want 5", cfg.OracleTimeoutSecs)
	}
	if cfg.MatchFanoutLimit != 8 {
		t.Fatalf("unparseable fanout limit must fall back to 8, got %d", cfg.MatchFanoutLimit)
	}
	if !cfg.Debug {
		t.Fatal("debug flag not picked up")
	}
}
