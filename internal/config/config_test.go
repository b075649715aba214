package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("READQUEST_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %q", cfg.Model)
	}
	if cfg.AITimeout != 8*time.Second {
		t.Fatalf("expected 8s timeout, got %s", cfg.AITimeout)
	}
	p, err := cfg.Policy()
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if p.Name() != "static" {
		t.Fatalf("expected static policy, got %s", p.Name())
	}
	if cfg.OpenAIKey() != "" {
		t.Fatalf("expected no key, got %q", cfg.OpenAIKey())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("READQUEST_DB", "/tmp/rq.db")
	t.Setenv("READQUEST_LEVEL_POLICY", "curve")
	t.Setenv("READQUEST_AI_TIMEOUT", "250ms")
	t.Setenv("READQUEST_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/rq.db" || cfg.AITimeout != 250*time.Millisecond || !cfg.Verbose {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if p, _ := cfg.Policy(); p.Name() != "curve" {
		t.Fatalf("expected curve policy")
	}
}

func TestOpenAIKeyFallback(t *testing.T) {
	t.Setenv("READQUEST_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "shared")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAIKey() != "shared" {
		t.Fatalf("expected shared key, got %q", cfg.OpenAIKey())
	}

	t.Setenv("READQUEST_OPENAI_API_KEY", "own")
	cfg, _ = Load()
	if cfg.OpenAIKey() != "own" {
		t.Fatalf("expected own key to win, got %q", cfg.OpenAIKey())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("READQUEST_LEVEL_POLICY", "fibonacci")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}

	t.Setenv("READQUEST_LEVEL_POLICY", "static")
	t.Setenv("READQUEST_AI_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}
