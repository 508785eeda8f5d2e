package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "trio_test")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("JWT_SECRET", "testsecret123456789012345678901234")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.Tenancy.RootDomain != "localhost:3000" {
		t.Fatalf("expected default root domain, got %q", cfg.Tenancy.RootDomain)
	}
	if cfg.Providers.CacheTTL.Seconds() != 3600 {
		t.Fatalf("expected 1h provider cache TTL, got %v", cfg.Providers.CacheTTL)
	}
}

func TestProviderConfigured(t *testing.T) {
	if (GitHubConfig{}).Configured() {
		t.Fatal("empty GitHub config must not be configured")
	}
	if !(GitHubConfig{Username: "octocat"}).Configured() {
		t.Fatal("GitHub config with username should be configured (token optional)")
	}
	if (LeetCodeConfig{Username: "sample-user"}).Configured() {
		t.Fatal("placeholder LeetCode username must count as unset")
	}
	if !(LeetCodeConfig{Username: "someone"}).Configured() {
		t.Fatal("LeetCode config with real username should be configured")
	}
	if (LinkedInConfig{}).Configured() {
		t.Fatal("LinkedIn without access token must not be configured")
	}
}
