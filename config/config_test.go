package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != "4242" {
		t.Fatalf("unexpected http port default: %q", cfg.HTTPPort)
	}
	if cfg.SummarySource != SourceFile {
		t.Fatalf("unexpected source default: %q", cfg.SummarySource)
	}
	if cfg.SummaryPath != "data_summary.json" {
		t.Fatalf("unexpected summary path default: %q", cfg.SummaryPath)
	}
	if cfg.HTTPTimeout != 60*time.Second {
		t.Fatalf("unexpected http timeout default: %v", cfg.HTTPTimeout)
	}
	if cfg.TopSourcesPerDomain != 5 || cfg.SourceLabelMaxLen != 14 {
		t.Fatalf("unexpected source tree defaults: top=%d label=%d", cfg.TopSourcesPerDomain, cfg.SourceLabelMaxLen)
	}
	if cfg.LanguageShareThreshold != 0.1 {
		t.Fatalf("unexpected threshold default: %v", cfg.LanguageShareThreshold)
	}
	if cfg.ReloadSchedule != "" {
		t.Fatalf("reload schedule should be disabled by default, got %q", cfg.ReloadSchedule)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SUMMARY_SOURCE", "HTTP")
	t.Setenv("SUMMARY_URL", "https://example.org/data_summary.json")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("TOP_SOURCES_PER_DOMAIN", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SummarySource != SourceHTTP {
		t.Fatalf("source should be normalized to lower case, got %q", cfg.SummarySource)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.HTTPTimeout)
	}
	if cfg.TopSourcesPerDomain != 3 {
		t.Fatalf("unexpected top n: %d", cfg.TopSourcesPerDomain)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			SummarySource:          SourceFile,
			SummaryPath:            "data_summary.json",
			TopSourcesPerDomain:    5,
			SourceLabelMaxLen:      14,
			LanguageShareThreshold: 0.1,
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid file source", mutate: func(*Config) {}},
		{name: "unknown source", mutate: func(c *Config) { c.SummarySource = "ftp" }, wantErr: "unknown SUMMARY_SOURCE"},
		{name: "http without url", mutate: func(c *Config) { c.SummarySource = SourceHTTP }, wantErr: "SUMMARY_URL"},
		{name: "s3 without credentials", mutate: func(c *Config) { c.SummarySource = SourceS3 }, wantErr: "S3_URL"},
		{name: "s3 complete", mutate: func(c *Config) {
			c.SummarySource = SourceS3
			c.SummaryS3Key = "summary.json"
			c.S3URL, c.S3Key, c.S3Secret, c.S3Bucket = "https://s3.example.org", "key", "secret", "bucket"
		}},
		{name: "non-positive top n", mutate: func(c *Config) { c.TopSourcesPerDomain = 0 }, wantErr: "TOP_SOURCES_PER_DOMAIN"},
		{name: "non-positive label length", mutate: func(c *Config) { c.SourceLabelMaxLen = -1 }, wantErr: "SOURCE_LABEL_MAX_LEN"},
		{name: "threshold above one", mutate: func(c *Config) { c.LanguageShareThreshold = 10 }, wantErr: "LANGUAGE_SHARE_THRESHOLD"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore Chdir: %v", err)
		}
	})
}
