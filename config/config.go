package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Quellen, aus denen die Data-Summary geladen werden kann.
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceS3   = "s3"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	// Herkunft der Data-Summary
	SummarySource string        `envconfig:"SUMMARY_SOURCE" default:"file"`
	SummaryPath   string        `envconfig:"SUMMARY_PATH" default:"data_summary.json"`
	SummaryURL    string        `envconfig:"SUMMARY_URL"`
	SummaryS3Key  string        `envconfig:"SUMMARY_S3_KEY" default:"data_summary.json"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"60s"`

	// Verzeichnis mit Gruppentabellen und Geo-Referenzdaten
	ConstantsDir string `envconfig:"CONSTANTS_DIR" default:"constants"`

	S3URL    string `envconfig:"S3_URL"`
	S3Region string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Key    string `envconfig:"S3_KEY"`
	S3Secret string `envconfig:"S3_SECRET"`
	S3Bucket string `envconfig:"S3_BUCKET"`

	// Leer = kein periodisches Neuladen
	ReloadSchedule string `envconfig:"RELOAD_SCHEDULE"`

	TopSourcesPerDomain    int     `envconfig:"TOP_SOURCES_PER_DOMAIN" default:"5"`
	SourceLabelMaxLen      int     `envconfig:"SOURCE_LABEL_MAX_LEN" default:"14"`
	LanguageShareThreshold float64 `envconfig:"LANGUAGE_SHARE_THRESHOLD" default:"0.1"`

	ExportDir      string `envconfig:"EXPORT_DIR" default:"export"`
	ExportS3Prefix string `envconfig:"EXPORT_S3_PREFIX" default:"charts/"`
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate prüft Abhängigkeiten zwischen einzelnen Feldern.
func (c *Config) Validate() error {
	c.SummarySource = strings.ToLower(strings.TrimSpace(c.SummarySource))
	switch c.SummarySource {
	case SourceFile:
		if c.SummaryPath == "" {
			return fmt.Errorf("SUMMARY_PATH is required for source %q", c.SummarySource)
		}
	case SourceHTTP:
		if c.SummaryURL == "" {
			return fmt.Errorf("SUMMARY_URL is required for source %q", c.SummarySource)
		}
	case SourceS3:
		if !c.HasS3() {
			return fmt.Errorf("S3_URL, S3_KEY, S3_SECRET and S3_BUCKET are required for source %q", c.SummarySource)
		}
		if c.SummaryS3Key == "" {
			return fmt.Errorf("SUMMARY_S3_KEY is required for source %q", c.SummarySource)
		}
	default:
		return fmt.Errorf("unknown SUMMARY_SOURCE %q (want file, http or s3)", c.SummarySource)
	}
	if c.TopSourcesPerDomain <= 0 {
		return fmt.Errorf("TOP_SOURCES_PER_DOMAIN must be positive, got %d", c.TopSourcesPerDomain)
	}
	if c.SourceLabelMaxLen <= 0 {
		return fmt.Errorf("SOURCE_LABEL_MAX_LEN must be positive, got %d", c.SourceLabelMaxLen)
	}
	if c.LanguageShareThreshold < 0 || c.LanguageShareThreshold > 1 {
		return fmt.Errorf("LANGUAGE_SHARE_THRESHOLD must be within [0,1], got %v", c.LanguageShareThreshold)
	}
	return nil
}

// HasS3 meldet, ob ein vollständiger S3-Zugang konfiguriert ist.
func (c *Config) HasS3() bool {
	return c.S3URL != "" && c.S3Key != "" && c.S3Secret != "" && c.S3Bucket != ""
}
