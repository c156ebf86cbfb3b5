package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"provenance-explorer/config"
	"provenance-explorer/providers"
	"provenance-explorer/providers/local"
	"provenance-explorer/providers/s3store"
	"provenance-explorer/providers/web"
	"provenance-explorer/storage"
)

// NewSource wählt die Quelle der Data-Summary anhand von SUMMARY_SOURCE.
func NewSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (providers.Source, error) {
	switch cfg.SummarySource {
	case config.SourceFile:
		return local.NewFetcher(cfg.SummaryPath, logger), nil
	case config.SourceHTTP:
		return web.NewFetcher(cfg.SummaryURL, cfg.HTTPTimeout, logger), nil
	case config.SourceS3:
		client, err := storage.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create s3 client: %w", err)
		}
		return s3store.NewFetcher(client, cfg.S3Bucket, cfg.SummaryS3Key, logger), nil
	}
	return nil, fmt.Errorf("unknown summary source %q", cfg.SummarySource)
}
