package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"provenance-explorer/config"
	"provenance-explorer/reference"
	"provenance-explorer/services"
	"provenance-explorer/storage"
)

func main() {
	var (
		outDir = flag.String("out", "", "output directory (default EXPORT_DIR)")
		upload = flag.Bool("upload", false, "upload the exported files to S3_BUCKET/EXPORT_S3_PREFIX")
	)
	flag.Parse()

	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	if *outDir != "" {
		cfg.ExportDir = *outDir
	}
	if *upload && !cfg.HasS3() {
		logging.Fatal("-upload needs S3_URL, S3_KEY, S3_SECRET and S3_BUCKET")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tables, err := reference.Load(cfg.ConstantsDir, logging)
	if err != nil {
		logging.Fatal("Failed to load reference tables", zap.Error(err))
	}
	source, err := services.NewSource(ctx, cfg, logging)
	if err != nil {
		logging.Fatal("Failed to set up data summary source", zap.Error(err))
	}
	catalog := services.NewCatalog(cfg, source, tables, logging)
	if _, err := catalog.Reload(ctx); err != nil {
		logging.Fatal("Data summary load failed", zap.Error(err))
	}

	artifacts, err := catalog.Artifacts()
	if err != nil {
		logging.Fatal("Failed to compute chart data", zap.Error(err))
	}

	// 1. Lokal schreiben
	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		logging.Fatal("Failed to create export dir", zap.String("dir", cfg.ExportDir), zap.Error(err))
	}
	files := make(map[string][]byte, len(artifacts))
	for _, a := range artifacts {
		data, err := json.MarshalIndent(a.Data, "", "    ")
		if err != nil {
			logging.Fatal("Failed to encode artifact", zap.String("name", a.Name), zap.Error(err))
		}
		p := filepath.Join(cfg.ExportDir, a.Name)
		if err := os.WriteFile(p, data, 0o644); err != nil {
			logging.Fatal("Failed to write artifact", zap.String("path", p), zap.Error(err))
		}
		files[a.Name] = data
	}
	logging.Info("Chart data exported", zap.String("dir", cfg.ExportDir), zap.Int("files", len(artifacts)))

	// 2. Optional nach S3 hochladen
	if !*upload {
		return
	}
	client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}
	for _, a := range artifacts {
		key := path.Join(cfg.ExportS3Prefix, a.Name)
		link, err := storage.UploadFile(ctx, client, cfg.S3Bucket, key, files[a.Name], "application/json", cfg.S3URL)
		if err != nil {
			logging.Fatal("S3 upload failed", zap.String("key", key), zap.Error(err))
		}
		logging.Info("Artifact uploaded", zap.String("link", link))
	}
}
