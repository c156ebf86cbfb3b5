package s3store

import (
	"context"

	"go.uber.org/zap"

	"provenance-explorer/models"
	"provenance-explorer/providers"
	"provenance-explorer/storage"
)

// Fetcher lädt die Data-Summary als Objekt aus einem S3-Bucket.
type Fetcher struct {
	Client storage.ObjectAPI
	Bucket string
	Key    string
	Logger *zap.Logger
}

// NewFetcher erstellt einen neuen S3-Fetcher.
func NewFetcher(client storage.ObjectAPI, bucket, key string, logger *zap.Logger) *Fetcher {
	return &Fetcher{Client: client, Bucket: bucket, Key: key, Logger: logger}
}

// Name gibt den Namen der Quelle zurück.
func (f *Fetcher) Name() string {
	return "s3"
}

// Load lädt das Objekt und dekodiert es.
func (f *Fetcher) Load(ctx context.Context) ([]models.RawEntry, error) {
	log := f.Logger.With(zap.String("bucket", f.Bucket), zap.String("key", f.Key))
	data, err := storage.DownloadFile(ctx, f.Client, f.Bucket, f.Key)
	if err != nil {
		log.Error("S3-Download fehlgeschlagen", zap.Error(err))
		return nil, err
	}
	log.Debug("Data-Summary aus S3 geladen", zap.Int("bytes", len(data)))
	return providers.DecodeEntries(data, log)
}
