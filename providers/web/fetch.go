package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"provenance-explorer/models"
	"provenance-explorer/providers"
)

// Fetcher lädt die Data-Summary per HTTP GET.
type Fetcher struct {
	URL    string
	Client *http.Client
	Logger *zap.Logger
}

// NewFetcher erstellt einen neuen HTTP-Fetcher.
func NewFetcher(url string, timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

// Name gibt den Namen der Quelle zurück.
func (f *Fetcher) Name() string {
	return "http"
}

// Load ruft die URL ab. Jeder Status außerhalb 2xx ist ein Fehler; es gibt
// keinen Retry und keinen Fallback auf Teildaten.
func (f *Fetcher) Load(ctx context.Context) ([]models.RawEntry, error) {
	log := f.Logger.With(zap.String("url", f.URL))
	log.Debug("Rufe Data-Summary ab.")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		log.Error("Fehler beim Abrufen der Data-Summary", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("HTTP error! Status: %d", resp.StatusCode)
		log.Error("Fehler beim Abrufen der Data-Summary", zap.Error(err))
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return providers.DecodeEntries(data, log)
}
