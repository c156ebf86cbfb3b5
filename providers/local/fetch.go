package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"provenance-explorer/models"
	"provenance-explorer/providers"
)

// Fetcher liest die Data-Summary aus dem lokalen Dateisystem. Path darf auf eine
// einzelne (optional gzip-komprimierte) JSON-Datei oder auf ein Verzeichnis mit
// einer Datei pro Collection zeigen.
type Fetcher struct {
	Path   string
	Logger *zap.Logger
}

// NewFetcher erstellt einen neuen Datei-Fetcher.
func NewFetcher(path string, logger *zap.Logger) *Fetcher {
	return &Fetcher{Path: path, Logger: logger}
}

// Name gibt den Namen der Quelle zurück.
func (f *Fetcher) Name() string {
	return "file"
}

// Load liest die Datei bzw. alle Collection-Dateien des Verzeichnisses.
func (f *Fetcher) Load(ctx context.Context) ([]models.RawEntry, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.Path, err)
	}
	if !info.IsDir() {
		return f.loadFile(f.Path)
	}

	files, err := CollectionFiles(f.Path)
	if err != nil {
		return nil, err
	}
	var all []models.RawEntry
	for _, fp := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := f.loadFile(fp)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	f.Logger.Info("Collection-Verzeichnis gelesen",
		zap.String("dir", f.Path), zap.Int("files", len(files)), zap.Int("entries", len(all)))
	return all, nil
}

func (f *Fetcher) loadFile(path string) ([]models.RawEntry, error) {
	f.Logger.Debug("Lese Data-Summary", zap.String("path", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	entries, err := providers.DecodeEntries(data, f.Logger.With(zap.String("path", path)))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return entries, nil
}

// CollectionFiles listet die Collection-Dateien eines Verzeichnisses in
// Namensreihenfolge. Versteckte Dateien, Unterverzeichnisse und Vorlagen
// (_template*) werden ignoriert.
func CollectionFiles(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []string
	for _, it := range items {
		name := it.Name()
		if it.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_template") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}
