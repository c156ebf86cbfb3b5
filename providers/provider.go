package providers

import (
	"context"

	"provenance-explorer/models"
)

// Source ist das Interface, das jede Quelle der Data-Summary (Datei, HTTP, S3) implementieren muss.
type Source interface {
	// Load lädt die Roh-Mapping vollständig und gibt ihre Einträge in Dokumentreihenfolge zurück.
	Load(ctx context.Context) ([]models.RawEntry, error)

	// Name gibt den eindeutigen Namen der Quelle zurück (z.B. "file").
	Name() string
}
