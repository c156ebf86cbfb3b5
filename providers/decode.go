package providers

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"provenance-explorer/models"
)

var (
	// ErrInvalidJSON wird geliefert, wenn die Quelle kein gültiges JSON enthält.
	ErrInvalidJSON = errors.New("invalid JSON document")
	// ErrNotObject wird geliefert, wenn das Dokument kein JSON-Objekt ist.
	ErrNotObject = errors.New("data summary must be a JSON object")
)

var gzipMagic = []byte{0x1f, 0x8b}

// Decompress entpackt gzip-Daten; alles andere wird unverändert zurückgegeben.
func Decompress(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("read gzip stream: %w", err)
	}
	return out, nil
}

// DecodeEntries zerlegt eine Data-Summary (Objekt: beliebiger Schlüssel -> Datensatz)
// in Einträge. Die Reihenfolge der Schlüssel im Dokument bleibt erhalten, weil
// die Deduplizierung "erster gewinnt" davon abhängt.
//
// Kommt ein Schlüssel mehrfach vor, gilt wie bei JSON.parse der letzte Wert.
// Einträge, die keine Objekte sind, werden übersprungen. Felder mit falschem Typ
// bleiben leer und landen später bei ihren Defaults; beides wird geloggt.
func DecodeEntries(data []byte, logger *zap.Logger) ([]models.RawEntry, error) {
	data, err := Decompress(data)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotObject
	}

	// Doppelte Schlüssel: Position des ersten Auftretens, Wert des letzten.
	var keys []string
	values := make(map[string]gjson.Result)
	root.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, dup := values[k]; dup {
			logger.Warn("Doppelter Schlüssel, letzter Wert gilt", zap.String("key", k))
		} else {
			keys = append(keys, k)
		}
		values[k] = value
		return true
	})

	var entries []models.RawEntry
	for _, k := range keys {
		value := values[k]
		log := logger.With(zap.String("key", k))
		if !value.IsObject() {
			log.Warn("Eintrag ist kein Objekt, wird übersprungen", zap.String("type", value.Type.String()))
			continue
		}
		var ds models.RawDataset
		if err := json.Unmarshal([]byte(value.Raw), &ds); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				log.Warn("Eintrag nicht dekodierbar, wird übersprungen", zap.Error(err))
				continue
			}
			log.Warn("Feld mit unerwartetem Typ, Default wird verwendet", zap.String("field", typeErr.Field), zap.Error(err))
		}
		entries = append(entries, models.RawEntry{Key: k, Dataset: ds})
	}
	return entries, nil
}
