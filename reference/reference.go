// Package reference lädt die statischen Referenztabellen (Gruppentabellen,
// Geo-Daten, Normalizer-Tabellen) aus einem Konstanten-Verzeichnis.
// Jede Tabelle darf als JSON, gzip-komprimiertes JSON oder YAML vorliegen.
package reference

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"provenance-explorer/models"
	"provenance-explorer/providers"
)

// Kinds sind die bekannten Gruppentabellen; Dateiname ist jeweils "<kind>_groups".
var Kinds = []string{"domain", "task", "language", "model", "creator"}

var extensions = []string{".json", ".json.gz", ".yaml", ".yml"}

// Tables bündelt alle Referenzdaten.
type Tables struct {
	Groups map[string]models.GroupTable
	Geo    models.GeoTables

	// Optionale Überschreibungen der Normalizer-Tabellen; nil bedeutet Defaults.
	LicenseRemap map[string]string
	KnownModels  []string
}

// Group liefert die Gruppentabelle eines Typs.
func (t *Tables) Group(kind string) (models.GroupTable, bool) {
	g, ok := t.Groups[kind]
	return g, ok
}

// Load liest alle bekannten Tabellen aus dir. Fehlende Dateien sind kein Fehler,
// die Tabelle bleibt dann leer; kaputte Dateien schon.
func Load(dir string, logger *zap.Logger) (*Tables, error) {
	log := logger.With(zap.String("dir", dir))
	t := &Tables{Groups: make(map[string]models.GroupTable, len(Kinds))}

	for _, kind := range Kinds {
		path := findFile(dir, kind+"_groups")
		if path == "" {
			log.Warn("Gruppentabelle nicht gefunden", zap.String("kind", kind))
			t.Groups[kind] = models.GroupTable{}
			continue
		}
		table, err := LoadGroupTable(path)
		if err != nil {
			return nil, err
		}
		t.Groups[kind] = table
		log.Debug("Gruppentabelle geladen", zap.String("kind", kind), zap.Int("groups", len(table)))
	}

	optional := []struct {
		base string
		dst  any
	}{
		{"countries", &t.Geo.Countries},
		{"language_codes", &t.Geo.LanguageNames},
		{"country_languages", &t.Geo.CountryLanguages},
		{"license_remap", &t.LicenseRemap},
		{"known_models", &t.KnownModels},
	}
	for _, o := range optional {
		path := findFile(dir, o.base)
		if path == "" {
			log.Debug("Optionale Tabelle nicht gefunden", zap.String("table", o.base))
			continue
		}
		if err := decodeFile(path, o.dst); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// LoadGroupTable liest eine Gruppentabelle (Objekt: Gruppe -> Liste von Werten)
// unter Erhalt der Reihenfolge der Gruppen.
func LoadGroupTable(path string) (models.GroupTable, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var table models.GroupTable
	if isYAML(path) {
		table, err = groupTableFromYAML(data)
	} else {
		table, err = groupTableFromJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("group table %s: %w", path, err)
	}
	return table, nil
}

func groupTableFromJSON(data []byte) (models.GroupTable, error) {
	if !gjson.ValidBytes(data) {
		return nil, providers.ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("expected an object of group -> list")
	}
	table := models.GroupTable{}
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			err = fmt.Errorf("group %q: expected a list", key.String())
			return false
		}
		members := []string{}
		for _, m := range value.Array() {
			members = append(members, m.String())
		}
		table = append(table, models.Group{Name: key.String(), Members: members})
		return true
	})
	return table, err
}

func groupTableFromYAML(data []byte) (models.GroupTable, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	table := models.GroupTable{}
	if len(doc.Content) == 0 {
		return table, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("expected a mapping of group -> list")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		members := []string{}
		if err := value.Decode(&members); err != nil {
			return nil, fmt.Errorf("group %q: %w", key.Value, err)
		}
		table = append(table, models.Group{Name: key.Value, Members: members})
	}
	return table, nil
}

func decodeFile(path string, dst any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, dst)
	} else {
		err = json.Unmarshal(data, dst)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return providers.Decompress(raw)
}

func findFile(dir, base string) string {
	for _, ext := range extensions {
		p := filepath.Join(dir, base+ext)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

func isYAML(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
