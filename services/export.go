package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"provenance-explorer/reference"
)

// Artifact ist eine exportierbare Chart-Datei.
type Artifact struct {
	Name string
	Data any
}

// DefaultNestedPairs sind die Eltern/Kind-Kombinationen, die beim Export erzeugt werden.
var DefaultNestedPairs = [][2]string{
	{"licenseUseClass", "textDomains"},
	{"licenseUseClass", "textTopics"},
}

// Artifacts berechnet alle Chart-Daten des aktuellen Snapshots. Gruppentabellen
// ohne Standardfeld werden übersprungen.
func (c *Catalog) Artifacts() ([]Artifact, error) {
	records, err := c.Records()
	if err != nil {
		return nil, err
	}
	out := []Artifact{{Name: "datasets.json", Data: records}}

	for _, kind := range reference.Kinds {
		if _, ok := c.Tables.Group(kind); !ok {
			continue
		}
		if _, ok := DefaultGroupFields[kind]; !ok {
			continue
		}
		tree, err := c.GroupTree(kind, "")
		if err != nil {
			if errors.Is(err, ErrUnknownField) {
				c.Logger.Warn("Gruppentabelle übersprungen", zap.String("kind", kind), zap.Error(err))
				continue
			}
			return nil, err
		}
		out = append(out, Artifact{Name: fmt.Sprintf("groups_%s.json", kind), Data: tree})
	}

	for _, pair := range DefaultNestedPairs {
		tree, err := c.NestedTree(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		out = append(out, Artifact{Name: fmt.Sprintf("nested_%s_%s.json", pair[0], pair[1]), Data: tree})
	}

	sourceTree, err := c.SourceTree()
	if err != nil {
		return nil, err
	}
	out = append(out, Artifact{Name: "source_tree.json", Data: sourceTree})

	counts, err := c.CountryCounts()
	if err != nil {
		return nil, err
	}
	out = append(out,
		Artifact{Name: "language_countries.json", Data: c.LanguageCountries()},
		Artifact{Name: "country_counts.json", Data: counts},
	)
	return out, nil
}
