package services

import (
	"math"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"provenance-explorer/models"
)

// Werte für die Synthetic-Klassifikation.
const (
	SyntheticLabel = "Synthetic"
	RegularLabel   = "Regular"
	SyntheticOther = "Synthetic (Other)"
)

// FallbackDate ersetzt fehlende oder unlesbare Datumsangaben.
const FallbackDate = "1900-1-1"

var fallbackTime = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultLicenseRemap bildet License-Use-Klassen auf Chart-Kategorien ab.
func DefaultLicenseRemap() map[string]string {
	return map[string]string{
		"commercial":     "Commercial",
		"unspecified":    "Unspecified",
		"non-commercial": "Non-Commercial/Academic",
		"academic-only":  "Non-Commercial/Academic",
		"unclear":        "Non-Commercial/Academic",
	}
}

// DefaultKnownModels sind die Modelle, die eine eigene Synthetic-Klasse bekommen.
func DefaultKnownModels() []string {
	return []string{"OpenAI GPT-3", "OpenAI ChatGPT", "OpenAI GPT-4", "OpenAI Codex"}
}

// NormalizerTables sind die Nachschlagetabellen des Normalizers.
type NormalizerTables struct {
	LicenseRemap map[string]string
	KnownModels  []string
}

// DefaultNormalizerTables liefert die Standardtabellen.
func DefaultNormalizerTables() NormalizerTables {
	return NormalizerTables{LicenseRemap: DefaultLicenseRemap(), KnownModels: DefaultKnownModels()}
}

// RecordNormalizer macht aus den Roh-Einträgen eine deduplizierte Liste von Summaries.
type RecordNormalizer struct {
	Tables NormalizerTables
	Logger *zap.Logger
}

// NewRecordNormalizer erstellt einen Normalizer. Leere Tabellen werden durch die Defaults ersetzt.
func NewRecordNormalizer(tables NormalizerTables, logger *zap.Logger) *RecordNormalizer {
	if tables.LicenseRemap == nil {
		tables.LicenseRemap = DefaultLicenseRemap()
	}
	if tables.KnownModels == nil {
		tables.KnownModels = DefaultKnownModels()
	}
	return &RecordNormalizer{Tables: tables, Logger: logger}
}

// Normalize liefert genau eine Summary pro Datensatzname, in der Reihenfolge des
// ersten Auftretens. Varianten desselben Datensatzes tragen nur ihre Sprachen bei;
// alle übrigen Felder stammen vom ersten Eintrag.
func (n *RecordNormalizer) Normalize(entries []models.RawEntry) []models.Summary {
	languages := make(map[string][]string)
	for _, e := range entries {
		name := e.Dataset.DatasetName
		languages[name] = append(languages[name], e.Dataset.Languages...)
	}

	out := make([]models.Summary, 0, len(languages))
	seen := make(map[string]bool, len(languages))
	duplicates := 0
	for _, e := range entries {
		name := e.Dataset.DatasetName
		if seen[name] {
			duplicates++
			continue
		}
		seen[name] = true
		s := n.summarize(e.Dataset)
		s.Languages = nonNil(slices.Clone(languages[name]))
		out = append(out, s)
	}

	n.Logger.Debug("Data-Summary normalisiert",
		zap.Int("entries", len(entries)),
		zap.Int("datasets", len(out)),
		zap.Int("variants_merged", duplicates))
	return out
}

func (n *RecordNormalizer) summarize(ds models.RawDataset) models.Summary {
	s := models.Summary{
		DatasetName:        ds.DatasetName,
		Collection:         ds.Collection,
		Tasks:              nonNil(slices.Clone(ds.TaskCategories)),
		TextSources:        nonNil(slices.Clone(ds.TextSources)),
		TextDomains:        nonNil(slices.Clone(ds.TextDomains)),
		Creators:           nonNil(slices.Clone(ds.Creators)),
		ModelGenerated:     nonNil(slices.Clone(ds.ModelGenerated)),
		LicenseUseClass:    ds.LicenseUse,
		LicenseUseCategory: n.LicenseCategory(ds.LicenseUse),
		TextTopics:         []string{},
		PwCDate:            FallbackDate,
		S2Date:             FallbackDate,
	}
	s.Synthetic, s.SyntheticClass = n.SyntheticClass(ds.ModelGenerated)

	if md := ds.Inferred; md != nil {
		if md.TextTopics != nil {
			s.TextTopics = slices.Clone(md.TextTopics)
		}
		s.CitationCount = countValue(md.CitationCount)
		s.DownloadCount = countValue(md.Downloads)
		if md.PwCDate != nil {
			s.PwCDate = *md.PwCDate
		}
		if md.S2Date != nil {
			s.S2Date = *md.S2Date
		}
	}
	if tm := ds.TextMetrics; tm != nil {
		s.InputTextLen = roundTenth(tm.MeanInputsLength)
		s.TargetTextLen = roundTenth(tm.MeanTargetsLength)
	}
	s.Date = EarlierDate(s.PwCDate, s.S2Date)

	if ds.HuggingFaceURL != nil {
		s.HFLink = *ds.HuggingFaceURL
	}
	return s
}

// LicenseCategory bildet eine License-Use-Klasse ab; unbekannte Werte bleiben unverändert.
func (n *RecordNormalizer) LicenseCategory(class string) string {
	if cat, ok := n.Tables.LicenseRemap[class]; ok {
		return cat
	}
	return class
}

// SyntheticClass klassifiziert einen Datensatz anhand der erzeugenden Modelle.
// Maßgeblich ist nur das erste Modell.
func (n *RecordNormalizer) SyntheticClass(modelGenerated []string) (synthetic, class string) {
	if len(modelGenerated) == 0 {
		return RegularLabel, RegularLabel
	}
	first := modelGenerated[0]
	if slices.Contains(n.Tables.KnownModels, first) {
		return SyntheticLabel, SyntheticLabel + " (" + first + ")"
	}
	return SyntheticLabel, SyntheticOther
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
	"2006-1",
	"2006",
}

// ParseDate liest ein Datum in einem der üblichen Formate; sonst FallbackDate.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return fallbackTime, false
}

// EarlierDate liefert das chronologisch frühere der beiden Daten. Verglichen wird
// nach dem Parsen, nicht als String, damit "2020-9-1" und "2020-10-01" korrekt sortieren.
func EarlierDate(a, b string) time.Time {
	ta, _ := ParseDate(a)
	tb, _ := ParseDate(b)
	if tb.Before(ta) {
		return tb
	}
	return ta
}

// roundTenth rundet auf eine Nachkommastelle, halbe Werte nach oben (12.35 -> 12.4).
func roundTenth(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return math.Floor(*v*10+0.5) / 10
}

func countValue(v *float64) int {
	if v == nil || math.IsNaN(*v) || *v <= 0 {
		return 0
	}
	if *v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(*v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
