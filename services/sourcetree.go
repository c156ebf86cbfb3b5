package services

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"provenance-explorer/models"
)

// SourceTreeOptions steuern den Aufbau des Quellen-Baums.
type SourceTreeOptions struct {
	TopN           int    // Anzahl Quellen je Domain, der Rest landet in OtherLabel
	LabelMaxLen    int    // maximale Label-Länge in Zeichen vor "..."
	Delimiter      string // Pfadtrenner des Tree-Renderers
	OtherLabel     string
	UnmappedDomain string // Domain für Quellen ohne Eintrag in der Gruppentabelle
}

// DefaultSourceTreeOptions liefert die Standardoptionen.
func DefaultSourceTreeOptions() SourceTreeOptions {
	return SourceTreeOptions{
		TopN:           5,
		LabelMaxLen:    14,
		Delimiter:      "]",
		OtherLabel:     "Other",
		UnmappedDomain: "Unknown",
	}
}

// SourceCount ist eine Quelle mit ihrer Häufigkeit und ihrem Anteil (in Prozent) an der Gesamtsumme.
type SourceCount struct {
	Source  string  `json:"source"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// DomainTally fasst eine Domain mit ihren behaltenen Quellen zusammen.
type DomainTally struct {
	Domain  string        `json:"domain"`
	Total   int           `json:"total"`
	Percent float64       `json:"percent"`
	Sources []SourceCount `json:"sources"`
}

// SourceTree ist das Ergebnis des Builders: strukturierte Zählung plus Pfad-Strings.
type SourceTree struct {
	GrandTotal int           `json:"grandTotal"`
	Domains    []DomainTally `json:"domains"`
	Paths      []string      `json:"paths"`
}

// SourceTreeBuilder ordnet Textquellen ihren Domains zu und erzeugt die Pfade für den Tree-Renderer.
type SourceTreeBuilder struct {
	Options SourceTreeOptions
	Logger  *zap.Logger
}

// NewSourceTreeBuilder erstellt einen Builder; nicht gesetzte Optionen erhalten ihre Defaults.
func NewSourceTreeBuilder(opts SourceTreeOptions, logger *zap.Logger) *SourceTreeBuilder {
	def := DefaultSourceTreeOptions()
	if opts.TopN <= 0 {
		opts.TopN = def.TopN
	}
	if opts.LabelMaxLen <= 0 {
		opts.LabelMaxLen = def.LabelMaxLen
	}
	if opts.Delimiter == "" {
		opts.Delimiter = def.Delimiter
	}
	if opts.OtherLabel == "" {
		opts.OtherLabel = def.OtherLabel
	}
	if opts.UnmappedDomain == "" {
		opts.UnmappedDomain = def.UnmappedDomain
	}
	return &SourceTreeBuilder{Options: opts, Logger: logger}
}

// InvertGroups kehrt eine Gruppentabelle zu Wert -> Gruppe um. Steht ein Wert in
// mehreren Gruppen, gewinnt die letzte Gruppe in Tabellenreihenfolge; die
// überschriebenen Zuordnungen werden als "wert: alt -> neu" zurückgegeben.
func InvertGroups(groups models.GroupTable) (map[string]string, []string) {
	inverted := make(map[string]string)
	var collisions []string
	for _, g := range groups {
		for _, m := range g.Members {
			if prev, ok := inverted[m]; ok && prev != g.Name {
				collisions = append(collisions, fmt.Sprintf("%s: %s -> %s", m, prev, g.Name))
			}
			inverted[m] = g.Name
		}
	}
	return inverted, collisions
}

// Build zählt die Textquellen aller Datensätze und erzeugt je (Domain, behaltene Quelle)
// einen Pfad der Form "<domain> (<p>%)]<quelle> (<p>%)".
func (b *SourceTreeBuilder) Build(records []models.Summary, domains models.GroupTable) SourceTree {
	opts := b.Options
	sourceToDomain, collisions := InvertGroups(domains)
	for _, c := range collisions {
		b.Logger.Warn("Quelle mehreren Domains zugeordnet, letzte gewinnt", zap.String("collision", c))
	}

	sourceCounts := NewCountTable()
	for i := range records {
		for _, src := range records[i].TextSources {
			sourceCounts.Inc(src)
		}
	}

	domainOrder := NewCountTable()
	perDomain := make(map[string]*CountTable)
	unmapped := 0
	for _, e := range sourceCounts.Entries() {
		domain, ok := sourceToDomain[e.Key]
		if !ok {
			domain = opts.UnmappedDomain
			unmapped++
		}
		domainOrder.Add(domain, e.Count)
		ct, ok := perDomain[domain]
		if !ok {
			ct = NewCountTable()
			perDomain[domain] = ct
		}
		ct.Add(e.Key, e.Count)
	}
	if unmapped > 0 {
		b.Logger.Debug("Quellen ohne Domain", zap.Int("count", unmapped), zap.String("domain", opts.UnmappedDomain))
	}

	tree := SourceTree{GrandTotal: domainOrder.Total(), Domains: []DomainTally{}, Paths: []string{}}
	if tree.GrandTotal == 0 {
		return tree
	}

	sorted := domainOrder.Entries()
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Key < sorted[j].Key
	})

	for _, d := range sorted {
		tally := DomainTally{
			Domain:  d.Key,
			Total:   d.Count,
			Percent: percentOf(d.Count, tree.GrandTotal),
		}
		for _, s := range topWithRest(perDomain[d.Key].SortedDesc(), opts.TopN, opts.OtherLabel) {
			tally.Sources = append(tally.Sources, SourceCount{
				Source:  s.Key,
				Count:   s.Count,
				Percent: percentOf(s.Count, tree.GrandTotal),
			})
			tree.Paths = append(tree.Paths, fmt.Sprintf("%s (%s%%)%s%s (%s%%)",
				d.Key, formatPercent(d.Count, tree.GrandTotal),
				opts.Delimiter,
				truncateLabel(s.Key, opts.LabelMaxLen), formatPercent(s.Count, tree.GrandTotal)))
		}
		tree.Domains = append(tree.Domains, tally)
	}
	return tree
}

// topWithRest behält die ersten n Einträge und fasst den Rest unter otherLabel zusammen.
// Bei höchstens n Einträgen entsteht kein Rest-Eintrag.
func topWithRest(entries []CountEntry, n int, otherLabel string) []CountEntry {
	if len(entries) <= n {
		return entries
	}
	kept := append([]CountEntry{}, entries[:n]...)
	rest := 0
	for _, e := range entries[n:] {
		rest += e.Count
	}
	return append(kept, CountEntry{Key: otherLabel, Count: rest})
}

func percentOf(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func formatPercent(n, total int) string {
	return fmt.Sprintf("%.2f", percentOf(n, total))
}
