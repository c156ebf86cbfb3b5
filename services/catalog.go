package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"provenance-explorer/config"
	"provenance-explorer/models"
	"provenance-explorer/providers"
	"provenance-explorer/reference"
)

var (
	// ErrNotLoaded wird geliefert, solange noch kein Snapshot geladen wurde.
	ErrNotLoaded = errors.New("data summary not loaded yet")
	// ErrUnknownGroup wird geliefert, wenn es keine Gruppentabelle dieses Typs gibt.
	ErrUnknownGroup = errors.New("unknown group table")
)

// DefaultGroupFields ordnet jeder Gruppentabelle das Listenfeld zu, über das ihr Sunburst gebildet wird.
var DefaultGroupFields = map[string]string{
	"domain":   "textSources",
	"task":     "tasks",
	"language": "languages",
	"model":    "modelGenerated",
	"creator":  "creators",
}

// Snapshot ist ein vollständig normalisierter Stand der Data-Summary. Er wird nach
// dem Aufbau nicht mehr verändert.
type Snapshot struct {
	Records  []models.Summary
	Entries  int
	Source   string
	LoadedAt time.Time
}

// Catalog kümmert sich um Laden, Normalisieren und Bereitstellen der Chart-Daten.
type Catalog struct {
	Config      *config.Config
	Source      providers.Source
	Tables      *reference.Tables
	Normalizer  *RecordNormalizer
	SourceTrees *SourceTreeBuilder
	Logger      *zap.Logger

	mu   sync.RWMutex
	snap *Snapshot
}

// NewCatalog erstellt eine neue Instanz des Catalog.
func NewCatalog(cfg *config.Config, source providers.Source, tables *reference.Tables, logger *zap.Logger) *Catalog {
	if tables == nil {
		tables = &reference.Tables{Groups: map[string]models.GroupTable{}}
	}
	normalizer := NewRecordNormalizer(NormalizerTables{
		LicenseRemap: tables.LicenseRemap,
		KnownModels:  tables.KnownModels,
	}, logger)
	trees := NewSourceTreeBuilder(SourceTreeOptions{
		TopN:        cfg.TopSourcesPerDomain,
		LabelMaxLen: cfg.SourceLabelMaxLen,
	}, logger)
	return &Catalog{
		Config:      cfg,
		Source:      source,
		Tables:      tables,
		Normalizer:  normalizer,
		SourceTrees: trees,
		Logger:      logger,
	}
}

// Reload lädt die Data-Summary vollständig neu und ersetzt den Snapshot erst,
// wenn Laden und Normalisieren geklappt haben. Bei einem Fehler bleibt der
// bisherige Snapshot unverändert.
func (c *Catalog) Reload(ctx context.Context) (int, error) {
	log := c.Logger.With(zap.String("source", c.Source.Name()))
	start := time.Now()

	entries, err := c.Source.Load(ctx)
	if err != nil {
		reloadsTotal.WithLabelValues(c.Source.Name(), "error").Inc()
		log.Error("Fehler beim Laden der Data-Summary", zap.Error(err))
		return 0, fmt.Errorf("load data summary from %s: %w", c.Source.Name(), err)
	}

	records := c.Normalizer.Normalize(entries)
	snap := &Snapshot{
		Records:  records,
		Entries:  len(entries),
		Source:   c.Source.Name(),
		LoadedAt: time.Now().UTC(),
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	reloadsTotal.WithLabelValues(c.Source.Name(), "ok").Inc()
	datasetsLoaded.Set(float64(len(records)))
	entriesLoaded.Set(float64(len(entries)))
	lastReloadTimestamp.Set(float64(snap.LoadedAt.Unix()))

	log.Info("Data-Summary geladen",
		zap.Int("entries", len(entries)),
		zap.Int("datasets", len(records)),
		zap.Duration("took", time.Since(start)))
	return len(records), nil
}

// Snapshot liefert den aktuellen Stand.
func (c *Catalog) Snapshot() (*Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return nil, ErrNotLoaded
	}
	return c.snap, nil
}

// Records liefert die normalisierten Datensätze des aktuellen Snapshots.
func (c *Catalog) Records() ([]models.Summary, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}

// GroupTree baut den Sunburst-Baum für eine Gruppentabelle. Ein leeres field
// nimmt das Standardfeld der Tabelle.
func (c *Catalog) GroupTree(kind, field string) (models.TreeNode, error) {
	groups, ok := c.Tables.Group(kind)
	if !ok {
		return models.TreeNode{}, fmt.Errorf("%w: %q", ErrUnknownGroup, kind)
	}
	if field == "" {
		field, ok = DefaultGroupFields[kind]
		if !ok {
			return models.TreeNode{}, fmt.Errorf("%w: no default field for group table %q", ErrUnknownField, kind)
		}
	}
	records, err := c.Records()
	if err != nil {
		return models.TreeNode{}, err
	}
	return GroupTree(records, groups, field)
}

// NestedTree baut den Eltern/Kind-Baum über dem aktuellen Snapshot.
func (c *Catalog) NestedTree(parentField, childField string) (models.TreeNode, error) {
	records, err := c.Records()
	if err != nil {
		return models.TreeNode{}, err
	}
	return NestedTree(records, parentField, childField)
}

// SourceTree baut den Domain/Quellen-Baum über dem aktuellen Snapshot.
func (c *Catalog) SourceTree() (SourceTree, error) {
	records, err := c.Records()
	if err != nil {
		return SourceTree{}, err
	}
	domains, _ := c.Tables.Group("domain")
	return c.SourceTrees.Build(records, domains), nil
}

// LanguageCountries liefert Sprache -> Länder aus den Geo-Referenzdaten.
// Hängt nicht vom Snapshot ab.
func (c *Catalog) LanguageCountries() map[string][]string {
	return LanguageCountries(c.Tables.Geo, c.Config.LanguageShareThreshold)
}

// CountryCounts liefert die Anzahl Datensätze je Land für die Weltkarte.
func (c *Catalog) CountryCounts() ([]models.ChartPoint, error) {
	records, err := c.Records()
	if err != nil {
		return nil, err
	}
	return CountryDatasetCounts(records, c.LanguageCountries()), nil
}
