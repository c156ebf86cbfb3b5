package services

import "sort"

// CountEntry ist ein Schlüssel mit seinem Zählerstand.
type CountEntry struct {
	Key   string
	Count int
}

// CountTable ist eine Zähltabelle, deren Iterationsreihenfolge die Reihenfolge
// des ersten Auftretens jedes Schlüssels ist. Das Chart-Layout hängt von dieser
// Reihenfolge ab, deshalb keine nackte map.
type CountTable struct {
	index   map[string]int
	entries []CountEntry
}

// NewCountTable erstellt eine leere Zähltabelle.
func NewCountTable() *CountTable {
	return &CountTable{index: make(map[string]int)}
}

// Add erhöht den Zähler von key um n und legt den Schlüssel bei Bedarf an.
func (t *CountTable) Add(key string, n int) {
	if i, ok := t.index[key]; ok {
		t.entries[i].Count += n
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, CountEntry{Key: key, Count: n})
}

// Inc erhöht den Zähler von key um eins.
func (t *CountTable) Inc(key string) {
	t.Add(key, 1)
}

// Get liefert den Zählerstand und ob der Schlüssel existiert.
func (t *CountTable) Get(key string) (int, bool) {
	i, ok := t.index[key]
	if !ok {
		return 0, false
	}
	return t.entries[i].Count, true
}

// Len liefert die Anzahl der Schlüssel.
func (t *CountTable) Len() int {
	return len(t.entries)
}

// Total liefert die Summe aller Zähler.
func (t *CountTable) Total() int {
	sum := 0
	for _, e := range t.entries {
		sum += e.Count
	}
	return sum
}

// Entries liefert eine Kopie der Einträge in Einfügereihenfolge.
func (t *CountTable) Entries() []CountEntry {
	out := make([]CountEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// SortedDesc liefert die Einträge absteigend nach Zählerstand; gleiche Stände
// behalten die Einfügereihenfolge.
func (t *CountTable) SortedDesc() []CountEntry {
	out := t.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
