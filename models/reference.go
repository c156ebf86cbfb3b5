package models

// Group ist ein benannter Eintrag einer Gruppentabelle (z.B. Domain -> Quellen).
type Group struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// GroupTable ist eine geordnete Gruppentabelle. Die Reihenfolge entspricht der
// Reihenfolge in der Quelldatei und bestimmt die Reihenfolge im Chart.
type GroupTable []Group

// Names gibt die Gruppennamen in Tabellenreihenfolge zurück.
func (t GroupTable) Names() []string {
	names := make([]string, 0, len(t))
	for _, g := range t {
		names = append(names, g.Name)
	}
	return names
}

// Country ist ein Eintrag der Länderliste.
type Country struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// LanguageShare ist der Anteil einer Sprache an der Bevölkerung eines Landes in Prozent.
type LanguageShare struct {
	Percent float64 `json:"percent" yaml:"percent"`
}

// GeoTables bündelt die geographischen Referenzdaten.
type GeoTables struct {
	Countries []Country
	// Sprachcode -> ";"-getrennte Sprachnamen
	LanguageNames map[string]string
	// Ländercode -> Sprachcode -> Anteil
	CountryLanguages map[string]map[string]LanguageShare
}

// ChartPoint ist ein einfacher Name/Wert-Datenpunkt.
type ChartPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
