package services

import (
	"sort"

	"provenance-explorer/models"
)

// CountryLanguageShares liefert Landesname -> Sprachname -> Anteil (0..1).
// Länder ohne Sprachdaten fehlen. Ergeben zwei Sprachcodes denselben Namen,
// zählt der größere Anteil.
func CountryLanguageShares(geo models.GeoTables) map[string]map[string]float64 {
	names := make(map[string][]string, len(geo.LanguageNames))
	for code, joined := range geo.LanguageNames {
		names[code] = splitNames(joined)
	}

	out := make(map[string]map[string]float64)
	for _, country := range geo.Countries {
		langs, ok := geo.CountryLanguages[country.Code]
		if !ok {
			continue
		}
		shares := out[country.Name]
		if shares == nil {
			shares = make(map[string]float64)
			out[country.Name] = shares
		}
		for code, share := range langs {
			p := share.Percent / 100.0
			for _, name := range names[code] {
				if cur, ok := shares[name]; !ok || p > cur {
					shares[name] = p
				}
			}
		}
	}
	return out
}

// LanguageCountries liefert Sprachname -> Länder, in denen der Anteil der Sprache
// threshold übersteigt. Die Länder stehen in der Reihenfolge der Länderliste.
func LanguageCountries(geo models.GeoTables, threshold float64) map[string][]string {
	shares := CountryLanguageShares(geo)
	out := make(map[string][]string)
	seen := make(map[string]bool, len(geo.Countries))
	for _, country := range geo.Countries {
		if seen[country.Name] {
			continue
		}
		seen[country.Name] = true
		langs := shares[country.Name]
		keys := make([]string, 0, len(langs))
		for lang := range langs {
			keys = append(keys, lang)
		}
		sort.Strings(keys)
		for _, lang := range keys {
			if langs[lang] > threshold {
				out[lang] = append(out[lang], country.Name)
			}
		}
	}
	return out
}

// CountryDatasetCounts zählt je Land die Datensätze, die mindestens eine dort
// gesprochene Sprache enthalten. Ergebnis absteigend nach Anzahl, dann nach Name;
// das ist die Eingabe der Weltkarte.
func CountryDatasetCounts(records []models.Summary, languageCountries map[string][]string) []models.ChartPoint {
	counts := NewCountTable()
	for i := range records {
		countries := make(map[string]bool)
		for _, lang := range records[i].Languages {
			for _, c := range languageCountries[lang] {
				countries[c] = true
			}
		}
		names := make([]string, 0, len(countries))
		for c := range countries {
			names = append(names, c)
		}
		sort.Strings(names)
		for _, c := range names {
			counts.Inc(c)
		}
	}

	entries := counts.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	points := make([]models.ChartPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, models.ChartPoint{Name: e.Key, Value: e.Count})
	}
	return points
}
