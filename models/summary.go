package models

import "time"

// Summary ist der normalisierte, deduplizierte Datensatz, den die Chart-Schicht konsumiert.
type Summary struct {
	DatasetName string   `json:"datasetName"`
	Collection  string   `json:"collection"`
	Languages   []string `json:"languages"`
	Tasks       []string `json:"tasks"`
	TextSources []string `json:"textSources"`
	TextDomains []string `json:"textDomains"`
	Creators    []string `json:"creators"`

	// Erzeugende Modelle in Originalreihenfolge; leer bei nicht-synthetischen Datensätzen.
	ModelGenerated []string `json:"modelGenerated"`

	LicenseUseClass    string `json:"licenseUseClass"`
	LicenseUseCategory string `json:"licenseUseCategory"`
	Synthetic          string `json:"synthetic"`
	SyntheticClass     string `json:"syntheticClass"`

	TextTopics    []string `json:"textTopics"`
	CitationCount int      `json:"citationCount"`
	DownloadCount int      `json:"downloadCount"`

	InputTextLen  float64 `json:"inputTextLen"`
	TargetTextLen float64 `json:"targetTextLen"`

	PwCDate string    `json:"pwcDate"`
	S2Date  string    `json:"s2Date"`
	Date    time.Time `json:"date"`

	HFLink string `json:"hfLink,omitempty"`
}

// ListField liefert ein listenwertiges Feld anhand seines JSON-Namens.
func (s *Summary) ListField(name string) ([]string, bool) {
	switch name {
	case "languages":
		return s.Languages, true
	case "tasks":
		return s.Tasks, true
	case "textSources":
		return s.TextSources, true
	case "textDomains":
		return s.TextDomains, true
	case "creators":
		return s.Creators, true
	case "textTopics":
		return s.TextTopics, true
	case "modelGenerated":
		return s.ModelGenerated, true
	}
	return nil, false
}

// StringField liefert ein einwertiges Textfeld anhand seines JSON-Namens.
func (s *Summary) StringField(name string) (string, bool) {
	switch name {
	case "datasetName":
		return s.DatasetName, true
	case "collection":
		return s.Collection, true
	case "licenseUseClass":
		return s.LicenseUseClass, true
	case "licenseUseCategory":
		return s.LicenseUseCategory, true
	case "synthetic":
		return s.Synthetic, true
	case "syntheticClass":
		return s.SyntheticClass, true
	}
	return "", false
}
