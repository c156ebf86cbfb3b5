package models

// RawDataset ist ein Eintrag der Data-Summary, so wie ihn die JSON-Quelle liefert.
// Optionale Felder sind Pointer, damit "fehlt" von "leer" unterscheidbar bleibt.
type RawDataset struct {
	DatasetName    string            `json:"Dataset Name"`
	Collection     string            `json:"Collection"`
	Languages      []string          `json:"Languages"`
	TaskCategories []string          `json:"Task Categories"`
	TextSources    []string          `json:"Text Sources"`
	TextDomains    []string          `json:"Text Domains"`
	Creators       []string          `json:"Creators"`
	LicenseUse     string            `json:"License Use (DataProvenance)"`
	ModelGenerated []string          `json:"Model Generated"`
	Inferred       *InferredMetadata `json:"Inferred Metadata,omitempty"`
	TextMetrics    *TextMetrics      `json:"Text Metrics,omitempty"`
	HuggingFaceURL *string           `json:"Hugging Face URL,omitempty"`
}

// InferredMetadata enthält automatisch ermittelte Zusatzinformationen.
type InferredMetadata struct {
	TextTopics    []string `json:"Text Topics,omitempty"`
	CitationCount *float64 `json:"S2 Citation Count (June 2023),omitempty"`
	Downloads     *float64 `json:"HF Downloads (June 2023),omitempty"`
	PwCDate       *string  `json:"PwC Date,omitempty"`
	S2Date        *string  `json:"S2 Date,omitempty"`
}

// TextMetrics enthält mittlere Textlängen eines Datensatzes.
type TextMetrics struct {
	MeanInputsLength  *float64 `json:"Mean Inputs Length,omitempty"`
	MeanTargetsLength *float64 `json:"Mean Targets Length,omitempty"`
}

// RawEntry ist ein Eintrag der Roh-Mapping zusammen mit seinem Schlüssel.
// Die Reihenfolge eines []RawEntry entspricht der Reihenfolge im Dokument.
type RawEntry struct {
	Key     string
	Dataset RawDataset
}
