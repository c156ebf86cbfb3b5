package providers

import (
	"bytes"
	"compress/gzip"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleSummary = `{
	"zeta": {"Dataset Name": "Z", "Languages": ["en"]},
	"alpha": {"Dataset Name": "A", "Text Sources": ["Reddit"]},
	"broken": "not an object",
	"mid": {"Dataset Name": "M", "Model Generated": ["OpenAI GPT-4"]}
}`

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeEntriesKeepsDocumentOrder(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	entries, err := DecodeEntries([]byte(sampleSummary), zap.New(core))
	if err != nil {
		t.Fatalf("DecodeEntries: %v", err)
	}
	var keys []string
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	if len(keys) != 3 || keys[0] != "zeta" || keys[1] != "alpha" || keys[2] != "mid" {
		t.Fatalf("unexpected keys %v", keys)
	}
	if entries[0].Dataset.DatasetName != "Z" || entries[2].Dataset.ModelGenerated[0] != "OpenAI GPT-4" {
		t.Fatalf("unexpected datasets: %+v", entries)
	}
	if logs.FilterField(zap.String("key", "broken")).Len() != 1 {
		t.Fatalf("skipped entry was not logged")
	}
}

func TestDecodeEntriesGzip(t *testing.T) {
	entries, err := DecodeEntries(gzipBytes(t, []byte(sampleSummary)), zap.NewNop())
	if err != nil {
		t.Fatalf("DecodeEntries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
}

func TestDecodeEntriesTypeMismatchKeepsRecord(t *testing.T) {
	data := []byte(`{"x": {"Dataset Name": "X", "Languages": "en", "Creators": ["C"]}}`)
	entries, err := DecodeEntries(data, zap.NewNop())
	if err != nil {
		t.Fatalf("DecodeEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected the record to be kept, got %d entries", len(entries))
	}
	ds := entries[0].Dataset
	if ds.DatasetName != "X" || len(ds.Languages) != 0 || len(ds.Creators) != 1 {
		t.Fatalf("unexpected partial record: %+v", ds)
	}
}

func TestDecodeEntriesErrors(t *testing.T) {
	cases := map[string]struct {
		data string
		want error
	}{
		"invalid": {`{"x": `, ErrInvalidJSON},
		"array":   {`[{"Dataset Name": "X"}]`, ErrNotObject},
		"string":  {`"hello"`, ErrNotObject},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeEntries([]byte(tc.data), zap.NewNop()); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDecodeEntriesEmptyObject(t *testing.T) {
	entries, err := DecodeEntries([]byte(`{}`), zap.NewNop())
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected no entries and no error, got %d, %v", len(entries), err)
	}
}

func TestDecompressPassesPlainData(t *testing.T) {
	out, err := Decompress([]byte("plain"))
	if err != nil || string(out) != "plain" {
		t.Fatalf("unexpected result %q, %v", out, err)
	}
}

func TestDecodeEntriesDuplicateKeyLastValueWins(t *testing.T) {
	data := []byte(`{
		"dup": {"Dataset Name": "D", "Languages": ["en"]},
		"other": {"Dataset Name": "O"},
		"dup": {"Dataset Name": "D", "Languages": ["fr"]}
	}`)
	core, logs := observer.New(zapcore.WarnLevel)
	entries, err := DecodeEntries(data, zap.New(core))
	if err != nil {
		t.Fatalf("DecodeEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Key != "dup" || entries[1].Key != "other" {
		t.Fatalf("duplicate key should keep its first position, got %q, %q", entries[0].Key, entries[1].Key)
	}
	if langs := entries[0].Dataset.Languages; len(langs) != 1 || langs[0] != "fr" {
		t.Fatalf("expected the last value to win, got %v", langs)
	}
	if logs.FilterField(zap.String("key", "dup")).Len() != 1 {
		t.Fatalf("duplicate key was not logged")
	}
}

func TestDecodeEntriesDuplicateKeyLastValueNotObject(t *testing.T) {
	data := []byte(`{"dup": {"Dataset Name": "D"}, "dup": 42}`)
	entries, err := DecodeEntries(data, zap.NewNop())
	if err != nil {
		t.Fatalf("DecodeEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("last value is not an object, expected no entries, got %+v", entries)
	}
}
