package services

import (
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"provenance-explorer/models"
)

// recordsWithSources erzeugt je Vorkommen einen Datensatz mit genau einer Quelle.
func recordsWithSources(counts ...any) []models.Summary {
	var out []models.Summary
	for i := 0; i+1 < len(counts); i += 2 {
		src := counts[i].(string)
		n := counts[i+1].(int)
		for j := 0; j < n; j++ {
			out = append(out, models.Summary{TextSources: []string{src}})
		}
	}
	return out
}

func newTestSourceTreeBuilder() *SourceTreeBuilder {
	return NewSourceTreeBuilder(DefaultSourceTreeOptions(), zap.NewNop())
}

func TestSourceTreeTopNAndOther(t *testing.T) {
	domains := models.GroupTable{
		{Name: "Web", Members: []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7"}},
		{Name: "Books", Members: []string{"b1", "b2", "b3"}},
	}
	records := recordsWithSources(
		"s1", 7, "s2", 6, "s3", 5, "s4", 4, "s5", 3, "s6", 2, "s7", 1,
		"b1", 1, "b2", 1, "b3", 1,
	)

	tree := newTestSourceTreeBuilder().Build(records, domains)
	if tree.GrandTotal != 31 {
		t.Fatalf("unexpected grand total %d", tree.GrandTotal)
	}
	want := []string{
		"Web (90.32%)]s1 (22.58%)",
		"Web (90.32%)]s2 (19.35%)",
		"Web (90.32%)]s3 (16.13%)",
		"Web (90.32%)]s4 (12.90%)",
		"Web (90.32%)]s5 (9.68%)",
		"Web (90.32%)]Other (9.68%)",
		"Books (9.68%)]b1 (3.23%)",
		"Books (9.68%)]b2 (3.23%)",
		"Books (9.68%)]b3 (3.23%)",
	}
	if !reflect.DeepEqual(tree.Paths, want) {
		t.Fatalf("unexpected paths:\n got %q\nwant %q", tree.Paths, want)
	}

	if len(tree.Domains) != 2 {
		t.Fatalf("expected 2 domains, got %d", len(tree.Domains))
	}
	web := tree.Domains[0]
	if web.Domain != "Web" || web.Total != 28 || len(web.Sources) != 6 {
		t.Fatalf("unexpected web tally: %+v", web)
	}
	if other := web.Sources[5]; other.Source != "Other" || other.Count != 3 {
		t.Fatalf("unexpected other bucket: %+v", other)
	}
	if books := tree.Domains[1]; len(books.Sources) != 3 {
		t.Fatalf("domain with 3 sources must not get an Other bucket: %+v", books)
	}
}

func TestSourceTreeExactlyTopNHasNoOther(t *testing.T) {
	domains := models.GroupTable{{Name: "D", Members: []string{"a", "b", "c", "d", "e"}}}
	tree := newTestSourceTreeBuilder().Build(recordsWithSources("a", 1, "b", 1, "c", 1, "d", 1, "e", 1), domains)
	if len(tree.Paths) != 5 {
		t.Fatalf("expected 5 paths, got %d: %q", len(tree.Paths), tree.Paths)
	}
	for _, p := range tree.Paths {
		if strings.Contains(p, "]Other") {
			t.Fatalf("unexpected Other bucket: %q", p)
		}
	}
}

func TestSourceTreeDomainTieBreakByName(t *testing.T) {
	domains := models.GroupTable{
		{Name: "Zeta", Members: []string{"z"}},
		{Name: "Alpha", Members: []string{"a"}},
	}
	tree := newTestSourceTreeBuilder().Build(recordsWithSources("z", 2, "a", 2), domains)
	want := []string{"Alpha (50.00%)]a (50.00%)", "Zeta (50.00%)]z (50.00%)"}
	if !reflect.DeepEqual(tree.Paths, want) {
		t.Fatalf("unexpected paths: %q", tree.Paths)
	}
}

func TestSourceTreeLabelTruncation(t *testing.T) {
	decomposed := "Wikipe\u0301dia Französisch"
	domains := models.GroupTable{{Name: "Web", Members: []string{
		"Common Crawl Derivative", "abcdefghijklmn", decomposed,
	}}}
	records := recordsWithSources("Common Crawl Derivative", 2, "abcdefghijklmn", 1, decomposed, 1)

	tree := newTestSourceTreeBuilder().Build(records, domains)
	want := []string{
		"Web (100.00%)]Common Crawl D... (50.00%)",
		"Web (100.00%)]abcdefghijklmn (25.00%)",
		"Web (100.00%)]Wikip\u00e9dia Fran... (25.00%)",
	}
	if !reflect.DeepEqual(tree.Paths, want) {
		t.Fatalf("unexpected paths:\n got %q\nwant %q", tree.Paths, want)
	}
}

func TestSourceTreeLabelKeepsSpelling(t *testing.T) {
	domains := models.GroupTable{{Name: "Web", Members: []string{"a  b", "ﬁle"}}}
	tree := newTestSourceTreeBuilder().Build(recordsWithSources("a  b", 1, "ﬁle", 1), domains)
	want := []string{"Web (100.00%)]a  b (50.00%)", "Web (100.00%)]ﬁle (50.00%)"}
	if !reflect.DeepEqual(tree.Paths, want) {
		t.Fatalf("labels below the limit must stay unchanged, got %q", tree.Paths)
	}
}

func TestSourceTreeUnmappedSources(t *testing.T) {
	domains := models.GroupTable{{Name: "Web", Members: []string{"known"}}}
	tree := newTestSourceTreeBuilder().Build(recordsWithSources("known", 3, "stray", 1), domains)
	want := []string{"Web (75.00%)]known (75.00%)", "Unknown (25.00%)]stray (25.00%)"}
	if !reflect.DeepEqual(tree.Paths, want) {
		t.Fatalf("unexpected paths: %q", tree.Paths)
	}
}

func TestSourceTreeEmpty(t *testing.T) {
	tree := newTestSourceTreeBuilder().Build(nil, models.GroupTable{{Name: "Web", Members: []string{"x"}}})
	if tree.GrandTotal != 0 || len(tree.Paths) != 0 || len(tree.Domains) != 0 {
		t.Fatalf("expected empty tree, got %+v", tree)
	}
}

func TestSourceTreeCollisionLastWins(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := NewSourceTreeBuilder(SourceTreeOptions{}, zap.New(core))
	domains := models.GroupTable{
		{Name: "First", Members: []string{"shared"}},
		{Name: "Second", Members: []string{"shared", "own"}},
	}

	tree := b.Build(recordsWithSources("shared", 1, "own", 1), domains)
	want := []string{"Second (100.00%)]shared (50.00%)", "Second (100.00%)]own (50.00%)"}
	if !reflect.DeepEqual(tree.Paths, want) {
		t.Fatalf("unexpected paths: %q", tree.Paths)
	}
	if n := logs.FilterField(zap.String("collision", "shared: First -> Second")).Len(); n != 1 {
		t.Fatalf("expected one logged collision, got %d", n)
	}
}

func TestInvertGroups(t *testing.T) {
	inverted, collisions := InvertGroups(models.GroupTable{
		{Name: "A", Members: []string{"x", "y"}},
		{Name: "B", Members: []string{"y"}},
		{Name: "A", Members: []string{"x"}},
	})
	if inverted["x"] != "A" || inverted["y"] != "B" {
		t.Fatalf("unexpected inversion: %v", inverted)
	}
	if !reflect.DeepEqual(collisions, []string{"y: A -> B"}) {
		t.Fatalf("unexpected collisions: %v", collisions)
	}
}
