package engine

import (
	"strings"
	"testing"

	"indelfix/internal/annot"
	"indelfix/internal/hits"
	"indelfix/internal/ledger"
	"indelfix/internal/swalign"
)

// testEngine builds an engine over one periodic 300 bp contig with a
// single exact-boundary hit for the exon 100-200. The transcript for
// "delOne" is the exon patch missing the base at patch index 49, so the
// expected correction is a deletion at genomic position 149.
func testEngine(t *testing.T, transcript func(patch []byte) []byte) (*Engine, hits.Hit) {
	t.Helper()
	genome := []byte(strings.Repeat("ACGT", 75))
	patch := genome[99:200] // exon 100-200, 1-based inclusive
	h := hits.Hit{
		Contig: "c1", GStart: 100, GStop: 200,
		Strand: '+', TranscriptID: "t1", Identity: 100,
	}
	ix, err := hits.NewIndex([]hits.Hit{h})
	if err != nil {
		t.Fatal(err)
	}
	return &Engine{
		Genome:      map[string][]byte{"c1": genome},
		Transcripts: map[string][]byte{"t1": transcript(patch)},
		Index:       ix,
		Aligner:     swalign.New(),
		MinIdentity: hits.MinIdentity,
	}, h
}

func delAt(i int) func([]byte) []byte {
	return func(patch []byte) []byte {
		return append(append([]byte(nil), patch[:i]...), patch[i+1:]...)
	}
}

func TestProcessDeletion(t *testing.T) {
	eng, h := testEngine(t, delAt(49))
	m := annot.Model{ID: "m1", Contig: "c1", Strand: '+', Exons: []annot.Span{{Start: 100, Stop: 200}}}
	out, err := eng.Process(m)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Scratch["c1"][149]; got != ledger.Deletion {
		t.Fatalf("scratch = %v, want deletion at c1:149", out.Scratch)
	}
	if len(out.Scratch["c1"]) != 1 {
		t.Fatalf("scratch has extra edits: %v", out.Scratch)
	}
	if len(out.New) != 1 || out.New[0] != h.GSpan() {
		t.Errorf("new coords = %v, want [%v]", out.New, h.GSpan())
	}
	if len(out.Orig) != 1 || out.Orig[0] != m.Exons[0] {
		t.Errorf("orig coords = %v", out.Orig)
	}
	if len(out.Trace) != 1 {
		t.Fatalf("trace rows = %d, want 1", len(out.Trace))
	}
	tr := out.Trace[0]
	if tr.Match != "t1" || tr.MatchSpan != "100-200" || tr.Edits != "149:." {
		t.Errorf("trace = %+v", tr)
	}
	if tr.AlignedSpan != "1-100" {
		t.Errorf("aligned span = %q, want 1-100", tr.AlignedSpan)
	}
}

func TestProcessGapFree(t *testing.T) {
	eng, h := testEngine(t, func(patch []byte) []byte {
		return append([]byte(nil), patch...)
	})
	m := annot.Model{ID: "m1", Contig: "c1", Strand: '+', Exons: []annot.Span{{Start: 100, Stop: 200}}}
	out, err := eng.Process(m)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Scratch.Empty() {
		t.Fatalf("a clean alignment must propose nothing: %v", out.Scratch)
	}
	if len(out.New) != 1 || out.New[0] != h.GSpan() {
		t.Errorf("new coords = %v, want the supported hit span", out.New)
	}
}

func TestProcessNoCandidates(t *testing.T) {
	eng, _ := testEngine(t, delAt(49))
	m := annot.Model{ID: "m2", Contig: "c1", Strand: '+', Exons: []annot.Span{{Start: 10, Stop: 40}}}
	out, err := eng.Process(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Orig) != 1 || len(out.New) != 0 {
		t.Errorf("unsupported exon: orig=%v new=%v, want kept in orig and dropped from new", out.Orig, out.New)
	}
	if !out.Scratch.Empty() {
		t.Errorf("scratch = %v", out.Scratch)
	}
	if tr := out.Trace[0]; tr.Match != "_" || tr.Edits != "_" {
		t.Errorf("trace placeholders = %+v", tr)
	}
}

func TestProcessMissingTranscript(t *testing.T) {
	eng, _ := testEngine(t, delAt(49))
	delete(eng.Transcripts, "t1")
	m := annot.Model{ID: "m1", Contig: "c1", Strand: '+', Exons: []annot.Span{{Start: 100, Stop: 200}}}
	if _, err := eng.Process(m); err == nil {
		t.Fatal("expected an error for a transcript missing from the repository")
	}
}

func TestAlignHitsRanking(t *testing.T) {
	genome := []byte(strings.Repeat("ACGT", 75))
	patch := genome[99:200]
	eng := &Engine{
		Genome: map[string][]byte{"c1": genome},
		Transcripts: map[string][]byte{
			"clean":  append([]byte(nil), patch...),
			"gapped": delAt(49)(patch),
		},
		Aligner: swalign.New(),
	}
	cands := []hits.Hit{
		{Contig: "c1", GStart: 100, GStop: 200, Strand: '+', TranscriptID: "gapped", Identity: 99},
		{Contig: "c1", GStart: 100, GStop: 200, Strand: '+', TranscriptID: "clean", Identity: 100},
	}
	results, err := eng.AlignHits("c1", cands)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Hit.TranscriptID != "clean" {
		t.Errorf("best = %q; the higher-scoring gap-free alignment must rank first", results[0].Hit.TranscriptID)
	}
}

func TestFormatEdits(t *testing.T) {
	l := ledger.New()
	l.Set("c1", 149, ledger.Deletion)
	l.Set("c1", 40, "A")
	if got := FormatEdits(l); got != "40:A,149:." {
		t.Errorf("FormatEdits = %q", got)
	}
	if got := FormatEdits(ledger.New()); got != "_" {
		t.Errorf("empty FormatEdits = %q", got)
	}
}
