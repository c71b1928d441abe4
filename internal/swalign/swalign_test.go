package swalign

import (
	"errors"
	"strings"
	"testing"
)

// periodic returns n bases of a non-repeating local context ("ACGT"
// cycled), long enough that gap placement in tests is unambiguous.
func periodic(n int) []byte {
	return []byte(strings.Repeat("ACGT", n/4+1))[:n]
}

func TestAlignIdentical(t *testing.T) {
	patch := periodic(40)
	aln, err := New().Align(patch, patch)
	if err != nil {
		t.Fatal(err)
	}
	if aln.HasGap() {
		t.Fatalf("identical sequences aligned with a gap: %q / %q", aln.Genome, aln.Transcript)
	}
	if aln.Offset != 0 {
		t.Errorf("offset = %d, want 0", aln.Offset)
	}
	if aln.Genome != string(patch) || aln.Transcript != string(patch) {
		t.Errorf("aligned strings differ from input: %q / %q", aln.Genome, aln.Transcript)
	}
	if want := 40 * matchScore; aln.Score != want {
		t.Errorf("score = %d, want %d", aln.Score, want)
	}
}

func TestAlignDeletion(t *testing.T) {
	patch := periodic(40)
	// Transcript missing the base at patch index 21.
	tr := append(append([]byte(nil), patch[:21]...), patch[22:]...)
	aln, err := New().Align(patch, tr)
	if err != nil {
		t.Fatal(err)
	}
	if !aln.HasGap() {
		t.Fatalf("expected a gapped alignment: %q / %q", aln.Genome, aln.Transcript)
	}
	if len(aln.Genome) != 40 || aln.Offset != 0 {
		t.Errorf("alignment did not span the whole patch: len %d offset %d", len(aln.Genome), aln.Offset)
	}
	if i := strings.IndexByte(aln.Transcript, '-'); i != 21 {
		t.Errorf("transcript gap at column %d, want 21", i)
	}
	if strings.ContainsRune(aln.Genome, '-') {
		t.Error("the gap belongs on the transcript side")
	}
	if want := 39*matchScore + gapOpen + gapExtend; aln.Score != want {
		t.Errorf("score = %d, want %d", aln.Score, want)
	}
}

func TestAlignInsertion(t *testing.T) {
	patch := periodic(40)
	// Transcript carries one extra base relative to the patch.
	tr := append(append(append([]byte(nil), patch[:21]...), 'C'), patch[21:]...)
	aln, err := New().Align(patch, tr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.ContainsRune(aln.Genome, '-') {
		t.Fatalf("expected a genome-side gap: %q / %q", aln.Genome, aln.Transcript)
	}
}

func TestAlignAmbiguous(t *testing.T) {
	clean := periodic(20)
	dirty := append(append([]byte(nil), clean...), 'N')
	if _, err := New().Align(dirty, clean); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("ambiguous patch: err = %v", err)
	}
	if _, err := New().Align(clean, dirty); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("ambiguous transcript: err = %v", err)
	}
	lower := append(append([]byte(nil), clean...), 'a')
	if _, err := New().Align(clean, lower); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("lower-case base: err = %v", err)
	}
}

func TestHasGap(t *testing.T) {
	if (Alignment{Genome: "ACGT", Transcript: "ACGT"}).HasGap() {
		t.Error("false positive")
	}
	if !(Alignment{Genome: "AC-T", Transcript: "ACGT"}).HasGap() {
		t.Error("missed genome gap")
	}
	if !(Alignment{Genome: "ACGT", Transcript: "AC-T"}).HasGap() {
		t.Error("missed transcript gap")
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		g, t string
		want int
	}{
		{"ACGT", "ACGT", 4 * matchScore},
		{"ACGT", "ACTT", 3*matchScore + mismatch},
		{"ACGT", "AC-T", 3*matchScore + gapOpen + gapExtend},
		{"AC--T", "ACGTT", 3*matchScore + gapOpen + 2*gapExtend},
	}
	for _, c := range cases {
		if got := score(c.g, c.t); got != c.want {
			t.Errorf("score(%q, %q) = %d, want %d", c.g, c.t, got, c.want)
		}
	}
}
