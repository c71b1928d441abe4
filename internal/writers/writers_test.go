package writers

import (
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"indelfix/internal/engine"
	"indelfix/internal/ledger"
)

func TestWriteEdits(t *testing.T) {
	l := ledger.New()
	l.Set("c2", 5, "G")
	l.Set("c1", 149, ledger.Deletion)
	l.Set("c1", 40, "A")

	var sb strings.Builder
	if err := WriteEditHeader(&sb); err != nil {
		t.Fatal(err)
	}
	if err := WriteEdits(&sb, l, ""); err != nil {
		t.Fatal(err)
	}
	want := EditHeader + "\n" +
		"c1\t40\tA\n" +
		"c1\t149\t.\n" +
		"c2\t5\tG\n"
	if sb.String() != want {
		t.Fatalf("output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestWriteEditsComment(t *testing.T) {
	l := ledger.New()
	l.Set("c1", 10, ledger.Deletion)
	var sb strings.Builder
	if err := WriteEdits(&sb, l, "# section"); err != nil {
		t.Fatal(err)
	}
	if got := sb.String(); got != "# section\nc1\t10\t.\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestTraceWriter(t *testing.T) {
	var sb strings.Builder
	tw, err := NewTraceWriter(&sb)
	if err != nil {
		t.Fatal(err)
	}
	err = tw.Row(engine.Trace{
		Contig: "c1", Gene: "m1", Exon: "100-200",
		Match: "t1", MatchSpan: "100-200", AlignedSpan: "1-100", Edits: "149:.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := tw.Comment("m1\tmodel length increased"); err != nil {
		t.Fatal(err)
	}
	if err := tw.Flush(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %q", len(lines), sb.String())
	}
	if lines[0] != TraceHeader {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "c1\tm1\t100-200\tt1\t100-200\t1-100\t149:." {
		t.Errorf("row = %q", lines[1])
	}
	if lines[2] != "#m1\tmodel length increased" {
		t.Errorf("comment = %q", lines[2])
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if !IsBrokenPipe(syscall.EPIPE) {
		t.Error("EPIPE not recognised")
	}
	if !IsBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)) {
		t.Error("wrapped EPIPE not recognised")
	}
	if !IsBrokenPipe(io.ErrClosedPipe) {
		t.Error("ErrClosedPipe not recognised")
	}
	if IsBrokenPipe(nil) {
		t.Error("nil is not a broken pipe")
	}
	if IsBrokenPipe(io.EOF) {
		t.Error("EOF is not a broken pipe")
	}
}
