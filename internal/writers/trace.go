package writers

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"indelfix/internal/engine"
)

// TraceHeader names the columns of the diagnostic trace log.
const TraceHeader = "#contig_id\tgene_name\toriginal_exon_coords\tbest_transcript_match\ttranscript_coords_against_genome\taligned_region_of_transcript\tmodified_locations"

// TraceWriter emits the optional per-exon / per-region diagnostic TSV.
// It is purely observational; nothing downstream consumes it.
type TraceWriter struct {
	bw *bufio.Writer
}

func NewTraceWriter(w io.Writer) (*TraceWriter, error) {
	tw := &TraceWriter{bw: bufio.NewWriter(w)}
	if _, err := fmt.Fprintln(tw.bw, TraceHeader); err != nil {
		return nil, err
	}
	return tw, nil
}

// Row writes one evidence row.
func (t *TraceWriter) Row(tr engine.Trace) error {
	_, err := fmt.Fprintln(t.bw, strings.Join([]string{
		tr.Contig, tr.Gene, tr.Exon, tr.Match, tr.MatchSpan, tr.AlignedSpan, tr.Edits,
	}, "\t"))
	return err
}

// Comment writes a '#'-prefixed free-form line (verdicts, section marks).
func (t *TraceWriter) Comment(text string) error {
	_, err := fmt.Fprintln(t.bw, "#"+text)
	return err
}

func (t *TraceWriter) Flush() error { return t.bw.Flush() }
