// Package hits loads and indexes transcript-to-genome alignment records
// and selects the candidates used as evidence for each exon.
package hits

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"indelfix/internal/annot"
)

// Hit is one transcript-to-genome alignment record. Read-only input.
type Hit struct {
	GStart, GStop int // genomic span, 1-based inclusive
	TStart, TStop int // transcript span, 1-based inclusive
	Strand        byte
	TranscriptID  string
	Identity      int // percent, 0-100
	Contig        string
}

// GSpan returns the genomic interval of the hit.
func (h Hit) GSpan() annot.Span { return annot.Span{Start: h.GStart, Stop: h.GStop} }

// ParseHits reads cDNA_match records from an alignment GFF3. The score
// column carries the aligner's percent identity; the Target attribute
// carries the transcript span.
func ParseHits(path string) ([]Hit, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var out []Hit
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 9 || cols[2] != "cDNA_match" {
			continue
		}
		h := Hit{Contig: cols[0]}
		if h.GStart, err = strconv.Atoi(cols[3]); err != nil {
			return nil, fmt.Errorf("hits %s:%d: bad start %q", path, ln, cols[3])
		}
		if h.GStop, err = strconv.Atoi(cols[4]); err != nil {
			return nil, fmt.Errorf("hits %s:%d: bad stop %q", path, ln, cols[4])
		}
		if h.Identity, err = parseIdentity(cols[5]); err != nil {
			return nil, fmt.Errorf("hits %s:%d: bad identity %q", path, ln, cols[5])
		}
		h.Strand = '+'
		if cols[6] == "-" {
			h.Strand = '-'
		}
		h.TranscriptID = annot.Attribute(cols[8], "Name")
		if h.TranscriptID == "" {
			return nil, fmt.Errorf("hits %s:%d: cDNA_match without Name attribute", path, ln)
		}
		target := strings.Fields(annot.Attribute(cols[8], "Target"))
		if len(target) >= 3 {
			h.TStart, _ = strconv.Atoi(target[1])
			h.TStop, _ = strconv.Atoi(target[2])
		}
		out = append(out, h)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("hits scan %s: %w", path, err)
	}
	return out, nil
}

// parseIdentity accepts both "98" and "98.6" score fields.
func parseIdentity(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
