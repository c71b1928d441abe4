// Package engine resolves gene models exon by exon: candidate selection
// from the hit index, local alignment of the genomic patch against each
// surviving transcript, and indel extraction into a per-model scratch
// ledger. Committing the scratch is the caller's decision.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"indelfix/internal/annot"
	"indelfix/internal/dna"
	"indelfix/internal/hits"
	"indelfix/internal/ledger"
	"indelfix/internal/swalign"
)

type Engine struct {
	Genome      map[string][]byte
	Transcripts map[string][]byte
	Index       *hits.Index
	Aligner     *swalign.Aligner
	MinIdentity int
}

// Aligned pairs a candidate hit with its computed alignment.
type Aligned struct {
	Hit hits.Hit
	Aln swalign.Alignment
}

// Trace is one diagnostic row for the optional log: the evidence used for
// one exon and what came of it. Placeholder fields are "_".
type Trace struct {
	Contig      string
	Gene        string
	Exon        string
	Match       string // best transcript id
	MatchSpan   string // best hit's genomic span
	AlignedSpan string // 1-based span of the aligned transcript region
	Edits       string // "pos:repl,..." proposals, or "_"
}

// Outcome is the result of resolving one model. Orig always carries every
// exon; New carries the evidence-adjusted coordinates (exons with no index
// hits at all are dropped from New — they are often spurious in-frame
// padding). Scratch holds the proposed edits, uncommitted.
type Outcome struct {
	Model   annot.Model
	Orig    []annot.Span
	New     []annot.Span
	Scratch ledger.Ledger
	Trace   []Trace
}

// Process resolves every exon of one model. It fails only on registry /
// sequence-repository inconsistencies (unknown contig or transcript,
// exon outside its contig), which indicate broken inputs rather than
// recoverable biological ambiguity.
func (e *Engine) Process(m annot.Model) (Outcome, error) {
	out := Outcome{Model: m, Scratch: ledger.New()}
	for i, exon := range m.Exons {
		var cands []hits.Hit
		if i == 0 || i == len(m.Exons)-1 {
			cands = e.Index.Boundary(m.Contig, exon.Start, exon.Stop)
		} else {
			cands = e.Index.Interior(m.Contig, exon.Start, exon.Stop)
		}
		hits.Rank(cands)
		if len(cands) == 0 {
			// No transcript support at all: keep the exon out of the
			// new model entirely.
			out.Orig = append(out.Orig, exon)
			out.Trace = append(out.Trace, e.trace(m, exon, nil, nil))
			continue
		}
		cands = hits.Curate(cands, exon.Start, exon.Stop, e.MinIdentity)
		if len(cands) == 0 {
			out.Orig = append(out.Orig, exon)
			out.New = append(out.New, exon)
			out.Trace = append(out.Trace, e.trace(m, exon, nil, nil))
			continue
		}
		results, err := e.AlignHits(m.Contig, cands)
		if err != nil {
			return Outcome{}, err
		}
		if len(results) == 0 {
			out.Orig = append(out.Orig, exon)
			out.New = append(out.New, exon)
			out.Trace = append(out.Trace, e.trace(m, exon, nil, nil))
			continue
		}
		best := results[0]
		if !best.Aln.HasGap() {
			// Clean alignment: no edits, but adopt the supported
			// boundaries in case neighbouring indels shift them.
			out.Orig = append(out.Orig, exon)
			out.New = append(out.New, best.Hit.GSpan())
			out.Trace = append(out.Trace, e.trace(m, exon, &best, nil))
			continue
		}
		tmp, identity := ledger.Extract(best.Aln, m.Contig, best.Hit.GStart, float64(e.MinIdentity), out.Scratch)
		out.Orig = append(out.Orig, exon)
		if identity >= float64(e.MinIdentity) {
			out.New = append(out.New, best.Hit.GSpan())
			out.Trace = append(out.Trace, e.trace(m, exon, &best, tmp))
		} else {
			out.New = append(out.New, exon)
			out.Trace = append(out.Trace, e.trace(m, exon, &best, nil))
		}
	}
	return out, nil
}

// AlignHits aligns every candidate transcript against its genomic patch
// and ranks the results: score descending, then gap-free alignments
// first, then smaller patch offset. Candidates the aligner refuses
// (ambiguous bases, no local alignment) are silently dropped — they are
// unusable evidence, not errors.
func (e *Engine) AlignHits(contig string, cands []hits.Hit) ([]Aligned, error) {
	var out []Aligned
	for _, h := range cands {
		patch, err := e.patch(contig, h)
		if err != nil {
			return nil, err
		}
		tr, ok := e.Transcripts[h.TranscriptID]
		if !ok {
			return nil, fmt.Errorf("engine: transcript %q not in repository", h.TranscriptID)
		}
		if h.Strand == '-' {
			tr = dna.RevComp(tr)
		}
		aln, err := e.Aligner.Align(patch, tr)
		if err != nil {
			continue
		}
		out = append(out, Aligned{Hit: h, Aln: aln})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Aln.Score != out[j].Aln.Score {
			return out[i].Aln.Score > out[j].Aln.Score
		}
		gi, gj := out[i].Aln.HasGap(), out[j].Aln.HasGap()
		if gi != gj {
			return !gi
		}
		return out[i].Aln.Offset < out[j].Aln.Offset
	})
	return out, nil
}

// patch extracts the + orientation genomic segment spanned by the hit.
func (e *Engine) patch(contig string, h hits.Hit) ([]byte, error) {
	seq, ok := e.Genome[contig]
	if !ok {
		return nil, fmt.Errorf("engine: contig %q not in genome", contig)
	}
	if h.GStart < 1 || h.GStop > len(seq) || h.GStart > h.GStop {
		return nil, fmt.Errorf("engine: hit %s:%d-%d outside contig (len %d)", contig, h.GStart, h.GStop, len(seq))
	}
	return seq[h.GStart-1 : h.GStop], nil
}

func (e *Engine) trace(m annot.Model, exon annot.Span, best *Aligned, edits ledger.Ledger) Trace {
	t := Trace{
		Contig: m.Contig, Gene: m.ID, Exon: exon.String(),
		Match: "_", MatchSpan: "_", AlignedSpan: "_", Edits: "_",
	}
	if best != nil {
		t.Match = best.Hit.TranscriptID
		t.MatchSpan = best.Hit.GSpan().String()
		t.AlignedSpan = e.AlignedSpan(*best)
	}
	if !edits.Empty() {
		t.Edits = FormatEdits(edits)
	}
	return t
}

// AlignedSpan reports the 1-based start-stop of the aligned transcript
// region within the orientation-normalized transcript, for diagnostics.
func (e *Engine) AlignedSpan(a Aligned) string {
	tr, ok := e.Transcripts[a.Hit.TranscriptID]
	if !ok {
		return "_"
	}
	if a.Hit.Strand == '-' {
		tr = dna.RevComp(tr)
	}
	bit := strings.ReplaceAll(a.Aln.Transcript, "-", "")
	if bit == "" {
		return "_"
	}
	i := strings.Index(string(tr), bit)
	if i < 0 {
		return "_"
	}
	return fmt.Sprintf("%d-%d", i+1, i+len(bit))
}

// FormatEdits renders a ledger as "pos:repl,pos:repl" for trace rows.
func FormatEdits(l ledger.Ledger) string {
	var parts []string
	for _, contig := range l.Contigs() {
		for _, pos := range l.Positions(contig) {
			parts = append(parts, fmt.Sprintf("%d:%s", pos, l[contig][pos]))
		}
	}
	if len(parts) == 0 {
		return "_"
	}
	return strings.Join(parts, ",")
}
