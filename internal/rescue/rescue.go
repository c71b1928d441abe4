// Package rescue proposes indel corrections in regions with transcript
// support but no annotation. With no exon boundary to anchor confidence,
// the bar is higher than in the main pass: at least two independent
// transcripts aligned to the exact same genomic range, and unanimous
// agreement on every edited position.
package rescue

import (
	"sort"
	"strings"

	"indelfix/internal/annot"
	"indelfix/internal/engine"
	"indelfix/internal/hits"
	"indelfix/internal/ledger"
)

// Group is a set of alignment hits sharing one exact genomic range on one
// contig, all at or above the identity cutoff, clear of annotated exons.
type Group struct {
	Contig      string
	Start, Stop int
	Hits        []hits.Hit
}

// Groups selects the candidate regions. A region qualifies when ≥2 hits
// at the cutoff share its exact range and neither endpoint falls inside
// any annotated exon span on the contig.
func Groups(all []hits.Hit, exons *annot.SpanIndex, minIdentity int) []Group {
	type key struct {
		contig      string
		start, stop int
	}
	byRange := make(map[key][]hits.Hit)
	for _, h := range all {
		if h.Identity < minIdentity {
			continue
		}
		k := key{h.Contig, h.GStart, h.GStop}
		byRange[k] = append(byRange[k], h)
	}
	var out []Group
	for k, hs := range byRange {
		if len(hs) < 2 {
			continue
		}
		if exons.Touches(k.contig, k.start, k.stop) {
			continue
		}
		out = append(out, Group{Contig: k.contig, Start: k.start, Stop: k.stop, Hits: hs})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Contig != out[j].Contig {
			return out[i].Contig < out[j].Contig
		}
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Stop < out[j].Stop
	})
	return out
}

// Outcome is the result for one candidate region. Edits is nil when the
// region was discarded for insufficient or conflicting support.
type Outcome struct {
	Group Group
	Edits ledger.Ledger
	Trace engine.Trace
}

type Finder struct {
	Engine      *engine.Engine
	MinIdentity int
}

// Process aligns every transcript of the group and demands consensus.
// The region is discarded when the best alignment is indel-free, when
// fewer than the top two alignments carry indel evidence, or when any two
// cutoff-meeting alignments disagree on the edited position set. On
// unanimity the best alignment's proposals are adopted.
func (f *Finder) Process(g Group) (Outcome, error) {
	results, err := f.Engine.AlignHits(g.Contig, g.Hits)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Group: g, Trace: f.trace(g, results, nil)}
	if len(results) < 2 || !results[0].Aln.HasGap() || !results[1].Aln.HasGap() {
		return out, nil
	}
	var (
		first   ledger.Ledger
		posSets [][]int
		discard = ledger.New()
	)
	for _, r := range results {
		tmp, identity := ledger.Extract(r.Aln, g.Contig, r.Hit.GStart, float64(f.MinIdentity), discard)
		if identity < float64(f.MinIdentity) {
			continue
		}
		posSets = append(posSets, tmp.Positions(g.Contig))
		if first == nil {
			first = tmp
		}
	}
	if first == nil {
		return out, nil
	}
	for i := 0; i+1 < len(posSets); i++ {
		if !equalPositions(posSets[i], posSets[i+1]) {
			return out, nil
		}
	}
	out.Edits = first
	out.Trace = f.trace(g, results, first)
	return out, nil
}

func equalPositions(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (f *Finder) trace(g Group, results []engine.Aligned, edits ledger.Ledger) engine.Trace {
	t := engine.Trace{
		Contig: g.Contig, Gene: "_",
		Exon:  annot.Span{Start: g.Start, Stop: g.Stop}.String(),
		Match: "_", MatchSpan: "_", AlignedSpan: "_", Edits: "_",
	}
	if len(results) > 0 {
		var names, spans []string
		for _, r := range results {
			names = append(names, r.Hit.TranscriptID)
			spans = append(spans, f.Engine.AlignedSpan(r))
		}
		t.Match = strings.Join(names, ",")
		t.MatchSpan = results[0].Hit.GSpan().String()
		t.AlignedSpan = strings.Join(spans, ",")
	}
	if !edits.Empty() {
		t.Edits = engine.FormatEdits(edits)
	}
	return t
}
