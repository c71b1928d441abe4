package annot

import "github.com/biogo/store/interval"

// SpanIndex answers "does either endpoint of this range fall inside an
// annotated CDS span on this contig". The tree itself is not contig
// partitioned; hits are filtered on the way out.
type SpanIndex struct {
	tree interval.IntTree
}

type exonInterval struct {
	id     uintptr
	contig string
	span   Span
}

func (e exonInterval) ID() uintptr { return e.id }
func (e exonInterval) Range() interval.IntRange {
	return interval.IntRange{Start: e.span.Start, End: e.span.Stop + 1}
}

// Overlap is never used for stored elements; queries carry their own.
func (e exonInterval) Overlap(b interval.IntRange) bool {
	return e.span.Start < b.End && e.span.Stop+1 > b.Start
}

type touchQuery struct {
	start, stop int
}

func (q touchQuery) ID() uintptr { return 0 }
func (q touchQuery) Range() interval.IntRange {
	return interval.IntRange{Start: q.start, End: q.stop + 1}
}

// Overlap reports whether the stored range b contains either query endpoint.
func (q touchQuery) Overlap(b interval.IntRange) bool {
	return (b.Start <= q.start && q.start < b.End) || (b.Start <= q.stop && q.stop < b.End)
}

// NewSpanIndex indexes every exon span of every model.
func NewSpanIndex(models []Model) (*SpanIndex, error) {
	ix := &SpanIndex{}
	var id uintptr
	for _, m := range models {
		for _, sp := range m.Exons {
			if err := ix.tree.Insert(exonInterval{id: id, contig: m.Contig, span: sp}, true); err != nil {
				return nil, err
			}
			id++
		}
	}
	ix.tree.AdjustRanges()
	return ix, nil
}

// Touches reports whether start or stop lies inside any annotated exon
// span on contig.
func (ix *SpanIndex) Touches(contig string, start, stop int) bool {
	for _, iv := range ix.tree.Get(touchQuery{start: start, stop: stop}) {
		if iv.(exonInterval).contig == contig {
			return true
		}
	}
	return false
}
