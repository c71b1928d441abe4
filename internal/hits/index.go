package hits

import "github.com/biogo/store/interval"

// Index answers coordinate-range queries over alignment hits. It is not
// contig-partitioned; results are filtered to the query contig on the way
// out. Ordering is the curator's job, not the index's.
type Index struct {
	tree interval.IntTree
}

type hitInterval struct {
	id uintptr
	h  Hit
}

func (v hitInterval) ID() uintptr { return v.id }
func (v hitInterval) Range() interval.IntRange {
	return interval.IntRange{Start: v.h.GStart, End: v.h.GStop + 1}
}
func (v hitInterval) Overlap(b interval.IntRange) bool {
	return v.h.GStart < b.End && v.h.GStop+1 > b.Start
}

// touchQuery matches stored hits whose span contains either endpoint.
type touchQuery struct {
	start, stop int
}

func (q touchQuery) ID() uintptr { return 0 }
func (q touchQuery) Range() interval.IntRange {
	return interval.IntRange{Start: q.start, End: q.stop + 1}
}
func (q touchQuery) Overlap(b interval.IntRange) bool {
	return (b.Start <= q.start && q.start < b.End) || (b.Start <= q.stop && q.stop < b.End)
}

// withinQuery matches stored hits whose span contains both endpoints.
type withinQuery struct {
	start, stop int
}

func (q withinQuery) ID() uintptr { return 0 }
func (q withinQuery) Range() interval.IntRange {
	return interval.IntRange{Start: q.start, End: q.stop + 1}
}
func (q withinQuery) Overlap(b interval.IntRange) bool {
	return b.Start <= q.start && q.stop < b.End
}

// NewIndex builds the interval index over all hits.
func NewIndex(hs []Hit) (*Index, error) {
	ix := &Index{}
	for i, h := range hs {
		if err := ix.tree.Insert(hitInterval{id: uintptr(i), h: h}, true); err != nil {
			return nil, err
		}
	}
	ix.tree.AdjustRanges()
	return ix, nil
}

// Boundary returns hits on contig sharing an exact endpoint with
// [start,stop]. Terminal exons of fragmented models often extend past
// transcript-supported boundaries, so they are matched on one agreeing
// endpoint rather than full containment.
func (ix *Index) Boundary(contig string, start, stop int) []Hit {
	var out []Hit
	for _, iv := range ix.tree.Get(touchQuery{start: start, stop: stop}) {
		h := iv.(hitInterval).h
		if h.Contig != contig {
			continue
		}
		if h.GStart == start || h.GStop == stop {
			out = append(out, h)
		}
	}
	return out
}

// Interior returns hits on contig whose span fully contains [start,stop].
func (ix *Index) Interior(contig string, start, stop int) []Hit {
	var out []Hit
	for _, iv := range ix.tree.Get(withinQuery{start: start, stop: stop}) {
		h := iv.(hitInterval).h
		if h.Contig == contig {
			out = append(out, h)
		}
	}
	return out
}
