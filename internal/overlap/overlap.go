// Package overlap records the committed span of every processed model and
// scans them for probable gene merges: adjacent same-strand models whose
// final exon spans abut or overlap. Merges that span an intron are left
// to downstream re-annotation.
package overlap

import (
	"regexp"
	"sort"

	"indelfix/internal/annot"
)

// Block is one recorded gene span, oriented so Start < Stop.
type Block struct {
	Start, Stop int
	ModelID     string
	Strand      byte
}

// Set accumulates blocks per contig for the single end-of-run scan.
type Set struct {
	byContig map[string][]Block
}

func NewSet() *Set { return &Set{byContig: make(map[string][]Block)} }

// Record derives the model's block from its committed exon coordinates:
// first exon start to last exon stop on '+', last start to first stop
// on '-'. Models whose committed coordinate list came out empty are not
// recorded.
func (s *Set) Record(m annot.Model, coords []annot.Span) {
	if len(coords) == 0 {
		return
	}
	var start, stop int
	if m.Strand == '-' {
		start, stop = coords[len(coords)-1].Start, coords[0].Stop
	} else {
		start, stop = coords[0].Start, coords[len(coords)-1].Stop
	}
	if start > stop {
		start, stop = stop, start
	}
	s.byContig[m.Contig] = append(s.byContig[m.Contig], Block{Start: start, Stop: stop, ModelID: m.ID, Strand: m.Strand})
}

// Merge is a probable gene-merge pair flagged for manual inspection.
type Merge struct {
	Contig string
	A, B   Block
}

// Merges sorts each contig's blocks by start and reports every adjacent
// same-strand pair that overlaps, unless the two IDs are isoforms of the
// same gene.
func (s *Set) Merges() []Merge {
	contigs := make([]string, 0, len(s.byContig))
	for c := range s.byContig {
		contigs = append(contigs, c)
	}
	sort.Strings(contigs)

	var out []Merge
	for _, c := range contigs {
		blocks := s.byContig[c]
		sort.Slice(blocks, func(i, j int) bool {
			if blocks[i].Start != blocks[j].Start {
				return blocks[i].Start < blocks[j].Start
			}
			if blocks[i].Stop != blocks[j].Stop {
				return blocks[i].Stop < blocks[j].Stop
			}
			return blocks[i].ModelID < blocks[j].ModelID
		})
		for i := 0; i+1 < len(blocks); i++ {
			a, b := blocks[i], blocks[i+1]
			if a.Stop >= b.Start && a.Strand == b.Strand && IsoformBase(a.ModelID) != IsoformBase(b.ModelID) {
				out = append(out, Merge{Contig: c, A: a, B: b})
			}
		}
	}
	return out
}

var isoSuffix = regexp.MustCompile(`\.(?:mrna|t|iso)\d+$`)

// IsoformBase strips a trailing isoform suffix (.mrnaN, .tN, .isoN) so
// isoforms of one gene compare equal.
func IsoformBase(id string) string {
	return isoSuffix.ReplaceAllString(id, "")
}
