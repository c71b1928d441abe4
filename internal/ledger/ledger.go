// Package ledger accumulates proposed position-level edits and resolves
// conflicts between evidence sources. A ledger holds at most one record
// per (contig, position).
package ledger

import "sort"

// Deletion is the replacement sentinel meaning "remove this base".
// Any other replacement is exactly one inserted base.
const Deletion = "."

// Ledger maps contig → 1-based position → replacement.
type Ledger map[string]map[int]string

func New() Ledger { return make(Ledger) }

// Set records one edit, overwriting any previous record at the position.
func (l Ledger) Set(contig string, pos int, repl string) {
	sub, ok := l[contig]
	if !ok {
		sub = make(map[int]string)
		l[contig] = sub
	}
	sub[pos] = repl
}

// Empty reports whether the ledger holds no records at all.
func (l Ledger) Empty() bool {
	for _, sub := range l {
		if len(sub) > 0 {
			return false
		}
	}
	return true
}

// Contigs returns the contig keys, sorted.
func (l Ledger) Contigs() []string {
	out := make([]string, 0, len(l))
	for c := range l {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Positions returns the recorded positions for contig, ascending.
func (l Ledger) Positions(contig string) []int {
	sub := l[contig]
	out := make([]int, 0, len(sub))
	for p := range sub {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Merge copies every record of src into dst. Identical records are a
// no-op. Two insertions with different bases keep dst's first-seen value:
// both sources at least agree an insertion belongs here. A deletion
// against an insertion is a genuine disagreement about the position, so
// the record is dropped from dst entirely and src's is not adopted —
// silence beats an uncertain edit at a contested locus. A contig whose
// submapping empties out is removed.
func Merge(dst, src Ledger) {
	for contig, srcSub := range src {
		dstSub, ok := dst[contig]
		if !ok {
			dstSub = make(map[int]string, len(srcSub))
			for p, r := range srcSub {
				dstSub[p] = r
			}
			dst[contig] = dstSub
			continue
		}
		for pos, repl := range srcSub {
			have, ok := dstSub[pos]
			if !ok {
				dstSub[pos] = repl
				continue
			}
			if have == repl {
				continue
			}
			if have != Deletion && repl != Deletion {
				continue // first insertion seen wins
			}
			delete(dstSub, pos)
		}
		if len(dstSub) == 0 {
			delete(dst, contig)
		}
	}
}
