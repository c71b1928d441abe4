package hits

import "sort"

// MinIdentity is the operational identity cutoff the whole tool is built
// around. Raising it finds almost nothing; lowering it invites false edits.
const MinIdentity = 98

// Rank orders candidates best-first: highest identity, then longer
// genomic span.
func Rank(hs []Hit) {
	sort.SliceStable(hs, func(i, j int) bool {
		if hs[i].Identity != hs[j].Identity {
			return hs[i].Identity > hs[j].Identity
		}
		return hs[i].GStop-hs[i].GStart > hs[j].GStop-hs[j].GStart
	})
}

// Curate selects the survivors for one exon. Candidates whose genomic
// span equals the exon exactly are kept in preference to everything else,
// even below the identity cutoff: exact boundary agreement is stronger
// evidence than raw identity, and it also tells us the boundary itself
// should not move. Without an exact match, candidates at or above the
// cutoff survive. Input order is preserved.
func Curate(hs []Hit, exonStart, exonStop, minIdentity int) []Hit {
	var exact, rest []Hit
	for _, h := range hs {
		switch {
		case h.GStart == exonStart && h.GStop == exonStop:
			exact = append(exact, h)
		case h.Identity >= minIdentity:
			rest = append(rest, h)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return rest
}
