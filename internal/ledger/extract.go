package ledger

import (
	"strings"

	"indelfix/internal/swalign"
)

// Extract walks an alignment column by column and converts its gaps into
// edit proposals: a transcript gap is a deletion from the genome, a
// genome gap is an insertion of the transcript's base. Column x sits at
// genomic coordinate patchStart + offset + x (1-based).
//
// A 3+ gap run or an ambiguous base in either aligned string disqualifies
// the alignment outright — that pattern says paralog or poorly assembled
// transcript, not a genuine short indel — reported as identity 0 with no
// proposals.
//
// The proposals are merged into dst only when the percent identity meets
// minIdentity; they are returned along with the identity either way so
// callers can trace rejected attempts.
func Extract(aln swalign.Alignment, contig string, patchStart int, minIdentity float64, dst Ledger) (Ledger, float64) {
	g, t := aln.Genome, aln.Transcript
	if len(g) == 0 || len(g) != len(t) {
		return nil, 0
	}
	if strings.Contains(g, "---") || strings.Contains(t, "---") ||
		strings.ContainsAny(g, "Nn") || strings.ContainsAny(t, "Nn") {
		return nil, 0
	}
	tmp := New()
	identical := 0
	for x := 0; x < len(g); x++ {
		pos := patchStart + aln.Offset + x
		switch {
		case g[x] == t[x]:
			identical++
		case t[x] == '-':
			tmp.Set(contig, pos, Deletion)
		case g[x] == '-':
			tmp.Set(contig, pos, string(t[x]))
		}
	}
	identity := float64(identical) / float64(len(g)) * 100
	if identity >= minIdentity {
		Merge(dst, tmp)
	}
	return tmp, identity
}
