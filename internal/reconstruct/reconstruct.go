// Package reconstruct rebuilds a model's coding sequence with and without
// the proposed edits and judges the result by translation.
package reconstruct

import (
	"indelfix/internal/annot"
	"indelfix/internal/dna"
	"indelfix/internal/ledger"
)

// Verdict is the acceptance tier for a model's proposed edits. Every tier
// commits; the tiers exist so the divergent ones stand out in the logs
// for manual review rather than being silently dropped.
type Verdict int

const (
	Improved Verdict = iota
	SameLength
	SlightlyShorter // ≥90% of the original: plausibly a skipped exon
	MuchShorter     // flagged prominently: chimer split or ab-initio exons
)

func (v Verdict) String() string {
	switch v {
	case Improved:
		return "model length increased"
	case SameLength:
		return "model length is the same"
	case SlightlyShorter:
		return "model length is slightly shorter"
	case MuchShorter:
		return "model length is much shorter"
	}
	return "unknown"
}

// Result carries the verdict and both representative proteins for logging.
type Result struct {
	Verdict  Verdict
	OrigProt string
	NewProt  string
}

// Compare builds the original CDS from the original exon coordinates and
// the edited CDS from the new coordinates with the scratch ledger's edits
// applied, translates both, and grades the change. Consecutive duplicate
// new-exon spans are collapsed (two exons joined by one alignment hit).
func Compare(contig string, seq []byte, strand byte, orig, edited []annot.Span, edits ledger.Ledger) Result {
	var origCDS, newCDS []byte
	for _, sp := range orig {
		origCDS = append(origCDS, piece(seq, sp, strand)...)
	}
	var prev annot.Span
	for i, sp := range edited {
		if i > 0 && sp == prev {
			continue
		}
		prev = sp
		bit := applyEdits(seq, sp, strand, contig, edits)
		newCDS = append(newCDS, bit...)
	}
	origProt := dna.LongestORF(origCDS)
	newProt := dna.LongestORF(newCDS)
	return Result{Verdict: grade(len(origProt), len(newProt)), OrigProt: origProt, NewProt: newProt}
}

func grade(origLen, newLen int) Verdict {
	switch {
	case newLen > origLen:
		return Improved
	case newLen == origLen:
		return SameLength
	case origLen > 0 && float64(newLen) >= 0.90*float64(origLen):
		return SlightlyShorter
	default:
		return MuchShorter
	}
}

func piece(seq []byte, sp annot.Span, strand byte) []byte {
	bit := append([]byte(nil), seq[sp.Start-1:sp.Stop]...)
	if strand == '-' {
		bit = dna.RevComp(bit)
	}
	return bit
}

// applyEdits cuts the span out of the contig and applies the ledger's
// edits within it, highest position first so earlier indels do not shift
// the coordinates of edits not yet applied.
func applyEdits(seq []byte, sp annot.Span, strand byte, contig string, edits ledger.Ledger) []byte {
	bit := append([]byte(nil), seq[sp.Start-1:sp.Stop]...)
	positions := edits.Positions(contig)
	for i := len(positions) - 1; i >= 0; i-- {
		pos := positions[i]
		if pos < sp.Start || pos > sp.Stop {
			continue
		}
		idx := pos - sp.Start
		repl := edits[contig][pos]
		if repl == ledger.Deletion {
			bit = append(bit[:idx], bit[idx+1:]...)
		} else {
			bit = append(bit[:idx], append([]byte(repl), bit[idx:]...)...)
		}
	}
	if strand == '-' {
		bit = dna.RevComp(bit)
	}
	return bit
}
